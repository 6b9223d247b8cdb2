/*
 * logger_test.go, part of gosam.
 *
 * Copyright 2026 The gosam authors.
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package logging_test

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/samflow/gosam/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_RenamesErrorKey(t *testing.T) {
	var buf bytes.Buffer
	l := logging.New(&buf, slog.LevelInfo)
	l.Info("failed", "error", errors.New("boom"))
	l.Debug("hidden")
	assert.Contains(t, buf.String(), "err=boom")
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewFile_Truncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "init.log")
	require.NoError(t, os.WriteFile(path, []byte("old run\n"), 0o644))

	l, closeFn, err := logging.NewFile(path, slog.LevelInfo)
	require.NoError(t, err)
	l.Info("Init begin")
	require.NoError(t, closeFn())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "old run")
	assert.Contains(t, string(data), "Init begin")
}

func TestTee(t *testing.T) {
	var a, b bytes.Buffer
	l := logging.Tee(logging.New(&a, slog.LevelInfo), logging.New(&b, slog.LevelWarn))
	l.Info("to a only")
	l.With("k", 1).Warn("to both")
	assert.Contains(t, a.String(), "to a only")
	assert.NotContains(t, b.String(), "to a only")
	assert.Contains(t, b.String(), "k=1")
}
