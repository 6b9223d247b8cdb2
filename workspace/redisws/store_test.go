/*
 * store_test.go, part of gosam.
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

package redisws_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/samflow/gosam/internal/logging"
	"github.com/samflow/gosam/statepoint"
	"github.com/samflow/gosam/workspace"
	"github.com/samflow/gosam/workspace/redisws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ workspace.Manager = (*redisws.Store)(nil)

func newStore(t *testing.T) (*miniredis.Miniredis, *redisws.Store) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	s := redisws.NewFromClient(client, "Chainlengths")
	t.Cleanup(func() { s.Close() })
	return mr, s
}

func TestStore_Idempotent(t *testing.T) {
	ctx := context.Background()
	mr, s := newStore(t)
	plan := statepoint.ChainlengthsPlan(2)

	jobs, err := workspace.Initialize(ctx, s, plan, 42, logging.NewNop())
	require.NoError(t, err)
	for _, j := range jobs {
		assert.True(t, j.New)
	}
	keys, err := mr.HKeys("gosam:Chainlengths:jobs")
	require.NoError(t, err)
	assert.Len(t, keys, 10)
	keys, err = mr.HKeys("gosam:Chainlengths:statepoints")
	require.NoError(t, err)
	assert.Len(t, keys, 10)

	again, err := workspace.Initialize(ctx, s, plan, 42, logging.NewNop())
	require.NoError(t, err)
	for _, j := range again {
		assert.False(t, j.New)
	}
	listed, err := s.Jobs(ctx)
	require.NoError(t, err)
	assert.Len(t, listed, 10)

	got, err := s.Get(ctx, "324ceeaeae7c26ccebee84301bc62e18")
	require.NoError(t, err)
	seed, _ := got.StatePoint.Get("seed")
	assert.Equal(t, int64(42), seed)

	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, workspace.ErrJobNotFound)
}

func TestStore_Collision(t *testing.T) {
	ctx := context.Background()
	mr, s := newStore(t)
	sp := statepoint.MustNew(statepoint.F("a", 1))
	mr.HSet("gosam:Chainlengths:jobs", sp.ID(), `{"a": 2}`)
	_, err := s.OpenOrCreate(ctx, sp)
	assert.ErrorIs(t, err, workspace.ErrIDCollision)
}

func TestStore_AsMirror(t *testing.T) {
	ctx := context.Background()
	_, s := newStore(t)
	root := t.TempDir()
	p, err := workspace.InitProject(root, "Chainlengths")
	require.NoError(t, err)

	jobs, err := workspace.Initialize(ctx, workspace.Tee(p, s), statepoint.ChainlengthsPlan(1), 3, logging.NewNop())
	require.NoError(t, err)
	require.Len(t, jobs, 5)
	assert.NotEmpty(t, jobs[0].Dir)

	mirrored, err := s.Jobs(ctx)
	require.NoError(t, err)
	assert.Len(t, mirrored, 5)
}
