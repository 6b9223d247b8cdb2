/*
 * main.go, part of gosam.
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

// Command gosam creates state point workspaces for self-assembled monolayer
// studies and builds the MD input files of their jobs.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samflow/gosam/internal/logging"
	"github.com/samflow/gosam/statepoint"
	"github.com/samflow/gosam/workspace"
	"github.com/samflow/gosam/workspace/redisws"
)

var rootCmd = &cobra.Command{
	Use:           "gosam",
	Short:         "Self-assembled monolayer workspaces and system builder",
	Long:          `gosam enumerates parameter sweeps into signac-compatible workspaces and builds dual-monolayer MD systems for their jobs.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var global struct {
	dir           string
	verbose       bool
	redisAddr     string
	redisPassword string
	redisDB       int
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&global.dir, "dir", ".", "Project root directory")
	pf.BoolVarP(&global.verbose, "verbose", "v", false, "Log progress to stderr")
	pf.StringVar(&global.redisAddr, "redis", "", "Address of a Redis server mirroring the job index")
	pf.StringVar(&global.redisPassword, "redis-password", "", "Redis password")
	pf.IntVar(&global.redisDB, "redis-db", 0, "Redis database")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "gosam:", err)
		os.Exit(1)
	}
}

// consoleLogger logs warnings to stderr, or everything with --verbose.
func consoleLogger() *slog.Logger {
	level := slog.LevelWarn
	if global.verbose {
		level = slog.LevelInfo
	}
	return logging.New(os.Stderr, level)
}

// manager returns p, teed to a Redis mirror if one was requested.
// The returned function releases the mirror.
func manager(p *workspace.Project) (workspace.Manager, func() error) {
	if global.redisAddr == "" {
		return p, func() error { return nil }
	}
	store := redisws.New(global.redisAddr, global.redisPassword, global.redisDB, p.Name)
	return workspace.Tee(p, store), store.Close
}

// parseFilter turns key=value arguments into a state point. Values are
// read as integers, floats or booleans when they parse as such.
func parseFilter(args []string) (statepoint.StatePoint, error) {
	fields := make([]statepoint.Field, 0, len(args))
	for _, a := range args {
		k, v, ok := strings.Cut(a, "=")
		if !ok || k == "" {
			return statepoint.StatePoint{}, fmt.Errorf("bad filter %q, want key=value", a)
		}
		fields = append(fields, statepoint.F(k, parseValue(v)))
	}
	return statepoint.New(fields...)
}

func parseValue(v string) any {
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return v
}
