/*
 * manager.go, part of gosam.
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

// Package workspace registers state points as content-addressed jobs. The
// filesystem Project follows the signac layout, so existing signac tooling
// can read the workspaces gosam creates.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/samflow/gosam/statepoint"
)

var (
	ErrIDCollision     = errors.New("job id already used by a different state point")
	ErrProjectConflict = errors.New("directory holds a different project")
	ErrJobNotFound     = errors.New("job not found")
	ErrNoProject       = errors.New("no project found")
)

// Job is one registered state point.
type Job struct {
	ID         string
	StatePoint statepoint.StatePoint

	// Dir is the job's workspace directory, empty for managers
	// that don't keep files.
	Dir string

	// New is true if this call created the job.
	New bool
}

// Fn returns the path of the file name inside the job directory.
func (j *Job) Fn(name string) string {
	return filepath.Join(j.Dir, name)
}

// Manager creates jobs for state points.
type Manager interface {
	// OpenOrCreate returns the job for sp, creating it if absent.
	// It is idempotent.
	OpenOrCreate(ctx context.Context, sp statepoint.StatePoint) (*Job, error)

	// WriteStatePoints persists the given state points in one operation.
	WriteStatePoints(ctx context.Context, sps []statepoint.StatePoint) error
}

// Initialize enumerates plan for the base seed and registers every state
// point with mgr, then writes them all at once. Each state point is logged.
func Initialize(ctx context.Context, mgr Manager, plan *statepoint.Plan, base int64, log *slog.Logger) ([]*Job, error) {
	sps, err := plan.Enumerate(base)
	if err != nil {
		return nil, err
	}
	log.Info("Initialized project name", "project", plan.Project, "records", len(sps))
	jobs := make([]*Job, 0, len(sps))
	created := 0
	for _, sp := range sps {
		job, err := mgr.OpenOrCreate(ctx, sp)
		if err != nil {
			return nil, fmt.Errorf("opening job %s: %w", sp.ID(), err)
		}
		if job.New {
			created++
		}
		jobs = append(jobs, job)
		log.Info("At the statepoint", "statepoint", sp.String(), "id", job.ID)
	}
	if err = mgr.WriteStatePoints(ctx, sps); err != nil {
		return nil, fmt.Errorf("writing state points: %w", err)
	}
	log.Info("Init done", "jobs", len(jobs), "created", created)
	return jobs, nil
}
