/*
 * project.go, part of gosam.
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

package workspace

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samflow/gosam/statepoint"
)

// File names of the signac layout.
const (
	ConfigFile      = "signac.rc"
	StatePointFile  = "signac_statepoint.json"
	StatePointsFile = "signac_statepoints.json"
	DefaultWSDir    = "workspace"
)

// Project is a workspace on the filesystem. Each job is the directory
// <Root>/<WorkspaceDir>/<id> holding the job's state point.
type Project struct {
	Root         string
	Name         string
	WorkspaceDir string
}

// InitProject creates the project name in root, or opens it if it already
// exists there. An existing project with another name gives ErrProjectConflict.
func InitProject(root, name string) (*Project, error) {
	if name == "" {
		return nil, fmt.Errorf("project name cannot be empty")
	}
	p, err := OpenProject(root)
	if err == nil {
		if p.Name != name {
			return nil, fmt.Errorf("%w: %q found in %s, want %q", ErrProjectConflict, p.Name, root, name)
		}
		return p, nil
	}
	if !errors.Is(err, ErrNoProject) {
		return nil, err
	}
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create project directory: %w", err)
	}
	p = &Project{Root: root, Name: name, WorkspaceDir: DefaultWSDir}
	rc := fmt.Sprintf("project = %s\nworkspace_dir = %s\n", p.Name, p.WorkspaceDir)
	if err := writeFileAtomic(filepath.Join(root, ConfigFile), []byte(rc)); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(p.Workspace(), 0755); err != nil {
		return nil, fmt.Errorf("failed to create workspace directory: %w", err)
	}
	return p, nil
}

// OpenProject reads the project configuration in root.
func OpenProject(root string) (*Project, error) {
	f, err := os.Open(filepath.Join(root, ConfigFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w in %s", ErrNoProject, root)
		}
		return nil, err
	}
	defer f.Close()
	p := &Project{Root: root, WorkspaceDir: DefaultWSDir}
	s := bufio.NewScanner(f)
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		k, v, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(k) {
		case "project":
			p.Name = strings.TrimSpace(v)
		case "workspace_dir":
			p.WorkspaceDir = strings.TrimSpace(v)
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if p.Name == "" {
		return nil, fmt.Errorf("%s in %s has no project name", ConfigFile, root)
	}
	return p, nil
}

// Workspace returns the path of the workspace directory.
func (p *Project) Workspace() string {
	if filepath.IsAbs(p.WorkspaceDir) {
		return p.WorkspaceDir
	}
	return filepath.Join(p.Root, p.WorkspaceDir)
}

func (p *Project) jobDir(id string) string {
	return filepath.Join(p.Workspace(), id)
}

// OpenOrCreate returns the job of sp, creating its directory and state
// point file if needed.
func (p *Project) OpenOrCreate(ctx context.Context, sp statepoint.StatePoint) (*Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id := sp.ID()
	job, err := p.Open(id)
	if err == nil {
		if !job.StatePoint.Equal(sp) {
			return nil, fmt.Errorf("%w: %s", ErrIDCollision, id)
		}
		return job, nil
	}
	if !errors.Is(err, ErrJobNotFound) {
		return nil, err
	}
	dir := p.jobDir(id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create job directory: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(dir, StatePointFile), sp.Canonical()); err != nil {
		return nil, err
	}
	return &Job{ID: id, StatePoint: sp, Dir: dir, New: true}, nil
}

// Open returns the existing job with the given id.
func (p *Project) Open(id string) (*Job, error) {
	dir := p.jobDir(id)
	data, err := os.ReadFile(filepath.Join(dir, StatePointFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrJobNotFound, id)
		}
		return nil, fmt.Errorf("failed to read state point: %w", err)
	}
	var sp statepoint.StatePoint
	if err := json.Unmarshal(data, &sp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state point of %s: %w", id, err)
	}
	return &Job{ID: id, StatePoint: sp, Dir: dir}, nil
}

// Jobs returns every job of the project, sorted by id.
func (p *Project) Jobs(ctx context.Context) ([]*Job, error) {
	entries, err := os.ReadDir(p.Workspace())
	if err != nil {
		if os.IsNotExist(err) {
			return []*Job{}, nil
		}
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	var jobs []*Job
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if !e.IsDir() {
			continue
		}
		job, err := p.Open(e.Name())
		if errors.Is(err, ErrJobNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].ID < jobs[j].ID })
	return jobs, nil
}

// Find returns the jobs whose state points match every field of filter.
func (p *Project) Find(ctx context.Context, filter statepoint.StatePoint) ([]*Job, error) {
	jobs, err := p.Jobs(ctx)
	if err != nil {
		return nil, err
	}
	ret := jobs[:0]
	for _, j := range jobs {
		if j.StatePoint.Matches(filter) {
			ret = append(ret, j)
		}
	}
	return ret, nil
}

// WriteStatePoints merges sps into the project's state point file,
// which maps job ids to state points.
func (p *Project) WriteStatePoints(ctx context.Context, sps []statepoint.StatePoint) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := filepath.Join(p.Root, StatePointsFile)
	all, err := ReadStatePoints(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	if all == nil {
		all = make(map[string]statepoint.StatePoint, len(sps))
	}
	for _, sp := range sps {
		all[sp.ID()] = sp
	}
	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state points: %w", err)
	}
	return writeFileAtomic(path, append(data, '\n'))
}

// ReadStatePoints reads a state point file as written by WriteStatePoints.
func ReadStatePoints(path string) (map[string]statepoint.StatePoint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	all := make(map[string]statepoint.StatePoint)
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}
	return all, nil
}

// writeFileAtomic writes data to a temporary file next to path and
// renames it over path.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
