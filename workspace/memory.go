/*
 * memory.go, part of gosam.
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
	"context"
	"fmt"
	"sync"

	"github.com/samflow/gosam/statepoint"
)

// Memory is a Manager that keeps jobs in memory.
type Memory struct {
	mu     sync.Mutex
	jobs   map[string]statepoint.StatePoint
	order  []string
	writes [][]statepoint.StatePoint
}

// NewMemory returns an empty in-memory manager.
func NewMemory() *Memory {
	return &Memory{jobs: make(map[string]statepoint.StatePoint)}
}

func (m *Memory) OpenOrCreate(ctx context.Context, sp statepoint.StatePoint) (*Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	id := sp.ID()
	if old, ok := m.jobs[id]; ok {
		if !old.Equal(sp) {
			return nil, fmt.Errorf("%w: %s", ErrIDCollision, id)
		}
		return &Job{ID: id, StatePoint: old}, nil
	}
	m.jobs[id] = sp
	m.order = append(m.order, id)
	return &Job{ID: id, StatePoint: sp, New: true}, nil
}

func (m *Memory) WriteStatePoints(ctx context.Context, sps []statepoint.StatePoint) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes = append(m.writes, append([]statepoint.StatePoint(nil), sps...))
	return nil
}

// Jobs returns the jobs in creation order.
func (m *Memory) Jobs() []*Job {
	m.mu.Lock()
	defer m.mu.Unlock()
	ret := make([]*Job, len(m.order))
	for i, id := range m.order {
		ret[i] = &Job{ID: id, StatePoint: m.jobs[id]}
	}
	return ret
}

// Writes returns the state point lists passed to WriteStatePoints, one per call.
func (m *Memory) Writes() [][]statepoint.StatePoint {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]statepoint.StatePoint(nil), m.writes...)
}
