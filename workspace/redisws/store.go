/*
 * store.go, part of gosam.
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

// Package redisws mirrors a workspace's job index in Redis, so several
// machines sharing a campaign can see which state points exist.
package redisws

import (
	"context"
	"errors"
	"fmt"
	"sort"

	backend "github.com/redis/go-redis/v9"
	"github.com/samflow/gosam/statepoint"
	"github.com/samflow/gosam/workspace"
)

// Store implements workspace.Manager on two Redis hashes, one for the jobs
// created by OpenOrCreate and one for the bulk-written state points. Both
// map job ids to canonical state point JSON.
type Store struct {
	client *backend.Client
	prefix string
}

type Option func(*Store)

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a Store for project connecting to the given address.
func New(address, password string, db int, project string, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, project, opts...)
}

// NewFromClient creates a Store for project from an existing client.
func NewFromClient(client *backend.Client, project string, opts ...Option) *Store {
	s := &Store{
		client: client,
		prefix: "gosam:" + project + ":",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) jobsKey() string {
	return s.prefix + "jobs"
}

func (s *Store) statePointsKey() string {
	return s.prefix + "statepoints"
}

// OpenOrCreate registers sp if its id is not present yet.
func (s *Store) OpenOrCreate(ctx context.Context, sp statepoint.StatePoint) (*workspace.Job, error) {
	id := sp.ID()
	created, err := s.client.HSetNX(ctx, s.jobsKey(), id, sp.Canonical()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to register job in redis: %w", err)
	}
	if created {
		return &workspace.Job{ID: id, StatePoint: sp, New: true}, nil
	}
	val, err := s.client.HGet(ctx, s.jobsKey(), id).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get job from redis: %w", err)
	}
	if val != string(sp.Canonical()) {
		return nil, fmt.Errorf("%w: %s", workspace.ErrIDCollision, id)
	}
	return &workspace.Job{ID: id, StatePoint: sp}, nil
}

// WriteStatePoints stores all of sps in a single pipeline.
func (s *Store) WriteStatePoints(ctx context.Context, sps []statepoint.StatePoint) error {
	if len(sps) == 0 {
		return nil
	}
	pipe := s.client.Pipeline()
	for _, sp := range sps {
		pipe.HSet(ctx, s.statePointsKey(), sp.ID(), sp.Canonical())
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Get returns the job registered under id.
func (s *Store) Get(ctx context.Context, id string) (*workspace.Job, error) {
	val, err := s.client.HGet(ctx, s.jobsKey(), id).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, fmt.Errorf("%w: %s", workspace.ErrJobNotFound, id)
		}
		return nil, fmt.Errorf("failed to get job from redis: %w", err)
	}
	var sp statepoint.StatePoint
	if err := sp.UnmarshalJSON([]byte(val)); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state point: %w", err)
	}
	return &workspace.Job{ID: id, StatePoint: sp}, nil
}

// Jobs returns every registered job, sorted by id.
func (s *Store) Jobs(ctx context.Context) ([]*workspace.Job, error) {
	all, err := s.client.HGetAll(ctx, s.jobsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	jobs := make([]*workspace.Job, 0, len(all))
	for id, val := range all {
		var sp statepoint.StatePoint
		if err := sp.UnmarshalJSON([]byte(val)); err != nil {
			return nil, fmt.Errorf("failed to unmarshal state point of %s: %w", id, err)
		}
		jobs = append(jobs, &workspace.Job{ID: id, StatePoint: sp})
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].ID < jobs[j].ID })
	return jobs, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
