/*
 * tee.go, part of gosam.
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

	"github.com/samflow/gosam/statepoint"
)

type tee struct {
	primary Manager
	mirrors []Manager
}

// Tee returns a Manager that registers every state point with primary and
// then with each mirror. Jobs returned are those of primary.
func Tee(primary Manager, mirrors ...Manager) Manager {
	return &tee{primary: primary, mirrors: mirrors}
}

func (t *tee) OpenOrCreate(ctx context.Context, sp statepoint.StatePoint) (*Job, error) {
	job, err := t.primary.OpenOrCreate(ctx, sp)
	if err != nil {
		return nil, err
	}
	for i, m := range t.mirrors {
		if _, err := m.OpenOrCreate(ctx, sp); err != nil {
			return nil, fmt.Errorf("mirror %d: %w", i, err)
		}
	}
	return job, nil
}

func (t *tee) WriteStatePoints(ctx context.Context, sps []statepoint.StatePoint) error {
	if err := t.primary.WriteStatePoints(ctx, sps); err != nil {
		return err
	}
	for i, m := range t.mirrors {
		if err := m.WriteStatePoints(ctx, sps); err != nil {
			return fmt.Errorf("mirror %d: %w", i, err)
		}
	}
	return nil
}
