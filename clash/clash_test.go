/*
 * clash_test.go, part of gosam.
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

package clash

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sam "github.com/samflow/gosam"
	"github.com/samflow/gosam/v3"
)

func line(t *testing.T, x ...float64) *sam.Compound {
	t.Helper()
	var atoms []*sam.Atom
	var xyz []float64
	for _, v := range x {
		atoms = append(atoms, sam.NewAtom("C", "C", sam.Chain))
		xyz = append(xyz, v, 0, 0)
	}
	C, err := sam.NewCompound("line", atoms, xyz, nil)
	require.NoError(t, err)
	return C
}

func TestLowestDist(t *testing.T) {
	a, err := v3.NewMatrix([]float64{0, 0, 0, 1, 0, 0})
	require.NoError(t, err)
	b, err := v3.NewMatrix([]float64{5, 0, 0, 1, 0.3, 0.4})
	require.NoError(t, err)
	d, idx := LowestDist(a, b)
	assert.InDelta(t, 0.5, d, 1e-12)
	assert.Equal(t, [2]int{1, 1}, idx)
}

func TestClosestAndOverlaps(t *testing.T) {
	C := line(t, 0, 0.1, 0.25, 1, 1.15, -0.05)
	c := Closest(C, []int{0, 1, 2}, []int{3, 4, 5})
	assert.Equal(t, 0, c.I)
	assert.Equal(t, 5, c.J)
	assert.InDelta(t, 0.05, c.Dist, 1e-12)

	ov := Overlaps(C, []int{0, 1, 2}, []int{3, 4, 5}, 0.2)
	require.Len(t, ov, 2)
	assert.Equal(t, Contact{I: 0, J: 5, Dist: ov[0].Dist}, ov[0])
	assert.Equal(t, 1, ov[1].I)
	assert.Equal(t, 5, ov[1].J)
	assert.InDelta(t, 0.15, ov[1].Dist, 1e-12)

	assert.Empty(t, Overlaps(C, []int{0, 1, 2}, []int{3, 4}, 0.2))
	assert.Len(t, Overlaps(C, []int{0, 1}, []int{0, 1}, 0.2), 2)
	assert.Panics(t, func() { Closest(C, nil, []int{1}) })
}
