/*
 * clash.go, part of gosam.
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

// Package clash finds close contacts between groups of atoms.
package clash

import (
	"math"
	"sort"

	sam "github.com/samflow/gosam"
	"github.com/samflow/gosam/v3"
)

// Contact is a pair of atoms, one from each group, and their distance.
type Contact struct {
	I, J int
	Dist float64
}

func dist(a, b []float64) float64 {
	x, y, z := a[0]-b[0], a[1]-b[1], a[2]-b[2]
	return math.Sqrt(x*x + y*y + z*z)
}

// LowestDist returns the smallest distance between a point of test and one
// of clash, and the indexes of that pair. The distance is +Inf if either
// set is empty.
func LowestDist(test, clash *v3.Matrix) (d float64, indexes [2]int) {
	d = math.Inf(1)
	for i := 0; i < test.NVecs(); i++ {
		a := test.RawRowView(i)
		for j := 0; j < clash.NVecs(); j++ {
			if dt := dist(a, clash.RawRowView(j)); dt < d {
				d = dt
				indexes = [2]int{i, j}
			}
		}
	}
	return d, indexes
}

// Closest returns the closest contact between the atoms a and b of C.
// It panics if either group is empty.
func Closest(C *sam.Compound, a, b []int) Contact {
	if len(a) == 0 || len(b) == 0 {
		panic("clash.Closest: empty group")
	}
	ta := v3.Zeros(len(a))
	ta.SomeVecs(C.Coords, a)
	tb := v3.Zeros(len(b))
	tb.SomeVecs(C.Coords, b)
	d, idx := LowestDist(ta, tb)
	return Contact{I: a[idx[0]], J: b[idx[1]], Dist: d}
}

type cell [3]int

func cellOf(p []float64, size float64) cell {
	return cell{int(math.Floor(p[0] / size)), int(math.Floor(p[1] / size)), int(math.Floor(p[2] / size))}
}

// Overlaps returns every pair of atoms of C, one in a and one in b, closer
// than cutoff, sorted by distance. Pairs with the same atom twice are
// skipped. Periodic images are not considered.
func Overlaps(C *sam.Compound, a, b []int, cutoff float64) []Contact {
	if cutoff <= 0 {
		return nil
	}
	grid := make(map[cell][]int)
	for _, j := range b {
		c := cellOf(C.Coords.RawRowView(j), cutoff)
		grid[c] = append(grid[c], j)
	}
	var ret []Contact
	for _, i := range a {
		p := C.Coords.RawRowView(i)
		c := cellOf(p, cutoff)
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for dz := -1; dz <= 1; dz++ {
					for _, j := range grid[cell{c[0] + dx, c[1] + dy, c[2] + dz}] {
						if i == j {
							continue
						}
						if d := dist(p, C.Coords.RawRowView(j)); d < cutoff {
							ret = append(ret, Contact{I: i, J: j, Dist: d})
						}
					}
				}
			}
		}
	}
	sort.Slice(ret, func(x, y int) bool {
		if ret[x].Dist != ret[y].Dist {
			return ret[x].Dist < ret[y].Dist
		}
		if ret[x].I != ret[y].I {
			return ret[x].I < ret[y].I
		}
		return ret[x].J < ret[y].J
	})
	return ret
}
