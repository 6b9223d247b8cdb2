/*
 * sketch.go, part of gosam.
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

package recipes

import (
	sam "github.com/samflow/gosam"
)

// sketch accumulates atoms, coordinates and bonds before building a Compound.
type sketch struct {
	atoms []*sam.Atom
	xyz   []float64
	bonds []sam.Bond
}

// add appends an atom of element sym at p, bonded to the atom with index
// to unless to is negative, and returns its index.
func (s *sketch) add(sym string, role sam.Role, p [3]float64, to int) int {
	s.atoms = append(s.atoms, sam.NewAtom(sym, sym, role))
	s.xyz = append(s.xyz, p[0], p[1], p[2])
	i := len(s.atoms) - 1
	if to >= 0 {
		s.bonds = append(s.bonds, sam.Bond{I: to, J: i})
	}
	return i
}

func (s *sketch) pos(i int) [3]float64 {
	return [3]float64{s.xyz[3*i], s.xyz[3*i+1], s.xyz[3*i+2]}
}

func (s *sketch) compound(name string) (*sam.Compound, error) {
	return sam.NewCompound(name, s.atoms, s.xyz, s.bonds)
}

func add3(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

func scale3(a [3]float64, f float64) [3]float64 {
	return [3]float64{a[0] * f, a[1] * f, a[2] * f}
}
