/*
 * atom.go, part of gosam.
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

package sam

import "fmt"

// Role tells which part of a monolayer an atom belongs to.
type Role int

const (
	Substrate Role = iota //silica, silanols and backfill hydrogens
	Chain                 //chain backbone, including the anchoring silane
	Terminal              //terminal group of a chain
)

func (r Role) String() string {
	switch r {
	case Substrate:
		return "substrate"
	case Chain:
		return "chain"
	case Terminal:
		return "terminal"
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// Atom contains the information of one atom, except for the coordinates,
// which are kept in the matrix of the Compound the atom belongs to.
type Atom struct {
	Name    string
	Symbol  string
	ID      int //1-based, filled by Compound.Renumber
	MolName string
	MolID   int
	Mass    float64
	Charge  float64
	Type    string //force field atom type, empty until typed
	Role    Role
}

// NewAtom returns an atom with the given name and element symbol.
// The mass is taken from the element, and is 0 for unknown elements.
func NewAtom(name, symbol string, role Role) *Atom {
	return &Atom{Name: name, Symbol: symbol, Mass: symbolMass[symbol], Role: role}
}

// Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	n := *A
	return &n
}
