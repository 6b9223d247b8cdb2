/*
 * compound.go, part of gosam.
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

import (
	v3 "github.com/samflow/gosam/v3"
)

// Bond joins the atoms with 0-based indexes I and J in a Compound.
type Bond struct {
	I, J int
}

// Compound is a set of atoms with their coordinates, bonds and,
// optionally, a periodic box. Coords is nil for a compound without atoms.
type Compound struct {
	Name   string
	Atoms  []*Atom
	Coords *v3.Matrix
	Bonds  []Bond
	Box    [3]float64
}

// NewCompound returns a compound with the given atoms and bonds. coords must
// hold 3 values per atom, and is used as the backing slice of the coordinates.
func NewCompound(name string, atoms []*Atom, coords []float64, bonds []Bond) (*Compound, error) {
	if len(coords) != 3*len(atoms) {
		return nil, NewError("NewCompound", "%d coordinates given for %d atoms", len(coords), len(atoms))
	}
	for _, b := range bonds {
		if b.I < 0 || b.J < 0 || b.I >= len(atoms) || b.J >= len(atoms) || b.I == b.J {
			return nil, NewError("NewCompound", "invalid bond %d-%d for %d atoms", b.I, b.J, len(atoms))
		}
	}
	C := &Compound{Name: name, Atoms: atoms, Bonds: bonds}
	if len(atoms) > 0 {
		var err error
		C.Coords, err = v3.NewMatrix(coords)
		if err != nil {
			return nil, errDecorate(err, "NewCompound")
		}
	}
	return C, nil
}

// Len returns the number of atoms in the compound.
func (C *Compound) Len() int {
	return len(C.Atoms)
}

// Atom returns the ith atom of the compound. Panics if out of range.
func (C *Compound) Atom(i int) *Atom {
	return C.Atoms[i]
}

// Pos returns the coordinates of the ith atom.
func (C *Compound) Pos(i int) [3]float64 {
	r := C.Coords.RawRowView(i)
	return [3]float64{r[0], r[1], r[2]}
}

// Add appends copies of the atoms and bonds of B, and B's coordinates, to
// the receiver. The box of the receiver is not changed.
func (C *Compound) Add(B *Compound) {
	if B.Len() == 0 {
		return
	}
	offset := C.Len()
	for _, a := range B.Atoms {
		C.Atoms = append(C.Atoms, a.Copy())
	}
	for _, b := range B.Bonds {
		C.Bonds = append(C.Bonds, Bond{b.I + offset, b.J + offset})
	}
	if C.Coords == nil {
		C.Coords = v3.Zeros(B.Len())
		C.Coords.Copy(B.Coords)
		return
	}
	n := v3.Zeros(C.Len())
	n.Stack(C.Coords, B.Coords)
	C.Coords = n
}

// Translate displaces every atom of the compound by (x,y,z).
func (C *Compound) Translate(x, y, z float64) {
	if C.Coords == nil {
		return
	}
	C.Coords.Translate(x, y, z)
}

// Centroid returns the geometric center of the compound.
func (C *Compound) Centroid() [3]float64 {
	c := v3.Centroid(C.Coords)
	return [3]float64{c.At(0, 0), c.At(0, 1), c.At(0, 2)}
}

// Spin rotates the compound by angle radians around the axis with
// direction axis passing through the centroid of the compound.
func (C *Compound) Spin(axis [3]float64, angle float64) {
	if C.Coords == nil {
		return
	}
	ax, err := v3.NewMatrix(axis[:])
	if err != nil {
		panic(err.Error())
	}
	C.Coords = v3.RotateAbout(C.Coords, v3.Centroid(C.Coords), ax, angle)
}

// BoundingBox returns the minimum and maximum coordinates of the compound's
// atoms along each axis.
func (C *Compound) BoundingBox() (min, max [3]float64) {
	return v3.Bounds(C.Coords)
}

// Copy returns a deep copy of the compound.
func (C *Compound) Copy() *Compound {
	R := &Compound{Name: C.Name, Box: C.Box}
	R.Add(C)
	return R
}

// SetMolecule sets the residue name and number of every atom.
func (C *Compound) SetMolecule(name string, id int) {
	for _, a := range C.Atoms {
		a.MolName = name
		a.MolID = id
	}
}

// Renumber sets the ID of each atom to its 1-based position in the compound.
func (C *Compound) Renumber() {
	for i, a := range C.Atoms {
		a.ID = i + 1
	}
}

// Masses returns a slice with the mass of each atom.
func (C *Compound) Masses() []float64 {
	m := make([]float64, C.Len())
	for i, a := range C.Atoms {
		m[i] = a.Mass
	}
	return m
}

// Select returns the indexes of the atoms for which f returns true.
func (C *Compound) Select(f func(*Atom) bool) []int {
	ret := make([]int, 0, C.Len()/2)
	for i, a := range C.Atoms {
		if f(a) {
			ret = append(ret, i)
		}
	}
	return ret
}

// Neighbors returns, for each atom, the indexes of the atoms bonded to it.
func (C *Compound) Neighbors() [][]int {
	ret := make([][]int, C.Len())
	for _, b := range C.Bonds {
		ret[b.I] = append(ret[b.I], b.J)
		ret[b.J] = append(ret[b.J], b.I)
	}
	return ret
}
