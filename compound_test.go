/*
 * compound_test.go, part of gosam.
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

package sam_test

import (
	"bytes"
	"math"
	"path/filepath"
	"testing"

	"github.com/samflow/gosam"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func water(t *testing.T) *sam.Compound {
	t.Helper()
	atoms := []*sam.Atom{
		sam.NewAtom("O", "O", sam.Substrate),
		sam.NewAtom("H", "H", sam.Substrate),
		sam.NewAtom("H", "H", sam.Substrate),
	}
	coords := []float64{
		0, 0, 0,
		0.0957, 0, 0,
		-0.024, 0.0927, 0,
	}
	C, err := sam.NewCompound("water", atoms, coords, []sam.Bond{{0, 1}, {0, 2}})
	require.NoError(t, err)
	return C
}

func TestNewCompound_Validation(t *testing.T) {
	_, err := sam.NewCompound("x", []*sam.Atom{sam.NewAtom("C", "C", sam.Chain)}, []float64{0, 0}, nil)
	assert.Error(t, err)

	_, err = sam.NewCompound("x", []*sam.Atom{sam.NewAtom("C", "C", sam.Chain)}, []float64{0, 0, 0}, []sam.Bond{{0, 1}})
	assert.Error(t, err)

	empty, err := sam.NewCompound("empty", nil, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, empty.Len())
	assert.Nil(t, empty.Coords)
}

func TestCompound_Add(t *testing.T) {
	empty, err := sam.NewCompound("box", nil, nil, nil)
	require.NoError(t, err)
	w := water(t)

	empty.Add(w)
	empty.Add(w)
	assert.Equal(t, 6, empty.Len())
	assert.Equal(t, 6, empty.Coords.NVecs())
	assert.Equal(t, []sam.Bond{{0, 1}, {0, 2}, {3, 4}, {3, 5}}, empty.Bonds)

	// copies, not shared atoms
	empty.Atom(3).Name = "OW"
	assert.Equal(t, "O", w.Atom(0).Name)

	empty.Translate(0, 0, 1)
	assert.InDelta(t, 1.0, empty.Pos(5)[2], 1e-12)
	assert.InDelta(t, 0.0, w.Pos(2)[2], 1e-12)
}

func TestCompound_SpinBoundingBox(t *testing.T) {
	w := water(t)
	c := w.Centroid()
	w.Spin([3]float64{0, 1, 0}, math.Pi)
	c2 := w.Centroid()
	for k := 0; k < 3; k++ {
		assert.InDelta(t, c[k], c2[k], 1e-9)
	}
	min, max := w.BoundingBox()
	assert.InDelta(t, 0.0957+0.024, max[0]-min[0], 1e-9)
	assert.InDelta(t, 0.0927, max[1]-min[1], 1e-9)
}

func TestCompound_Helpers(t *testing.T) {
	w := water(t)
	w.SetMolecule("SOL", 4)
	w.Renumber()
	assert.Equal(t, 3, w.Atom(2).ID)
	assert.Equal(t, "SOL", w.Atom(1).MolName)
	assert.Equal(t, []int{1, 2}, w.Select(func(a *sam.Atom) bool { return a.Symbol == "H" }))
	assert.ElementsMatch(t, []int{1, 2}, w.Neighbors()[0])
	assert.InDelta(t, 18.015, sum(w.Masses()), 1e-3)

	cp := w.Copy()
	cp.Translate(1, 1, 1)
	assert.InDelta(t, 0.0, w.Pos(0)[0], 1e-12)
}

func sum(f []float64) float64 {
	var s float64
	for _, v := range f {
		s += v
	}
	return s
}

func TestSymbolFromName(t *testing.T) {
	cases := map[string]string{
		"Si":  "Si",
		"SI3": "Si",
		"OH":  "O",
		"O1":  "O",
		"C12": "C",
		"H":   "H",
		"F":   "F",
		"N":   "N",
	}
	for name, want := range cases {
		got, err := sam.SymbolFromName(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
	_, err := sam.SymbolFromName("Xx")
	assert.Error(t, err)
}

func TestGroRoundTrip(t *testing.T) {
	w := water(t)
	w.SetMolecule("Bottom", 1)
	w.Box = [3]float64{3, 3, 10}

	var buf bytes.Buffer
	require.NoError(t, sam.GroWrite(&buf, w))
	assert.Contains(t, buf.String(), "    1Botto    O    1   0.000   0.000   0.000\n")

	r, err := sam.GroRead(&buf)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, "Botto", r.Atom(0).MolName)
	assert.Equal(t, "H", r.Atom(1).Symbol)
	assert.InDelta(t, 0.096, r.Pos(1)[0], 1e-9)
	assert.Equal(t, [3]float64{3, 3, 10}, r.Box)

	name := filepath.Join(t.TempDir(), "w.gro")
	require.NoError(t, sam.GroFileWrite(name, w))
	f, err := sam.GroFileRead(name)
	require.NoError(t, err)
	assert.Equal(t, "water", f.Name)
}
