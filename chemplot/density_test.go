/*
 * density_test.go, part of gosam.
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

package chemplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sam "github.com/samflow/gosam"
)

func column(t *testing.T, z ...float64) *sam.Compound {
	t.Helper()
	var atoms []*sam.Atom
	var xyz []float64
	for _, v := range z {
		atoms = append(atoms, sam.NewAtom("C", "C", sam.Chain))
		xyz = append(xyz, 0.5, 0.5, v)
	}
	C, err := sam.NewCompound("column", atoms, xyz, nil)
	require.NoError(t, err)
	C.Box = [3]float64{2, 2, 1}
	return C
}

func TestDensityProfile(t *testing.T) {
	C := column(t, 0.05, 0.15, 0.15, 0.95, 1.5)
	P, err := DensityProfile(C, "all", []int{0, 1, 2, 3, 4}, 0, 1, 10)
	require.NoError(t, err)
	require.Len(t, P.View(), 10)
	require.Len(t, P.Dividers(), 11)
	assert.InDelta(t, 2.5, P.View()[0], 1e-9)
	assert.InDelta(t, 5, P.View()[1], 1e-9)
	assert.InDelta(t, 0, P.View()[5], 1e-9)
	assert.InDelta(t, 2.5, P.View()[9], 1e-9)
	assert.InDelta(t, 0.05, P.Centers()[0], 1e-12)

	P, err = DensityProfile(C, "some", []int{3}, 0, 1, 10)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, P.View()[9], 1e-9)
	assert.InDelta(t, 0, P.View()[0], 1e-9)

	_, err = DensityProfile(C, "bad", nil, 1, 0, 10)
	assert.Error(t, err)
	C.Box = [3]float64{}
	_, err = DensityProfile(C, "nobox", nil, 0, 1, 10)
	assert.Error(t, err)
}

func TestPlotProfiles(t *testing.T) {
	C := column(t, 0.05, 0.15, 0.55)
	a, err := DensityProfile(C, "Bottom", []int{0, 1}, 0, 1, 20)
	require.NoError(t, err)
	b, err := DensityProfile(C, "Top", []int{2}, 0, 1, 20)
	require.NoError(t, err)
	fname := filepath.Join(t.TempDir(), "density.png")
	require.NoError(t, PlotProfiles([]*Profile{a, b}, "test", fname))
	fi, err := os.Stat(fname)
	require.NoError(t, err)
	assert.Greater(t, fi.Size(), int64(0))
}

func TestColors(t *testing.T) {
	assert.NotEqual(t, colors(0, 2), colors(1, 2))
	r, g, b := iHVS2RGB(0, 1, 1)
	assert.Equal(t, [3]uint8{255, 0, 0}, [3]uint8{r, g, b})
}
