/*
 * lammps.go, part of gosam.
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

package top

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/samflow/gosam/forcefield"
)

// Conversions from GROMACS units to LAMMPS real units.
const (
	nm2A     = 10.0
	kJ2kcal  = 1 / 4.184
	bondConv = kJ2kcal / (nm2A * nm2A) / 2 //LAMMPS harmonic terms lack the 1/2
	angConv  = kJ2kcal / 2
)

// typeTable assigns 1-based LAMMPS type numbers to distinct parameter sets,
// in order of first appearance.
type typeTable[K comparable] struct {
	ids  map[K]int
	keys []K
}

func newTypeTable[K comparable]() *typeTable[K] {
	return &typeTable[K]{ids: make(map[K]int)}
}

func (t *typeTable[K]) id(k K) int {
	if i, ok := t.ids[k]; ok {
		return i
	}
	t.keys = append(t.keys, k)
	t.ids[k] = len(t.keys)
	return len(t.keys)
}

// multiHarmonic converts Ryckaert-Bellemans coefficients, in kJ/mol, to the
// LAMMPS multi/harmonic ones in kcal/mol. The RB angle follows the polymer
// convention, so odd powers change sign.
func multiHarmonic(c [6]float64) ([5]float64, error) {
	var a [5]float64
	if c[5] != 0 {
		return a, fmt.Errorf("RB dihedral with C5=%g can't be written as multi/harmonic", c[5])
	}
	for n := 0; n < 5; n++ {
		a[n] = c[n] * kJ2kcal
		if n%2 == 1 {
			a[n] = -a[n]
		}
	}
	return a, nil
}

// LammpsWrite writes S as a LAMMPS data file in real units, with the full
// atom style, harmonic bonds and angles and multi/harmonic dihedrals. The box
// goes from the origin to S.Box.
func LammpsWrite(out io.Writer, S *forcefield.Structure, title string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s", r)
		}
	}()
	atomTypes := newTypeTable[*forcefield.AtomType]()
	bondTypes := newTypeTable[forcefield.BondType]()
	angleTypes := newTypeTable[forcefield.AngleType]()
	dihTypes := newTypeTable[[5]float64]()
	at := make([]int, S.Len())
	for i, t := range S.Types {
		at[i] = atomTypes.id(t)
	}
	bt := make([]int, len(S.BondTerms))
	for i, b := range S.BondTerms {
		bt[i] = bondTypes.id(b.BondType)
	}
	ant := make([]int, len(S.AngleTerms))
	for i, a := range S.AngleTerms {
		ant[i] = angleTypes.id(a.AngleType)
	}
	dt := make([]int, len(S.DihedralTerms))
	for i, d := range S.DihedralTerms {
		mh, err := multiHarmonic(d.C)
		qerr(err)
		dt[i] = dihTypes.id(mh)
	}

	w := bufio.NewWriter(out)
	ws := func(format string, a ...interface{}) {
		_, err := w.WriteString(sf(format, a...))
		qerr(err)
	}
	ws("%s\n\n", title)
	ws("%d atoms\n%d bonds\n%d angles\n%d dihedrals\n\n", S.Len(), len(S.BondTerms), len(S.AngleTerms), len(S.DihedralTerms))
	ws("%d atom types\n%d bond types\n%d angle types\n%d dihedral types\n\n", len(atomTypes.keys), len(bondTypes.keys), len(angleTypes.keys), len(dihTypes.keys))
	for k, ax := range []string{"x", "y", "z"} {
		ws("%.6f %.6f %slo %shi\n", 0.0, S.Box[k]*nm2A, ax, ax)
	}

	ws("\nMasses\n\n")
	for i, t := range atomTypes.keys {
		ws("%d %.5f # %s\n", i+1, t.Mass, t.Name)
	}
	ws("\nPair Coeffs # lj/cut/coul/long\n\n")
	for i, t := range atomTypes.keys {
		ws("%d %.8g %.8g # %s\n", i+1, t.Epsilon*kJ2kcal, t.Sigma*nm2A, t.Name)
	}
	if len(bondTypes.keys) > 0 {
		ws("\nBond Coeffs # harmonic\n\n")
		for i, b := range bondTypes.keys {
			ws("%d %.8g %.8g # %s-%s\n", i+1, b.K*bondConv, b.Length*nm2A, b.Classes[0], b.Classes[1])
		}
	}
	if len(angleTypes.keys) > 0 {
		ws("\nAngle Coeffs # harmonic\n\n")
		for i, a := range angleTypes.keys {
			ws("%d %.8g %.8g\n", i+1, a.K*angConv, a.Theta*180/math.Pi)
		}
	}
	if len(dihTypes.keys) > 0 {
		ws("\nDihedral Coeffs # multi/harmonic\n\n")
		for i, d := range dihTypes.keys {
			ws("%d %.8g %.8g %.8g %.8g %.8g\n", i+1, d[0], d[1], d[2], d[3], d[4])
		}
	}

	ws("\nAtoms # full\n\n")
	for i, a := range S.Atoms {
		p := S.Pos(i)
		ws("%d %d %d %.6f %.6f %.6f %.6f\n", i+1, a.MolID, at[i], a.Charge, p[0]*nm2A, p[1]*nm2A, p[2]*nm2A)
	}
	if len(S.BondTerms) > 0 {
		ws("\nBonds\n\n")
		for i, b := range S.BondTerms {
			ws("%d %d %d %d\n", i+1, bt[i], b.I+1, b.J+1)
		}
	}
	if len(S.AngleTerms) > 0 {
		ws("\nAngles\n\n")
		for i, a := range S.AngleTerms {
			ws("%d %d %d %d %d\n", i+1, ant[i], a.I+1, a.J+1, a.K+1)
		}
	}
	if len(S.DihedralTerms) > 0 {
		ws("\nDihedrals\n\n")
		for i, d := range S.DihedralTerms {
			ws("%d %d %d %d %d %d\n", i+1, dt[i], d.I+1, d.J+1, d.K+1, d.L+1)
		}
	}
	return w.Flush()
}

// LammpsFileWrite writes S as a LAMMPS data file to fname.
func LammpsFileWrite(fname string, S *forcefield.Structure, title string) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := LammpsWrite(f, S, title); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", fname, err)
	}
	return f.Close()
}
