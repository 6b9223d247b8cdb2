/*
 * top_test.go, part of gosam.
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
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sam "github.com/samflow/gosam"
	"github.com/samflow/gosam/forcefield"
)

const ethaneFF = `<ForceField name="ethane" combining_rule="geometric">
 <AtomTypes>
  <Type name="t_CH3" class="CT" element="C" mass="12.011" def="[C;X4]([H])([H])[H]"/>
  <Type name="t_H" class="HC" element="H" mass="1.008" def="[H][C]"/>
 </AtomTypes>
 <HarmonicBondForce>
  <Bond class1="CT" class2="CT" length="0.1529" k="224262.4"/>
  <Bond class1="HC" class2="CT" length="0.109" k="284512.0"/>
 </HarmonicBondForce>
 <HarmonicAngleForce>
  <Angle class1="" class2="CT" class3="" angle="1.911135531" k="418.4"/>
 </HarmonicAngleForce>
 <RBTorsionForce>
  <Proper class1="HC" class2="CT" class3="CT" class4="HC" c0="0.6276" c1="1.8828" c2="0.0" c3="-2.5104" c4="0.0" c5="0.0"/>
 </RBTorsionForce>
 <NonbondedForce coulomb14scale="0.5" lj14scale="0.5">
  <Atom type="t_CH3" charge="-0.18" sigma="0.35" epsilon="0.276144"/>
  <Atom type="t_H" charge="0.06" sigma="0.25" epsilon="0.12552"/>
 </NonbondedForce>
</ForceField>`

func ethane(t *testing.T, res string, id int) *sam.Compound {
	t.Helper()
	syms := []string{"C", "C", "H", "H", "H", "H", "H", "H"}
	var atoms []*sam.Atom
	for _, s := range syms {
		a := sam.NewAtom(s, s, sam.Chain)
		a.MolName, a.MolID = res, id
		atoms = append(atoms, a)
	}
	xyz := []float64{
		0, 0, 0, 0, 0, 0.153,
		0.1, 0, -0.04, -0.05, 0.09, -0.04, -0.05, -0.09, -0.04,
		-0.1, 0, 0.19, 0.05, 0.09, 0.19, 0.05, -0.09, 0.19,
	}
	bonds := []sam.Bond{{I: 0, J: 1}, {I: 0, J: 2}, {I: 0, J: 3}, {I: 0, J: 4}, {I: 1, J: 5}, {I: 1, J: 6}, {I: 1, J: 7}}
	C, err := sam.NewCompound("ethane", atoms, xyz, bonds)
	require.NoError(t, err)
	return C
}

func structure(t *testing.T, C *sam.Compound) *forcefield.Structure {
	t.Helper()
	ff, err := forcefield.Read(strings.NewReader(ethaneFF))
	require.NoError(t, err)
	S, err := ff.Apply(C)
	require.NoError(t, err)
	return S
}

func twoEthanes(t *testing.T) *sam.Compound {
	C := ethane(t, "ETA", 1)
	C.Add(ethane(t, "ETB", 2))
	C.Box = [3]float64{2, 2, 3}
	return C
}

func TestTopWrite(t *testing.T) {
	S := structure(t, twoEthanes(t))
	var buf bytes.Buffer
	require.NoError(t, TopWrite(&buf, S, "two ethanes"))
	secs, err := ReadSections(&buf)
	require.NoError(t, err)

	var names []string
	for _, s := range secs {
		names = append(names, s.Name)
	}
	mol := []string{"moleculetype", "atoms", "bonds", "pairs", "angles", "dihedrals"}
	want := append([]string{"defaults", "atomtypes"}, mol...)
	want = append(want, mol...)
	want = append(want, "system", "molecules")
	require.Equal(t, want, names)

	assert.Equal(t, []string{"1 3 yes 0.5 0.5"}, secs[0].Lines)
	assert.Len(t, secs[1].Lines, 2)
	assert.Equal(t, "ETA 3", secs[2].Lines[0])
	assert.Len(t, secs[3].Lines, 8)
	assert.Equal(t, []string{"1", "t_CH3", "1", "ETA", "C", "1", "-0.18000", "12.01100"}, strings.Fields(secs[3].Lines[0]))
	assert.Len(t, secs[4].Lines, 7)
	assert.Equal(t, []string{"1", "2", "1", "0.1529", "224262.4"}, strings.Fields(secs[4].Lines[0]))
	assert.Len(t, secs[5].Lines, 9)
	assert.Len(t, secs[6].Lines, 12)
	assert.Equal(t, "109.5", strings.Fields(secs[6].Lines[0])[4][:5])
	assert.Equal(t, "418.4", strings.Fields(secs[6].Lines[0])[5])
	assert.Len(t, secs[7].Lines, 9)
	assert.Equal(t, []string{"3", "1", "2", "6", "3", "0.6276", "1.8828", "0", "-2.5104", "0", "0"}, strings.Fields(secs[7].Lines[0]))

	//the second molecule is numbered from 1 again
	assert.Equal(t, "ETB 3", secs[8].Lines[0])
	assert.Equal(t, []string{"1", "2", "1", "0.1529", "224262.4"}, strings.Fields(secs[10].Lines[0]))
	assert.Equal(t, []string{"two ethanes"}, secs[14].Lines)
	assert.Equal(t, []string{"ETA 1", "ETB 1"}, []string{
		strings.Join(strings.Fields(secs[15].Lines[0]), " "),
		strings.Join(strings.Fields(secs[15].Lines[1]), " "),
	})
}

func TestTopWriteErrors(t *testing.T) {
	C := ethane(t, "ETA", 1)
	C.Atom(7).MolID = 2
	var buf bytes.Buffer
	err := TopWrite(&buf, structure(t, C), "broken")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "different molecules")

	S := structure(t, ethane(t, "ETA", 1))
	S.CombiningRule = "waldman"
	assert.Error(t, TopWrite(&buf, S, "bad rule"))
}

func field(t *testing.T, lines []string, prefix string) []string {
	t.Helper()
	for i, l := range lines {
		if strings.HasPrefix(l, prefix) {
			return lines[i:]
		}
	}
	t.Fatalf("no line starting with %q", prefix)
	return nil
}

func TestLammpsWrite(t *testing.T) {
	S := structure(t, twoEthanes(t))
	var buf bytes.Buffer
	require.NoError(t, LammpsWrite(&buf, S, "two ethanes"))
	var lines []string
	for _, l := range strings.Split(buf.String(), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	assert.Equal(t, "two ethanes", lines[0])
	assert.Equal(t, []string{"16 atoms", "14 bonds", "24 angles", "18 dihedrals"}, lines[1:5])
	assert.Equal(t, []string{"2 atom types", "2 bond types", "1 angle types", "1 dihedral types"}, lines[5:9])
	assert.Equal(t, "0.000000 30.000000 zlo zhi", lines[11])

	b := field(t, lines, "Bond Coeffs")
	assert.Equal(t, []string{"1", "268", "1.529", "#", "CT-CT"}, strings.Fields(b[1]))
	d := field(t, lines, "Dihedral Coeffs")
	assert.Equal(t, []string{"1", "0.15", "-0.45", "0", "0.6", "0"}, strings.Fields(d[1]))
	a := field(t, lines, "Atoms")
	assert.Equal(t, []string{"1", "1", "1", "-0.180000", "0.000000", "0.000000", "0.000000"}, strings.Fields(a[1]))
	assert.Equal(t, "2", strings.Fields(a[16])[1], "the second ethane is molecule 2")
	bonds := field(t, lines, "Bonds")
	assert.Equal(t, "1 1 1 2", bonds[1])

	S.DihedralTerms[0].C[5] = 1
	assert.Error(t, LammpsWrite(&buf, S, "C5"))
}

func TestNdx(t *testing.T) {
	many := make([]int, 20)
	for i := range many {
		many[i] = 2 * i
	}
	groups := []Group{{"System", many}, {"empty", []int{}}, {"one", []int{4}}}
	var buf bytes.Buffer
	require.NoError(t, NdxWrite(&buf, groups))
	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "[ System ]", lines[0])
	assert.Len(t, strings.Fields(lines[1]), 15)
	assert.Len(t, strings.Fields(lines[2]), 5)

	back, err := NdxRead(&buf)
	require.NoError(t, err)
	assert.Equal(t, groups, back)

	assert.Error(t, NdxWrite(&buf, []Group{{"two words", []int{1}}}))
	_, err = NdxRead(strings.NewReader("[ g ]\n1 x 3\n"))
	assert.Error(t, err)
}
