/*
 * forcefield_test.go, part of gosam.
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

package forcefield

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sam "github.com/samflow/gosam"
	"github.com/samflow/gosam/recipes"
)

const shipped = "../util/forcefield/oplsaa.xml"

func TestParseSMARTS(t *testing.T) {
	for def, size := range map[string]int{
		"[C;X4]":                    1,
		"*":                         1,
		"[Si;X4]([O])([O])([O])[O]": 5,
		"[H][O][Si]":                3,
		"CC(C)O":                    4,
		"[Si]-[C]":                  2,
	} {
		p, err := parseSMARTS(def)
		require.NoError(t, err, def)
		assert.Equal(t, size, p.size, def)
	}
	p, err := parseSMARTS("[O;X2]([Si])[H]")
	require.NoError(t, err)
	assert.Equal(t, "O", p.root.element)
	assert.Equal(t, 2, p.root.degree)
	require.Len(t, p.root.children, 2)
	assert.Equal(t, "Si", p.root.children[0].element)
	assert.Equal(t, "H", p.root.children[1].element)

	for _, bad := range []string{"", "[C", "C(", "[#6]", "C)", "c1ccccc1"} {
		_, err := parseSMARTS(bad)
		assert.Error(t, err, bad)
	}
}

// methanol: C0 bonded to O1 and H2-H4; O1 bonded to H5.
func TestMatcher(t *testing.T) {
	elements := []string{"C", "O", "H", "H", "H", "H"}
	nb := [][]int{{1, 2, 3, 4}, {0, 5}, {0}, {0}, {0}, {1}}
	m := newMatcher(elements, nb)
	cases := []struct {
		def  string
		atom int
		want bool
	}{
		{"[C;X4]", 0, true},
		{"[C;X3]", 0, false},
		{"[C;X4]([H])([H])[H]", 0, true},
		{"[C;X4]([H])([H])([H])[H]", 0, false},
		{"[C;X4][O;X2][H]", 0, true},
		{"[C;X4][O;X2][C]", 0, false},
		{"[O;X2]([C])[H]", 1, true},
		{"[H][O][C]", 5, true},
		{"[H][O][C]", 2, false},
		{"[H][C]", 2, true},
		{"*[O]", 0, true},
		{"[C]([O])[O]", 0, false},
	}
	for _, c := range cases {
		p, err := parseSMARTS(c.def)
		require.NoError(t, err)
		assert.Equal(t, c.want, m.matches(p, c.atom), "%s on atom %d", c.def, c.atom)
		for i, u := range m.used {
			require.False(t, u, "atom %d left marked after %s", i, c.def)
		}
	}
}

const tiny = `<ForceField name="tiny" combining_rule="geometric">
 <AtomTypes>
  <Type name="t_C" class="CT" element="C" mass="12.011" def="[C;X4]"/>
  <Type name="t_CH3" class="CT" element="C" mass="12.011" def="[C;X4]([H])([H])[H]" overrides="t_C"/>
  <Type name="t_H" class="HC" element="H" mass="1.008" def="[H][C]"/>
 </AtomTypes>
 <HarmonicBondForce>
  <Bond class1="CT" class2="CT" length="0.1529" k="224262.4"/>
  <Bond class1="HC" class2="CT" length="0.109" k="284512.0"/>
 </HarmonicBondForce>
 <HarmonicAngleForce>
  <Angle class1="" class2="CT" class3="" angle="1.911" k="418.4"/>
 </HarmonicAngleForce>
 <RBTorsionForce>
  <Proper class1="HC" class2="CT" class3="CT" class4="HC" c0="0.6276" c1="1.8828" c2="0.0" c3="-2.5104" c4="0.0" c5="0.0"/>
 </RBTorsionForce>
 <NonbondedForce coulomb14scale="0.5" lj14scale="0.5">
  <Atom type="t_C" charge="-0.12" sigma="0.35" epsilon="0.276144"/>
  <Atom type="t_CH3" charge="-0.18" sigma="0.35" epsilon="0.276144"/>
  <Atom type="t_H" charge="0.06" sigma="0.25" epsilon="0.12552"/>
 </NonbondedForce>
</ForceField>`

func ethane(t *testing.T) *sam.Compound {
	t.Helper()
	syms := []string{"C", "C", "H", "H", "H", "H", "H", "H"}
	var atoms []*sam.Atom
	for _, s := range syms {
		atoms = append(atoms, sam.NewAtom(s, s, sam.Chain))
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

func TestReadAndApply(t *testing.T) {
	ff, err := Read(strings.NewReader(tiny))
	require.NoError(t, err)
	assert.Equal(t, "tiny", ff.Name)
	assert.Equal(t, 0.5, ff.LJ14)
	assert.Equal(t, []string{"t_C"}, ff.Type("t_CH3").Overrides)

	S, err := ff.Apply(ethane(t))
	require.NoError(t, err)
	assert.Equal(t, "t_CH3", S.Atom(0).Type)
	assert.Equal(t, "t_H", S.Atom(7).Type)
	assert.InDelta(t, 0, S.Charge(), 1e-12)
	assert.Len(t, S.BondTerms, 7)
	assert.Len(t, S.AngleTerms, 12)
	assert.Len(t, S.DihedralTerms, 9)
	assert.Len(t, S.Pairs, 9)
	assert.Equal(t, "geometric", S.CombiningRule)
	assert.Len(t, S.UsedTypes(), 2)

	massless, err := Read(strings.NewReader(strings.Replace(tiny, `element="H" mass="1.008"`, `element="H"`, 1)))
	require.NoError(t, err)
	assert.Equal(t, sam.MassOf("H"), massless.Type("t_H").Mass)

	chlorine := ethane(t)
	chlorine.Atom(7).Symbol = "Cl"
	_, err = ff.Apply(chlorine)
	assert.ErrorIs(t, err, ErrNoAtomType)
}

func TestPick(t *testing.T) {
	at := func(name string, size int, overrides ...string) *AtomType {
		return &AtomType{Name: name, Overrides: overrides, pattern: &pattern{size: size}}
	}
	_, err := pick(nil)
	assert.ErrorIs(t, err, ErrNoAtomType)

	got, err := pick([]*AtomType{at("small", 2), at("big", 4), at("mid", 3)})
	require.NoError(t, err)
	assert.Equal(t, "big", got.Name)

	got, err = pick([]*AtomType{at("big", 4), at("plain", 1), at("special", 2, "big")})
	require.NoError(t, err)
	assert.Equal(t, "special", got.Name)

	_, err = pick([]*AtomType{at("small", 2), at("b1", 4), at("mid", 3), at("b2", 4)})
	require.ErrorIs(t, err, ErrAmbiguousType)
	assert.Contains(t, err.Error(), "[b1 b2]")
	assert.NotContains(t, err.Error(), "small")
	assert.NotContains(t, err.Error(), "mid")
}

func TestReadErrors(t *testing.T) {
	noNB := strings.Replace(tiny, `<Atom type="t_H" charge="0.06" sigma="0.25" epsilon="0.12552"/>`, "", 1)
	_, err := Read(strings.NewReader(noNB))
	assert.ErrorIs(t, err, ErrMissingParameters)

	badOverride := strings.Replace(tiny, `overrides="t_C"`, `overrides="t_X"`, 1)
	_, err = Read(strings.NewReader(badOverride))
	assert.Error(t, err)

	badSMARTS := strings.Replace(tiny, `def="[H][C]"`, `def="[H][C"`, 1)
	_, err = Read(strings.NewReader(badSMARTS))
	assert.Error(t, err)

	noAngles := strings.Replace(tiny, `<Angle class1="" class2="CT" class3="" angle="1.911" k="418.4"/>`, "", 1)
	ff, err := Read(strings.NewReader(noAngles))
	require.NoError(t, err)
	_, err = ff.Apply(ethane(t))
	assert.ErrorIs(t, err, ErrMissingParameters)

	ambiguous := strings.Replace(tiny, `overrides="t_C"`, `def="[C;X4]"`, 1)
	ambiguous = strings.Replace(ambiguous, `def="[C;X4]([H])([H])[H]" `, "", 1)
	ff, err = Read(strings.NewReader(ambiguous))
	require.NoError(t, err)
	_, err = ff.Apply(ethane(t))
	assert.ErrorIs(t, err, ErrAmbiguousType)
}

func TestParams(t *testing.T) {
	ff, err := Load(shipped)
	require.NoError(t, err)
	a, ok := ff.AngleParams("HC", "CT", "HC")
	require.True(t, ok)
	assert.InDelta(t, 1.881464, a.Theta, 1e-9)
	a, ok = ff.AngleParams("OH", "SI", "OS")
	require.True(t, ok)
	assert.InDelta(t, 418.4, a.K, 1e-9)
	a, ok = ff.AngleParams("CT", "CT", "HC")
	require.True(t, ok)
	assert.InDelta(t, 313.8, a.K, 1e-9)
	_, ok = ff.AngleParams("HC", "HC", "HC")
	assert.False(t, ok)

	d, ok := ff.DihedralParams("HC", "CT", "CT", "CT")
	require.True(t, ok)
	assert.Equal(t, [6]float64{0.6276, 1.8828, 0, -2.5104, 0, 0}, d.C)
	d, ok = ff.DihedralParams("HA", "CA", "CA", "CT")
	require.True(t, ok)
	assert.Equal(t, 30.334, d.C[0])
	d, ok = ff.DihedralParams("OS", "SI", "OS", "SI")
	require.True(t, ok)
	assert.Equal(t, [6]float64{}, d.C)

	b, ok := ff.BondParams("OS", "SI")
	require.True(t, ok)
	assert.Equal(t, 0.163, b.Length)
	_, ok = ff.BondParams("F", "F")
	assert.False(t, ok)
}

func monolayer(t *testing.T, backbone, terminal string, length int) *sam.Compound {
	t.Helper()
	s, err := recipes.SilicaInterface(0.7, 5, recipes.WithCells(2, 2))
	require.NoError(t, err)
	c, err := recipes.NewChain(backbone, length, terminal)
	require.NoError(t, err)
	m, err := recipes.NewMonolayer(s, c, 2, recipes.PatternRandom, 5)
	require.NoError(t, err)
	return m.Compound
}

func countTypes(S *Structure) map[string]int {
	ret := make(map[string]int)
	for _, a := range S.Atoms {
		ret[a.Type]++
	}
	return ret
}

func TestApplyMonolayers(t *testing.T) {
	ff, err := Load(shipped)
	require.NoError(t, err)
	terminals := []string{recipes.Methyl, recipes.Hydroxyl, recipes.Amino, recipes.Hydrogen}
	for _, bb := range recipes.Backbones() {
		for _, term := range terminals {
			for _, length := range []int{2, 5, 9, 17} {
				_, err := recipes.NewChain(bb, length, term)
				if err != nil {
					continue
				}
				S, err := ff.Apply(monolayer(t, bb, term, length))
				require.NoError(t, err, "%s/%s/%d", bb, term, length)
				assert.Len(t, S.BondTerms, len(S.Bonds))
			}
		}
	}
}

func TestApplyAlkyl(t *testing.T) {
	ff, err := Load(shipped)
	require.NoError(t, err)
	S, err := ff.Apply(monolayer(t, recipes.Alkylsilane, recipes.Methyl, 5))
	require.NoError(t, err)
	n := countTypes(S)
	assert.Equal(t, 32, n["opls_SIO"])
	assert.Equal(t, 2, n["opls_SIC"])
	assert.Equal(t, 2, n["opls_CTSi"])
	assert.Equal(t, 2*3, n["opls_CH2"])
	assert.Equal(t, 2, n["opls_CH3"])
	//48 bridges plus the two grafted sites
	assert.Equal(t, 50, n["opls_OB"])
	assert.InDelta(t, 0, S.Charge(), 1e-9)
	for _, a := range S.Atoms {
		assert.NotZero(t, a.Mass)
	}
}

func TestNeutralChains(t *testing.T) {
	ff, err := Load(shipped)
	require.NoError(t, err)
	for _, c := range []struct {
		backbone, terminal string
		length             int
	}{
		{recipes.FluoroAlkylsilane, recipes.Methyl, 9},
		{recipes.PolystyreneSilane, recipes.Methyl, 9},
		{recipes.PVAilane, recipes.Methyl, 9},
		{recipes.PEGSilane, recipes.Methyl, 17},
		{recipes.Alkylsilane, recipes.Amino, 9},
		{recipes.Alkylsilane, recipes.Hydrogen, 9},
		{recipes.Alkylsilane, recipes.Hydroxyl, 9},
		{recipes.PEGSilane, recipes.Hydroxyl, 17},
	} {
		S, err := ff.Apply(monolayer(t, c.backbone, c.terminal, c.length))
		require.NoError(t, err)
		assert.InDelta(t, 0, S.Charge(), 1e-9, "%s/%s", c.backbone, c.terminal)
	}
	S, err := ff.Apply(monolayer(t, recipes.PolystyreneSilane, recipes.Methyl, 5))
	require.NoError(t, err)
	n := countTypes(S)
	assert.Equal(t, 2*2, n["opls_CAipso"])
	assert.Equal(t, 2*2*5, n["opls_CA"])
	assert.Equal(t, 2*2, n["opls_CTbz"])
	assert.False(t, math.IsNaN(S.Charge()))
}

func TestHydroxylCarbons(t *testing.T) {
	ff, err := Load(shipped)
	require.NoError(t, err)
	//the last PEG carbon sits between the ether and the hydroxyl oxygens
	for _, length := range []int{5, 17} {
		S, err := ff.Apply(monolayer(t, recipes.PEGSilane, recipes.Hydroxyl, length))
		require.NoError(t, err, "length %d", length)
		n := countTypes(S)
		assert.Equal(t, 2, n["opls_COC"])
		assert.Zero(t, n["opls_CH2OH"])
		assert.Equal(t, 2, n["opls_OHC"])
	}
	S, err := ff.Apply(monolayer(t, recipes.PEGSilane, recipes.Hydroxyl, 6))
	require.NoError(t, err)
	assert.Equal(t, 2, countTypes(S)["opls_CH2OH"])

	S, err = ff.Apply(monolayer(t, recipes.Alkylsilane, recipes.Hydroxyl, 5))
	require.NoError(t, err)
	n := countTypes(S)
	assert.Equal(t, 2, n["opls_CH2OH"])
	assert.Zero(t, n["opls_COH"])

	S, err = ff.Apply(monolayer(t, recipes.PVAilane, recipes.Methyl, 5))
	require.NoError(t, err)
	assert.Equal(t, 2*2, countTypes(S)["opls_COH"])
}

func TestLocate(t *testing.T) {
	root := t.TempDir()
	job := filepath.Join(root, "project", "workspace", "abc")
	require.NoError(t, os.MkdirAll(job, 0o755))

	_, err := Locate(job, "")
	assert.ErrorIs(t, err, ErrNotFound)

	far := filepath.Join(root, "util", "forcefield")
	require.NoError(t, os.MkdirAll(far, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(far, DefaultName), []byte(tiny), 0o644))
	p, err := Locate(job, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(far, DefaultName), filepath.Clean(p))

	near := filepath.Join(root, "project", "workspace", "util", "forcefield")
	require.NoError(t, os.MkdirAll(near, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(near, DefaultName), []byte(tiny), 0o644))
	p, err = Locate(job, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(near, DefaultName), filepath.Clean(p))

	_, err = Locate(job, filepath.Join(root, "missing.xml"))
	assert.ErrorIs(t, err, ErrNotFound)
}
