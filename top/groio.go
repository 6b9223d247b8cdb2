/*
 * groio.go, part of gosam.
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
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	sam "github.com/samflow/gosam"
	"github.com/samflow/gosam/forcefield"
)

// Term is a bonded term between the atoms with the 0-based indexes IDs.
// OneBased is added to each index when writing.
type Term struct {
	IDs      []int
	FuncType uint
	Params   []float64
	OneBased int
}

func (T *Term) writeAtoms() string {
	add := T.OneBased
	r := make([]string, 0, len(T.IDs))
	for _, v := range T.IDs {
		r = append(r, fmt.Sprintf("%6d", v+add))
	}
	return strings.Join(r, " ")
}

// Writes the term to a string in Gromacs top format.
func (T *Term) ToGro() (string, error) {
	ret := make([]string, 0, 2+len(T.Params))
	ret = append(ret, T.writeAtoms())
	ret = append(ret, fmt.Sprintf("%1d", T.FuncType))
	for _, v := range T.Params {
		ret = append(ret, fmt.Sprintf("%.8g", v))
	}
	return strings.Join(ret, " ") + "\n", nil
}

// molecule is a run of atoms sharing residue name and number, written as
// its own moleculetype.
type molecule struct {
	name       string
	start, end int
	bonds      []*Term
	pairs      []*Term
	angles     []*Term
	dihedrals  []*Term
}

func molecules(C *sam.Compound) ([]*molecule, []int) {
	var ret []*molecule
	owner := make([]int, C.Len())
	for i, a := range C.Atoms {
		if len(ret) == 0 || a.MolName != C.Atom(i-1).MolName || a.MolID != C.Atom(i-1).MolID {
			name := a.MolName
			if name == "" {
				name = "MOL"
			}
			ret = append(ret, &molecule{name: name, start: i})
		}
		m := ret[len(ret)-1]
		m.end = i + 1
		owner[i] = len(ret) - 1
	}
	return ret, owner
}

var errCrossing = errors.New("bonded term between different molecules")

// term builds a term for the given atoms in the molecule that owns them.
func term(mols []*molecule, owner []int, ft uint, params []float64, ids ...int) (*molecule, *Term, error) {
	m := owner[ids[0]]
	local := make([]int, len(ids))
	for k, id := range ids {
		if owner[id] != m {
			return nil, nil, fmt.Errorf("%w: %v", errCrossing, ids)
		}
		local[k] = id - mols[m].start
	}
	return mols[m], &Term{IDs: local, FuncType: ft, Params: params, OneBased: 1}, nil
}

func combRule(rule string) (int, error) {
	switch rule {
	case "geometric":
		return 3, nil
	case "lorentz":
		return 2, nil
	}
	return 0, fmt.Errorf("unsupported combining rule %q", rule)
}

// TopWrite writes S as a GROMACS topology. Each run of atoms with the same
// residue becomes a moleculetype. Bonded terms can't span two of them.
func TopWrite(out io.Writer, S *forcefield.Structure, title string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s", r)
		}
	}()
	comb, err := combRule(S.CombiningRule)
	if err != nil {
		return err
	}
	mols, owner := molecules(S.Compound)
	for _, b := range S.BondTerms {
		m, t, err := term(mols, owner, 1, []float64{b.Length, b.K}, b.I, b.J)
		qerr(err)
		m.bonds = append(m.bonds, t)
	}
	for _, p := range S.Pairs {
		m, t, err := term(mols, owner, 1, nil, p.I, p.J)
		qerr(err)
		m.pairs = append(m.pairs, t)
	}
	for _, a := range S.AngleTerms {
		m, t, err := term(mols, owner, 1, []float64{a.Theta * 180 / math.Pi, a.AngleType.K}, a.I, a.J, a.K)
		qerr(err)
		m.angles = append(m.angles, t)
	}
	for _, d := range S.DihedralTerms {
		m, t, err := term(mols, owner, 3, d.C[:], d.I, d.J, d.K, d.L)
		qerr(err)
		m.dihedrals = append(m.dihedrals, t)
	}

	w := bufio.NewWriter(out)
	ws := func(format string, a ...interface{}) {
		_, err := w.WriteString(sf(format, a...))
		qerr(err)
	}
	ws("; %s\n", title)
	ws("; force field: %s\n\n", S.Forcefield)
	ws("[ defaults ]\n; nbfunc comb-rule gen-pairs fudgeLJ fudgeQQ\n")
	ws("1 %d yes %g %g\n\n", comb, S.LJ14, S.Coulomb14)
	ws("[ atomtypes ]\n; name at.num mass charge ptype sigma epsilon\n")
	for _, t := range S.UsedTypes() {
		ws("%-12s %3d %10.5f %10.5f A %.8g %.8g\n", t.Name, sam.AtomicNumber(t.Element), t.Mass, t.Charge, t.Sigma, t.Epsilon)
	}
	for _, m := range mols {
		ws("\n[ moleculetype ]\n; name nrexcl\n%s 3\n", m.name)
		ws("\n[ atoms ]\n; nr type resnr residue atom cgnr charge mass\n")
		for i := m.start; i < m.end; i++ {
			a := S.Atom(i)
			resnr := a.MolID
			if resnr == 0 {
				resnr = 1
			}
			nr := i - m.start + 1
			ws("%6d %-12s %5d %-5s %-5s %6d %10.5f %10.5f\n", nr, a.Type, resnr, m.name, a.Name, nr, a.Charge, a.Mass)
		}
		sections := []struct {
			name, comment string
			terms         []*Term
		}{
			{"bonds", "ai aj funct b0 kb", m.bonds},
			{"pairs", "ai aj funct", m.pairs},
			{"angles", "ai aj ak funct theta cth", m.angles},
			{"dihedrals", "ai aj ak al funct c0 c1 c2 c3 c4 c5", m.dihedrals},
		}
		for _, s := range sections {
			if len(s.terms) == 0 {
				continue
			}
			ws("\n[ %s ]\n; %s\n", s.name, s.comment)
			qerr(printGro(w, s.terms))
		}
	}
	ws("\n[ system ]\n%s\n\n[ molecules ]\n; name count\n", title)
	for _, m := range mols {
		ws("%-12s 1\n", m.name)
	}
	return w.Flush()
}

// TopFileWrite writes S as a GROMACS topology to the file fname.
func TopFileWrite(fname string, S *forcefield.Structure, title string) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := TopWrite(f, S, title); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", fname, err)
	}
	return f.Close()
}

// Section is a bracketed section of a GROMACS top or ndx file, with its
// non-empty lines stripped of comments.
type Section struct {
	Name  string
	Lines []string
}

// ReadSections reads the sections of a GROMACS top or ndx file, in order.
// Lines before the first header are discarded.
func ReadSections(in io.Reader) ([]Section, error) {
	var ret []Section
	s := bufio.NewScanner(in)
	s.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for s.Scan() {
		line := cleanString(s.Text())
		if line == "" {
			continue
		}
		if h := header(line); h != "" {
			ret = append(ret, Section{Name: h})
			continue
		}
		if len(ret) > 0 {
			ret[len(ret)-1].Lines = append(ret[len(ret)-1].Lines, line)
		}
	}
	return ret, s.Err()
}
