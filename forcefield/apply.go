/*
 * apply.go, part of gosam.
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
	"fmt"
	"sort"

	sam "github.com/samflow/gosam"
	"github.com/samflow/gosam/chemgraph"
)

// BondTerm is a parametrized bond between atoms I and J.
type BondTerm struct {
	I, J int
	BondType
}

// AngleTerm is a parametrized angle with vertex J.
type AngleTerm struct {
	I, J, K int
	AngleType
}

// DihedralTerm is a parametrized proper dihedral around the J-K bond.
type DihedralTerm struct {
	I, J, K, L int
	RBType
}

// Structure is a compound with a force field applied. Each atom's Type,
// Charge and Mass are set from its atom type.
type Structure struct {
	*sam.Compound
	Types         []*AtomType
	BondTerms     []BondTerm
	AngleTerms    []AngleTerm
	DihedralTerms []DihedralTerm
	Pairs         []chemgraph.Pair
	CombiningRule string
	Coulomb14     float64
	LJ14          float64
	Forcefield    string
}

// Charge returns the total charge of the structure.
func (S *Structure) Charge() float64 {
	var q float64
	for _, a := range S.Atoms {
		q += a.Charge
	}
	return q
}

// UsedTypes returns the atom types present in the structure, in the order
// they first appear.
func (S *Structure) UsedTypes() []*AtomType {
	seen := make(map[*AtomType]bool)
	var ret []*AtomType
	for _, t := range S.Types {
		if !seen[t] {
			seen[t] = true
			ret = append(ret, t)
		}
	}
	return ret
}

// AtomTypes returns the name of the type of each atom of C, matching the
// types' SMARTS on the bond graph. Atom elements are read from Symbol.
// When several types match, those overridden by another matching type are
// dropped, then the type with the largest pattern wins.
func (ff *Forcefield) AtomTypes(C *sam.Compound) ([]*AtomType, error) {
	g := chemgraph.FromCompound(C)
	elements := make([]string, C.Len())
	nb := make([][]int, C.Len())
	for i, a := range C.Atoms {
		elements[i] = a.Symbol
		nb[i] = g.Neighbors(i)
	}
	m := newMatcher(elements, nb)
	byElement := make(map[string][]*AtomType)
	for _, t := range ff.Types {
		byElement[t.Element] = append(byElement[t.Element], t)
	}
	ret := make([]*AtomType, C.Len())
	for i := range C.Atoms {
		var cands []*AtomType
		for _, t := range byElement[elements[i]] {
			if m.matches(t.pattern, i) {
				cands = append(cands, t)
			}
		}
		t, err := pick(cands)
		if err != nil {
			a := C.Atom(i)
			return nil, fmt.Errorf("atom %d (%s %s, %d bonds): %w", i+1, a.Name, a.MolName, len(nb[i]), err)
		}
		ret[i] = t
	}
	return ret, nil
}

func pick(cands []*AtomType) (*AtomType, error) {
	if len(cands) == 0 {
		return nil, ErrNoAtomType
	}
	overridden := make(map[string]bool)
	for _, c := range cands {
		for _, o := range c.Overrides {
			overridden[o] = true
		}
	}
	var left []*AtomType
	for _, c := range cands {
		if !overridden[c.Name] {
			left = append(left, c)
		}
	}
	sort.SliceStable(left, func(a, b int) bool { return left[a].pattern.size > left[b].pattern.size })
	if len(left) > 1 && left[0].pattern.size == left[1].pattern.size {
		var names []string
		for _, l := range left {
			if l.pattern.size == left[0].pattern.size {
				names = append(names, l.Name)
			}
		}
		return nil, fmt.Errorf("%w: %v", ErrAmbiguousType, names)
	}
	return left[0], nil
}

// Apply types every atom of C and parametrizes its bonds, angles and proper
// dihedrals. C's atoms are modified in place and shared with the returned
// structure. Any term without parameters is an error.
func (ff *Forcefield) Apply(C *sam.Compound) (*Structure, error) {
	types, err := ff.AtomTypes(C)
	if err != nil {
		return nil, fmt.Errorf("%w in %s", err, C.Name)
	}
	for i, a := range C.Atoms {
		a.Type = types[i].Name
		a.Charge = types[i].Charge
		a.Mass = types[i].Mass
	}
	S := &Structure{
		Compound:      C,
		Types:         types,
		CombiningRule: ff.CombiningRule,
		Coulomb14:     ff.Coulomb14,
		LJ14:          ff.LJ14,
		Forcefield:    ff.Name,
	}
	class := func(i int) string { return types[i].Class }
	g := chemgraph.FromCompound(C)
	for _, b := range g.Bonds() {
		p, ok := ff.BondParams(class(b.I), class(b.J))
		if !ok {
			return nil, fmt.Errorf("%w: bond %s-%s", ErrMissingParameters, class(b.I), class(b.J))
		}
		S.BondTerms = append(S.BondTerms, BondTerm{I: b.I, J: b.J, BondType: p})
	}
	for _, a := range g.Angles() {
		p, ok := ff.AngleParams(class(a.I), class(a.J), class(a.K))
		if !ok {
			return nil, fmt.Errorf("%w: angle %s-%s-%s", ErrMissingParameters, class(a.I), class(a.J), class(a.K))
		}
		S.AngleTerms = append(S.AngleTerms, AngleTerm{I: a.I, J: a.J, K: a.K, AngleType: p})
	}
	for _, d := range g.Dihedrals() {
		p, ok := ff.DihedralParams(class(d.I), class(d.J), class(d.K), class(d.L))
		if !ok {
			return nil, fmt.Errorf("%w: dihedral %s-%s-%s-%s", ErrMissingParameters, class(d.I), class(d.J), class(d.K), class(d.L))
		}
		S.DihedralTerms = append(S.DihedralTerms, DihedralTerm{I: d.I, J: d.J, K: d.K, L: d.L, RBType: p})
	}
	S.Pairs = g.Pairs14()
	return S, nil
}
