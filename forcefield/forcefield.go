/*
 * forcefield.go, part of gosam.
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

// Package forcefield reads Foyer-style XML force fields and applies them to
// compounds: every atom gets a type picked by SMARTS matching, and every
// bond, angle and proper dihedral gets parameters looked up by atom class.
package forcefield

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	sam "github.com/samflow/gosam"
)

var (
	ErrNotFound          = errors.New("force field file not found")
	ErrNoAtomType        = errors.New("no atom type matches")
	ErrAmbiguousType     = errors.New("several atom types match")
	ErrMissingParameters = errors.New("missing parameters")
)

// AtomType is an atom type with its nonbonded parameters. Lengths are in nm,
// energies in kJ/mol, masses in amu and charges in e.
type AtomType struct {
	Name      string
	Class     string
	Element   string
	Mass      float64
	Def       string
	Overrides []string
	Desc      string
	Charge    float64
	Sigma     float64
	Epsilon   float64
	pattern   *pattern
}

// BondType is a harmonic bond between two atom classes.
type BondType struct {
	Classes [2]string
	Length  float64
	K       float64
}

// AngleType is a harmonic angle. Theta is in radians. An empty class matches
// any class.
type AngleType struct {
	Classes [3]string
	Theta   float64
	K       float64
}

// RBType is a Ryckaert-Bellemans proper dihedral. An empty class matches any
// class.
type RBType struct {
	Classes [4]string
	C       [6]float64
}

// Forcefield is a set of atom types and bonded parameters.
type Forcefield struct {
	Name          string
	Version       string
	CombiningRule string
	Coulomb14     float64
	LJ14          float64
	Types         []*AtomType
	Bonds         []BondType
	Angles        []AngleType
	Dihedrals     []RBType
	byName        map[string]*AtomType
}

type xmlForcefield struct {
	XMLName       xml.Name      `xml:"ForceField"`
	Name          string        `xml:"name,attr"`
	Version       string        `xml:"version,attr"`
	CombiningRule string        `xml:"combining_rule,attr"`
	Types         []xmlAtomType `xml:"AtomTypes>Type"`
	Bonds         []xmlBond     `xml:"HarmonicBondForce>Bond"`
	Angles        []xmlAngle    `xml:"HarmonicAngleForce>Angle"`
	Propers       []xmlProper   `xml:"RBTorsionForce>Proper"`
	Nonbonded     xmlNonbondeds `xml:"NonbondedForce"`
}

type xmlAtomType struct {
	Name      string  `xml:"name,attr"`
	Class     string  `xml:"class,attr"`
	Element   string  `xml:"element,attr"`
	Mass      float64 `xml:"mass,attr"`
	Def       string  `xml:"def,attr"`
	Overrides string  `xml:"overrides,attr"`
	Desc      string  `xml:"desc,attr"`
}

type xmlBond struct {
	Class1 string  `xml:"class1,attr"`
	Class2 string  `xml:"class2,attr"`
	Length float64 `xml:"length,attr"`
	K      float64 `xml:"k,attr"`
}

type xmlAngle struct {
	Class1 string  `xml:"class1,attr"`
	Class2 string  `xml:"class2,attr"`
	Class3 string  `xml:"class3,attr"`
	Angle  float64 `xml:"angle,attr"`
	K      float64 `xml:"k,attr"`
}

type xmlProper struct {
	Class1 string  `xml:"class1,attr"`
	Class2 string  `xml:"class2,attr"`
	Class3 string  `xml:"class3,attr"`
	Class4 string  `xml:"class4,attr"`
	C0     float64 `xml:"c0,attr"`
	C1     float64 `xml:"c1,attr"`
	C2     float64 `xml:"c2,attr"`
	C3     float64 `xml:"c3,attr"`
	C4     float64 `xml:"c4,attr"`
	C5     float64 `xml:"c5,attr"`
}

type xmlNonbondeds struct {
	Coulomb14 float64        `xml:"coulomb14scale,attr"`
	LJ14      float64        `xml:"lj14scale,attr"`
	Atoms     []xmlNonbonded `xml:"Atom"`
}

type xmlNonbonded struct {
	Type    string  `xml:"type,attr"`
	Charge  float64 `xml:"charge,attr"`
	Sigma   float64 `xml:"sigma,attr"`
	Epsilon float64 `xml:"epsilon,attr"`
}

// Load reads the force field in the XML file fname.
func Load(fname string) (*Forcefield, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	ff, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return ff, nil
}

// Read parses a force field from XML. Every atom type needs a valid
// SMARTS definition and nonbonded parameters.
func Read(r io.Reader) (*Forcefield, error) {
	var x xmlForcefield
	if err := xml.NewDecoder(r).Decode(&x); err != nil {
		return nil, fmt.Errorf("decoding force field: %w", err)
	}
	ff := &Forcefield{
		Name:          x.Name,
		Version:       x.Version,
		CombiningRule: x.CombiningRule,
		Coulomb14:     x.Nonbonded.Coulomb14,
		LJ14:          x.Nonbonded.LJ14,
		byName:        make(map[string]*AtomType, len(x.Types)),
	}
	if ff.CombiningRule == "" {
		ff.CombiningRule = "geometric"
	}
	for _, t := range x.Types {
		if _, dup := ff.byName[t.Name]; dup {
			return nil, fmt.Errorf("atom type %s defined twice", t.Name)
		}
		p, err := parseSMARTS(t.Def)
		if err != nil {
			return nil, fmt.Errorf("atom type %s: %w", t.Name, err)
		}
		at := &AtomType{Name: t.Name, Class: t.Class, Element: t.Element, Mass: t.Mass, Def: t.Def, Desc: t.Desc, pattern: p}
		if at.Mass == 0 {
			at.Mass = sam.MassOf(at.Element)
		}
		for _, o := range strings.Split(t.Overrides, ",") {
			if o = strings.TrimSpace(o); o != "" {
				at.Overrides = append(at.Overrides, o)
			}
		}
		ff.Types = append(ff.Types, at)
		ff.byName[at.Name] = at
	}
	for _, t := range ff.Types {
		for _, o := range t.Overrides {
			if _, ok := ff.byName[o]; !ok {
				return nil, fmt.Errorf("atom type %s overrides unknown type %s", t.Name, o)
			}
		}
	}
	seen := make(map[string]bool)
	for _, nb := range x.Nonbonded.Atoms {
		t, ok := ff.byName[nb.Type]
		if !ok {
			return nil, fmt.Errorf("nonbonded parameters for unknown atom type %s", nb.Type)
		}
		t.Charge, t.Sigma, t.Epsilon = nb.Charge, nb.Sigma, nb.Epsilon
		seen[nb.Type] = true
	}
	for _, t := range ff.Types {
		if !seen[t.Name] {
			return nil, fmt.Errorf("%w: no nonbonded parameters for atom type %s", ErrMissingParameters, t.Name)
		}
	}
	for _, b := range x.Bonds {
		ff.Bonds = append(ff.Bonds, BondType{Classes: [2]string{b.Class1, b.Class2}, Length: b.Length, K: b.K})
	}
	for _, a := range x.Angles {
		ff.Angles = append(ff.Angles, AngleType{Classes: [3]string{a.Class1, a.Class2, a.Class3}, Theta: a.Angle, K: a.K})
	}
	for _, d := range x.Propers {
		ff.Dihedrals = append(ff.Dihedrals, RBType{
			Classes: [4]string{d.Class1, d.Class2, d.Class3, d.Class4},
			C:       [6]float64{d.C0, d.C1, d.C2, d.C3, d.C4, d.C5},
		})
	}
	return ff, nil
}

// Type returns the atom type called name, or nil.
func (ff *Forcefield) Type(name string) *AtomType {
	return ff.byName[name]
}

// classMatch returns the number of non-wildcard classes in want if it
// matches got, or -1.
func classMatch(want, got []string) int {
	n := 0
	for i, w := range want {
		if w == "" {
			continue
		}
		if w != got[i] {
			return -1
		}
		n++
	}
	return n
}

// bestMatch returns the index of the most specific of n entries matching
// the classes either forward or reversed, or -1. Ties go to the first entry.
func bestMatch(n int, classes func(int) []string, got []string) int {
	rev := make([]string, len(got))
	for i, c := range got {
		rev[len(got)-1-i] = c
	}
	best, score := -1, -1
	for i := 0; i < n; i++ {
		c := classes(i)
		s := classMatch(c, got)
		if r := classMatch(c, rev); r > s {
			s = r
		}
		if s > score {
			best, score = i, s
		}
	}
	return best
}

// BondParams returns the bond type for the classes a and b.
func (ff *Forcefield) BondParams(a, b string) (BondType, bool) {
	i := bestMatch(len(ff.Bonds), func(i int) []string { return ff.Bonds[i].Classes[:] }, []string{a, b})
	if i < 0 {
		return BondType{}, false
	}
	return ff.Bonds[i], true
}

// AngleParams returns the angle type for the classes a-b-c, b being the vertex.
func (ff *Forcefield) AngleParams(a, b, c string) (AngleType, bool) {
	i := bestMatch(len(ff.Angles), func(i int) []string { return ff.Angles[i].Classes[:] }, []string{a, b, c})
	if i < 0 {
		return AngleType{}, false
	}
	return ff.Angles[i], true
}

// DihedralParams returns the RB dihedral type for the classes a-b-c-d.
func (ff *Forcefield) DihedralParams(a, b, c, d string) (RBType, bool) {
	i := bestMatch(len(ff.Dihedrals), func(i int) []string { return ff.Dihedrals[i].Classes[:] }, []string{a, b, c, d})
	if i < 0 {
		return RBType{}, false
	}
	return ff.Dihedrals[i], true
}
