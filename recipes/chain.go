/*
 * chain.go, part of gosam.
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

package recipes

import (
	"errors"
	"fmt"
	"math"

	sam "github.com/samflow/gosam"
)

// Backbone chemistries.
const (
	Alkylsilane       = "Alkylsilane"
	FluoroAlkylsilane = "FluoroAlkylsilane"
	PEGSilane         = "PEGSilane"
	PolystyreneSilane = "PolystyreneSilane"
	PVAilane          = "PVAilane"
)

// Terminal groups.
const (
	Methyl   = "methyl"
	Hydroxyl = "hydroxyl"
	Amino    = "amino"
	Hydrogen = "hydrogen"
)

var (
	ErrUnknownBackbone  = errors.New("unknown backbone")
	ErrUnknownTerminal  = errors.New("unknown terminal group")
	ErrChainLength      = errors.New("chain too short")
	ErrUnsupportedChain = errors.New("unsupported chain")
)

// Chain geometry, in nm.
const (
	BondSiC = 0.186
	BondCH  = 0.109
	BondCO  = 0.143
	BondNH  = 0.101
	rise    = 0.1277 //z advance per backbone atom
	zig     = 0.0861 //x offset of even backbone atoms
	ringR   = 0.139
	ipso    = 0.151
	ringH   = 0.247 //distance from ring center to ring hydrogens
)

var terminalHeavy = map[string]int{Methyl: 1, Hydroxyl: 1, Amino: 1, Hydrogen: 0}

// Chain is a silane chain prototype. The anchoring Si sits at the origin
// with two hydroxyls along y, and the backbone grows along +z. The Si is
// meant to bond to a grafting oxygen placed BondSiO below it.
type Chain struct {
	*sam.Compound
	Backbone string
	Terminal string

	// Length counts backbone heavy atoms plus the terminal group's heavy atom.
	Length int
}

// Backbones returns the names of the supported backbones.
func Backbones() []string {
	return []string{Alkylsilane, FluoroAlkylsilane, PEGSilane, PolystyreneSilane, PVAilane}
}

func backboneElements(backbone string, n int) ([]string, error) {
	e := make([]string, n)
	for i := range e {
		e[i] = "C"
	}
	switch backbone {
	case Alkylsilane, FluoroAlkylsilane, PolystyreneSilane, PVAilane:
	case PEGSilane:
		for i := range e {
			if i%3 == 2 {
				e[i] = "O"
			}
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackbone, backbone)
	}
	return e, nil
}

// NewChain builds the prototype of a chain with the given backbone,
// length and terminal group.
func NewChain(backbone string, length int, terminal string) (*Chain, error) {
	th, ok := terminalHeavy[terminal]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTerminal, terminal)
	}
	nb := length - th
	if nb < 1 {
		return nil, fmt.Errorf("%w: length %d with a %s terminal group leaves no backbone", ErrChainLength, length, terminal)
	}
	elems, err := backboneElements(backbone, nb)
	if err != nil {
		return nil, err
	}
	if elems[nb-1] == "O" && (terminal == Hydroxyl || terminal == Amino) {
		return nil, fmt.Errorf("%w: %s backbone of %d atoms ends in an ether oxygen and can't carry a %s group", ErrUnsupportedChain, backbone, nb, terminal)
	}

	var s sketch
	si := s.add("Si", sam.Chain, [3]float64{0, 0, 0}, -1)
	for _, side := range []float64{1, -1} {
		o := s.add("O", sam.Chain, [3]float64{0, side * BondSiO, 0}, si)
		s.add("H", sam.Chain, [3]float64{0, side * (BondSiO + BondOH), 0}, o)
	}
	prev := si
	for i := 1; i <= nb; i++ {
		p, sx := backbonePos(i)
		c := s.add(elems[i-1], sam.Chain, p, prev)
		prev = c
		if elems[i-1] != "C" {
			continue
		}
		side := 1.0 //side of the substituent on even carbons
		if i%4 == 0 {
			side = -1
		}
		switch {
		case backbone == FluoroAlkylsilane && i > 2:
			for _, sy := range []float64{1, -1} {
				s.add("F", sam.Chain, add3(p, [3]float64{sx * 0.078, sy * 0.110, 0}), c)
			}
		case backbone == PVAilane && i%2 == 0:
			o := s.add("O", sam.Chain, add3(p, [3]float64{sx * 0.0825, side * 0.1168, 0}), c)
			s.add("H", sam.Chain, add3(s.pos(o), [3]float64{sx * BondOH, 0, 0}), o)
			s.add("H", sam.Chain, add3(p, [3]float64{sx * 0.0629, -side * 0.089, 0}), c)
		case backbone == PolystyreneSilane && i%2 == 0:
			phenyl(&s, c, p, side)
			s.add("H", sam.Chain, add3(p, [3]float64{sx * 0.0629, -side * 0.089, 0}), c)
		default:
			methylene(&s, c, p, sx, sam.Chain)
		}
	}

	p, sx := backbonePos(nb + 1)
	switch terminal {
	case Methyl:
		c := s.add("C", sam.Terminal, p, prev)
		methylene(&s, c, p, sx, sam.Terminal)
		s.add("H", sam.Terminal, add3(p, [3]float64{0, 0, BondCH}), c)
	case Hydroxyl:
		o := s.add("O", sam.Terminal, p, prev)
		s.add("H", sam.Terminal, add3(p, [3]float64{0, 0, BondOH}), o)
	case Amino:
		n := s.add("N", sam.Terminal, p, prev)
		for _, sy := range []float64{1, -1} {
			s.add("H", sam.Terminal, add3(p, [3]float64{sx * 0.058, sy * 0.082, 0}), n)
		}
	case Hydrogen:
		s.add("H", sam.Terminal, add3(s.pos(prev), [3]float64{0, 0, BondCH}), prev)
	}

	C, err := s.compound(backbone)
	if err != nil {
		return nil, err
	}
	return &Chain{Compound: C, Backbone: backbone, Terminal: terminal, Length: length}, nil
}

// backbonePos returns the position of the ith backbone atom (1-based) and
// the x direction its substituents point to.
func backbonePos(i int) ([3]float64, float64) {
	z := BondSiC + float64(i-1)*rise
	if i%2 == 1 {
		return [3]float64{0, 0, z}, -1
	}
	return [3]float64{zig, 0, z}, 1
}

func methylene(s *sketch, c int, p [3]float64, sx float64, role sam.Role) {
	for _, sy := range []float64{1, -1} {
		s.add("H", role, add3(p, [3]float64{sx * 0.0629, sy * 0.089, 0}), c)
	}
}

// phenyl adds a benzene ring bonded to the atom c at p. The ring lies in
// the xy plane on the side of y given by side.
func phenyl(s *sketch, c int, p [3]float64, side float64) {
	center := add3(p, [3]float64{0, side * (ipso + ringR), 0})
	ring := make([]int, 6)
	for k := 0; k < 6; k++ {
		th := float64(k) * math.Pi / 3
		dir := [3]float64{math.Sin(th), -side * math.Cos(th), 0}
		to := c
		if k > 0 {
			to = ring[k-1]
		}
		ring[k] = s.add("C", sam.Chain, add3(center, scale3(dir, ringR)), to)
		if k > 0 {
			s.add("H", sam.Chain, add3(center, scale3(dir, ringH)), ring[k])
		}
	}
	s.bonds = append(s.bonds, sam.Bond{I: ring[5], J: ring[0]})
}
