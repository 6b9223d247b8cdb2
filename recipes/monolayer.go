/*
 * monolayer.go, part of gosam.
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
	"math/rand"
	"sort"

	sam "github.com/samflow/gosam"
)

// Grafting patterns.
const (
	PatternRandom = "random"
	PatternGrid   = "grid"
)

var (
	ErrTooFewSites    = errors.New("not enough grafting sites")
	ErrUnknownPattern = errors.New("unknown grafting pattern")
)

// Monolayer is a silica surface with chains grafted on some of its sites.
// Its atoms are the substrate's, then the chains', then the hydrogens
// capping the sites left free.
type Monolayer struct {
	*sam.Compound
	Chain *Chain

	// Grafted holds the indexes, in the surface's Sites, that carry a chain.
	Grafted []int
}

// Patterns returns the names of the supported grafting patterns.
func Patterns() []string {
	return []string{PatternRandom, PatternGrid}
}

// choose returns n of the surface's sites, in increasing order.
func choose(S *Surface, n int, pattern string, seed int64) ([]int, error) {
	var ret []int
	switch pattern {
	case PatternRandom:
		ret = rand.New(rand.NewSource(seed)).Perm(len(S.Sites))[:n]
	case PatternGrid:
		order := S.sitesByPosition()
		ret = make([]int, n)
		for k := range ret {
			ret[k] = order[k*len(order)/n]
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPattern, pattern)
	}
	sort.Ints(ret)
	return ret, nil
}

// NewMonolayer grafts n copies of chain on surface, picking the sites
// according to pattern. The random pattern draws the sites from seed.
// Each chain's Si is placed BondSiO above its site oxygen; free sites get
// a hydrogen. Neither surface nor chain are modified.
func NewMonolayer(surface *Surface, chain *Chain, n int, pattern string, seed int64) (*Monolayer, error) {
	if n < 0 || n > len(surface.Sites) {
		return nil, fmt.Errorf("%w: %d chains requested, the surface has %d sites", ErrTooFewSites, n, len(surface.Sites))
	}
	grafted, err := choose(surface, n, pattern, seed)
	if err != nil {
		return nil, err
	}
	M := &Monolayer{Compound: surface.Compound.Copy(), Chain: chain, Grafted: grafted}
	M.Name = "monolayer"
	taken := make(map[int]bool, n)
	for _, site := range grafted {
		taken[site] = true
		p := surface.SitePos(site)
		c := chain.Copy()
		c.Translate(p[0], p[1], p[2]+BondSiO)
		si := M.Len() //the chain's Si is its first atom
		M.Add(c)
		M.Bonds = append(M.Bonds, sam.Bond{I: surface.Sites[site], J: si})
	}
	var s sketch
	var caps []int
	for i, o := range surface.Sites {
		if taken[i] {
			continue
		}
		s.add("H", sam.Substrate, add3(surface.SitePos(i), [3]float64{0, 0, BondOH}), -1)
		caps = append(caps, o)
	}
	if len(caps) > 0 {
		H, err := s.compound("caps")
		if err != nil {
			return nil, err
		}
		off := M.Len()
		M.Add(H)
		for k, o := range caps {
			M.Bonds = append(M.Bonds, sam.Bond{I: o, J: off + k})
		}
	}
	return M, nil
}
