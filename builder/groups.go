/*
 * groups.go, part of gosam.
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

package builder

import (
	"math"

	sam "github.com/samflow/gosam"
	"github.com/samflow/gosam/recipes"
	"github.com/samflow/gosam/top"
)

// IndexGroups splits the atoms of D for the MD engine. For each monolayer
// there is a group with all its atoms, its substrate, its chains, its
// terminal groups (named after the terminal group) and its frozen part: the
// substrate atoms within freeze nm of the monolayer's outer face. Then come
// the union of the frozen parts and the rest of the system.
func IndexGroups(D *recipes.DualSurface, terminal string, freeze float64) []top.Group {
	all := make([]int, D.Len())
	for i := range all {
		all[i] = i
	}
	groups := []top.Group{{Name: "System", Atoms: all}}
	frozen := make([]bool, D.Len())
	for _, m := range []struct {
		name  string
		id    int
		outer float64 //+1 if the outer face is the top one
	}{
		{recipes.BottomName, recipes.BottomID, -1},
		{recipes.TopName, recipes.TopID, 1},
	} {
		mine := D.Select(func(a *sam.Atom) bool { return a.MolID == m.id })
		var sub, chains, term []int
		face := math.Inf(int(-m.outer))
		for _, i := range mine {
			a := D.Atom(i)
			switch a.Role {
			case sam.Substrate:
				sub = append(sub, i)
				z := D.Pos(i)[2]
				if m.outer*z > m.outer*face {
					face = z
				}
			case sam.Terminal:
				term = append(term, i)
				chains = append(chains, i)
			default:
				chains = append(chains, i)
			}
		}
		var fr []int
		for _, i := range sub {
			if math.Abs(D.Pos(i)[2]-face) < freeze {
				fr = append(fr, i)
				frozen[i] = true
			}
		}
		groups = append(groups,
			top.Group{Name: m.name, Atoms: mine},
			top.Group{Name: m.name + "_substrate", Atoms: nonNil(sub)},
			top.Group{Name: m.name + "_chains", Atoms: nonNil(chains)},
			top.Group{Name: m.name + "_" + terminal, Atoms: nonNil(term)},
			top.Group{Name: m.name + "_frozen", Atoms: nonNil(fr)},
		)
	}
	var fr, mobile []int
	for i, f := range frozen {
		if f {
			fr = append(fr, i)
		} else {
			mobile = append(mobile, i)
		}
	}
	return append(groups, top.Group{Name: "frozen", Atoms: nonNil(fr)}, top.Group{Name: "mobile", Atoms: nonNil(mobile)})
}

func nonNil(s []int) []int {
	if s == nil {
		return []int{}
	}
	return s
}
