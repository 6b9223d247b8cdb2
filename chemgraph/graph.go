/*
 * graph.go, part of gosam.
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

// Package chemgraph builds gonum graphs from the bonds of a compound, and
// enumerates the bonded terms (angles, dihedrals and 1-4 pairs) a force
// field needs.
package chemgraph

import (
	"math"
	"sort"

	sam "github.com/samflow/gosam"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Atom is a node of the bond graph. Its ID is the atom's index in the compound.
type Atom struct {
	*sam.Atom
	Index int
}

func (A *Atom) ID() int64 {
	return int64(A.Index)
}

// Bond is an edge of the bond graph, weighted by its length.
type Bond struct {
	At1, At2 *Atom
	Length   float64
}

func (B *Bond) From() graph.Node {
	return B.At1
}

func (B *Bond) To() graph.Node {
	return B.At2
}

func (B *Bond) ReversedEdge() graph.Edge {
	return &Bond{At1: B.At2, At2: B.At1, Length: B.Length}
}

func (B *Bond) Weight() float64 {
	return B.Length
}

// Angle is a bond angle with J as vertex. I<K.
type Angle struct {
	I, J, K int
}

// Dihedral is a proper dihedral around the J-K bond. J<K.
type Dihedral struct {
	I, J, K, L int
}

// Pair is a 1-4 pair. I<J.
type Pair struct {
	I, J int
}

// Topology is the bond graph of a compound. It implements gonum's
// graph.Undirected and graph.Weighted.
type Topology struct {
	*simple.WeightedUndirectedGraph
	atoms []*Atom
	nb    [][]int
}

// FromCompound returns the bond graph of C.
func FromCompound(C *sam.Compound) *Topology {
	T := &Topology{
		WeightedUndirectedGraph: simple.NewWeightedUndirectedGraph(0, math.Inf(1)),
		atoms:                   make([]*Atom, C.Len()),
	}
	for i, a := range C.Atoms {
		T.atoms[i] = &Atom{Atom: a, Index: i}
		T.AddNode(T.atoms[i])
	}
	for _, b := range C.Bonds {
		p, q := C.Pos(b.I), C.Pos(b.J)
		l := math.Sqrt((p[0]-q[0])*(p[0]-q[0]) + (p[1]-q[1])*(p[1]-q[1]) + (p[2]-q[2])*(p[2]-q[2]))
		T.SetWeightedEdge(&Bond{At1: T.atoms[b.I], At2: T.atoms[b.J], Length: l})
	}
	T.nb = make([][]int, len(T.atoms))
	for i := range T.atoms {
		for _, n := range graph.NodesOf(T.From(int64(i))) {
			T.nb[i] = append(T.nb[i], int(n.ID()))
		}
		sort.Ints(T.nb[i])
	}
	return T
}

// Len returns the number of atoms in the graph.
func (T *Topology) Len() int {
	return len(T.atoms)
}

// Atom returns the node for the ith atom.
func (T *Topology) Atom(i int) *Atom {
	return T.atoms[i]
}

// Neighbors returns the sorted indexes of the atoms bonded to the ith one.
// The slice must not be modified.
func (T *Topology) Neighbors(i int) []int {
	return T.nb[i]
}

// Degree returns the number of bonds of the ith atom.
func (T *Topology) Degree(i int) int {
	return len(T.nb[i])
}

// Bonded reports whether atoms i and j share a bond.
func (T *Topology) Bonded(i, j int) bool {
	return T.HasEdgeBetween(int64(i), int64(j))
}

// Bonds returns every bond once, as I<J pairs sorted by I, then J.
func (T *Topology) Bonds() []sam.Bond {
	var ret []sam.Bond
	for i, nb := range T.nb {
		for _, j := range nb {
			if i < j {
				ret = append(ret, sam.Bond{I: i, J: j})
			}
		}
	}
	return ret
}

// Angles returns every bond angle once, sorted by vertex.
func (T *Topology) Angles() []Angle {
	var ret []Angle
	for j, nb := range T.nb {
		for a := 0; a < len(nb); a++ {
			for b := a + 1; b < len(nb); b++ {
				ret = append(ret, Angle{nb[a], j, nb[b]})
			}
		}
	}
	return ret
}

// Dihedrals returns every proper dihedral once, in the order of their
// central bonds.
func (T *Topology) Dihedrals() []Dihedral {
	var ret []Dihedral
	for _, b := range T.Bonds() {
		for _, i := range T.nb[b.I] {
			if i == b.J {
				continue
			}
			for _, l := range T.nb[b.J] {
				if l == b.I || l == i {
					continue
				}
				ret = append(ret, Dihedral{i, b.I, b.J, l})
			}
		}
	}
	return ret
}

// Pairs14 returns the pairs of atoms at the ends of a dihedral that are
// not also 1-2 or 1-3 neighbors, each once, sorted.
func (T *Topology) Pairs14() []Pair {
	seen := make(map[Pair]bool)
	var ret []Pair
	for _, d := range T.Dihedrals() {
		p := Pair{d.I, d.L}
		if p.I > p.J {
			p.I, p.J = p.J, p.I
		}
		if seen[p] || T.Bonded(p.I, p.J) || T.shareNeighbor(p.I, p.J) {
			continue
		}
		seen[p] = true
		ret = append(ret, p)
	}
	sort.Slice(ret, func(a, b int) bool {
		if ret[a].I != ret[b].I {
			return ret[a].I < ret[b].I
		}
		return ret[a].J < ret[b].J
	})
	return ret
}

func (T *Topology) shareNeighbor(i, j int) bool {
	for _, n := range T.nb[i] {
		if T.Bonded(n, j) {
			return true
		}
	}
	return false
}

// Molecules returns the connected components of the graph as sorted atom
// indexes, sorted by their first atom.
func (T *Topology) Molecules() [][]int {
	cc := topo.ConnectedComponents(T)
	ret := make([][]int, len(cc))
	for k, c := range cc {
		for _, n := range c {
			ret[k] = append(ret[k], int(n.ID()))
		}
		sort.Ints(ret[k])
	}
	sort.Slice(ret, func(a, b int) bool { return ret[a][0] < ret[b][0] })
	return ret
}
