/*
 * silica.go, part of gosam.
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
	"fmt"
	"math"
	"math/rand"
	"sort"

	sam "github.com/samflow/gosam"
)

// Geometry of the silica slab, in nm.
const (
	CristobaliteA = 0.716 //cubic beta-cristobalite lattice constant
	BondSiO       = 0.163
	BondOH        = 0.0945
	Jitter        = 0.008 //standard deviation of the random displacements
)

// Surface is a silica slab whose top face carries grafting sites.
type Surface struct {
	*sam.Compound

	// Sites are the indexes of the grafting oxygens. Each one is bonded to a
	// single surface Si and gets either a chain or a hydrogen when grafted.
	Sites []int
}

type silicaConfig struct {
	nx, ny int
	jitter float64
}

// SilicaOption configures SilicaInterface.
type SilicaOption func(*silicaConfig)

// WithCells sets the lateral size of the slab, in unit cells.
func WithCells(nx, ny int) SilicaOption {
	return func(c *silicaConfig) {
		c.nx, c.ny = nx, ny
	}
}

// WithJitter sets the standard deviation of the random displacement of each atom.
func WithJitter(sigma float64) SilicaOption {
	return func(c *silicaConfig) {
		c.jitter = sigma
	}
}

type lattice [3]int

// fcc positions of the cristobalite Si, in quarters of the cell edge. Each
// one has a partner displaced by (1,1,1).
var fcc = [4]lattice{{0, 0, 0}, {0, 2, 2}, {2, 0, 2}, {2, 2, 0}}

// tetra are the bond directions of an Si of the first sublattice; the
// partner sublattice uses the opposite ones.
var tetra = [4]lattice{{1, 1, 1}, {1, -1, -1}, {-1, 1, -1}, {-1, -1, 1}}

// SilicaInterface returns a hydroxylated amorphous silica slab at least
// thickness nm thick, periodic along x and y. The slab is a beta-cristobalite
// lattice with Si-O-Si bridges and random displacements drawn from seed. Each Si
// on the top face gets one grafting oxygen and one silanol; every other
// dangling bond becomes a silanol. The lowest atom sits at z=0.
func SilicaInterface(thickness float64, seed int64, opts ...SilicaOption) (*Surface, error) {
	cfg := silicaConfig{nx: 8, ny: 8, jitter: Jitter}
	for _, o := range opts {
		o(&cfg)
	}
	if thickness <= 0 {
		return nil, fmt.Errorf("silica thickness must be positive, got %g", thickness)
	}
	if cfg.nx < 1 || cfg.ny < 1 {
		return nil, fmt.Errorf("silica slab needs at least one cell per side, got %dx%d", cfg.nx, cfg.ny)
	}
	nz := int(math.Ceil(thickness/CristobaliteA - 1e-9))
	q := CristobaliteA / 4
	lx, ly, lz := 4*cfg.nx, 4*cfg.ny, 4*nz
	rng := rand.New(rand.NewSource(seed))
	jitter := func(p [3]float64) [3]float64 {
		for k := range p {
			p[k] += rng.NormFloat64() * cfg.jitter
		}
		return p
	}
	cart := func(x, y, z float64) [3]float64 {
		return [3]float64{x * q, y * q, z * q}
	}

	var s sketch
	index := make(map[lattice]int)
	var sis []lattice
	for k := 0; k < nz; k++ {
		for j := 0; j < cfg.ny; j++ {
			for i := 0; i < cfg.nx; i++ {
				for _, b := range fcc {
					for off := 0; off < 2; off++ {
						p := lattice{4*i + b[0] + off, 4*j + b[1] + off, 4*k + b[2] + off}
						index[p] = s.add("Si", sam.Substrate, jitter(cart(float64(p[0]), float64(p[1]), float64(p[2]))), -1)
						sis = append(sis, p)
					}
				}
			}
		}
	}

	type dangling struct {
		si  int
		dir [3]float64
		top bool
	}
	var dang []dangling
	wrap := func(v, l int) int { return ((v % l) + l) % l }
	for _, p := range sis {
		sign := 1
		if p[0]%2 != 0 {
			sign = -1
		}
		for _, d := range tetra {
			dd := lattice{sign * d[0], sign * d[1], sign * d[2]}
			z := p[2] + dd[2]
			if z < 0 || z >= lz {
				dang = append(dang, dangling{
					si:  index[p],
					dir: scale3([3]float64{float64(dd[0]), float64(dd[1]), float64(dd[2])}, 1/math.Sqrt(3)),
					top: dd[2] > 0,
				})
				continue
			}
			if sign < 0 {
				continue //bridges are made from the first sublattice
			}
			nb := lattice{wrap(p[0]+dd[0], lx), wrap(p[1]+dd[1], ly), z}
			x := math.Mod(float64(p[0])+float64(dd[0])/2+float64(lx), float64(lx))
			y := math.Mod(float64(p[1])+float64(dd[1])/2+float64(ly), float64(ly))
			o := s.add("O", sam.Substrate, jitter(cart(x, y, float64(p[2])+float64(dd[2])/2)), index[p])
			s.bonds = append(s.bonds, sam.Bond{I: index[nb], J: o})
		}
	}

	var sites []int
	grafted := make(map[int]bool)
	for _, d := range dang {
		ideal := cart(float64(sis[d.si][0]), float64(sis[d.si][1]), float64(sis[d.si][2]))
		opos := add3(ideal, scale3(d.dir, BondSiO))
		o := s.add("O", sam.Substrate, jitter(opos), d.si)
		if d.top && !grafted[d.si] {
			grafted[d.si] = true
			sites = append(sites, o)
			continue
		}
		hz := BondOH
		if !d.top {
			hz = -BondOH
		}
		s.add("H", sam.Substrate, jitter(add3(opos, [3]float64{0, 0, hz})), o)
	}

	C, err := s.compound("silica")
	if err != nil {
		return nil, err
	}
	lo, hi := C.BoundingBox()
	C.Translate(0, 0, -lo[2])
	C.Box = [3]float64{float64(cfg.nx) * CristobaliteA, float64(cfg.ny) * CristobaliteA, hi[2] - lo[2]}
	S := &Surface{Compound: C, Sites: sites}
	return S, nil
}

// SitePos returns the position of the ith grafting site.
func (S *Surface) SitePos(i int) [3]float64 {
	return S.Pos(S.Sites[i])
}

// sitesByPosition returns the positions in S.Sites ordered by y, then x.
func (S *Surface) sitesByPosition() []int {
	order := make([]int, len(S.Sites))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		pa, pb := S.SitePos(order[a]), S.SitePos(order[b])
		if math.Abs(pa[1]-pb[1]) > CristobaliteA/8 {
			return pa[1] < pb[1]
		}
		return pa[0] < pb[0]
	})
	return order
}
