/*
 * dualsurface.go, part of gosam.
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

	sam "github.com/samflow/gosam"
)

// Labels and residue numbers of the two monolayers of a DualSurface.
const (
	BottomName = "Bottom"
	TopName    = "Top"
	BottomID   = 1
	TopID      = 2
)

// DualSurface is two monolayers facing each other across a gap.
type DualSurface struct {
	*sam.Compound
	Bottom     *Monolayer
	Top        *Monolayer
	Separation float64
}

// NewDualSurface stacks top, flipped upside down, above bottom so that
// separation nm lie between the highest atom of bottom and the lowest of
// top. The box spans both monolayers and the gap along z, and takes
// bottom's lateral size. Both monolayers are modified and belong to the
// returned value afterwards.
func NewDualSurface(bottom, top *Monolayer, separation float64) (*DualSurface, error) {
	if separation < 0 {
		return nil, fmt.Errorf("negative separation %g between surfaces", separation)
	}
	if bottom.Len() == 0 || top.Len() == 0 {
		return nil, fmt.Errorf("can't stack an empty monolayer")
	}
	top.Spin([3]float64{0, 1, 0}, math.Pi)
	lo, hi := bottom.BoundingBox()
	bottom.Translate(0, 0, -lo[2])
	botZ := hi[2] - lo[2]
	tlo, thi := top.BoundingBox()
	top.Translate(0, 0, botZ+separation-tlo[2])
	topZ := thi[2] - tlo[2]

	bottom.SetMolecule(BottomName, BottomID)
	top.SetMolecule(TopName, TopID)
	D := &DualSurface{Bottom: bottom, Top: top, Separation: separation}
	D.Compound = bottom.Compound.Copy()
	D.Name = "DualSurface"
	D.Add(top.Compound)
	D.Box = [3]float64{bottom.Box[0], bottom.Box[1], botZ + separation + topZ}
	D.Renumber()
	return D, nil
}
