/*
 * density.go, part of gosam.
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

// Package chemplot computes and plots number density profiles of compounds.
package chemplot

import (
	"errors"
	"fmt"

	sam "github.com/samflow/gosam"
	"github.com/samflow/gosam/histo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Profile is a number density profile along z, in atoms per nm^3.
type Profile struct {
	Name string
	*histo.Data
}

// DensityProfile bins the z coordinates of the given atoms of C in nbins
// bins between lo and hi, and divides the counts by the bin volume, using
// the lateral size of C's box. Atoms outside [lo,hi) are ignored.
func DensityProfile(C *sam.Compound, name string, atoms []int, lo, hi float64, nbins int) (*Profile, error) {
	if nbins < 1 || hi <= lo {
		return nil, fmt.Errorf("bad binning: %d bins in [%g,%g)", nbins, lo, hi)
	}
	area := C.Box[0] * C.Box[1]
	if area <= 0 {
		return nil, errors.New("density profile needs a box with a positive xy area")
	}
	z := make([]float64, 0, len(atoms))
	for _, i := range atoms {
		z = append(z, C.Pos(i)[2])
	}
	P := &Profile{Name: name, Data: histo.NewData(histo.Uniform(lo, hi, nbins), z)}
	P.Scale(1 / (area * (hi - lo) / float64(nbins)))
	return P, nil
}

func basicDensityPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "z (nm)"
	p.Y.Label.Text = "number density (nm^-3)"
	p.Y.Min = 0
	p.Add(plotter.NewGrid())
	p.Legend.Top = true
	return p
}

// PlotProfiles draws the profiles as lines on one plot and saves it to
// fname. The format is taken from fname's extension.
func PlotProfiles(profiles []*Profile, title, fname string) error {
	p := basicDensityPlot(title)
	for k, P := range profiles {
		c := P.Centers()
		xy := make(plotter.XYs, len(c))
		for i := range c {
			xy[i].X = c[i]
			xy[i].Y = P.View()[i]
		}
		l, err := plotter.NewLine(xy)
		if err != nil {
			return fmt.Errorf("profile %s: %w", P.Name, err)
		}
		l.LineStyle.Color = colors(k, len(profiles))
		l.LineStyle.Width = vg.Points(1.5)
		p.Add(l)
		p.Legend.Add(P.Name, l)
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, fname)
}
