/*
 * builder.go, part of gosam.
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

// Package builder assembles a dual-monolayer system from its parameters and
// writes the files an MD engine needs to simulate it.
package builder

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	sam "github.com/samflow/gosam"
	"github.com/samflow/gosam/chemgraph"
	"github.com/samflow/gosam/chemplot"
	"github.com/samflow/gosam/clash"
	"github.com/samflow/gosam/forcefield"
	"github.com/samflow/gosam/histo"
	"github.com/samflow/gosam/recipes"
	"github.com/samflow/gosam/top"
)

// Files written by Build in the job directory.
const (
	GroFile     = "init.gro"
	TopFile     = "init.top"
	LammpsFile  = "init.lammps"
	NdxFile     = "init.ndx"
	PlotFile    = "density.png"
	DensityFile = "density.json"
)

// Options are the build settings that don't come from the state point.
type Options struct {
	// Forcefield, if not empty, is the force field file to use instead of
	// looking for one around the job directory.
	Forcefield string

	Thickness  float64 //of each silica slab, nm
	Cells      int     //lateral size of the slabs, in unit cells
	Separation float64 //between the monolayers, nm
	BoxScale   float64 //applied to the box z length
	Freeze     float64 //thickness of the frozen substrate layers, nm
	Plot       bool
	PlotBins   int
}

// DefaultOptions returns the settings for a production system.
func DefaultOptions() Options {
	return Options{
		Thickness:  1.2,
		Cells:      8,
		Separation: 2.0,
		BoxScale:   5.0,
		Freeze:     0.5,
		PlotBins:   200,
	}
}

// System is a built system.
type System struct {
	*recipes.DualSurface
	Structure *forcefield.Structure
	Groups    []top.Group
}

// Title describes the system in the files written.
func (p Params) Title() string {
	b, t := p.Backbones()
	return fmt.Sprintf("%s/%s %s length %d, %d chains (%s), seed %d", b, t, p.TerminalGroup, p.ChainLength, p.NumChains, p.Pattern, p.Seed)
}

// Assemble builds the dual monolayer for p, with its box already
// stretched along z.
func Assemble(p Params, opt Options) (*recipes.DualSurface, error) {
	backA, backB := p.Backbones()
	var mono [2]*recipes.Monolayer
	for k, backbone := range []string{backA, backB} {
		surface, err := recipes.SilicaInterface(opt.Thickness, p.Seed, recipes.WithCells(opt.Cells, opt.Cells))
		if err != nil {
			return nil, err
		}
		chain, err := recipes.NewChain(backbone, p.ChainLength, p.TerminalGroup)
		if err != nil {
			return nil, err
		}
		mono[k], err = recipes.NewMonolayer(surface, chain, p.NumChains, p.Pattern, p.Seed)
		if err != nil {
			return nil, err
		}
	}
	D, err := recipes.NewDualSurface(mono[0], mono[1], opt.Separation)
	if err != nil {
		return nil, err
	}
	D.Box[2] *= opt.BoxScale
	return D, nil
}

// Build assembles the system for p, applies the force field and writes
// the structure, topology, LAMMPS data and index files in dir. Any failure
// aborts the build; files already written are left in place.
func Build(ctx context.Context, dir string, p Params, opt Options, log *slog.Logger) (*System, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Info("Building system", "dir", dir, "title", p.Title())
	D, err := Assemble(p, opt)
	if err != nil {
		return nil, fmt.Errorf("assembling system: %w", err)
	}
	log.Info("Assembled dual monolayer", "atoms", D.Len(), "bonds", len(D.Bonds), "box", D.Box)
	checkGap(D, log)

	ffPath, err := forcefield.Locate(dir, opt.Forcefield)
	if err != nil {
		return nil, err
	}
	title := p.Title()
	D.Name = title
	if err := sam.GroFileWrite(filepath.Join(dir, GroFile), D.Compound); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, a := range D.Atoms {
		if a.Symbol, err = sam.SymbolFromName(a.Name); err != nil {
			return nil, err
		}
	}
	ff, err := forcefield.Load(ffPath)
	if err != nil {
		return nil, err
	}
	log.Info("Applying force field", "file", ffPath, "name", ff.Name)
	S, err := ff.Apply(D.Compound)
	if err != nil {
		return nil, err
	}
	S.CombiningRule = "geometric"
	q := S.Charge()
	log.Info("Force field applied", "bonds", len(S.BondTerms), "angles", len(S.AngleTerms), "dihedrals", len(S.DihedralTerms), "charge", q)
	if math.Abs(q) > 1e-6 {
		log.Warn("System is not neutral", "charge", q)
	}
	if mols := chemgraph.FromCompound(D.Compound).Molecules(); len(mols) != 2 {
		log.Warn("Unexpected number of bonded fragments", "fragments", len(mols))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := top.TopFileWrite(filepath.Join(dir, TopFile), S, title); err != nil {
		return nil, err
	}
	if err := top.LammpsFileWrite(filepath.Join(dir, LammpsFile), S, title); err != nil {
		return nil, err
	}
	groups := IndexGroups(D, p.TerminalGroup, opt.Freeze)
	if err := top.NdxFileWrite(filepath.Join(dir, NdxFile), groups); err != nil {
		return nil, err
	}
	sys := &System{DualSurface: D, Structure: S, Groups: groups}
	if opt.Plot {
		if err := plotDensity(sys, dir, opt.PlotBins); err != nil {
			return nil, err
		}
	}
	log.Info("Build done", "dir", dir)
	return sys, nil
}

// ClashDist is the distance under which atoms of opposite monolayers
// are reported as clashing.
const ClashDist = 0.2

// checkGap logs the closest approach between the grafted layers of the
// two monolayers, and warns about clashes.
func checkGap(D *recipes.DualSurface, log *slog.Logger) {
	grafted := func(id int) []int {
		return D.Select(func(a *sam.Atom) bool { return a.MolID == id && a.Role != sam.Substrate })
	}
	bot, up := grafted(recipes.BottomID), grafted(recipes.TopID)
	if len(bot) == 0 || len(up) == 0 {
		return
	}
	c := clash.Closest(D.Compound, bot, up)
	log.Info("Closest approach between monolayers", "dist", c.Dist, "atom1", c.I+1, "atom2", c.J+1)
	if ov := clash.Overlaps(D.Compound, bot, up, ClashDist); len(ov) > 0 {
		log.Warn("Monolayers clash", "pairs", len(ov), "cutoff", ClashDist)
	}
}

// plotDensity writes the z density profile of each monolayer, as a plot and
// as JSON histograms keyed by monolayer name.
func plotDensity(sys *System, dir string, bins int) error {
	if bins < 1 {
		bins = DefaultOptions().PlotBins
	}
	_, hi := sys.BoundingBox()
	var profiles []*chemplot.Profile
	byName := make(map[string]*histo.Data)
	for _, m := range []struct {
		name string
		id   int
	}{{recipes.BottomName, recipes.BottomID}, {recipes.TopName, recipes.TopID}} {
		atoms := sys.Select(func(a *sam.Atom) bool { return a.MolID == m.id })
		P, err := chemplot.DensityProfile(sys.Compound, m.name, atoms, 0, hi[2]+1e-6, bins)
		if err != nil {
			return err
		}
		profiles = append(profiles, P)
		byName[P.Name] = P.Data
	}
	j, err := json.MarshalIndent(byName, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, DensityFile), j, 0644); err != nil {
		return err
	}
	return chemplot.PlotProfiles(profiles, sys.Name, filepath.Join(dir, PlotFile))
}
