/*
 * params.go, part of gosam.
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
	"errors"
	"fmt"
	"sort"

	"github.com/mitchellh/mapstructure"

	"github.com/samflow/gosam/recipes"
	"github.com/samflow/gosam/statepoint"
)

var ErrNoSeed = errors.New("state point has no seed")

// Params are the parameters of one system, as found in a state point.
// BackboneA and BackboneB, when set, choose the bottom and top backbones;
// otherwise both use Backbone.
type Params struct {
	Seed          int64  `mapstructure:"seed"`
	ChainLength   int    `mapstructure:"chainlength"`
	Backbone      string `mapstructure:"backbone"`
	BackboneA     string `mapstructure:"backbone_A"`
	BackboneB     string `mapstructure:"backbone_B"`
	TerminalGroup string `mapstructure:"terminal_group"`
	NumChains     int    `mapstructure:"n"`
	Pattern       string `mapstructure:"pattern_type"`

	// Unused lists the state point keys that are not parameters.
	Unused []string `mapstructure:"-"`
}

// DefaultParams returns the parameters used for the keys a state point
// doesn't set. There is no default seed.
func DefaultParams() Params {
	return Params{
		ChainLength:   17,
		Backbone:      recipes.Alkylsilane,
		TerminalGroup: recipes.Methyl,
		NumChains:     100,
		Pattern:       recipes.PatternRandom,
	}
}

// FromStatePoint decodes the builder parameters in sp over the defaults.
func FromStatePoint(sp statepoint.StatePoint) (Params, error) {
	p := DefaultParams()
	var md mapstructure.Metadata
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:   &p,
		Metadata: &md,
	})
	if err != nil {
		return p, err
	}
	if err := dec.Decode(sp.Map()); err != nil {
		return p, fmt.Errorf("decoding state point %s: %w", sp.ID(), err)
	}
	if _, ok := sp.Get("seed"); !ok {
		return p, fmt.Errorf("%w: %s", ErrNoSeed, sp)
	}
	p.Unused = md.Unused
	sort.Strings(p.Unused)
	return p, p.Check()
}

// Backbones returns the backbones of the bottom and top monolayers.
func (p Params) Backbones() (bottom, top string) {
	bottom, top = p.Backbone, p.Backbone
	if p.BackboneA != "" {
		bottom = p.BackboneA
	}
	if p.BackboneB != "" {
		top = p.BackboneB
	}
	return bottom, top
}

// Check validates the parameters without building anything.
func (p Params) Check() error {
	bottom, top := p.Backbones()
	for _, b := range []string{bottom, top} {
		if _, err := recipes.NewChain(b, p.ChainLength, p.TerminalGroup); err != nil {
			return err
		}
	}
	if p.NumChains < 0 {
		return fmt.Errorf("negative number of chains %d", p.NumChains)
	}
	for _, pt := range recipes.Patterns() {
		if pt == p.Pattern {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", recipes.ErrUnknownPattern, p.Pattern)
}
