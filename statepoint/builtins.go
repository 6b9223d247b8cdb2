/*
 * builtins.go, part of gosam.
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

package statepoint

// Backbones are the chain chemistries swept by BackboneChemistries.
var Backbones = []string{"PEGSilane", "Alkylsilane", "FluoroAlkylsilane", "PolystyreneSilane", "PVAilane"}

// Chainlengths are the backbone lengths swept by the Chainlengths plan.
var Chainlengths = []int{5, 7, 9, 13, 17}

// Defaults of the BackboneChemistries plan.
const (
	DefaultChainLength = 17
	DefaultPattern     = "random"
)

func anys[T any](s []T) []any {
	r := make([]any, len(s))
	for i, v := range s {
		r[i] = v
	}
	return r
}

// ChainlengthsPlan sweeps the length of alkylsilane chains on a methyl
// terminated monolayer of 50 chains.
func ChainlengthsPlan(replicas int) *Plan {
	return &Plan{
		Project: "Chainlengths",
		Fixed: []Field{
			F("backbone", "Alkylsilane"),
			F("terminal_group", "methyl"),
			F("n", 50),
			F("pattern_type", "random"),
		},
		Axes:     []Axis{{Key: "chainlength", Values: anys(Chainlengths)}},
		Replicas: replicas,
		SeedKey:  DefaultSeedKey,
		Layout:   []string{"chainlength", "backbone", "terminal_group", "n", "pattern_type"},
	}
}

// BackboneChemistriesPlan sweeps every pair of backbones for the bottom
// (backbone_A) and top (backbone_B) monolayers, 100 chains each.
func BackboneChemistriesPlan(replicas, chainLength int, pattern string) *Plan {
	return &Plan{
		Project: "BackboneChemistries",
		Fixed: []Field{
			F("chainlength", chainLength),
			F("terminal_group", "methyl"),
			F("n", 100),
			F("pattern_type", pattern),
		},
		Axes: []Axis{
			{Key: "backbone_A", Values: anys(Backbones)},
			{Key: "backbone_B", Values: anys(Backbones)},
		},
		Replicas: replicas,
		SeedKey:  DefaultSeedKey,
		Layout:   []string{"chainlength", "backbone_A", "backbone_B", "terminal_group", "n", "pattern_type"},
	}
}
