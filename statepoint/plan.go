/*
 * plan.go, part of gosam.
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

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultSeedKey is the name of the seed field when a plan doesn't set one.
const DefaultSeedKey = "seed"

// ErrInvalidPlan is wrapped by every error Check returns.
var ErrInvalidPlan = errors.New("invalid plan")

// Axis is a parameter that takes each of Values in turn.
type Axis struct {
	Key    string
	Values []any
}

// Plan describes a family of state points: the Cartesian product of the
// axes, each record carrying the fixed fields, crossed with Replicas
// replicas, each replica with its own seed.
type Plan struct {
	// Project is the name of the workspace project.
	Project string

	// Fixed fields are copied into every record.
	Fixed []Field

	// Axes are nested in the order given, the first one outermost.
	Axes []Axis

	// Replicas is the number of repetitions of the whole product.
	Replicas int

	// SeedKey is the name of the per-replica seed field, always the last one.
	SeedKey string

	// Layout is the order of the fields in each record. If empty, axis
	// fields come first, then fixed fields.
	Layout []string
}

// Check returns an error if p can't be enumerated.
func (p *Plan) Check() error {
	if p.Project == "" {
		return fmt.Errorf("%w: project name is empty", ErrInvalidPlan)
	}
	if p.Replicas < 0 {
		return fmt.Errorf("%w: negative number of replicas %d", ErrInvalidPlan, p.Replicas)
	}
	keys := map[string]bool{p.seedKey(): true}
	for _, f := range p.Fixed {
		if keys[f.Key] {
			return fmt.Errorf("%w: %w: %q", ErrInvalidPlan, ErrDuplicateKey, f.Key)
		}
		keys[f.Key] = true
		if _, err := normalize(f.Value); err != nil {
			return fmt.Errorf("%w: key %q: %w", ErrInvalidPlan, f.Key, err)
		}
	}
	for _, a := range p.Axes {
		if keys[a.Key] {
			return fmt.Errorf("%w: %w: %q", ErrInvalidPlan, ErrDuplicateKey, a.Key)
		}
		keys[a.Key] = true
		if len(a.Values) == 0 {
			return fmt.Errorf("%w: axis %q has no values", ErrInvalidPlan, a.Key)
		}
		seen := make(map[any]bool, len(a.Values))
		for _, v := range a.Values {
			n, err := normalize(v)
			if err != nil {
				return fmt.Errorf("%w: axis %q: %w", ErrInvalidPlan, a.Key, err)
			}
			if seen[n] {
				return fmt.Errorf("%w: axis %q repeats the value %v", ErrInvalidPlan, a.Key, n)
			}
			seen[n] = true
		}
	}
	if len(p.Layout) > 0 {
		inLayout := make(map[string]bool, len(p.Layout))
		for _, k := range p.Layout {
			if k == p.seedKey() {
				continue
			}
			if !keys[k] || inLayout[k] {
				return fmt.Errorf("%w: layout key %q is unknown or repeated", ErrInvalidPlan, k)
			}
			inLayout[k] = true
		}
		if len(inLayout) != len(keys)-1 {
			return fmt.Errorf("%w: layout must name every fixed and axis key", ErrInvalidPlan)
		}
	}
	return nil
}

func (p *Plan) seedKey() string {
	if p.SeedKey == "" {
		return DefaultSeedKey
	}
	return p.SeedKey
}

func (p *Plan) layout() []string {
	if len(p.Layout) > 0 {
		l := make([]string, 0, len(p.Layout))
		for _, k := range p.Layout {
			if k != p.seedKey() {
				l = append(l, k)
			}
		}
		return l
	}
	l := make([]string, 0, len(p.Axes)+len(p.Fixed))
	for _, a := range p.Axes {
		l = append(l, a.Key)
	}
	for _, f := range p.Fixed {
		l = append(l, f.Key)
	}
	return l
}

// Size returns the number of records Enumerate produces.
func (p *Plan) Size() int {
	n := p.Replicas
	for _, a := range p.Axes {
		n *= len(a.Values)
	}
	return n
}

// Enumerate returns every record of the plan, for the base seed base. The
// replica index is the outermost loop and the seed of replica i is
// base*(i+1).
func (p *Plan) Enumerate(base int64) ([]StatePoint, error) {
	if err := p.Check(); err != nil {
		return nil, err
	}
	values := make(map[string]any, len(p.Fixed)+len(p.Axes))
	for _, f := range p.Fixed {
		values[f.Key] = f.Value
	}
	layout := p.layout()
	ret := make([]StatePoint, 0, p.Size())
	idx := make([]int, len(p.Axes))
	for r := 0; r < p.Replicas; r++ {
		seed, err := ReplicaSeed(base, r)
		if err != nil {
			return nil, err
		}
		for i := range idx {
			idx[i] = 0
		}
		for {
			for i, a := range p.Axes {
				values[a.Key] = a.Values[idx[i]]
			}
			fields := make([]Field, 0, len(layout)+1)
			for _, k := range layout {
				fields = append(fields, Field{Key: k, Value: values[k]})
			}
			fields = append(fields, Field{Key: p.seedKey(), Value: seed})
			sp, err := New(fields...)
			if err != nil {
				return nil, err
			}
			ret = append(ret, sp)
			if !next(idx, p.Axes) {
				break
			}
		}
	}
	return ret, nil
}

// next advances the odometer idx, last axis fastest. It returns false
// once every combination has been visited.
func next(idx []int, axes []Axis) bool {
	for i := len(idx) - 1; i >= 0; i-- {
		idx[i]++
		if idx[i] < len(axes[i].Values) {
			return true
		}
		idx[i] = 0
	}
	return false
}

// planFile is the YAML form of a Plan. In parameters, a sequence is
// an axis and a scalar a fixed field; their order is the record layout.
type planFile struct {
	Project    string     `yaml:"project"`
	Replicas   *int       `yaml:"replicas"`
	SeedKey    string     `yaml:"seed_key"`
	Parameters parameters `yaml:"parameters"`
}

type parameters struct {
	fixed  []Field
	axes   []Axis
	layout []string
}

func (ps *parameters) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: parameters must be a mapping", n.Line)
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		key := k.Value
		switch v.Kind {
		case yaml.SequenceNode:
			var vals []any
			if err := v.Decode(&vals); err != nil {
				return fmt.Errorf("line %d: %w", v.Line, err)
			}
			ps.axes = append(ps.axes, Axis{Key: key, Values: vals})
		case yaml.ScalarNode:
			var val any
			if err := v.Decode(&val); err != nil {
				return fmt.Errorf("line %d: %w", v.Line, err)
			}
			ps.fixed = append(ps.fixed, Field{Key: key, Value: val})
		default:
			return fmt.Errorf("line %d: parameter %q must be a scalar or a list of scalars", v.Line, key)
		}
		ps.layout = append(ps.layout, key)
	}
	return nil
}

// LoadPlan opens and decodes the YAML plan in path, and checks it.
func LoadPlan(path string) (*Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var pf planFile
	dec := yaml.NewDecoder(bufio.NewReader(f))
	if err = dec.Decode(&pf); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	p := &Plan{
		Project:  pf.Project,
		Fixed:    pf.Parameters.fixed,
		Axes:     pf.Parameters.axes,
		Replicas: 1,
		SeedKey:  pf.SeedKey,
		Layout:   pf.Parameters.layout,
	}
	if pf.Replicas != nil {
		p.Replicas = *pf.Replicas
	}
	if err = p.Check(); err != nil {
		return nil, fmt.Errorf("Check: %w", err)
	}
	return p, nil
}
