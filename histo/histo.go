/*
 * histo.go, part of gosam.
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

// Package histo keeps histograms with arbitrary bin dividers, which can be
// normalized, scaled and serialized to JSON.
package histo

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Data is a histogram. Values outside the first and last dividers are
// counted in the total but not binned.
type Data struct {
	normalized bool
	total      int
	dividers   []float64
	histo      []float64
}

// NewData returns a histogram with the given dividers, which must be
// sorted and at least 2. rawdata can be nil, in which case the histogram
// is empty.
func NewData(dividers []float64, rawdata []float64) *Data {
	if len(dividers) < 2 || !sort.Float64sAreSorted(dividers) {
		panic("histo.NewData: need at least 2 sorted dividers")
	}
	d := &Data{
		dividers: append([]float64(nil), dividers...),
		histo:    make([]float64, len(dividers)-1),
	}
	d.AddData(rawdata...)
	return d
}

// Uniform returns nbins+1 equally spaced dividers from lo to hi.
func Uniform(lo, hi float64, nbins int) []float64 {
	if nbins < 1 {
		panic("histo.Uniform: need at least one bin")
	}
	return floats.Span(make([]float64, nbins+1), lo, hi)
}

// AddData adds the given data point(s) to the histogram.
func (D *Data) AddData(point ...float64) {
	if len(point) == 0 {
		return
	}
	norma := D.normalized
	if norma {
		D.UnNormalize()
	}
	lo, hi := D.dividers[0], D.dividers[len(D.dividers)-1]
	in := make([]float64, 0, len(point))
	for _, v := range point {
		if v >= lo && v < hi {
			in = append(in, v)
		}
	}
	sort.Float64s(in)
	floats.Add(D.histo, stat.Histogram(nil, D.dividers, in, nil))
	D.total += len(point)
	if norma {
		D.Normalize()
	}
}

// Total returns the number of data points added, binned or not.
func (D *Data) Total() int {
	return D.total
}

// Normalized returns true if the histogram is normalized.
func (D *Data) Normalized() bool {
	return D.normalized
}

// Normalize divides the histogram by the number of data points.
func (D *Data) Normalize() {
	if D.normalized || D.total <= 0 {
		return
	}
	floats.Scale(1/float64(D.total), D.histo)
	D.normalized = true
}

// UnNormalize reverts Normalize.
func (D *Data) UnNormalize() {
	if !D.normalized || D.total <= 0 {
		return
	}
	floats.Scale(float64(D.total), D.histo)
	D.normalized = false
}

// Scale multiplies every bin by f.
func (D *Data) Scale(f float64) {
	floats.Scale(f, D.histo)
}

// View returns the bins themselves, not a copy.
func (D *Data) View() []float64 {
	return D.histo
}

// Dividers returns a copy of the bin dividers.
func (D *Data) Dividers() []float64 {
	return append([]float64(nil), D.dividers...)
}

// Centers returns the center of each bin.
func (D *Data) Centers() []float64 {
	ret := make([]float64, len(D.histo))
	for i := range ret {
		ret[i] = (D.dividers[i] + D.dividers[i+1]) / 2
	}
	return ret
}

// Add sets the receiver to the sum of a and b, which must have the same
// dividers and normalization.
func (D *Data) Add(a, b *Data) error {
	if !floats.Equal(a.dividers, b.dividers) {
		return fmt.Errorf("histo: can't add histograms with different dividers")
	}
	if a.normalized != b.normalized {
		return fmt.Errorf("histo: can't add a normalized and an unnormalized histogram")
	}
	h := make([]float64, len(a.histo))
	floats.AddTo(h, a.histo, b.histo)
	D.dividers = a.Dividers()
	D.histo = h
	D.total = a.total + b.total
	D.normalized = a.normalized
	return nil
}

// String prints the histogram in 2 lines, the bin ranges and the values.
func (D *Data) String() string {
	d := make([]string, 0, len(D.histo))
	h := make([]string, 0, len(D.histo))
	for i, v := range D.histo {
		d = append(d, fmt.Sprintf("%4.2f-%4.2f", D.dividers[i], D.dividers[i+1]))
		h = append(h, fmt.Sprintf("%9.3f", v))
	}
	return fmt.Sprintf("Normalized: %v, TotalData: %d\n%s\n%s", D.normalized, D.total, strings.Join(d, " "), strings.Join(h, " "))
}

type jsonData struct {
	Normalized bool      `json:"normalized"`
	Total      int       `json:"total"`
	Dividers   []float64 `json:"dividers"`
	Histo      []float64 `json:"histo"`
}

func (D *Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonData{
		Normalized: D.normalized,
		Total:      D.total,
		Dividers:   D.dividers,
		Histo:      D.histo,
	})
}

func (D *Data) UnmarshalJSON(b []byte) error {
	var a jsonData
	if err := json.Unmarshal(b, &a); err != nil {
		return err
	}
	if len(a.Dividers) != len(a.Histo)+1 {
		return fmt.Errorf("histo: %d dividers for %d bins", len(a.Dividers), len(a.Histo))
	}
	D.normalized = a.Normalized
	D.total = a.Total
	D.dividers = a.Dividers
	D.histo = a.Histo
	return nil
}
