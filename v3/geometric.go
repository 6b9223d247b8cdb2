/*
 * geometric.go, part of gosam.
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

package v3

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Rotator returns the 3x3 matrix that, multiplying a set of row vectors from the
// right, rotates them by angle radians around axis. axis doesn't need to be unitary.
func Rotator(axis *Matrix, angle float64) *Matrix {
	k := Zeros(1)
	k.Unit(axis)
	x, y, z := k.At(0, 0), k.At(0, 1), k.At(0, 2)
	c := math.Cos(angle)
	s := math.Sin(angle)
	t := 1 - c
	//Rodrigues' formula for column vectors, stored transposed since
	//our vectors are rows.
	R := []float64{
		t*x*x + c, t*x*y + s*z, t*x*z - s*y,
		t*x*y - s*z, t*y*y + c, t*y*z + s*x,
		t*x*z + s*y, t*y*z - s*x, t*z*z + c,
	}
	return &Matrix{mat.NewDense(3, 3, R)}
}

// Rotate returns a new matrix with the vectors in A rotated by angle radians around
// the axis passing through the origin with the direction of axis.
func Rotate(A, axis *Matrix, angle float64) *Matrix {
	rot := Rotator(axis, angle)
	ret := Zeros(A.NVecs())
	ret.Mul(A, rot)
	return ret
}

// RotateAbout returns a new matrix with the vectors in A rotated by angle radians
// around the axis with the direction of axis that passes through the point center.
func RotateAbout(A, center, axis *Matrix, angle float64) *Matrix {
	tmp := Zeros(A.NVecs())
	tmp.SubVec(A, center)
	ret := Rotate(tmp, axis, angle)
	ret.AddVec(ret, center)
	return ret
}

// Centroid returns the geometric center of the vectors in A.
func Centroid(A *Matrix) *Matrix {
	n := A.NVecs()
	ret := Zeros(1)
	c := ret.RawRowView(0)
	for i := 0; i < n; i++ {
		r := A.RawRowView(i)
		for k := 0; k < 3; k++ {
			c[k] += r[k]
		}
	}
	ret.Scale(1/float64(n), ret)
	return ret
}

// Bounds returns the minimum and maximum value of each cartesian
// component among the vectors of A.
func Bounds(A *Matrix) (min, max [3]float64) {
	for k := 0; k < 3; k++ {
		min[k] = math.Inf(1)
		max[k] = math.Inf(-1)
	}
	for i := 0; i < A.NVecs(); i++ {
		r := A.RawRowView(i)
		for k := 0; k < 3; k++ {
			min[k] = math.Min(min[k], r[k])
			max[k] = math.Max(max[k], r[k])
		}
	}
	return min, max
}

// Translate adds the displacement (x,y,z) to each vector of A, in place.
func (F *Matrix) Translate(x, y, z float64) {
	for i := 0; i < F.NVecs(); i++ {
		r := F.RawRowView(i)
		r[0] += x
		r[1] += y
		r[2] += z
	}
}
