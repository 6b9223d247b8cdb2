/*
 * v3_test.go, part of gosam.
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
	"testing"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestNewMatrix(Te *testing.T) {
	_, err := NewMatrix([]float64{1, 2, 3, 4})
	if err == nil {
		Te.Error("NewMatrix accepted a slice not divisible by 3")
	}
	_, err = NewMatrix(nil)
	if err == nil {
		Te.Error("NewMatrix accepted an empty slice")
	}
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		Te.Fatal(err)
	}
	if A.NVecs() != 2 {
		Te.Errorf("expected 2 vectors, got %d", A.NVecs())
	}
}

func TestSomeVecs(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18}
	A, err := NewMatrix(a)
	if err != nil {
		Te.Fatal(err)
	}
	B := Zeros(3)
	cind := []int{1, 3, 5}
	if err = B.SomeVecsSafe(A, cind); err != nil {
		Te.Fatal(err)
	}
	if B.At(0, 0) != 4 || B.At(2, 2) != 18 {
		Te.Errorf("wrong vectors selected:\n%v", B)
	}
	B.Set(1, 1, 55)
	A.SetVecs(B, cind)
	if A.At(3, 1) != 55 {
		Te.Errorf("SetVecs didn't copy back:\n%v", A)
	}
	C := Zeros(2)
	if err = C.SomeVecsSafe(A, cind); err == nil {
		Te.Error("SomeVecsSafe should fail with mismatched shapes")
	}
}

func TestAddSubVec(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 2, 3, 4, 5, 6})
	row, _ := NewMatrix([]float64{10, 20, 30})
	A.AddVec(A, row)
	if A.At(1, 2) != 36 {
		Te.Errorf("AddVec failed:\n%v", A)
	}
	A.SubVec(A, row)
	if A.At(1, 2) != 6 || A.At(0, 0) != 1 {
		Te.Errorf("SubVec failed:\n%v", A)
	}
	B := Zeros(1)
	B.DelVec(A, 0)
	if B.At(0, 0) != 4 {
		Te.Errorf("DelVec failed:\n%v", B)
	}
}

func TestStack(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 1, 1})
	B, _ := NewMatrix([]float64{2, 2, 2, 3, 3, 3})
	C := Zeros(3)
	C.Stack(A, B)
	if C.At(0, 0) != 1 || C.At(2, 1) != 3 {
		Te.Errorf("Stack failed:\n%v", C)
	}
}

func TestCrossUnit(Te *testing.T) {
	x, _ := NewMatrix([]float64{1, 0, 0})
	y, _ := NewMatrix([]float64{0, 1, 0})
	z := Zeros(1)
	z.Cross(x, y)
	if !near(z.At(0, 2), 1) {
		Te.Errorf("x cross y should be z, got %v", z)
	}
	row, _ := NewMatrix([]float64{2, 2, 1})
	row.Unit(row)
	if !near(row.Norm(0), 1) {
		Te.Errorf("Unit vector has norm %f", row.Norm(0))
	}
}

func TestRotate(Te *testing.T) {
	A, _ := NewMatrix([]float64{1, 0, 0, 0, 0, 1})
	zax, _ := NewMatrix([]float64{0, 0, 1})
	R := Rotate(A, zax, math.Pi/2)
	if !near(R.At(0, 0), 0) || !near(R.At(0, 1), 1) {
		Te.Errorf("x rotated 90 deg around z should be y, got %v", R)
	}
	yax, _ := NewMatrix([]float64{0, 1, 0})
	center, _ := NewMatrix([]float64{0, 0, 2})
	S := RotateAbout(A, center, yax, math.Pi)
	//(1,0,0) -> (-1,0,4), (0,0,1) -> (0,0,3)
	if !near(S.At(0, 0), -1) || !near(S.At(0, 2), 4) || !near(S.At(1, 2), 3) {
		Te.Errorf("RotateAbout failed:\n%v", S)
	}
}

func TestCentroidBounds(Te *testing.T) {
	A, _ := NewMatrix([]float64{0, 0, 0, 2, 4, -6})
	c := Centroid(A)
	if !near(c.At(0, 0), 1) || !near(c.At(0, 2), -3) {
		Te.Errorf("bad centroid %v", c)
	}
	min, max := Bounds(A)
	if min[2] != -6 || max[1] != 4 {
		Te.Errorf("bad bounds %v %v", min, max)
	}
	A.Translate(1, 1, 1)
	if A.At(1, 2) != -5 {
		Te.Errorf("Translate failed:\n%v", A)
	}
}

func TestScale(Te *testing.T) {
	A, _ := NewMatrix([]float64{3, 0, 4, 1, 2, 3})
	A.Scale(2, A)
	if A.At(0, 2) != 8 || A.At(1, 1) != 4 {
		Te.Errorf("in place Scale failed:\n%v", A)
	}
	B := Zeros(2)
	B.Scale(0.5, A)
	if B.At(0, 0) != 3 || A.At(0, 0) != 6 {
		Te.Errorf("Scale into another matrix failed:\n%v\n%v", A, B)
	}
	u, _ := NewMatrix([]float64{3, 0, 4})
	u.Unit(u)
	if !near(u.At(0, 0), 0.6) || !near(u.At(0, 2), 0.8) {
		Te.Errorf("bad unit vector %v", u)
	}
}
