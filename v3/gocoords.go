/*
 * gocoords.go, part of gosam.
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
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

//METHODS

// NVecs returns the number of vecs in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

// AddVec adds the vector vec to each vector of A, putting the result on the receiver.
// Panics if matrices are mismatched.
func (F *Matrix) AddVec(A, vec *Matrix) {
	ar, ac := A.Dims()
	rr, rc := vec.Dims()
	fr, fc := F.Dims()
	if ac != rc || rr != 1 || ac != fc || ar != fr {
		panic(ErrShape)
	}
	v := vec.RawRowView(0)
	for i := 0; i < ar; i++ {
		a := A.RawRowView(i)
		f := F.RawRowView(i)
		for k := 0; k < 3; k++ {
			f[k] = a[k] + v[k]
		}
	}
}

// SubVec subtracts the vector vec from each vector of the matrix A, putting
// the result on the receiver. Panics if matrices are mismatched.
func (F *Matrix) SubVec(A, vec *Matrix) {
	v := vec.RawRowView(0)
	neg, _ := NewMatrix([]float64{-v[0], -v[1], -v[2]})
	F.AddVec(A, neg)
}

// DelVec puts in the receiver a copy of A without its ith vector.
func (F *Matrix) DelVec(A *Matrix, i int) {
	ar := A.NVecs()
	fr := F.NVecs()
	if i >= ar || fr != (ar-1) {
		panic(ErrShape)
	}
	for k, j := 0, 0; k < ar; k++ {
		if k == i {
			continue
		}
		copy(F.RawRowView(j), A.RawRowView(k))
		j++
	}
}

// SetVecs sets the vectors with index n = each value in clist, in the receiver to the
// n vector of A.
func (F *Matrix) SetVecs(A *Matrix, clist []int) {
	ar := A.NVecs()
	fr := F.NVecs()
	if fr < len(clist) || ar < len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		copy(F.RawRowView(val), A.RawRowView(key))
	}
}

// SomeVecs puts in the receiver all the ith vectors of matrix A,
// where i are the numbers in clist. The vectors are in the same order
// as the clist.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	ar := A.NVecs()
	fr := F.NVecs()
	if fr != len(clist) || ar < len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		copy(F.RawRowView(key), A.RawRowView(val))
	}
}

// SomeVecsSafe is like SomeVecs but returns an error instead of panicking.
func (F *Matrix) SomeVecsSafe(A *Matrix, clist []int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			switch e := r.(type) {
			case PanicMsg:
				err = Error{string(e), []string{"SomeVecsSafe"}}
			case mat.Error:
				err = Error{fmt.Sprintf("gosam/v3: Error in a gonum function: %s", e), []string{"SomeVecsSafe"}}
			default:
				err = Error{fmt.Sprint(e), []string{"SomeVecsSafe"}}
			}
		}
	}()
	F.SomeVecs(A, clist)
	return err
}

// String returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r, _ := F.Dims()
	v := make([]string, 0, r+2)
	v = append(v, "[")
	for i := 0; i < r; i++ {
		row := F.RawRowView(i)
		v = append(v, fmt.Sprintf(" %6.3f %6.3f %6.3f", row[0], row[1], row[2]))
	}
	v = append(v, " ]")
	return strings.Join(v, "\n")
}

// Cross puts the cross product of the first vecs of a and b in the first vec of F. Panics if error.
func (F *Matrix) Cross(a, b *Matrix) {
	if a.NVecs() < 1 || b.NVecs() < 1 || F.NVecs() < 1 {
		panic(ErrNoCrossProduct)
	}
	a0, a1, a2 := a.At(0, 0), a.At(0, 1), a.At(0, 2)
	b0, b1, b2 := b.At(0, 0), b.At(0, 1), b.At(0, 2)
	F.Set(0, 0, a1*b2-a2*b1)
	F.Set(0, 1, a2*b0-a0*b2)
	F.Set(0, 2, a0*b1-a1*b0)
}

// Norm returns the euclidean norm of the ith vector of F.
func (F *Matrix) Norm(i int) float64 {
	r := F.RawRowView(i)
	return math.Sqrt(r[0]*r[0] + r[1]*r[1] + r[2]*r[2])
}

// Unit puts in the receiver the unit vector with the direction of the
// first vector of A.
func (F *Matrix) Unit(A *Matrix) {
	if A.Dense != F.Dense {
		F.Copy(A)
	}
	n := F.Norm(0)
	if n <= appzero {
		panic(ErrZeroVector)
	}
	F.Scale(1.0/n, F)
}
