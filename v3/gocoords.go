/*
 * gocoords.go, part of dgconf.
 *
 * Copyright 2026 The dgconf Authors
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

//Zeros returns a zero-filled Matrix with vecs vectors and 3 in the other dimension.
func Zeros(vecs int) *Matrix {
	const cols int = 3
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

//NVecs returns the number of vecs in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != 3 {
		panic(ErrNotXx3Matrix)
	}
	return r
}

//Len is an alias for NVecs, so a Matrix reads like the other containers.
func (F *Matrix) Len() int {
	return F.NVecs()
}

//SomeVecs puts in the receiver all the ith vectors of matrix A,
//where i are the numbers in clist. The vectors are in the same order
//than the clist.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	ar, _ := A.Dims()
	if F.NVecs() != len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		if val >= ar {
			panic(ErrIndexOutOfRange)
		}
		for j := 0; j < 3; j++ {
			F.Set(key, j, A.At(val, j))
		}
	}
}

//SetVecs sets the vectors with index n = each value on clist, in the receiver, to the
//n vector of A.
func (F *Matrix) SetVecs(A *Matrix, clist []int) {
	if A.NVecs() < len(clist) {
		panic(ErrShape)
	}
	for key, val := range clist {
		for j := 0; j < 3; j++ {
			F.Set(val, j, A.At(key, j))
		}
	}
}

//AddVec adds the vector vec to each vector of A, putting the result on the receiver.
func (F *Matrix) AddVec(A, vec *Matrix) {
	if vec.NVecs() != 1 || A.NVecs() != F.NVecs() {
		panic(ErrShape)
	}
	v := [3]float64{vec.At(0, 0), vec.At(0, 1), vec.At(0, 2)}
	for i := 0; i < A.NVecs(); i++ {
		for j := 0; j < 3; j++ {
			F.Set(i, j, A.At(i, j)+v[j])
		}
	}
}

//SubVec subtracts the vector to each vector of the matrix A, putting
//the result on the receiver. Panics if matrices are mismatched.
func (F *Matrix) SubVec(A, vec *Matrix) {
	if vec.NVecs() != 1 || A.NVecs() != F.NVecs() {
		panic(ErrShape)
	}
	v := [3]float64{vec.At(0, 0), vec.At(0, 1), vec.At(0, 2)}
	for i := 0; i < A.NVecs(); i++ {
		for j := 0; j < 3; j++ {
			F.Set(i, j, A.At(i, j)-v[j])
		}
	}
}

//Dot returns the sum of the element-wise products of F and B.
func (F *Matrix) Dot(B *Matrix) float64 {
	fr, fc := F.Dims()
	br, bc := B.Dims()
	if fr != br || fc != bc {
		panic(ErrShape)
	}
	var ret float64
	for i := 0; i < fr; i++ {
		for j := 0; j < fc; j++ {
			ret += F.At(i, j) * B.At(i, j)
		}
	}
	return ret
}

//Cross puts the cross product of the first vecs of a and b in the first vec of F. Panics if error.
func (F *Matrix) Cross(a, b *Matrix) {
	if a.NVecs() < 1 || b.NVecs() < 1 || F.NVecs() < 1 {
		panic(ErrNoCrossProduct)
	}
	x := a.At(0, 1)*b.At(0, 2) - a.At(0, 2)*b.At(0, 1)
	y := a.At(0, 2)*b.At(0, 0) - a.At(0, 0)*b.At(0, 2)
	z := a.At(0, 0)*b.At(0, 1) - a.At(0, 1)*b.At(0, 0)
	F.Set(0, 0, x)
	F.Set(0, 1, y)
	F.Set(0, 2, z)
}

//Unit puts in the receiver the unit vector pointing in the same
//direction as the first vector of A. A zero vector is copied as is.
func (F *Matrix) Unit(A *Matrix) {
	n := math.Sqrt(A.At(0, 0)*A.At(0, 0) + A.At(0, 1)*A.At(0, 1) + A.At(0, 2)*A.At(0, 2))
	if n <= appzero {
		n = 1
	}
	for j := 0; j < 3; j++ {
		F.Set(0, j, A.At(0, j)/n)
	}
}

//Returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r, _ := F.Dims()
	v := make([]string, 0, r+2)
	v = append(v, "\n[")
	for i := 0; i < r; i++ {
		v = append(v, fmt.Sprintf(" %6.2f %6.2f %6.2f", F.At(i, 0), F.At(i, 1), F.At(i, 2)))
	}
	return strings.Join(v, "\n") + " ]"
}
