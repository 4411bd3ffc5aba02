/*
 * eigen.go, part of dgconf.
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

import "math"

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

const maxJacobiSweeps = 50

//SymEigen3 diagonalizes the symmetric 3x3 matrix a with cyclic Jacobi rotations.
//It returns the eigenvalues in ascending order and the matching unit eigenvectors
//(vecs[k] goes with vals[k]). Only the upper triangle of a is read.
//It does not allocate. Use gonum's mat.EigenSym for anything bigger.
func SymEigen3(a [3][3]float64) (vals [3]float64, vecs [3][3]float64) {
	a[1][0], a[2][0], a[2][1] = a[0][1], a[0][2], a[1][2]
	v := [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	var scale float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			scale += a[i][j] * a[i][j]
		}
	}
	for sweep := 0; sweep < maxJacobiSweeps && scale > 0; sweep++ {
		off := a[0][1]*a[0][1] + a[0][2]*a[0][2] + a[1][2]*a[1][2]
		if off <= 1e-30*scale {
			break
		}
		for p := 0; p < 2; p++ {
			for q := p + 1; q < 3; q++ {
				if math.Abs(a[p][q]) < 1e-300 {
					continue
				}
				theta := (a[q][q] - a[p][p]) / (2 * a[p][q])
				t := 1 / (math.Abs(theta) + math.Sqrt(theta*theta+1))
				if theta < 0 {
					t = -t
				}
				c := 1 / math.Sqrt(t*t+1)
				s := t * c
				for k := 0; k < 3; k++ {
					akp, akq := a[k][p], a[k][q]
					a[k][p] = c*akp - s*akq
					a[k][q] = s*akp + c*akq
				}
				for k := 0; k < 3; k++ {
					apk, aqk := a[p][k], a[q][k]
					a[p][k] = c*apk - s*aqk
					a[q][k] = s*apk + c*aqk
				}
				for k := 0; k < 3; k++ {
					vkp, vkq := v[k][p], v[k][q]
					v[k][p] = c*vkp - s*vkq
					v[k][q] = s*vkp + c*vkq
				}
			}
		}
	}
	order := [3]int{0, 1, 2}
	for i := 0; i < 2; i++ {
		for j := i + 1; j < 3; j++ {
			if a[order[j]][order[j]] < a[order[i]][order[i]] {
				order[i], order[j] = order[j], order[i]
			}
		}
	}
	for k, o := range order {
		vals[k] = a[o][o]
		vecs[k] = [3]float64{v[0][o], v[1][o], v[2][o]}
	}
	return vals, vecs
}
