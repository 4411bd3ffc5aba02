/*
 * conformer.go, part of dgconf.
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

package dgconf

import (
	"math"

	v3 "github.com/rmera/dgconf/v3"
)

//Conformer is one set of coordinates for a molecule, in A.
//Torsions maps rotatable bond indexes to the dihedral (degrees, [0,360))
//found for them, if recorded.
type Conformer struct {
	X, Y, Z  []float64
	Torsions map[int]float64
}

//NewConformer returns a conformer for n atoms, all at the origin.
func NewConformer(n int) *Conformer {
	return &Conformer{X: make([]float64, n), Y: make([]float64, n), Z: make([]float64, n)}
}

//Len returns the number of atoms in the conformer.
func (C *Conformer) Len() int {
	return len(C.X)
}

//Copy returns a deep copy of the conformer.
func (C *Conformer) Copy() *Conformer {
	r := &Conformer{
		X: append([]float64(nil), C.X...),
		Y: append([]float64(nil), C.Y...),
		Z: append([]float64(nil), C.Z...),
	}
	if C.Torsions != nil {
		r.Torsions = make(map[int]float64, len(C.Torsions))
		for k, v := range C.Torsions {
			r.Torsions[k] = v
		}
	}
	return r
}

//Matrix returns the coordinates as a new matrix, one row per atom.
func (C *Conformer) Matrix() *v3.Matrix {
	m := v3.Zeros(C.Len())
	for i := range C.X {
		m.Set(i, 0, C.X[i])
		m.Set(i, 1, C.Y[i])
		m.Set(i, 2, C.Z[i])
	}
	return m
}

//SetMatrix copies the coordinates in m to the conformer. It panics if m has the wrong size.
func (C *Conformer) SetMatrix(m *v3.Matrix) {
	if m.NVecs() != C.Len() {
		panic(v3.ErrShape)
	}
	for i := range C.X {
		C.X[i], C.Y[i], C.Z[i] = m.At(i, 0), m.At(i, 1), m.At(i, 2)
	}
}

func (C *Conformer) pos(i int) [3]float64 {
	return [3]float64{C.X[i], C.Y[i], C.Z[i]}
}

func (C *Conformer) move(i int, d [3]float64) {
	C.X[i] += d[0]
	C.Y[i] += d[1]
	C.Z[i] += d[2]
}

//Distance returns the distance between atoms i and j.
func (C *Conformer) Distance(i, j int) float64 {
	dx, dy, dz := C.X[j]-C.X[i], C.Y[j]-C.Y[i], C.Z[j]-C.Z[i]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

//Dihedral calculates the dihedral between the atoms a, b, c, d, where the first plane
//is defined by abc and the second by bcd, in degrees, in the [0,360) range.
func (C *Conformer) Dihedral(a, b, c, d int) float64 {
	pa, pb, pc, pd := C.pos(a), C.pos(b), C.pos(c), C.pos(d)
	//bma=b minus a
	bma := sub(pb, pa)
	cmb := sub(pc, pb)
	dmc := sub(pd, pc)
	first := dot(scale(norm(cmb), bma), cross(cmb, dmc))
	second := dot(cross(bma, cmb), cross(cmb, dmc))
	dihedral := math.Atan2(first, second) / deg2rad
	if dihedral < 0 {
		dihedral += 360
	}
	return dihedral
}

//small helpers for 3-vectors

func sub(a, b [3]float64) [3]float64 { return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]} }

func add(a, b [3]float64) [3]float64 { return [3]float64{a[0] + b[0], a[1] + b[1], a[2] + b[2]} }

func scale(s float64, a [3]float64) [3]float64 { return [3]float64{s * a[0], s * a[1], s * a[2]} }

func dot(a, b [3]float64) float64 { return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] }

func norm(a [3]float64) float64 { return math.Sqrt(dot(a, a)) }

func cross(a, b [3]float64) [3]float64 {
	return [3]float64{a[1]*b[2] - a[2]*b[1], a[2]*b[0] - a[0]*b[2], a[0]*b[1] - a[1]*b[0]}
}
