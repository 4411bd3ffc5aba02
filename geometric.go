/*
 * geometric.go, part of dgconf.
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
	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001 //used to correct floating point errors.

//ConstraintKind is the type of a geometric constraint.
type ConstraintKind int

const (
	Plane ConstraintKind = iota
	WeakPlane
	Line
	Stereo
)

func (k ConstraintKind) String() string {
	switch k {
	case Plane:
		return "plane"
	case WeakPlane:
		return "weakplane"
	case Line:
		return "line"
	case Stereo:
		return "stereo"
	}
	return "unknown"
}

//Constraint is a geometric constraint over a list of atoms. For Plane, WeakPlane and
//Line constraints the order of the atoms is irrelevant. For Stereo constraints the
//list holds three reference atoms, optionally a 4th neighbor, and the stereocenter (pivot) last.
type Constraint struct {
	Kind  ConstraintKind
	Atoms []int
}

//centroid returns the geometric center of the atoms and their
//scatter matrix around it.
func centroid(c *Conformer, atoms []int) ([3]float64, [3][3]float64) {
	var cen [3]float64
	for _, i := range atoms {
		cen = add(cen, c.pos(i))
	}
	cen = scale(1/float64(len(atoms)), cen)
	var s [3][3]float64
	for _, i := range atoms {
		d := sub(c.pos(i), cen)
		for k := 0; k < 3; k++ {
			for l := k; l < 3; l++ {
				s[k][l] += d[k] * d[l]
			}
		}
	}
	s[1][0], s[2][0], s[2][1] = s[0][1], s[0][2], s[1][2]
	return cen, s
}

//fitPlane returns the center and the unit normal of the least-squares plane
//through the atoms. ok is false if the normal can't be determined.
func fitPlane(c *Conformer, atoms []int) (cen, normal [3]float64, ok bool) {
	cen, s := centroid(c, atoms)
	_, vecs := v3.SymEigen3(s)
	normal = vecs[0]
	n := norm(normal)
	if n < appzero {
		return cen, normal, false
	}
	return cen, scale(1/n, normal), true
}

//fitLine returns the center and the unit direction of the least-squares line through the atoms.
func fitLine(c *Conformer, atoms []int) (cen, dir [3]float64, ok bool) {
	cen, s := centroid(c, atoms)
	_, vecs := v3.SymEigen3(s)
	dir = vecs[2]
	n := norm(dir)
	if n < appzero {
		return cen, dir, false
	}
	return cen, scale(1/n, dir), true
}

//applyPlane moves each atom toward the best plane by its offset times cf.
func applyPlane(c *Conformer, atoms []int, cf float64) {
	cen, n, ok := fitPlane(c, atoms)
	if !ok {
		return
	}
	cf = math.Min(cf, 1)
	for _, i := range atoms {
		off := dot(sub(c.pos(i), cen), n)
		c.move(i, scale(-off*cf, n))
	}
}

//applyLine moves each atom toward its projection on the best line, by cf times the distance.
func applyLine(c *Conformer, atoms []int, cf float64) {
	cen, u, ok := fitLine(c, atoms)
	if !ok {
		return
	}
	cf = math.Min(cf, 1)
	for _, i := range atoms {
		p := c.pos(i)
		proj := add(cen, scale(dot(sub(p, cen), u), u))
		c.move(i, scale(cf, sub(proj, p)))
	}
}

//stereoHeight returns the signed height of the pivot over the plane of the first
//three atoms, the unit normal of that plane and the height a tetrahedral center
//would have, given the pivot-reference distances in t. ok is false for degenerate
//references.
func stereoHeight(c *Conformer, t *DistanceTable, atoms []int) (h float64, n [3]float64, target float64, ok bool) {
	pivot := atoms[len(atoms)-1]
	r0 := c.pos(atoms[0])
	n = cross(sub(c.pos(atoms[1]), r0), sub(c.pos(atoms[2]), r0))
	l := norm(n)
	if l < appzero {
		return 0, n, 0, false
	}
	n = scale(1/l, n)
	h = dot(sub(c.pos(pivot), r0), n)
	var lavg float64
	for _, r := range atoms[:3] {
		lavg += t.Get(pivot, r).Min
	}
	lavg /= 3
	//the bonds of a tetrahedral center make 180-109.47 degrees with the normal
	target = -lavg * math.Cos(tetrahedral*deg2rad)
	return h, n, target, true
}

//applyStereo flips the handedness of the center if it is wrong. The pivot
//(and the 4th neighbor, if present) moves 3/4 of the correction along the
//normal and the references 1/4 in the opposite direction.
func applyStereo(c *Conformer, t *DistanceTable, atoms []int, cf float64) {
	h, n, target, ok := stereoHeight(c, t, atoms)
	if !ok || h > 0 {
		return
	}
	delta := (target - h) * math.Min(cf, 1)
	for k, i := range atoms {
		if k < 3 {
			c.move(i, scale(-0.25*delta, n))
		} else {
			c.move(i, scale(0.75*delta, n))
		}
	}
}

//BestPlane returns the unit normal to the plane that best contains the given rows of coords,
//and the RMS distance of those points to the plane. All rows are used if atoms is nil.
func BestPlane(coords *v3.Matrix, atoms []int) (*v3.Matrix, float64, error) {
	if atoms == nil {
		atoms = make([]int, coords.NVecs())
		for i := range atoms {
			atoms[i] = i
		}
	}
	if len(atoms) < 3 {
		return nil, 0, newError("at least 3 points are needed to fit a plane", "BestPlane", nil)
	}
	sel := v3.Zeros(len(atoms))
	sel.SomeVecs(coords, atoms)
	var cen [3]float64
	for i := range atoms {
		for k := 0; k < 3; k++ {
			cen[k] += sel.At(i, k) / float64(len(atoms))
		}
	}
	scatter := mat.NewSymDense(3, nil)
	for i := range atoms {
		for k := 0; k < 3; k++ {
			for l := k; l < 3; l++ {
				scatter.SetSym(k, l, scatter.At(k, l)+(sel.At(i, k)-cen[k])*(sel.At(i, l)-cen[l]))
			}
		}
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(scatter, true); !ok {
		return nil, 0, newError("eigendecomposition failed", "BestPlane", nil)
	}
	var evecs mat.Dense
	eig.VectorsTo(&evecs)
	//gonum returns the eigenvalues in ascending order.
	normal := v3.Zeros(1)
	for k := 0; k < 3; k++ {
		normal.Set(0, k, evecs.At(k, 0))
	}
	var ss float64
	for i := range atoms {
		var off float64
		for k := 0; k < 3; k++ {
			off += (sel.At(i, k) - cen[k]) * normal.At(0, k)
		}
		ss += off * off
	}
	return normal, math.Sqrt(ss / float64(len(atoms))), nil
}

//StereoMarker describes the geometry of a stereo constraint in a conformer.
type StereoMarker struct {
	Center    int
	Centroid  [3]float64 //of the three reference atoms
	Normal    [3]float64 //unit normal of the reference plane
	Height    float64    //signed height of the center over the plane
	Target    float64    //height of an ideal tetrahedral center
	Satisfied bool
}

//StereoMarkers returns the geometry of each stereo constraint of the generator
//in the conformer c. It changes neither the molecule nor the conformer.
func (G *Generator) StereoMarkers(c *Conformer) []StereoMarker {
	G.mu.RLock()
	defer G.mu.RUnlock()
	var ret []StereoMarker
	for _, g := range G.geoms {
		if g.Kind != Stereo {
			continue
		}
		h, n, target, _ := stereoHeight(c, G.table, g.Atoms)
		var cen [3]float64
		for _, r := range g.Atoms[:3] {
			cen = add(cen, scale(1.0/3, c.pos(r)))
		}
		ret = append(ret, StereoMarker{Center: g.Atoms[len(g.Atoms)-1], Centroid: cen, Normal: n, Height: h, Target: target, Satisfied: h > 0})
	}
	return ret
}
