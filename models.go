/*
 * models.go, part of dgconf.
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

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

const deg2rad = math.Pi / 180.0

//Bond length scaling relative to the sum of covalent radii.
const (
	aromaticScale   = 0.915
	doubleScale     = 0.87
	tripleScale     = 0.79
	conjugatedScale = 0.965
)

const tetrahedral = 109.47

//bondLength returns the modeled length, in A, of the bond b.
func bondLength(mol MolGraph, b int) float64 {
	a1, a2 := mol.BondAtoms(b)
	l := CovalentRadius(mol.AtomicNumber(a1)) + CovalentRadius(mol.AtomicNumber(a2))
	switch {
	case mol.BondAromatic(b):
		return l * aromaticScale
	case mol.BondOrder(b) == 2:
		return l * doubleScale
	case mol.BondOrder(b) == 3:
		return l * tripleScale
	case mol.PiCount(a1) > 0 && mol.PiCount(a2) > 0:
		return l * conjugatedScale
	}
	return l
}

//isLinear is true for sp atoms, where all bond angles are 180 degrees.
func isLinear(mol MolGraph, i int) bool {
	return !mol.AtomAromatic(i) && mol.PiCount(i) >= 2
}

//conjugatedN is true for a trivalent nitrogen next to a pi system (amides, anilines).
func conjugatedN(mol MolGraph, i int) bool {
	if mol.AtomicNumber(i) != 7 || mol.PiCount(i) != 0 {
		return false
	}
	nb := mol.Neighbors(i)
	if len(nb) != 3 {
		return false
	}
	for _, v := range nb {
		if mol.PiCount(v) > 0 {
			return true
		}
	}
	return false
}

//ringPath returns the number of bonds in the shortest path between a and c that doesn't
//pass through the atom center, looking no further than maxdepth bonds, or -1.
func ringPath(g graph.Graph, a, center, c int, maxdepth int) int {
	found := -1
	bfs := traverse.BreadthFirst{
		Traverse: func(e graph.Edge) bool {
			return e.From().ID() != int64(center) && e.To().ID() != int64(center)
		},
	}
	bfs.Walk(g, simple.Node(a), func(n graph.Node, d int) bool {
		if d > maxdepth {
			return true
		}
		if n.ID() == int64(c) {
			found = d
			return true
		}
		return false
	})
	return found
}

//bondAngle returns the modeled a-center-c angle, in degrees.
func bondAngle(mol MolGraph, g graph.Graph, a, center, c int) float64 {
	if isLinear(mol, center) {
		return 180
	}
	if p := ringPath(g, a, center, c, 3); p > 0 {
		switch p + 2 {
		case 3:
			return 60
		case 4:
			return 90
		case 5:
			if mol.PiCount(center) > 0 || mol.AtomAromatic(center) {
				return 108
			}
			return 104
		}
	}
	if mol.PiCount(center) == 1 || conjugatedN(mol, center) {
		return 120
	}
	return tetrahedral
}

//dist13 applies the law of cosines to two bonds of lengths l1 and l2 with the
//angle theta (degrees) between them.
func dist13(l1, l2, theta float64) float64 {
	return math.Sqrt(l1*l1 + l2*l2 - 2*l1*l2*math.Cos(theta*deg2rad))
}

//dist14 returns the a-d distance in the chain a-b-c-d with bond lengths lab, lbc, lcd, bond angles
//thetab (a-b-c) and thetac (b-c-d) and dihedral phi, all angles in degrees. phi=0 is cis.
func dist14(lab, lbc, lcd, thetab, thetac, phi float64) float64 {
	tb := thetab * deg2rad
	tc := thetac * deg2rad
	p := phi * deg2rad
	//b at the origin, c along x, a in the xy plane.
	x := lbc - lcd*math.Cos(tc) - lab*math.Cos(tb)
	y := lcd*math.Sin(tc)*math.Cos(p) - lab*math.Sin(tb)
	z := lcd * math.Sin(tc) * math.Sin(p)
	return math.Sqrt(x*x + y*y + z*z)
}

func heavyDegree(mol MolGraph, i int) int {
	n := 0
	for _, v := range mol.Neighbors(i) {
		if mol.AtomicNumber(v) > 1 {
			n++
		}
	}
	return n
}

//bondBetween returns the index of the bond between a and b, or -1
func bondBetween(mol MolGraph, a, b int) int {
	for _, v := range mol.NeighborBonds(a) {
		a1, a2 := mol.BondAtoms(v)
		if (a1 == a && a2 == b) || (a1 == b && a2 == a) {
			return v
		}
	}
	return -1
}

//rotatable is true for single, non aromatic bonds outside rings of
//less than 8 atoms, where both atoms have at least 2 heavy neighbors.
func rotatable(mol MolGraph, b int) bool {
	if mol.BondOrder(b) != 1 || mol.BondAromatic(b) {
		return false
	}
	if r := mol.BondRingSize(b); r > 0 && r < 8 {
		return false
	}
	a1, a2 := mol.BondAtoms(b)
	if isLinear(mol, a1) || isLinear(mol, a2) {
		return false
	}
	return heavyDegree(mol, a1) >= 2 && heavyDegree(mol, a2) >= 2
}

//RefNeighbor returns the lowest-index heavy neighbor of i other than
//exclude, or the lowest-index neighbor if i has no other heavy neighbors, or -1.
//Parities around atoms and bonds, and the chiral markers of torsions, are all
//given relative to this neighbor.
func RefNeighbor(mol MolGraph, i, exclude int) int {
	heavy, first := -1, -1
	for _, v := range mol.Neighbors(i) {
		if v == exclude {
			continue
		}
		if first < 0 || v < first {
			first = v
		}
		if mol.AtomicNumber(v) > 1 && (heavy < 0 || v < heavy) {
			heavy = v
		}
	}
	if heavy >= 0 {
		return heavy
	}
	return first
}
