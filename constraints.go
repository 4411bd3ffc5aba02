/*
 * constraints.go, part of dgconf.
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
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

//BuildGeometricConstraints compiles the plane constraints of mol and, depending on O,
//the weak plane, line and stereo constraints. A nil O means DefaultOptions.
func BuildGeometricConstraints(mol MolGraph, O *Options) []*Constraint {
	if O == nil {
		O = DefaultOptions()
	}
	ret := planes(mol, isFlat, Plane)
	if O.WeakPlanes() {
		ret = append(ret, planes(mol, isTryFlat, WeakPlane)...)
	}
	if O.Lines() {
		ret = append(ret, lines(mol)...)
	}
	if O.Stereo() {
		ret = append(ret, stereos(mol)...)
	}
	logger.Debug("geometric constraints compiled",
		zap.Int("planes", countKind(ret, Plane)),
		zap.Int("weak", countKind(ret, WeakPlane)),
		zap.Int("lines", countKind(ret, Line)),
		zap.Int("stereo", countKind(ret, Stereo)))
	return ret
}

func countKind(c []*Constraint, k ConstraintKind) int {
	n := 0
	for _, v := range c {
		if v.Kind == k {
			n++
		}
	}
	return n
}

//hasCarbonyl is true if atom i is a carbon with a double bond to an oxygen.
func hasCarbonyl(mol MolGraph, i int) bool {
	if mol.AtomicNumber(i) != 6 {
		return false
	}
	for _, b := range mol.NeighborBonds(i) {
		if mol.BondOrder(b) != 2 || mol.BondAromatic(b) {
			continue
		}
		a1, a2 := mol.BondAtoms(b)
		o := a1
		if o == i {
			o = a2
		}
		if mol.AtomicNumber(o) == 8 {
			return true
		}
	}
	return false
}

//isFlat is true for aromatic bonds, multiple bonds between second-row atoms, and
//the C-N and C-O single bonds of amides and esters.
func isFlat(mol MolGraph, b int) bool {
	if mol.BondAromatic(b) {
		return true
	}
	a1, a2 := mol.BondAtoms(b)
	z1, z2 := mol.AtomicNumber(a1), mol.AtomicNumber(a2)
	if mol.BondOrder(b) > 1 {
		return z1 <= 8 && z2 <= 8
	}
	if (z1 == 7 || z1 == 8) && hasCarbonyl(mol, a2) {
		return true
	}
	return (z2 == 7 || z2 == 8) && hasCarbonyl(mol, a1)
}

//isTryFlat is true for single bonds between an aromatic atom and a
//non aromatic N or O, which often, but not always, lie on the ring plane.
func isTryFlat(mol MolGraph, b int) bool {
	if mol.BondOrder(b) != 1 || mol.BondAromatic(b) || isFlat(mol, b) {
		return false
	}
	a1, a2 := mol.BondAtoms(b)
	no := func(i int) bool {
		z := mol.AtomicNumber(i)
		return (z == 7 || z == 8) && !mol.AtomAromatic(i)
	}
	return (mol.AtomAromatic(a1) && no(a2)) || (mol.AtomAromatic(a2) && no(a1))
}

//planes grows fragments over the bonds for which flat is true. Linear atoms are
//included in a fragment but the fragment doesn't grow past them. Each fragment gets
//one shell of neighbors, and those with at least 4 atoms become a constraint of kind k.
func planes(mol MolGraph, flat func(MolGraph, int) bool, k ConstraintKind) []*Constraint {
	var ret []*Constraint
	used := make([]bool, mol.NBonds())
	for b := range used {
		if used[b] || !flat(mol, b) {
			continue
		}
		used[b] = true
		a1, a2 := mol.BondAtoms(b)
		in := map[int]bool{a1: true, a2: true}
		core := []int{a1, a2}
		queue := []int{a1, a2}
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			if isLinear(mol, u) {
				continue
			}
			for _, nb := range mol.NeighborBonds(u) {
				if used[nb] || !flat(mol, nb) {
					continue
				}
				used[nb] = true
				x, y := mol.BondAtoms(nb)
				v := x
				if v == u {
					v = y
				}
				if !in[v] {
					in[v] = true
					core = append(core, v)
					queue = append(queue, v)
				}
			}
		}
		atoms := append([]int(nil), core...)
		for _, u := range core {
			if isLinear(mol, u) {
				continue
			}
			for _, v := range mol.Neighbors(u) {
				if !in[v] {
					in[v] = true
					atoms = append(atoms, v)
				}
			}
		}
		if len(atoms) >= 4 {
			sort.Ints(atoms)
			ret = append(ret, &Constraint{Kind: k, Atoms: atoms})
		}
	}
	return ret
}

//lines returns one constraint per group of bonded linear atoms,
//including their neighbors.
func lines(mol MolGraph) []*Constraint {
	g := simple.NewUndirectedGraph()
	for i := 0; i < mol.Len(); i++ {
		if isLinear(mol, i) {
			g.AddNode(simple.Node(i))
		}
	}
	for b := 0; b < mol.NBonds(); b++ {
		a1, a2 := mol.BondAtoms(b)
		if isLinear(mol, a1) && isLinear(mol, a2) {
			g.SetEdge(g.NewEdge(simple.Node(a1), simple.Node(a2)))
		}
	}
	var ret []*Constraint
	for _, comp := range topo.ConnectedComponents(g) {
		in := make(map[int]bool)
		atoms := make([]int, 0, len(comp)+2)
		for _, n := range comp {
			in[int(n.ID())] = true
			atoms = append(atoms, int(n.ID()))
		}
		for _, n := range comp {
			for _, v := range mol.Neighbors(int(n.ID())) {
				if !in[v] {
					in[v] = true
					atoms = append(atoms, v)
				}
			}
		}
		if len(atoms) >= 3 {
			sort.Ints(atoms)
			ret = append(ret, &Constraint{Kind: Line, Atoms: atoms})
		}
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Atoms[0] < ret[j].Atoms[0] })
	return ret
}

//stereoNeighbors returns the neighbors of i in the order used to define
//its parity: heavy atoms first, each group by increasing index.
func stereoNeighbors(mol MolGraph, i int) []int {
	nb := append([]int(nil), mol.Neighbors(i)...)
	sort.Slice(nb, func(a, b int) bool {
		ha, hb := mol.AtomicNumber(nb[a]) > 1, mol.AtomicNumber(nb[b]) > 1
		if ha != hb {
			return ha
		}
		return nb[a] < nb[b]
	})
	return nb
}

//stereos returns a constraint for each atom with defined parity and at least 3 neighbors.
//The atom list is the references (2 first swapped for even parity), an optional 4th heavy
//neighbor, and the stereocenter, so the wanted handedness is always positive.
func stereos(mol MolGraph) []*Constraint {
	var ret []*Constraint
	for i := 0; i < mol.Len(); i++ {
		if !mol.AtomParity(i).Defined() {
			continue
		}
		nb := stereoNeighbors(mol, i)
		if len(nb) < 3 {
			continue
		}
		k := 3
		if len(nb) == 4 && mol.AtomicNumber(nb[3]) > 1 {
			k = 4
		}
		atoms := append(append(make([]int, 0, k+1), nb[:k]...), i)
		if mol.AtomParity(i) == ParityEven {
			atoms[0], atoms[1] = atoms[1], atoms[0]
		}
		ret = append(ret, &Constraint{Kind: Stereo, Atoms: atoms})
	}
	return ret
}
