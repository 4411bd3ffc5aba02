/*
 * builder.go, part of dgconf.
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

	"go.uber.org/zap"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
)

//Van der Waals lower bounds for pairs three bonds apart
//inside a ring are scaled by this factor.
const ring14Scale = 0.75

//compiler carries what is needed while building
//the constraints for one molecule.
type compiler struct {
	mol     MolGraph
	g       *simple.UndirectedGraph
	kb      TorsionSource
	lengths []float64
	table   *DistanceTable
}

func newCompiler(mol MolGraph, kb TorsionSource) *compiler {
	c := &compiler{mol: mol, g: molGraph(mol), kb: kb, lengths: make([]float64, mol.NBonds())}
	for b := range c.lengths {
		c.lengths[b] = bondLength(mol, b)
	}
	return c
}

//length returns the modeled length of the bond between a and b. It panics if they are not bonded.
func (c *compiler) length(a, b int) float64 {
	bond := bondBetween(c.mol, a, b)
	if bond < 0 {
		panic("compiler: atoms are not bonded")
	}
	return c.lengths[bond]
}

func (c *compiler) angle(a, center, d int) float64 {
	return bondAngle(c.mol, c.g, a, center, d)
}

//torsionDist returns the a-d distance over the a-b-c-d chain for the dihedral phi (degrees).
func (c *compiler) torsionDist(a, b, cc, d int, phi float64) float64 {
	return dist14(c.length(a, b), c.length(b, cc), c.length(cc, d), c.angle(a, b, cc), c.angle(b, cc, d), phi)
}

//BuildDistanceTable compiles the distance constraints for mol. Bonded pairs and pairs two
//bonds apart get Fixed entries, pairs across rigid motifs (sp atoms, double bonds with
//defined parity) Fixed entries, pairs across rotatable bonds known to kb Candidates entries,
//and everything else a Bounded entry. kb can be nil.
func BuildDistanceTable(mol MolGraph, kb TorsionSource) (*DistanceTable, error) {
	c := newCompiler(mol, kb)
	c.build()
	if err := c.table.Check(); err != nil {
		return nil, errDecorate(err, "BuildDistanceTable")
	}
	t := c.table
	logger.Debug("distance table compiled",
		zap.Int("atoms", mol.Len()),
		zap.Int("fixed", t.Count(Fixed)),
		zap.Int("bounded", t.Count(Bounded)),
		zap.Int("candidates", t.Count(Candidates)))
	return t, nil
}

func (c *compiler) build() {
	mol := c.mol
	c.table = NewDistanceTable(mol.Len())
	t := c.table
	for b := 0; b < mol.NBonds(); b++ {
		a1, a2 := mol.BondAtoms(b)
		t.setFixed(a1, a2, c.lengths[b])
	}
	c.pairs13()
	c.pairs14()
	c.spChains()
	c.remote()
}

func (c *compiler) pairs13() {
	mol := c.mol
	for center := 0; center < mol.Len(); center++ {
		nb := mol.Neighbors(center)
		for k, a := range nb {
			for _, d := range nb[k+1:] {
				if c.table.isSet(a, d) {
					continue //3-membered rings
				}
				d13 := dist13(c.length(a, center), c.length(center, d), c.angle(a, center, d))
				c.table.setFixed(a, d, d13)
			}
		}
	}
}

func (c *compiler) pairs14() {
	mol := c.mol
	t := c.table
	for b := 0; b < mol.NBonds(); b++ {
		x, y := mol.BondAtoms(b)
		linear := isLinear(mol, x) || isLinear(mol, y)
		ring := mol.BondRingSize(b)
		double := mol.BondOrder(b) == 2 && !mol.BondAromatic(b) && (ring == 0 || ring >= 8)
		rot := !linear && rotatable(mol, b)
		refA, refD := RefNeighbor(mol, x, y), RefNeighbor(mol, y, x)
		for _, a := range mol.Neighbors(x) {
			if a == y {
				continue
			}
			for _, d := range mol.Neighbors(y) {
				if d == x || d == a || t.isSet(a, d) {
					continue
				}
				switch {
				case linear:
					//the dihedral doesn't matter here.
					t.setFixed(a, d, c.torsionDist(a, x, y, d, 0))
				case double && mol.BondParity(b).Defined():
					cis := mol.BondParity(b) == ParityOdd
					if a != refA {
						cis = !cis
					}
					if d != refD {
						cis = !cis
					}
					phi := 180.0
					if cis {
						phi = 0
					}
					t.setFixed(a, d, c.torsionDist(a, x, y, d, phi))
				case double:
					t.setCandidates(a, d, []float64{c.torsionDist(a, x, y, d, 0), c.torsionDist(a, x, y, d, 180)})
				case rot && c.kb != nil:
					angles := c.kb.TorsionAngles(mol, a, x, y, d)
					if len(angles) == 0 {
						continue //falls back to a Bounded entry
					}
					cand := make([]float64, 0, len(angles))
					for _, phi := range angles {
						cand = append(cand, c.torsionDist(a, x, y, d, phi))
					}
					t.setCandidates(a, d, cand)
				}
			}
		}
	}
}

//shortestPaths gives the shortest paths from one atom. The tree is
//only built if a path is requested.
type shortestPaths struct {
	g     *simple.UndirectedGraph
	from  int
	built bool
	sp    path.Shortest
}

func (c *compiler) pathsFrom(i int) *shortestPaths {
	return &shortestPaths{g: c.g, from: i}
}

//to returns the atoms in a shortest path from the source to j, both included,
//or nil if j can't be reached.
func (s *shortestPaths) to(j int) []int {
	if !s.built {
		s.sp = path.DijkstraFrom(simple.Node(s.from), s.g)
		s.built = true
	}
	nodes, _ := s.sp.To(int64(j))
	if len(nodes) == 0 {
		return nil
	}
	ret := make([]int, len(nodes))
	for k, v := range nodes {
		ret[k] = int(v.ID())
	}
	return ret
}

//spChains fixes the distances between atoms joined by a path where all
//the atoms but the ends are linear.
func (c *compiler) spChains() {
	mol := c.mol
	haslinear := false
	for i := 0; i < mol.Len(); i++ {
		if isLinear(mol, i) {
			haslinear = true
			break
		}
	}
	if !haslinear {
		return
	}
	for i := 1; i < mol.Len(); i++ {
		paths := c.pathsFrom(i)
		for j := 0; j < i; j++ {
			if c.table.isSet(i, j) || mol.TopoDistance(i, j) < 3 {
				continue
			}
			route := paths.to(j)
			if !isLinear(mol, route[1]) {
				continue
			}
			chain := true
			sum := 0.0
			for k := 1; k < len(route); k++ {
				if k < len(route)-1 && !isLinear(mol, route[k]) {
					chain = false
					break
				}
				sum += c.length(route[k-1], route[k])
			}
			if chain {
				c.table.setFixed(i, j, sum)
			}
		}
	}
}

//remote gives a Bounded entry to every pair not yet set.
func (c *compiler) remote() {
	mol := c.mol
	for i := 1; i < mol.Len(); i++ {
		paths := c.pathsFrom(i)
		for j := 0; j < i; j++ {
			if c.table.isSet(i, j) {
				continue
			}
			lo := VdWRadius(mol.AtomicNumber(i)) + VdWRadius(mol.AtomicNumber(j))
			td := mol.TopoDistance(i, j)
			if td < 0 {
				c.table.setBounded(i, j, lo, math.Inf(1))
				continue
			}
			route := paths.to(j)
			var hi float64
			if td == 3 {
				inring := true
				for k := 1; k < len(route); k++ {
					if mol.BondRingSize(bondBetween(mol, route[k-1], route[k])) == 0 {
						inring = false
					}
				}
				if inring {
					lo *= ring14Scale
				}
				hi = c.torsionDist(route[0], route[1], route[2], route[3], 180)
			} else {
				for k := 1; k < len(route); k++ {
					hi += c.length(route[k-1], route[k])
				}
			}
			c.table.setBounded(i, j, lo, hi)
		}
	}
}
