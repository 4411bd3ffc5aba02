/*
 * topology.go, part of dgconf.
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
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"
)

//topology holds the graph-derived data of a Molecule, computed
//once after the last edit.
type topology struct {
	g     *simple.UndirectedGraph
	dist  [][]int
	rings []int
}

func (M *Molecule) resetTopology() {
	M.topomu.Lock()
	M.topo = nil
	M.topomu.Unlock()
}

func (M *Molecule) topology() *topology {
	M.topomu.Lock()
	defer M.topomu.Unlock()
	if M.topo == nil {
		M.topo = newTopology(M)
	}
	return M.topo
}

//molGraph returns a gonum graph with one node per atom and one edge per bond
//of mol. Node IDs are the atom indexes.
func molGraph(mol MolGraph) *simple.UndirectedGraph {
	g := simple.NewUndirectedGraph()
	for i := 0; i < mol.Len(); i++ {
		g.AddNode(simple.Node(i))
	}
	for b := 0; b < mol.NBonds(); b++ {
		a1, a2 := mol.BondAtoms(b)
		g.SetEdge(g.NewEdge(simple.Node(a1), simple.Node(a2)))
	}
	return g
}

func newTopology(mol MolGraph) *topology {
	n := mol.Len()
	t := &topology{g: molGraph(mol), dist: make([][]int, n), rings: make([]int, mol.NBonds())}
	for i := 0; i < n; i++ {
		d := make([]int, n)
		for j := range d {
			d[j] = -1
		}
		var bfs traverse.BreadthFirst
		bfs.Walk(t.g, simple.Node(i), func(node graph.Node, depth int) bool {
			d[node.ID()] = depth
			return false
		})
		t.dist[i] = d
	}
	for b := range t.rings {
		a1, a2 := mol.BondAtoms(b)
		t.rings[b] = smallestRing(t.g, int64(a1), int64(a2))
	}
	return t
}

//smallestRing returns the size of the smallest ring that contains the
//bond a-b, or 0 if the bond is not in a ring. It looks for the shortest path
//from a to b that doesn't use the bond itself.
func smallestRing(g graph.Graph, a, b int64) int {
	found := -1
	bfs := traverse.BreadthFirst{
		Traverse: func(e graph.Edge) bool {
			f, t := e.From().ID(), e.To().ID()
			return !((f == a && t == b) || (f == b && t == a))
		},
	}
	bfs.Walk(g, simple.Node(a), func(node graph.Node, depth int) bool {
		if node.ID() == b {
			found = depth
			return true
		}
		return false
	})
	if found < 0 {
		return 0
	}
	return found + 1
}

func (t *topology) shortestPath(i, j int) []int {
	if t.dist[i][j] < 0 {
		return nil
	}
	sp := path.DijkstraFrom(simple.Node(i), t.g)
	nodes, _ := sp.To(int64(j))
	ret := make([]int, 0, len(nodes))
	for _, v := range nodes {
		ret = append(ret, int(v.ID()))
	}
	return ret
}
