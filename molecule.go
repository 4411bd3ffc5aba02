/*
 * molecule.go, part of dgconf.
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
	"fmt"
	"sync"

	v3 "github.com/rmera/dgconf/v3"
)

/**Note: Many functions here panic instead of returning errors. This is because they are "fundamental"
 * functions. If something goes wrong here, the program is most likely wrong and should
 * crash. Most panics are related to out-of-bounds indexes**/

//Atom is one node of a Molecule.
type Atom struct {
	Index  int
	Symbol string
	Z      int
	Parity Parity
	Bonds  []*Bond
}

//Bond joins two atoms of a Molecule. Order is 1, 2 or 3. Aromatic bonds
//keep the order of one Kekule structure, but it is not used.
type Bond struct {
	Index    int
	At1      *Atom
	At2      *Atom
	Order    int
	Aromatic bool
	Parity   Parity
}

//Cross returns the atom at the other side of the bond.
func (B *Bond) Cross(origin *Atom) *Atom {
	if origin.Index == B.At1.Index {
		return B.At2
	}
	if origin.Index == B.At2.Index {
		return B.At1
	}
	panic("Trying to cross a bond: The origin atom given is not present in the bond!") //I think this got to be a programming error, so a panic is warranted.
}

//Molecule is a simple molecular graph that implements MolGraph and Coorder.
//It is not safe to edit a Molecule while it is being read concurrently.
type Molecule struct {
	Name   string
	Atoms  []*Atom
	Bonds  []*Bond
	coords *v3.Matrix

	topomu sync.Mutex
	topo   *topology
}

//NewMolecule returns an empty molecule
func NewMolecule(name string) *Molecule {
	return &Molecule{Name: name}
}

//AddAtom appends an atom of the element symbol and returns its index.
func (M *Molecule) AddAtom(symbol string) int {
	at := &Atom{Index: len(M.Atoms), Symbol: symbol, Z: AtomicNumber(symbol)}
	M.Atoms = append(M.Atoms, at)
	M.resetTopology()
	return at.Index
}

//AddBond joins the atoms a and b with a bond of the given order, and returns the new bond.
func (M *Molecule) AddBond(a, b, order int) (*Bond, error) {
	if a < 0 || b < 0 || a >= len(M.Atoms) || b >= len(M.Atoms) {
		return nil, newError(fmt.Sprintf("bond %d-%d references a missing atom", a, b), "AddBond", nil)
	}
	if a == b {
		return nil, newError(fmt.Sprintf("atom %d can't be bonded to itself", a), "AddBond", nil)
	}
	if order < 1 || order > 3 {
		return nil, newError(fmt.Sprintf("invalid bond order %d for bond %d-%d", order, a, b), "AddBond", nil)
	}
	if M.BondBetween(a, b) >= 0 {
		return nil, newError(fmt.Sprintf("atoms %d and %d are already bonded", a, b), "AddBond", nil)
	}
	bond := &Bond{Index: len(M.Bonds), At1: M.Atoms[a], At2: M.Atoms[b], Order: order}
	M.Atoms[a].Bonds = append(M.Atoms[a].Bonds, bond)
	M.Atoms[b].Bonds = append(M.Atoms[b].Bonds, bond)
	M.Bonds = append(M.Bonds, bond)
	M.resetTopology()
	return bond, nil
}

//BondBetween returns the index of the bond joining a and b, or -1.
func (M *Molecule) BondBetween(a, b int) int {
	for _, v := range M.Atoms[a].Bonds {
		if v.Cross(M.Atoms[a]).Index == b {
			return v.Index
		}
	}
	return -1
}

//Validate checks that the molecule can be used to build conformers.
func (M *Molecule) Validate() error {
	if len(M.Atoms) == 0 {
		return newError("molecule has no atoms", "Validate", nil)
	}
	for i, at := range M.Atoms {
		if at.Index != i {
			return newError(fmt.Sprintf("atom %d has index %d", i, at.Index), "Validate", nil)
		}
	}
	for i, b := range M.Bonds {
		if b.Index != i || b.At1 == nil || b.At2 == nil {
			return newError(fmt.Sprintf("bond %d is malformed", i), "Validate", nil)
		}
	}
	if M.coords != nil && M.coords.NVecs() != len(M.Atoms) {
		return newError(fmt.Sprintf("Inconsistent coordinates(%d)/atoms(%d)", M.coords.NVecs(), len(M.Atoms)), "Validate", nil)
	}
	return nil
}

//SetCoords sets the current coordinates of the molecule.
func (M *Molecule) SetCoords(c *v3.Matrix) error {
	if c != nil && c.NVecs() != len(M.Atoms) {
		return newError(fmt.Sprintf("Inconsistent coordinates(%d)/atoms(%d)", c.NVecs(), len(M.Atoms)), "SetCoords", nil)
	}
	M.coords = c
	return nil
}

//Coords returns the current coordinates of the molecule, which can be nil.
func (M *Molecule) Coords() *v3.Matrix {
	return M.coords
}

//MolGraph implementation

func (M *Molecule) Len() int                   { return len(M.Atoms) }
func (M *Molecule) AtomicNumber(i int) int     { return M.Atoms[i].Z }
func (M *Molecule) AtomParity(i int) Parity    { return M.Atoms[i].Parity }
func (M *Molecule) NBonds() int                { return len(M.Bonds) }
func (M *Molecule) BondOrder(b int) int        { return M.Bonds[b].Order }
func (M *Molecule) BondAromatic(b int) bool    { return M.Bonds[b].Aromatic }
func (M *Molecule) BondParity(b int) Parity    { return M.Bonds[b].Parity }
func (M *Molecule) BondAtoms(b int) (int, int) { return M.Bonds[b].At1.Index, M.Bonds[b].At2.Index }

func (M *Molecule) AtomAromatic(i int) bool {
	for _, b := range M.Atoms[i].Bonds {
		if b.Aromatic {
			return true
		}
	}
	return false
}

func (M *Molecule) PiCount(i int) int {
	if M.AtomAromatic(i) {
		return 1
	}
	pi := 0
	for _, b := range M.Atoms[i].Bonds {
		pi += b.Order - 1
	}
	return pi
}

func (M *Molecule) Neighbors(i int) []int {
	at := M.Atoms[i]
	ret := make([]int, 0, len(at.Bonds))
	for _, b := range at.Bonds {
		ret = append(ret, b.Cross(at).Index)
	}
	return ret
}

func (M *Molecule) NeighborBonds(i int) []int {
	ret := make([]int, 0, len(M.Atoms[i].Bonds))
	for _, b := range M.Atoms[i].Bonds {
		ret = append(ret, b.Index)
	}
	return ret
}

func (M *Molecule) BondRingSize(b int) int {
	return M.topology().rings[b]
}

func (M *Molecule) TopoDistance(i, j int) int {
	return M.topology().dist[i][j]
}

func (M *Molecule) ShortestPath(i, j int) []int {
	return M.topology().shortestPath(i, j)
}
