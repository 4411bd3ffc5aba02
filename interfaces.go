/*
 * interfaces.go, part of dgconf.
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

import v3 "github.com/rmera/dgconf/v3"

//Parity is the discrete stereo descriptor of an atom or a bond.
//For atoms, take the neighbours heavy atoms first, each group in increasing
//index order, and call the first three n0, n1, n2. Odd means that the atom lies on
//the positive side of their plane: ((n1-n0)x(n2-n0))·(atom-n0) > 0. Even means the
//negative side. For bonds, Odd means cis and Even trans, taking on each
//side the heavy neighbour with the lowest index as reference.
type Parity int

const (
	ParityNone Parity = iota
	ParityOdd
	ParityEven
	ParityUnknown
)

//Defined is true for Odd and Even.
func (p Parity) Defined() bool {
	return p == ParityOdd || p == ParityEven
}

func (p Parity) String() string {
	switch p {
	case ParityOdd:
		return "odd"
	case ParityEven:
		return "even"
	case ParityUnknown:
		return "unknown"
	}
	return "none"
}

//MolGraph is the read-only view of a molecular graph needed to compile
//constraints for it. Atom and bond indexes start at 0.
//Implementations must be safe for concurrent reads.
type MolGraph interface {
	Len() int
	AtomicNumber(i int) int

	//PiCount is the pi-bond order of atom i: 1 for aromatic atoms,
	//otherwise the sum of (order-1) over its bonds.
	PiCount(i int) int
	AtomAromatic(i int) bool
	AtomParity(i int) Parity

	NBonds() int
	BondAtoms(b int) (int, int)
	BondOrder(b int) int
	BondAromatic(b int) bool
	BondParity(b int) Parity

	//BondRingSize returns the size of the smallest ring containing
	//bond b, or 0 if the bond is not in a ring.
	BondRingSize(b int) int

	Neighbors(i int) []int
	NeighborBonds(i int) []int

	//TopoDistance is the number of bonds in the shortest path
	//between i and j, or -1 if they are not connected.
	TopoDistance(i, j int) int

	//ShortestPath returns the atoms in one shortest path from i to j,
	//both included, or nil if there is none.
	ShortestPath(i, j int) []int
}

//Coorder is implemented by molecules that carry a current set of coordinates.
type Coorder interface {
	Coords() *v3.Matrix
}

//TorsionSource gives the statistically preferred dihedral angles, in degrees,
//for the torsion a-b-c-d around the bond b-c. A nil return means that nothing is
//known about that fragment.
type TorsionSource interface {
	TorsionAngles(mol MolGraph, a, b, c, d int) []float64
}

//Errors

//Error is the error type for the package. Decorate allows to add the name of the callers
//as the error is passed up, without wrapping it in something else.
type Error struct {
	msg      string
	deco     []string
	critical bool
	cause    error
}

func newError(msg, caller string, cause error) *Error {
	return &Error{msg: msg, deco: []string{caller}, critical: true, cause: cause}
}

//Error returns a string with an error message.
func (err *Error) Error() string {
	if err.cause != nil {
		return err.msg + ": " + err.cause.Error()
	}
	return err.msg
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice. An empty dec only returns the current slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical returns whether the error is critical or it can be ignored
func (err *Error) Critical() bool { return err.critical }

func (err *Error) Unwrap() error { return err.cause }

//errDecorate decorates err with the caller's name if it is an *Error,
//and returns it unchanged otherwise.
func errDecorate(err error, caller string) error {
	if e, ok := err.(*Error); ok {
		e.Decorate(caller)
	}
	return err
}
