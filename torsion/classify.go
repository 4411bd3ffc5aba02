/*
 * classify.go, part of dgconf.
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

package torsion

import "github.com/rmera/dgconf"

//Descriptor returns the element and hybridization code of atom i, e.g. "C3", "Ca", "O2", "H".
func Descriptor(mol dgconf.MolGraph, i int) string {
	z := mol.AtomicNumber(i)
	if z == 1 {
		return "H"
	}
	sym := dgconf.Symbol(z)
	switch {
	case mol.AtomAromatic(i):
		return sym + "a"
	case mol.PiCount(i) >= 2:
		return sym + "1"
	case mol.PiCount(i) == 1:
		return sym + "2"
	}
	return sym + "3"
}

//twoFold is true if end is planar and its two substituents, other than
//the bond partner, have the same descriptor.
func twoFold(mol dgconf.MolGraph, end, partner int) bool {
	if !mol.AtomAromatic(end) && mol.PiCount(end) != 1 {
		return false
	}
	var subs []string
	for _, v := range mol.Neighbors(end) {
		if v != partner {
			subs = append(subs, Descriptor(mol, v))
		}
	}
	return len(subs) == 2 && subs[0] == subs[1]
}

//chirality returns the chiral marker for the torsion, and false if neither
//bond atom has a defined parity. The marker depends on the parity of the first
//of b and c that has one, on whether the terminal atom on that side is its
//reference substituent (see dgconf.RefNeighbor), and on whether the key was written backwards.
func chirality(mol dgconf.MolGraph, a, b, c, d int, reversed bool) (byte, bool) {
	center, term, partner := b, a, c
	if !mol.AtomParity(b).Defined() {
		if !mol.AtomParity(c).Defined() {
			return 0, false
		}
		center, term, partner = c, d, b
	}
	odd := mol.AtomParity(center) == dgconf.ParityOdd
	if term != dgconf.RefNeighbor(mol, center, partner) {
		odd = !odd
	}
	if reversed {
		odd = !odd
	}
	if odd {
		return Chiral, true
	}
	return Inverted, true
}

//Classify returns the identifiers for the torsion a-b-c-d around the bond b-c, in the
//order they should be looked up: the specific identifier, the non-chiral version of it
//(for chiral fragments), and the generic identifiers.
func Classify(mol dgconf.MolGraph, a, b, c, d int) []string {
	da, db, dc, dd := Descriptor(mol, a), Descriptor(mol, b), Descriptor(mol, c), Descriptor(mol, d)
	f, r := key(da, db, dc, dd), key(dd, dc, db, da)
	reversed := r < f
	specific := f
	if reversed {
		specific = r
	}
	ids := make([]string, 0, 5)
	gen := genericKey(db, dc)
	if m, ok := chirality(mol, a, b, c, d, reversed); ok {
		ids = append(ids, specific+string(m), specific+string(Mirror))
	} else if twoFold(mol, b, c) || twoFold(mol, c, b) {
		ids = append(ids, specific+string(MirrorTwoFold), gen+string(MirrorTwoFold))
	} else {
		ids = append(ids, specific+string(Mirror))
	}
	ids = append(ids, gen, gen+string(Mirror))
	return ids
}

//ID returns the specific identifier for the torsion a-b-c-d.
func ID(mol dgconf.MolGraph, a, b, c, d int) string {
	return Classify(mol, a, b, c, d)[0]
}
