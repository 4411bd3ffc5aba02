/*
 * xyz.go, part of dgconf.
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
	"io"
	"strings"
)

//WriteXYZ writes the conformer c of the molecule mol as one XYZ frame to w.
//Newlines in comment are replaced by spaces.
func WriteXYZ(w io.Writer, mol MolGraph, c *Conformer, comment string) error {
	if c.Len() != mol.Len() {
		return newError(fmt.Sprintf("Inconsistent coordinates(%d)/atoms(%d)", c.Len(), mol.Len()), "WriteXYZ", nil)
	}
	if _, err := fmt.Fprintf(w, "%-4d\n%s\n", mol.Len(), strings.ReplaceAll(comment, "\n", " ")); err != nil {
		return newError("can't write XYZ header", "WriteXYZ", err)
	}
	for i := 0; i < mol.Len(); i++ {
		_, err := fmt.Fprintf(w, "%-2s  %12.6f%12.6f%12.6f\n", Symbol(mol.AtomicNumber(i)), c.X[i], c.Y[i], c.Z[i])
		if err != nil {
			return newError("can't write XYZ atom", "WriteXYZ", err)
		}
	}
	return nil
}
