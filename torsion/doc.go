/*
 * doc.go, part of dgconf.
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

/*Package torsion is a knowledge base of statistically preferred torsion angles, for use
as a dgconf.TorsionSource.

Fragments are identified by a string built from the four atoms of the torsion,
"a:b~c:d", where each atom is written as its element symbol and a hybridization code
(3, 2 and 1 for sp3, sp2 and sp, a for aromatic; hydrogens are just "H"). Of the two
possible directions, the one that sorts first is used. Generic identifiers replace
the terminal atoms with "*". A trailing marker gives the symmetry of the entry:

	>  chiral fragment; the angles are for one handedness.
	<  the mirror image of the ">" entry. Never stored, derived on request.
	-  the fragment is its own mirror image: only angles in [0,180] are stored.
	+  two-fold symmetric: only angles in [0,180) are stored.
	=  both: only angles in [0,90] are stored.
	(none) the full circle is stored.

The tables are line-aligned text files: torsionID.txt lists the identifiers, and
torsionAngle.txt, torsionRange.txt, torsionFrequency.txt and torsionHistogram.txt
give, on the same line, the preferred angles, a low-strain range for each angle
("lo:hi"), the relative frequency of each angle and a 72-bin (5 degrees) histogram.
Each table is read, once, the first time it is needed.
*/
package torsion
