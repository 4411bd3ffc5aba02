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

/*Package dgconf generates 3D conformers for molecular graphs by distance geometry.
No force field is used: the molecule's topology is compiled once into a table of
pairwise distance constraints, plus a list of geometric constraints, and random
coordinates are then relaxed stochastically until they approximately satisfy them.


	**Constraints**

    Distance constraints, one per pair of atoms:
        Fixed: bonded atoms, atoms two bonds apart, and rigid motifs
		three bonds apart (sp atoms, double bonds with defined parity).
        Candidates: a few discrete distances, for atoms across a rotatable bond
		(from the preferred torsions given by a TorsionSource) or across a
		double bond with no defined parity (cis and trans).
        Bounded: a window from the van der Waals radii to the longest
		distance the topology allows, for everything else.

    Geometric constraints:
        Plane: aromatic systems, double bonds, amides and esters.
        WeakPlane: N and O substituents of aromatic rings. They can be given
		up during a run if they cause too much strain.
        Line: chains of sp atoms (optional).
        Stereo: tetrahedral centers with defined parity (optional).


	**Relaxation**

    Each conformer goes through a fixed schedule: random placement, a breakout
	phase with a decaying step and re-placement of strained atoms, resolution of
	weak planes, full optimization and a fine minimization. There is no convergence
	check; use Strain, StrainStats or TotalStrain to judge the result.

    Generator.Generate produces many conformers in parallel, Generator.GenerateOne
	produces one, reproducibly if a seed is given.


The package torsion provides a TorsionSource backed by statistical tables of torsion angles.

*/
package dgconf
