/*
 * strain.go, part of dgconf.
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
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//strainOf returns the per-atom strain of the current conformer of T,
//computing it only if a coordinate changed since the last call.
func (e *engine) strainOf(T *threadState) []float64 {
	if !T.fresh {
		e.computeStrain(T.conf, T.disabled, T.strain)
		T.fresh = true
	}
	return T.strain
}

//computeStrain puts in out the squared violations of all the constraints that involve each
//atom in c. Geometric constraints for which disabled is true are not considered.
func (e *engine) computeStrain(c *Conformer, disabled []bool, out []float64) {
	for i := range out {
		out[i] = 0
	}
	for i := 1; i < e.n; i++ {
		for j := 0; j < i; j++ {
			d := c.Distance(i, j)
			lo, hi := e.table.Get(i, j).bounds(d)
			var v float64
			switch {
			case d < lo:
				v = lo - d
			case d > hi:
				v = d - hi
			default:
				continue
			}
			out[i] += v * v
			out[j] += v * v
		}
	}
	for k, g := range e.geoms {
		if disabled != nil && disabled[k] {
			continue
		}
		switch g.Kind {
		case Plane, WeakPlane:
			cen, n, ok := fitPlane(c, g.Atoms)
			if !ok {
				continue
			}
			for _, i := range g.Atoms {
				off := dot(sub(c.pos(i), cen), n)
				out[i] += off * off
			}
		case Line:
			cen, u, ok := fitLine(c, g.Atoms)
			if !ok {
				continue
			}
			for _, i := range g.Atoms {
				p := sub(c.pos(i), cen)
				perp := sub(p, scale(dot(p, u), u))
				out[i] += dot(perp, perp)
			}
		case Stereo:
			h, _, target, ok := stereoHeight(c, e.table, g.Atoms)
			if ok && h <= 0 {
				pivot := g.Atoms[len(g.Atoms)-1]
				out[pivot] += (target - h) * (target - h)
			}
		}
	}
}

//Strain returns the per-atom strain of c: The sum of the squared violations of
//the distance and geometric constraints each atom takes part in. Weak plane
//constraints are not included.
func (G *Generator) Strain(c *Conformer) []float64 {
	G.mu.RLock()
	defer G.mu.RUnlock()
	disabled := make([]bool, len(G.geoms))
	for k, g := range G.geoms {
		disabled[k] = g.Kind == WeakPlane
	}
	out := make([]float64, G.eng.n)
	G.eng.computeStrain(c, disabled, out)
	return out
}

//StrainStats returns the mean and maximum per-atom strain of c.
func (G *Generator) StrainStats(c *Conformer) (mean, max float64) {
	s := G.Strain(c)
	return stat.Mean(s, nil), floats.Max(s)
}

//TotalStrain returns the sum of the per-atom strain of the first conformer
//generated in the last call to Generate or GenerateOne.
func (G *Generator) TotalStrain() (float64, error) {
	G.resmu.Lock()
	var c *Conformer
	if len(G.conformers) > 0 {
		c = G.conformers[0]
	}
	G.resmu.Unlock()
	if c == nil {
		return 0, newError("no conformer available", "TotalStrain", nil)
	}
	return floats.Sum(G.Strain(c)), nil
}
