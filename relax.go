/*
 * relax.go, part of dgconf.
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
)

const (
	cubeFactor    = 3.0 //side of the jumbling cube per sqrt(atoms), A
	geomFactor    = 0.05
	weakDisplace  = 0.5 //max displacement per coordinate for the atoms of a given-up weak plane
	fineReduction = 20.0
)

//engine relaxes conformers against a set of constraints.
//It is read-only once built, and can be used by many goroutines at once.
type engine struct {
	n       int
	table   *DistanceTable
	geoms   []*Constraint
	cycle   float64
	jumble  float64
	weaklim float64
	breakit int
	fullit  int
	fineit  int
	rounds  int
}

func newEngine(table *DistanceTable, geoms []*Constraint, O *Options) *engine {
	e := &engine{n: table.Len(), table: table, geoms: geoms}
	e.cycle = O.CycleFactor()
	e.jumble = O.JumbleStrain()
	e.weaklim = O.WeakStrain()
	e.breakit, e.fullit, e.fineit = O.Iterations()
	e.rounds = O.BreakoutRounds()
	return e
}

//run performs the whole schedule on c, which must have e.n atoms.
func (e *engine) run(T *threadState, c *Conformer) {
	T.begin(c)
	e.jumbleAtoms(T)
	e.relax(T, e.n*e.breakit, 2*e.cycle, e.cycle)
	for r := 0; r < e.rounds; r++ {
		if e.jumbleAtoms(T) == 0 {
			break
		}
		e.relax(T, e.n*e.breakit, e.cycle, e.cycle)
	}
	e.resolveWeak(T)
	e.relax(T, e.n*e.fullit, e.cycle, e.cycle)
	e.relax(T, e.n*e.fineit, e.cycle/fineReduction, e.cycle/fineReduction)
}

//jumbleAtoms places atoms at random positions in a cube centered at the origin. The first
//time, all atoms are placed; afterwards, only those with strain over the jumble threshold.
//It returns the number of atoms placed.
func (e *engine) jumbleAtoms(T *threadState) int {
	c := T.conf
	side := cubeFactor * math.Sqrt(float64(e.n))
	var strain []float64
	if T.started {
		strain = e.strainOf(T)
	}
	moved := 0
	for i := 0; i < e.n; i++ {
		if strain != nil && strain[i] <= e.jumble {
			continue
		}
		c.X[i] = (T.rng.Float64() - 0.5) * side
		c.Y[i] = (T.rng.Float64() - 0.5) * side
		c.Z[i] = (T.rng.Float64() - 0.5) * side
		moved++
	}
	T.started = true
	if moved > 0 {
		T.invalidate()
	}
	return moved
}

//relax performs iters iterations, with a cycle factor decaying
//exponentially from cf0 to cf1.
func (e *engine) relax(T *threadState, iters int, cf0, cf1 float64) {
	if iters <= 0 {
		return
	}
	c := T.conf
	ng := len(e.geoms)
	p := math.Min(1, geomFactor*float64(ng)/float64(e.n))
	decay := math.Log(cf1/cf0) / float64(iters)
	for k := 0; k < iters; k++ {
		cf := cf0
		if decay != 0 {
			cf = cf0 * math.Exp(decay*float64(k))
		}
		if ng > 0 && T.rng.Float64() < p {
			idx := T.rng.IntN(ng)
			if T.disabled[idx] {
				continue
			}
			e.applyGeometric(c, e.geoms[idx], cf)
			continue
		}
		if e.n < 2 {
			continue
		}
		i := T.rng.IntN(e.n)
		j := T.rng.IntN(e.n - 1)
		if j >= i {
			j++
		}
		if i < j {
			i, j = j, i
		}
		e.applyPair(c, i, j, cf)
	}
	T.invalidate()
}

func (e *engine) applyGeometric(c *Conformer, g *Constraint, cf float64) {
	switch g.Kind {
	case Plane, WeakPlane:
		applyPlane(c, g.Atoms, cf)
	case Line:
		applyLine(c, g.Atoms, cf)
	case Stereo:
		applyStereo(c, e.table, g.Atoms, cf)
	default:
		panic("applyGeometric: unknown constraint kind " + g.Kind.String())
	}
}

//applyPair moves atoms i and j along the line joining them, in opposite directions,
//to reduce the violation of their distance constraint.
func (e *engine) applyPair(c *Conformer, i, j int, cf float64) {
	d := c.Distance(i, j)
	lo, hi := e.table.Get(i, j).bounds(d)
	var v float64
	switch {
	case d < lo:
		v = (d - lo) / (2 * lo)
		cf = math.Min(cf, 1)
	case d > hi:
		v = (d - hi) / (2 * d)
	default:
		return
	}
	delta := scale(cf*v, sub(c.pos(j), c.pos(i)))
	c.move(i, delta)
	c.move(j, scale(-1, delta))
}

//resolveWeak gives up, for the rest of the run, the weak planes where some atom
//is strained over the limit, and shakes their atoms.
func (e *engine) resolveWeak(T *threadState) {
	strain := e.strainOf(T)
	shaken := false
	for k, g := range e.geoms {
		if g.Kind != WeakPlane || T.disabled[k] {
			continue
		}
		for _, i := range g.Atoms {
			if strain[i] <= e.weaklim {
				continue
			}
			T.disabled[k] = true
			for _, a := range g.Atoms {
				T.conf.move(a, [3]float64{
					(2*T.rng.Float64() - 1) * weakDisplace,
					(2*T.rng.Float64() - 1) * weakDisplace,
					(2*T.rng.Float64() - 1) * weakDisplace,
				})
			}
			shaken = true
			logger.Debug("weak plane disabled", zap.Int("constraint", k), zap.Int("atom", i), zap.Float64("strain", strain[i]))
			break
		}
	}
	if shaken {
		T.invalidate()
	}
}
