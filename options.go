/*
 * options.go, part of dgconf.
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

import "runtime"

//Options contains the settings for constraint compilation and conformer generation.
type Options struct {
	cpus    int
	stereo  bool
	lines   bool
	weak    bool
	seed    uint64
	nice    int
	cycle   float64 //the standard cycle factor
	jumble  float64 //strain over which an atom is re-jumbled
	breakit int     //iterations per atom, breakout phase
	fullit  int     //iterations per atom, full optimization
	fineit  int     //iterations per atom, fine minimization
	rounds  int     //max jumble+relax rounds in the breakout phase
	weaklim float64 //strain over which a weak plane is disabled
	minfreq float64
}

//DefaultOptions returns the standard settings: All logical CPUs, plane and weak plane
//constraints on, line and stereo constraints off, no fixed seed.
func DefaultOptions() *Options {
	r := new(Options)
	r.cpus = runtime.NumCPU()
	r.weak = true
	r.nice = 10
	r.cycle = 1.0
	r.jumble = 0.25
	r.breakit = 1000
	r.fullit = 2000
	r.fineit = 500
	r.rounds = 5
	r.weaklim = 0.1
	return r
}

//Returns the number of goroutines to be used for batch generation,
//and sets it to a new value, if given.
func (O *Options) Cpus(n ...int) int {
	if len(n) > 0 && n[0] > 0 {
		O.cpus = n[0]
	}
	return O.cpus
}

//Returns whether stereo constraints are built, and sets it, if given.
func (O *Options) Stereo(b ...bool) bool {
	if len(b) > 0 {
		O.stereo = b[0]
	}
	return O.stereo
}

//Returns whether line constraints are built for sp chains, and sets it, if given.
func (O *Options) Lines(b ...bool) bool {
	if len(b) > 0 {
		O.lines = b[0]
	}
	return O.lines
}

//Returns whether weak plane constraints are built, and sets it, if given.
func (O *Options) WeakPlanes(b ...bool) bool {
	if len(b) > 0 {
		O.weak = b[0]
	}
	return O.weak
}

//Returns the seed for batch generation, and sets it to a new value, if given.
//With a seed s different from 0, worker w uses the seed s+w. With 0,
//every worker is seeded from system entropy.
func (O *Options) Seed(s ...uint64) uint64 {
	if len(s) > 0 {
		O.seed = s[0]
	}
	return O.seed
}

//Returns the niceness given to the batch worker threads, and sets it, if given.
//Values <=0 leave the priority unchanged.
func (O *Options) Nice(n ...int) int {
	if len(n) > 0 && n[0] <= 19 {
		O.nice = n[0]
	}
	return O.nice
}

//Returns the standard cycle factor, and sets it to a new value, if given.
func (O *Options) CycleFactor(c ...float64) float64 {
	if len(c) > 0 && c[0] > 0 {
		O.cycle = c[0]
	}
	return O.cycle
}

//Returns the strain over which an atom is placed again at random
//between breakout rounds, and sets it to a new value, if given.
func (O *Options) JumbleStrain(s ...float64) float64 {
	if len(s) > 0 && s[0] > 0 {
		O.jumble = s[0]
	}
	return O.jumble
}

//Returns the iterations per atom for the breakout, full and fine
//phases, and sets them, if given. Values <=0 are ignored.
func (O *Options) Iterations(n ...int) (int, int, int) {
	set := []*int{&O.breakit, &O.fullit, &O.fineit}
	for i, v := range n {
		if i < len(set) && v > 0 {
			*set[i] = v
		}
	}
	return O.breakit, O.fullit, O.fineit
}

//Returns the maximum number of rounds in the breakout phase, and sets it, if given.
func (O *Options) BreakoutRounds(n ...int) int {
	if len(n) > 0 && n[0] >= 0 {
		O.rounds = n[0]
	}
	return O.rounds
}

//Returns the strain over which a weak plane constraint is given up, and sets it, if given.
func (O *Options) WeakStrain(s ...float64) float64 {
	if len(s) > 0 && s[0] > 0 {
		O.weaklim = s[0]
	}
	return O.weaklim
}

//Returns the minimum frequency a torsion angle needs to become a candidate
//distance, and sets it, if given. It is passed to knowledge bases that take it.
func (O *Options) MinTorsionFrequency(f ...float64) float64 {
	if len(f) > 0 && f[0] >= 0 {
		O.minfreq = f[0]
	}
	return O.minfreq
}
