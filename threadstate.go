/*
 * threadstate.go, part of dgconf.
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

import "math/rand/v2"

//threadState is the scratch space of one worker. It is never shared.
type threadState struct {
	rng      *rand.Rand
	disabled []bool //one per geometric constraint
	strain   []float64
	fresh    bool //strain is up to date
	conf     *Conformer
	started  bool //the first jumble was done
}

//newRand returns a PCG generator for seed, or for a seed from system entropy if seed is 0.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func newThreadState(natoms, ngeoms int, seed uint64) *threadState {
	return &threadState{
		rng:      newRand(seed),
		disabled: make([]bool, ngeoms),
		strain:   make([]float64, natoms),
	}
}

//begin prepares the state for a new run on c.
func (T *threadState) begin(c *Conformer) {
	T.conf = c
	T.started = false
	T.fresh = false
	for i := range T.disabled {
		T.disabled[i] = false
	}
}

func (T *threadState) invalidate() {
	T.fresh = false
}
