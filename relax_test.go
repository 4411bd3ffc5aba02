/*
 * relax_test.go, part of dgconf.
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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func testEngine(Te *testing.T, m *Molecule, O *Options) *engine {
	Te.Helper()
	if O == nil {
		O = DefaultOptions()
	}
	t, err := BuildDistanceTable(m, nil)
	require.NoError(Te, err)
	return newEngine(t, BuildGeometricConstraints(m, O), O)
}

func TestApplyPair(Te *testing.T) {
	t := NewDistanceTable(2)
	t.setFixed(0, 1, 1.5)
	e := newEngine(t, nil, DefaultOptions())
	c := confFrom([][3]float64{{0, 0, 0}, {2, 0, 0}})
	e.applyPair(c, 1, 0, 1.0)
	assert.InDelta(Te, 1.5, c.Distance(0, 1), 1e-12)
	assert.InDelta(Te, 0.25, c.X[0], 1e-12)

	//too close: both atoms move apart, and never overshoot
	c = confFrom([][3]float64{{0, 0, 0}, {1, 0, 0}})
	e.applyPair(c, 1, 0, 2.0)
	d := c.Distance(0, 1)
	assert.Greater(Te, d, 1.0)
	assert.LessOrEqual(Te, d, 1.5)

	//inside the window: nothing happens
	t.setBounded(0, 1, 1, 3)
	c = confFrom([][3]float64{{0, 0, 0}, {2, 0, 0}})
	e.applyPair(c, 1, 0, 1.0)
	assert.Equal(Te, 2.0, c.X[1])
}

func TestStrainNonNegative(Te *testing.T) {
	for _, m := range allMolecules(Te) {
		O := DefaultOptions()
		O.Stereo(true)
		O.Lines(true)
		e := testEngine(Te, m, O)
		T := newThreadState(e.n, len(e.geoms), 7)
		T.begin(NewConformer(e.n))
		e.jumbleAtoms(T)
		for _, s := range e.strainOf(T) {
			assert.GreaterOrEqual(Te, s, 0.0, m.Name)
		}
	}
}

func TestJumble(Te *testing.T) {
	e := testEngine(Te, benzene(Te), nil)
	T := newThreadState(e.n, len(e.geoms), 3)
	c := NewConformer(e.n)
	T.begin(c)
	assert.Equal(Te, e.n, e.jumbleAtoms(T))
	assert.False(Te, T.fresh)
	e.strainOf(T)
	assert.True(Te, T.fresh)
	//after a jumble, only the strained atoms move.
	strained := 0
	for _, s := range T.strain {
		if s > e.jumble {
			strained++
		}
	}
	assert.Equal(Te, strained, e.jumbleAtoms(T))
}

func TestStrainDropsAfterRun(Te *testing.T) {
	e := testEngine(Te, butane(Te), nil)
	T := newThreadState(e.n, len(e.geoms), 11)
	c := NewConformer(e.n)
	T.begin(c)
	e.jumbleAtoms(T)
	before := 0.0
	for _, s := range e.strainOf(T) {
		before += s
	}
	e.run(T, c)
	after := 0.0
	for _, s := range e.strainOf(T) {
		after += s
	}
	assert.Less(Te, after, before)
	assert.Less(Te, after, 0.5)
}

//A methoxy carbon with its substituents held tetrahedral can't be flattened, so its
//weak plane has to be given up, while the strong planes stay.
func TestResolveWeakGivesUp(Te *testing.T) {
	r := 1 / math.Sqrt(3)
	dirs := [][3]float64{{r, r, r}, {r, -r, -r}, {-r, r, -r}, {-r, -r, r}}
	points := [][3]float64{{0, 0, 0}}
	for i, d := range dirs {
		l := 1.09
		if i == 0 {
			l = 1.43
		}
		points = append(points, [3]float64{l * d[0], l * d[1], l * d[2]})
	}
	points = append(points, [3]float64{6, 0, 0}) //not in any constraint
	c := confFrom(points)
	n := len(points)
	t := NewDistanceTable(n)
	for i := 1; i < n; i++ {
		for j := 0; j < i; j++ {
			t.setFixed(i, j, c.Distance(i, j))
		}
	}
	geoms := []*Constraint{
		{Kind: Plane, Atoms: []int{1, 2, 3, 4}},
		{Kind: WeakPlane, Atoms: []int{0, 1, 2, 3, 4}},
	}
	e := newEngine(t, geoms, DefaultOptions())
	T := newThreadState(n, len(geoms), 5)
	T.begin(c)
	strain := e.strainOf(T)
	assert.Greater(Te, floats.Max(strain[:5]), e.weaklim)
	assert.Zero(Te, strain[5])
	before := confFrom(points)
	e.resolveWeak(T)
	assert.True(Te, T.disabled[1])
	assert.False(Te, T.disabled[0])
	assert.False(Te, T.fresh)
	for i := 0; i < 5; i++ {
		assert.LessOrEqual(Te, math.Abs(c.X[i]-before.X[i]), weakDisplace)
		assert.LessOrEqual(Te, math.Abs(c.Y[i]-before.Y[i]), weakDisplace)
		assert.LessOrEqual(Te, math.Abs(c.Z[i]-before.Z[i]), weakDisplace)
	}
	assert.Equal(Te, before.X[5], c.X[5])
	assert.Equal(Te, before.Y[5], c.Y[5])
	assert.Equal(Te, before.Z[5], c.Z[5])

	//a given-up plane is not shaken again, and strong planes are never given up.
	x := append([]float64(nil), c.X...)
	e.resolveWeak(T)
	assert.Equal(Te, x, c.X)
	assert.False(Te, T.disabled[0])
}
