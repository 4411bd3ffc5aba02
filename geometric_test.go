/*
 * geometric_test.go, part of dgconf.
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
)

func confFrom(points [][3]float64) *Conformer {
	c := NewConformer(len(points))
	for i, p := range points {
		c.X[i], c.Y[i], c.Z[i] = p[0], p[1], p[2]
	}
	return c
}

func seq(n int) []int {
	r := make([]int, n)
	for i := range r {
		r[i] = i
	}
	return r
}

func TestPlaneIdempotent(Te *testing.T) {
	//points on the plane x+y+z=3
	pts := [][3]float64{{1, 1, 1}, {3, 0, 0}, {0, 3, 0}, {0, 0, 3}, {2, 2, -1}, {-1, 2, 2}}
	c := confFrom(pts)
	ref := c.Copy()
	applyPlane(c, seq(len(pts)), 1.0)
	for i := range pts {
		assert.InDelta(Te, ref.X[i], c.X[i], 1e-9)
		assert.InDelta(Te, ref.Y[i], c.Y[i], 1e-9)
		assert.InDelta(Te, ref.Z[i], c.Z[i], 1e-9)
	}
}

func TestPlaneFlattens(Te *testing.T) {
	c := confFrom([][3]float64{{0, 0, 0.3}, {1.4, 0, -0.2}, {2.1, 1.2, 0.25}, {1.4, 2.4, -0.3}, {0, 2.4, 0.1}, {-0.7, 1.2, -0.15}})
	_, rms0, err := BestPlane(c.Matrix(), nil)
	require.NoError(Te, err)
	applyPlane(c, seq(6), 1.0)
	_, rms, err := BestPlane(c.Matrix(), nil)
	require.NoError(Te, err)
	assert.Greater(Te, rms0, 0.05)
	assert.Less(Te, rms, 1e-9)

	//cycle factors over 1 are clamped, so they don't overshoot.
	c = confFrom([][3]float64{{0, 0, 0.3}, {2, 0, -0.3}, {2, 1, 0.3}, {0, 1, -0.3}})
	applyPlane(c, seq(4), 2.0)
	for i := 0; i < 4; i++ {
		assert.InDelta(Te, 0, c.Z[i], 1e-9)
	}
}

func TestLineIdempotent(Te *testing.T) {
	pts := [][3]float64{{0, 0, 0}, {1, 2, 3}, {2, 4, 6}, {-1.5, -3, -4.5}}
	c := confFrom(pts)
	applyLine(c, seq(4), 1.0)
	for i, p := range pts {
		assert.InDelta(Te, p[0], c.X[i], 1e-9)
		assert.InDelta(Te, p[1], c.Y[i], 1e-9)
		assert.InDelta(Te, p[2], c.Z[i], 1e-9)
	}
	c = confFrom([][3]float64{{0, 0.2, 0}, {1, -0.1, 0}, {2, 0.3, 0.1}, {3, 0, -0.2}})
	applyLine(c, seq(4), 1.0)
	_, u, ok := fitLine(c, seq(4))
	require.True(Te, ok)
	for i := 1; i < 4; i++ {
		d := sub(c.pos(i), c.pos(0))
		assert.InDelta(Te, 0, norm(cross(d, u)), 1e-9)
	}
}

func TestDegenerateFitsAreNoOps(Te *testing.T) {
	c := confFrom([][3]float64{{1, 1, 1}, {1, 1, 1}, {1, 1, 1}, {1, 1, 1}})
	applyPlane(c, seq(4), 1)
	applyLine(c, seq(4), 1)
	for i := 0; i < 4; i++ {
		assert.False(Te, math.IsNaN(c.X[i]) || math.IsNaN(c.Y[i]) || math.IsNaN(c.Z[i]))
		assert.Equal(Te, 1.0, c.X[i])
	}
}

func TestStereoFlip(Te *testing.T) {
	m := chfclbr(Te, ParityOdd)
	t, err := BuildDistanceTable(m, nil)
	require.NoError(Te, err)
	O := DefaultOptions()
	O.Stereo(true)
	geoms := BuildGeometricConstraints(m, O)
	require.Len(Te, geoms, 1)
	g := geoms[0]
	require.Equal(Te, []int{1, 2, 3, 0}, g.Atoms)
	//C0 under the F-Cl-Br plane, which is the wrong side.
	c := confFrom([][3]float64{{0, 0, -0.5}, {1, 0, 0}, {0, 1, 0}, {-1, -1, 0}, {0, 0, -1.5}})
	h, _, _, ok := stereoHeight(c, t, g.Atoms)
	require.True(Te, ok)
	require.Less(Te, h, 0.0)
	applyStereo(c, t, g.Atoms, 1.0)
	h, _, target, ok := stereoHeight(c, t, g.Atoms)
	require.True(Te, ok)
	assert.InDelta(Te, target, h, 1e-9)
	assert.Greater(Te, h, 0.0)
	//right side: nothing happens
	ref := c.Copy()
	applyStereo(c, t, g.Atoms, 1.0)
	assert.Equal(Te, ref.X, c.X)
	assert.Equal(Te, ref.Z, c.Z)

	O.Stereo(true)
	even := BuildGeometricConstraints(chfclbr(Te, ParityEven), O)
	assert.Equal(Te, []int{2, 1, 3, 0}, even[0].Atoms)
}

func TestBuildGeometricConstraints(Te *testing.T) {
	g := BuildGeometricConstraints(benzene(Te), nil)
	require.Len(Te, g, 1)
	assert.Equal(Te, Plane, g[0].Kind)
	assert.Equal(Te, seq(12), g[0].Atoms)

	g = BuildGeometricConstraints(formamide(Te), nil)
	require.Len(Te, g, 1)
	assert.Equal(Te, seq(6), g[0].Atoms)

	g = BuildGeometricConstraints(allene(Te), nil)
	require.Len(Te, g, 2)
	assert.Equal(Te, []int{0, 1, 3, 4}, g[0].Atoms)
	assert.Equal(Te, []int{1, 2, 5, 6}, g[1].Atoms)

	g = BuildGeometricConstraints(phenol(Te), nil)
	require.Len(Te, g, 2)
	assert.Equal(Te, WeakPlane, g[1].Kind)
	assert.Equal(Te, []int{0, 1, 5, 6, 12}, g[1].Atoms)
	O := DefaultOptions()
	O.WeakPlanes(false)
	assert.Len(Te, BuildGeometricConstraints(phenol(Te), O), 1)

	assert.Empty(Te, BuildGeometricConstraints(diyne(Te), nil))
	O = DefaultOptions()
	O.Lines(true)
	g = BuildGeometricConstraints(diyne(Te), O)
	require.Len(Te, g, 1)
	assert.Equal(Te, Line, g[0].Kind)
	assert.Equal(Te, seq(6), g[0].Atoms)

	//stereo is off by default
	assert.Empty(Te, BuildGeometricConstraints(chfclbr(Te, ParityOdd), nil))
}

func TestBestPlaneHexagon(Te *testing.T) {
	pts := make([][3]float64, 6)
	for i := range pts {
		a := float64(i) * math.Pi / 3
		pts[i] = [3]float64{1.39 * math.Cos(a), 1.39 * math.Sin(a), 0}
	}
	n, rms, err := BestPlane(confFrom(pts).Matrix(), nil)
	require.NoError(Te, err)
	assert.InDelta(Te, 0, rms, 1e-12)
	assert.InDelta(Te, 1, math.Abs(n.At(0, 2)), 1e-9)
	_, _, err = BestPlane(confFrom(pts).Matrix(), []int{0, 1})
	assert.Error(Te, err)
}

func TestDihedral(Te *testing.T) {
	c := confFrom([][3]float64{{1, 1, 0}, {0, 0, 0}, {0, 0, 1}, {1, 1, 1}, {-1, -1, 1}, {-1, 1, 1}})
	assert.InDelta(Te, 0, c.Dihedral(0, 1, 2, 3), 1e-9)
	assert.InDelta(Te, 180, c.Dihedral(0, 1, 2, 4), 1e-9)
	d := c.Dihedral(0, 1, 2, 5)
	assert.True(Te, math.Abs(d-90) < 1e-9 || math.Abs(d-270) < 1e-9)
	assert.InDelta(Te, d, c.Dihedral(5, 2, 1, 0), 1e-9)
	assert.InDelta(Te, 1, c.Distance(0, 3), 1e-12)
	assert.InDelta(Te, math.Sqrt(3), c.Distance(1, 3), 1e-12)
}
