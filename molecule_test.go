/*
 * molecule_test.go, part of dgconf.
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
	"testing"

	v3 "github.com/rmera/dgconf/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoleculeTopology(Te *testing.T) {
	b := butane(Te)
	assert.Equal(Te, 3, b.TopoDistance(0, 3))
	assert.Equal(Te, 0, b.TopoDistance(2, 2))
	assert.Equal(Te, []int{0, 1, 2, 3}, b.ShortestPath(0, 3))
	assert.Equal(Te, 0, b.BondRingSize(1))
	assert.ElementsMatch(Te, []int{0, 2, 7, 8}, b.Neighbors(1))

	bz := benzene(Te)
	for i := 0; i < 6; i++ {
		assert.Equal(Te, 6, bz.BondRingSize(i), "ring bond %d", i)
		assert.Equal(Te, 0, bz.BondRingSize(i+6), "C-H bond %d", i+6)
		assert.Equal(Te, 1, bz.PiCount(i))
		assert.True(Te, bz.AtomAromatic(i))
	}
	assert.Equal(Te, 3, bz.TopoDistance(0, 3))
	assert.Equal(Te, 0, bz.PiCount(6))

	a := allene(Te)
	assert.Equal(Te, 2, a.PiCount(1))
	assert.Equal(Te, 1, a.PiCount(0))

	d := disconnected(Te)
	assert.Equal(Te, -1, d.TopoDistance(0, 5))
	assert.Nil(Te, d.ShortestPath(1, 6))
	assert.Equal(Te, 2, d.TopoDistance(6, 7))
}

func TestTopologyReset(Te *testing.T) {
	m := buildMol(Te, "chain", []string{"C", "C", "C"}, [][3]int{{0, 1, 1}, {1, 2, 1}})
	assert.Equal(Te, 0, m.BondRingSize(0))
	_, err := m.AddBond(0, 2, 1)
	require.NoError(Te, err)
	assert.Equal(Te, 3, m.BondRingSize(0))
	assert.Equal(Te, 1, m.TopoDistance(0, 2))
}

func TestAddBondErrors(Te *testing.T) {
	m := buildMol(Te, "pair", []string{"C", "O"}, nil)
	_, err := m.AddBond(0, 0, 1)
	assert.Error(Te, err)
	_, err = m.AddBond(0, 2, 1)
	assert.Error(Te, err)
	_, err = m.AddBond(0, 1, 4)
	assert.Error(Te, err)
	b, err := m.AddBond(0, 1, 2)
	require.NoError(Te, err)
	assert.Equal(Te, m.Atoms[1], b.Cross(m.Atoms[0]))
	assert.Equal(Te, m.Atoms[0], b.Cross(m.Atoms[1]))
	_, err = m.AddBond(1, 0, 1)
	assert.Error(Te, err)
	assert.Panics(Te, func() { b.Cross(&Atom{Index: 5}) })
}

func TestValidateAndCoords(Te *testing.T) {
	assert.Error(Te, NewMolecule("empty").Validate())
	m := ethane(Te)
	require.NoError(Te, m.Validate())
	assert.Error(Te, m.SetCoords(v3.Zeros(3)))
	require.NoError(Te, m.SetCoords(v3.Zeros(8)))
	assert.Equal(Te, 8, m.Coords().NVecs())
	_, err := NewGenerator(NewMolecule("empty"), nil, nil)
	assert.Error(Te, err)
}

func TestElements(Te *testing.T) {
	assert.Equal(Te, 6, AtomicNumber("C"))
	assert.Equal(Te, 17, AtomicNumber("cl"))
	assert.Equal(Te, 0, AtomicNumber("Xx"))
	assert.Equal(Te, "Br", Symbol(35))
	assert.Equal(Te, "X", Symbol(118))
	assert.InDelta(Te, 0.76, CovalentRadius(6), 1e-9)
	assert.InDelta(Te, defaultVdwrad, VdWRadius(0), 1e-9)
}
