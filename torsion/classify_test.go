/*
 * classify_test.go, part of dgconf.
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

package torsion

import (
	"testing"

	"github.com/rmera/dgconf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mol(t *testing.T, symbols []string, bonds [][3]int) *dgconf.Molecule {
	t.Helper()
	m := dgconf.NewMolecule("test")
	for _, s := range symbols {
		m.AddAtom(s)
	}
	for _, b := range bonds {
		_, err := m.AddBond(b[0], b[1], b[2])
		require.NoError(t, err)
	}
	return m
}

//C0-C1-C2-C3, H4-6 on C0, H7-8 on C1, H9-10 on C2, H11-13 on C3
func butane(t *testing.T) *dgconf.Molecule {
	sym := []string{"C", "C", "C", "C"}
	for i := 0; i < 10; i++ {
		sym = append(sym, "H")
	}
	return mol(t, sym, [][3]int{{0, 1, 1}, {1, 2, 1}, {2, 3, 1},
		{0, 4, 1}, {0, 5, 1}, {0, 6, 1}, {1, 7, 1}, {1, 8, 1},
		{2, 9, 1}, {2, 10, 1}, {3, 11, 1}, {3, 12, 1}, {3, 13, 1}})
}

//aromatic ring C0-C5, C6 on C0, C7 on C6
func ethylbenzene(t *testing.T) *dgconf.Molecule {
	m := mol(t, []string{"C", "C", "C", "C", "C", "C", "C", "C"},
		[][3]int{{0, 1, 2}, {1, 2, 1}, {2, 3, 2}, {3, 4, 1}, {4, 5, 2}, {5, 0, 1}, {0, 6, 1}, {6, 7, 1}})
	for _, b := range m.Bonds[:6] {
		b.Aromatic = true
	}
	return m
}

func TestDescriptor(Te *testing.T) {
	m := mol(Te, []string{"O", "C", "C", "N", "H"}, [][3]int{{0, 1, 2}, {1, 2, 1}, {2, 3, 3}, {1, 4, 1}})
	assert.Equal(Te, "O2", Descriptor(m, 0))
	assert.Equal(Te, "C2", Descriptor(m, 1))
	assert.Equal(Te, "C1", Descriptor(m, 2))
	assert.Equal(Te, "N1", Descriptor(m, 3))
	assert.Equal(Te, "H", Descriptor(m, 4))
	assert.Equal(Te, "Ca", Descriptor(ethylbenzene(Te), 0))
	assert.Equal(Te, "C3", Descriptor(ethylbenzene(Te), 6))
}

func TestClassify(Te *testing.T) {
	b := butane(Te)
	assert.Equal(Te, []string{"C3:C3~C3:C3-", "*:C3~C3:*", "*:C3~C3:*-"}, Classify(b, 0, 1, 2, 3))
	assert.Equal(Te, "C3:C3~C3:H-", ID(b, 7, 1, 2, 3))
	assert.Equal(Te, "C3:C3~C3:H-", ID(b, 0, 1, 2, 9))

	e := ethylbenzene(Te)
	assert.Equal(Te, []string{"C3:C3~Ca:Ca=", "*:C3~Ca:*=", "*:C3~Ca:*", "*:C3~Ca:*-"}, Classify(e, 1, 0, 6, 7))
}

func TestClassifyChiral(Te *testing.T) {
	b := butane(Te)
	b.Atoms[1].Parity = dgconf.ParityOdd
	assert.Equal(Te, []string{"C3:C3~C3:C3>", "C3:C3~C3:C3-", "*:C3~C3:*", "*:C3~C3:*-"}, Classify(b, 0, 1, 2, 3))
	//H7 is not the reference substituent, and the key is written backwards.
	assert.Equal(Te, "C3:C3~C3:H>", ID(b, 7, 1, 2, 3))
	//the same dihedral read backwards
	assert.Equal(Te, "C3:C3~C3:C3>", ID(b, 3, 2, 1, 0))
	b.Atoms[1].Parity = dgconf.ParityEven
	assert.Equal(Te, "C3:C3~C3:C3<", ID(b, 0, 1, 2, 3))
}

//H0 has the lowest index on C1, but the heavy F4 is still the reference.
func TestChiralityReference(Te *testing.T) {
	m := mol(Te, []string{"H", "C", "C", "C", "F", "Cl"}, [][3]int{{0, 1, 1}, {1, 2, 1}, {2, 3, 1}, {1, 4, 1}, {1, 5, 1}})
	m.Atoms[1].Parity = dgconf.ParityOdd
	require.Equal(Te, 4, dgconf.RefNeighbor(m, 1, 2))
	c, ok := chirality(m, 4, 1, 2, 3, false)
	assert.True(Te, ok)
	assert.Equal(Te, byte(Chiral), c)
	c, _ = chirality(m, 0, 1, 2, 3, false)
	assert.Equal(Te, byte(Inverted), c)
	c, _ = chirality(m, 0, 1, 2, 3, true)
	assert.Equal(Te, byte(Chiral), c)
	//without a parity on either bond atom there is no marker
	m.Atoms[1].Parity = dgconf.ParityNone
	_, ok = chirality(m, 4, 1, 2, 3, false)
	assert.False(Te, ok)
}

func TestIDHelpers(Te *testing.T) {
	assert.Equal(Te, byte('>'), Marker("C3:C3~C3:C3>"))
	assert.Equal(Te, byte(0), Marker("*:C3~C3:*"))
	assert.Equal(Te, "C3:C3~C3:C3", Base("C3:C3~C3:C3="))
	assert.Equal(Te, "C3:C3~C3:C3<", Invert("C3:C3~C3:C3>"))
	assert.Equal(Te, "C3:C3~C3:C3>", Invert("C3:C3~C3:C3<"))
	assert.Equal(Te, "C3:C3~C3:C3-", Invert("C3:C3~C3:C3-"))
	assert.Equal(Te, "*:C3~Ca:*=", Generic("Ca:Ca~C3:H="))
	assert.Equal(Te, "broken", Generic("broken"))
}
