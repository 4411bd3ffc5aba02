/*
 * molecules_test.go, part of dgconf.
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

	"github.com/stretchr/testify/require"
)

//buildMol returns a molecule with the given elements and bonds {a, b, order}.
func buildMol(t testing.TB, name string, symbols []string, bonds [][3]int) *Molecule {
	t.Helper()
	m := NewMolecule(name)
	for _, s := range symbols {
		m.AddAtom(s)
	}
	for _, b := range bonds {
		_, err := m.AddBond(b[0], b[1], b[2])
		require.NoError(t, err, "%s: bond %v", name, b)
	}
	return m
}

//C0-C1, H2-4 on C0, H5-7 on C1
func ethane(t testing.TB) *Molecule {
	return buildMol(t, "ethane", []string{"C", "C", "H", "H", "H", "H", "H", "H"},
		[][3]int{{0, 1, 1}, {0, 2, 1}, {0, 3, 1}, {0, 4, 1}, {1, 5, 1}, {1, 6, 1}, {1, 7, 1}})
}

//C0-C1-C2-C3 and 10 H
func butane(t testing.TB) *Molecule {
	sym := []string{"C", "C", "C", "C"}
	for i := 0; i < 10; i++ {
		sym = append(sym, "H")
	}
	bonds := [][3]int{{0, 1, 1}, {1, 2, 1}, {2, 3, 1},
		{0, 4, 1}, {0, 5, 1}, {0, 6, 1},
		{1, 7, 1}, {1, 8, 1},
		{2, 9, 1}, {2, 10, 1},
		{3, 11, 1}, {3, 12, 1}, {3, 13, 1}}
	return buildMol(t, "butane", sym, bonds)
}

//ring C0-C5, H6-H11 on C0-C5
func benzene(t testing.TB) *Molecule {
	sym := []string{"C", "C", "C", "C", "C", "C", "H", "H", "H", "H", "H", "H"}
	bonds := [][3]int{{0, 1, 2}, {1, 2, 1}, {2, 3, 2}, {3, 4, 1}, {4, 5, 2}, {5, 0, 1}}
	for i := 0; i < 6; i++ {
		bonds = append(bonds, [3]int{i, i + 6, 1})
	}
	m := buildMol(t, "benzene", sym, bonds)
	for _, b := range m.Bonds[:6] {
		b.Aromatic = true
	}
	return m
}

//benzene with O6 instead of the first H, and H12 on the O
func phenol(t testing.TB) *Molecule {
	m := benzene(t)
	m.Atoms[6].Symbol = "O"
	m.Atoms[6].Z = 8
	h := m.AddAtom("H")
	_, err := m.AddBond(6, h, 1)
	require.NoError(t, err)
	return m
}

//H2C0=C1=C2H2
func allene(t testing.TB) *Molecule {
	return buildMol(t, "allene", []string{"C", "C", "C", "H", "H", "H", "H"},
		[][3]int{{0, 1, 2}, {1, 2, 2}, {0, 3, 1}, {0, 4, 1}, {2, 5, 1}, {2, 6, 1}})
}

//H4-C0#C1-C2#C3-H5
func diyne(t testing.TB) *Molecule {
	return buildMol(t, "diyne", []string{"C", "C", "C", "C", "H", "H"},
		[][3]int{{0, 1, 3}, {1, 2, 1}, {2, 3, 3}, {0, 4, 1}, {3, 5, 1}})
}

//formamide: C0(=O1)-N2, H3 on C0, H4 and H5 on N2
func formamide(t testing.TB) *Molecule {
	return buildMol(t, "formamide", []string{"C", "O", "N", "H", "H", "H"},
		[][3]int{{0, 1, 2}, {0, 2, 1}, {0, 3, 1}, {2, 4, 1}, {2, 5, 1}})
}

//2-butene: C0-C1=C2-C3, with the given bond parity for C1=C2
func butene(t testing.TB, p Parity) *Molecule {
	sym := []string{"C", "C", "C", "C", "H", "H", "H", "H", "H", "H", "H", "H"}
	bonds := [][3]int{{0, 1, 1}, {1, 2, 2}, {2, 3, 1},
		{0, 4, 1}, {0, 5, 1}, {0, 6, 1}, {1, 7, 1}, {2, 8, 1},
		{3, 9, 1}, {3, 10, 1}, {3, 11, 1}}
	m := buildMol(t, "butene", sym, bonds)
	m.Bonds[1].Parity = p
	return m
}

//C0 with F1, Cl2, Br3, H4, with the given parity on C0
func chfclbr(t testing.TB, p Parity) *Molecule {
	m := buildMol(t, "CHFClBr", []string{"C", "F", "Cl", "Br", "H"},
		[][3]int{{0, 1, 1}, {0, 2, 1}, {0, 3, 1}, {0, 4, 1}})
	m.Atoms[0].Parity = p
	return m
}

//methane (C0, H1-4) and water (O5, H6, H7), not bonded to each other
func disconnected(t testing.TB) *Molecule {
	return buildMol(t, "methane+water", []string{"C", "H", "H", "H", "H", "O", "H", "H"},
		[][3]int{{0, 1, 1}, {0, 2, 1}, {0, 3, 1}, {0, 4, 1}, {5, 6, 1}, {5, 7, 1}})
}

//fixedTorsions is a TorsionSource that returns the same angles for every fragment.
type fixedTorsions []float64

func (f fixedTorsions) TorsionAngles(mol MolGraph, a, b, c, d int) []float64 { return f }

func allMolecules(t testing.TB) []*Molecule {
	return []*Molecule{ethane(t), butane(t), benzene(t), phenol(t), allene(t), diyne(t),
		formamide(t), butene(t, ParityOdd), butene(t, ParityNone), chfclbr(t, ParityOdd), disconnected(t)}
}
