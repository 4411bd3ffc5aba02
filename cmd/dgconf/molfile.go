/*
 * molfile.go, part of dgconf.
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

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rmera/dgconf"
	"gopkg.in/yaml.v3"
)

//molFile is the YAML description of a molecule. Atoms are referred to
//by their 0-based position in the list.
//
//	name: ethanol
//	atoms:
//	  - element: C
//	  - element: O
//	bonds:
//	  - {a: 0, b: 1}
type molFile struct {
	Name  string     `yaml:"name"`
	Atoms []atomSpec `yaml:"atoms"`
	Bonds []bondSpec `yaml:"bonds"`
}

type atomSpec struct {
	Element string `yaml:"element"`
	Parity  string `yaml:"parity"`
}

type bondSpec struct {
	A        int    `yaml:"a"`
	B        int    `yaml:"b"`
	Order    int    `yaml:"order"` //1 if not given
	Aromatic bool   `yaml:"aromatic"`
	Parity   string `yaml:"parity"`
}

func parseParity(s string) (dgconf.Parity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return dgconf.ParityNone, nil
	case "odd":
		return dgconf.ParityOdd, nil
	case "even":
		return dgconf.ParityEven, nil
	case "unknown":
		return dgconf.ParityUnknown, nil
	}
	return dgconf.ParityNone, fmt.Errorf("unknown parity %q", s)
}

//decodeMolecule reads a molecule description from r.
func decodeMolecule(r io.Reader) (*dgconf.Molecule, error) {
	var f molFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("molecule: %w", err)
	}
	mol := dgconf.NewMolecule(f.Name)
	for i, at := range f.Atoms {
		if dgconf.AtomicNumber(at.Element) == 0 {
			return nil, fmt.Errorf("molecule: atom %d: unknown element %q", i, at.Element)
		}
		p, err := parseParity(at.Parity)
		if err != nil {
			return nil, fmt.Errorf("molecule: atom %d: %w", i, err)
		}
		mol.AddAtom(at.Element)
		mol.Atoms[i].Parity = p
	}
	for i, b := range f.Bonds {
		if b.Order == 0 {
			b.Order = 1
		}
		p, err := parseParity(b.Parity)
		if err != nil {
			return nil, fmt.Errorf("molecule: bond %d: %w", i, err)
		}
		bond, err := mol.AddBond(b.A, b.B, b.Order)
		if err != nil {
			return nil, fmt.Errorf("molecule: bond %d: %w", i, err)
		}
		bond.Aromatic = b.Aromatic
		bond.Parity = p
	}
	if err := mol.Validate(); err != nil {
		return nil, fmt.Errorf("molecule: %w", err)
	}
	return mol, nil
}

//readMolecule reads the molecule description in the file path. The
//name of the file is used if the description has none.
func readMolecule(path string) (*dgconf.Molecule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	mol, err := decodeMolecule(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if mol.Name == "" {
		mol.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return mol, nil
}
