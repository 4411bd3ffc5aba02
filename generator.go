/*
 * generator.go, part of dgconf.
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
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/rmera/dgconf/histo"
	v3 "github.com/rmera/dgconf/v3"
	"go.uber.org/zap"
)

//Rotor is a rotatable bond, B-C, and the reference dihedral A-B-C-D
//recorded for it in each conformer.
type Rotor struct {
	Bond       int
	A, B, C, D int
}

//Generator produces conformers for one molecule. The constraints are built once,
//in NewGenerator. Generate and GenerateOne can be called concurrently; Boost waits
//for them to finish.
type Generator struct {
	mol    MolGraph
	opts   *Options
	table  *DistanceTable
	geoms  []*Constraint
	eng    *engine
	rotors []Rotor

	mu sync.RWMutex //write-locked only by Boost

	resmu      sync.Mutex
	conformers []*Conformer
}

//minFrequencyFilter is implemented by knowledge bases that can give a view
//without the rare torsions.
type minFrequencyFilter interface {
	WithMinFrequency(f float64) TorsionSource
}

func checkGraph(mol MolGraph) error {
	if mol == nil || mol.Len() == 0 {
		return newError("molecule has no atoms", "checkGraph", nil)
	}
	for b := 0; b < mol.NBonds(); b++ {
		a1, a2 := mol.BondAtoms(b)
		if a1 < 0 || a2 < 0 || a1 >= mol.Len() || a2 >= mol.Len() {
			return newError(fmt.Sprintf("bond %d references a missing atom", b), "checkGraph", nil)
		}
		if a1 == a2 {
			return newError(fmt.Sprintf("bond %d joins atom %d to itself", b, a1), "checkGraph", nil)
		}
	}
	if m, ok := mol.(*Molecule); ok {
		return m.Validate()
	}
	return nil
}

//NewGenerator compiles the constraints for mol and returns a generator for it.
//kb can be nil, in which case no torsion preferences are used. A nil O means DefaultOptions.
func NewGenerator(mol MolGraph, kb TorsionSource, O *Options) (*Generator, error) {
	if O == nil {
		O = DefaultOptions()
	}
	if err := checkGraph(mol); err != nil {
		return nil, errDecorate(err, "NewGenerator")
	}
	if f, ok := kb.(minFrequencyFilter); ok && O.MinTorsionFrequency() > 0 {
		kb = f.WithMinFrequency(O.MinTorsionFrequency())
	}
	table, err := BuildDistanceTable(mol, kb)
	if err != nil {
		return nil, errDecorate(err, "NewGenerator")
	}
	geoms := BuildGeometricConstraints(mol, O)
	G := &Generator{mol: mol, opts: O, table: table, geoms: geoms, eng: newEngine(table, geoms, O)}
	for b := 0; b < mol.NBonds(); b++ {
		if !rotatable(mol, b) {
			continue
		}
		x, y := mol.BondAtoms(b)
		G.rotors = append(G.rotors, Rotor{Bond: b, A: RefNeighbor(mol, x, y), B: x, C: y, D: RefNeighbor(mol, y, x)})
	}
	return G, nil
}

//Table returns the distance constraints of the generator. It must not be modified.
func (G *Generator) Table() *DistanceTable {
	return G.table
}

//Constraints returns the geometric constraints of the generator. They must not be modified.
func (G *Generator) Constraints() []*Constraint {
	return G.geoms
}

//generate runs the whole relaxation for a new conformer and records its torsions.
func (G *Generator) generate(T *threadState) *Conformer {
	c := NewConformer(G.eng.n)
	G.eng.run(T, c)
	if len(G.rotors) > 0 {
		c.Torsions = make(map[int]float64, len(G.rotors))
		for _, r := range G.rotors {
			c.Torsions[r.Bond] = c.Dihedral(r.A, r.B, r.C, r.D)
		}
	}
	return c
}

//GenerateOne produces one conformer in the calling goroutine. With a seed other
//than 0 the result is reproducible. The conformer replaces the stored ones.
func (G *Generator) GenerateOne(seed uint64) *Conformer {
	G.mu.RLock()
	T := newThreadState(G.eng.n, len(G.geoms), seed)
	c := G.generate(T)
	G.mu.RUnlock()
	G.setConformers([]*Conformer{c})
	return c
}

//Generate produces n conformers using up to Options.Cpus goroutines, and blocks until all
//are done. A conformer whose generation failed is left as nil in the returned slice.
//The conformers replace the stored ones.
func (G *Generator) Generate(n int) []*Conformer {
	if n <= 0 {
		return nil
	}
	G.mu.RLock()
	results := make([]*Conformer, n)
	workers := G.opts.Cpus()
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	var next atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			if err := lowerPriority(G.opts.Nice()); err != nil {
				logger.Warn("could not lower worker priority", zap.Int("worker", w), zap.Error(err))
			}
			var seed uint64
			if s := G.opts.Seed(); s != 0 {
				seed = s + uint64(w)
			}
			T := newThreadState(G.eng.n, len(G.geoms), seed)
			for {
				k := int(next.Add(1) - 1)
				if k >= n {
					return
				}
				results[k] = G.safeGenerate(T, k)
			}
		}(w)
	}
	wg.Wait()
	G.mu.RUnlock()
	G.setConformers(results)
	return results
}

//safeGenerate is generate, but it logs and returns nil on a panic.
func (G *Generator) safeGenerate(T *threadState, slot int) (c *Conformer) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("conformer generation failed", zap.Int("slot", slot), zap.Any("panic", r))
			c = nil
		}
	}()
	return G.generate(T)
}

func (G *Generator) setConformers(c []*Conformer) {
	G.resmu.Lock()
	G.conformers = c
	G.resmu.Unlock()
}

//Conformers returns the conformers produced by the last call to Generate or GenerateOne.
func (G *Generator) Conformers() []*Conformer {
	G.resmu.Lock()
	defer G.resmu.Unlock()
	return append([]*Conformer(nil), G.conformers...)
}

//Rotors returns the rotatable bonds of the molecule, in bond order.
func (G *Generator) Rotors() []Rotor {
	return append([]Rotor(nil), G.rotors...)
}

//TorsionHistogram returns the 5 degree histogram of the reference dihedral of the
//rotatable bond in the stored conformers. The histogram is empty if bond is not rotatable.
func (G *Generator) TorsionHistogram(bond int) *histo.Data {
	G.resmu.Lock()
	defer G.resmu.Unlock()
	angles := make([]float64, 0, len(G.conformers))
	for _, c := range G.conformers {
		if c == nil {
			continue
		}
		if t, ok := c.Torsions[bond]; ok {
			angles = append(angles, t)
		}
	}
	return histo.Torsion(angles)
}

func (G *Generator) conformer(conf int) *Conformer {
	G.resmu.Lock()
	defer G.resmu.Unlock()
	if conf < 0 || conf >= len(G.conformers) || G.conformers[conf] == nil {
		panic(fmt.Sprintf("Generator: no conformer %d", conf))
	}
	return G.conformers[conf]
}

//X returns the x coordinate of atom in the conformer conf. It panics if they don't exist.
func (G *Generator) X(conf, atom int) float64 { return G.conformer(conf).X[atom] }

//Y returns the y coordinate of atom in the conformer conf. It panics if they don't exist.
func (G *Generator) Y(conf, atom int) float64 { return G.conformer(conf).Y[atom] }

//Z returns the z coordinate of atom in the conformer conf. It panics if they don't exist.
func (G *Generator) Z(conf, atom int) float64 { return G.conformer(conf).Z[atom] }

//Matrix returns the coordinates of the conformer conf, one row per atom of the molecule.
func (G *Generator) Matrix(conf int) *v3.Matrix {
	return G.conformer(conf).Matrix()
}

//Boost raises the lower bound of each Bounded pair to the distance the pair has in ref,
//if that is larger, and never over the upper bound. It waits for running generations.
func (G *Generator) Boost(ref *v3.Matrix) error {
	if ref == nil || ref.NVecs() != G.eng.n {
		return newError("reference coordinates don't match the molecule", "Boost", nil)
	}
	G.mu.Lock()
	defer G.mu.Unlock()
	raised := 0
	for i := 1; i < G.eng.n; i++ {
		for j := 0; j < i; j++ {
			e := G.table.Get(i, j)
			if e.Kind != Bounded {
				continue
			}
			dx := ref.At(i, 0) - ref.At(j, 0)
			dy := ref.At(i, 1) - ref.At(j, 1)
			dz := ref.At(i, 2) - ref.At(j, 2)
			d := math.Sqrt(dx*dx + dy*dy + dz*dz)
			if d > e.Min {
				e.Min = math.Min(d, e.Max)
				raised++
			}
		}
	}
	logger.Debug("bounds boosted", zap.Int("raised", raised))
	return nil
}

//BoostFromMolecule calls Boost with the current coordinates of the molecule,
//which must implement Coorder.
func (G *Generator) BoostFromMolecule() error {
	c, ok := G.mol.(Coorder)
	if !ok || c.Coords() == nil {
		return newError("molecule has no coordinates", "BoostFromMolecule", nil)
	}
	return errDecorate(G.Boost(c.Coords()), "BoostFromMolecule")
}
