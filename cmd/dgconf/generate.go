/*
 * generate.go, part of dgconf.
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
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/rmera/dgconf"
	"github.com/rmera/dgconf/torsion"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type generateFlags struct {
	molecule string
	n        int
	output   string
	torsions bool
}

func newGenerateCmd(a *app) *cobra.Command {
	f := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate conformers for a molecule",
		Long: `Generates conformers for the molecule in a YAML file and writes them as a multi-frame XYZ file.
With -n 1 and a seed, the conformer is built in the calling thread and is reproducible.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runGenerate(cmd, f)
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&f.molecule, "molecule", "m", "", "YAML molecule description")
	fs.IntVarP(&f.n, "number", "n", 1, "Number of conformers")
	fs.StringVarP(&f.output, "output", "o", "", "Output XYZ file (default: stdout)")
	fs.BoolVar(&f.torsions, "torsions", false, "Compare the sampled torsions with the knowledge base")
	fs.Uint64("seed", 0, "Random seed, 0 for a random one")
	fs.Bool("stereo", false, "Use stereo constraints")
	fs.Bool("lines", false, "Use line constraints for linear fragments")
	fs.Int("cpus", 0, "Number of worker threads (default: all the CPUs)")
	_ = cmd.MarkFlagRequired("molecule")
	a.bind(fs, "generate.seed", "seed")
	a.bind(fs, "generate.stereo", "stereo")
	a.bind(fs, "generate.lines", "lines")
	a.bind(fs, "generate.cpus", "cpus")
	return cmd
}

func (g GenerateConfig) options() *dgconf.Options {
	O := dgconf.DefaultOptions()
	if g.Cpus > 0 {
		O.Cpus(g.Cpus)
	}
	O.Stereo(g.Stereo)
	O.Lines(g.Lines)
	O.WeakPlanes(g.WeakPlanes)
	O.Seed(g.Seed)
	O.Nice(g.Nice)
	O.MinTorsionFrequency(g.MinFrequency)
	return O
}

func (a *app) runGenerate(cmd *cobra.Command, f *generateFlags) error {
	if f.n < 1 {
		return fmt.Errorf("generate: can't generate %d conformers", f.n)
	}
	mol, err := readMolecule(f.molecule)
	if err != nil {
		return err
	}
	gc := a.cfg.Generate
	kb := a.kb()
	gen, err := dgconf.NewGenerator(mol, kb, gc.options())
	if err != nil {
		return err
	}
	a.log.Info("constraints compiled", zap.String("molecule", mol.Name), zap.Int("atoms", mol.Len()),
		zap.Int("distances", gen.Table().Len()), zap.Int("geometric", len(gen.Constraints())))
	var confs []*dgconf.Conformer
	if f.n == 1 && gc.Seed != 0 {
		confs = []*dgconf.Conformer{gen.GenerateOne(gc.Seed)}
	} else {
		confs = gen.Generate(f.n)
	}

	var out io.Writer = cmd.OutOrStdout()
	if f.output != "" {
		file, err := os.Create(f.output)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}
	w := bufio.NewWriter(out)
	written := 0
	for i, c := range confs {
		if c == nil {
			a.log.Warn("conformer failed", zap.Int("conformer", i))
			continue
		}
		mean, worst := gen.StrainStats(c)
		a.log.Info("conformer", zap.Int("conformer", i), zap.Float64("mean_strain", mean), zap.Float64("max_strain", worst))
		comment := fmt.Sprintf("%s conformer %d strain %.5f", mol.Name, i, mean)
		if err := dgconf.WriteXYZ(w, mol, c, comment); err != nil {
			return err
		}
		written++
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if written == 0 {
		return fmt.Errorf("generate: no conformer could be built for %s", mol.Name)
	}
	if f.torsions {
		a.reportTorsions(gen, mol, kb)
	}
	return nil
}

//reportTorsions logs, for each rotatable bond, how the sampled torsions compare
//with the histogram in the knowledge base.
func (a *app) reportTorsions(gen *dgconf.Generator, mol *dgconf.Molecule, kb *torsion.KB) {
	for _, r := range gen.Rotors() {
		sampled := gen.TorsionHistogram(r.Bond)
		fields := []zap.Field{zap.Int("bond", r.Bond), zap.Ints("dihedral", []int{r.A, r.B, r.C, r.D}), zap.Float64("samples", sampled.Sum())}
		var ref []float64
		var id string
		for _, v := range torsion.Classify(mol, r.A, r.B, r.C, r.D) {
			h, err := kb.Histogram(v)
			if err != nil {
				a.log.Debug("no histograms", zap.Error(err))
				break
			}
			if h != nil {
				ref, id = h, v
				break
			}
		}
		if ref == nil {
			a.log.Info("torsion without reference", fields...)
			continue
		}
		fields = append(fields, zap.String("id", id), zap.Float64("overlap", sampled.Overlap(ref)))
		a.log.Info("torsion", fields...)
	}
}
