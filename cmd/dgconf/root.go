/*
 * root.go, part of dgconf.
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
	"github.com/rmera/dgconf"
	"github.com/rmera/dgconf/torsion"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

//app is the state shared by the commands.
type app struct {
	v      *viper.Viper
	config string
	cfg    *Config
	log    *zap.Logger
}

//bind ties the viper key to the flag name of fs.
func (a *app) bind(fs *pflag.FlagSet, key, name string) {
	if err := a.v.BindPFlag(key, fs.Lookup(name)); err != nil {
		panic(err)
	}
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(a.v, a.config)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, log
	dgconf.SetLogger(log.Named("dgconf"))
	torsion.SetLogger(log.Named("torsion"))
	return nil
}

func (a *app) teardown(cmd *cobra.Command, args []string) {
	if a.log != nil {
		_ = a.log.Sync()
	}
}

//kb returns the torsion knowledge base the configuration asks for.
func (a *app) kb() *torsion.KB {
	if a.cfg.KB == "" {
		return torsion.Default()
	}
	return torsion.NewFromDir(a.cfg.KB)
}

func newRootCmd() *cobra.Command {
	a := &app{v: newViper()}
	root := &cobra.Command{
		Use:               "dgconf",
		Short:             "Distance geometry conformer generator",
		Long:              `dgconf builds 3D conformers from the connectivity of a molecule, using a torsion knowledge base for the rotatable bonds.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: a.teardown,
	}
	pf := root.PersistentFlags()
	pf.StringVar(&a.config, "config", "", "YAML configuration file")
	pf.String("log-level", "info", "Log level (debug, info, warn, error)")
	pf.String("log-encoding", "console", "Log encoding (console or json)")
	pf.String("kb", "", "Directory with the torsion tables (default: built in)")
	a.bind(pf, "log.level", "log-level")
	a.bind(pf, "log.encoding", "log-encoding")
	a.bind(pf, "kb", "kb")
	root.AddCommand(newGenerateCmd(a), newTorsionCmd(a))
	return root
}
