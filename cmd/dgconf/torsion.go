/*
 * torsion.go, part of dgconf.
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
	"strings"

	"github.com/rmera/dgconf/torsion/tplot"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newTorsionCmd(a *app) *cobra.Command {
	var plot string
	var list bool
	cmd := &cobra.Command{
		Use:   "torsion [ID]",
		Short: "Show the knowledge base entry for a fragment",
		Long: `Prints the preferred angles, their ranges and their frequencies for a fragment
identifier such as "C3:C3~C3:C3-" and, optionally, plots its histogram. With --list,
prints the stored identifiers.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list {
				return a.listTorsions(cmd)
			}
			if len(args) == 0 {
				return fmt.Errorf("torsion: a fragment identifier is needed")
			}
			return a.showTorsion(cmd, args[0], plot)
		},
	}
	cmd.Flags().StringVar(&plot, "plot", "", "Plot the histogram to this image file")
	cmd.Flags().BoolVar(&list, "list", false, "List the stored identifiers")
	return cmd
}

func (a *app) listTorsions(cmd *cobra.Command) error {
	ids, err := a.kb().IDs()
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.Join(ids, "\n"))
	return nil
}

func (a *app) showTorsion(cmd *cobra.Command, id, plot string) error {
	kb := a.kb()
	angles, err := kb.Angles(id)
	if err != nil {
		return err
	}
	if len(angles) == 0 {
		return fmt.Errorf("torsion: unknown fragment %s", id)
	}
	ranges, err := kb.Ranges(id)
	if err != nil {
		return err
	}
	freqs, err := kb.Frequencies(id)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n%8s %15s %10s\n", id, "angle", "range", "frequency")
	for i, v := range angles {
		r := "-"
		if i < len(ranges) {
			r = fmt.Sprintf("%.1f:%.1f", ranges[i][0], ranges[i][1])
		}
		f := "-"
		if i < len(freqs) {
			f = fmt.Sprintf("%.3f", freqs[i])
		}
		fmt.Fprintf(out, "%8.1f %15s %10s\n", v, r, f)
	}
	peak, mean, err := kb.HistogramPeak(id)
	if err != nil {
		if plot != "" {
			return err
		}
		//the histograms are optional.
		a.log.Debug("no histogram", zap.String("id", id), zap.Error(err))
		return nil
	}
	fmt.Fprintf(out, "histogram peak %.1f, circular mean %.1f\n", peak, mean)
	if plot != "" {
		return tplot.FromKB(kb, id, plot)
	}
	return nil
}
