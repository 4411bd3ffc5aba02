/*
 * tplot.go, part of dgconf.
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

//Package tplot draws torsion histograms from the knowledge base.
package tplot

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/rmera/dgconf/torsion"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

//Size of the produced images.
var (
	Width  = 16 * vg.Centimeter
	Height = 10 * vg.Centimeter
)

const binWidth = 360.0 / torsion.HistogramBins

func basicPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Torsion (deg)"
	p.Y.Label.Text = "Frequency"
	p.X.Min = 0
	p.X.Max = 360
	p.X.Tick.Marker = plot.ConstantTicks(ticks())
	return p
}

func ticks() []plot.Tick {
	t := make([]plot.Tick, 0, 13)
	for a := 0; a <= 360; a += 30 {
		label := ""
		if a%60 == 0 {
			label = fmt.Sprint(a)
		}
		t = append(t, plot.Tick{Value: float64(a), Label: label})
	}
	return t
}

//Histogram plots the torsion histogram hist, which must have torsion.HistogramBins bins,
//and marks the preferred angles, if any are given. The format of the image is
//taken from the extension of path (png, svg, pdf, eps...).
func Histogram(hist, angles []float64, title, path string) error {
	if len(hist) != torsion.HistogramBins {
		return fmt.Errorf("tplot: histogram with %d bins, %d expected", len(hist), torsion.HistogramBins)
	}
	p := basicPlot(title)
	h := &plotter.Histogram{
		Bins:      make([]plotter.HistogramBin, len(hist)),
		Width:     binWidth,
		FillColor: color.RGBA{R: 70, G: 110, B: 180, A: 255},
		LineStyle: plotter.DefaultLineStyle,
	}
	for i, v := range hist {
		h.Bins[i] = plotter.HistogramBin{Min: float64(i) * binWidth, Max: float64(i+1) * binWidth, Weight: v}
	}
	p.Add(h)
	if len(angles) > 0 {
		top := floats.Max(hist)
		pts := make(plotter.XYs, len(angles))
		for i, a := range angles {
			pts[i].X = a
			pts[i].Y = top * 1.05
		}
		s, err := plotter.NewScatter(pts)
		if err != nil {
			return err
		}
		s.GlyphStyle.Shape = draw.TriangleGlyph{}
		s.GlyphStyle.Color = color.RGBA{R: 200, A: 255}
		s.GlyphStyle.Radius = vg.Points(4)
		p.Add(s)
		p.Legend.Add("preferred", s)
	}
	if !strings.Contains(path, ".") {
		path += ".png"
	}
	return p.Save(Width, Height, path)
}

//FromKB plots the histogram and the preferred angles of the fragment id from kb.
func FromKB(kb *torsion.KB, id, path string) error {
	h, err := kb.Histogram(id)
	if err != nil {
		return err
	}
	if h == nil {
		return fmt.Errorf("tplot: no histogram for %s", id)
	}
	a, err := kb.Angles(id)
	if err != nil {
		return err
	}
	return Histogram(h, a, id, path)
}
