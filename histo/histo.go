/*
 * histo.go, part of dgconf.
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

//Package histo implements simple histograms with arbitrary dividers, and
//the circular 5 degree histograms used for torsions.
package histo

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//TorsionBins is the number of bins of a torsion histogram.
const TorsionBins = 72

//Data is a histogram.
type Data struct {
	dividers   []float64
	histo      []float64
	normalized bool
	total      float64 //the sum before normalizing
}

//NewData returns a new histogram from the dividers and rawdata given.
//rawdata can be nil. In that case, an empty histogram is created.
//Values outside the dividers are omitted.
func NewData(dividers []float64, rawdata []float64) *Data {
	if len(dividers) < 2 || !sort.Float64sAreSorted(dividers) {
		panic("histo.NewData: at least 2 increasing dividers are needed")
	}
	d := new(Data)
	d.dividers = append([]float64(nil), dividers...)
	d.histo = make([]float64, len(dividers)-1)
	if len(rawdata) > 0 {
		d.rehisto(rawdata)
	}
	return d
}

//TorsionDividers returns the dividers of the 72-bin, [0,360) torsion histograms.
func TorsionDividers() []float64 {
	d := make([]float64, TorsionBins+1)
	floats.Span(d, 0, 360)
	return d
}

//Torsion returns a torsion histogram for the angles, in degrees.
//The angles are first wrapped into [0,360).
func Torsion(angles []float64) *Data {
	w := make([]float64, len(angles))
	for i, v := range angles {
		v = math.Mod(v, 360)
		if v < 0 {
			v += 360
		}
		w[i] = v
	}
	return NewData(TorsionDividers(), w)
}

//stat.Histogram panics for values out of the dividers, instead of omitting them,
//and needs the data sorted.
func (D *Data) rehisto(rawdata []float64) {
	lo, hi := D.dividers[0], D.dividers[len(D.dividers)-1]
	in := make([]float64, 0, len(rawdata))
	for _, v := range rawdata {
		if v >= lo && v < hi {
			in = append(in, v)
		}
	}
	sort.Float64s(in)
	stat.Histogram(D.histo, D.dividers, in, nil)
}

//AddData adds the given data point(s) to the histogram.
func (D *Data) AddData(point ...float64) {
	norma := D.normalized
	if norma {
		D.UnNormalize()
	}
	last := len(D.dividers) - 1
	for _, v := range point {
		if v < D.dividers[0] || v >= D.dividers[last] {
			continue
		}
		i := sort.SearchFloat64s(D.dividers, v)
		if D.dividers[i] != v {
			i--
		}
		D.histo[i]++
	}
	if norma {
		D.Normalize()
	}
}

//Len returns the number of bins.
func (D *Data) Len() int { return len(D.histo) }

//Normalized returns true if the histogram is normalized.
func (D *Data) Normalized() bool { return D.normalized }

//Normalize scales the histogram so it adds up to 1. Empty histograms are left alone.
func (D *Data) Normalize() {
	if D.normalized {
		return
	}
	D.total = floats.Sum(D.histo)
	if D.total == 0 {
		return
	}
	floats.Scale(1/D.total, D.histo)
	D.normalized = true
}

//UnNormalize undoes Normalize.
func (D *Data) UnNormalize() {
	if !D.normalized {
		return
	}
	floats.Scale(D.total, D.histo)
	D.normalized = false
}

//Sum returns the sum of all the bins.
func (D *Data) Sum() float64 { return floats.Sum(D.histo) }

//View returns the bins of the histogram. It is not a copy.
func (D *Data) View() []float64 { return D.histo }

//Copy returns a copy of the bins, in dest, if given.
func (D *Data) Copy(dest ...[]float64) []float64 {
	return getCopySlice(D.histo, dest...)
}

//CopyDividers returns a copy of the dividers, in dest, if given.
func (D *Data) CopyDividers(dest ...[]float64) []float64 {
	return getCopySlice(D.dividers, dest...)
}

func getCopySlice(src []float64, dest ...[]float64) []float64 {
	if len(dest) > 0 && len(dest[0]) >= len(src) {
		copy(dest[0], src)
		return dest[0][:len(src)]
	}
	return append([]float64(nil), src...)
}

//Overlap returns the sum over the bins of the smallest of the normalized
//frequencies of D and bins, which must have D's number of bins. It goes from
//0, for distributions with nothing in common, to 1 for identical ones.
func (D *Data) Overlap(bins []float64) float64 {
	if len(bins) != len(D.histo) {
		panic(fmt.Sprintf("histo.Overlap: %d bins, %d expected", len(bins), len(D.histo)))
	}
	a, b := D.Copy(), append([]float64(nil), bins...)
	sa, sb := floats.Sum(a), floats.Sum(b)
	if sa == 0 || sb == 0 {
		return 0
	}
	floats.Scale(1/sa, a)
	floats.Scale(1/sb, b)
	var o float64
	for i := range a {
		o += math.Min(a[i], b[i])
	}
	return o
}

func (D *Data) String() string {
	d := make([]string, 0, len(D.dividers))
	for _, v := range D.dividers {
		d = append(d, fmt.Sprintf("%5.1f", v))
	}
	h := make([]string, 0, len(D.histo))
	for _, v := range D.histo {
		h = append(h, fmt.Sprintf("%5.3f", v))
	}
	return fmt.Sprintf("%s\n%s", strings.Join(d, " "), strings.Join(h, " "))
}
