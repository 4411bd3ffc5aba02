/*
 * kb.go, part of dgconf.
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
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	"github.com/rmera/dgconf"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Mode is one of the kinds of data in the knowledge base. Each is loaded separately.
type Mode int

const (
	Angles Mode = iota
	Ranges
	Frequencies
	Histograms
	nModes
)

func (m Mode) String() string {
	return [...]string{"angles", "ranges", "frequencies", "histograms"}[m]
}

func (m Mode) file() string {
	return [...]string{AngleFile, RangeFile, FrequencyFile, HistogramFile}[m]
}

//HistogramBins is the number of 5 degree bins in a torsion histogram.
const HistogramBins = 72

//angles closer than this, in degrees, are the same angle.
const sameAngle = 0.5

//origin tells where an expanded value comes from: the stored
//value src after the symmetry operation op.
type origin struct {
	src int
	op  symop
}

type symop int

const (
	identity symop = iota
	mirror
	twofold
	mirrorTwofold
)

func wrap(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

func (s symop) apply(a float64) float64 {
	switch s {
	case mirror:
		return wrap(360 - a)
	case twofold:
		return wrap(a + 180)
	case mirrorTwofold:
		return wrap(180 - a)
	}
	return wrap(a)
}

//applyRange transforms the range r. Mirroring swaps the ends.
func (s symop) applyRange(r [2]float64) [2]float64 {
	if s == mirror || s == mirrorTwofold {
		return [2]float64{s.apply(r[1]), s.apply(r[0])}
	}
	return [2]float64{s.apply(r[0]), s.apply(r[1])}
}

func symops(marker byte) []symop {
	switch marker {
	case Mirror:
		return []symop{identity, mirror}
	case TwoFold:
		return []symop{identity, twofold}
	case MirrorTwoFold:
		return []symop{identity, mirror, twofold, mirrorTwofold}
	}
	return []symop{identity}
}

func angleDiff(a, b float64) float64 {
	d := math.Abs(wrap(a) - wrap(b))
	return math.Min(d, 360-d)
}

//expand returns the origins of the full-circle angles for the stored angles of an
//entry with the given marker, without duplicates.
func expand(marker byte, stored []float64) []origin {
	var ret []origin
	var seen []float64
	for _, op := range symops(marker) {
		for i, a := range stored {
			v := op.apply(a)
			dup := false
			for _, s := range seen {
				if angleDiff(s, v) < sameAngle {
					dup = true
					break
				}
			}
			if !dup {
				seen = append(seen, v)
				ret = append(ret, origin{src: i, op: op})
			}
		}
	}
	return ret
}

//KB is a torsion knowledge base. It is safe for concurrent use.
//The zero value is not usable, use New, NewFromDir or Default.
type KB struct {
	src Source

	mu      sync.Mutex
	ids     []string
	origins map[string][]origin
	angles  map[string][]float64
	ranges  map[string][][2]float64
	freqs   map[string][]float64
	hists   map[string][]float64
	loaded  [nModes]bool
	loadErr [nModes]error
}

//New returns a knowledge base that reads its tables from src when they are first needed.
func New(src Source) *KB {
	return &KB{
		src:     src,
		origins: make(map[string][]origin),
		angles:  make(map[string][]float64),
		ranges:  make(map[string][][2]float64),
		freqs:   make(map[string][]float64),
		hists:   make(map[string][]float64),
	}
}

//NewFromDir returns a knowledge base that reads its tables from the directory dir.
func NewFromDir(dir string) *KB {
	return New(DirSource(dir))
}

var (
	defaultKB   *KB
	defaultOnce sync.Once
)

//Default returns the process-wide knowledge base built from the embedded tables.
func Default() *KB {
	defaultOnce.Do(func() { defaultKB = New(Embedded()) })
	return defaultKB
}

func (K *KB) loadIDs() error {
	if K.ids != nil {
		return nil
	}
	ids, err := readLines(K.src, IDFile)
	if err != nil {
		return err
	}
	for i, v := range ids {
		ids[i] = strings.TrimSpace(v)
	}
	K.ids = ids
	return nil
}

func parseFloats(line string) ([]float64, error) {
	f := strings.Fields(line)
	ret := make([]float64, 0, len(f))
	for _, v := range f {
		x, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, err
		}
		ret = append(ret, x)
	}
	return ret, nil
}

func parseRanges(line string) ([][2]float64, error) {
	f := strings.Fields(line)
	ret := make([][2]float64, 0, len(f))
	for _, v := range f {
		lo, hi, ok := strings.Cut(v, ":")
		if !ok {
			return nil, fmt.Errorf("range %q is not lo:hi", v)
		}
		l, err := strconv.ParseFloat(lo, 64)
		if err != nil {
			return nil, err
		}
		h, err := strconv.ParseFloat(hi, 64)
		if err != nil {
			return nil, err
		}
		ret = append(ret, [2]float64{l, h})
	}
	return ret, nil
}

//normalize scales v so it adds up to 1, if possible.
func normalize(v []float64) []float64 {
	if s := floats.Sum(v); s > 0 {
		floats.Scale(1/s, v)
	}
	return v
}

//load reads the table for mode, if that has not been done. K.mu must be held.
func (K *KB) load(mode Mode) error {
	if K.loaded[mode] {
		return K.loadErr[mode]
	}
	err := K.loadTable(mode)
	K.loaded[mode] = true
	K.loadErr[mode] = err
	if err != nil {
		return err
	}
	logger.Debug("torsion table loaded", zap.Stringer("mode", mode), zap.Int("entries", len(K.ids)))
	return nil
}

func (K *KB) loadTable(mode Mode) error {
	if err := K.loadIDs(); err != nil {
		return err
	}
	if mode == Ranges || mode == Frequencies {
		//the expansion of these follows that of the angles.
		if err := K.load(Angles); err != nil {
			return err
		}
	}
	lines, err := readLines(K.src, mode.file())
	if err != nil {
		return err
	}
	if len(lines) != len(K.ids) {
		return newError(fmt.Sprintf("%s has %d lines but there are %d identifiers", mode.file(), len(lines), len(K.ids)), "KB.load", nil)
	}
	for i, id := range K.ids {
		bad := func(err error) error {
			return newError(fmt.Sprintf("%s line %d (%s)", mode.file(), i+1, id), "KB.load", err)
		}
		switch mode {
		case Angles:
			stored, err := parseFloats(lines[i])
			if err != nil {
				return bad(err)
			}
			or := expand(Marker(id), stored)
			a := make([]float64, len(or))
			for k, o := range or {
				a[k] = o.op.apply(stored[o.src])
			}
			K.origins[id] = or
			K.angles[id] = a
		case Frequencies:
			stored, err := parseFloats(lines[i])
			if err != nil {
				return bad(err)
			}
			f := make([]float64, len(K.origins[id]))
			for k, o := range K.origins[id] {
				if o.src >= len(stored) {
					return bad(fmt.Errorf("%d frequencies for more angles", len(stored)))
				}
				f[k] = stored[o.src]
			}
			K.freqs[id] = normalize(f)
		case Ranges:
			stored, err := parseRanges(lines[i])
			if err != nil {
				return bad(err)
			}
			r := make([][2]float64, len(K.origins[id]))
			for k, o := range K.origins[id] {
				if o.src >= len(stored) {
					return bad(fmt.Errorf("%d ranges for more angles", len(stored)))
				}
				r[k] = o.op.applyRange(stored[o.src])
			}
			K.ranges[id] = r
		case Histograms:
			h, err := parseFloats(lines[i])
			if err != nil {
				return bad(err)
			}
			if len(h) != HistogramBins {
				return bad(fmt.Errorf("%d bins instead of %d", len(h), HistogramBins))
			}
			K.hists[id] = normalize(h)
		}
	}
	return nil
}

//lookup returns m[id]. For inverted identifiers not in m, it derives the value by
//applying inv to that of the chiral counterpart, and caches it.
func lookup[T any](m map[string]T, id string, inv func(T) T) (T, bool) {
	if v, ok := m[id]; ok {
		return v, true
	}
	if Marker(id) == Inverted {
		if v, ok := m[Invert(id)]; ok {
			r := inv(v)
			m[id] = r
			return r, true
		}
	}
	var zero T
	return zero, false
}

func mirrorAngles(a []float64) []float64 {
	r := make([]float64, len(a))
	for i, v := range a {
		r[i] = mirror.apply(v)
	}
	return r
}

func mirrorRanges(a [][2]float64) [][2]float64 {
	r := make([][2]float64, len(a))
	for i, v := range a {
		r[i] = mirror.applyRange(v)
	}
	return r
}

func sameFreqs(f []float64) []float64 {
	return append([]float64(nil), f...)
}

//reverseBins mirrors a histogram: the bin k, [5k,5k+5), goes to the bin 71-k.
func reverseBins(h []float64) []float64 {
	r := make([]float64, len(h))
	for i, v := range h {
		r[len(h)-1-i] = v
	}
	return r
}

//Angles returns the full-circle preferred angles, in degrees, for the fragment id,
//or nil if the fragment is not known.
func (K *KB) Angles(id string) ([]float64, error) {
	K.mu.Lock()
	defer K.mu.Unlock()
	if err := K.load(Angles); err != nil {
		return nil, err
	}
	a, _ := lookup(K.angles, id, mirrorAngles)
	return append([]float64(nil), a...), nil
}

//Ranges returns the low-strain range for each of the angles returned by Angles.
//A range with lo>hi goes through 0.
func (K *KB) Ranges(id string) ([][2]float64, error) {
	K.mu.Lock()
	defer K.mu.Unlock()
	if err := K.load(Ranges); err != nil {
		return nil, err
	}
	r, _ := lookup(K.ranges, id, mirrorRanges)
	return append([][2]float64(nil), r...), nil
}

//Frequencies returns the relative frequency of each of the angles returned by Angles.
func (K *KB) Frequencies(id string) ([]float64, error) {
	K.mu.Lock()
	defer K.mu.Unlock()
	if err := K.load(Frequencies); err != nil {
		return nil, err
	}
	f, _ := lookup(K.freqs, id, sameFreqs)
	return append([]float64(nil), f...), nil
}

//Histogram returns the normalized 72-bin histogram of the torsion for the fragment id,
//or nil if the fragment is not known.
func (K *KB) Histogram(id string) ([]float64, error) {
	K.mu.Lock()
	defer K.mu.Unlock()
	if err := K.load(Histograms); err != nil {
		return nil, err
	}
	h, _ := lookup(K.hists, id, reverseBins)
	return append([]float64(nil), h...), nil
}

//HistogramPeak returns the center of the most populated bin of the histogram of id,
//and the circular mean of the histogram, both in degrees.
func (K *KB) HistogramPeak(id string) (peak, mean float64, err error) {
	h, err := K.Histogram(id)
	if err != nil {
		return 0, 0, err
	}
	if len(h) == 0 {
		return 0, 0, newError("no histogram for "+id, "KB.HistogramPeak", nil)
	}
	centers := make([]float64, len(h))
	for i := range centers {
		centers[i] = (float64(i)*5 + 2.5) * math.Pi / 180
	}
	peak = float64(floats.MaxIdx(h))*5 + 2.5
	mean = wrap(stat.CircularMean(centers, h) * 180 / math.Pi)
	return peak, mean, nil
}

//IDs returns the identifiers stored in the knowledge base.
func (K *KB) IDs() ([]string, error) {
	K.mu.Lock()
	defer K.mu.Unlock()
	if err := K.loadIDs(); err != nil {
		return nil, err
	}
	return append([]string(nil), K.ids...), nil
}

//filter drops from angles those with a frequency under min, but always
//keeps the most frequent one.
func (K *KB) filter(id string, angles []float64, min float64) []float64 {
	if min <= 0 {
		return angles
	}
	f, err := K.Frequencies(id)
	if err != nil || len(f) != len(angles) {
		return angles
	}
	ret := make([]float64, 0, len(angles))
	for i, a := range angles {
		if f[i] >= min {
			ret = append(ret, a)
		}
	}
	if len(ret) == 0 {
		ret = append(ret, angles[floats.MaxIdx(f)])
	}
	return ret
}

//TorsionAngles returns the preferred angles for the torsion a-b-c-d of mol, from the
//first of the identifiers given by Classify that is known. It implements dgconf.TorsionSource.
//Errors reading the tables are logged and reported as nothing known.
func (K *KB) TorsionAngles(mol dgconf.MolGraph, a, b, c, d int) []float64 {
	return K.torsionAngles(mol, a, b, c, d, 0)
}

func (K *KB) torsionAngles(mol dgconf.MolGraph, a, b, c, d int, min float64) []float64 {
	for _, id := range Classify(mol, a, b, c, d) {
		angles, err := K.Angles(id)
		if err != nil {
			logger.Error("torsion knowledge base unavailable", zap.Error(err))
			return nil
		}
		if len(angles) > 0 {
			logger.Debug("torsion found", zap.String("id", id), zap.Float64s("angles", angles))
			return K.filter(id, angles, min)
		}
	}
	return nil
}

//filtered is a view of a KB that leaves out the rare torsions.
type filtered struct {
	kb  *KB
	min float64
}

func (F filtered) TorsionAngles(mol dgconf.MolGraph, a, b, c, d int) []float64 {
	return F.kb.torsionAngles(mol, a, b, c, d, F.min)
}

//WithMinFrequency returns a torsion source that gives the angles of K with a relative
//frequency of at least f, or only the most frequent one if none reaches f. K is not
//modified, so views with different thresholds can be used at the same time.
//For f<=0 it returns K itself.
func (K *KB) WithMinFrequency(f float64) dgconf.TorsionSource {
	if f <= 0 {
		return K
	}
	return filtered{kb: K, min: f}
}
