/*
 * kb_test.go, part of dgconf.
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
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/rmera/dgconf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
)

func TestDefaultAngles(Te *testing.T) {
	kb := Default()
	a, err := kb.Angles("C3:C3~C3:C3-")
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{60, 180, 300}, a, 1e-9)

	f, err := kb.Frequencies("C3:C3~C3:C3-")
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{.3, .4, .3}, f, 1e-9)

	r, err := kb.Ranges("C3:C3~C3:C3-")
	require.NoError(Te, err)
	assert.Equal(Te, [][2]float64{{40, 80}, {160, 200}, {280, 320}}, r)

	a, err = kb.Angles("*:Ca~Ca:*=")
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{40, 320, 220, 140}, a, 1e-9)

	a, err = kb.Angles("C3:S3~S3:C3+")
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{90, 270}, a, 1e-9)

	a, err = kb.Angles("Xx:C3~C3:Xx-")
	require.NoError(Te, err)
	assert.Nil(Te, a)
	ids, err := kb.IDs()
	require.NoError(Te, err)
	assert.Len(Te, ids, 26)
}

func TestInverted(Te *testing.T) {
	kb := New(Embedded())
	a, err := kb.Angles("C3:C3~C3:C3<")
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{300, 180, 60}, a, 1e-9)
	f, err := kb.Frequencies("C3:C3~C3:C3<")
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{.3, .45, .25}, f, 1e-9)
	r, err := kb.Ranges("C3:C3~C3:C3<")
	require.NoError(Te, err)
	assert.Equal(Te, [2]float64{280, 320}, r[0])
	hc, err := kb.Histogram("C3:C3~C3:C3>")
	require.NoError(Te, err)
	hi, err := kb.Histogram("C3:C3~C3:C3<")
	require.NoError(Te, err)
	require.Len(Te, hi, HistogramBins)
	for i := range hc {
		assert.Equal(Te, hc[i], hi[HistogramBins-1-i])
	}
	//the derived value is cached and copies are handed out.
	a[0] = -1
	again, _ := kb.Angles("C3:C3~C3:C3<")
	assert.Equal(Te, 300.0, again[0])
}

func TestHistogram(Te *testing.T) {
	kb := Default()
	h, err := kb.Histogram("*:C2~C2:*")
	require.NoError(Te, err)
	require.Len(Te, h, HistogramBins)
	assert.InDelta(Te, 1, floats.Sum(h), 1e-9)
	peak, mean, err := kb.HistogramPeak("*:C2~C2:*")
	require.NoError(Te, err)
	assert.InDelta(Te, 180, peak, 2.5)
	assert.InDelta(Te, 180, mean, 1)
	_, _, err = kb.HistogramPeak("Xx:C3~C3:Xx-")
	assert.Error(Te, err)
}

func TestDirSource(Te *testing.T) {
	kb := NewFromDir("testdata")
	a, err := kb.Angles("*:C2~C2:*")
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{0, 180}, a, 1e-9)
	f, err := kb.Frequencies("*:C2~C2:*") //gzipped
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{.2, .8}, f, 1e-9)
	r, err := kb.Ranges("C3:C3~C3:C3-") //zstd
	require.NoError(Te, err)
	assert.Len(Te, r, 3)
	_, err = kb.Histogram("*:C2~C2:*")
	assert.Error(Te, err)
	//the failure is remembered.
	_, err = kb.Histogram("*:C2~C2:*")
	assert.Error(Te, err)
	assert.ErrorIs(Te, err, os.ErrNotExist)
}

func TestBadTables(Te *testing.T) {
	kb := NewFromDir(filepath.Join("testdata", "bad"))
	_, err := kb.Angles("C3:C3~C3:C3-")
	require.Error(Te, err)
	var e *Error
	require.ErrorAs(Te, err, &e)
	assert.True(Te, e.Critical())
	assert.Nil(Te, kb.TorsionAngles(butane(Te), 0, 1, 2, 3))

	dir := Te.TempDir()
	require.NoError(Te, os.WriteFile(filepath.Join(dir, IDFile), []byte("C3:C3~C3:C3-\n"), 0o644))
	require.NoError(Te, os.WriteFile(filepath.Join(dir, AngleFile), []byte("60 x\n"), 0o644))
	_, err = NewFromDir(dir).Angles("C3:C3~C3:C3-")
	assert.Error(Te, err)
}

func TestTorsionAngles(Te *testing.T) {
	b := butane(Te)
	assert.InDeltaSlice(Te, []float64{60, 180, 300}, Default().TorsionAngles(b, 0, 1, 2, 3), 1e-9)
	e := ethylbenzene(Te)
	//only the generic entry is known
	assert.InDeltaSlice(Te, []float64{90, 270}, Default().TorsionAngles(e, 1, 0, 6, 7), 1e-9)

	kb := New(Embedded())
	assert.InDeltaSlice(Te, []float64{180}, kb.WithMinFrequency(.35).TorsionAngles(b, 0, 1, 2, 3), 1e-9)
	//none reaches .9, the most frequent is kept
	assert.InDeltaSlice(Te, []float64{180}, kb.WithMinFrequency(.9).TorsionAngles(b, 0, 1, 2, 3), 1e-9)
	//the views leave kb alone
	assert.InDeltaSlice(Te, []float64{60, 180, 300}, kb.TorsionAngles(b, 0, 1, 2, 3), 1e-9)
	assert.Same(Te, kb, kb.WithMinFrequency(0))
}

//Generators with different minimum frequencies on one knowledge base don't see each other's.
func TestGeneratorsShareKB(Te *testing.T) {
	kb := New(Embedded())
	b := butane(Te)
	O := dgconf.DefaultOptions()
	O.MinTorsionFrequency(.35)
	G1, err := dgconf.NewGenerator(b, kb, O)
	require.NoError(Te, err)
	G2, err := dgconf.NewGenerator(b, kb, nil)
	require.NoError(Te, err)
	assert.Equal(Te, dgconf.Fixed, G1.Table().Get(0, 3).Kind)
	e := G2.Table().Get(0, 3)
	assert.Equal(Te, dgconf.Candidates, e.Kind)
	assert.Len(Te, e.Candidates, 2) //60 and 300 are the same distance

	var wg sync.WaitGroup
	kinds := make([]dgconf.EntryKind, 8)
	mols := make([]*dgconf.Molecule, len(kinds))
	for i := range mols {
		mols[i] = butane(Te)
	}
	for i := range kinds {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			O := dgconf.DefaultOptions()
			if i%2 == 0 {
				O.MinTorsionFrequency(.35)
			}
			G, err := dgconf.NewGenerator(mols[i], kb, O)
			if err == nil {
				kinds[i] = G.Table().Get(0, 3).Kind
			}
		}(i)
	}
	wg.Wait()
	for i, k := range kinds {
		if i%2 == 0 {
			assert.Equal(Te, dgconf.Fixed, k, "generator %d", i)
		} else {
			assert.Equal(Te, dgconf.Candidates, k, "generator %d", i)
		}
	}
}

func TestConcurrentLoad(Te *testing.T) {
	kb := New(Embedded())
	var wg sync.WaitGroup
	res := make([][]float64, 16)
	for i := range res {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				res[i], _ = kb.Histogram("C3:C3~C3:C3<")
				return
			}
			res[i], _ = kb.Angles("C3:C3~C3:C3<")
		}(i)
	}
	wg.Wait()
	for i := 2; i < len(res); i++ {
		assert.Equal(Te, res[i%2], res[i])
	}
}

func TestDistanceTableFromKB(Te *testing.T) {
	b := butane(Te)
	table, err := dgconf.BuildDistanceTable(b, Default())
	require.NoError(Te, err)
	e := table.Get(0, 3)
	assert.Equal(Te, dgconf.Candidates, e.Kind)
	assert.Len(Te, e.Candidates, 2)
}
