/*
 * tplot_test.go, part of dgconf.
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

package tplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rmera/dgconf/torsion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"
)

func TestFromKB(Te *testing.T) {
	dir := Te.TempDir()
	path := filepath.Join(dir, "butane.png")
	require.NoError(Te, FromKB(torsion.Default(), "C3:C3~C3:C3<", path))
	st, err := os.Stat(path)
	require.NoError(Te, err)
	assert.Greater(Te, st.Size(), int64(0))

	//no extension
	require.NoError(Te, FromKB(torsion.Default(), "*:C2~C2:*", filepath.Join(dir, "amide")))
	_, err = os.Stat(filepath.Join(dir, "amide.png"))
	assert.NoError(Te, err)

	assert.Error(Te, FromKB(torsion.Default(), "Xx:C3~C3:Xx-", filepath.Join(dir, "none.png")))
	assert.Error(Te, Histogram([]float64{1, 2}, nil, "short", filepath.Join(dir, "short.png")))
}

func TestBasicPlot(Te *testing.T) {
	p := basicPlot("C3:C3~C3:C3-")
	assert.Equal(Te, 3*vg.Millimeter, p.Title.Padding)
	assert.Equal(Te, "C3:C3~C3:C3-", p.Title.Text)
	assert.Equal(Te, 360.0, p.X.Max)
}
