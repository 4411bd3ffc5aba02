/*
 * load.go, part of dgconf.
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
	"bufio"
	"embed"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

//Table file names.
const (
	IDFile        = "torsionID.txt"
	AngleFile     = "torsionAngle.txt"
	RangeFile     = "torsionRange.txt"
	FrequencyFile = "torsionFrequency.txt"
	HistogramFile = "torsionHistogram.txt"
)

//Source gives access to the table files by name.
type Source interface {
	Open(name string) (io.ReadCloser, error)
}

//go:embed data/*.zst
var embedded embed.FS

type embeddedSource struct{}

func (embeddedSource) Open(name string) (io.ReadCloser, error) {
	f, err := embedded.Open("data/" + name + ".zst")
	if err != nil {
		return nil, err
	}
	return newZstdReader(f)
}

//Embedded returns the source for the tables compiled into the package.
func Embedded() Source {
	return embeddedSource{}
}

//DirSource reads the tables from a directory. Each file can be plain,
//zstd-compressed (name.zst) or gzipped (name.gz), tried in that order.
type DirSource string

func (D DirSource) Open(name string) (io.ReadCloser, error) {
	path := filepath.Join(string(D), name)
	if f, err := os.Open(path); err == nil {
		return f, nil
	}
	if f, err := os.Open(path + ".zst"); err == nil {
		return newZstdReader(f)
	}
	f, err := os.Open(path + ".gz")
	if err != nil {
		return nil, newError("table "+name+" not found in "+string(D), "DirSource.Open", os.ErrNotExist)
	}
	gz, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, newError("can't read "+path+".gz", "DirSource.Open", err)
	}
	return &decompressed{r: gz, closers: []func() error{gz.Close, f.Close}}, nil
}

//decompressed closes the decompressor and the underlying file.
type decompressed struct {
	r       io.Reader
	closers []func() error
}

func (d *decompressed) Read(p []byte) (int, error) { return d.r.Read(p) }

func (d *decompressed) Close() error {
	var err error
	for _, c := range d.closers {
		if e := c(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

func newZstdReader(f io.ReadCloser) (io.ReadCloser, error) {
	dec, err := zstd.NewReader(f)
	if err != nil {
		f.Close()
		return nil, newError("can't start zstd decoder", "newZstdReader", err)
	}
	closeDec := func() error {
		dec.Close()
		return nil
	}
	return &decompressed{r: dec, closers: []func() error{closeDec, f.Close}}, nil
}

//readLines returns the lines of the table name in src.
func readLines(src Source, name string) ([]string, error) {
	f, err := src.Open(name)
	if err != nil {
		return nil, newError("can't open table "+name, "readLines", err)
	}
	defer f.Close()
	var lines []string
	s := bufio.NewScanner(f)
	s.Buffer(make([]byte, 64*1024), 1024*1024)
	for s.Scan() {
		lines = append(lines, s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, newError("can't read table "+name, "readLines", err)
	}
	return lines, nil
}
