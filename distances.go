/*
 * distances.go, part of dgconf.
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
)

//EntryKind is the variant of a distance table entry.
type EntryKind int

const (
	Unset EntryKind = iota
	Fixed
	Bounded
	Candidates
)

func (k EntryKind) String() string {
	switch k {
	case Fixed:
		return "fixed"
	case Bounded:
		return "bounded"
	case Candidates:
		return "candidates"
	}
	return "unset"
}

//Entry is the distance constraint for one pair of atoms. For Fixed entries
//Min==Max. For Bounded entries Min<=Max, and Max can be +Inf. Candidates entries
//hold at least one target distance.
type Entry struct {
	Kind       EntryKind
	Min        float64
	Max        float64
	Candidates []float64
}

//bounds returns the window the distance d should be in. For Candidates,
//the window is the candidate closest to d.
func (E *Entry) bounds(d float64) (float64, float64) {
	if E.Kind != Candidates {
		return E.Min, E.Max
	}
	best := E.Candidates[0]
	for _, v := range E.Candidates[1:] {
		if math.Abs(v-d) < math.Abs(best-d) {
			best = v
		}
	}
	return best, best
}

//DistanceTable contains one entry per unordered pair of atoms,
//in triangular storage.
type DistanceTable struct {
	n       int
	entries []Entry
}

//NewDistanceTable returns a table for n atoms, with all entries unset.
func NewDistanceTable(n int) *DistanceTable {
	return &DistanceTable{n: n, entries: make([]Entry, n*(n-1)/2)}
}

func (D *DistanceTable) index(i, j int) int {
	if i == j || i < 0 || j < 0 || i >= D.n || j >= D.n {
		panic(fmt.Sprintf("DistanceTable: invalid pair %d-%d for %d atoms", i, j, D.n))
	}
	if i < j {
		i, j = j, i
	}
	return i*(i-1)/2 + j
}

//Len returns the number of atoms the table is for.
func (D *DistanceTable) Len() int {
	return D.n
}

//Get returns the entry for the pair i, j, in any order.
//It panics if the entry is unset, which means the table was not
//properly built.
func (D *DistanceTable) Get(i, j int) *Entry {
	e := &D.entries[D.index(i, j)]
	if e.Kind == Unset {
		panic(fmt.Sprintf("DistanceTable: pair %d-%d has no constraint", i, j))
	}
	return e
}

func (D *DistanceTable) isSet(i, j int) bool {
	return D.entries[D.index(i, j)].Kind != Unset
}

//Count returns the number of entries of the given kind.
func (D *DistanceTable) Count(kind EntryKind) int {
	n := 0
	for _, v := range D.entries {
		if v.Kind == kind {
			n++
		}
	}
	return n
}

//Check returns an error for the first entry that is unset or malformed.
func (D *DistanceTable) Check() error {
	for i := 1; i < D.n; i++ {
		for j := 0; j < i; j++ {
			e := D.entries[D.index(i, j)]
			switch {
			case e.Kind == Unset:
				return newError(fmt.Sprintf("pair %d-%d has no constraint", i, j), "DistanceTable.Check", nil)
			case e.Kind == Fixed && e.Min != e.Max:
				return newError(fmt.Sprintf("fixed pair %d-%d has min %5.3f and max %5.3f", i, j, e.Min, e.Max), "DistanceTable.Check", nil)
			case e.Kind == Bounded && e.Min > e.Max:
				return newError(fmt.Sprintf("bounded pair %d-%d has min %5.3f > max %5.3f", i, j, e.Min, e.Max), "DistanceTable.Check", nil)
			case e.Kind == Candidates && len(e.Candidates) == 0:
				return newError(fmt.Sprintf("pair %d-%d has no candidates", i, j), "DistanceTable.Check", nil)
			}
		}
	}
	return nil
}

func (D *DistanceTable) setFixed(i, j int, d float64) {
	D.entries[D.index(i, j)] = Entry{Kind: Fixed, Min: d, Max: d}
}

func (D *DistanceTable) setBounded(i, j int, min, max float64) {
	if min > max {
		min = max
	}
	D.entries[D.index(i, j)] = Entry{Kind: Bounded, Min: min, Max: max}
}

//setCandidates stores the distinct values of c. A single distinct
//value is stored as a Fixed entry.
func (D *DistanceTable) setCandidates(i, j int, c []float64) {
	uniq := make([]float64, 0, len(c))
	for _, v := range c {
		dup := false
		for _, w := range uniq {
			if math.Abs(v-w) < 1e-3 {
				dup = true
				break
			}
		}
		if !dup {
			uniq = append(uniq, v)
		}
	}
	if len(uniq) == 1 {
		D.setFixed(i, j, uniq[0])
		return
	}
	min, max := uniq[0], uniq[0]
	for _, v := range uniq {
		min = math.Min(min, v)
		max = math.Max(max, v)
	}
	D.entries[D.index(i, j)] = Entry{Kind: Candidates, Min: min, Max: max, Candidates: uniq}
}
