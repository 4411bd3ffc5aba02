/*
 * atomicdata.go, part of dgconf.
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

import "strings"

type element struct {
	symbol string
	covrad float64
	vdwrad float64
}

//Covalent radii from Cordero et al., 2008 (DOI:10.1039/B801115J)
//van der Waals radii from 10.1021/j100785a001 and 10.1021/jp8111556
//metal radii from 10.1023/A:1011625728803
//Note that just common "bio-elements" are present
var elements = map[int]element{
	1:  {"H", 0.31, 1.10},
	4:  {"Be", 0.96, 1.53},
	5:  {"B", 0.84, 1.92},
	6:  {"C", 0.76, 1.70}, //the sp3 radius
	7:  {"N", 0.71, 1.55},
	8:  {"O", 0.66, 1.52},
	9:  {"F", 0.57, 1.47},
	11: {"Na", 1.66, 2.27},
	12: {"Mg", 1.41, 1.73},
	14: {"Si", 1.11, 2.10},
	15: {"P", 1.07, 1.80},
	16: {"S", 1.05, 1.80},
	17: {"Cl", 1.02, 1.75},
	19: {"K", 2.03, 2.75},
	20: {"Ca", 1.76, 2.31},
	24: {"Cr", 1.39, 1.97},
	25: {"Mn", 1.61, 1.96}, //hs
	26: {"Fe", 1.52, 1.96}, //hs
	27: {"Co", 1.50, 1.95}, //hs
	29: {"Cu", 1.32, 2.00},
	30: {"Zn", 1.22, 2.02},
	34: {"Se", 1.20, 1.90},
	35: {"Br", 1.20, 1.83},
	53: {"I", 1.39, 1.98},
}

//used for anything not in the table.
const (
	defaultCovrad = 1.50
	defaultVdwrad = 2.00
)

var symbolZ map[string]int

func init() {
	symbolZ = make(map[string]int, len(elements))
	for z, e := range elements {
		symbolZ[strings.ToUpper(e.symbol)] = z
	}
}

//AtomicNumber returns the atomic number for the element symbol sym (case insensitive),
//or 0 if the symbol is not known.
func AtomicNumber(sym string) int {
	return symbolZ[strings.ToUpper(strings.TrimSpace(sym))]
}

//Symbol returns the element symbol for the atomic number z, or "X".
func Symbol(z int) string {
	if e, ok := elements[z]; ok {
		return e.symbol
	}
	return "X"
}

//CovalentRadius returns the covalent radius of the element z in A.
func CovalentRadius(z int) float64 {
	if e, ok := elements[z]; ok {
		return e.covrad
	}
	return defaultCovrad
}

//VdWRadius returns the van der Waals radius of the element z in A.
func VdWRadius(z int) float64 {
	if e, ok := elements[z]; ok {
		return e.vdwrad
	}
	return defaultVdwrad
}
