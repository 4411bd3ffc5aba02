/*
 * id.go, part of dgconf.
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

import "strings"

//Markers at the end of a fragment identifier.
const (
	Chiral        = '>'
	Inverted      = '<'
	Mirror        = '-'
	TwoFold       = '+'
	MirrorTwoFold = '='
)

func isMarker(b byte) bool {
	switch b {
	case Chiral, Inverted, Mirror, TwoFold, MirrorTwoFold:
		return true
	}
	return false
}

//Marker returns the symmetry marker of id, or 0 if it has none.
func Marker(id string) byte {
	if id == "" || !isMarker(id[len(id)-1]) {
		return 0
	}
	return id[len(id)-1]
}

//Base returns id without its marker.
func Base(id string) string {
	if Marker(id) != 0 {
		return id[:len(id)-1]
	}
	return id
}

//Invert returns the identifier of the mirror image of a chiral fragment,
//or id itself for fragments that are not chiral.
func Invert(id string) string {
	switch Marker(id) {
	case Chiral:
		return Base(id) + string(Inverted)
	case Inverted:
		return Base(id) + string(Chiral)
	}
	return id
}

//Generic returns the identifier id with the terminal atoms replaced by "*",
//keeping the marker.
func Generic(id string) string {
	base := Base(id)
	parts := strings.Split(base, "~")
	if len(parts) != 2 {
		return id
	}
	left := strings.Split(parts[0], ":")
	right := strings.Split(parts[1], ":")
	if len(left) != 2 || len(right) != 2 {
		return id
	}
	g := genericKey(left[1], right[0])
	if m := Marker(id); m != 0 {
		g += string(m)
	}
	return g
}

func key(a, b, c, d string) string {
	return a + ":" + b + "~" + c + ":" + d
}

//genericKey returns the generic identifier, without a marker, for a bond between
//atoms with the descriptors b and c.
func genericKey(b, c string) string {
	f, r := key("*", b, c, "*"), key("*", c, b, "*")
	if r < f {
		return r
	}
	return f
}
