/*
 * atomicdata.go, part of gosam.
 *
 * Copyright 2026 The gosam authors.
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

package sam

import "strings"

// A map for assigning mass to elements.
// Only the elements that can appear in a monolayer system are present.
var symbolMass = map[string]float64{
	"H":  1.008,
	"C":  12.011,
	"N":  14.007,
	"O":  15.999,
	"F":  18.998,
	"Si": 28.086,
	"S":  32.06,
	"Cl": 35.45,
}

var atomicNumber = map[string]int{
	"H":  1,
	"C":  6,
	"N":  7,
	"O":  8,
	"F":  9,
	"Si": 14,
	"S":  16,
	"Cl": 17,
}

// MassOf returns the atomic mass of the element with the given symbol, or
// 0 if the element is unknown.
func MassOf(symbol string) float64 {
	return symbolMass[symbol]
}

// AtomicNumber returns the atomic number of the element, or 0 if unknown.
func AtomicNumber(symbol string) int {
	return atomicNumber[symbol]
}

// SymbolFromName guesses the element of an atom from its name.
// Names starting with "Si" are silicon and names starting with "O"
// are oxygen. Otherwise the name, stripped of trailing digits, must be
// a known element symbol.
func SymbolFromName(name string) (string, error) {
	if strings.HasPrefix(strings.ToUpper(name), "SI") {
		return "Si", nil
	}
	if strings.HasPrefix(name, "O") {
		return "O", nil
	}
	s := strings.TrimRight(name, "0123456789")
	if len(s) > 1 {
		s = s[:1] + strings.ToLower(s[1:])
	}
	if _, ok := symbolMass[s]; ok {
		return s, nil
	}
	return "", NewError("SymbolFromName", "Couldn't guess the element of atom %q", name)
}
