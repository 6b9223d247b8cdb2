/*
 * util.go, part of gosam.
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

package top

import (
	"fmt"
	"io"
	"regexp"
	"strings"
)

var sf = fmt.Sprintf

func qerr(err error) {
	if err != nil {
		panic(err.Error())
	}
}

// Returns a string without gromacs comments (sequences starting with ';'),
// trailing and leading spaces, tabs and newlines
func cleanString(s string) string {
	f := strings.Split(s, ";")[0]
	return strings.Trim(f, "\r\n\t ")
}

var headerRE = regexp.MustCompile(`^\[\p{Zs}*([^\]\p{Zs}]+)\p{Zs}*\]$`)

// header returns the name of the section started by line, or an empty
// string if the line is not a section header. It discards comments.
func header(line string) string {
	m := headerRE.FindStringSubmatch(cleanString(line))
	if m == nil {
		return ""
	}
	return m[1]
}

type groer interface {
	ToGro() (string, error)
}

func printGro[G ~[]E, E groer](r io.StringWriter, g G) error {
	for _, v := range g {
		m, e := v.ToGro()
		if e != nil {
			return e
		}
		_, e = r.WriteString(m)
		if e != nil {
			return e
		}
	}
	return nil
}
