/*
 * ndx.go, part of gosam.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Group is a named set of atoms, by 0-based index.
type Group struct {
	Name  string
	Atoms []int
}

const ndxPerLine = 15

// NdxWrite writes the groups in GROMACS index format, with 1-based atom
// numbers.
func NdxWrite(out io.Writer, groups []Group) error {
	w := bufio.NewWriter(out)
	for _, g := range groups {
		if strings.ContainsAny(g.Name, " \t[]") || g.Name == "" {
			return fmt.Errorf("invalid index group name %q", g.Name)
		}
		if _, err := w.WriteString(sf("[ %s ]\n", g.Name)); err != nil {
			return err
		}
		for i, a := range g.Atoms {
			sep := " "
			if (i+1)%ndxPerLine == 0 || i == len(g.Atoms)-1 {
				sep = "\n"
			}
			if _, err := w.WriteString(sf("%4d%s", a+1, sep)); err != nil {
				return err
			}
		}
		if _, err := w.WriteString("\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}

// NdxFileWrite writes the groups to the index file fname.
func NdxFileWrite(fname string, groups []Group) error {
	f, err := os.Create(fname)
	if err != nil {
		return err
	}
	if err := NdxWrite(f, groups); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", fname, err)
	}
	return f.Close()
}

// NdxRead reads the groups of a GROMACS index file. Atom numbers are
// returned as 0-based indexes.
func NdxRead(in io.Reader) ([]Group, error) {
	secs, err := ReadSections(in)
	if err != nil {
		return nil, err
	}
	ret := make([]Group, 0, len(secs))
	for _, s := range secs {
		g := Group{Name: s.Name, Atoms: []int{}}
		for _, l := range s.Lines {
			for _, f := range strings.Fields(l) {
				n, err := strconv.Atoi(f)
				if err != nil || n < 1 {
					return nil, fmt.Errorf("group %s: bad atom number %q", s.Name, f)
				}
				g.Atoms = append(g.Atoms, n-1)
			}
		}
		ret = append(ret, g)
	}
	return ret, nil
}
