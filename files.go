/*
 * files.go, part of gosam.
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

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// GroFileWrite writes C in Gromacs gro format to a file named fname,
// which is created or truncated.
func GroFileWrite(fname string, C *Compound) error {
	out, err := os.Create(fname)
	if err != nil {
		return errDecorate(err, "GroFileWrite")
	}
	defer out.Close()
	if err = GroWrite(out, C); err != nil {
		return errDecorate(err, "GroFileWrite")
	}
	return out.Close()
}

// GroWrite writes C in Gromacs gro format to out. Residue and atom numbers
// wrap at 100000, and names are truncated to 5 characters, as the format requires.
func GroWrite(out io.Writer, C *Compound) error {
	w := bufio.NewWriter(out)
	title := C.Name
	if title == "" {
		title = "gosam"
	}
	fmt.Fprintf(w, "%s\n%5d\n", title, C.Len())
	for i, a := range C.Atoms {
		p := C.Pos(i)
		_, err := fmt.Fprintf(w, "%5d%-5s%5s%5d%8.3f%8.3f%8.3f\n", a.MolID%100000, trunc(a.MolName, 5), trunc(a.Name, 5), (i+1)%100000, p[0], p[1], p[2])
		if err != nil {
			return NewError("GroWrite", "Couldn't write atom %d: %s", i, err)
		}
	}
	fmt.Fprintf(w, "%10.5f%10.5f%10.5f\n", C.Box[0], C.Box[1], C.Box[2])
	return w.Flush()
}

func trunc(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

// GroFileRead reads the gro file fname into a new Compound without bonds.
func GroFileRead(fname string) (*Compound, error) {
	f, err := os.Open(fname)
	if err != nil {
		return nil, errDecorate(err, "GroFileRead")
	}
	defer f.Close()
	C, err := GroRead(f)
	if err != nil {
		return nil, errDecorate(err, "GroFileRead")
	}
	return C, nil
}

// GroRead reads a gro-formatted structure from in. The element of each
// atom is guessed from its name, and left empty if that fails.
func GroRead(in io.Reader) (*Compound, error) {
	r := bufio.NewReader(in)
	title, err := r.ReadString('\n')
	if err != nil {
		return nil, NewError("GroRead", "Ill formatted gro file: %s", err)
	}
	line, err := r.ReadString('\n')
	if err != nil {
		return nil, NewError("GroRead", "Ill formatted gro file: %s", err)
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return nil, NewError("GroRead", "Couldn't read the number of atoms: %s", err)
	}
	atoms := make([]*Atom, 0, natoms)
	coords := make([]float64, 0, 3*natoms)
	for i := 0; i < natoms; i++ {
		line, err = r.ReadString('\n')
		if err != nil && !(err == io.EOF && len(line) > 0) {
			return nil, NewError("GroRead", "File ended at atom %d of %d", i, natoms)
		}
		if len(line) < 44 {
			return nil, NewError("GroRead", "Line for atom %d ill formed", i)
		}
		at := new(Atom)
		at.MolID, err = strconv.Atoi(strings.TrimSpace(line[0:5]))
		if err != nil {
			return nil, NewError("GroRead", "Bad residue number for atom %d: %s", i, err)
		}
		at.MolName = strings.TrimSpace(line[5:10])
		at.Name = strings.TrimSpace(line[10:15])
		at.ID = i + 1
		at.Symbol, _ = SymbolFromName(at.Name)
		at.Mass = symbolMass[at.Symbol]
		for k := 0; k < 3; k++ {
			c, err := strconv.ParseFloat(strings.TrimSpace(line[20+8*k:28+8*k]), 64)
			if err != nil {
				return nil, NewError("GroRead", "Bad coordinate for atom %d: %s", i, err)
			}
			coords = append(coords, c)
		}
		atoms = append(atoms, at)
	}
	C, err := NewCompound(strings.TrimSpace(title), atoms, coords, nil)
	if err != nil {
		return nil, errDecorate(err, "GroRead")
	}
	line, _ = r.ReadString('\n')
	f := strings.Fields(line)
	if len(f) >= 3 {
		for k := 0; k < 3; k++ {
			C.Box[k], err = strconv.ParseFloat(f[k], 64)
			if err != nil {
				return nil, NewError("GroRead", "Bad box vector: %s", err)
			}
		}
	}
	return C, nil
}
