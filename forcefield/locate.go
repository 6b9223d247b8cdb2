/*
 * locate.go, part of gosam.
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

package forcefield

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultName is the file name of the force field the builder uses.
const DefaultName = "oplsaa.xml"

// Candidates returns the paths, relative to a job directory, where the
// force field is looked for, in order.
func Candidates(jobDir string) []string {
	return []string{
		filepath.Join(jobDir, "..", "util", "forcefield", DefaultName),
		filepath.Join(jobDir, "..", "..", "..", "util", "forcefield", DefaultName),
	}
}

// Locate returns the force field file to use for the job in jobDir. A
// non-empty override is the only path considered. Otherwise the
// Candidates are tried in order.
func Locate(jobDir, override string) (string, error) {
	paths := Candidates(jobDir)
	if override != "" {
		paths = []string{override}
	}
	for _, p := range paths {
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrNotFound, strings.Join(paths, ", "))
}
