/*
 * doc.go, part of gosam.
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

/*
Package sam provides the atom and compound structures used to assemble
self-assembled monolayer systems, plus a few facilities for reading and
writing Gromacs structure files.

Coordinates are in nanometers and live in v3.Matrix objects, where each
row is the position of one atom. Functions in this package panic on
programming errors such as out of range indexes, and return errors for
anything that depends on input data.
*/
package sam
