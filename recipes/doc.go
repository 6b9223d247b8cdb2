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
Package recipes builds the pieces of a self-assembled monolayer system:
a hydroxylated silica slab with grafting sites, silane chain prototypes,
monolayers made by grafting chains on a slab, and the dual-surface system
of two facing monolayers.

All lengths are in nm. Structures are starting geometries meant to be
relaxed by the MD engine, so only bond lengths are close to equilibrium.
*/
package recipes
