/*
 * seed.go, part of gosam.
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

package statepoint

import (
	"crypto/sha1"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrSeedOverflow is returned when a per-replica seed doesn't fit in an int64.
var ErrSeedOverflow = errors.New("replica seed overflows int64")

var seedModulus = big.NewInt(100_000_000)

// Seed derives an integer seed from s. A decimal integer literal (surrounding
// white space, a sign and single underscores between digits are allowed) is
// returned as is, which can be negative. Anything else, including integers
// too large for an int64, gives the SHA-1 digest of s read as a big-endian
// integer, modulo 10^8.
func Seed(s string) int64 {
	if n, ok := parseInt(s); ok {
		return n
	}
	sum := sha1.Sum([]byte(s))
	h := new(big.Int).SetBytes(sum[:])
	return h.Mod(h, seedModulus).Int64()
}

// IsLiteral reports whether Seed takes s as an integer literal.
func IsLiteral(s string) bool {
	_, ok := parseInt(s)
	return ok
}

func parseInt(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	neg := false
	switch s[0] {
	case '+':
		s = s[1:]
	case '-':
		neg = true
		s = s[1:]
	}
	if s == "" {
		return 0, false
	}
	digits := make([]byte, 0, len(s))
	prevUnderscore := true //no leading underscore
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			digits = append(digits, c)
			prevUnderscore = false
		case c == '_' && !prevUnderscore:
			prevUnderscore = true
		default:
			return 0, false
		}
	}
	if prevUnderscore {
		return 0, false
	}
	n, ok := new(big.Int).SetString(string(digits), 10)
	if !ok {
		return 0, false
	}
	if neg {
		n.Neg(n)
	}
	if !n.IsInt64() {
		return 0, false
	}
	return n.Int64(), true
}

// ReplicaSeed returns base*(replica+1), the seed of the given 0-based replica.
func ReplicaSeed(base int64, replica int) (int64, error) {
	if replica < 0 {
		return 0, fmt.Errorf("negative replica index %d", replica)
	}
	b := big.NewInt(base)
	b.Mul(b, big.NewInt(int64(replica)+1))
	if !b.IsInt64() {
		return 0, fmt.Errorf("%w: %d * %d", ErrSeedOverflow, base, replica+1)
	}
	return b.Int64(), nil
}
