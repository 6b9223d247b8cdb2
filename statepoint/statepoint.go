/*
 * statepoint.go, part of gosam.
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
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

var (
	ErrDuplicateKey = errors.New("duplicate state point key")
	ErrBadValue     = errors.New("unsupported state point value")
)

// Field is one named parameter of a state point.
type Field struct {
	Key   string
	Value any
}

// F is shorthand for a Field literal.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// StatePoint is an immutable, insertion-ordered set of parameters. Values
// are strings, bools, int64 or float64; other integer and float kinds are
// converted on construction.
type StatePoint struct {
	fields []Field
}

// New builds a state point from fields, in the given order.
func New(fields ...Field) (StatePoint, error) {
	seen := make(map[string]bool, len(fields))
	out := make([]Field, 0, len(fields))
	for _, f := range fields {
		if seen[f.Key] {
			return StatePoint{}, fmt.Errorf("%w: %q", ErrDuplicateKey, f.Key)
		}
		seen[f.Key] = true
		v, err := normalize(f.Value)
		if err != nil {
			return StatePoint{}, fmt.Errorf("key %q: %w", f.Key, err)
		}
		out = append(out, Field{Key: f.Key, Value: v})
	}
	return StatePoint{fields: out}, nil
}

// MustNew is like New but panics on error.
func MustNew(fields ...Field) StatePoint {
	sp, err := New(fields...)
	if err != nil {
		panic(err)
	}
	return sp
}

func normalize(v any) (any, error) {
	switch x := v.(type) {
	case string, bool, int64:
		return x, nil
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint:
		if uint64(x) > math.MaxInt64 {
			return nil, fmt.Errorf("%w: %d overflows int64", ErrBadValue, x)
		}
		return int64(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return nil, fmt.Errorf("%w: %d overflows int64", ErrBadValue, x)
		}
		return int64(x), nil
	case float32:
		return normalize(float64(x))
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("%w: %v", ErrBadValue, x)
		}
		return x, nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrBadValue, x)
		}
		return normalize(f)
	}
	return nil, fmt.Errorf("%w: %T", ErrBadValue, v)
}

// Len returns the number of fields.
func (s StatePoint) Len() int { return len(s.fields) }

// Fields returns a copy of the fields, in insertion order.
func (s StatePoint) Fields() []Field {
	return append([]Field(nil), s.fields...)
}

// Keys returns the keys in insertion order.
func (s StatePoint) Keys() []string {
	k := make([]string, len(s.fields))
	for i, f := range s.fields {
		k[i] = f.Key
	}
	return k
}

// Get returns the value stored under key.
func (s StatePoint) Get(key string) (any, bool) {
	for _, f := range s.fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// With returns a copy of s with key set to value. An existing key keeps
// its position; a new one is appended.
func (s StatePoint) With(key string, value any) (StatePoint, error) {
	v, err := normalize(value)
	if err != nil {
		return StatePoint{}, fmt.Errorf("key %q: %w", key, err)
	}
	out := s.Fields()
	for i := range out {
		if out[i].Key == key {
			out[i].Value = v
			return StatePoint{fields: out}, nil
		}
	}
	return StatePoint{fields: append(out, Field{Key: key, Value: v})}, nil
}

// Map returns the state point as a map.
func (s StatePoint) Map() map[string]any {
	m := make(map[string]any, len(s.fields))
	for _, f := range s.fields {
		m[f.Key] = f.Value
	}
	return m
}

// ID returns the hex MD5 digest of the canonical JSON form, the same
// job id signac computes for the state point.
func (s StatePoint) ID() string {
	sum := md5.Sum(s.Canonical())
	return hex.EncodeToString(sum[:])
}

// Equal reports whether both state points hold the same parameters,
// regardless of order.
func (s StatePoint) Equal(o StatePoint) bool {
	return bytes.Equal(s.Canonical(), o.Canonical())
}

// Matches reports whether every key of filter is present in s with an equal value.
func (s StatePoint) Matches(filter StatePoint) bool {
	for _, f := range filter.fields {
		v, ok := s.Get(f.Key)
		if !ok || v != f.Value {
			return false
		}
	}
	return true
}

// String returns the state point in insertion order, in the style of a
// Python dict, as it appears in the log.
func (s StatePoint) String() string {
	var b bytes.Buffer
	b.WriteByte('{')
	for i, f := range s.fields {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "'%s': ", f.Key)
		switch v := f.Value.(type) {
		case string:
			fmt.Fprintf(&b, "'%s'", v)
		case bool:
			if v {
				b.WriteString("True")
			} else {
				b.WriteString("False")
			}
		default:
			writeValue(&b, v)
		}
	}
	b.WriteByte('}')
	return b.String()
}

// MarshalJSON writes the state point in canonical form.
func (s StatePoint) MarshalJSON() ([]byte, error) {
	return s.Canonical(), nil
}

// UnmarshalJSON reads a flat JSON object, keeping the order of its keys.
// Integral numbers become int64, other numbers float64.
func (s *StatePoint) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("state point must be a JSON object")
	}
	var fields []Field
	for dec.More() {
		tok, err = dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected an object key, got %v", tok)
		}
		tok, err = dec.Token()
		if err != nil {
			return err
		}
		if _, ok := tok.(json.Delim); ok || tok == nil {
			return fmt.Errorf("key %q: %w: nested or null values", key, ErrBadValue)
		}
		fields = append(fields, Field{Key: key, Value: tok})
	}
	if _, err = dec.Token(); err != nil {
		return err
	}
	sp, err := New(fields...)
	if err != nil {
		return err
	}
	*s = sp
	return nil
}
