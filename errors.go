/*
 * errors.go, part of gosam.
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
	"errors"
	"fmt"
)

// Error is the interface for errors that all packages in this library implement.
// The Decorate method allows to add and retrieve info from the error, without
// changing its type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string
}

// CError is the common error type of the sam package.
type CError struct {
	msg  string
	deco []string
}

// NewError returns a CError with message msg, decorated with the
// name of the function that produced it.
func NewError(caller, msg string, a ...interface{}) *CError {
	return &CError{msg: fmt.Sprintf(msg, a...), deco: []string{caller}}
}

func (err *CError) Error() string {
	if len(err.deco) == 0 {
		return err.msg
	}
	return fmt.Sprintf("%s: %s", err.deco[0], err.msg)
}

// Decorate will add the dec string to the decoration slice of strings of the error,
// and return the resulting slice. An empty string only returns the current slice.
func (err *CError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

// errDecorate decorates err with the caller's name, if err implements Error.
// Other errors are wrapped.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	var e Error
	if errors.As(err, &e) {
		e.Decorate(caller)
		return err
	}
	return fmt.Errorf("%s: %w", caller, err)
}
