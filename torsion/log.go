/*
 * log.go, part of dgconf.
 *
 * Copyright 2026 The dgconf Authors
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

package torsion

import "go.uber.org/zap"

var logger = zap.NewNop()

//SetLogger sets the logger used by the package. A nil logger silences it.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

//Error is the error type for the package. Decorate adds the name of the callers
//as the error goes up the stack.
type Error struct {
	msg   string
	deco  []string
	cause error
}

func newError(msg, caller string, cause error) *Error {
	return &Error{msg: msg, deco: []string{caller}, cause: cause}
}

//Error returns a string with an error message.
func (err *Error) Error() string {
	if err.cause != nil {
		return err.msg + ": " + err.cause.Error()
	}
	return err.msg
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err *Error) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//Critical always returns true: a table that can't be read is useless.
func (err *Error) Critical() bool { return true }

func (err *Error) Unwrap() error { return err.cause }
