// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package errors implements the error taxonomy shared by the wire codec and
// the dynamic message engine: wire errors propagated from malformed input,
// "not implemented" signals for constructs this revision deliberately
// rejects (group fields), and a New helper for building the
// assertion-style panics that mark programming errors.
package errors

import "fmt"

// New formats a string according to the format specifier and arguments and
// returns an error with a "dynamicpb: " prefix. It is used both for returned
// errors and for the panics that mark programming errors (an invariant the
// caller, not the wire, violated).
func New(f string, x ...interface{}) error {
	for i := range x {
		if e, ok := x[i].(*prefixError); ok {
			x[i] = e.s // avoid doubling the prefix when chaining
		}
	}
	return &prefixError{s: fmt.Sprintf(f, x...)}
}

type prefixError struct{ s string }

func (e *prefixError) Error() string { return "dynamicpb: " + e.s }

// notImplementedError marks a deliberately unimplemented wire construct
// (group fields) as distinct from a malformed-input error. Map fields do not
// produce it: the codec skips them on decode and omits them on encode.
type notImplementedError string

func (e notImplementedError) Error() string     { return "dynamicpb: not implemented: " + string(e) }
func (notImplementedError) NotImplemented() bool { return true }

// NotImplemented constructs an error for a deliberately unsupported wire
// construct. Use IsNotImplemented to distinguish it from a wire error.
func NotImplemented(what string) error { return notImplementedError(what) }

// IsNotImplemented reports whether err was produced by NotImplemented.
func IsNotImplemented(err error) bool {
	e, ok := err.(interface{ NotImplemented() bool })
	return ok && e.NotImplemented()
}
