// Copyright 2018 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package errors

import "testing"

func TestNewPrefixesMessage(t *testing.T) {
	err := New("widget.id: assigning invalid type %T", 1.5)
	want := "dynamicpb: widget.id: assigning invalid type float64"
	if got := err.Error(); got != want {
		t.Errorf("New(...).Error() = %q, want %q", got, want)
	}
}

func TestNewAvoidsDoublePrefixing(t *testing.T) {
	inner := New("inner failure")
	outer := New("wrapping: %v", inner)
	want := "dynamicpb: wrapping: inner failure"
	if got := outer.Error(); got != want {
		t.Errorf("New(...).Error() = %q, want %q", got, want)
	}
}

func TestNotImplemented(t *testing.T) {
	err := NotImplemented("TYPE_GROUP")
	if !IsNotImplemented(err) {
		t.Error("IsNotImplemented(NotImplemented(...)) = false, want true")
	}
	if IsNotImplemented(New("plain failure")) {
		t.Error("IsNotImplemented(New(...)) = true, want false")
	}
	want := "dynamicpb: not implemented: TYPE_GROUP"
	if got := err.Error(); got != want {
		t.Errorf("err.Error() = %q, want %q", got, want)
	}
}
