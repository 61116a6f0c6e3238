// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codec

import "github.com/protoplasm/dynamicpb/internal/wire"

// UnknownField is one raw wire record that did not match any field number in
// the message's descriptor.
type UnknownField struct {
	Number wire.Number
	Type   wire.Type
	Raw    []byte // the tag-and-value bytes, verbatim, for faithful passthrough
}

// UnknownFields accumulates wire records the decoder could not attribute to
// a known field, preserving their encounter order. The encoder re-emits them
// verbatim, in that order, after all known fields.
type UnknownFields struct {
	list []UnknownField
}

// Append records a raw field occurrence.
func (u *UnknownFields) Append(num wire.Number, typ wire.Type, raw []byte) {
	u.list = append(u.list, UnknownField{Number: num, Type: typ, Raw: raw})
}

// Len reports the number of recorded occurrences.
func (u *UnknownFields) Len() int { return len(u.list) }

// Range calls f for every recorded occurrence in encounter order.
func (u *UnknownFields) Range(f func(UnknownField) bool) {
	for _, uf := range u.list {
		if !f(uf) {
			return
		}
	}
}

// Clear discards all recorded occurrences.
func (u *UnknownFields) Clear() { u.list = nil }

// Raw concatenates every recorded record's bytes, in encounter order.
func (u *UnknownFields) Raw() []byte {
	var n int
	for _, uf := range u.list {
		n += len(uf.Raw)
	}
	b := make([]byte, 0, n)
	for _, uf := range u.list {
		b = append(b, uf.Raw...)
	}
	return b
}
