// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package codec implements the wire-format decoder, encoder, and sizer: the
// three components that move a dynamic message between a byte stream and
// its in-memory field cells. It knows how to walk a descriptor and dispatch
// on field shape and kind; it does not know how field cells are stored in
// memory beyond the contract in internal/cell, and it does not know how a
// dynamic message is constructed beyond the small Target interface below.
package codec

import (
	"github.com/protoplasm/dynamicpb/internal/cell"
	pref "github.com/protoplasm/dynamicpb/reflect/protoreflect"
)

// Target is the capability set the codec needs from a dynamic message in
// order to decode into it, encode it, or compute its size. dynamicpb.Message
// is the only implementation in this module; the interface exists so that
// package codec, which sits below dynamicpb in the dependency graph, never
// imports it.
type Target interface {
	// Descriptor returns the message type being decoded or encoded.
	Descriptor() pref.MessageDescriptor

	// PrepareForDecode materializes the field vector and, for proto3
	// messages, sets each singular scalar and enum field outside a oneof to
	// its type's zero value (via cell.Cell.SetProto3Default) so that fields
	// absent from the wire read back as proto3 defaults. It is a no-op if
	// the vector is already materialized.
	PrepareForDecode()

	// Cell returns the field cell for fd, materializing the field vector
	// first if necessary. fd must belong to this message's descriptor.
	Cell(fd pref.FieldDescriptor) *cell.Cell

	// ClearOneofSiblings clears every field cell in fd's oneof group other
	// than fd itself. It is a no-op if fd is not part of a oneof.
	ClearOneofSiblings(fd pref.FieldDescriptor)

	// Unknown returns the message's unknown-field store.
	Unknown() *UnknownFields
}

// AsTarget downcasts a polymorphic sub-message value to the Target
// capability set the codec needs to recurse into it. Every message value
// stored in a Value Box in this module is constructed by dynamicpb.New and
// therefore satisfies Target; a value that does not is a programming error
// the spec's external-interfaces section never anticipates.
func AsTarget(m pref.Message) Target {
	t, ok := m.(Target)
	if !ok {
		panic("codec: message value does not implement codec.Target")
	}
	return t
}
