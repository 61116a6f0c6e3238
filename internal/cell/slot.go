// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cell implements the three field-value containers a dynamic
// message's field vector is built from: Slot for a singular field, Sequence
// for a repeated field, and Collection for a map field, unified behind Cell.
// None of these types know how to reach the wire or a descriptor registry;
// they are pure in-memory containers typed by a field descriptor and, for
// message-valued fields, a factory that knows how to instantiate the
// message type the descriptor names.
package cell

import (
	"github.com/protoplasm/dynamicpb/internal/errors"
	pref "github.com/protoplasm/dynamicpb/reflect/protoreflect"
)

// MessageFactory constructs a fresh, empty message of the given descriptor.
// It is supplied by package dynamicpb so that cell, which sits below
// dynamicpb in the dependency graph, never needs to know how messages are
// constructed.
type MessageFactory func(pref.MessageDescriptor) pref.Message

// Slot holds zero-or-one Value for a singular field, typed by the field's
// declared kind. A non-empty Slot's Value always agrees with that kind.
type Slot struct {
	fd      pref.FieldDescriptor
	newMsg  MessageFactory
	val     pref.Value
	present bool
}

// NewSlot returns an empty Slot typed by fd. newMsg may be nil for
// non-message fields.
func NewSlot(fd pref.FieldDescriptor, newMsg MessageFactory) *Slot {
	return &Slot{fd: fd, newMsg: newMsg}
}

// Has reports whether the slot currently holds a value.
func (s *Slot) Has() bool { return s.present }

// Get returns the slot's value, or the field's declared default if empty.
// For message fields an empty slot returns an invalid Value; callers must
// check Has first if they need to distinguish "unset" from "set to a
// zero-valued message" (the latter cannot occur, since messages are always
// non-zero once set).
func (s *Slot) Get() pref.Value {
	if s.present {
		return s.val
	}
	if s.fd.Kind() == pref.MessageKind || s.fd.Kind() == pref.GroupKind {
		return pref.Value{}
	}
	return s.fd.Default()
}

// Set stores v in the slot. The caller is responsible for having already
// verified that v agrees with the slot's declared kind.
func (s *Slot) Set(v pref.Value) {
	s.val = v
	s.present = true
}

// Clear empties the slot.
func (s *Slot) Clear() {
	s.val = pref.Value{}
	s.present = false
}

// SetProto3Default replaces the slot's contents with the proto3 zero value
// for its declared type. It panics for message and group fields, which have
// no scalar zero value and are left unset by proto3 default materialization.
func (s *Slot) SetProto3Default() {
	k := s.fd.Kind()
	if k == pref.MessageKind || k == pref.GroupKind {
		panic(errors.New("%v: message fields have no proto3 default value", s.fd.FullName()))
	}
	s.Set(pref.ZeroValue(s.fd))
}

// MutableMessage returns the message stored in the slot, first installing a
// freshly constructed one if the slot is empty. It panics if the field is
// not message- or group-kinded.
func (s *Slot) MutableMessage() pref.Message {
	k := s.fd.Kind()
	if k != pref.MessageKind && k != pref.GroupKind {
		panic(errors.New("%v: not a message field", s.fd.FullName()))
	}
	if s.present {
		return s.val.Message()
	}
	m := s.newMsg(s.fd.Message())
	s.Set(pref.ValueOfMessage(m))
	return m
}
