// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cell

import pref "github.com/protoplasm/dynamicpb/reflect/protoreflect"

// Sequence is an ordered, homogeneous list of Values backing a repeated
// field. Insertion order is preserved and is the iteration order.
type Sequence struct {
	fd     pref.FieldDescriptor
	newMsg MessageFactory
	vals   []pref.Value
}

// NewSequence returns an empty Sequence typed by fd.
func NewSequence(fd pref.FieldDescriptor, newMsg MessageFactory) *Sequence {
	return &Sequence{fd: fd, newMsg: newMsg}
}

// Len reports the number of elements.
func (s *Sequence) Len() int { return len(s.vals) }

// Get returns the element at index i. It panics if i is out of range.
func (s *Sequence) Get(i int) pref.Value { return s.vals[i] }

// Set replaces the element at index i. It panics if i is out of range.
func (s *Sequence) Set(i int, v pref.Value) { s.vals[i] = v }

// Append adds v to the end of the sequence.
func (s *Sequence) Append(v pref.Value) { s.vals = append(s.vals, v) }

// AppendNewMessage appends a freshly constructed message element and
// returns it, for building up a repeated message field incrementally. It
// panics if the sequence's declared kind is not message or group.
func (s *Sequence) AppendNewMessage() pref.Message {
	if k := s.fd.Kind(); k != pref.MessageKind && k != pref.GroupKind {
		panic("cell: " + string(s.fd.FullName()) + ": not a message field")
	}
	m := s.newMsg(s.fd.Message())
	s.Append(pref.ValueOfMessage(m))
	return m
}

// Truncate shrinks the sequence to the first n elements.
func (s *Sequence) Truncate(n int) {
	for i := n; i < len(s.vals); i++ {
		s.vals[i] = pref.Value{} // drop references promptly
	}
	s.vals = s.vals[:n]
}

// Clear empties the sequence, retaining its declared type.
func (s *Sequence) Clear() { s.vals = nil }

// Range calls f for every element in order, stopping early if f returns false.
func (s *Sequence) Range(f func(int, pref.Value) bool) {
	for i, v := range s.vals {
		if !f(i, v) {
			return
		}
	}
}
