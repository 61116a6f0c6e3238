// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dynamicpb implements a protocol buffers message whose field
// layout is supplied at run time by a descriptor rather than fixed at
// compile time by generated code. It is the reflective counterpart to a
// generated message: the same wire format, the same oneof and proto3
// default-suppression semantics, but the field set comes from
// protoreflect.MessageDescriptor instead of a Go struct tag.
package dynamicpb

import (
	"github.com/protoplasm/dynamicpb/internal/cell"
	"github.com/protoplasm/dynamicpb/internal/codec"
	"github.com/protoplasm/dynamicpb/internal/errors"
	pref "github.com/protoplasm/dynamicpb/reflect/protoreflect"
)

// Message is a protocol buffers message described entirely by a
// protoreflect.MessageDescriptor. Its field vector is lazily materialized:
// a freshly constructed Message allocates no per-field storage until the
// first mutation or decode.
type Message struct {
	desc    pref.MessageDescriptor
	cells   []*cell.Cell // nil until materialized; then len(cells) == desc.Fields().Len()
	unknown codec.UnknownFields

	size      int
	sizeValid bool
}

// New returns an empty Message of the given descriptor.
func New(desc pref.MessageDescriptor) *Message {
	return &Message{desc: desc}
}

// newSubMessage is the cell.MessageFactory this package hands to the field
// containers it builds, so that internal/cell never needs to import
// dynamicpb (which would cycle back to it).
func newSubMessage(desc pref.MessageDescriptor) pref.Message { return New(desc) }

func (m *Message) checkField(fd pref.FieldDescriptor) {
	if fd.ContainingMessage().FullName() != m.desc.FullName() {
		panic(errors.New("field %v does not belong to message %v", fd.FullName(), m.desc.FullName()))
	}
}

func (m *Message) materialize() {
	if m.cells != nil {
		return
	}
	fields := m.desc.Fields()
	cells := make([]*cell.Cell, fields.Len())
	for i := range cells {
		cells[i] = cell.NewCell(fields.Get(i), newSubMessage)
	}
	m.cells = cells
}

// Descriptor returns the message's type.
func (m *Message) Descriptor() pref.MessageDescriptor { return m.desc }

// PrepareForDecode implements codec.Target: it materializes the field
// vector and, for proto3 messages, sets each eligible singular field to its
// zero value so that fields absent from the wire read back as defaults.
// Cell.SetProto3Default itself skips message/group fields and oneof
// members, which have no present-by-default proto3 semantics.
func (m *Message) PrepareForDecode() {
	already := m.cells != nil
	m.materialize()
	if already || m.desc.Syntax() != pref.Proto3 {
		return
	}
	fields := m.desc.Fields()
	for i, l := 0, fields.Len(); i < l; i++ {
		m.cells[i].SetProto3Default()
	}
	m.invalidateSize()
}

// Cell implements codec.Target: it returns the materialized field cell for
// fd, which must belong to this message's descriptor.
func (m *Message) Cell(fd pref.FieldDescriptor) *cell.Cell {
	m.checkField(fd)
	m.materialize()
	return m.cells[fd.Index()]
}

// ClearOneofSiblings implements codec.Target: it clears every field in fd's
// oneof group other than fd itself.
func (m *Message) ClearOneofSiblings(fd pref.FieldDescriptor) {
	od := fd.ContainingOneof()
	if od == nil {
		return
	}
	m.materialize()
	sibs := od.Fields()
	for i, l := 0, sibs.Len(); i < l; i++ {
		sib := sibs.Get(i)
		if sib.Number() != fd.Number() {
			m.cells[sib.Index()].Clear()
		}
	}
}

// Unknown implements codec.Target: it returns the message's unknown-field
// store.
func (m *Message) Unknown() *codec.UnknownFields { return &m.unknown }

func (m *Message) invalidateSize() { m.sizeValid = false }

// Field returns a read view of fd without forcing materialization: on a
// still-lazy message it synthesizes an empty cell of fd's shape rather than
// allocating the full field vector, so that reading a field of a
// freshly-constructed message is as cheap as reading one after explicit
// materialization returns the same values.
func (m *Message) Field(fd pref.FieldDescriptor) *cell.Cell {
	m.checkField(fd)
	if m.cells == nil {
		return cell.NewCell(fd, newSubMessage)
	}
	return m.cells[fd.Index()]
}

// Has reports whether fd is populated: a present singular value, or a
// non-empty repeated or map field.
func (m *Message) Has(fd pref.FieldDescriptor) bool {
	return !m.Field(fd).IsEmpty()
}

// Get returns fd's current value. For an unset singular scalar or enum
// field this is the proto3/proto2 declared default; for an unset singular
// message field this is an invalid Value (check Has first to distinguish
// "unset" from any possible zero value, which for messages cannot occur).
// Get panics if fd is a repeated or map field; use Sequence or Collection
// for those.
func (m *Message) Get(fd pref.FieldDescriptor) pref.Value {
	return m.Field(fd).Slot().Get()
}

// Set assigns v to the singular field fd, clearing any other member of
// fd's oneof group. It panics if fd is a repeated or map field.
func (m *Message) Set(fd pref.FieldDescriptor, v pref.Value) {
	m.ClearOneofSiblings(fd)
	m.Cell(fd).Slot().Set(v)
	m.invalidateSize()
}

// MutableMessage returns the message stored in fd, installing a freshly
// constructed one first if fd is unset. It clears fd's oneof siblings and
// panics if fd is not a singular message or group field.
func (m *Message) MutableMessage(fd pref.FieldDescriptor) pref.Message {
	m.ClearOneofSiblings(fd)
	m.invalidateSize()
	return m.Cell(fd).Slot().MutableMessage()
}

// Sequence returns the repeated field fd's backing Sequence, materializing
// the field vector if necessary. It panics if fd is not repeated. The
// returned Sequence is mutable. Calling Sequence invalidates the cached
// size; mutations made through the returned Sequence do not, so a
// ComputeSize between the call and the mutation leaves a stale cached size.
func (m *Message) Sequence(fd pref.FieldDescriptor) *cell.Sequence {
	m.invalidateSize()
	return m.Cell(fd).Sequence()
}

// Collection returns the map field fd's backing Collection, materializing
// the field vector if necessary. It panics if fd is not a map field. The
// returned Collection is mutable. Calling Collection invalidates the cached
// size; mutations made through the returned Collection do not, so a
// ComputeSize between the call and the mutation leaves a stale cached size.
func (m *Message) Collection(fd pref.FieldDescriptor) *cell.Collection {
	m.invalidateSize()
	return m.Cell(fd).Collection()
}

// ClearField resets fd to its unset state. It is a no-op on a lazy message,
// since every field already reads as its default.
func (m *Message) ClearField(fd pref.FieldDescriptor) {
	m.checkField(fd)
	if m.cells == nil {
		return
	}
	m.cells[fd.Index()].Clear()
	m.invalidateSize()
}

// Clear resets every field and discards unknown data, returning the
// message to the state New(m.Descriptor()) would produce.
func (m *Message) Clear() {
	m.cells = nil
	m.unknown.Clear()
	m.invalidateSize()
}

// Len reports the number of fields currently populated (set singular
// fields, plus non-empty repeated and map fields).
func (m *Message) Len() int {
	if m.cells == nil {
		return 0
	}
	n := 0
	for _, c := range m.cells {
		if !c.IsEmpty() {
			n++
		}
	}
	return n
}

// Range calls f for every populated field, in descriptor field order,
// stopping early if f returns false. Repeated and map fields are visited
// once each, regardless of element count; use Sequence/Collection to walk
// their elements.
func (m *Message) Range(f func(pref.FieldDescriptor, *cell.Cell) bool) {
	if m.cells == nil {
		return
	}
	fields := m.desc.Fields()
	for i, l := 0, fields.Len(); i < l; i++ {
		c := m.cells[i]
		if c.IsEmpty() {
			continue
		}
		if !f(fields.Get(i), c) {
			return
		}
	}
}

// WhichOneof returns the field of od that is currently set, or nil if none is.
func (m *Message) WhichOneof(od pref.OneofDescriptor) pref.FieldDescriptor {
	fields := od.Fields()
	for i, l := 0, fields.Len(); i < l; i++ {
		fd := fields.Get(i)
		if m.Has(fd) {
			return fd
		}
	}
	return nil
}

// UnknownFields returns the message's unknown-field store for inspection or
// mutation.
func (m *Message) UnknownFields() *codec.UnknownFields { return &m.unknown }

// GetUnknown returns the raw, concatenated bytes of every field the decoder
// could not attribute to a descriptor field.
func (m *Message) GetUnknown() []byte { return m.unknown.Raw() }

// SetUnknown replaces the message's unknown fields with the verbatim bytes
// in b, to be re-emitted on the next encode without reinterpretation.
func (m *Message) SetUnknown(b []byte) {
	m.unknown.Clear()
	if len(b) > 0 {
		m.unknown.Append(0, 0, append([]byte(nil), b...))
	}
	m.invalidateSize()
}

// IsInitialized reports whether every submessage reachable from m — through
// a singular field, an element of a repeated field, or a value in a map
// field — is itself initialized. A dynamic message carries no notion of
// proto2 required-field presence beyond what its descriptor encodes in
// field cardinality, so this call reduces to a purely structural
// recursion.
func (m *Message) IsInitialized() bool {
	if m.cells == nil {
		return true
	}
	fields := m.desc.Fields()
	for i, l := 0, fields.Len(); i < l; i++ {
		fd := fields.Get(i)
		c := m.cells[i]
		switch c.Shape() {
		case cell.SingularShape:
			if fd.Kind() != pref.MessageKind && fd.Kind() != pref.GroupKind {
				continue
			}
			if s := c.Slot(); s.Has() && !s.Get().Message().IsInitialized() {
				return false
			}
		case cell.RepeatedShape:
			if fd.Kind() != pref.MessageKind && fd.Kind() != pref.GroupKind {
				continue
			}
			ok := true
			c.Sequence().Range(func(_ int, v pref.Value) bool {
				ok = v.Message().IsInitialized()
				return ok
			})
			if !ok {
				return false
			}
		case cell.MapShape:
			if fd.MapValue().Kind() != pref.MessageKind && fd.MapValue().Kind() != pref.GroupKind {
				continue
			}
			ok := true
			c.Collection().Range(func(_, v pref.Value) bool {
				ok = v.Message().IsInitialized()
				return ok
			})
			if !ok {
				return false
			}
		}
	}
	return true
}

// MergeFrom parses b as wire-format bytes and merges the result into m,
// following standard protobuf merge semantics.
func (m *Message) MergeFrom(b []byte) error {
	if err := codec.Decode(m, b); err != nil {
		return err
	}
	m.invalidateSize()
	return nil
}

// Unmarshal replaces m's contents with the message encoded in b.
func (m *Message) Unmarshal(b []byte) error {
	m.Clear()
	return m.MergeFrom(b)
}

// ComputeSize computes and caches m's serialized length, returning it.
func (m *Message) ComputeSize() int {
	m.size = codec.Size(m)
	m.sizeValid = true
	return m.size
}

// GetCachedSize returns the size most recently computed by ComputeSize,
// or 0 if it has never been called (or a mutation has invalidated it).
func (m *Message) GetCachedSize() int {
	if !m.sizeValid {
		return 0
	}
	return m.size
}

// Marshal computes m's size and returns its wire-format encoding.
func (m *Message) Marshal() ([]byte, error) {
	m.ComputeSize()
	return codec.Encode(m), nil
}
