// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cell

import (
	"github.com/protoplasm/dynamicpb/internal/errors"
	pref "github.com/protoplasm/dynamicpb/reflect/protoreflect"
)

// Shape identifies which of the three containers a Cell wraps. It is
// derived once from a field descriptor when the Cell is constructed and
// never changes thereafter.
type Shape int8

const (
	// SingularShape is an optional or required non-repeated field, backed
	// by a Slot.
	SingularShape Shape = iota
	// RepeatedShape is a repeated, non-map field, backed by a Sequence.
	RepeatedShape
	// MapShape is a map field, backed by a Collection.
	MapShape
)

func (s Shape) String() string {
	switch s {
	case SingularShape:
		return "singular"
	case RepeatedShape:
		return "repeated"
	case MapShape:
		return "map"
	default:
		return "invalid"
	}
}

// Cell is a single field slot in a dynamic message's field vector: exactly
// one of a Slot, a Sequence, or a Collection, chosen by the field
// descriptor's cardinality and map-ness. It is the tagged union the spec
// calls a field cell; Go expresses the union as a struct with one active
// pointer rather than an interface hierarchy, so that a Cell's shape is a
// plain field a switch can dispatch on instead of a type assertion.
type Cell struct {
	shape Shape
	slot  *Slot
	seq   *Sequence
	coll  *Collection
}

// NewCell returns a zero-valued Cell for fd. Its shape is derived from
// fd.IsMap() and fd.Cardinality(); newMsg is consulted only for
// message-and-group-kinded fields and may be nil otherwise.
func NewCell(fd pref.FieldDescriptor, newMsg MessageFactory) *Cell {
	switch {
	case fd.IsMap():
		return &Cell{shape: MapShape, coll: NewCollection(fd, newMsg)}
	case fd.Cardinality() == pref.Repeated:
		return &Cell{shape: RepeatedShape, seq: NewSequence(fd, newMsg)}
	default:
		return &Cell{shape: SingularShape, slot: NewSlot(fd, newMsg)}
	}
}

// Shape reports which container the Cell wraps.
func (c *Cell) Shape() Shape { return c.shape }

// Slot returns the Cell's Slot. It panics if the Cell is not SingularShape.
func (c *Cell) Slot() *Slot {
	if c.shape != SingularShape {
		panic(errors.New("cell: Slot called on %v cell", c.shape))
	}
	return c.slot
}

// Sequence returns the Cell's Sequence. It panics if the Cell is not
// RepeatedShape.
func (c *Cell) Sequence() *Sequence {
	if c.shape != RepeatedShape {
		panic(errors.New("cell: Sequence called on %v cell", c.shape))
	}
	return c.seq
}

// Collection returns the Cell's Collection. It panics if the Cell is not
// MapShape.
func (c *Cell) Collection() *Collection {
	if c.shape != MapShape {
		panic(errors.New("cell: Collection called on %v cell", c.shape))
	}
	return c.coll
}

// IsEmpty reports whether the cell currently holds no data: an absent
// singular value, a zero-length sequence, or an empty map.
func (c *Cell) IsEmpty() bool {
	switch c.shape {
	case SingularShape:
		return !c.slot.Has()
	case RepeatedShape:
		return c.seq.Len() == 0
	default:
		return c.coll.Len() == 0
	}
}

// Clear empties the cell, retaining its shape and declared type.
func (c *Cell) Clear() {
	switch c.shape {
	case SingularShape:
		c.slot.Clear()
	case RepeatedShape:
		c.seq.Clear()
	default:
		c.coll.Clear()
	}
}

// SetProto3Default installs the proto3 zero value into the cell. It is a
// no-op for repeated and map cells, whose zero value is already "empty".
// For singular cells it is also a no-op for message/group fields (whose
// proto3 default is "unset", not a scalar zero value) and for fields that
// belong to a oneof (installing a present zero value there would make the
// field indistinguishable from one the wire actually set, violating oneof
// exclusivity for an untouched group). Otherwise it delegates to the Slot.
func (c *Cell) SetProto3Default() {
	if c.shape != SingularShape {
		return
	}
	fd := c.slot.fd
	if fd.Kind() == pref.MessageKind || fd.Kind() == pref.GroupKind {
		return
	}
	if fd.ContainingOneof() != nil {
		return
	}
	c.slot.SetProto3Default()
}
