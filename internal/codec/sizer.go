// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codec

import (
	"github.com/protoplasm/dynamicpb/internal/cell"
	"github.com/protoplasm/dynamicpb/internal/errors"
	"github.com/protoplasm/dynamicpb/internal/wire"
	pref "github.com/protoplasm/dynamicpb/reflect/protoreflect"
)

// Size computes t's serialized length without mutating any cached-size
// state. Encode does not read a cached size: it calls Size itself for t and
// again for every submessage it writes.
func Size(t Target) int {
	n := 0
	fields := t.Descriptor().Fields()
	for i, l := 0, fields.Len(); i < l; i++ {
		fd := fields.Get(i)
		c := t.Cell(fd)
		switch c.Shape() {
		case cell.SingularShape:
			n += sizeSingular(fd, c.Slot())
		case cell.RepeatedShape:
			n += sizeRepeated(fd, c.Sequence())
		default:
			// Map-field wire encoding is not implemented in this revision.
		}
	}
	t.Unknown().Range(func(uf UnknownField) bool {
		n += len(uf.Raw)
		return true
	})
	return n
}

func sizeSingular(fd pref.FieldDescriptor, s *cell.Slot) int {
	if !s.Has() {
		return 0
	}
	v := s.Get()
	if !v.IsNonZero(fd.Kind()) {
		return 0
	}
	return wire.SizeTag(wire.Number(fd.Number())) + sizeValue(fd, v)
}

func sizeRepeated(fd pref.FieldDescriptor, seq *cell.Sequence) int {
	n := 0
	tagSize := wire.SizeTag(wire.Number(fd.Number()))
	seq.Range(func(_ int, v pref.Value) bool {
		n += tagSize + sizeValue(fd, v)
		return true
	})
	return n
}

// sizeValue returns the size of v's payload only, excluding its tag.
func sizeValue(fd pref.FieldDescriptor, v pref.Value) int {
	switch fd.Kind() {
	case pref.BoolKind:
		return 1
	case pref.EnumKind:
		return wire.SizeVarint(uint64(uint32(v.Enum())))
	case pref.Int32Kind, pref.Int64Kind:
		return wire.SizeVarint(uint64(v.Int()))
	case pref.Sint32Kind:
		return wire.SizeVarint(wire.EncodeZigZag32(int32(v.Int())))
	case pref.Sint64Kind:
		return wire.SizeVarint(wire.EncodeZigZag64(v.Int()))
	case pref.Uint32Kind, pref.Uint64Kind:
		return wire.SizeVarint(v.Uint())
	case pref.Sfixed32Kind, pref.Fixed32Kind, pref.FloatKind:
		return 4
	case pref.Sfixed64Kind, pref.Fixed64Kind, pref.DoubleKind:
		return 8
	case pref.StringKind:
		return wire.SizeBytes(len(v.Str()))
	case pref.BytesKind:
		return wire.SizeBytes(len(v.Bytes()))
	case pref.MessageKind, pref.GroupKind:
		sub := AsTarget(v.Message())
		size := Size(sub)
		return wire.SizeBytes(size)
	default:
		panic(errors.New("field %v: kind %v has no size formula", fd.FullName(), fd.Kind()))
	}
}
