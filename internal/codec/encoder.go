// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codec

import (
	"math"

	"github.com/protoplasm/dynamicpb/internal/cell"
	"github.com/protoplasm/dynamicpb/internal/errors"
	"github.com/protoplasm/dynamicpb/internal/wire"
	pref "github.com/protoplasm/dynamicpb/reflect/protoreflect"
)

// Encode serializes t in descriptor-field order, omitting proto3-default
// singular values, and returns the result. Repeated scalar fields are
// always emitted unpacked, regardless of how they were decoded or how the
// descriptor marks them.
func Encode(t Target) []byte {
	out := NewOutput(Size(t))
	encodeInto(out, t)
	return out.Bytes()
}

func encodeInto(out *Output, t Target) {
	fields := t.Descriptor().Fields()
	for i, l := 0, fields.Len(); i < l; i++ {
		fd := fields.Get(i)
		c := t.Cell(fd)
		switch c.Shape() {
		case cell.SingularShape:
			encodeSingular(out, fd, c.Slot())
		case cell.RepeatedShape:
			encodeRepeated(out, fd, c.Sequence())
		default:
			// Map-field wire encoding is not implemented in this revision.
		}
	}
	t.Unknown().Range(func(uf UnknownField) bool {
		out.raw(uf.Raw)
		return true
	})
}

func encodeSingular(out *Output, fd pref.FieldDescriptor, s *cell.Slot) {
	if !s.Has() {
		return
	}
	v := s.Get()
	if !v.IsNonZero(fd.Kind()) {
		return
	}
	out.tag(wire.Number(fd.Number()), unpackedWireType(fd.Kind()))
	encodeValue(out, fd, v)
}

func encodeRepeated(out *Output, fd pref.FieldDescriptor, seq *cell.Sequence) {
	num := wire.Number(fd.Number())
	typ := unpackedWireType(fd.Kind())
	seq.Range(func(_ int, v pref.Value) bool {
		out.tag(num, typ)
		encodeValue(out, fd, v)
		return true
	})
}

func encodeValue(out *Output, fd pref.FieldDescriptor, v pref.Value) {
	switch fd.Kind() {
	case pref.BoolKind:
		out.varint(boolVarint(v.Bool()))
	case pref.EnumKind:
		out.varint(uint64(uint32(v.Enum())))
	case pref.Int32Kind, pref.Int64Kind:
		out.varint(uint64(v.Int()))
	case pref.Sint32Kind:
		out.varint(wire.EncodeZigZag32(int32(v.Int())))
	case pref.Sint64Kind:
		out.varint(wire.EncodeZigZag64(v.Int()))
	case pref.Uint32Kind, pref.Uint64Kind:
		out.varint(v.Uint())
	case pref.Sfixed32Kind:
		out.fixed32(uint32(v.Int()))
	case pref.Fixed32Kind:
		out.fixed32(uint32(v.Uint()))
	case pref.FloatKind:
		out.fixed32(math.Float32bits(float32(v.Float())))
	case pref.Sfixed64Kind:
		out.fixed64(uint64(v.Int()))
	case pref.Fixed64Kind:
		out.fixed64(v.Uint())
	case pref.DoubleKind:
		out.fixed64(math.Float64bits(v.Float()))
	case pref.StringKind:
		out.bytes([]byte(v.Str()))
	case pref.BytesKind:
		out.bytes(v.Bytes())
	case pref.MessageKind, pref.GroupKind:
		sub := AsTarget(v.Message())
		out.bytes(Encode(sub))
	default:
		panic(errors.New("field %v: kind %v has no wire writer", fd.FullName(), fd.Kind()))
	}
}

func boolVarint(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
