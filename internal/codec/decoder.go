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

// Decode parses b as a wire-format message and merges it into t, following
// standard protobuf merge semantics: singular scalar and enum fields are
// overwritten, singular message fields are recursively merged, and repeated
// fields are appended to.
func Decode(t Target, b []byte) error {
	return mergeInto(t, NewInput(b))
}

func mergeInto(t Target, in *Input) error {
	t.PrepareForDecode()
	fields := t.Descriptor().Fields()

	for !in.Eof() {
		num, typ, err := in.ConsumeTag()
		if err != nil {
			return err
		}
		fd := fields.ByNumber(pref.FieldNumber(num))
		if fd == nil {
			raw, err := in.SkipField(typ)
			if err != nil {
				return err
			}
			full := wire.AppendTag(nil, num, typ)
			full = append(full, raw...)
			t.Unknown().Append(num, typ, full)
			continue
		}
		if typ == wire.StartGroupType || typ == wire.EndGroupType {
			return errors.NotImplemented("group fields (TYPE_GROUP)")
		}
		if err := mergeField(t, in, fd, typ); err != nil {
			return err
		}
	}
	return nil
}

func mergeField(t Target, in *Input, fd pref.FieldDescriptor, typ wire.Type) error {
	c := t.Cell(fd)
	switch c.Shape() {
	case cell.SingularShape:
		return mergeSingular(t, in, fd, typ)
	case cell.RepeatedShape:
		return mergeRepeated(t, in, fd, typ)
	default: // map
		// Map-field wire decoding is not implemented in this revision; the
		// entry is skipped and discarded, not parsed and not recorded as an
		// unknown field.
		_, err := in.SkipField(typ)
		return err
	}
}

func mergeSingular(t Target, in *Input, fd pref.FieldDescriptor, typ wire.Type) error {
	t.ClearOneofSiblings(fd)

	if k := fd.Kind(); k == pref.MessageKind || k == pref.GroupKind {
		sub, err := in.ReadBytes()
		if err != nil {
			return err
		}
		m := t.Cell(fd).Slot().MutableMessage()
		return mergeSubmessage(in, m, sub)
	}

	if want := unpackedWireType(fd.Kind()); typ != want {
		return errors.New("field %v: unexpected wire type %d, want %d", fd.FullName(), typ, want)
	}
	v, err := readScalar(in, fd, typ)
	if err != nil {
		return err
	}
	t.Cell(fd).Slot().Set(v)
	return nil
}

func mergeRepeated(t Target, in *Input, fd pref.FieldDescriptor, typ wire.Type) error {
	k := fd.Kind()
	seq := t.Cell(fd).Sequence()

	switch k {
	case pref.StringKind, pref.BytesKind:
		if typ != wire.BytesType {
			return errors.New("field %v: unexpected wire type %d", fd.FullName(), typ)
		}
		v, err := readScalar(in, fd, typ)
		if err != nil {
			return err
		}
		seq.Append(v)
		return nil
	case pref.MessageKind, pref.GroupKind:
		sub, err := in.ReadBytes()
		if err != nil {
			return err
		}
		m := seq.AppendNewMessage()
		return mergeSubmessage(in, m, sub)
	}

	// Scalar/enum repeated field: accept either the packed (length-delimited)
	// or unpacked (native) wire type on input, regardless of how the field
	// is declared, per the wire format's packed-acceptance rule.
	if typ == wire.BytesType {
		packed, err := in.ReadBytes()
		if err != nil {
			return err
		}
		return unpackInto(seq, fd, packed)
	}
	if typ != unpackedWireType(k) {
		return errors.New("field %v: unexpected wire type %d", fd.FullName(), typ)
	}
	v, err := readScalar(in, fd, typ)
	if err != nil {
		return err
	}
	seq.Append(v)
	return nil
}

// unpackInto parses a packed, length-delimited record of scalar/enum
// elements and appends each to seq.
func unpackInto(seq *cell.Sequence, fd pref.FieldDescriptor, packed []byte) error {
	sub := NewInput(packed)
	wt := unpackedWireType(fd.Kind())
	for !sub.Eof() {
		v, err := readScalar(sub, fd, wt)
		if err != nil {
			return err
		}
		seq.Append(v)
	}
	return nil
}

func mergeSubmessage(in *Input, m pref.Message, b []byte) error {
	if err := in.IncrRecursion(); err != nil {
		return err
	}
	defer in.DecrRecursion()
	return mergeInto(AsTarget(m), in.sub(b))
}

// readScalar reads one value of fd's kind from the wire type typ, which
// must already agree with fd's unpacked wire type (the caller has verified
// this, except for Message/Group which are handled separately).
func readScalar(in *Input, fd pref.FieldDescriptor, typ wire.Type) (pref.Value, error) {
	switch fd.Kind() {
	case pref.BoolKind:
		v, err := in.ReadVarint()
		return pref.ValueOfBool(v != 0), err
	case pref.EnumKind:
		v, err := in.ReadVarint()
		return pref.ValueOfEnum(pref.EnumNumber(int32(v))), err
	case pref.Int32Kind:
		v, err := in.ReadVarint()
		return pref.ValueOfInt32(int32(v)), err
	case pref.Sint32Kind:
		v, err := in.ReadVarint()
		return pref.ValueOfInt32(wire.DecodeZigZag32(v)), err
	case pref.Uint32Kind:
		v, err := in.ReadVarint()
		return pref.ValueOfUint32(uint32(v)), err
	case pref.Int64Kind:
		v, err := in.ReadVarint()
		return pref.ValueOfInt64(int64(v)), err
	case pref.Sint64Kind:
		v, err := in.ReadVarint()
		return pref.ValueOfInt64(wire.DecodeZigZag64(v)), err
	case pref.Uint64Kind:
		v, err := in.ReadVarint()
		return pref.ValueOfUint64(v), err
	case pref.Sfixed32Kind:
		v, err := in.ReadFixed32()
		return pref.ValueOfInt32(int32(v)), err
	case pref.Fixed32Kind:
		v, err := in.ReadFixed32()
		return pref.ValueOfUint32(v), err
	case pref.FloatKind:
		v, err := in.ReadFixed32()
		return pref.ValueOfFloat32(math.Float32frombits(v)), err
	case pref.Sfixed64Kind:
		v, err := in.ReadFixed64()
		return pref.ValueOfInt64(int64(v)), err
	case pref.Fixed64Kind:
		v, err := in.ReadFixed64()
		return pref.ValueOfUint64(v), err
	case pref.DoubleKind:
		v, err := in.ReadFixed64()
		return pref.ValueOfFloat64(math.Float64frombits(v)), err
	case pref.StringKind:
		v, err := in.ReadString()
		return pref.ValueOfString(v), err
	case pref.BytesKind:
		v, err := in.ReadBytes()
		if err != nil {
			return pref.Value{}, err
		}
		return pref.ValueOfBytes(append([]byte(nil), v...)), nil
	default:
		panic(errors.New("field %v: kind %v has no scalar reader", fd.FullName(), fd.Kind()))
	}
}

// unpackedWireType returns the wire type k uses when not packed.
func unpackedWireType(k pref.Kind) wire.Type {
	switch {
	case k.IsVarint():
		return wire.VarintType
	case k.IsFixed32():
		return wire.Fixed32Type
	case k.IsFixed64():
		return wire.Fixed64Type
	default:
		return wire.BytesType
	}
}
