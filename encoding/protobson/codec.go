// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package protobson adapts dynamicpb.Message to the BSON codec interfaces
// used by the MongoDB Go driver, so that dynamic messages can be stored in
// and loaded from a mongo collection directly. Fields are keyed by number
// rather than by name, so a stored document survives a field rename in the
// descriptor.
package protobson

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"

	"go.mongodb.org/mongo-driver/bson/bsoncodec"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
	"go.mongodb.org/mongo-driver/bson/bsontype"

	"github.com/protoplasm/dynamicpb/dynamicpb"
	"github.com/protoplasm/dynamicpb/internal/cell"
	pref "github.com/protoplasm/dynamicpb/reflect/protoreflect"
)

const fieldPrefix = "pb_field_"

var messageType = reflect.TypeOf((*dynamicpb.Message)(nil))

// Codec is a bsoncodec.ValueCodec for *dynamicpb.Message. Register it for
// the concrete message type with a bsoncodec.RegistryBuilder, as both type
// encoder and type decoder.
type Codec struct{}

// NewCodec returns a BSON codec for dynamic protobuf messages. Documents are
// encoded with field numbers as keys, so that stored messages survive field
// renames.
func NewCodec() bsoncodec.ValueCodec { return &Codec{} }

// FieldNumberToElementName returns the BSON document key used to store the
// given field number.
func FieldNumberToElementName(num pref.FieldNumber) string {
	return fieldPrefix + strconv.Itoa(int(num))
}

func (c *Codec) EncodeValue(ectx bsoncodec.EncodeContext, vw bsonrw.ValueWriter, val reflect.Value) error {
	if val.Type() != messageType {
		return bsoncodec.ValueEncoderError{Name: "protobson.EncodeValue", Types: []reflect.Type{messageType}, Received: val}
	}
	msg, _ := val.Interface().(*dynamicpb.Message)
	if msg == nil {
		return vw.WriteNull()
	}
	return writeMessage(vw, msg)
}

func (c *Codec) DecodeValue(dctx bsoncodec.DecodeContext, vr bsonrw.ValueReader, val reflect.Value) error {
	if val.Type() != messageType {
		return bsoncodec.ValueDecoderError{Name: "protobson.DecodeValue", Types: []reflect.Type{messageType}, Received: val}
	}
	if vr.Type() == bsontype.Null {
		return vr.ReadNull()
	}
	msg, _ := val.Interface().(*dynamicpb.Message)
	if msg == nil {
		return fmt.Errorf("protobson: DecodeValue requires a pre-allocated *dynamicpb.Message carrying a descriptor, got nil")
	}
	return readMessage(vr, msg)
}

func writeMessage(vw bsonrw.ValueWriter, msg *dynamicpb.Message) error {
	dw, err := vw.WriteDocument()
	if err != nil {
		return err
	}
	var rangeErr error
	msg.Range(func(fd pref.FieldDescriptor, c *cell.Cell) bool {
		ew, err := dw.WriteDocumentElement(FieldNumberToElementName(fd.Number()))
		if err != nil {
			rangeErr = err
			return false
		}
		if err := encodeCell(ew, fd, c); err != nil {
			rangeErr = err
			return false
		}
		return true
	})
	if rangeErr != nil {
		return rangeErr
	}
	return dw.WriteDocumentEnd()
}

func encodeCell(vw bsonrw.ValueWriter, fd pref.FieldDescriptor, c *cell.Cell) error {
	switch c.Shape() {
	case cell.SingularShape:
		return encodeScalar(vw, fd, c.Slot().Get())
	case cell.RepeatedShape:
		aw, err := vw.WriteArray()
		if err != nil {
			return err
		}
		seq := c.Sequence()
		var rangeErr error
		seq.Range(func(_ int, v pref.Value) bool {
			ew, err := aw.WriteArrayElement()
			if err != nil {
				rangeErr = err
				return false
			}
			if err := encodeScalar(ew, fd, v); err != nil {
				rangeErr = err
				return false
			}
			return true
		})
		if rangeErr != nil {
			return rangeErr
		}
		return aw.WriteArrayEnd()
	default: // map
		dw, err := vw.WriteDocument()
		if err != nil {
			return err
		}
		coll := c.Collection()
		var rangeErr error
		coll.Range(func(k, v pref.Value) bool {
			name := mapKeyToString(fd.MapKey().Kind(), k)
			ew, err := dw.WriteDocumentElement(name)
			if err != nil {
				rangeErr = err
				return false
			}
			if err := encodeScalar(ew, fd.MapValue(), v); err != nil {
				rangeErr = err
				return false
			}
			return true
		})
		if rangeErr != nil {
			return rangeErr
		}
		return dw.WriteDocumentEnd()
	}
}

// encodeScalar writes the single value v, declared with kind fd.Kind(), to
// vw. For a message or group field it recurses through writeMessage.
func encodeScalar(vw bsonrw.ValueWriter, fd pref.FieldDescriptor, v pref.Value) error {
	switch fd.Kind() {
	case pref.BoolKind:
		return vw.WriteBoolean(v.Bool())
	case pref.EnumKind:
		return vw.WriteInt32(int32(v.Enum()))
	case pref.Int32Kind, pref.Sint32Kind, pref.Sfixed32Kind:
		return vw.WriteInt32(int32(v.Int()))
	case pref.Int64Kind, pref.Sint64Kind, pref.Sfixed64Kind:
		return vw.WriteInt64(v.Int())
	case pref.Uint32Kind, pref.Fixed32Kind:
		return vw.WriteInt64(int64(v.Uint()))
	case pref.Uint64Kind, pref.Fixed64Kind:
		if v.Uint() > math.MaxInt64 {
			return fmt.Errorf("protobson: field %v: value %d overflows BSON int64", fd.FullName(), v.Uint())
		}
		return vw.WriteInt64(int64(v.Uint()))
	case pref.FloatKind, pref.DoubleKind:
		return vw.WriteDouble(v.Float())
	case pref.StringKind:
		return vw.WriteString(v.Str())
	case pref.BytesKind:
		return vw.WriteBinary(v.Bytes())
	case pref.MessageKind, pref.GroupKind:
		sub, ok := v.Message().(*dynamicpb.Message)
		if !ok {
			return fmt.Errorf("protobson: field %v: sub-message is not *dynamicpb.Message", fd.FullName())
		}
		return writeMessage(vw, sub)
	default:
		return fmt.Errorf("protobson: field %v: kind %v has no BSON writer", fd.FullName(), fd.Kind())
	}
}

func readMessage(vr bsonrw.ValueReader, msg *dynamicpb.Message) error {
	dr, err := vr.ReadDocument()
	if err != nil {
		return err
	}
	fields := msg.Descriptor().Fields()
	for {
		name, evr, err := dr.ReadElement()
		if err == bsonrw.ErrEOD {
			break
		}
		if err != nil {
			return err
		}
		if !strings.HasPrefix(name, fieldPrefix) {
			if err := evr.Skip(); err != nil {
				return err
			}
			continue
		}
		var fd pref.FieldDescriptor
		if n, err := strconv.Atoi(strings.TrimPrefix(name, fieldPrefix)); err == nil {
			fd = fields.ByNumber(pref.FieldNumber(n))
		}
		if fd == nil {
			if err := evr.Skip(); err != nil {
				return err
			}
			continue
		}
		if err := decodeCell(evr, msg, fd); err != nil {
			return err
		}
	}
	return nil
}

func decodeCell(vr bsonrw.ValueReader, msg *dynamicpb.Message, fd pref.FieldDescriptor) error {
	switch {
	case fd.IsMap():
		dr, err := vr.ReadDocument()
		if err != nil {
			return err
		}
		coll := msg.Collection(fd)
		for {
			name, evr, err := dr.ReadElement()
			if err == bsonrw.ErrEOD {
				break
			}
			if err != nil {
				return err
			}
			key, err := parseMapKey(fd.MapKey().Kind(), name)
			if err != nil {
				return err
			}
			val, err := decodeScalar(evr, fd.MapValue())
			if err != nil {
				return err
			}
			coll.Set(key, val)
		}
		return nil
	case fd.Cardinality() == pref.Repeated:
		ar, err := vr.ReadArray()
		if err != nil {
			return err
		}
		seq := msg.Sequence(fd)
		for {
			evr, err := ar.ReadValue()
			if err == bsonrw.ErrEOA {
				break
			}
			if err != nil {
				return err
			}
			v, err := decodeScalar(evr, fd)
			if err != nil {
				return err
			}
			seq.Append(v)
		}
		return nil
	default:
		v, err := decodeScalar(vr, fd)
		if err != nil {
			return err
		}
		msg.Set(fd, v)
		return nil
	}
}

func decodeScalar(vr bsonrw.ValueReader, fd pref.FieldDescriptor) (pref.Value, error) {
	switch fd.Kind() {
	case pref.BoolKind:
		b, err := vr.ReadBoolean()
		return pref.ValueOfBool(b), err
	case pref.EnumKind:
		n, err := vr.ReadInt32()
		return pref.ValueOfEnum(pref.EnumNumber(n)), err
	case pref.Int32Kind, pref.Sint32Kind, pref.Sfixed32Kind:
		n, err := vr.ReadInt32()
		return pref.ValueOfInt32(n), err
	case pref.Int64Kind, pref.Sint64Kind, pref.Sfixed64Kind:
		n, err := vr.ReadInt64()
		return pref.ValueOfInt64(n), err
	case pref.Uint32Kind, pref.Fixed32Kind:
		n, err := vr.ReadInt64()
		return pref.ValueOfUint32(uint32(n)), err
	case pref.Uint64Kind, pref.Fixed64Kind:
		n, err := vr.ReadInt64()
		return pref.ValueOfUint64(uint64(n)), err
	case pref.FloatKind:
		f, err := vr.ReadDouble()
		return pref.ValueOfFloat32(float32(f)), err
	case pref.DoubleKind:
		f, err := vr.ReadDouble()
		return pref.ValueOfFloat64(f), err
	case pref.StringKind:
		s, err := vr.ReadString()
		return pref.ValueOfString(s), err
	case pref.BytesKind:
		b, _, err := vr.ReadBinary()
		if err != nil {
			return pref.Value{}, err
		}
		return pref.ValueOfBytes(append([]byte(nil), b...)), nil
	case pref.MessageKind, pref.GroupKind:
		sub := dynamicpb.New(fd.Message())
		if err := readMessage(vr, sub); err != nil {
			return pref.Value{}, err
		}
		return pref.ValueOfMessage(sub), nil
	default:
		return pref.Value{}, fmt.Errorf("protobson: field %v: kind %v has no BSON reader", fd.FullName(), fd.Kind())
	}
}

// mapKeyToString renders a map key Value as the BSON document key used to
// store its value, since BSON document keys are always strings regardless
// of the protobuf map key kind.
func mapKeyToString(kind pref.Kind, v pref.Value) string {
	switch kind {
	case pref.BoolKind:
		if v.Bool() {
			return "true"
		}
		return "false"
	case pref.Int32Kind, pref.Sint32Kind, pref.Sfixed32Kind, pref.Int64Kind, pref.Sint64Kind, pref.Sfixed64Kind:
		return strconv.FormatInt(v.Int(), 10)
	case pref.Uint32Kind, pref.Fixed32Kind, pref.Uint64Kind, pref.Fixed64Kind:
		return strconv.FormatUint(v.Uint(), 10)
	case pref.StringKind:
		return v.Str()
	default:
		panic(fmt.Sprintf("protobson: invalid map key kind %v", kind))
	}
}

func parseMapKey(kind pref.Kind, s string) (pref.Value, error) {
	switch kind {
	case pref.BoolKind:
		switch s {
		case "true":
			return pref.ValueOfBool(true), nil
		case "false":
			return pref.ValueOfBool(false), nil
		default:
			return pref.Value{}, fmt.Errorf("protobson: invalid bool map key %q", s)
		}
	case pref.Int32Kind, pref.Sint32Kind, pref.Sfixed32Kind:
		n, err := strconv.ParseInt(s, 10, 32)
		return pref.ValueOfInt32(int32(n)), err
	case pref.Int64Kind, pref.Sint64Kind, pref.Sfixed64Kind:
		n, err := strconv.ParseInt(s, 10, 64)
		return pref.ValueOfInt64(n), err
	case pref.Uint32Kind, pref.Fixed32Kind:
		n, err := strconv.ParseUint(s, 10, 32)
		return pref.ValueOfUint32(uint32(n)), err
	case pref.Uint64Kind, pref.Fixed64Kind:
		n, err := strconv.ParseUint(s, 10, 64)
		return pref.ValueOfUint64(n), err
	case pref.StringKind:
		return pref.ValueOfString(s), nil
	default:
		return pref.Value{}, fmt.Errorf("protobson: invalid map key kind %v", kind)
	}
}
