// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protoreflect

import (
	"fmt"
	"math"
)

// Value is a narrow, tagged union capable of representing exactly one
// protobuf scalar, string, bytes, enum, or message value. It is the single
// waist through which every field value crosses the reflection boundary:
// decoders produce Values, encoders consume them, and the field containers
// in package cell store nothing else.
//
// The zero Value is invalid; use IsValid to test for it.
type Value struct {
	typ typeTag
	num uint64  // bool, int32/64, uint32/64, float32/64 (bit pattern), enum
	str string  // string
	bin []byte  // bytes
	msg Message // message
}

type typeTag uint8

const (
	tagInvalid typeTag = iota
	tagBool
	tagInt32
	tagInt64
	tagUint32
	tagUint64
	tagFloat32
	tagFloat64
	tagString
	tagBytes
	tagEnum
	tagMessage
)

// IsValid reports whether v holds a value (as opposed to being the zero Value).
func (v Value) IsValid() bool { return v.typ != tagInvalid }

// ValueOfBool constructs a Value holding a bool.
func ValueOfBool(b bool) Value {
	n := uint64(0)
	if b {
		n = 1
	}
	return Value{typ: tagBool, num: n}
}

// ValueOfInt32 constructs a Value holding an int32 (used for int32, sint32,
// and sfixed32 kinds).
func ValueOfInt32(n int32) Value { return Value{typ: tagInt32, num: uint64(uint32(n))} }

// ValueOfInt64 constructs a Value holding an int64.
func ValueOfInt64(n int64) Value { return Value{typ: tagInt64, num: uint64(n)} }

// ValueOfUint32 constructs a Value holding a uint32.
func ValueOfUint32(n uint32) Value { return Value{typ: tagUint32, num: uint64(n)} }

// ValueOfUint64 constructs a Value holding a uint64.
func ValueOfUint64(n uint64) Value { return Value{typ: tagUint64, num: n} }

// ValueOfFloat32 constructs a Value holding a float32.
func ValueOfFloat32(f float32) Value {
	return Value{typ: tagFloat32, num: uint64(math.Float32bits(f))}
}

// ValueOfFloat64 constructs a Value holding a float64.
func ValueOfFloat64(f float64) Value {
	return Value{typ: tagFloat64, num: math.Float64bits(f)}
}

// ValueOfString constructs a Value holding a string.
func ValueOfString(s string) Value { return Value{typ: tagString, str: s} }

// ValueOfBytes constructs a Value holding a byte slice. The slice is not
// copied; callers must not mutate it after handing it to ValueOfBytes.
func ValueOfBytes(b []byte) Value { return Value{typ: tagBytes, bin: b} }

// ValueOfEnum constructs a Value holding an enum's numeric value.
func ValueOfEnum(n EnumNumber) Value { return Value{typ: tagEnum, num: uint64(uint32(n))} }

// ValueOfMessage constructs a Value holding an owned sub-message.
func ValueOfMessage(m Message) Value { return Value{typ: tagMessage, msg: m} }

func (v Value) typeMismatch(want string) {
	panic(fmt.Sprintf("protoreflect: value has type %v, not %s", v.typ, want))
}

// Bool returns the bool held by v. It panics if v does not hold a bool.
func (v Value) Bool() bool {
	if v.typ != tagBool {
		v.typeMismatch("bool")
	}
	return v.num != 0
}

// Int returns the signed integer held by v, sign-extended from whichever of
// int32/int64 it was constructed with. It panics for any other tag.
func (v Value) Int() int64 {
	switch v.typ {
	case tagInt32:
		return int64(int32(uint32(v.num)))
	case tagInt64:
		return int64(v.num)
	}
	v.typeMismatch("int32 or int64")
	return 0
}

// Uint returns the unsigned integer held by v. It panics for any other tag.
func (v Value) Uint() uint64 {
	switch v.typ {
	case tagUint32:
		return uint64(uint32(v.num))
	case tagUint64:
		return v.num
	}
	v.typeMismatch("uint32 or uint64")
	return 0
}

// Float returns the floating point value held by v. It panics for any other tag.
func (v Value) Float() float64 {
	switch v.typ {
	case tagFloat32:
		return float64(math.Float32frombits(uint32(v.num)))
	case tagFloat64:
		return math.Float64frombits(v.num)
	}
	v.typeMismatch("float32 or float64")
	return 0
}

// Str returns the string held by v. It panics if v does not hold a string.
//
// Named Str rather than String to keep fmt.Stringer out of Value's method
// set; debug output should go through Interface().
func (v Value) Str() string {
	if v.typ != tagString {
		v.typeMismatch("string")
	}
	return v.str
}

// Bytes returns the byte slice held by v. It panics if v does not hold bytes.
func (v Value) Bytes() []byte {
	if v.typ != tagBytes {
		v.typeMismatch("bytes")
	}
	return v.bin
}

// Enum returns the enum number held by v. It panics if v does not hold an enum.
func (v Value) Enum() EnumNumber {
	if v.typ != tagEnum {
		v.typeMismatch("enum")
	}
	return EnumNumber(int32(uint32(v.num)))
}

// Message returns the sub-message held by v. It panics if v does not hold a message.
func (v Value) Message() Message {
	if v.typ != tagMessage {
		v.typeMismatch("message")
	}
	return v.msg
}

// Interface unwraps v into a plain Go value: bool, int32, int64, uint32,
// uint64, float32, float64, string, []byte, EnumNumber, or Message.
func (v Value) Interface() interface{} {
	switch v.typ {
	case tagBool:
		return v.Bool()
	case tagInt32:
		return int32(uint32(v.num))
	case tagInt64:
		return v.Int()
	case tagUint32:
		return uint32(v.num)
	case tagUint64:
		return v.Uint()
	case tagFloat32:
		return math.Float32frombits(uint32(v.num))
	case tagFloat64:
		return v.Float()
	case tagString:
		return v.str
	case tagBytes:
		return v.bin
	case tagEnum:
		return v.Enum()
	case tagMessage:
		return v.msg
	default:
		return nil
	}
}

// IsNonZero reports whether v is distinguishable from the proto3 default
// value for a field of the given kind: the test used to decide whether a
// singular field is emitted on the wire at all. A set message is always
// non-zero.
func (v Value) IsNonZero(k Kind) bool {
	switch k {
	case BoolKind:
		return v.Bool()
	case EnumKind:
		return v.Enum() != 0
	case Int32Kind, Sint32Kind, Sfixed32Kind, Int64Kind, Sint64Kind, Sfixed64Kind:
		return v.Int() != 0
	case Uint32Kind, Fixed32Kind, Uint64Kind, Fixed64Kind:
		return v.Uint() != 0
	case FloatKind, DoubleKind:
		return v.Float() != 0 || math.Signbit(v.Float())
	case StringKind:
		return v.Str() != ""
	case BytesKind:
		return len(v.Bytes()) > 0
	case MessageKind, GroupKind:
		return true
	default:
		return true
	}
}

// ZeroValue returns the proto3 default Value for a singular scalar or enum
// field described by fd. It panics if fd is a message or group field, which
// have no scalar zero value.
func ZeroValue(fd FieldDescriptor) Value {
	switch k := fd.Kind(); k {
	case BoolKind:
		return ValueOfBool(false)
	case EnumKind:
		return ValueOfEnum(0)
	case Int32Kind, Sint32Kind, Sfixed32Kind:
		return ValueOfInt32(0)
	case Int64Kind, Sint64Kind, Sfixed64Kind:
		return ValueOfInt64(0)
	case Uint32Kind, Fixed32Kind:
		return ValueOfUint32(0)
	case Uint64Kind, Fixed64Kind:
		return ValueOfUint64(0)
	case FloatKind:
		return ValueOfFloat32(0)
	case DoubleKind:
		return ValueOfFloat64(0)
	case StringKind:
		return ValueOfString("")
	case BytesKind:
		return ValueOfBytes(nil)
	default:
		panic(fmt.Sprintf("protoreflect: kind %v has no scalar zero value", k))
	}
}

// Message is the minimal capability set a polymorphic sub-message value must
// support to participate in the engine: descriptor lookup and initialization
// checking. dynamicpb.Message is the primary implementation, but any type
// satisfying this interface may be stored inside a Value.
type Message interface {
	Descriptor() MessageDescriptor
	IsInitialized() bool
}
