// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package protoreflect defines the descriptor interfaces that the dynamic
// message engine consumes but does not construct. Loading a descriptor from
// a .proto file or a FileDescriptorSet is outside this package's concern;
// callers are expected to hand in descriptors built by some other means
// (a compiled-in registry, a hand-built fixture, or a third-party loader).
package protoreflect

import "fmt"

// Name is the short name of a declaration, e.g. "Widget".
type Name string

// FullName is the dot-separated, fully-qualified name of a declaration,
// e.g. "acme.catalog.Widget".
type FullName string

// Append joins a FullName and a relative Name, e.g.
// FullName("acme.catalog").Append("Widget") == "acme.catalog.Widget".
func (n FullName) Append(s Name) FullName {
	if n == "" {
		return FullName(s)
	}
	return n + "." + FullName(s)
}

// FieldNumber is the field number declared in a .proto file.
type FieldNumber int32

// EnumNumber is the numeric value of an enumerant.
type EnumNumber int32

// Syntax is the protobuf syntax version a message or file was declared with.
type Syntax int8

const (
	Proto2 Syntax = iota + 1
	Proto3
)

func (s Syntax) String() string {
	switch s {
	case Proto2:
		return "proto2"
	case Proto3:
		return "proto3"
	default:
		return fmt.Sprintf("Syntax(%d)", int8(s))
	}
}

// Cardinality determines whether a field is optional, required, or repeated.
type Cardinality int8

const (
	Optional Cardinality = iota + 1
	Required
	Repeated
)

func (c Cardinality) String() string {
	switch c {
	case Optional:
		return "optional"
	case Required:
		return "required"
	case Repeated:
		return "repeated"
	default:
		return fmt.Sprintf("Cardinality(%d)", int8(c))
	}
}

// Kind indicates the basic proto wire kind of a field, mirroring the
// FieldDescriptorProto.Type enumeration of the protobuf spec.
type Kind int8

const (
	BoolKind Kind = iota + 1
	EnumKind
	Int32Kind
	Sint32Kind
	Uint32Kind
	Int64Kind
	Sint64Kind
	Uint64Kind
	Sfixed32Kind
	Fixed32Kind
	FloatKind
	Sfixed64Kind
	Fixed64Kind
	DoubleKind
	StringKind
	BytesKind
	MessageKind
	GroupKind
)

func (k Kind) String() string {
	switch k {
	case BoolKind:
		return "bool"
	case EnumKind:
		return "enum"
	case Int32Kind:
		return "int32"
	case Sint32Kind:
		return "sint32"
	case Uint32Kind:
		return "uint32"
	case Int64Kind:
		return "int64"
	case Sint64Kind:
		return "sint64"
	case Uint64Kind:
		return "uint64"
	case Sfixed32Kind:
		return "sfixed32"
	case Fixed32Kind:
		return "fixed32"
	case FloatKind:
		return "float"
	case Sfixed64Kind:
		return "sfixed64"
	case Fixed64Kind:
		return "fixed64"
	case DoubleKind:
		return "double"
	case StringKind:
		return "string"
	case BytesKind:
		return "bytes"
	case MessageKind:
		return "message"
	case GroupKind:
		return "group"
	default:
		return fmt.Sprintf("Kind(%d)", int8(k))
	}
}

// IsVarint reports whether values of this kind are carried on the wire as
// the varint wire type when unpacked.
func (k Kind) IsVarint() bool {
	switch k {
	case BoolKind, EnumKind, Int32Kind, Sint32Kind, Uint32Kind, Int64Kind, Sint64Kind, Uint64Kind:
		return true
	}
	return false
}

// IsFixed32 reports whether values of this kind use the 32-bit fixed wire type.
func (k Kind) IsFixed32() bool {
	switch k {
	case Sfixed32Kind, Fixed32Kind, FloatKind:
		return true
	}
	return false
}

// IsFixed64 reports whether values of this kind use the 64-bit fixed wire type.
func (k Kind) IsFixed64() bool {
	switch k {
	case Sfixed64Kind, Fixed64Kind, DoubleKind:
		return true
	}
	return false
}

// IsPackable reports whether a repeated field of this kind may legally be
// packed into a single length-delimited record.
func (k Kind) IsPackable() bool {
	switch k {
	case MessageKind, GroupKind, StringKind, BytesKind:
		return false
	default:
		return true
	}
}

// Descriptor is the set of accessors common to every descriptor type this
// package consumes.
type Descriptor interface {
	Name() Name
	FullName() FullName
}

// EnumValueDescriptor describes a single enumerant of an EnumDescriptor.
type EnumValueDescriptor interface {
	Descriptor
	Number() EnumNumber
}

// EnumValueDescriptors is an ordered, numerically-indexed list of enum values.
type EnumValueDescriptors interface {
	Len() int
	Get(i int) EnumValueDescriptor
	ByNumber(EnumNumber) EnumValueDescriptor
}

// EnumDescriptor describes an enum type.
type EnumDescriptor interface {
	Descriptor
	Values() EnumValueDescriptors
}

// OneofDescriptor describes a oneof declaration: a set of fields of its
// parent message of which at most one may be populated at a time.
type OneofDescriptor interface {
	Descriptor
	Index() int
	Fields() FieldDescriptors
}

// FieldDescriptors is an ordered, numerically- and name-indexed list of
// field declarations, in the same order as they appear in the message.
type FieldDescriptors interface {
	Len() int
	Get(i int) FieldDescriptor
	ByNumber(FieldNumber) FieldDescriptor
	ByName(Name) FieldDescriptor
}

// FieldDescriptor describes a single field of a message, whether declared
// directly on the message or as a member of one of its oneofs.
type FieldDescriptor interface {
	Descriptor

	// Number is the field's tag number as it appears on the wire.
	Number() FieldNumber

	// Index is the field's position within the parent message's Fields list.
	Index() int

	// Kind is the field's proto wire kind.
	Kind() Kind

	// Cardinality reports whether the field is singular or repeated.
	// Repeated map fields report Repeated; use IsMap to distinguish a map
	// field from an ordinary repeated field.
	Cardinality() Cardinality

	// IsMap reports whether this field is a map field, i.e. its Kind is
	// MessageKind and the message is a synthetic map-entry message with a
	// "key" field numbered 1 and a "value" field numbered 2.
	IsMap() bool

	// MapKey returns the key field of a synthetic map-entry descriptor.
	// It panics if IsMap is false.
	MapKey() FieldDescriptor

	// MapValue returns the value field of a synthetic map-entry descriptor.
	// It panics if IsMap is false.
	MapValue() FieldDescriptor

	// Message returns the message type of a MessageKind or GroupKind field,
	// or the synthetic map-entry descriptor for a map field. It is nil for
	// any other kind.
	Message() MessageDescriptor

	// Enum returns the enum type of an EnumKind field, nil otherwise.
	Enum() EnumDescriptor

	// ContainingMessage returns the message this field is declared in.
	ContainingMessage() MessageDescriptor

	// ContainingOneof returns the oneof this field belongs to, or nil if
	// the field is not part of a oneof.
	ContainingOneof() OneofDescriptor

	// Syntax reports the syntax of the file this field was declared in.
	Syntax() Syntax

	// Default returns the proto3-zero or proto2-declared default value for
	// a singular scalar field. It is unused for repeated or message fields.
	Default() Value
}

// MessageDescriptor describes a message type.
type MessageDescriptor interface {
	Descriptor
	Syntax() Syntax
	Fields() FieldDescriptors
	Oneofs() OneofDescriptors
}

// OneofDescriptors is an ordered, name-indexed list of a message's oneofs.
type OneofDescriptors interface {
	Len() int
	Get(i int) OneofDescriptor
	ByName(Name) OneofDescriptor
}
