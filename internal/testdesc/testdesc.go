// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testdesc provides hand-built protoreflect descriptor fixtures for
// use in tests, without depending on any .proto compiler or descriptor
// registry. Building descriptors from their wire representation is outside
// this module's scope; tests simply need some descriptor to exercise the
// engine against, and these literal structs are the most direct way to get
// one.
package testdesc

import pref "github.com/protoplasm/dynamicpb/reflect/protoreflect"

// Message describes a message by literal field list. It implements
// pref.MessageDescriptor directly; there is no intermediate file or
// registry, matching the scope of the engine under test.
type Message struct {
	FullName_ pref.FullName
	Syntax_   pref.Syntax
	Fields_   *FieldList
	Oneofs_   *OneofList
}

func (m *Message) Name() pref.Name         { return lastComponent(m.FullName_) }
func (m *Message) FullName() pref.FullName { return m.FullName_ }
func (m *Message) Syntax() pref.Syntax     { return m.Syntax_ }
func (m *Message) Fields() pref.FieldDescriptors {
	if m.Fields_ == nil {
		return &FieldList{}
	}
	return m.Fields_
}
func (m *Message) Oneofs() pref.OneofDescriptors {
	if m.Oneofs_ == nil {
		return &OneofList{}
	}
	return m.Oneofs_
}

func lastComponent(fn pref.FullName) pref.Name {
	s := string(fn)
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return pref.Name(s[i+1:])
		}
	}
	return pref.Name(s)
}

// Field is a literal FieldDescriptor.
type Field struct {
	Name_        pref.Name
	Number_      pref.FieldNumber
	Index_       int
	Kind_        pref.Kind
	Cardinality_ pref.Cardinality
	Parent       *Message
	Oneof        *Oneof
	MapEntry     *Message // non-nil iff this field is a map field
	MessageType  pref.MessageDescriptor
	EnumType     pref.EnumDescriptor
	Default_     pref.Value
}

func (f *Field) Name() pref.Name         { return f.Name_ }
func (f *Field) FullName() pref.FullName { return f.Parent.FullName_.Append(f.Name_) }
func (f *Field) Number() pref.FieldNumber { return f.Number_ }
func (f *Field) Index() int               { return f.Index_ }
func (f *Field) Kind() pref.Kind          { return f.Kind_ }
func (f *Field) Cardinality() pref.Cardinality {
	if f.MapEntry != nil {
		return pref.Repeated
	}
	return f.Cardinality_
}
func (f *Field) IsMap() bool { return f.MapEntry != nil }
func (f *Field) MapKey() pref.FieldDescriptor {
	return f.MapEntry.Fields_.ByNumber(1)
}
func (f *Field) MapValue() pref.FieldDescriptor {
	return f.MapEntry.Fields_.ByNumber(2)
}
func (f *Field) Message() pref.MessageDescriptor {
	if f.MapEntry != nil {
		return f.MapEntry
	}
	return f.MessageType
}
func (f *Field) Enum() pref.EnumDescriptor { return f.EnumType }
func (f *Field) ContainingMessage() pref.MessageDescriptor { return f.Parent }
func (f *Field) ContainingOneof() pref.OneofDescriptor {
	if f.Oneof == nil {
		return nil
	}
	return f.Oneof
}
func (f *Field) Syntax() pref.Syntax { return f.Parent.Syntax_ }
func (f *Field) Default() pref.Value {
	if f.Default_.IsValid() {
		return f.Default_
	}
	return pref.ZeroValue(f)
}

// FieldList is a literal FieldDescriptors.
type FieldList struct {
	List []*Field
}

func (l *FieldList) Len() int                    { return len(l.List) }
func (l *FieldList) Get(i int) pref.FieldDescriptor { return l.List[i] }
func (l *FieldList) ByNumber(n pref.FieldNumber) pref.FieldDescriptor {
	for _, f := range l.List {
		if f.Number_ == n {
			return f
		}
	}
	return nil
}
func (l *FieldList) ByName(name pref.Name) pref.FieldDescriptor {
	for _, f := range l.List {
		if f.Name_ == name {
			return f
		}
	}
	return nil
}

// Oneof is a literal OneofDescriptor.
type Oneof struct {
	Name_  pref.Name
	Parent *Message
	Fields_ *FieldList
}

func (o *Oneof) Name() pref.Name         { return o.Name_ }
func (o *Oneof) FullName() pref.FullName { return o.Parent.FullName_.Append(o.Name_) }
func (o *Oneof) Index() int {
	for i, od := range o.Parent.Oneofs_.List {
		if od == o {
			return i
		}
	}
	return -1
}
func (o *Oneof) Fields() pref.FieldDescriptors { return o.Fields_ }

// OneofList is a literal OneofDescriptors.
type OneofList struct {
	List []*Oneof
}

func (l *OneofList) Len() int                   { return len(l.List) }
func (l *OneofList) Get(i int) pref.OneofDescriptor { return l.List[i] }
func (l *OneofList) ByName(name pref.Name) pref.OneofDescriptor {
	for _, o := range l.List {
		if o.Name_ == name {
			return o
		}
	}
	return nil
}

// EnumValue is a literal EnumValueDescriptor.
type EnumValue struct {
	Name_   pref.Name
	Number_ pref.EnumNumber
	Parent  *Enum
}

func (v *EnumValue) Name() pref.Name         { return v.Name_ }
func (v *EnumValue) FullName() pref.FullName { return v.Parent.FullName_.Append(v.Name_) }
func (v *EnumValue) Number() pref.EnumNumber { return v.Number_ }

// Enum is a literal EnumDescriptor.
type Enum struct {
	FullName_ pref.FullName
	Values_   []*EnumValue
}

func (e *Enum) Name() pref.Name         { return lastComponent(e.FullName_) }
func (e *Enum) FullName() pref.FullName { return e.FullName_ }
func (e *Enum) Values() pref.EnumValueDescriptors {
	for _, v := range e.Values_ {
		v.Parent = e
	}
	return &enumValueList{e.Values_}
}

type enumValueList struct {
	list []*EnumValue
}

func (l *enumValueList) Len() int                            { return len(l.list) }
func (l *enumValueList) Get(i int) pref.EnumValueDescriptor   { return l.list[i] }
func (l *enumValueList) ByNumber(n pref.EnumNumber) pref.EnumValueDescriptor {
	for _, v := range l.list {
		if v.Number_ == n {
			return v
		}
	}
	return nil
}
