// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package testdesc

import pref "github.com/protoplasm/dynamicpb/reflect/protoreflect"

// Color is the enum fixture used by Widget.color:
//
//	enum Color { RED = 0; GREEN = 1; BLUE = 2; }
var Color = &Enum{
	FullName_: "testdesc.Color",
	Values_: []*EnumValue{
		{Name_: "RED", Number_: 0},
		{Name_: "GREEN", Number_: 1},
		{Name_: "BLUE", Number_: 2},
	},
}

// Sub is the submessage fixture used by Widget.inner:
//
//	message Sub { string note = 1; }
var Sub = &Message{
	FullName_: "testdesc.Sub",
	Syntax_:   pref.Proto3,
}

// Widget is the primary proto3 fixture used throughout the engine's tests:
//
//	message Widget {
//	    int32 id = 1;
//	    string name = 2;
//	    repeated int32 tags = 3;
//	    Color color = 4;
//	    Sub inner = 5;
//	    map<string, int32> counts = 6;
//	}
var Widget = &Message{
	FullName_: "testdesc.Widget",
	Syntax_:   pref.Proto3,
}

var widgetCountsEntry = &Message{
	FullName_: "testdesc.Widget.CountsEntry",
	Syntax_:   pref.Proto3,
}

func init() {
	Sub.Fields_ = &FieldList{List: []*Field{
		{Name_: "note", Number_: 1, Index_: 0, Kind_: pref.StringKind, Cardinality_: pref.Optional, Parent: Sub},
	}}

	widgetCountsEntry.Fields_ = &FieldList{List: []*Field{
		{Name_: "key", Number_: 1, Index_: 0, Kind_: pref.StringKind, Cardinality_: pref.Optional, Parent: widgetCountsEntry},
		{Name_: "value", Number_: 2, Index_: 1, Kind_: pref.Int32Kind, Cardinality_: pref.Optional, Parent: widgetCountsEntry},
	}}

	Widget.Fields_ = &FieldList{List: []*Field{
		{Name_: "id", Number_: 1, Index_: 0, Kind_: pref.Int32Kind, Cardinality_: pref.Optional, Parent: Widget},
		{Name_: "name", Number_: 2, Index_: 1, Kind_: pref.StringKind, Cardinality_: pref.Optional, Parent: Widget},
		{Name_: "tags", Number_: 3, Index_: 2, Kind_: pref.Int32Kind, Cardinality_: pref.Repeated, Parent: Widget},
		{Name_: "color", Number_: 4, Index_: 3, Kind_: pref.EnumKind, Cardinality_: pref.Optional, Parent: Widget, EnumType: Color},
		{Name_: "inner", Number_: 5, Index_: 4, Kind_: pref.MessageKind, Cardinality_: pref.Optional, Parent: Widget, MessageType: Sub},
		{Name_: "counts", Number_: 6, Index_: 5, Kind_: pref.MessageKind, Cardinality_: pref.Repeated, Parent: Widget, MapEntry: widgetCountsEntry},
	}}
}

// Node is the self-referential fixture used to exercise recursion-depth
// guarding:
//
//	message Node { Node child = 1; }
var Node = &Message{
	FullName_: "testdesc.Node",
	Syntax_:   pref.Proto3,
}

func init() {
	Node.Fields_ = &FieldList{List: []*Field{
		{Name_: "child", Number_: 1, Index_: 0, Kind_: pref.MessageKind, Cardinality_: pref.Optional, Parent: Node, MessageType: Node},
	}}
}

// Shape is the oneof fixture:
//
//	message Shape {
//	    oneof kind {
//	        float radius = 1;
//	        float side = 2;
//	    }
//	}
var Shape = &Message{
	FullName_: "testdesc.Shape",
	Syntax_:   pref.Proto3,
}

func init() {
	kind := &Oneof{Name_: "kind", Parent: Shape}
	radius := &Field{Name_: "radius", Number_: 1, Index_: 0, Kind_: pref.FloatKind, Cardinality_: pref.Optional, Parent: Shape, Oneof: kind}
	side := &Field{Name_: "side", Number_: 2, Index_: 1, Kind_: pref.FloatKind, Cardinality_: pref.Optional, Parent: Shape, Oneof: kind}
	kind.Fields_ = &FieldList{List: []*Field{radius, side}}

	Shape.Fields_ = &FieldList{List: []*Field{radius, side}}
	Shape.Oneofs_ = &OneofList{List: []*Oneof{kind}}
}
