// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package protobson

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsoncodec"

	"github.com/protoplasm/dynamicpb/dynamicpb"
	"github.com/protoplasm/dynamicpb/internal/testdesc"
	pref "github.com/protoplasm/dynamicpb/reflect/protoreflect"
)

func registry() *bsoncodec.Registry {
	rb := bson.NewRegistryBuilder()
	codec := NewCodec()
	return rb.RegisterTypeEncoder(messageType, codec).RegisterTypeDecoder(messageType, codec).Build()
}

func TestRoundTripScalarFields(t *testing.T) {
	reg := registry()
	idFd := testdesc.Widget.Fields().ByNumber(1)
	nameFd := testdesc.Widget.Fields().ByNumber(2)
	colorFd := testdesc.Widget.Fields().ByNumber(4)

	msg := dynamicpb.New(testdesc.Widget)
	msg.Set(idFd, pref.ValueOfInt32(42))
	msg.Set(nameFd, pref.ValueOfString("widget-a"))
	msg.Set(colorFd, pref.ValueOfEnum(2))

	b, err := bson.MarshalWithRegistry(reg, msg)
	if err != nil {
		t.Fatalf("MarshalWithRegistry: %v", err)
	}

	out := dynamicpb.New(testdesc.Widget)
	if err := bson.UnmarshalWithRegistry(reg, b, &out); err != nil {
		t.Fatalf("UnmarshalWithRegistry: %v", err)
	}
	if got := out.Get(idFd).Int(); got != 42 {
		t.Errorf("id = %d, want 42", got)
	}
	if got := out.Get(nameFd).Str(); got != "widget-a" {
		t.Errorf("name = %q, want widget-a", got)
	}
	if got := out.Get(colorFd).Enum(); got != 2 {
		t.Errorf("color = %d, want 2", got)
	}
}

func TestRoundTripRepeatedField(t *testing.T) {
	reg := registry()
	tagsFd := testdesc.Widget.Fields().ByNumber(3)

	msg := dynamicpb.New(testdesc.Widget)
	seq := msg.Sequence(tagsFd)
	seq.Append(pref.ValueOfInt32(1))
	seq.Append(pref.ValueOfInt32(2))
	seq.Append(pref.ValueOfInt32(3))

	b, err := bson.MarshalWithRegistry(reg, msg)
	if err != nil {
		t.Fatalf("MarshalWithRegistry: %v", err)
	}

	out := dynamicpb.New(testdesc.Widget)
	if err := bson.UnmarshalWithRegistry(reg, b, &out); err != nil {
		t.Fatalf("UnmarshalWithRegistry: %v", err)
	}
	got := out.Sequence(tagsFd)
	if got.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", got.Len())
	}
	for i, want := range []int64{1, 2, 3} {
		if got.Get(i).Int() != want {
			t.Errorf("element %d = %d, want %d", i, got.Get(i).Int(), want)
		}
	}
}

func TestRoundTripMapField(t *testing.T) {
	reg := registry()
	countsFd := testdesc.Widget.Fields().ByNumber(6)

	msg := dynamicpb.New(testdesc.Widget)
	coll := msg.Collection(countsFd)
	coll.Set(pref.ValueOfString("a"), pref.ValueOfInt32(1))
	coll.Set(pref.ValueOfString("b"), pref.ValueOfInt32(2))

	b, err := bson.MarshalWithRegistry(reg, msg)
	if err != nil {
		t.Fatalf("MarshalWithRegistry: %v", err)
	}

	out := dynamicpb.New(testdesc.Widget)
	if err := bson.UnmarshalWithRegistry(reg, b, &out); err != nil {
		t.Fatalf("UnmarshalWithRegistry: %v", err)
	}
	got := out.Collection(countsFd)
	if got.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", got.Len())
	}
	if v := got.Get(pref.ValueOfString("a")); v.Int() != 1 {
		t.Errorf("counts[a] = %d, want 1", v.Int())
	}
	if v := got.Get(pref.ValueOfString("b")); v.Int() != 2 {
		t.Errorf("counts[b] = %d, want 2", v.Int())
	}
}

func TestRoundTripNestedMessage(t *testing.T) {
	reg := registry()
	innerFd := testdesc.Widget.Fields().ByNumber(5)
	noteFd := testdesc.Sub.Fields().ByNumber(1)

	msg := dynamicpb.New(testdesc.Widget)
	sub := msg.MutableMessage(innerFd).(*dynamicpb.Message)
	sub.Set(noteFd, pref.ValueOfString("hello"))

	b, err := bson.MarshalWithRegistry(reg, msg)
	if err != nil {
		t.Fatalf("MarshalWithRegistry: %v", err)
	}

	out := dynamicpb.New(testdesc.Widget)
	if err := bson.UnmarshalWithRegistry(reg, b, &out); err != nil {
		t.Fatalf("UnmarshalWithRegistry: %v", err)
	}
	if !out.Has(innerFd) {
		t.Fatal("Has(inner) == false after round-trip")
	}
	gotSub := out.Get(innerFd).Message().(*dynamicpb.Message)
	if got := gotSub.Get(noteFd).Str(); got != "hello" {
		t.Errorf("inner.note = %q, want hello", got)
	}
}

func TestElementNamingUsesFieldNumber(t *testing.T) {
	if got, want := FieldNumberToElementName(pref.FieldNumber(6)), "pb_field_6"; got != want {
		t.Errorf("FieldNumberToElementName(6) = %q, want %q", got, want)
	}
}

func TestDecodeValueRequiresPreallocatedMessage(t *testing.T) {
	reg := registry()
	idFd := testdesc.Widget.Fields().ByNumber(1)
	msg := dynamicpb.New(testdesc.Widget)
	msg.Set(idFd, pref.ValueOfInt32(1))
	b, err := bson.MarshalWithRegistry(reg, msg)
	if err != nil {
		t.Fatalf("MarshalWithRegistry: %v", err)
	}

	var out *dynamicpb.Message
	if err := bson.UnmarshalWithRegistry(reg, b, &out); err == nil {
		t.Error("UnmarshalWithRegistry into a nil *dynamicpb.Message succeeded, want error (no descriptor to allocate against)")
	}
}
