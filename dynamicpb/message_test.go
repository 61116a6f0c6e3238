// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dynamicpb

import (
	"bytes"
	"testing"

	"github.com/protoplasm/dynamicpb/internal/testdesc"
	pref "github.com/protoplasm/dynamicpb/reflect/protoreflect"
)

func TestNewMessageIsLazy(t *testing.T) {
	msg := New(testdesc.Widget)
	idFd := testdesc.Widget.Fields().ByNumber(1)
	if msg.Has(idFd) {
		t.Error("Has(id) on a fresh message reports true")
	}
	if got := msg.Get(idFd).Int(); got != 0 {
		t.Errorf("Get(id) on a fresh message = %d, want 0", got)
	}
	if msg.Len() != 0 {
		t.Errorf("Len() on a fresh message = %d, want 0", msg.Len())
	}
}

func TestEmptyMessageRoundTrip(t *testing.T) {
	msg := New(testdesc.Widget)
	b, err := msg.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(b) != 0 {
		t.Errorf("Marshal(empty) = %x, want []", b)
	}
	if got := msg.ComputeSize(); got != 0 {
		t.Errorf("ComputeSize(empty) = %d, want 0", got)
	}
}

func TestSimpleScalarRoundTrip(t *testing.T) {
	idFd := testdesc.Widget.Fields().ByNumber(1)
	nameFd := testdesc.Widget.Fields().ByNumber(2)

	msg := New(testdesc.Widget)
	msg.Set(idFd, pref.ValueOfInt32(150))
	msg.Set(nameFd, pref.ValueOfString("abc"))

	want := []byte{0x08, 0x96, 0x01, 0x12, 0x03, 0x61, 0x62, 0x63}
	b, err := msg.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(b, want) {
		t.Fatalf("Marshal = % x, want % x", b, want)
	}
	if got := msg.GetCachedSize(); got != len(want) {
		t.Errorf("GetCachedSize() = %d, want %d", got, len(want))
	}

	decoded := New(testdesc.Widget)
	if err := decoded.Unmarshal(b); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got := decoded.Get(idFd).Int(); got != 150 {
		t.Errorf("decoded id = %d, want 150", got)
	}
	if got := decoded.Get(nameFd).Str(); got != "abc" {
		t.Errorf("decoded name = %q, want abc", got)
	}
}

func TestPackedAndUnpackedRepeatedAgree(t *testing.T) {
	tagsFd := testdesc.Widget.Fields().ByNumber(3)

	packed := New(testdesc.Widget)
	if err := packed.Unmarshal([]byte{0x1a, 0x03, 0x01, 0x02, 0x03}); err != nil {
		t.Fatalf("Unmarshal(packed): %v", err)
	}
	unpacked := New(testdesc.Widget)
	if err := unpacked.Unmarshal([]byte{0x18, 0x01, 0x18, 0x02, 0x18, 0x03}); err != nil {
		t.Fatalf("Unmarshal(unpacked): %v", err)
	}

	seq1, seq2 := packed.Sequence(tagsFd), unpacked.Sequence(tagsFd)
	if seq1.Len() != 3 || seq2.Len() != 3 {
		t.Fatalf("Len() = %d, %d, want 3, 3", seq1.Len(), seq2.Len())
	}
	for i := 0; i < 3; i++ {
		if seq1.Get(i).Int() != seq2.Get(i).Int() {
			t.Errorf("element %d differs: %d vs %d", i, seq1.Get(i).Int(), seq2.Get(i).Int())
		}
	}

	b, err := packed.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := []byte{0x18, 0x01, 0x18, 0x02, 0x18, 0x03}
	if !bytes.Equal(b, want) {
		t.Errorf("re-Marshal = % x, want % x (always unpacked on output)", b, want)
	}
}

func TestEnumRoundTrip(t *testing.T) {
	colorFd := testdesc.Widget.Fields().ByNumber(4)
	msg := New(testdesc.Widget)
	msg.Set(colorFd, pref.ValueOfEnum(2)) // BLUE

	b, err := msg.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := []byte{0x20, 0x02}
	if !bytes.Equal(b, want) {
		t.Fatalf("Marshal = % x, want % x", b, want)
	}

	decoded := New(testdesc.Widget)
	if err := decoded.Unmarshal(b); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got := decoded.Get(colorFd).Enum(); got != 2 {
		t.Errorf("decoded color = %d, want 2", got)
	}
}

func TestDefaultSuppression(t *testing.T) {
	idFd := testdesc.Widget.Fields().ByNumber(1)
	msg := New(testdesc.Widget)
	msg.Set(idFd, pref.ValueOfInt32(0)) // explicit zero, proto3 default

	b, err := msg.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if len(b) != 0 {
		t.Errorf("Marshal(id=0) = % x, want [] (proto3 default-suppression)", b)
	}
}

func TestNestedMessageRoundTrip(t *testing.T) {
	innerFd := testdesc.Widget.Fields().ByNumber(5)
	noteFd := testdesc.Sub.Fields().ByNumber(1)

	msg := New(testdesc.Widget)
	sub := msg.MutableMessage(innerFd).(*Message)
	sub.Set(noteFd, pref.ValueOfString("hi"))

	b, err := msg.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	decoded := New(testdesc.Widget)
	if err := decoded.Unmarshal(b); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !decoded.Has(innerFd) {
		t.Fatal("Has(inner) == false after round-trip")
	}
	gotSub := decoded.Get(innerFd).Message().(*Message)
	if got := gotSub.Get(noteFd).Str(); got != "hi" {
		t.Errorf("decoded inner.note = %q, want hi", got)
	}
}

func TestRecursionDepthBound(t *testing.T) {
	childFd := testdesc.Node.Fields().ByNumber(1)

	build := func(depth int) *Message {
		root := New(testdesc.Node)
		cur := root
		for i := 1; i < depth; i++ {
			cur = cur.MutableMessage(childFd).(*Message)
		}
		return root
	}

	shallow := build(10)
	b, err := shallow.Marshal()
	if err != nil {
		t.Fatalf("Marshal(depth=10): %v", err)
	}
	decoded := New(testdesc.Node)
	if err := decoded.Unmarshal(b); err != nil {
		t.Fatalf("Unmarshal(depth=10): %v", err)
	}

	deep := build(200)
	b2, err := deep.Marshal()
	if err != nil {
		t.Fatalf("Marshal(depth=200): %v", err)
	}
	if err := New(testdesc.Node).Unmarshal(b2); err == nil {
		t.Error("Unmarshal(depth=200) succeeded, want recursion-depth error")
	}
}

func TestOneofExclusivity(t *testing.T) {
	radiusFd := testdesc.Shape.Fields().ByNumber(1)
	sideFd := testdesc.Shape.Fields().ByNumber(2)
	kindOd := testdesc.Shape.Oneofs().Get(0)

	msg := New(testdesc.Shape)
	msg.Set(radiusFd, pref.ValueOfFloat32(1.5))
	if got := msg.WhichOneof(kindOd); got != radiusFd {
		t.Errorf("WhichOneof = %v, want radius", got)
	}

	msg.Set(sideFd, pref.ValueOfFloat32(2.5))
	if msg.Has(radiusFd) {
		t.Error("Has(radius) == true after setting sibling side")
	}
	if got := msg.WhichOneof(kindOd); got != sideFd {
		t.Errorf("WhichOneof = %v, want side", got)
	}
}

func TestOneofStaysUnsetAfterDecode(t *testing.T) {
	radiusFd := testdesc.Shape.Fields().ByNumber(1)
	sideFd := testdesc.Shape.Fields().ByNumber(2)
	kindOd := testdesc.Shape.Oneofs().Get(0)

	decoded := New(testdesc.Shape)
	if err := decoded.Unmarshal(nil); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got := decoded.WhichOneof(kindOd); got != nil {
		t.Errorf("WhichOneof on untouched oneof = %v, want nil", got)
	}
	if decoded.Has(radiusFd) {
		t.Error("Has(radius) == true on a message decoded with the oneof untouched")
	}
	if decoded.Has(sideFd) {
		t.Error("Has(side) == true on a message decoded with the oneof untouched")
	}
}

func TestClearWholeMessage(t *testing.T) {
	idFd := testdesc.Widget.Fields().ByNumber(1)
	nameFd := testdesc.Widget.Fields().ByNumber(2)

	msg := New(testdesc.Widget)
	msg.Set(idFd, pref.ValueOfInt32(5))
	msg.Set(nameFd, pref.ValueOfString("x"))
	msg.Clear()

	if msg.Has(idFd) || msg.Has(nameFd) {
		t.Error("fields still set after Clear()")
	}
	if msg.Len() != 0 {
		t.Errorf("Len() after Clear() = %d, want 0", msg.Len())
	}
}

func TestUnknownFieldsPassthrough(t *testing.T) {
	in := []byte{0xd0, 0x0f, 0x01} // field 250 (unknown), varint 1
	msg := New(testdesc.Widget)
	if err := msg.Unmarshal(in); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got := msg.GetUnknown(); !bytes.Equal(got, in) {
		t.Errorf("GetUnknown() = % x, want % x", got, in)
	}
	b, err := msg.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(b, in) {
		t.Errorf("Marshal() = % x, want % x (unknown passthrough)", b, in)
	}
}

func TestIsInitializedDoesNotPanicOnMapField(t *testing.T) {
	msg := New(testdesc.Widget)
	countsFd := testdesc.Widget.Fields().ByNumber(6)
	coll := msg.Collection(countsFd)
	coll.Set(pref.ValueOfString("a"), pref.ValueOfInt32(1))

	if !msg.IsInitialized() {
		t.Error("IsInitialized() == false for a populated map field")
	}
}

func TestCheckFieldPanicsOnForeignDescriptor(t *testing.T) {
	msg := New(testdesc.Widget)
	foreign := testdesc.Node.Fields().ByNumber(1)
	defer func() {
		if recover() == nil {
			t.Error("Get with a foreign field descriptor did not panic")
		}
	}()
	msg.Get(foreign)
}
