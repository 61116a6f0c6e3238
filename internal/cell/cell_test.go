// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cell

import (
	"testing"

	"github.com/protoplasm/dynamicpb/internal/testdesc"
	pref "github.com/protoplasm/dynamicpb/reflect/protoreflect"
)

type fakeMessage struct {
	desc pref.MessageDescriptor
}

func (m *fakeMessage) Descriptor() pref.MessageDescriptor { return m.desc }
func (m *fakeMessage) IsInitialized() bool                { return true }

func newFakeMessage(d pref.MessageDescriptor) pref.Message { return &fakeMessage{desc: d} }

func TestNewCellShape(t *testing.T) {
	id := testdesc.Widget.Fields().ByNumber(1)       // singular int32
	tags := testdesc.Widget.Fields().ByNumber(3)     // repeated int32
	counts := testdesc.Widget.Fields().ByNumber(6)   // map

	if got := NewCell(id, newFakeMessage).Shape(); got != SingularShape {
		t.Errorf("id cell shape = %v, want singular", got)
	}
	if got := NewCell(tags, newFakeMessage).Shape(); got != RepeatedShape {
		t.Errorf("tags cell shape = %v, want repeated", got)
	}
	if got := NewCell(counts, newFakeMessage).Shape(); got != MapShape {
		t.Errorf("counts cell shape = %v, want map", got)
	}
}

func TestCellAccessorPanicsOnShapeMismatch(t *testing.T) {
	id := testdesc.Widget.Fields().ByNumber(1)
	c := NewCell(id, newFakeMessage)

	defer func() {
		if recover() == nil {
			t.Error("Sequence() on a singular cell did not panic")
		}
	}()
	c.Sequence()
}

func TestSlotDefaultAndSet(t *testing.T) {
	id := testdesc.Widget.Fields().ByNumber(1)
	s := NewSlot(id, newFakeMessage)

	if s.Has() {
		t.Fatal("new slot reports Has() == true")
	}
	if got := s.Get().Int(); got != 0 {
		t.Errorf("Get() on empty slot = %d, want 0", got)
	}
	s.Set(pref.ValueOfInt32(42))
	if !s.Has() {
		t.Error("Has() == false after Set")
	}
	if got := s.Get().Int(); got != 42 {
		t.Errorf("Get() = %d, want 42", got)
	}
	s.Clear()
	if s.Has() {
		t.Error("Has() == true after Clear")
	}
}

func TestSlotMutableMessage(t *testing.T) {
	inner := testdesc.Widget.Fields().ByNumber(5)
	s := NewSlot(inner, newFakeMessage)

	m1 := s.MutableMessage()
	m2 := s.MutableMessage()
	if m1 != m2 {
		t.Error("MutableMessage allocated twice for the same slot")
	}
	if m1.Descriptor() != testdesc.Sub {
		t.Errorf("MutableMessage descriptor = %v, want Sub", m1.Descriptor())
	}
}

func TestSlotSetProto3DefaultPanicsForMessage(t *testing.T) {
	inner := testdesc.Widget.Fields().ByNumber(5)
	s := NewSlot(inner, newFakeMessage)
	defer func() {
		if recover() == nil {
			t.Error("SetProto3Default on a message field did not panic")
		}
	}()
	s.SetProto3Default()
}

func TestSequenceAppendAndTruncate(t *testing.T) {
	tags := testdesc.Widget.Fields().ByNumber(3)
	seq := NewSequence(tags, newFakeMessage)

	seq.Append(pref.ValueOfInt32(1))
	seq.Append(pref.ValueOfInt32(2))
	seq.Append(pref.ValueOfInt32(3))
	if seq.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", seq.Len())
	}

	var got []int64
	seq.Range(func(_ int, v pref.Value) bool {
		got = append(got, v.Int())
		return true
	})
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Errorf("Range produced %v, want [1 2 3]", got)
	}

	seq.Truncate(1)
	if seq.Len() != 1 {
		t.Fatalf("Len() after Truncate(1) = %d, want 1", seq.Len())
	}
	if got := seq.Get(0).Int(); got != 1 {
		t.Errorf("Get(0) after truncate = %d, want 1", got)
	}
}

func TestSequenceAppendNewMessage(t *testing.T) {
	// Build a repeated-message field fixture on the fly.
	sub := testdesc.Sub
	rf := &testdesc.Field{
		Name_: "inners", Number_: 9, Index_: 0,
		Kind_: pref.MessageKind, Cardinality_: pref.Repeated,
		MessageType: sub,
	}
	seq := NewSequence(rf, newFakeMessage)
	m := seq.AppendNewMessage()
	if seq.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", seq.Len())
	}
	if seq.Get(0).Message() != m {
		t.Error("appended message does not match stored value")
	}
}

func TestCollectionSetGetDelete(t *testing.T) {
	counts := testdesc.Widget.Fields().ByNumber(6)
	coll := NewCollection(counts, newFakeMessage)

	k1 := pref.ValueOfString("a")
	k2 := pref.ValueOfString("b")
	coll.Set(k1, pref.ValueOfInt32(1))
	coll.Set(k2, pref.ValueOfInt32(2))

	if coll.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", coll.Len())
	}
	if !coll.Has(k1) {
		t.Error("Has(a) == false")
	}
	if got := coll.Get(k1).Int(); got != 1 {
		t.Errorf("Get(a) = %d, want 1", got)
	}

	coll.Delete(k1)
	if coll.Has(k1) {
		t.Error("Has(a) == true after Delete")
	}
	if coll.Len() != 1 {
		t.Errorf("Len() after Delete = %d, want 1", coll.Len())
	}
}

func TestCollectionRangeReconstructsKeys(t *testing.T) {
	counts := testdesc.Widget.Fields().ByNumber(6)
	coll := NewCollection(counts, newFakeMessage)
	coll.Set(pref.ValueOfString("x"), pref.ValueOfInt32(10))

	seen := map[string]int64{}
	coll.Range(func(k, v pref.Value) bool {
		seen[k.Str()] = v.Int()
		return true
	})
	if seen["x"] != 10 {
		t.Errorf("Range saw %v, want map[x:10]", seen)
	}
}

func TestCellSetProto3DefaultNoOpForRepeatedAndMap(t *testing.T) {
	tags := testdesc.Widget.Fields().ByNumber(3)
	c := NewCell(tags, newFakeMessage)
	c.Sequence().Append(pref.ValueOfInt32(5))
	c.SetProto3Default() // must not clear or panic
	if c.Sequence().Len() != 1 {
		t.Error("SetProto3Default mutated a repeated cell")
	}

	counts := testdesc.Widget.Fields().ByNumber(6)
	mc := NewCell(counts, newFakeMessage)
	mc.Collection().Set(pref.ValueOfString("a"), pref.ValueOfInt32(1))
	mc.SetProto3Default() // must not clear or panic
	if mc.Collection().Len() != 1 {
		t.Error("SetProto3Default mutated a map cell")
	}
}

func TestCellSetProto3DefaultNoOpForMessageField(t *testing.T) {
	inner := testdesc.Widget.Fields().ByNumber(5)
	c := NewCell(inner, newFakeMessage)
	c.SetProto3Default() // must not clear or panic
	if c.Slot().Has() {
		t.Error("SetProto3Default installed a value on a singular message field")
	}
}

func TestCellSetProto3DefaultNoOpForOneofMember(t *testing.T) {
	radius := testdesc.Shape.Fields().ByNumber(1)
	c := NewCell(radius, newFakeMessage)
	c.SetProto3Default()
	if c.Slot().Has() {
		t.Error("SetProto3Default installed a value on an untouched oneof member")
	}
}

func TestCellClear(t *testing.T) {
	id := testdesc.Widget.Fields().ByNumber(1)
	c := NewCell(id, newFakeMessage)
	c.Slot().Set(pref.ValueOfInt32(7))
	if c.IsEmpty() {
		t.Fatal("IsEmpty() == true after Set")
	}
	c.Clear()
	if !c.IsEmpty() {
		t.Error("IsEmpty() == false after Clear")
	}
}
