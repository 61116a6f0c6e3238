// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cell

import (
	"github.com/protoplasm/dynamicpb/internal/errors"
	pref "github.com/protoplasm/dynamicpb/reflect/protoreflect"
)

// Collection is an unordered, unique-key map backing a map field. Keys are
// scalar, string, or bool values per the protobuf spec; no iteration order
// is guaranteed or preserved.
type Collection struct {
	fd     pref.FieldDescriptor // the map field itself; fd.MapKey()/fd.MapValue() type the entries
	newMsg MessageFactory
	keys   map[interface{}]pref.Value // comparable Go key -> original key Value
	vals   map[interface{}]pref.Value // comparable Go key -> value Value
}

// NewCollection returns an empty Collection typed by fd, which must satisfy fd.IsMap().
func NewCollection(fd pref.FieldDescriptor, newMsg MessageFactory) *Collection {
	return &Collection{fd: fd, newMsg: newMsg}
}

// mapKey converts a key Value into a Go-comparable representation suitable
// for use as a map index, per the key kinds the protobuf spec allows for map
// fields: bool, the integer kinds, and string.
func mapKey(kind pref.Kind, v pref.Value) interface{} {
	switch kind {
	case pref.BoolKind:
		return v.Bool()
	case pref.Int32Kind, pref.Sint32Kind, pref.Sfixed32Kind:
		return int32(v.Int())
	case pref.Int64Kind, pref.Sint64Kind, pref.Sfixed64Kind:
		return v.Int()
	case pref.Uint32Kind, pref.Fixed32Kind:
		return uint32(v.Uint())
	case pref.Uint64Kind, pref.Fixed64Kind:
		return v.Uint()
	case pref.StringKind:
		return v.Str()
	default:
		panic(errors.New("invalid map key kind %v", kind))
	}
}

// Len reports the number of entries.
func (c *Collection) Len() int { return len(c.vals) }

// Has reports whether key is present.
func (c *Collection) Has(key pref.Value) bool {
	_, ok := c.vals[mapKey(c.fd.MapKey().Kind(), key)]
	return ok
}

// Get returns the value stored for key, or an invalid Value if absent.
func (c *Collection) Get(key pref.Value) pref.Value {
	return c.vals[mapKey(c.fd.MapKey().Kind(), key)]
}

// Set stores val under key, overwriting any existing entry.
func (c *Collection) Set(key, val pref.Value) {
	k := mapKey(c.fd.MapKey().Kind(), key)
	if c.keys == nil {
		c.keys = make(map[interface{}]pref.Value)
		c.vals = make(map[interface{}]pref.Value)
	}
	c.keys[k] = key
	c.vals[k] = val
}

// MutableMessage returns the message stored for key, constructing both the
// entry and a fresh message value if key is not yet present. It panics if
// the map's value kind is not message or group.
func (c *Collection) MutableMessage(key pref.Value) pref.Message {
	k := mapKey(c.fd.MapKey().Kind(), key)
	if vk := c.fd.MapValue().Kind(); vk != pref.MessageKind && vk != pref.GroupKind {
		panic(errors.New("%v: map value is not a message", c.fd.FullName()))
	}
	if v, ok := c.vals[k]; ok {
		return v.Message()
	}
	m := c.newMsg(c.fd.MapValue().Message())
	c.Set(key, pref.ValueOfMessage(m))
	return m
}

// Delete removes the entry for key, if any.
func (c *Collection) Delete(key pref.Value) {
	k := mapKey(c.fd.MapKey().Kind(), key)
	delete(c.keys, k)
	delete(c.vals, k)
}

// Clear empties the collection, retaining its declared key/value types.
func (c *Collection) Clear() {
	c.keys = nil
	c.vals = nil
}

// Range calls f for every entry in an unspecified order, stopping early if
// f returns false.
func (c *Collection) Range(f func(key, val pref.Value) bool) {
	for k, key := range c.keys {
		if !f(key, c.vals[k]) {
			return
		}
	}
}
