// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package codec

import (
	"unicode/utf8"

	"github.com/protoplasm/dynamicpb/internal/errors"
	"github.com/protoplasm/dynamicpb/internal/wire"
)

// DefaultMaxDepth bounds nested-message recursion during decode. It matches
// the limit code-generated protobuf-go messages use, chosen to be far
// beyond any legitimate schema while still failing well short of a stack
// overflow on typical goroutine stack sizes.
const DefaultMaxDepth = 100

// Input reads a byte slice as a sequence of wire records, tracking a
// recursion counter shared across every nested message decoded from the
// same top-level call so that depth is bounded regardless of how deeply the
// descriptor graph nests.
type Input struct {
	buf      []byte
	off      int
	depth    *int
	maxDepth int
}

// NewInput returns an Input reading b, with recursion bounded by
// DefaultMaxDepth.
func NewInput(b []byte) *Input {
	d := 0
	return &Input{buf: b, depth: &d, maxDepth: DefaultMaxDepth}
}

// sub returns an Input reading b that shares this Input's recursion
// counter, for decoding a length-delimited submessage.
func (in *Input) sub(b []byte) *Input {
	return &Input{buf: b, depth: in.depth, maxDepth: in.maxDepth}
}

// Eof reports whether the stream is exhausted.
func (in *Input) Eof() bool { return in.off >= len(in.buf) }

// IncrRecursion enters a nested message, failing if the configured depth
// limit would be exceeded.
func (in *Input) IncrRecursion() error {
	*in.depth++
	if *in.depth > in.maxDepth {
		return errors.New("recursion depth exceeds limit of %d", in.maxDepth)
	}
	return nil
}

// DecrRecursion leaves a nested message entered via IncrRecursion.
func (in *Input) DecrRecursion() { *in.depth-- }

// ConsumeTag reads the tag at the current position and advances past it.
func (in *Input) ConsumeTag() (wire.Number, wire.Type, error) {
	num, typ, n := wire.ConsumeTag(in.buf[in.off:])
	if n < 0 {
		return 0, 0, errors.New("invalid tag: %v", wire.ErrTruncated)
	}
	in.off += n
	return num, typ, nil
}

// ReadVarint reads a varint and advances past it.
func (in *Input) ReadVarint() (uint64, error) {
	v, n := wire.ConsumeVarint(in.buf[in.off:])
	if n < 0 {
		return 0, errors.New("invalid varint: %v", wire.ErrTruncated)
	}
	in.off += n
	return v, nil
}

// ReadFixed32 reads a 32-bit little-endian word and advances past it.
func (in *Input) ReadFixed32() (uint32, error) {
	v, n := wire.ConsumeFixed32(in.buf[in.off:])
	if n < 0 {
		return 0, errors.New("invalid fixed32: %v", wire.ErrTruncated)
	}
	in.off += n
	return v, nil
}

// ReadFixed64 reads a 64-bit little-endian word and advances past it.
func (in *Input) ReadFixed64() (uint64, error) {
	v, n := wire.ConsumeFixed64(in.buf[in.off:])
	if n < 0 {
		return 0, errors.New("invalid fixed64: %v", wire.ErrTruncated)
	}
	in.off += n
	return v, nil
}

// ReadBytes reads a length-delimited record's payload (a sub-slice of the
// input, not copied) and advances past it.
func (in *Input) ReadBytes() ([]byte, error) {
	v, n := wire.ConsumeBytes(in.buf[in.off:])
	if n < 0 {
		return nil, errors.New("invalid length-delimited field: %v", wire.ErrTruncated)
	}
	in.off += n
	return v, nil
}

// ReadString reads a length-delimited record as a UTF-8 string.
func (in *Input) ReadString() (string, error) {
	b, err := in.ReadBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errors.New("invalid UTF-8 in string field")
	}
	return string(b), nil
}

// SkipField skips the value of a field of the given wire type at the
// current position, for routing an unrecognized field number to the
// unknown-fields store, and returns the skipped bytes.
func (in *Input) SkipField(typ wire.Type) ([]byte, error) {
	n := wire.ConsumeFieldValue(0, typ, in.buf[in.off:])
	if n < 0 {
		return nil, errors.New("cannot skip field of wire type %d: %v", typ, wire.ErrTruncated)
	}
	b := in.buf[in.off : in.off+n]
	in.off += n
	return b, nil
}

// Output accumulates encoded bytes.
type Output struct {
	buf []byte
}

// NewOutput returns an Output with its buffer preallocated to size bytes.
func NewOutput(size int) *Output { return &Output{buf: make([]byte, 0, size)} }

// Bytes returns the accumulated output.
func (out *Output) Bytes() []byte { return out.buf }

func (out *Output) tag(num wire.Number, typ wire.Type) { out.buf = wire.AppendTag(out.buf, num, typ) }
func (out *Output) varint(v uint64)                    { out.buf = wire.AppendVarint(out.buf, v) }
func (out *Output) fixed32(v uint32)                   { out.buf = wire.AppendFixed32(out.buf, v) }
func (out *Output) fixed64(v uint64)                   { out.buf = wire.AppendFixed64(out.buf, v) }
func (out *Output) bytes(v []byte)                     { out.buf = wire.AppendBytes(out.buf, v) }
func (out *Output) raw(v []byte)                       { out.buf = append(out.buf, v...) }
