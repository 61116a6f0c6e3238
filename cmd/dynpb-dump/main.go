// Copyright 2019 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// The dynpb-dump binary decodes a wire-format protocol buffer message
// against one of the package's built-in test descriptors and prints its
// fields. It exists to exercise the decode and reflection path end to end
// without depending on a .proto-file loader, which this module does not
// provide.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/protoplasm/dynamicpb/dynamicpb"
	"github.com/protoplasm/dynamicpb/internal/cell"
	"github.com/protoplasm/dynamicpb/internal/testdesc"
	pref "github.com/protoplasm/dynamicpb/reflect/protoreflect"
)

var (
	typeName = flag.String("type", "Widget", "built-in message type to decode as (Widget, Sub, Node, Shape)")
	input    = flag.String("in", "-", "path to a file of wire-format bytes, or - for stdin")
)

func descriptorFor(name string) pref.MessageDescriptor {
	switch name {
	case "Widget":
		return testdesc.Widget
	case "Sub":
		return testdesc.Sub
	case "Node":
		return testdesc.Node
	case "Shape":
		return testdesc.Shape
	default:
		return nil
	}
}

func main() {
	flag.Parse()

	desc := descriptorFor(*typeName)
	if desc == nil {
		fmt.Fprintf(os.Stderr, "dynpb-dump: unknown -type %q\n", *typeName)
		os.Exit(2)
	}

	var r io.Reader = os.Stdin
	if *input != "-" {
		f, err := os.Open(*input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "dynpb-dump: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		r = f
	}
	b, err := io.ReadAll(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "dynpb-dump: reading input: %v\n", err)
		os.Exit(1)
	}

	msg := dynamicpb.New(desc)
	if err := msg.Unmarshal(b); err != nil {
		fmt.Fprintf(os.Stderr, "dynpb-dump: unmarshal: %v\n", err)
		os.Exit(1)
	}

	dump(os.Stdout, msg, 0)
	if u := msg.GetUnknown(); len(u) > 0 {
		fmt.Fprintf(os.Stdout, "unknown: % x\n", u)
	}
}

func dump(w io.Writer, msg *dynamicpb.Message, depth int) {
	indent := func() string {
		s := ""
		for i := 0; i < depth; i++ {
			s += "  "
		}
		return s
	}
	msg.Range(func(fd pref.FieldDescriptor, c *cell.Cell) bool {
		switch c.Shape() {
		case cell.SingularShape:
			v := c.Slot().Get()
			if fd.Kind() == pref.MessageKind || fd.Kind() == pref.GroupKind {
				fmt.Fprintf(w, "%s%s (#%d): {\n", indent(), fd.Name(), fd.Number())
				dump(w, v.Message().(*dynamicpb.Message), depth+1)
				fmt.Fprintf(w, "%s}\n", indent())
			} else {
				fmt.Fprintf(w, "%s%s (#%d): %v\n", indent(), fd.Name(), fd.Number(), v.Interface())
			}
		case cell.RepeatedShape:
			fmt.Fprintf(w, "%s%s (#%d): [\n", indent(), fd.Name(), fd.Number())
			c.Sequence().Range(func(i int, v pref.Value) bool {
				if fd.Kind() == pref.MessageKind || fd.Kind() == pref.GroupKind {
					fmt.Fprintf(w, "%s  [%d]: {\n", indent(), i)
					dump(w, v.Message().(*dynamicpb.Message), depth+2)
					fmt.Fprintf(w, "%s  }\n", indent())
				} else {
					fmt.Fprintf(w, "%s  [%d]: %v\n", indent(), i, v.Interface())
				}
				return true
			})
			fmt.Fprintf(w, "%s]\n", indent())
		case cell.MapShape:
			fmt.Fprintf(w, "%s%s (#%d): {\n", indent(), fd.Name(), fd.Number())
			c.Collection().Range(func(k, v pref.Value) bool {
				fmt.Fprintf(w, "%s  %v: %v\n", indent(), k.Interface(), v.Interface())
				return true
			})
			fmt.Fprintf(w, "%s}\n", indent())
		}
		return true
	})
}
