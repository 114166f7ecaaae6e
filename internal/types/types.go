// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

// Package types defines the Zinc type universe: the closed set of base
// kinds, the binary promotion rule, literal classification, and the
// mapping onto Rust surface types.
package types

import (
	"strings"
)

// Base is one of the closed set of base kinds. Unknown is the inference
// bottom; Void is the absence of a value.
type Base int

const (
	Unknown Base = iota
	Integer
	Float
	String
	Boolean
	Channel
	Array
	Struct
	Void
)

var baseNames = map[Base]string{
	Unknown: "Unknown",
	Integer: "Integer",
	Float:   "Float",
	String:  "String",
	Boolean: "Boolean",
	Channel: "Channel",
	Array:   "Array",
	Struct:  "Struct",
	Void:    "Void",
}

func (b Base) String() string { return baseNames[b] }

// ToRust maps a base kind onto its Rust surface type.
func ToRust(b Base) string {
	switch b {
	case Integer:
		return "i64"
	case Float:
		return "f64"
	case String:
		return "String"
	case Boolean:
		return "bool"
	case Void:
		return "()"
	case Channel:
		return "channel"
	case Array:
		return "Vec"
	case Struct:
		return "struct"
	default:
		return "unknown"
	}
}

// Promote determines the result kind of a binary arithmetic or
// comparison operand pair. Equal kinds keep their kind; mixing Integer
// and Float promotes to Float; anything else is Unknown.
func Promote(left, right Base) Base {
	if left == right {
		return left
	}
	if (left == Integer && right == Float) || (left == Float && right == Integer) {
		return Float
	}
	return Unknown
}

// ChannelInfo carries the inferred element type of a channel and whether
// the channel is bounded. It is shared by pointer between the creation
// site and every parameter the channel flows into, so an element type
// fixed in one function is visible at the others. Element moves from
// Unknown to a concrete kind exactly once.
type ChannelInfo struct {
	Element Base
	Bounded bool
	// Capacity is the source spelling of the bound, empty when absent.
	Capacity string
}

// RustSender renders the tokio sender type for this channel.
func (c *ChannelInfo) RustSender() string {
	elem := ToRust(c.Element)
	if c.Bounded {
		return "tokio::sync::mpsc::Sender<" + elem + ">"
	}
	return "tokio::sync::mpsc::UnboundedSender<" + elem + ">"
}

// RustReceiver renders the tokio receiver type for this channel.
func (c *ChannelInfo) RustReceiver() string {
	elem := ToRust(c.Element)
	if c.Bounded {
		return "tokio::sync::mpsc::Receiver<" + elem + ">"
	}
	return "tokio::sync::mpsc::UnboundedReceiver<" + elem + ">"
}

// ArrayInfo carries the inferred element type of an array and whether
// the array grows (an append-style mutation was observed).
type ArrayInfo struct {
	Element  Base
	Growable bool
}

// mutatingArrayMethods are the methods that mutate an array receiver
// in place.
var mutatingArrayMethods = map[string]bool{
	"push":   true,
	"pop":    true,
	"insert": true,
	"remove": true,
	"clear":  true,
}

// IsMutatingMethod reports whether calling method on a receiver of the
// given kind mutates the receiver.
func IsMutatingMethod(receiver Base, method string) bool {
	if receiver == Array {
		return mutatingArrayMethods[method]
	}
	return false
}

// annotations maps source type annotations onto base kinds.
var annotations = map[string]Base{
	"i32":    Integer,
	"i64":    Integer,
	"f32":    Float,
	"f64":    Float,
	"string": String,
	"bool":   Boolean,
}

// FromAnnotation resolves an explicit source type annotation, returning
// Unknown for unrecognized spellings.
func FromAnnotation(ann string) Base {
	return annotations[strings.ToLower(ann)]
}

// annotationRust maps source type annotations onto Rust spellings. The
// annotation wins over the inferred kind so `n: i32` stays i32.
var annotationRust = map[string]string{
	"i32":    "i32",
	"i64":    "i64",
	"f32":    "f32",
	"f64":    "f64",
	"string": "String",
	"bool":   "bool",
}

// AnnotationToRust maps a source type annotation onto its Rust type,
// passing unrecognized spellings through unchanged.
func AnnotationToRust(ann string) string {
	if r, ok := annotationRust[strings.ToLower(ann)]; ok {
		return r
	}
	return ann
}

// ZeroValue returns the Rust zero-initializer for a Rust type spelling.
func ZeroValue(rustType string) string {
	switch rustType {
	case "i32", "i64":
		return "0"
	case "f32", "f64":
		return "0.0"
	case "String":
		return "String::new()"
	case "bool":
		return "false"
	default:
		return "Default::default()"
	}
}
