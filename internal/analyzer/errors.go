// SPDX-FileCopyrightText: 2026 zinc
// SPDX-License-Identifier: FSL-1.1-MIT

package analyzer

import (
	"fmt"
	"strings"

	"github.com/zinclang/zinc/internal/token"
)

// DiagnosticKind classifies resolution failures.
type DiagnosticKind int

const (
	// UnresolvedReference is an identifier with no matching symbol.
	UnresolvedReference DiagnosticKind = iota

	// InferenceFailure means Unknown reached a position requiring a
	// concrete type.
	InferenceFailure

	// ConflictingEvidence means two sources produced incompatible types
	// for the same symbol.
	ConflictingEvidence

	// StructuralError covers shape violations: method calls on
	// non-structs, field access on non-structs, and the like.
	StructuralError
)

var diagnosticKindNames = map[DiagnosticKind]string{
	UnresolvedReference: "unresolved reference",
	InferenceFailure:    "type inference failure",
	ConflictingEvidence: "conflicting type evidence",
	StructuralError:     "structural error",
}

func (k DiagnosticKind) String() string { return diagnosticKindNames[k] }

// Diagnostic is a single resolution failure with its source span and,
// for inference failures, the chain of evidence that led to it.
type Diagnostic struct {
	Kind     DiagnosticKind
	Interval token.Interval
	Function string // enclosing specialization, "" at global scope
	Message  string
	Evidence []string
}

func (d *Diagnostic) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s at %s", d.Kind, d.Interval)
	if d.Function != "" {
		fmt.Fprintf(&sb, " in %s", d.Function)
	}
	sb.WriteString(": ")
	sb.WriteString(d.Message)
	for _, ev := range d.Evidence {
		sb.WriteString("\n  ")
		sb.WriteString(ev)
	}
	return sb.String()
}

// Diagnostics is a collection of resolution failures.
type Diagnostics []*Diagnostic

func (ds Diagnostics) Error() string {
	if len(ds) == 0 {
		return "no diagnostics"
	}
	parts := make([]string, len(ds))
	for i, d := range ds {
		parts[i] = d.Error()
	}
	return strings.Join(parts, "\n")
}
