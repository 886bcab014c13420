// Package ident defines the classified identifier model consumed by the
// search engine. Classification itself happens in the editor (or via CLI
// flags); this package never inspects source syntax.
package ident

import (
	"fmt"
	"strings"
)

// Kind is the syntactic classification of the symbol under point.
type Kind int

const (
	// KindNone means the caller could not classify the symbol.
	KindNone Kind = iota
	// KindQualifiedFunction is a module-qualified call like lists:map.
	KindQualifiedFunction
	// KindMacro is a preprocessor macro reference like ?TIMEOUT.
	KindMacro
	// KindRecord is a record reference like #state.
	KindRecord
	// KindModule is a bare module name.
	KindModule
	// KindVariable is a variable occurrence. Variables are searched with the
	// catch-all pattern and never block an automatic jump.
	KindVariable
)

// String returns the wire name of the kind.
func (k Kind) String() string {
	switch k {
	case KindQualifiedFunction:
		return "function"
	case KindMacro:
		return "macro"
	case KindRecord:
		return "record"
	case KindModule:
		return "module"
	case KindVariable:
		return "variable"
	default:
		return ""
	}
}

// ParseKind converts a wire name into a Kind.
// Unknown or empty strings map to KindNone.
func ParseKind(s string) Kind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "function", "qualified-function":
		return KindQualifiedFunction
	case "macro":
		return KindMacro
	case "record":
		return KindRecord
	case "module":
		return KindModule
	case "variable", "var":
		return KindVariable
	default:
		return KindNone
	}
}

// Identifier is a classified symbol plus its qualification hints.
// It is immutable once constructed.
type Identifier struct {
	// Kind is the syntactic classification.
	Kind Kind

	// Module is the qualifying module name, if the call site was
	// module-qualified (the MMM of lists:map -> "lists").
	Module string

	// Name is the bare symbol text. Never empty for a valid identifier.
	Name string

	// Arity is the function arity hint, or -1 when unknown.
	Arity int
}

// New constructs an Identifier, validating the invariants.
func New(kind Kind, module, name string, arity int) (Identifier, error) {
	if strings.TrimSpace(name) == "" {
		return Identifier{}, fmt.Errorf("identifier name must not be empty")
	}
	if arity < 0 {
		arity = -1
	}
	return Identifier{Kind: kind, Module: module, Name: name, Arity: arity}, nil
}

// Qualified reports whether the identifier carries a module qualifier.
func (id Identifier) Qualified() bool {
	return id.Module != ""
}

// Display returns the identifier as the user would write it.
func (id Identifier) Display() string {
	var b strings.Builder
	switch id.Kind {
	case KindMacro:
		b.WriteString("?")
	case KindRecord:
		b.WriteString("#")
	}
	if id.Module != "" {
		b.WriteString(id.Module)
		b.WriteString(":")
	}
	b.WriteString(id.Name)
	if id.Arity >= 0 {
		fmt.Fprintf(&b, "/%d", id.Arity)
	}
	return b.String()
}

// Origin is the point of invocation: the buffer or file the user was in
// and the 1-based line of the cursor.
type Origin struct {
	// Path is the origin file path as the editor reported it.
	Path string

	// Line is the 1-based cursor line.
	Line int

	// Text is the full buffer contents at the time of invocation.
	// May differ from the on-disk file when the buffer is modified.
	// Empty means the on-disk contents should be used.
	Text string
}
