// Package pattern holds the abstract regex templates used to locate Erlang
// symbols, and the populator that rewrites a template into the concrete
// dialect of a particular search tool.
//
// Templates are abstract: they contain the placeholder JJJ for the symbol
// text, MMM for a qualifying module name, \j for a trailing identifier
// boundary and \s for whitespace. One logical pattern is written once and
// rewritten per tool, so adding a backend never means re-deriving the
// Erlang syntax rules.
package pattern

import "github.com/erlkit/erljump/internal/ident"

// Intent selects between definition and reference templates.
type Intent int

const (
	// Definitions searches for declaration sites.
	Definitions Intent = iota
	// References searches for call/usage sites.
	References
)

// String returns the wire name of the intent.
func (i Intent) String() string {
	if i == References {
		return "references"
	}
	return "definitions"
}

// Definition templates, ordered most-specific first. A function clause
// head starts at column zero, so the line anchor does most of the work.
var (
	funcDefs = []string{
		`^JJJ\s*\(`,
	}
	macroDefs = []string{
		`^-\s*define\s*\(\s*JJJ\s*\(`,
		`^-\s*define\s*\(\s*JJJ\s*,`,
	}
	recordDefs = []string{
		`^-\s*record\s*\(\s*JJJ\s*,`,
	}
	moduleDefs = []string{
		`^-\s*module\s*\(\s*JJJ\j`,
	}
	varDefs = []string{
		`JJJ\s*=[^:=]`,
	}
	// Unclassified symbols try every declaration form in turn.
	anyDefs = []string{
		`^JJJ\s*\(`,
		`^-\s*define\s*\(\s*JJJ\j`,
		`^-\s*record\s*\(\s*JJJ\s*,`,
		`JJJ\s*=[^:=]`,
	}
)

// Reference templates. The qualified form is listed before the bare form
// so that a module-qualified hit outranks an accidental name collision.
var (
	funcRefsQualified = []string{
		`MMM\s*:\s*JJJ\s*\(`,
	}
	funcRefs = []string{
		`JJJ\s*\(`,
	}
	macroRefs = []string{
		`\?JJJ\j`,
	}
	recordRefs = []string{
		`#JJJ\j`,
	}
	moduleRefs = []string{
		`JJJ\s*:\s*[a-z]`,
	}
	varRefs = []string{
		`JJJ\j`,
	}
)

// TemplatesFor returns the ordered abstract template list for an
// identifier and search intent. The returned slice must not be mutated.
// An empty slice means no search should be attempted for this kind.
func TemplatesFor(id ident.Identifier, intent Intent) []string {
	if intent == Definitions {
		switch id.Kind {
		case ident.KindMacro:
			return macroDefs
		case ident.KindRecord:
			return recordDefs
		case ident.KindModule:
			return moduleDefs
		case ident.KindVariable:
			return varDefs
		case ident.KindQualifiedFunction:
			return funcDefs
		default:
			return anyDefs
		}
	}

	switch id.Kind {
	case ident.KindMacro:
		return macroRefs
	case ident.KindRecord:
		return recordRefs
	case ident.KindModule:
		return moduleRefs
	case ident.KindVariable:
		return varRefs
	case ident.KindQualifiedFunction:
		if id.Qualified() {
			return funcRefsQualified
		}
		return funcRefs
	default:
		return funcRefs
	}
}
