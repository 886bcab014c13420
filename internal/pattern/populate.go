package pattern

import (
	"regexp"
	"strings"

	"github.com/erlkit/erljump/internal/ident"
)

// Dialect identifies a concrete regex flavour spoken by a search tool.
type Dialect int

const (
	// DialectPCRE is the PCRE flavour used by ag. Supports lookahead.
	DialectPCRE Dialect = iota
	// DialectRust is the Rust regex flavour used by rg. No lookaround.
	// Go's regexp package accepts the same constructs, so in-buffer
	// searches populate with this dialect too.
	DialectRust
	// DialectERE is POSIX extended syntax as spoken by grep -E and
	// git grep -E.
	DialectERE
)

// Erlang identifiers may contain @ (node names) which no \w class covers,
// so each dialect gets an explicit boundary construct for \j.
//
// Templates only ever place \j after the symbol; the Rust and ERE
// substitutions match the character following the identifier (or end of
// line), which lookaround-free engines can express.
var boundaries = map[Dialect]string{
	DialectPCRE: `(?![A-Za-z0-9_@])`,
	DialectRust: `($|[^A-Za-z0-9_@])`,
	DialectERE:  `($|[^[:alnum:]_@])`,
}

var whitespace = map[Dialect]string{
	DialectPCRE: `\s`,
	DialectRust: `\s`,
	DialectERE:  `[[:space:]]`,
}

// fallbacks is the catch-all template used when every specific template
// came back empty: a plain word search for the raw symbol. \b is a GNU
// extension absent from POSIX ERE, so that dialect spells both word
// boundaries with character classes instead.
var fallbacks = map[Dialect]string{
	DialectPCRE: `\bJJJ\b`,
	DialectRust: `\bJJJ\b`,
	DialectERE:  `(^|[^[:alnum:]_@])JJJ($|[^[:alnum:]_@])`,
}

// Populate rewrites one abstract template into a concrete regex for the
// given dialect and identifier.
//
// Substitution order matters: the module name goes in before dialect
// rewriting so that a module containing regex metacharacters is escaped
// exactly once, and the symbol itself is escaped with QuoteMeta so that
// metacharacters in identifiers cannot alter the match.
//
// Returns "" for an empty template or empty symbol; callers skip empty
// results rather than building an empty alternation.
func Populate(tmpl string, id ident.Identifier, d Dialect) string {
	if tmpl == "" || id.Name == "" {
		return ""
	}

	out := tmpl
	if strings.Contains(out, "MMM") {
		if id.Module == "" {
			return ""
		}
		out = strings.ReplaceAll(out, "MMM", regexp.QuoteMeta(id.Module))
	}
	out = strings.ReplaceAll(out, "JJJ", regexp.QuoteMeta(id.Name))
	out = strings.ReplaceAll(out, `\j`, boundaries[d])
	out = strings.ReplaceAll(out, `\s`, whitespace[d])

	// rg treats a pattern starting with - as a flag even after -e on some
	// versions; wrap the dash in a class so it always reads as a pattern.
	if d == DialectRust && strings.HasPrefix(out, "-") {
		out = "[-]" + out[1:]
	}

	return out
}

// PopulateAll populates every template in the list, dropping the ones
// that come back empty. The relative order of the input is preserved.
func PopulateAll(tmpls []string, id ident.Identifier, d Dialect) []string {
	out := make([]string, 0, len(tmpls))
	for _, t := range tmpls {
		if p := Populate(t, id, d); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// PopulateFallback returns the catch-all pattern for the identifier in
// the given dialect.
func PopulateFallback(id ident.Identifier, d Dialect) string {
	return Populate(fallbacks[d], id, d)
}
