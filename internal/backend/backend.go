// Package backend abstracts the external line-search tools erljump can
// drive: ag, rg, git grep, a git-grep/ag composite, GNU grep and plain
// grep. Each backend knows how to generate a shell command for a query,
// how to parse the tool's output, and which regex dialect it speaks.
//
// The set of backends is a closed enumeration. Selection happens once per
// search episode; generation and parsing are pure functions of the query.
package backend

import (
	"strings"

	"github.com/erlkit/erljump/internal/pattern"
)

// ID enumerates the supported search tools.
type ID int

const (
	// None means no backend (unset preference).
	None ID = iota
	// Ag is the silver searcher.
	Ag
	// Rg is ripgrep.
	Rg
	// GitGrep is git grep inside a repository.
	GitGrep
	// GitGrepPlusAg narrows the file list with git ls-files, then
	// searches those files with ag. Tracked-file accuracy at ag speed.
	GitGrepPlusAg
	// GnuGrep is GNU grep with --include/--exclude-dir support.
	GnuGrep
	// Grep is lowest-common-denominator recursive grep.
	Grep
)

// String returns the configuration name of the backend.
func (id ID) String() string {
	switch id {
	case Ag:
		return "ag"
	case Rg:
		return "rg"
	case GitGrep:
		return "git-grep"
	case GitGrepPlusAg:
		return "git-grep-plus-ag"
	case GnuGrep:
		return "gnu-grep"
	case Grep:
		return "grep"
	default:
		return ""
	}
}

// ParseID converts a configuration name into an ID.
func ParseID(s string) (ID, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ag":
		return Ag, true
	case "rg", "ripgrep":
		return Rg, true
	case "git-grep", "gitgrep":
		return GitGrep, true
	case "git-grep-plus-ag":
		return GitGrepPlusAg, true
	case "gnu-grep", "gnugrep":
		return GnuGrep, true
	case "grep":
		return Grep, true
	case "":
		return None, true
	default:
		return None, false
	}
}

// Query is one directory search request, already populated for the
// target backend's regex dialect.
type Query struct {
	// Patterns are the concrete regexes to search for, most specific
	// first. They are joined into one alternation. Empty means no
	// search: Generate returns "".
	Patterns []string

	// FileGlobs restricts the search to matching file names
	// (e.g. *.erl, *.hrl).
	FileGlobs []string

	// Excludes are directory names or path fragments to skip.
	Excludes []string

	// Dir is the directory to search.
	Dir string
}

// Backend is one search tool variant.
type Backend interface {
	// ID returns the backend identifier.
	ID() ID

	// Dialect returns the regex dialect the tool expects.
	Dialect() pattern.Dialect

	// Generate builds a single shell-invokable command string for the
	// query, or "" when the query has no patterns.
	Generate(q Query) string

	// Parse turns the raw tool output into matches. Paths in the output
	// may be relative to q.Dir depending on the tool; Parse normalizes
	// them against dir.
	Parse(raw string, dir string) []Match
}

// For returns the backend implementation for an ID.
// Panics on None or an unknown ID; callers validate IDs at parse time.
func For(id ID) Backend {
	switch id {
	case Ag:
		return agBackend{}
	case Rg:
		return rgBackend{}
	case GitGrep:
		return gitGrepBackend{}
	case GitGrepPlusAg:
		return gitGrepPlusAgBackend{}
	case GnuGrep:
		return gnuGrepBackend{}
	case Grep:
		return grepBackend{}
	default:
		panic("backend: no implementation for " + id.String())
	}
}

// alternation joins patterns into a single grouped alternation.
func alternation(patterns []string) string {
	if len(patterns) == 1 {
		return patterns[0]
	}
	return "(" + strings.Join(patterns, "|") + ")"
}

// shellQuote wraps s in single quotes, escaping embedded single quotes,
// so regex metacharacters survive the shell.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
