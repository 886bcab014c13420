// Package engine is the search-and-rank core of erljump. It walks an
// ordered plan of search locations, runs the selected backend over each,
// and ranks the matches by proximity to the point of invocation.
//
// One Resolve call is one search episode: synchronous, single-threaded,
// no index, no cache beyond the process-scoped tool probes.
package engine

import (
	"time"

	"github.com/erlkit/erljump/internal/backend"
	"github.com/erlkit/erljump/internal/config"
	"github.com/erlkit/erljump/internal/ident"
	"github.com/erlkit/erljump/internal/pattern"
)

// Continuation tells the orchestrator how to proceed after a plan entry.
type Continuation int

const (
	// StopIfResults stops scanning further locations once this entry
	// produced results. The default.
	StopIfResults Continuation = iota
	// Stop ends the plan after this entry unconditionally.
	Stop
	// ContinueRegardless keeps scanning whatever this entry produced.
	ContinueRegardless
)

// Location is one entry of a search plan: either the in-memory origin
// buffer or an on-disk directory, with an optional template override
// and a continuation policy.
type Location struct {
	// Buffer selects the in-memory origin buffer. Dir is ignored.
	Buffer bool

	// Dir is the directory to search when Buffer is false.
	Dir string

	// Templates overrides the kind-derived abstract templates for this
	// location. Nil means use the defaults.
	Templates []string

	// Continuation is applied after this entry is processed.
	Continuation Continuation
}

// Plan is an ordered list of search locations.
type Plan []Location

// Request describes one search episode.
type Request struct {
	// Ident is the classified symbol, supplied by the caller.
	Ident ident.Identifier

	// Origin is the point of invocation.
	Origin ident.Origin

	// Intent selects definition or reference search.
	Intent pattern.Intent

	// Project scopes the search.
	Project config.Project

	// Plan overrides the default staged plan when non-nil.
	Plan Plan

	// BufferOnly restricts the search to the origin buffer, for symbols
	// that cannot be referenced outside it (non-exported functions).
	BufferOnly bool

	// Aggressive enables jumping without confirmation on ambiguous
	// contexts.
	Aggressive bool

	// PreferExternal ranks matches outside the origin file first.
	PreferExternal bool
}

// Result is the ranked outcome of a search episode.
type Result struct {
	// Symbol is the literal text that was searched for.
	Symbol string `json:"symbol"`

	// Backend is the tool that ran the search.
	Backend string `json:"backend"`

	// Matches is the ranked, deduplicated candidate list.
	Matches []backend.Match `json:"matches"`

	// AutoJump is true when the single best candidate is safe to jump
	// to without presenting a choice.
	AutoJump bool `json:"auto_jump"`

	// Target is the jump destination when AutoJump is true.
	Target *backend.Match `json:"target,omitempty"`

	// Elapsed is the wall-clock duration of the whole episode.
	Elapsed time.Duration `json:"elapsed_ns"`

	// SlowWarning carries the one-shot slow-search hint, empty when the
	// episode finished under the configured threshold.
	SlowWarning string `json:"slow_warning,omitempty"`
}
