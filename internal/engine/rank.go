package engine

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/erlkit/erljump/internal/backend"
	"github.com/erlkit/erljump/internal/ident"
)

// rank orders and filters the deduplicated matches.
//
// Primary order is line distance from the origin, a proximity heuristic.
// Commented-out code is dropped. Matches in the origin file are placed
// first (or last in external-preference mode); the remainder is ordered
// by path length, then line number, as a weak proximity-to-root signal.
func rank(matches []backend.Match, origin ident.Origin, commentMarker string, preferExternal bool) []backend.Match {
	for i := range matches {
		matches[i].LineDistance = matches[i].Line - origin.Line
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return absInt(matches[i].LineDistance) < absInt(matches[j].LineDistance)
	})

	kept := matches[:0]
	for _, m := range matches {
		if commentMarker != "" && strings.HasPrefix(strings.TrimSpace(m.Context), commentMarker) {
			continue
		}
		kept = append(kept, m)
	}

	var local, elsewhere []backend.Match
	for _, m := range kept {
		if sameFile(m.Path, origin.Path) {
			local = append(local, m)
		} else {
			elsewhere = append(elsewhere, m)
		}
	}

	// The original comparator here combined both keys with AND, which is
	// not a total order; this is a proper lexicographic version.
	sort.SliceStable(elsewhere, func(i, j int) bool {
		li, lj := len(elsewhere[i].Path), len(elsewhere[j].Path)
		if li != lj {
			return li < lj
		}
		return elsewhere[i].Line < elsewhere[j].Line
	})

	if preferExternal {
		return append(elsewhere, local...)
	}
	return append(local, elsewhere...)
}

// decide applies the auto-jump policy to an already-ranked list.
//
// A precise context (typed function/macro/record) with a single match in
// the origin file is safe to jump to automatically; ambiguous or untyped
// contexts require confirmation unless aggressive mode accepts the risk
// of a false positive.
//
// The safety test reasons about the unique origin-file match, so that
// match is the jump target even when external-preference ranking has
// moved it off the top of the list. Aggressive mode alone jumps to the
// top-ranked candidate, whatever it is.
func decide(matches []backend.Match, origin ident.Origin, kind ident.Kind, aggressive bool) (bool, *backend.Match) {
	if len(matches) == 0 {
		return false, nil
	}
	if aggressive {
		return true, &matches[0]
	}

	var local *backend.Match
	localCount := 0
	for i := range matches {
		if sameFile(matches[i].Path, origin.Path) {
			localCount++
			if local == nil {
				local = &matches[i]
			}
		}
	}

	untyped := kind == ident.KindVariable || kind == ident.KindNone
	if localCount == 1 && (len(matches) == 1 || untyped) {
		return true, local
	}
	return false, nil
}

func sameFile(a, b string) bool {
	if a == b {
		return true
	}
	aa, errA := filepath.Abs(a)
	ab, errB := filepath.Abs(b)
	return errA == nil && errB == nil && aa == ab
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
