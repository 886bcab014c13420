package engine

import (
	"context"
	"log/slog"

	"github.com/erlkit/erljump/internal/backend"
)

// orchestrate walks the plan in order, running each location that the
// scan state permits and applying its continuation policy afterwards.
//
// State per the staged protocol: continueScanning gates execution of
// the next entry; stopped ends the plan outright. A StopIfResults entry
// that found something clears continueScanning, so later entries are
// skipped unless one of them re-enables scanning. Policies apply even
// to skipped entries; a skipped entry found nothing by definition.
func (e *executor) orchestrate(ctx context.Context, req Request, plan Plan) ([]backend.Match, error) {
	var results []backend.Match
	continueScanning := true
	stopped := false

	for _, loc := range plan {
		if stopped {
			break
		}

		var found []backend.Match
		if continueScanning {
			var err error
			found, err = e.search(ctx, req, loc)
			if err != nil {
				return nil, err
			}
			results = append(results, found...)
			slog.Debug("location_searched",
				slog.Bool("buffer", loc.Buffer),
				slog.String("dir", loc.Dir),
				slog.Int("matches", len(found)))
		}

		switch loc.Continuation {
		case StopIfResults:
			continueScanning = len(found) == 0
		case Stop:
			stopped = true
		case ContinueRegardless:
			continueScanning = true
		}
	}

	return dedup(results), nil
}

// dedup removes exact duplicates (same path, line, context) across
// locations, preserving first-seen order.
func dedup(matches []backend.Match) []backend.Match {
	if len(matches) < 2 {
		return matches
	}
	type key struct {
		path    string
		line    int
		context string
	}
	seen := make(map[key]bool, len(matches))
	out := make([]backend.Match, 0, len(matches))
	for _, m := range matches {
		k := key{m.Path, m.Line, m.Context}
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, m)
	}
	return out
}
