package backend

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
)

// Match is one structured search hit.
type Match struct {
	// Path is the file containing the hit.
	Path string `json:"path"`

	// Line is the 1-based line number.
	Line int `json:"line"`

	// Context is the raw source line text.
	Context string `json:"context"`

	// LineDistance is Line minus the origin line. Filled in by the
	// engine once the origin is known; zero until then.
	LineDistance int `json:"line_distance"`
}

// Equal reports exact duplication: same path, line and context.
func (m Match) Equal(o Match) bool {
	return m.Path == o.Path && m.Line == o.Line && m.Context == o.Context
}

// outputLine matches the <path>:<line>:<content> shape all backends
// emit with line numbers enabled. Lazy path match so Windows-style
// drive letters don't split on the wrong colon.
var outputLine = regexp.MustCompile(`^(.+?):(\d+):(.*)$`)

// parseLines turns raw line-oriented tool output into matches.
//
// Tool noise (permission warnings, missing-file messages) does not fit
// the path:line:content shape and is discarded. Lines with an empty
// content field are discarded too; some tools emit those for
// binary-ish input.
//
// base is prepended to relative paths for tools that report paths
// relative to the search root (git grep and the composite backend).
func parseLines(raw, base string) []Match {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var matches []Match
	for _, line := range strings.Split(raw, "\n") {
		groups := outputLine.FindStringSubmatch(line)
		if groups == nil {
			continue
		}
		lineno, err := strconv.Atoi(groups[2])
		if err != nil || lineno < 1 {
			continue
		}
		content := groups[3]
		if content == "" {
			continue
		}
		path := groups[1]
		if base != "" && !filepath.IsAbs(path) {
			path = filepath.Join(base, path)
		}
		matches = append(matches, Match{
			Path:    filepath.Clean(path),
			Line:    lineno,
			Context: content,
		})
	}
	return matches
}

// ExcludeSelf removes exactly one match at the origin path and line:
// the search's own point of invocation, not a genuine hit.
func ExcludeSelf(matches []Match, originPath string, originLine int) []Match {
	origin := filepath.Clean(originPath)
	out := make([]Match, 0, len(matches))
	excluded := false
	for _, m := range matches {
		if !excluded && m.Line == originLine && samePath(m.Path, origin) {
			excluded = true
			continue
		}
		out = append(out, m)
	}
	return out
}

// samePath compares two paths, tolerating one being relative.
func samePath(a, b string) bool {
	if a == b {
		return true
	}
	aa, errA := filepath.Abs(a)
	ab, errB := filepath.Abs(b)
	return errA == nil && errB == nil && aa == ab
}
