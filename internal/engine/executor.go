package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"regexp"
	"strings"

	"github.com/erlkit/erljump/internal/backend"
	jerrors "github.com/erlkit/erljump/internal/errors"
	"github.com/erlkit/erljump/internal/pattern"
)

// CommandRunner executes one generated search command and returns its
// full stdout. Implementations must treat "matched nothing" as empty
// output, not an error.
type CommandRunner interface {
	Run(ctx context.Context, command string) (string, error)
}

// shellRunner runs commands through sh -c, buffering all output.
// grep-family tools exit 1 on zero matches; that is not a failure.
// Exit 2 and above is a real failure (bad flag, unreadable path, bad
// pattern) and must never masquerade as an empty result.
type shellRunner struct{}

func (shellRunner) Run(ctx context.Context, command string) (string, error) {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			if exitErr.ExitCode() == 1 {
				return string(out), nil
			}
			msg := fmt.Sprintf("search command exited %d", exitErr.ExitCode())
			if stderr := strings.TrimSpace(string(exitErr.Stderr)); stderr != "" {
				msg += ": " + stderr
			}
			return "", jerrors.New(jerrors.ErrCodeCommandFailed, msg, err)
		}
		return "", jerrors.Wrap(jerrors.ErrCodeCommandFailed, err)
	}
	return string(out), nil
}

// executor runs one backend over one search location.
type executor struct {
	be     backend.Backend
	runner CommandRunner
}

func newExecutor(be backend.Backend, runner CommandRunner) *executor {
	if runner == nil {
		runner = shellRunner{}
	}
	return &executor{be: be, runner: runner}
}

// search runs the location and returns filtered matches. A location
// that yields nothing for the specific templates is retried once with
// the catch-all fallback pattern; some tool/template combinations
// legitimately return nothing for a too-specific pattern.
func (e *executor) search(ctx context.Context, req Request, loc Location) ([]backend.Match, error) {
	templates := loc.Templates
	if templates == nil {
		templates = pattern.TemplatesFor(req.Ident, req.Intent)
	}
	if len(templates) == 0 {
		return nil, nil
	}

	var matches []backend.Match
	var err error
	if loc.Buffer {
		matches = e.searchBuffer(req, templates)
	} else {
		matches, err = e.searchDir(ctx, req, loc.Dir, templates)
		if err != nil {
			return nil, err
		}
	}

	matches = backend.ExcludeSelf(matches, req.Origin.Path, req.Origin.Line)
	matches = filterContext(matches, req.Ident.Name)
	matches = filterSubsequentClauses(matches, req.Ident.Name)
	return matches, nil
}

// searchBuffer matches templates against the in-memory origin text,
// no subprocess involved. Patterns are populated with the Rust dialect,
// which Go's regexp engine accepts unchanged.
func (e *executor) searchBuffer(req Request, templates []string) []backend.Match {
	text := req.Origin.Text
	if text == "" {
		data, err := os.ReadFile(req.Origin.Path)
		if err != nil {
			return nil
		}
		text = string(data)
	}

	patterns := pattern.PopulateAll(templates, req.Ident, pattern.DialectRust)
	matches := matchLines(text, req.Origin.Path, patterns)
	if len(matches) == 0 {
		if fb := pattern.PopulateFallback(req.Ident, pattern.DialectRust); fb != "" {
			matches = matchLines(text, req.Origin.Path, []string{fb})
		}
	}
	return matches
}

// matchLines applies compiled patterns line by line. An uncompilable
// pattern is skipped rather than failing the location.
func matchLines(text, path string, patterns []string) []backend.Match {
	res := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			slog.Debug("buffer_pattern_skipped", slog.String("pattern", p), slog.String("error", err.Error()))
			continue
		}
		res = append(res, re)
	}
	if len(res) == 0 {
		return nil
	}

	var matches []backend.Match
	for i, line := range strings.Split(text, "\n") {
		for _, re := range res {
			if re.MatchString(line) {
				matches = append(matches, backend.Match{
					Path:    path,
					Line:    i + 1,
					Context: line,
				})
				break
			}
		}
	}
	return matches
}

// searchDir generates and runs the backend command for a directory,
// retrying once with the fallback pattern on empty output.
func (e *executor) searchDir(ctx context.Context, req Request, dir string, templates []string) ([]backend.Match, error) {
	patterns := pattern.PopulateAll(templates, req.Ident, e.be.Dialect())
	out, err := e.runQuery(ctx, req, dir, patterns)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(out) == "" {
		fb := pattern.PopulateFallback(req.Ident, e.be.Dialect())
		if fb == "" {
			return nil, nil
		}
		slog.Debug("fallback_search", slog.String("dir", dir), slog.String("pattern", fb))
		out, err = e.runQuery(ctx, req, dir, []string{fb})
		if err != nil {
			return nil, err
		}
	}

	return e.be.Parse(out, dir), nil
}

// runQuery builds and executes one command. An empty generated command
// means "no search performed", not an error.
func (e *executor) runQuery(ctx context.Context, req Request, dir string, patterns []string) (string, error) {
	cmd := e.be.Generate(backend.Query{
		Patterns:  patterns,
		FileGlobs: req.Project.LanguageRules().FileGlobs,
		Excludes:  req.Project.Excludes,
		Dir:       dir,
	})
	if cmd == "" {
		return "", nil
	}
	slog.Debug("search_command", slog.String("backend", e.be.ID().String()), slog.String("command", cmd))
	return e.runner.Run(ctx, cmd)
}

// filterContext keeps only matches whose context actually contains the
// symbol text. Dialect boundary substitution can produce hits on lines
// that merely resemble the pattern.
func filterContext(matches []backend.Match, symbol string) []backend.Match {
	out := make([]backend.Match, 0, len(matches))
	for _, m := range matches {
		if strings.Contains(m.Context, symbol) {
			out = append(out, m)
		}
	}
	return out
}

// filterSubsequentClauses keeps the first match per file whose context
// begins with the symbol itself. A context starting with the symbol is
// a function-clause head; later clauses of the same multi-clause
// function are not separately useful jump targets.
func filterSubsequentClauses(matches []backend.Match, symbol string) []backend.Match {
	seen := make(map[string]bool)
	out := make([]backend.Match, 0, len(matches))
	for _, m := range matches {
		if strings.HasPrefix(m.Context, symbol) {
			if seen[m.Path] {
				continue
			}
			seen[m.Path] = true
		}
		out = append(out, m)
	}
	return out
}
