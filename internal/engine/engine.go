package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/erlkit/erljump/internal/backend"
	"github.com/erlkit/erljump/internal/config"
	jerrors "github.com/erlkit/erljump/internal/errors"
	"github.com/erlkit/erljump/internal/ident"
	"github.com/erlkit/erljump/internal/pattern"
)

// Session holds the process-scoped state shared by search episodes: the
// memoized tool probes and the memoized ERL_LIBS directory list. Both
// are write-once; a fresh Session per test gives a clean slate.
type Session struct {
	cfg    config.Config
	probes *backend.Probes
	runner CommandRunner

	getenv      func(string) string
	libResolved bool
	libDirs     []string
}

// Option configures a Session.
type Option func(*Session)

// WithProbes injects a pre-built probe cache.
func WithProbes(p *backend.Probes) Option {
	return func(s *Session) { s.probes = p }
}

// WithRunner injects the command runner, for tests.
func WithRunner(r CommandRunner) Option {
	return func(s *Session) { s.runner = r }
}

// WithGetenv injects the environment lookup, for tests.
func WithGetenv(fn func(string) string) Option {
	return func(s *Session) { s.getenv = fn }
}

// NewSession creates a session for one process lifetime.
func NewSession(cfg config.Config, opts ...Option) *Session {
	s := &Session{
		cfg:    cfg,
		getenv: os.Getenv,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.probes == nil {
		s.probes = backend.NewProbes()
	}
	return s
}

// Probes exposes the availability cache (for the doctor command).
func (s *Session) Probes() *backend.Probes {
	return s.probes
}

// LibDirs returns the auxiliary library directories from ERL_LIBS,
// resolved once per session.
func (s *Session) LibDirs() []string {
	if !s.libResolved {
		s.libDirs = config.ParseLibPath(s.getenv("ERL_LIBS"))
		s.libResolved = true
	}
	return s.libDirs
}

// Resolve runs one search episode: select a backend, walk the staged
// plan, rank the results and make the jump decision.
func (s *Session) Resolve(ctx context.Context, req Request) (*Result, error) {
	if req.Ident.Name == "" {
		return nil, jerrors.NoSymbol()
	}

	force, _ := backend.ParseID(s.cfg.Backend.Force)
	prefer, _ := backend.ParseID(s.cfg.Backend.Prefer)
	be, err := backend.Select(s.probes, req.Project.Root, force, prefer)
	if err != nil {
		return nil, err
	}

	plan := req.Plan
	if plan == nil {
		plan = s.planFor(req)
	}

	start := time.Now()
	exec := newExecutor(be, s.runner)
	matches, err := exec.orchestrate(ctx, req, plan)
	if err != nil {
		return nil, err
	}
	elapsed := time.Since(start)

	lang := req.Project.LanguageRules()
	matches = rank(matches, req.Origin, lang.Comment, req.PreferExternal)
	autoJump, target := decide(matches, req.Origin, req.Ident.Kind, req.Aggressive)

	res := &Result{
		Symbol:   req.Ident.Name,
		Backend:  be.ID().String(),
		Matches:  matches,
		AutoJump: autoJump,
		Target:   target,
		Elapsed:  elapsed,
	}

	if threshold := s.cfg.SlowWarnThreshold(); elapsed > threshold {
		res.SlowWarning = fmt.Sprintf(
			"search took %s (over %s); consider a faster backend or narrower include paths",
			elapsed.Round(time.Millisecond), threshold)
		slog.Warn("slow_search",
			slog.Duration("elapsed", elapsed),
			slog.String("symbol", req.Ident.Name),
			slog.String("backend", be.ID().String()))
	}

	slog.Info("search_complete",
		slog.String("symbol", req.Ident.Name),
		slog.String("intent", req.Intent.String()),
		slog.Int("matches", len(matches)),
		slog.Bool("auto_jump", autoJump))

	return res, nil
}

// planFor builds the default staged plan: origin buffer, project root,
// configured include paths, then ERL_LIBS directories.
//
// Definition search short-circuits location by location: the nearest
// definition wins. Reference search wants every usage, so on-disk
// locations continue regardless and the buffer stage is skipped (the
// root scan already covers the origin file).
func (s *Session) planFor(req Request) Plan {
	if req.BufferOnly {
		return Plan{{Buffer: true, Continuation: Stop}}
	}

	dirs := make([]string, 0, 2+len(req.Project.Includes))
	dirs = append(dirs, req.Project.Root)
	dirs = append(dirs, req.Project.Includes...)
	dirs = append(dirs, s.LibDirs()...)

	var plan Plan
	cont := StopIfResults
	if req.Intent == pattern.References {
		cont = ContinueRegardless
	} else {
		plan = append(plan, Location{Buffer: true, Continuation: StopIfResults})
	}
	for _, d := range dirs {
		plan = append(plan, Location{Dir: d, Continuation: cont})
	}
	return plan
}

// StaleTarget reports whether the jump destination is the origin file
// while the supplied buffer text differs from what is on disk. The
// recorded line number may then be off; the caller warns or asks for
// confirmation per configuration.
func StaleTarget(target *backend.Match, origin ident.Origin) bool {
	if target == nil || origin.Text == "" {
		return false
	}
	if !sameFile(target.Path, origin.Path) {
		return false
	}
	data, err := os.ReadFile(origin.Path)
	if err != nil {
		return false
	}
	return string(data) != origin.Text
}
