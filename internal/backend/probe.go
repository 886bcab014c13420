package backend

import (
	"log/slog"
	"os/exec"
	"strings"
	"sync"
)

// Runner checks whether a binary is usable. Split out so tests can
// simulate arbitrary tool environments.
type Runner interface {
	// Probe reports whether the named binary exists and runs, along
	// with its --version output when one could be captured.
	Probe(bin string) (version string, ok bool)
}

// execRunner probes by resolving the binary on PATH and running it once
// with --version. A non-zero exit still counts as present; only a
// missing binary counts as absent.
type execRunner struct{}

func (execRunner) Probe(bin string) (string, bool) {
	path, err := exec.LookPath(bin)
	if err != nil {
		return "", false
	}
	out, _ := exec.Command(path, "--version").Output()
	return string(out), true
}

// binsFor lists the binaries a backend needs.
func binsFor(id ID) []string {
	switch id {
	case Ag:
		return []string{"ag"}
	case Rg:
		return []string{"rg"}
	case GitGrep:
		return []string{"git"}
	case GitGrepPlusAg:
		return []string{"git", "ag"}
	case GnuGrep, Grep:
		return []string{"grep"}
	default:
		return nil
	}
}

// binState is one binary's memoized probe outcome.
type binState struct {
	once    sync.Once
	version string
	ok      bool
}

// Probes caches tool availability for the lifetime of the process.
// Tool presence does not change within a session, so each binary is
// probed at most once, even from concurrent goroutines sharing one
// cache. Construct a fresh Probes per process (or per test); there is
// no global state.
type Probes struct {
	runner Runner

	mu   sync.Mutex
	bins map[string]*binState
}

// NewProbes creates a probe cache backed by real subprocess probes.
func NewProbes() *Probes {
	return NewProbesWithRunner(execRunner{})
}

// NewProbesWithRunner creates a probe cache with a custom runner.
func NewProbesWithRunner(r Runner) *Probes {
	return &Probes{
		runner: r,
		bins:   make(map[string]*binState),
	}
}

// probeBin resolves one binary through the cache.
func (p *Probes) probeBin(bin string) (string, bool) {
	p.mu.Lock()
	s, ok := p.bins[bin]
	if !ok {
		s = &binState{}
		p.bins[bin] = s
	}
	p.mu.Unlock()

	s.once.Do(func() {
		s.version, s.ok = p.runner.Probe(bin)
		slog.Debug("binary_probed", slog.String("bin", bin), slog.Bool("available", s.ok))
	})
	return s.version, s.ok
}

// Available reports whether the backend's tools are installed,
// probing on first use and answering from cache afterwards.
//
// GnuGrep generates --include/--exclude-dir flags that only GNU grep
// accepts, so a grep binary that does not identify as GNU grep
// satisfies Grep but not GnuGrep. BSD grep's banner reads "GNU
// compatible", which is not compatible enough for those flags.
func (p *Probes) Available(id ID) bool {
	for _, bin := range binsFor(id) {
		version, ok := p.probeBin(bin)
		if !ok {
			return false
		}
		if id == GnuGrep && bin == "grep" && !strings.Contains(version, "GNU grep") {
			return false
		}
	}
	return true
}
