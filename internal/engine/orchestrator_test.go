package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erlkit/erljump/internal/backend"
	"github.com/erlkit/erljump/internal/config"
	"github.com/erlkit/erljump/internal/ident"
	"github.com/erlkit/erljump/internal/pattern"
)

// scriptRunner returns canned output for commands matching a key
// substring, recording every command it saw.
type scriptRunner struct {
	outputs map[string]string
	calls   []string
}

func (r *scriptRunner) Run(_ context.Context, command string) (string, error) {
	r.calls = append(r.calls, command)
	for key, out := range r.outputs {
		if strings.Contains(command, key) {
			return out, nil
		}
	}
	return "", nil
}

func (r *scriptRunner) callsFor(key string) int {
	n := 0
	for _, c := range r.calls {
		if strings.Contains(c, key) {
			n++
		}
	}
	return n
}

func testRequest(t *testing.T) Request {
	t.Helper()
	id, err := ident.New(ident.KindQualifiedFunction, "", "foo", -1)
	require.NoError(t, err)
	return Request{
		Ident:   id,
		Origin:  ident.Origin{Path: "orig.erl", Line: 100},
		Intent:  pattern.Definitions,
		Project: config.Project{Root: "/proj", Language: "erlang"},
	}
}

func TestOrchestrate_StopIfResultsShortCircuits(t *testing.T) {
	runner := &scriptRunner{outputs: map[string]string{
		"/a": "src/x.erl:5:foo() ->\n",
		"/b": "src/y.erl:9:foo() ->\n",
	}}
	exec := newExecutor(backend.For(backend.Grep), runner)

	plan := Plan{
		{Dir: "/a", Continuation: StopIfResults},
		{Dir: "/b", Continuation: StopIfResults},
	}
	matches, err := exec.orchestrate(context.Background(), testRequest(t), plan)

	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "src/x.erl", matches[0].Path)
	assert.Equal(t, 0, runner.callsFor("/b"), "second location must not run once the first produced results")
}

func TestOrchestrate_StopIsUnconditional(t *testing.T) {
	runner := &scriptRunner{outputs: map[string]string{}}
	exec := newExecutor(backend.For(backend.Grep), runner)

	plan := Plan{
		{Dir: "/a", Continuation: Stop},
		{Dir: "/b", Continuation: StopIfResults},
	}
	matches, err := exec.orchestrate(context.Background(), testRequest(t), plan)

	require.NoError(t, err)
	assert.Empty(t, matches)
	// Empty output triggers the one-shot fallback retry for /a.
	assert.Equal(t, 2, runner.callsFor("/a"))
	assert.Equal(t, 0, runner.callsFor("/b"), "stop ends the plan even with zero results")
}

func TestOrchestrate_ContinueRegardlessScansEverything(t *testing.T) {
	runner := &scriptRunner{outputs: map[string]string{
		"/a": "src/x.erl:5:foo() ->\n",
		"/b": "src/y.erl:9:foo() ->\n",
	}}
	exec := newExecutor(backend.For(backend.Grep), runner)

	plan := Plan{
		{Dir: "/a", Continuation: ContinueRegardless},
		{Dir: "/b", Continuation: ContinueRegardless},
	}
	matches, err := exec.orchestrate(context.Background(), testRequest(t), plan)

	require.NoError(t, err)
	assert.Len(t, matches, 2)
}

func TestOrchestrate_DedupAcrossLocations(t *testing.T) {
	// Overlapping locations can report the same hit twice.
	same := "src/x.erl:5:foo() ->\n"
	runner := &scriptRunner{outputs: map[string]string{"/a": same, "/b": same}}
	exec := newExecutor(backend.For(backend.Grep), runner)

	plan := Plan{
		{Dir: "/a", Continuation: ContinueRegardless},
		{Dir: "/b", Continuation: ContinueRegardless},
	}
	matches, err := exec.orchestrate(context.Background(), testRequest(t), plan)

	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestDedup_ExactDuplicatesOnly(t *testing.T) {
	matches := []backend.Match{
		{Path: "a.erl", Line: 1, Context: "foo"},
		{Path: "a.erl", Line: 1, Context: "foo"},
		{Path: "a.erl", Line: 1, Context: "foo "},
	}

	out := dedup(matches)

	assert.Len(t, out, 2, "differing context is not a duplicate")
}
