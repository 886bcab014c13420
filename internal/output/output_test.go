package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erlkit/erljump/internal/backend"
)

// A bytes.Buffer is not a terminal, so every test here exercises the
// plain machine-readable path.

func TestMatch_PlainGrepShape(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)

	w.Match(backend.Match{Path: "src/a.erl", Line: 42, Context: "foo() ->"})

	assert.Equal(t, "src/a.erl:42:foo() ->\n", buf.String())
	assert.False(t, w.IsTerminal())
}

func TestMatches_NumberedAndAligned(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)

	matches := make([]backend.Match, 10)
	for i := range matches {
		matches[i] = backend.Match{Path: "a.erl", Line: i + 1, Context: "x"}
	}
	w.Matches(matches)

	lines := bytes.Split(bytes.TrimRight(buf.Bytes(), "\n"), []byte("\n"))
	assert.Len(t, lines, 10)
	assert.Equal(t, " 1. a.erl:1:x", string(lines[0]), "single digits pad to the widest index")
	assert.Equal(t, "10. a.erl:10:x", string(lines[9]))
}

func TestNoMatches(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)

	w.NoMatches("foo")

	assert.Equal(t, "no matches found for \"foo\"\n", buf.String())
}

func TestWarningAndError_Prefixed(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)

	w.Warning("slow search")
	w.Error("no backend")

	out := buf.String()
	assert.Contains(t, out, "⚠️  slow search\n")
	assert.Contains(t, out, "❌ no backend\n")
}

func TestInfofAndNewline(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)

	w.Infof("checked %d tools", 5)
	w.Newline()

	assert.Equal(t, "checked 5 tools\n\n", buf.String())
}
