package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erlkit/erljump/internal/backend"
	"github.com/erlkit/erljump/internal/ident"
)

var rankOrigin = ident.Origin{Path: "src/a.erl", Line: 10}

func TestRank_ClosestLineFirst(t *testing.T) {
	matches := []backend.Match{
		{Path: "src/a.erl", Line: 50, Context: "foo() ->"},
		{Path: "src/a.erl", Line: 12, Context: "foo() ->"},
		{Path: "src/a.erl", Line: 3, Context: "foo() ->"},
	}

	out := rank(matches, rankOrigin, "%", false)

	require.Len(t, out, 3)
	assert.Equal(t, 12, out[0].Line, "2 lines away beats 7 and 40")
	assert.Equal(t, 3, out[1].Line)
	assert.Equal(t, 50, out[2].Line)
	assert.Equal(t, 2, out[0].LineDistance)
	assert.Equal(t, -7, out[1].LineDistance)
}

func TestRank_DropsCommentedOutCode(t *testing.T) {
	matches := []backend.Match{
		{Path: "src/a.erl", Line: 3, Context: "%% foo() ->"},
		{Path: "src/a.erl", Line: 20, Context: "  % foo() -> old"},
		{Path: "src/b.erl", Line: 7, Context: "foo() ->"},
	}

	out := rank(matches, rankOrigin, "%", false)

	require.Len(t, out, 1)
	assert.Equal(t, "src/b.erl", out[0].Path)
}

func TestRank_OriginFileFirst(t *testing.T) {
	matches := []backend.Match{
		{Path: "src/b.erl", Line: 11, Context: "foo() ->"},
		{Path: "src/a.erl", Line: 90, Context: "foo() ->"},
	}

	out := rank(matches, rankOrigin, "%", false)

	require.Len(t, out, 2)
	assert.Equal(t, "src/a.erl", out[0].Path, "origin-file matches lead despite larger line distance")
}

func TestRank_PreferExternalFlipsPartitions(t *testing.T) {
	matches := []backend.Match{
		{Path: "src/a.erl", Line: 11, Context: "foo() ->"},
		{Path: "src/b.erl", Line: 90, Context: "foo() ->"},
	}

	out := rank(matches, rankOrigin, "%", true)

	require.Len(t, out, 2)
	assert.Equal(t, "src/b.erl", out[0].Path)
}

func TestRank_ElsewherePartitionIsLexicographic(t *testing.T) {
	matches := []backend.Match{
		{Path: "src/deeply/nested/mod.erl", Line: 1, Context: "foo() ->"},
		{Path: "src/b.erl", Line: 30, Context: "foo() ->"},
		{Path: "src/b.erl", Line: 2, Context: "foo() ->"},
	}

	out := rank(matches, rankOrigin, "%", false)

	require.Len(t, out, 3)
	assert.Equal(t, "src/b.erl", out[0].Path)
	assert.Equal(t, 2, out[0].Line, "same path length ties break on line number")
	assert.Equal(t, 30, out[1].Line)
	assert.Equal(t, "src/deeply/nested/mod.erl", out[2].Path)
}

func TestDecide_SingleTypedLocalMatchAutoJumps(t *testing.T) {
	matches := []backend.Match{{Path: "src/a.erl", Line: 3, Context: "foo() ->"}}

	autoJump, target := decide(matches, rankOrigin, ident.KindQualifiedFunction, false)

	assert.True(t, autoJump)
	require.NotNil(t, target)
	assert.Equal(t, 3, target.Line)
}

func TestDecide_TwoLocalMatchesNeedConfirmation(t *testing.T) {
	matches := []backend.Match{
		{Path: "src/a.erl", Line: 3, Context: "foo() ->"},
		{Path: "src/a.erl", Line: 40, Context: "foo() ->"},
	}

	autoJump, target := decide(matches, rankOrigin, ident.KindQualifiedFunction, false)

	assert.False(t, autoJump)
	assert.Nil(t, target)
}

func TestDecide_AggressiveOverridesAmbiguity(t *testing.T) {
	matches := []backend.Match{
		{Path: "src/a.erl", Line: 3, Context: "foo() ->"},
		{Path: "src/a.erl", Line: 40, Context: "foo() ->"},
	}

	autoJump, target := decide(matches, rankOrigin, ident.KindQualifiedFunction, true)

	assert.True(t, autoJump)
	require.NotNil(t, target)
	assert.Equal(t, 3, target.Line, "aggressive mode takes the top-ranked candidate")
}

func TestDecide_UntypedContextJumpsOnUniqueLocal(t *testing.T) {
	matches := []backend.Match{
		{Path: "src/a.erl", Line: 3, Context: "Foo = bar()"},
		{Path: "src/b.erl", Line: 7, Context: "Foo = baz()"},
	}

	autoJump, target := decide(matches, rankOrigin, ident.KindVariable, false)

	assert.True(t, autoJump, "variable context with one local match is safe")
	require.NotNil(t, target)
	assert.Equal(t, "src/a.erl", target.Path)
}

func TestDecide_TargetIsTheUniqueLocalMatch(t *testing.T) {
	// External-preference ranking puts the external match first; the
	// safety reasoning is about the origin-file match, so the jump goes
	// there regardless of rank position.
	matches := []backend.Match{
		{Path: "src/b.erl", Line: 7, Context: "Foo = baz()"},
		{Path: "src/a.erl", Line: 3, Context: "Foo = bar()"},
	}

	autoJump, target := decide(matches, rankOrigin, ident.KindVariable, false)

	assert.True(t, autoJump)
	require.NotNil(t, target)
	assert.Equal(t, "src/a.erl", target.Path)
	assert.Equal(t, 3, target.Line)
}

func TestDecide_TypedContextWithExternalMatchesAsks(t *testing.T) {
	// One local plus one external: precise kinds want confirmation.
	matches := []backend.Match{
		{Path: "src/a.erl", Line: 3, Context: "foo() ->"},
		{Path: "src/b.erl", Line: 7, Context: "foo() ->"},
	}

	autoJump, _ := decide(matches, rankOrigin, ident.KindQualifiedFunction, false)

	assert.False(t, autoJump)
}

func TestDecide_NoMatches(t *testing.T) {
	autoJump, target := decide(nil, rankOrigin, ident.KindQualifiedFunction, false)

	assert.False(t, autoJump)
	assert.Nil(t, target)
}
