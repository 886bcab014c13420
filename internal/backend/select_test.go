package backend

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jerrors "github.com/erlkit/erljump/internal/errors"
)

func gitRepoDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	return dir
}

func TestSelect_ForceWins(t *testing.T) {
	probes := NewProbesWithRunner(newFakeRunner("grep", "rg"))

	be, err := Select(probes, t.TempDir(), Grep, None)

	require.NoError(t, err)
	assert.Equal(t, Grep, be.ID())
}

func TestSelect_ForcedButMissingIsAnError(t *testing.T) {
	probes := NewProbesWithRunner(newFakeRunner("rg"))

	_, err := Select(probes, t.TempDir(), Ag, None)

	require.Error(t, err)
	assert.Equal(t, jerrors.ErrCodeBackendMissing, jerrors.GetCode(err))
}

func TestSelect_CompositePreferredInGitRepo(t *testing.T) {
	probes := NewProbesWithRunner(newFakeRunner("git", "ag", "rg"))

	be, err := Select(probes, gitRepoDir(t), None, None)

	require.NoError(t, err)
	assert.Equal(t, GitGrepPlusAg, be.ID())
}

func TestSelect_CompositeSkippedOutsideRepo(t *testing.T) {
	probes := NewProbesWithRunner(newFakeRunner("git", "ag", "rg"))

	be, err := Select(probes, t.TempDir(), None, None)

	require.NoError(t, err)
	assert.Equal(t, Rg, be.ID())
}

func TestSelect_SoftPreference(t *testing.T) {
	probes := NewProbesWithRunner(newFakeRunner("rg", "ag"))

	be, err := Select(probes, t.TempDir(), None, Ag)

	require.NoError(t, err)
	assert.Equal(t, Ag, be.ID())
}

func TestSelect_PreferenceIgnoredWhenMissing(t *testing.T) {
	probes := NewProbesWithRunner(newFakeRunner("rg"))

	be, err := Select(probes, t.TempDir(), None, Ag)

	require.NoError(t, err)
	assert.Equal(t, Rg, be.ID())
}

func TestSelect_Ladder(t *testing.T) {
	tests := []struct {
		name string
		bins []string
		want ID
	}{
		{"rg first", []string{"rg", "ag", "grep"}, Rg},
		{"ag second", []string{"ag", "grep"}, Ag},
		{"grep last", []string{"grep"}, GnuGrep},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			probes := NewProbesWithRunner(newFakeRunner(tt.bins...))
			be, err := Select(probes, t.TempDir(), None, None)
			require.NoError(t, err)
			assert.Equal(t, tt.want, be.ID())
		})
	}
}

func TestSelect_NonGnuGrepFallsToPlainGrep(t *testing.T) {
	runner := newFakeRunner("grep")
	runner.versions["grep"] = "grep (BSD grep, GNU compatible) 2.6.0-FreeBSD"
	probes := NewProbesWithRunner(runner)

	be, err := Select(probes, t.TempDir(), None, None)

	require.NoError(t, err)
	assert.Equal(t, Grep, be.ID(), "the GnuGrep rung must be skipped when grep is not GNU")
}

func TestSelect_ForcedGnuGrepNeedsGnu(t *testing.T) {
	runner := newFakeRunner("grep")
	runner.versions["grep"] = "grep (BSD grep) 2.6.0"
	probes := NewProbesWithRunner(runner)

	_, err := Select(probes, t.TempDir(), GnuGrep, None)

	require.Error(t, err)
	assert.Equal(t, jerrors.ErrCodeBackendMissing, jerrors.GetCode(err))
}

func TestSelect_GitGrepOnLadderInsideRepo(t *testing.T) {
	// No ag, so the composite is out; bare git grep still beats grep.
	probes := NewProbesWithRunner(newFakeRunner("git", "grep"))

	be, err := Select(probes, gitRepoDir(t), None, None)

	require.NoError(t, err)
	assert.Equal(t, GitGrep, be.ID())
}

func TestSelect_NothingInstalled(t *testing.T) {
	probes := NewProbesWithRunner(newFakeRunner())

	_, err := Select(probes, t.TempDir(), None, None)

	require.Error(t, err)
	assert.Equal(t, jerrors.ErrCodeNoBackend, jerrors.GetCode(err))
}
