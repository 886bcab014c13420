package backend

import (
	"log/slog"
	"os"
	"path/filepath"

	jerrors "github.com/erlkit/erljump/internal/errors"
)

// Select chooses the backend for one search episode. First match wins:
//
//  1. An explicit force override; erroring if that tool is missing
//     rather than silently substituting another.
//  2. The git-grep-plus-ag composite when the project is a git checkout
//     and both tools are present. Tracked-file accuracy is free there.
//  3. An explicit soft preference, if available.
//  4. The capability ladder: rg, ag, git grep (repos only), GNU grep,
//     plain grep.
func Select(probes *Probes, root string, force, prefer ID) (Backend, error) {
	if force != None {
		if !probes.Available(force) {
			return nil, jerrors.New(jerrors.ErrCodeBackendMissing,
				"forced backend "+force.String()+" is not installed", nil)
		}
		return For(force), nil
	}

	inRepo := isGitRepo(root)
	if inRepo && probes.Available(GitGrepPlusAg) {
		slog.Debug("backend_selected", slog.String("backend", GitGrepPlusAg.String()), slog.String("reason", "git repo"))
		return For(GitGrepPlusAg), nil
	}

	if prefer != None && probes.Available(prefer) {
		return For(prefer), nil
	}

	for _, id := range []ID{Rg, Ag, GitGrep, GnuGrep, Grep} {
		if id == GitGrep && !inRepo {
			continue
		}
		if probes.Available(id) {
			slog.Debug("backend_selected", slog.String("backend", id.String()), slog.String("reason", "ladder"))
			return For(id), nil
		}
	}

	return nil, jerrors.NoBackend()
}

// isGitRepo reports whether root contains a version-control marker.
func isGitRepo(root string) bool {
	info, err := os.Stat(filepath.Join(root, ".git"))
	return err == nil && info.IsDir()
}
