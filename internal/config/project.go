package config

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jerrors "github.com/erlkit/erljump/internal/errors"
)

// ProjectFileName is the per-project directive file, which also serves
// as a project-root marker.
const ProjectFileName = ".erljump"

// builtinExcludes are always appended: rebar3's build output and the
// dependency cache are never useful jump targets.
var builtinExcludes = []string{"_build", "deps"}

// Project is the resolved per-project search configuration.
type Project struct {
	// Root is the project root directory.
	Root string

	// Language is the directive-selected language name (default erlang).
	Language string

	// Includes are additional directories to search after the root.
	// Relative entries are resolved against the root.
	Includes []string

	// Excludes are directory names or path fragments to skip.
	// Always contains the built-in exclusions.
	Excludes []string
}

// LanguageRules resolves the project's language table entry.
func (p Project) LanguageRules() Language {
	return LanguageByName(p.Language)
}

// FindProjectRoot walks up from startDir looking for a .git directory
// or a .erljump file. Falls back to startDir itself when neither is
// found anywhere above it.
func FindProjectRoot(startDir string) (string, error) {
	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	currentDir := absDir
	for {
		if dirExists(filepath.Join(currentDir, ".git")) {
			return currentDir, nil
		}
		if fileExists(filepath.Join(currentDir, ProjectFileName)) {
			return currentDir, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return absDir, nil
		}
		currentDir = parentDir
	}
}

// LoadProject resolves the project configuration for a root directory,
// reading the .erljump directive file when present.
//
// Recognized directives, one per line:
//
//	language <name>   select the language rules
//	+<path>           add a search directory
//	-<path>           exclude a directory name or path fragment
//
// Blank lines and lines starting with # are ignored.
func LoadProject(root string) (Project, error) {
	proj := Project{
		Root:     root,
		Language: "erlang",
	}

	path := filepath.Join(root, ProjectFileName)
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		proj.Excludes = append(proj.Excludes, builtinExcludes...)
		return proj, nil
	}
	if err != nil {
		return proj, jerrors.Wrap(jerrors.ErrCodeConfigNotFound, err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		switch {
		case strings.HasPrefix(line, "language "):
			proj.Language = strings.TrimSpace(strings.TrimPrefix(line, "language "))
		case strings.HasPrefix(line, "+"):
			dir := strings.TrimSpace(line[1:])
			if dir == "" {
				return proj, badDirective(path, lineno, line)
			}
			if !filepath.IsAbs(dir) {
				dir = filepath.Join(root, dir)
			}
			proj.Includes = append(proj.Includes, dir)
		case strings.HasPrefix(line, "-"):
			frag := strings.TrimSpace(line[1:])
			if frag == "" {
				return proj, badDirective(path, lineno, line)
			}
			proj.Excludes = append(proj.Excludes, frag)
		default:
			return proj, badDirective(path, lineno, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return proj, jerrors.Wrap(jerrors.ErrCodeConfigInvalid, err)
	}

	proj.Excludes = append(proj.Excludes, builtinExcludes...)
	return proj, nil
}

func badDirective(path string, lineno int, line string) error {
	return jerrors.New(jerrors.ErrCodeBadDirective,
		fmt.Sprintf("%s:%d: unrecognized directive %q", path, lineno, line), nil).
		WithSuggestion("directives are: language <name>, +<path>, -<path>")
}

// ParseLibPath splits an ERL_LIBS-style path list into directories that
// exist. Both : and ; separators are accepted.
func ParseLibPath(env string) []string {
	if env == "" {
		return nil
	}
	sep := ":"
	if strings.Contains(env, ";") {
		sep = ";"
	}
	var dirs []string
	for _, d := range strings.Split(env, sep) {
		d = strings.TrimSpace(d)
		if d != "" && dirExists(d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
