package backend

import (
	"fmt"
	"strings"

	"github.com/erlkit/erljump/internal/pattern"
)

// agBackend drives the silver searcher.
type agBackend struct{}

func (agBackend) ID() ID                   { return Ag }
func (agBackend) Dialect() pattern.Dialect { return pattern.DialectPCRE }

func (agBackend) Generate(q Query) string {
	if len(q.Patterns) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("ag --nocolor --nogroup --numbers")
	if g := agFileRegex(q.FileGlobs); g != "" {
		fmt.Fprintf(&b, " -G %s", shellQuote(g))
	}
	for _, ex := range q.Excludes {
		fmt.Fprintf(&b, " --ignore %s", shellQuote(ex))
	}
	fmt.Fprintf(&b, " %s %s", shellQuote(alternation(q.Patterns)), shellQuote(q.Dir))
	return b.String()
}

func (agBackend) Parse(raw, dir string) []Match {
	return parseLines(raw, "")
}

// agFileRegex converts *.ext globs into the file-name regex ag expects.
func agFileRegex(globs []string) string {
	exts := make([]string, 0, len(globs))
	for _, g := range globs {
		if e, ok := strings.CutPrefix(g, "*."); ok {
			exts = append(exts, e)
		}
	}
	if len(exts) == 0 {
		return ""
	}
	return `\.(` + strings.Join(exts, "|") + `)$`
}

// rgBackend drives ripgrep.
type rgBackend struct{}

func (rgBackend) ID() ID                   { return Rg }
func (rgBackend) Dialect() pattern.Dialect { return pattern.DialectRust }

func (rgBackend) Generate(q Query) string {
	if len(q.Patterns) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("rg --color never --no-heading --line-number --no-messages")
	for _, g := range q.FileGlobs {
		fmt.Fprintf(&b, " -g %s", shellQuote(g))
	}
	for _, ex := range q.Excludes {
		fmt.Fprintf(&b, " -g %s", shellQuote("!"+strings.TrimSuffix(ex, "/")+"/"))
	}
	fmt.Fprintf(&b, " -e %s %s", shellQuote(alternation(q.Patterns)), shellQuote(q.Dir))
	return b.String()
}

func (rgBackend) Parse(raw, dir string) []Match {
	return parseLines(raw, "")
}

// gitGrepBackend drives git grep. Output paths are repository-relative,
// so Parse re-bases them against the search directory.
type gitGrepBackend struct{}

func (gitGrepBackend) ID() ID                   { return GitGrep }
func (gitGrepBackend) Dialect() pattern.Dialect { return pattern.DialectERE }

func (gitGrepBackend) Generate(q Query) string {
	if len(q.Patterns) == 0 {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "git -C %s grep --untracked --no-color -n -E", shellQuote(q.Dir))
	fmt.Fprintf(&b, " -e %s --", shellQuote(alternation(q.Patterns)))
	for _, g := range q.FileGlobs {
		fmt.Fprintf(&b, " %s", shellQuote(g))
	}
	for _, ex := range q.Excludes {
		fmt.Fprintf(&b, " %s", shellQuote(":!"+strings.TrimSuffix(ex, "/")))
	}
	return b.String()
}

func (gitGrepBackend) Parse(raw, dir string) []Match {
	return parseLines(raw, dir)
}

// gitGrepPlusAgBackend lists candidate files with git ls-files, then
// hands that file list to ag. Tracked-file scoping with PCRE patterns.
type gitGrepPlusAgBackend struct{}

func (gitGrepPlusAgBackend) ID() ID                   { return GitGrepPlusAg }
func (gitGrepPlusAgBackend) Dialect() pattern.Dialect { return pattern.DialectPCRE }

func (gitGrepPlusAgBackend) Generate(q Query) string {
	if len(q.Patterns) == 0 {
		return ""
	}
	var files strings.Builder
	files.WriteString("git ls-files --")
	for _, g := range q.FileGlobs {
		fmt.Fprintf(&files, " %s", shellQuote(g))
	}
	for _, ex := range q.Excludes {
		fmt.Fprintf(&files, " %s", shellQuote(":!"+strings.TrimSuffix(ex, "/")))
	}
	return fmt.Sprintf("cd %s && ag --nocolor --nogroup --numbers %s $(%s)",
		shellQuote(q.Dir), shellQuote(alternation(q.Patterns)), files.String())
}

func (gitGrepPlusAgBackend) Parse(raw, dir string) []Match {
	return parseLines(raw, dir)
}

// gnuGrepBackend drives GNU grep with include/exclude support.
type gnuGrepBackend struct{}

func (gnuGrepBackend) ID() ID                   { return GnuGrep }
func (gnuGrepBackend) Dialect() pattern.Dialect { return pattern.DialectERE }

func (gnuGrepBackend) Generate(q Query) string {
	if len(q.Patterns) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("grep -r -n -E")
	for _, g := range q.FileGlobs {
		fmt.Fprintf(&b, " --include=%s", shellQuote(g))
	}
	for _, ex := range q.Excludes {
		fmt.Fprintf(&b, " --exclude-dir=%s", shellQuote(strings.TrimSuffix(ex, "/")))
	}
	fmt.Fprintf(&b, " -e %s %s", shellQuote(alternation(q.Patterns)), shellQuote(q.Dir))
	return b.String()
}

func (gnuGrepBackend) Parse(raw, dir string) []Match {
	return parseLines(raw, "")
}

// grepBackend is the last-resort POSIX grep. No include/exclude flags;
// the executor's context filter weeds out non-source hits.
type grepBackend struct{}

func (grepBackend) ID() ID                   { return Grep }
func (grepBackend) Dialect() pattern.Dialect { return pattern.DialectERE }

func (grepBackend) Generate(q Query) string {
	if len(q.Patterns) == 0 {
		return ""
	}
	return fmt.Sprintf("grep -r -n -E -e %s %s",
		shellQuote(alternation(q.Patterns)), shellQuote(q.Dir))
}

func (grepBackend) Parse(raw, dir string) []Match {
	return parseLines(raw, "")
}
