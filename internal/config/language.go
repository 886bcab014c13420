package config

import "strings"

// Language bundles the per-language facts the engine needs: which files
// to search and how comments start.
type Language struct {
	// Name is the directive name.
	Name string

	// FileGlobs are the source file patterns handed to the backends.
	FileGlobs []string

	// Comment is the line comment marker; matches whose context starts
	// with it are dropped as commented-out code.
	Comment string
}

var languages = map[string]Language{
	"erlang": {
		Name:      "erlang",
		FileGlobs: []string{"*.erl", "*.hrl"},
		Comment:   "%",
	},
}

// LanguageByName resolves a language directive. Unknown names fall back
// to erlang so a typo degrades to the default instead of failing.
func LanguageByName(name string) Language {
	if lang, ok := languages[strings.ToLower(strings.TrimSpace(name))]; ok {
		return lang
	}
	return languages["erlang"]
}
