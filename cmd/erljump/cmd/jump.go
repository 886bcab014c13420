package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erlkit/erljump/internal/backend"
	"github.com/erlkit/erljump/internal/config"
	"github.com/erlkit/erljump/internal/engine"
	jerrors "github.com/erlkit/erljump/internal/errors"
	"github.com/erlkit/erljump/internal/ident"
	"github.com/erlkit/erljump/internal/output"
	"github.com/erlkit/erljump/internal/pattern"
	"github.com/erlkit/erljump/internal/picker"
)

// jumpOptions holds the shared CLI flags for defs and refs.
type jumpOptions struct {
	file           string // origin file
	line           int    // origin cursor line (1-based)
	kind           string // classifier kind: function, macro, record, module, variable
	module         string // qualifying module name
	arity          int    // arity hint, -1 when unknown
	bufferFile     string // unsaved buffer snapshot to use for the origin
	bufferOnly     bool   // restrict the search to the origin buffer
	root           string // project root override
	backendName    string // force a specific backend
	format         string // "text" or "json"
	aggressive     bool
	preferExternal bool
	noPicker       bool
}

// addJumpFlags registers the flags shared by defs and refs.
func addJumpFlags(cmd *cobra.Command, opts *jumpOptions) {
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Origin file path (point of invocation)")
	cmd.Flags().IntVarP(&opts.line, "line", "l", 0, "Origin cursor line (1-based)")
	cmd.Flags().StringVarP(&opts.kind, "kind", "k", "", "Symbol kind: function, macro, record, module, variable")
	cmd.Flags().StringVarP(&opts.module, "module", "m", "", "Qualifying module name")
	cmd.Flags().IntVar(&opts.arity, "arity", -1, "Function arity hint")
	cmd.Flags().StringVar(&opts.bufferFile, "buffer-file", "", "File holding the unsaved origin buffer contents")
	cmd.Flags().BoolVar(&opts.bufferOnly, "buffer-only", false, "Search only the origin buffer")
	cmd.Flags().StringVar(&opts.root, "root", "", "Project root (default: auto-detected)")
	cmd.Flags().StringVarP(&opts.backendName, "backend", "b", "", "Force a backend: ag, rg, git-grep, git-grep-plus-ag, gnu-grep, grep")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text, json")
	cmd.Flags().BoolVar(&opts.aggressive, "aggressive", false, "Jump without confirmation even on ambiguous contexts")
	cmd.Flags().BoolVar(&opts.preferExternal, "prefer-external", false, "Rank matches outside the origin file first")
	cmd.Flags().BoolVar(&opts.noPicker, "no-picker", false, "Never open the interactive chooser")
}

// parseSymbol splits a raw symbol argument into its parts. Accepted
// shapes: name, module:name, name/2, module:name/2, ?MACRO, #record.
// Explicit --kind/--module/--arity flags win over anything inferred.
func parseSymbol(raw string, opts jumpOptions) (ident.Identifier, error) {
	kind := ident.ParseKind(opts.kind)
	module := opts.module
	arity := opts.arity

	s := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(s, "?"):
		s = s[1:]
		if opts.kind == "" {
			kind = ident.KindMacro
		}
	case strings.HasPrefix(s, "#"):
		s = s[1:]
		if opts.kind == "" {
			kind = ident.KindRecord
		}
	}

	if base, a, ok := strings.Cut(s, "/"); ok {
		if n, err := strconv.Atoi(a); err == nil && arity < 0 {
			arity = n
		}
		s = base
	}

	if mod, name, ok := strings.Cut(s, ":"); ok && mod != "" && name != "" {
		if module == "" {
			module = mod
		}
		if opts.kind == "" {
			kind = ident.KindQualifiedFunction
		}
		s = name
	}

	if s == "" {
		return ident.Identifier{}, jerrors.NoSymbol()
	}
	return ident.New(kind, module, s, arity)
}

// runJump is the shared driver behind defs and refs.
func runJump(ctx context.Context, cmd *cobra.Command, rawSymbol string, intent pattern.Intent, opts jumpOptions) error {
	out := output.New(cmd.OutOrStdout())

	cfg, err := config.LoadUser()
	if err != nil {
		return err
	}
	if opts.backendName != "" {
		if _, ok := backend.ParseID(opts.backendName); !ok {
			return jerrors.ConfigError(fmt.Sprintf("unknown backend %q", opts.backendName), nil)
		}
		cfg.Backend.Force = opts.backendName
	}
	if opts.aggressive {
		cfg.Jump.Aggressive = true
	}
	if opts.preferExternal {
		cfg.Jump.PreferExternal = true
	}

	id, err := parseSymbol(rawSymbol, opts)
	if err != nil {
		return err
	}

	origin, err := resolveOrigin(opts)
	if err != nil {
		return err
	}

	root := opts.root
	if root == "" {
		start := "."
		if origin.Path != "" {
			start = filepath.Dir(origin.Path)
		}
		root, err = config.FindProjectRoot(start)
		if err != nil {
			return err
		}
	}
	proj, err := config.LoadProject(root)
	if err != nil {
		return err
	}
	if cfg.Search.Language != "" && proj.Language == "erlang" {
		proj.Language = cfg.Search.Language
	}

	session := engine.NewSession(cfg)
	res, err := session.Resolve(ctx, engine.Request{
		Ident:          id,
		Origin:         origin,
		Intent:         intent,
		Project:        proj,
		BufferOnly:     opts.bufferOnly,
		Aggressive:     cfg.Jump.Aggressive,
		PreferExternal: cfg.Jump.PreferExternal,
	})
	if err != nil {
		return renderError(out, err)
	}

	return renderResult(cmd, out, cfg, res, origin, opts)
}

// resolveOrigin builds the Origin from the flags, loading the buffer
// snapshot when one was supplied.
func resolveOrigin(opts jumpOptions) (ident.Origin, error) {
	origin := ident.Origin{Path: opts.file, Line: opts.line}
	if opts.bufferFile != "" {
		data, err := os.ReadFile(opts.bufferFile)
		if err != nil {
			return origin, jerrors.New(jerrors.ErrCodeBadOrigin,
				"cannot read buffer snapshot: "+err.Error(), err)
		}
		origin.Text = string(data)
	}
	if opts.bufferOnly && opts.file == "" {
		return origin, jerrors.New(jerrors.ErrCodeBadOrigin,
			"--buffer-only requires --file", nil)
	}
	return origin, nil
}

// renderError prints a structured error with its suggestion, then
// returns it so the process exits non-zero.
func renderError(out *output.Writer, err error) error {
	var je *jerrors.JumpError
	if errors.As(err, &je) {
		out.Error(je.Message)
		if je.Suggestion != "" {
			out.Infof("   hint: %s", je.Suggestion)
		}
		return fmt.Errorf("%s", je.Code)
	}
	return err
}

// renderResult writes the episode outcome in the requested format.
func renderResult(cmd *cobra.Command, out *output.Writer, cfg config.Config, res *engine.Result, origin ident.Origin, opts jumpOptions) error {
	if res.SlowWarning != "" {
		out.Warning(res.SlowWarning)
	}

	if opts.format == "json" {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	}

	if len(res.Matches) == 0 {
		out.NoMatches(res.Symbol)
		return nil
	}

	if res.AutoJump {
		if engine.StaleTarget(res.Target, origin) && !confirmStale(out, cfg, res.Target.Path) {
			out.Info("jump aborted")
			return nil
		}
		out.Match(*res.Target)
		return nil
	}

	if out.IsTerminal() && !opts.noPicker {
		choice, err := picker.Choose(res.Symbol, res.Matches)
		if errors.Is(err, picker.ErrCancelled) {
			out.Info("jump aborted")
			return nil
		}
		if err != nil {
			return err
		}
		out.Match(*choice)
		return nil
	}

	out.Matches(res.Matches)
	return nil
}

// confirmStale handles a jump target whose buffer has unsaved edits:
// the recorded line number may be off. Asks on a terminal when the
// config requires confirmation, otherwise warns and proceeds.
func confirmStale(out *output.Writer, cfg config.Config, path string) bool {
	out.Warning(fmt.Sprintf("%s has unsaved modifications; the line number may be stale", path))
	if !cfg.Jump.ConfirmStale || !out.IsTerminal() {
		return true
	}
	fmt.Fprint(os.Stderr, "jump anyway? [y/N] ")
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
