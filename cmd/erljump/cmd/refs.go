package cmd

import (
	"github.com/spf13/cobra"

	"github.com/erlkit/erljump/internal/pattern"
)

func newRefsCmd() *cobra.Command {
	var opts jumpOptions

	cmd := &cobra.Command{
		Use:   "refs <symbol>",
		Short: "Find where a symbol is used",
		Long: `Find call sites and usages of a function, macro, record or module.

All search locations are scanned so every usage is reported. For a
non-exported function pass --buffer-only: the symbol cannot be
referenced outside its own module, so nothing else needs scanning.

Examples:
  erljump refs start_link --file src/my_sup.erl --line 12 --kind function
  erljump refs '?TIMEOUT' --file src/my_server.erl --line 10
  erljump refs do_cleanup --file src/my_server.erl --line 80 --buffer-only`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJump(cmd.Context(), cmd, args[0], pattern.References, opts)
		},
	}

	addJumpFlags(cmd, &opts)
	return cmd
}
