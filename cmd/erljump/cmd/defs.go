package cmd

import (
	"github.com/spf13/cobra"

	"github.com/erlkit/erljump/internal/pattern"
)

func newDefsCmd() *cobra.Command {
	var opts jumpOptions

	cmd := &cobra.Command{
		Use:   "defs <symbol>",
		Short: "Find where a symbol is defined",
		Long: `Find the definition of a function, macro, record or module.

The search is staged: the origin buffer first, then the project root,
then any include paths from the .erljump file, then ERL_LIBS. The first
stage with results wins.

Examples:
  erljump defs handle_call --file src/my_server.erl --line 42 --kind function
  erljump defs lists:map --file src/util.erl --line 7
  erljump defs '?TIMEOUT' --file src/my_server.erl --line 10
  erljump defs '#state' --file src/my_server.erl --line 55 --format json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runJump(cmd.Context(), cmd, args[0], pattern.Definitions, opts)
		},
	}

	addJumpFlags(cmd, &opts)
	return cmd
}
