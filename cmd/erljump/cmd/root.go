// Package cmd provides the CLI commands for erljump.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/erlkit/erljump/internal/logging"
	"github.com/erlkit/erljump/pkg/version"
)

var (
	debugMode      bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the erljump CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "erljump",
		Short: "Jump to Erlang definitions and references without an index",
		Long: `erljump resolves a source symbol (function, macro, record, or
module-qualified call) to its definition or usages by running whichever
line-search tool is installed (rg, ag, git grep, grep) and ranking the
matches by proximity to the point of invocation.

There is no index to build or maintain; every query searches from scratch.

Examples:
  erljump defs handle_call --file src/my_server.erl --line 42 --kind function
  erljump refs '?TIMEOUT' --file src/my_server.erl --line 10
  erljump doctor`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("erljump version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.erljump/logs/")
	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newDefsCmd())
	cmd.AddCommand(newRefsCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startLogging initializes file logging when --debug is set. Without
// the flag only warnings and errors reach stderr, keeping stdout clean
// for an editor driving the CLI.
func startLogging(_ *cobra.Command, _ []string) error {
	cfg := logging.DefaultConfig()
	cfg.WriteToStderr = false
	if debugMode {
		cfg = logging.DebugConfig()
	}

	_, cleanup, err := logging.Setup(cfg)
	if err != nil {
		// Logging is best-effort; the search must still run.
		return nil
	}
	loggingCleanup = cleanup
	return nil
}

func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}
