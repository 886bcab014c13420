package cmd

import (
	"fmt"
	"sort"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/erlkit/erljump/internal/backend"
	"github.com/erlkit/erljump/internal/config"
	"github.com/erlkit/erljump/internal/output"
)

// doctorResult is one backend's probe outcome.
type doctorResult struct {
	id        backend.ID
	available bool
}

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check which search tools are installed",
		Long: `Probe every supported backend and report which would be selected
for the current directory. Searches themselves always run one tool at
a time; only these probes run concurrently.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDoctor(cmd)
		},
	}
}

func runDoctor(cmd *cobra.Command) error {
	out := output.New(cmd.OutOrStdout())

	ids := []backend.ID{
		backend.Rg, backend.Ag, backend.GitGrep,
		backend.GitGrepPlusAg, backend.GnuGrep, backend.Grep,
	}

	// One shared cache: each binary is probed once no matter how many
	// backends need it or how many goroutines ask.
	probes := backend.NewProbes()

	var mu sync.Mutex
	results := make([]doctorResult, 0, len(ids))

	var g errgroup.Group
	for _, id := range ids {
		id := id
		g.Go(func() error {
			available := probes.Available(id)
			mu.Lock()
			results = append(results, doctorResult{id: id, available: available})
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	sort.Slice(results, func(i, j int) bool { return results[i].id < results[j].id })
	for _, r := range results {
		mark := "✅"
		if !r.available {
			mark = "❌"
		}
		out.Infof("%s %-18s", mark, r.id.String())
	}

	root, err := config.FindProjectRoot(".")
	if err != nil {
		return err
	}
	cfg, err := config.LoadUser()
	if err != nil {
		return err
	}
	force, _ := backend.ParseID(cfg.Backend.Force)
	prefer, _ := backend.ParseID(cfg.Backend.Prefer)

	be, err := backend.Select(probes, root, force, prefer)
	if err != nil {
		out.Newline()
		out.Error("no usable backend")
		out.Info("   hint: install ripgrep (rg), the silver searcher (ag), or GNU grep")
		return fmt.Errorf("no backend available")
	}

	out.Newline()
	out.Infof("selected for %s: %s", root, be.ID().String())
	return nil
}
