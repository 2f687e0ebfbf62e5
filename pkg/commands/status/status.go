// Package status implements the read-only inventory report: what the
// machine declares, what is installed, and the difference.
package status

import (
	"github.com/arthur-debert/brewsync/pkg/brewpkg"
	"github.com/arthur-debert/brewsync/pkg/commands/internal/cmdutil"
	"github.com/arthur-debert/brewsync/pkg/declaration"
	"github.com/arthur-debert/brewsync/pkg/logging"
	"github.com/arthur-debert/brewsync/pkg/reconcile"
	"github.com/arthur-debert/brewsync/pkg/systemstate"
)

// Options holds the status command inputs
type Options struct {
	Store   *declaration.Store
	State   *systemstate.Cache
	Machine string

	// Refresh rebuilds the system snapshot even when one is cached
	Refresh bool
}

// Result is the resolved inventory for rendering
type Result struct {
	Machine string
	Groups  []string

	// Inventory is every declared package with its install status
	Inventory []brewpkg.Entry

	// Diff is the missing/extra breakdown
	Diff reconcile.Diff
}

// Status resolves the machine's declared packages against the installed
// set. It mutates nothing.
func Status(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.status")
	logger.Debug().Str("machine", opts.Machine).Bool("refresh", opts.Refresh).Msg("Computing status")

	if err := cmdutil.RequireConfigured(opts.Store, opts.Machine); err != nil {
		return nil, err
	}

	declared := opts.Store.PackagesForMachine(opts.Machine)
	snapshot, err := opts.State.Installed(opts.Refresh)
	if err != nil {
		return nil, err
	}
	installed := snapshot.Entries()

	diff := reconcile.Compare(declared, installed)
	logger.Info().
		Str("machine", opts.Machine).
		Int("declared", len(declared)).
		Int("installed", len(installed)).
		Int("missing", len(diff.Missing)).
		Int("extra", len(diff.Extra)).
		Msg("Status computed")

	return &Result{
		Machine:   opts.Machine,
		Groups:    opts.Store.GroupsForMachine(opts.Machine),
		Inventory: reconcile.Annotate(declared, installed),
		Diff:      diff,
	}, nil
}
