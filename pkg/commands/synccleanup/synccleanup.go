// Package synccleanup implements the destructive convergence operation:
// make the system match the declaration exactly, uninstalling whatever is
// not declared. The removal set is shown and must be confirmed.
package synccleanup

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/brewsync/pkg/brewpkg"
	"github.com/arthur-debert/brewsync/pkg/bridge"
	"github.com/arthur-debert/brewsync/pkg/commands/internal/cmdutil"
	"github.com/arthur-debert/brewsync/pkg/declaration"
	"github.com/arthur-debert/brewsync/pkg/errors"
	"github.com/arthur-debert/brewsync/pkg/filesystem"
	"github.com/arthur-debert/brewsync/pkg/logging"
	"github.com/arthur-debert/brewsync/pkg/manifest"
	"github.com/arthur-debert/brewsync/pkg/reconcile"
	"github.com/arthur-debert/brewsync/pkg/systemstate"
	"github.com/arthur-debert/brewsync/pkg/ui"
)

// Options holds the sync-cleanup inputs
type Options struct {
	Store     *declaration.Store
	State     *systemstate.Cache
	Bridge    bridge.Bridge
	FS        filesystem.FS
	Confirmer ui.Confirmer
	Machine   string

	BrewfilePath string

	// Yes skips the confirmation prompt. The removal set is still
	// computed and reported.
	Yes bool
}

// Result reports what changed
type Result struct {
	Installed []brewpkg.Entry
	Removed   []brewpkg.Entry
	Declined  bool
}

// SyncCleanup installs everything missing and removes everything not
// declared. The manifest driving both steps is generated from declared
// state only, never from the system.
func SyncCleanup(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.synccleanup")

	if err := cmdutil.RequireConfigured(opts.Store, opts.Machine); err != nil {
		return nil, err
	}
	if err := opts.Bridge.Available(); err != nil {
		return nil, err
	}

	snapshot, err := opts.State.Installed(true)
	if err != nil {
		return nil, err
	}
	declared := opts.Store.PackagesForMachine(opts.Machine)
	diff := reconcile.Compare(declared, snapshot.Entries())
	if diff.InSync() {
		logger.Info().Str("machine", opts.Machine).Msg("Already in sync, nothing to do")
		return &Result{}, nil
	}

	if !opts.Yes {
		ok, err := opts.Confirmer.Confirm(ui.Confirmation{
			Title:   "Make the system match the declaration?",
			Items:   ui.EntryNames(diff.Extra),
			Warning: warning(diff),
			Default: false,
		})
		if err != nil {
			return nil, err
		}
		if !ok {
			logger.Info().Msg("Cleanup declined")
			return &Result{Declined: true}, nil
		}
	}

	tmpDir, err := os.MkdirTemp("", "brewsync-cleanup-*")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "could not create temp dir for cleanup manifest")
	}
	defer func() {
		_ = os.RemoveAll(tmpDir)
	}()
	path := filepath.Join(tmpDir, "Brewfile")
	if err := manifest.Write(opts.FS, path, declared); err != nil {
		return nil, err
	}

	if len(diff.Missing) > 0 {
		if err := opts.Bridge.InstallFromManifest(path); err != nil {
			return nil, err
		}
		logger.Info().Int("installed", len(diff.Missing)).Msg("Installed missing packages")
	}
	if len(diff.Extra) > 0 {
		if err := opts.Bridge.CleanupAgainstManifest(path, true); err != nil {
			return nil, err
		}
		logger.Info().Int("removed", len(diff.Extra)).Msg("Removed undeclared packages")
	}
	opts.State.Invalidate()

	if err := cmdutil.RegenerateManifest(opts.FS, opts.Store, opts.Machine, opts.BrewfilePath); err != nil {
		return nil, err
	}
	return &Result{Installed: diff.Missing, Removed: diff.Extra}, nil
}

func warning(diff reconcile.Diff) string {
	if len(diff.Extra) == 0 {
		return ""
	}
	return "The packages listed above will be UNINSTALLED from this machine."
}
