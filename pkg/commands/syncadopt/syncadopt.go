// Package syncadopt implements the additive convergence operation:
// install everything declared but missing, and adopt everything installed
// but undeclared into this machine's own group. Nothing is ever removed
// from the system.
package syncadopt

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

// Options holds the sync-adopt inputs
type Options struct {
	Store     *declaration.Store
	State     *systemstate.Cache
	Bridge    bridge.Bridge
	FS        filesystem.FS
	Confirmer ui.Confirmer
	Machine   string

	// BrewfilePath is where the regenerated manifest lands
	BrewfilePath string

	// Yes skips the confirmation prompt
	Yes bool
}

// Result reports what changed
type Result struct {
	Installed []brewpkg.Entry
	Adopted   []brewpkg.Entry

	// Declined is true when the user refused the confirmation; nothing
	// was changed in that case
	Declined bool
}

// SyncAdopt converges declared and installed without removing anything:
// missing packages are installed, extra packages are folded into the
// machine's self-named group.
func SyncAdopt(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.syncadopt")

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
	diff := reconcile.Compare(opts.Store.PackagesForMachine(opts.Machine), snapshot.Entries())
	if diff.InSync() {
		logger.Info().Str("machine", opts.Machine).Msg("Already in sync, nothing to do")
		return &Result{}, nil
	}

	if !opts.Yes {
		ok, err := opts.Confirmer.Confirm(ui.Confirmation{
			Title:   describe(diff),
			Items:   ui.EntryNames(append(diff.Missing, diff.Extra...)),
			Default: true,
		})
		if err != nil {
			return nil, err
		}
		if !ok {
			logger.Info().Msg("Sync declined")
			return &Result{Declined: true}, nil
		}
	}

	result := &Result{}

	// Adopt first so the manifest used for installation already carries
	// the full declared set
	for _, extra := range diff.Extra {
		if _, err := opts.Store.AddPackage(opts.Machine, extra.Kind, extra.Name); err != nil {
			return nil, err
		}
		result.Adopted = append(result.Adopted, extra)
	}
	if len(result.Adopted) > 0 {
		if err := opts.Store.AssignGroup(opts.Machine, opts.Machine); err != nil {
			return nil, err
		}
		logger.Info().Int("adopted", len(result.Adopted)).
			Str("group", opts.Machine).Msg("Adopted undeclared packages")
	}

	if len(diff.Missing) > 0 {
		if err := installMissing(opts); err != nil {
			return nil, err
		}
		result.Installed = diff.Missing
		opts.State.Invalidate()
		logger.Info().Int("installed", len(diff.Missing)).Msg("Installed missing packages")
	}

	if err := cmdutil.RegenerateManifest(opts.FS, opts.Store, opts.Machine, opts.BrewfilePath); err != nil {
		return nil, err
	}
	return result, nil
}

// installMissing regenerates a manifest from the (now adopted) declared
// set and hands it to the bundle installer in one shot
func installMissing(opts Options) error {
	tmpDir, err := os.MkdirTemp("", "brewsync-install-*")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "could not create temp dir for install manifest")
	}
	defer func() {
		_ = os.RemoveAll(tmpDir)
	}()

	path := filepath.Join(tmpDir, "Brewfile")
	if err := manifest.Write(opts.FS, path, opts.Store.PackagesForMachine(opts.Machine)); err != nil {
		return err
	}
	return opts.Bridge.InstallFromManifest(path)
}

func describe(diff reconcile.Diff) string {
	switch {
	case len(diff.Missing) > 0 && len(diff.Extra) > 0:
		return "Install missing packages and adopt undeclared ones?"
	case len(diff.Missing) > 0:
		return "Install missing packages?"
	default:
		return "Adopt undeclared packages into this machine's group?"
	}
}
