// Package remove implements undeclaring and uninstalling a single
// package. The uninstall runs first: a package that cannot be removed
// from the system stays declared, so the declaration never promises less
// than what a failed removal left behind.
package remove

import (
	"github.com/arthur-debert/brewsync/pkg/brewpkg"
	"github.com/arthur-debert/brewsync/pkg/bridge"
	"github.com/arthur-debert/brewsync/pkg/commands/internal/cmdutil"
	"github.com/arthur-debert/brewsync/pkg/declaration"
	"github.com/arthur-debert/brewsync/pkg/errors"
	"github.com/arthur-debert/brewsync/pkg/filesystem"
	"github.com/arthur-debert/brewsync/pkg/logging"
	"github.com/arthur-debert/brewsync/pkg/systemstate"
	"github.com/arthur-debert/brewsync/pkg/ui"
)

// Options holds the remove command inputs
type Options struct {
	Store     *declaration.Store
	State     *systemstate.Cache
	Bridge    bridge.Bridge
	FS        filesystem.FS
	Confirmer ui.Confirmer
	Machine   string

	BrewfilePath string

	// Name is the package identifier as declared; a bare name also
	// matches a declared "Name::id" app store entry
	Name string

	// Yes skips the confirmation prompt
	Yes bool
}

// Result reports what happened
type Result struct {
	Name     string
	Kind     brewpkg.Kind
	Group    string
	Declined bool
}

// Remove uninstalls the package and deletes its declaration. The package
// must be declared; its kind is discovered from the declaration, not from
// the system.
func Remove(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.remove")

	if err := cmdutil.RequireConfigured(opts.Store, opts.Machine); err != nil {
		return nil, err
	}

	group, kind, identifier, found := opts.Store.ResolvePackage(opts.Name)
	if !found {
		return nil, errors.Newf(errors.ErrPackageNotFound,
			"package %q is not declared in any group", opts.Name)
	}

	if !opts.Yes {
		ok, err := opts.Confirmer.Confirm(ui.Confirmation{
			Title:   "Uninstall and remove from the declaration?",
			Items:   []string{kind.String() + " " + identifier},
			Warning: "The package will be uninstalled from this machine.",
			Default: false,
		})
		if err != nil {
			return nil, err
		}
		if !ok {
			return &Result{Name: opts.Name, Kind: kind, Group: group, Declined: true}, nil
		}
	}

	if err := opts.Bridge.Available(); err != nil {
		return nil, err
	}
	if err := opts.Bridge.Uninstall(kind, identifier); err != nil {
		logger.Error().Err(err).Str("package", opts.Name).
			Msg("Uninstall failed, declaration left unchanged")
		return nil, err
	}
	opts.State.Invalidate()

	if _, _, err := opts.Store.RemovePackage(opts.Name); err != nil {
		return nil, err
	}
	logger.Info().Str("package", opts.Name).Str("kind", kind.String()).
		Str("group", group).Msg("Package removed")

	if err := cmdutil.RegenerateManifest(opts.FS, opts.Store, opts.Machine, opts.BrewfilePath); err != nil {
		return nil, err
	}
	return &Result{Name: opts.Name, Kind: kind, Group: group}, nil
}
