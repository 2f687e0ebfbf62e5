// Package cmdutil holds the pieces every convergence operation shares:
// the configured-machine guard and manifest regeneration.
package cmdutil

import (
	"github.com/arthur-debert/brewsync/pkg/declaration"
	"github.com/arthur-debert/brewsync/pkg/errors"
	"github.com/arthur-debert/brewsync/pkg/filesystem"
	"github.com/arthur-debert/brewsync/pkg/manifest"
)

// RequireConfigured fails with a terminal error when the machine resolves
// to no groups. Every operation calls this before touching anything.
func RequireConfigured(store *declaration.Store, machine string) error {
	if store.Configured(machine) {
		return nil
	}
	return errors.Newf(errors.ErrMachineNotReady,
		"machine %q has no groups assigned, run 'brewsync init' first", machine)
}

// RegenerateManifest rewrites the Brewfile from the machine's declared
// packages. Called after every successful declaration or system mutation
// so the file on disk never goes stale.
func RegenerateManifest(fs filesystem.FS, store *declaration.Store, machine, path string) error {
	return manifest.Write(fs, path, store.PackagesForMachine(machine))
}
