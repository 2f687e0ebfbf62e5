// Package generate renders the machine's declared packages to its
// Brewfile.
package generate

import (
	"github.com/arthur-debert/brewsync/pkg/commands/internal/cmdutil"
	"github.com/arthur-debert/brewsync/pkg/declaration"
	"github.com/arthur-debert/brewsync/pkg/filesystem"
	"github.com/arthur-debert/brewsync/pkg/logging"
)

// Options holds the generate command inputs
type Options struct {
	Store   *declaration.Store
	FS      filesystem.FS
	Machine string

	BrewfilePath string
}

// Result reports what was written
type Result struct {
	Path     string
	Packages int
}

// Generate writes the manifest for the machine's declared set
func Generate(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.generate")

	if err := cmdutil.RequireConfigured(opts.Store, opts.Machine); err != nil {
		return nil, err
	}

	entries := opts.Store.PackagesForMachine(opts.Machine)
	if err := cmdutil.RegenerateManifest(opts.FS, opts.Store, opts.Machine, opts.BrewfilePath); err != nil {
		return nil, err
	}
	logger.Info().Str("path", opts.BrewfilePath).Int("packages", len(entries)).
		Msg("Manifest written")

	return &Result{Path: opts.BrewfilePath, Packages: len(entries)}, nil
}
