// Package bridge wraps the external package manager (brew, brew bundle,
// mas) behind one interface. Every call is a blocking subprocess whose
// exit status is the sole failure signal; stderr is attached to errors as
// advisory context only.
package bridge

import (
	"github.com/arthur-debert/brewsync/pkg/brewpkg"
)

// Bridge is the package-manager boundary consumed by the system state
// cache and the convergence operations
type Bridge interface {
	// Available verifies the package manager is installed and usable
	Available() error

	// Install installs one package by name
	Install(kind brewpkg.Kind, name string) error

	// Uninstall removes one package by name
	Uninstall(kind brewpkg.Kind, name string) error

	// Search returns the package names matching the query for a kind
	Search(kind brewpkg.Kind, query string) ([]string, error)

	// Autoremove removes orphaned dependencies; an error here is an
	// optimization shortfall, not a correctness problem
	Autoremove() error

	// Dump writes the full installed package set to a manifest file
	Dump(manifestPath string) error

	// ListManifest returns the identifiers of one kind from a manifest
	ListManifest(manifestPath string, kind brewpkg.Kind) ([]string, error)

	// InstallFromManifest installs everything the manifest declares
	InstallFromManifest(manifestPath string) error

	// CleanupAgainstManifest removes everything not in the manifest.
	// force skips brew bundle's own interactive prompt.
	CleanupAgainstManifest(manifestPath string, force bool) error
}
