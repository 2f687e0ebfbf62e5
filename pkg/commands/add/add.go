// Package add implements declaring and installing a single new package:
// resolve its kind, install it, then record it in a group. The install
// happens first so a declaration that cannot be persisted never leaves an
// untracked package behind.
package add

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/arthur-debert/brewsync/pkg/brewpkg"
	"github.com/arthur-debert/brewsync/pkg/bridge"
	"github.com/arthur-debert/brewsync/pkg/commands/internal/cmdutil"
	"github.com/arthur-debert/brewsync/pkg/declaration"
	"github.com/arthur-debert/brewsync/pkg/filesystem"
	"github.com/arthur-debert/brewsync/pkg/logging"
	"github.com/arthur-debert/brewsync/pkg/systemstate"
	"github.com/arthur-debert/brewsync/pkg/ui"
)

// Options holds the add command inputs
type Options struct {
	Store    *declaration.Store
	State    *systemstate.Cache
	Bridge   bridge.Bridge
	FS       filesystem.FS
	Prompter ui.GroupPrompter
	Machine  string

	BrewfilePath string

	// Name is the package identifier; for app store packages the
	// "Name::id" form
	Name string

	// Kind pins the package kind; empty means probe via search
	Kind string

	// Group pins the target group; empty means prompt, defaulting to
	// DefaultGroup
	Group string

	// DefaultGroup is preselected when prompting
	DefaultGroup string
}

// Result reports what happened
type Result struct {
	Name  string
	Kind  brewpkg.Kind
	Group string

	// AlreadyDeclared is true when the package was declared before; the
	// install still ran so the system catches up
	AlreadyDeclared bool

	// KindDefaulted is true when no search matched and formula was
	// assumed. Suggestion carries a near-miss when one exists.
	KindDefaulted bool
	Suggestion    string

	// RollbackFailed is true when the post-install declaration write
	// failed and the compensating uninstall failed too
	RollbackFailed bool
}

// Add installs the package and declares it in a group. When the
// declaration write fails after a successful install, the install is
// rolled back so system and declaration stay consistent.
func Add(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.add")

	if err := cmdutil.RequireConfigured(opts.Store, opts.Machine); err != nil {
		return nil, err
	}
	if err := opts.Bridge.Available(); err != nil {
		return nil, err
	}

	result := &Result{Name: opts.Name}

	if opts.Kind != "" {
		kind, err := brewpkg.ParseKind(opts.Kind)
		if err != nil {
			return nil, err
		}
		result.Kind = kind
	} else {
		kind, defaulted, suggestion, err := probeKind(opts)
		if err != nil {
			return nil, err
		}
		result.Kind = kind
		result.KindDefaulted = defaulted
		result.Suggestion = suggestion
		if defaulted {
			logger.Warn().Str("package", opts.Name).
				Str("suggestion", suggestion).
				Msg("No search match, assuming formula")
		}
	}

	group := opts.Group
	if group == "" {
		defaultGroup := opts.DefaultGroup
		if defaultGroup == "" {
			defaultGroup = opts.Machine
		}
		picked, err := opts.Prompter.PickGroup(opts.Store.AvailableGroups(), defaultGroup)
		if err != nil {
			return nil, err
		}
		group = picked
	}
	result.Group = group

	if err := opts.Bridge.Install(result.Kind, opts.Name); err != nil {
		return nil, err
	}
	opts.State.Invalidate()

	added, err := opts.Store.AddPackage(group, result.Kind, opts.Name)
	if err != nil {
		// The package is installed but not recorded. Undo the install
		// so the failure leaves no silent drift.
		if rollbackErr := opts.Bridge.Uninstall(result.Kind, opts.Name); rollbackErr != nil {
			logger.Error().Err(rollbackErr).Str("package", opts.Name).
				Msg("Rollback uninstall failed, system and declaration have diverged")
			result.RollbackFailed = true
		}
		return result, err
	}
	result.AlreadyDeclared = !added

	logger.Info().Str("package", opts.Name).Str("kind", result.Kind.String()).
		Str("group", group).Msg("Package added")

	if err := cmdutil.RegenerateManifest(opts.FS, opts.Store, opts.Machine, opts.BrewfilePath); err != nil {
		return result, err
	}
	return result, nil
}

// probeKind resolves an unspecified kind by searching, casks first since
// brew search lists most GUI apps under both. App store identifiers with
// an id suffix skip the search entirely.
func probeKind(opts Options) (kind brewpkg.Kind, defaulted bool, suggestion string, err error) {
	if _, id := brewpkg.SplitMAS(opts.Name); id != "" {
		return brewpkg.KindMAS, false, "", nil
	}

	var nearMisses []string
	for _, candidate := range []brewpkg.Kind{brewpkg.KindCask, brewpkg.KindFormula} {
		matches, err := opts.Bridge.Search(candidate, opts.Name)
		if err != nil {
			return 0, false, "", err
		}
		for _, match := range matches {
			if match == opts.Name {
				return candidate, false, "", nil
			}
		}
		nearMisses = append(nearMisses, matches...)
	}

	ranked := fuzzy.RankFindNormalizedFold(opts.Name, nearMisses)
	if len(ranked) > 0 {
		sort.Sort(ranked)
		suggestion = ranked[0].Target
	}
	return brewpkg.KindFormula, true, suggestion, nil
}
