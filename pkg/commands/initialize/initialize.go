// Package initialize implements first-time machine setup: pick the
// declaration groups this machine follows and persist the assignment.
package initialize

import (
	"github.com/arthur-debert/brewsync/pkg/commands/internal/cmdutil"
	"github.com/arthur-debert/brewsync/pkg/declaration"
	"github.com/arthur-debert/brewsync/pkg/errors"
	"github.com/arthur-debert/brewsync/pkg/filesystem"
	"github.com/arthur-debert/brewsync/pkg/logging"
	"github.com/arthur-debert/brewsync/pkg/ui"
)

// Options holds the init command inputs
type Options struct {
	Store    *declaration.Store
	FS       filesystem.FS
	Prompter ui.GroupPrompter
	Machine  string

	BrewfilePath string

	// Groups pins the assignment without prompting
	Groups []string
}

// Result reports the final assignment
type Result struct {
	Machine string
	Groups  []string
}

// Initialize assigns groups to the machine. Re-running replaces the
// assignment; the current one is preselected in the prompt.
func Initialize(opts Options) (*Result, error) {
	logger := logging.GetLogger("commands.initialize")

	groups := opts.Groups
	if len(groups) == 0 {
		picked, err := opts.Prompter.PickGroups(
			opts.Store.AvailableGroups(),
			opts.Store.GroupsForMachine(opts.Machine),
		)
		if err != nil {
			return nil, err
		}
		groups = picked
	}
	if len(groups) == 0 {
		return nil, errors.New(errors.ErrInvalidInput,
			"a machine needs at least one group")
	}

	for _, group := range groups {
		opts.Store.EnsureGroup(group)
	}
	if err := opts.Store.SetMachineGroups(opts.Machine, groups); err != nil {
		return nil, err
	}
	logger.Info().Str("machine", opts.Machine).Strs("groups", groups).
		Msg("Machine configured")

	if err := cmdutil.RegenerateManifest(opts.FS, opts.Store, opts.Machine, opts.BrewfilePath); err != nil {
		return nil, err
	}
	return &Result{Machine: opts.Machine, Groups: opts.Store.GroupsForMachine(opts.Machine)}, nil
}
