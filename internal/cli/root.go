// Package cli assembles the cobra command tree and wires the engine's
// dependencies: paths, settings, the declaration store, the brew bridge,
// the system state cache, and the interactive console.
package cli

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/brewsync/internal/version"
	"github.com/arthur-debert/brewsync/pkg/bridge"
	"github.com/arthur-debert/brewsync/pkg/config"
	"github.com/arthur-debert/brewsync/pkg/declaration"
	"github.com/arthur-debert/brewsync/pkg/filesystem"
	"github.com/arthur-debert/brewsync/pkg/logging"
	"github.com/arthur-debert/brewsync/pkg/paths"
	"github.com/arthur-debert/brewsync/pkg/systemstate"
	"github.com/arthur-debert/brewsync/pkg/ui"
)

// app holds the wired dependencies shared by every command
type app struct {
	paths    *paths.Paths
	settings *config.Settings
	store    *declaration.Store
	bridge   bridge.Bridge
	state    *systemstate.Cache
	console  *ui.Console
	fs       filesystem.FS
	machine  string
	brewfile string
}

// setup resolves every dependency. Called after logging is configured.
func (a *app) setup() error {
	a.paths = paths.New()
	a.fs = filesystem.NewOS()

	settings, err := config.Load(a.paths.SettingsPath())
	if err != nil {
		return err
	}
	a.settings = settings

	if a.machine == "" {
		machine, err := settings.MachineName()
		if err != nil {
			return err
		}
		a.machine = machine
	}

	a.brewfile = settings.Brewfile
	if a.brewfile == "" {
		a.brewfile = a.paths.BrewfilePath()
	}

	a.store = declaration.Load(a.fs, a.paths.DeclarationPath())
	a.bridge = bridge.NewExec()
	a.state = systemstate.NewCache(a.bridge)

	policy := ui.NewOutputPolicy().WithColorMode(settings.Color)
	policy.Apply()
	a.console = ui.NewConsole(policy)
	return nil
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	var verbosity int
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "brewsync",
		Short: "Declarative package management for brew, casks, and the App Store",
		Long: `brewsync keeps a declaration of the packages each machine should have,
compares it against what is actually installed, and converges the two.
Packages are organized in named groups; machines subscribe to groups.`,
		Version: fmt.Sprintf("%s (commit %s, built %s)", version.Version, version.Commit, version.Date),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
			return a.setup()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&a.machine, "machine", "",
		"Override the machine name (default: short hostname)")

	rootCmd.AddCommand(
		newStatusCmd(a),
		newSyncCmd(a),
		newAddCmd(a),
		newRemoveCmd(a),
		newInitCmd(a),
		newGenerateCmd(a),
		newEditCmd(a),
	)
	return rootCmd
}
