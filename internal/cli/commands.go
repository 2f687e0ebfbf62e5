package cli

import (
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/brewsync/pkg/commands/add"
	"github.com/arthur-debert/brewsync/pkg/commands/edit"
	"github.com/arthur-debert/brewsync/pkg/commands/generate"
	"github.com/arthur-debert/brewsync/pkg/commands/initialize"
	"github.com/arthur-debert/brewsync/pkg/commands/remove"
	"github.com/arthur-debert/brewsync/pkg/commands/status"
	"github.com/arthur-debert/brewsync/pkg/commands/syncadopt"
	"github.com/arthur-debert/brewsync/pkg/commands/synccleanup"
	"github.com/arthur-debert/brewsync/pkg/config"
	"github.com/arthur-debert/brewsync/pkg/ui"
)

func newStatusCmd(a *app) *cobra.Command {
	var refresh bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show declared packages and how they differ from the system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := status.Status(status.Options{
				Store:   a.store,
				State:   a.state,
				Machine: a.machine,
				Refresh: refresh,
			})
			if err != nil {
				return err
			}

			pterm.Printf("Machine %s follows: %s\n\n",
				pterm.Bold.Sprint(result.Machine),
				pterm.FgGray.Sprint(joinGroups(result.Groups)))
			if len(result.Inventory) > 0 {
				pterm.Println(ui.RenderInventory(result.Inventory))
				pterm.Println()
			}
			pterm.Println(ui.RenderDiff(result.Diff))
			return nil
		},
	}
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Rebuild the system snapshot")
	return cmd
}

func newSyncCmd(a *app) *cobra.Command {
	var cleanup, yes bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Converge the system toward the declaration",
		Long: `Installs everything declared but missing and adopts everything installed
but undeclared into this machine's own group. With --cleanup, undeclared
packages are uninstalled instead of adopted.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cleanup {
				result, err := synccleanup.SyncCleanup(synccleanup.Options{
					Store:        a.store,
					State:        a.state,
					Bridge:       a.bridge,
					FS:           a.fs,
					Confirmer:    a.console,
					Machine:      a.machine,
					BrewfilePath: a.brewfile,
					Yes:          yes,
				})
				if err != nil {
					return err
				}
				reportSync(result.Declined, len(result.Installed), len(result.Removed), 0)
				return nil
			}

			result, err := syncadopt.SyncAdopt(syncadopt.Options{
				Store:        a.store,
				State:        a.state,
				Bridge:       a.bridge,
				FS:           a.fs,
				Confirmer:    a.console,
				Machine:      a.machine,
				BrewfilePath: a.brewfile,
				Yes:          yes,
			})
			if err != nil {
				return err
			}
			reportSync(result.Declined, len(result.Installed), 0, len(result.Adopted))
			return nil
		},
	}
	cmd.Flags().BoolVar(&cleanup, "cleanup", false, "Uninstall undeclared packages instead of adopting them")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newAddCmd(a *app) *cobra.Command {
	var kind, group string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Install a package and declare it in a group",
		Long: `Installs the package and records it in the declaration. App Store packages
use the Name::id form, e.g. 'brewsync add Xcode::497799835'. Without --kind
the package kind is resolved by searching casks first, then formulas.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := add.Add(add.Options{
				Store:        a.store,
				State:        a.state,
				Bridge:       a.bridge,
				FS:           a.fs,
				Prompter:     a.console,
				Machine:      a.machine,
				BrewfilePath: a.brewfile,
				Name:         args[0],
				Kind:         kind,
				Group:        group,
				DefaultGroup: a.settings.DefaultGroup,
			})
			if err != nil {
				return err
			}

			if result.KindDefaulted {
				msg := "No exact match found, treating as a formula."
				if result.Suggestion != "" {
					msg += " Did you mean " + pterm.Bold.Sprint(result.Suggestion) + "?"
				}
				pterm.Warning.Println(msg)
			}
			if result.AlreadyDeclared {
				pterm.Printf("%s was already declared in %s, reinstalled.\n",
					result.Name, result.Group)
				return nil
			}
			pterm.Success.Printfln("Added %s %s to %s.", result.Kind, result.Name, result.Group)
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Package kind: tap, brew, cask, or mas")
	cmd.Flags().StringVarP(&group, "group", "g", "", "Target group (default: prompt)")
	return cmd
}

func newRemoveCmd(a *app) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <name>",
		Short: "Uninstall a package and remove it from the declaration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := remove.Remove(remove.Options{
				Store:        a.store,
				State:        a.state,
				Bridge:       a.bridge,
				FS:           a.fs,
				Confirmer:    a.console,
				Machine:      a.machine,
				BrewfilePath: a.brewfile,
				Name:         args[0],
				Yes:          yes,
			})
			if err != nil {
				return err
			}
			if result.Declined {
				pterm.Println("Nothing removed.")
				return nil
			}
			pterm.Success.Printfln("Removed %s %s from %s.", result.Kind, result.Name, result.Group)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newInitCmd(a *app) *cobra.Command {
	var groups []string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Choose which groups this machine follows",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := initialize.Initialize(initialize.Options{
				Store:        a.store,
				FS:           a.fs,
				Prompter:     a.console,
				Machine:      a.machine,
				BrewfilePath: a.brewfile,
				Groups:       groups,
			})
			if err != nil {
				return err
			}
			if err := config.WriteDefault(a.fs, a.paths.SettingsPath(), a.settings); err != nil {
				return err
			}
			pterm.Success.Printfln("Machine %s follows: %s", result.Machine, joinGroups(result.Groups))
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&groups, "group", "g", nil, "Groups to follow (default: prompt)")
	return cmd
}

func newGenerateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Write this machine's Brewfile from the declaration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := generate.Generate(generate.Options{
				Store:        a.store,
				FS:           a.fs,
				Machine:      a.machine,
				BrewfilePath: a.brewfile,
			})
			if err != nil {
				return err
			}
			pterm.Success.Printfln("Wrote %d packages to %s.", result.Packages, result.Path)
			return nil
		},
	}
}

func newEditCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Open the declaration file in $EDITOR",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := edit.Edit(edit.Options{
				FS:   a.fs,
				Path: a.paths.DeclarationPath(),
			})
			if err != nil {
				return err
			}
			pterm.Printf("Declaration updated: %d groups, %d machines.\n",
				len(result.Store.AvailableGroups()), len(result.Store.Machines))
			return nil
		},
	}
}

func reportSync(declined bool, installed, removed, adopted int) {
	if declined {
		pterm.Println("Sync cancelled, nothing changed.")
		return
	}
	if installed+removed+adopted == 0 {
		pterm.Success.Println("Everything already in sync.")
		return
	}
	if installed > 0 {
		pterm.Success.Printfln("Installed %d packages.", installed)
	}
	if adopted > 0 {
		pterm.Success.Printfln("Adopted %d packages into this machine's group.", adopted)
	}
	if removed > 0 {
		pterm.Success.Printfln("Removed %d packages.", removed)
	}
}

func joinGroups(groups []string) string {
	if len(groups) == 0 {
		return "(no groups)"
	}
	return strings.Join(groups, ", ")
}
