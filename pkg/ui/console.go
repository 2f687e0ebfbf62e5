package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
)

// Console implements Confirmer and GroupPrompter on the terminal using
// huh forms. A non-interactive policy declines everything, so piping
// brewsync into a script never silently approves a destructive action.
type Console struct {
	policy OutputPolicy
}

// NewConsole creates the terminal confirmation and prompt surface
func NewConsole(policy OutputPolicy) *Console {
	return &Console{policy: policy}
}

// Confirm shows the affected items and asks for approval
func (c *Console) Confirm(conf Confirmation) (bool, error) {
	if len(conf.Items) > 0 {
		pterm.DefaultSection.Println(conf.Title)
		for _, item := range conf.Items {
			fmt.Printf("  %s\n", item)
		}
	}
	if conf.Warning != "" {
		pterm.Warning.Println(conf.Warning)
	}

	if !c.policy.Interactive {
		return false, nil
	}

	approved := conf.Default
	err := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(conf.Title).
			Value(&approved),
	)).Run()
	if err != nil {
		return false, fmt.Errorf("reading confirmation: %w", err)
	}
	return approved, nil
}

// PickGroup selects one target group, defaulting to defaultGroup and
// allowing a new group name to be typed
func (c *Console) PickGroup(available []string, defaultGroup string) (string, error) {
	if !c.policy.Interactive {
		return defaultGroup, nil
	}

	options := []huh.Option[string]{}
	seen := map[string]bool{}
	for _, name := range append([]string{defaultGroup}, available...) {
		if name == "" || seen[name] {
			continue
		}
		options = append(options, huh.NewOption(name, name))
		seen[name] = true
	}
	options = append(options, huh.NewOption("other (type a new group name)", ""))

	selected := defaultGroup
	err := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Target group").
			Options(options...).
			Value(&selected),
	)).Run()
	if err != nil {
		return "", fmt.Errorf("selecting group: %w", err)
	}

	if selected != "" {
		return selected, nil
	}

	var name string
	err = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("New group name").
			Value(&name).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("group name cannot be empty")
				}
				return nil
			}),
	)).Run()
	if err != nil {
		return "", fmt.Errorf("reading group name: %w", err)
	}
	return strings.TrimSpace(name), nil
}

// PickGroups multi-selects groups for a machine assignment
func (c *Console) PickGroups(available, current []string) ([]string, error) {
	if !c.policy.Interactive {
		return current, nil
	}

	options := make([]huh.Option[string], 0, len(available))
	selectedSet := map[string]bool{}
	for _, name := range current {
		selectedSet[name] = true
	}
	for _, name := range available {
		options = append(options, huh.NewOption(name, name).Selected(selectedSet[name]))
	}

	var selected []string
	err := huh.NewForm(huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("Package groups for this machine").
			Options(options...).
			Value(&selected),
	)).Run()
	if err != nil {
		return nil, fmt.Errorf("selecting groups: %w", err)
	}
	return selected, nil
}

// Verify interface compliance
var (
	_ Confirmer     = (*Console)(nil)
	_ GroupPrompter = (*Console)(nil)
)
