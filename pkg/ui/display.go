package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"

	"github.com/arthur-debert/brewsync/pkg/brewpkg"
	"github.com/arthur-debert/brewsync/pkg/reconcile"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	mutedStyle  = lipgloss.NewStyle().Faint(true)
)

// statusMarker returns the styled one-character marker for an entry
func statusMarker(status brewpkg.InstallStatus) string {
	switch status {
	case brewpkg.StatusInstalled:
		return pterm.NewStyle(pterm.FgGreen).Sprint("✓")
	case brewpkg.StatusMissing:
		return pterm.NewStyle(pterm.FgYellow).Sprint("!")
	default:
		return pterm.NewStyle(pterm.FgGray).Sprint("?")
	}
}

// RenderEntry renders one declared package line:
//
//	✓ git            (common)
func RenderEntry(entry brewpkg.Entry) string {
	line := fmt.Sprintf("  %s %-30s", statusMarker(entry.Status), entry.DisplayName())
	if entry.Group != "" {
		line += " " + mutedStyle.Render("("+entry.Group+")")
	}
	return line
}

// RenderExtra renders one undeclared-but-installed package line
func RenderExtra(entry brewpkg.Entry) string {
	marker := pterm.NewStyle(pterm.FgRed).Sprint("*")
	return fmt.Sprintf("  %s %s", marker, entry.DisplayName())
}

// RenderInventory renders the declared packages grouped by kind, with
// their install state resolved. Kinds with no entries are skipped.
func RenderInventory(entries []brewpkg.Entry) string {
	var result strings.Builder
	byKind := make(map[brewpkg.Kind][]brewpkg.Entry)
	for _, entry := range entries {
		byKind[entry.Kind] = append(byKind[entry.Kind], entry)
	}

	for _, kind := range brewpkg.Kinds() {
		group := byKind[kind]
		if len(group) == 0 {
			continue
		}
		result.WriteString(headerStyle.Render(kind.Plural()) + "\n")
		for _, entry := range group {
			result.WriteString(RenderEntry(entry) + "\n")
		}
	}
	return strings.TrimRight(result.String(), "\n")
}

// RenderDiff renders the reconciliation outcome: missing declared
// packages, then extra installed ones, then a one-line summary.
func RenderDiff(diff reconcile.Diff) string {
	var result strings.Builder

	if len(diff.Missing) > 0 {
		result.WriteString(headerStyle.Render("Missing (declared, not installed)") + "\n")
		for _, entry := range diff.Missing {
			result.WriteString(RenderEntry(entry) + "\n")
		}
	}
	if len(diff.Extra) > 0 {
		if result.Len() > 0 {
			result.WriteString("\n")
		}
		result.WriteString(headerStyle.Render("Not declared (installed anyway)") + "\n")
		for _, entry := range diff.Extra {
			result.WriteString(RenderExtra(entry) + "\n")
		}
	}
	if result.Len() > 0 {
		result.WriteString("\n")
	}
	result.WriteString(RenderSummary(diff))
	return result.String()
}

// RenderSummary renders the one-line sync verdict
func RenderSummary(diff reconcile.Diff) string {
	if diff.InSync() {
		return pterm.NewStyle(pterm.FgGreen).Sprint("Everything in sync.")
	}
	parts := []string{}
	if n := len(diff.Missing); n > 0 {
		parts = append(parts, fmt.Sprintf("%d missing", n))
	}
	if n := len(diff.Extra); n > 0 {
		parts = append(parts, fmt.Sprintf("%d not declared", n))
	}
	return pterm.NewStyle(pterm.FgYellow).Sprint("Out of sync: " + strings.Join(parts, ", ") + ".")
}

// EntryNames flattens entries to display names, used when listing
// packages inside confirmation prompts
func EntryNames(entries []brewpkg.Entry) []string {
	names := make([]string, len(entries))
	for i, entry := range entries {
		names[i] = fmt.Sprintf("%s %s", entry.Kind, entry.DisplayName())
	}
	return names
}
