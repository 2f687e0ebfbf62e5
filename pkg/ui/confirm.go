package ui

// Confirmation describes a pending action that needs user approval.
// Operations build these from their computed decisions; the presentation
// layer decides how to ask.
type Confirmation struct {
	// Title summarizes the action
	Title string
	// Items is the exact set of affected packages
	Items []string
	// Warning is shown for destructive actions
	Warning string
	// Default is the answer an empty response selects
	Default bool
}

// Confirmer asks the user to approve an action. Implementations must
// return false, not an error, when the user declines.
type Confirmer interface {
	Confirm(c Confirmation) (bool, error)
}

// GroupPrompter selects declaration groups interactively
type GroupPrompter interface {
	// PickGroup selects a single target group from the available ones,
	// offering defaultGroup first. New names are allowed.
	PickGroup(available []string, defaultGroup string) (string, error)

	// PickGroups multi-selects groups for a machine assignment
	PickGroups(available, current []string) ([]string, error)
}
