package brewpkg

import "fmt"

// InstallStatus is the tri-state installation status of a resolved entry
type InstallStatus int

const (
	// StatusUnknown means the system state has not been consulted yet
	StatusUnknown InstallStatus = iota
	// StatusInstalled means the package is present on the system
	StatusInstalled
	// StatusMissing means the package is declared but not installed
	StatusMissing
)

// Entry is a resolved, flattened view of one package: its identifier, the
// group that declares it (empty for entries sourced from system state),
// its kind, and its installation status. Entries are transient computation
// results and are never persisted.
type Entry struct {
	Name   string
	Group  string
	Kind   Kind
	Status InstallStatus
}

// Key returns the (kind, identifier) identity used for set membership
func (e Entry) Key() string {
	return fmt.Sprintf("%s\x00%s", e.Kind, e.Name)
}

// DisplayName is the identifier as shown to the user. For mas entries the
// numeric id suffix is kept, since it is part of the declared identity.
func (e Entry) DisplayName() string {
	return e.Name
}
