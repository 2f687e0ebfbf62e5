package declaration

import (
	"github.com/arthur-debert/brewsync/pkg/brewpkg"
)

// Group is a named, reusable bundle of package declarations, partitioned
// by kind. Within one group a (kind, identifier) pair appears at most once.
type Group struct {
	Taps  []string `yaml:"taps,omitempty"`
	Brews []string `yaml:"brews,omitempty"`
	Casks []string `yaml:"casks,omitempty"`
	MAS   []string `yaml:"mas,omitempty"`
}

// list returns the identifier slice for a kind
func (g *Group) list(kind brewpkg.Kind) *[]string {
	switch kind {
	case brewpkg.KindTap:
		return &g.Taps
	case brewpkg.KindFormula:
		return &g.Brews
	case brewpkg.KindCask:
		return &g.Casks
	case brewpkg.KindMAS:
		return &g.MAS
	default:
		return nil
	}
}

// Contains reports whether the group declares (kind, name)
func (g *Group) Contains(kind brewpkg.Kind, name string) bool {
	for _, existing := range *g.list(kind) {
		if existing == name {
			return true
		}
	}
	return false
}

// Add appends a package to the group. Adding an already-present package
// is a no-op; the return value reports whether the group changed.
func (g *Group) Add(kind brewpkg.Kind, name string) bool {
	if g.Contains(kind, name) {
		return false
	}
	list := g.list(kind)
	*list = append(*list, name)
	return true
}

// Remove deletes a package from the group. For mas entries both the full
// "name::id" identifier and the bare name match. Returns whether anything
// was removed.
func (g *Group) Remove(kind brewpkg.Kind, name string) bool {
	list := g.list(kind)
	for i, existing := range *list {
		if existing == name || (kind == brewpkg.KindMAS && brewpkg.MASBaseName(existing) == name) {
			*list = append((*list)[:i], (*list)[i+1:]...)
			return true
		}
	}
	return false
}

// Entries returns the group's packages as resolved entries tagged with the
// group's name, in declaration order, kinds in canonical order.
func (g *Group) Entries(groupName string) []brewpkg.Entry {
	var entries []brewpkg.Entry
	for _, kind := range brewpkg.Kinds() {
		for _, name := range *g.list(kind) {
			entries = append(entries, brewpkg.Entry{
				Name:   name,
				Group:  groupName,
				Kind:   kind,
				Status: brewpkg.StatusUnknown,
			})
		}
	}
	return entries
}

// Empty reports whether the group declares no packages at all
func (g *Group) Empty() bool {
	return len(g.Taps) == 0 && len(g.Brews) == 0 && len(g.Casks) == 0 && len(g.MAS) == 0
}
