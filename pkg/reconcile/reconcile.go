// Package reconcile computes the difference between the declared package
// set and the installed package set. It is pure: no bridge, no filesystem.
package reconcile

import (
	"sort"

	"github.com/arthur-debert/brewsync/pkg/brewpkg"
)

// Diff is the outcome of comparing declared against installed.
//
// Missing holds declared packages not present on the system. Extra holds
// installed packages no group declares. Both are sorted by kind then name.
type Diff struct {
	Missing []brewpkg.Entry
	Extra   []brewpkg.Entry
}

// InSync reports whether declared and installed agree exactly
func (d Diff) InSync() bool {
	return len(d.Missing) == 0 && len(d.Extra) == 0
}

// Compare diffs the declared entries against the installed entries.
//
// Identity is (kind, name), except for app store packages where the
// declared form carries a purchase id ("Name::id") and the installed form
// is the bare name. Matching for that kind happens on the base name in
// both directions, so "Xcode::497799835" declared and "Xcode" installed
// are the same package.
//
// Returned entries carry their resolved status: missing entries keep the
// declaring group, extra entries have no group.
func Compare(declared, installed []brewpkg.Entry) Diff {
	installedSet := make(map[string]bool, len(installed))
	for _, entry := range installed {
		installedSet[matchKey(entry)] = true
	}

	declaredSet := make(map[string]bool, len(declared))
	for _, entry := range declared {
		declaredSet[matchKey(entry)] = true
	}

	var diff Diff
	for _, entry := range declared {
		if installedSet[matchKey(entry)] {
			continue
		}
		entry.Status = brewpkg.StatusMissing
		diff.Missing = append(diff.Missing, entry)
	}
	for _, entry := range installed {
		if declaredSet[matchKey(entry)] {
			continue
		}
		entry.Status = brewpkg.StatusInstalled
		entry.Group = ""
		diff.Extra = append(diff.Extra, entry)
	}

	sortEntries(diff.Missing)
	sortEntries(diff.Extra)
	return diff
}

// Annotate returns the declared entries with Status resolved against the
// installed set, in sorted order. Used by status output to show the full
// declared inventory rather than just the differences.
func Annotate(declared, installed []brewpkg.Entry) []brewpkg.Entry {
	installedSet := make(map[string]bool, len(installed))
	for _, entry := range installed {
		installedSet[matchKey(entry)] = true
	}

	out := make([]brewpkg.Entry, 0, len(declared))
	for _, entry := range declared {
		if installedSet[matchKey(entry)] {
			entry.Status = brewpkg.StatusInstalled
		} else {
			entry.Status = brewpkg.StatusMissing
		}
		out = append(out, entry)
	}
	sortEntries(out)
	return out
}

// matchKey is the identity used for diffing. App store names are reduced
// to their base form so declared "Name::id" meets installed "Name".
func matchKey(entry brewpkg.Entry) string {
	name := entry.Name
	if entry.Kind == brewpkg.KindMAS {
		name = brewpkg.MASBaseName(name)
	}
	return brewpkg.Entry{Kind: entry.Kind, Name: name}.Key()
}

func sortEntries(entries []brewpkg.Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Kind != entries[j].Kind {
			return entries[i].Kind < entries[j].Kind
		}
		return entries[i].Name < entries[j].Name
	})
}
