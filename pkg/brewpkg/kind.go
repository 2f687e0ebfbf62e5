// Package brewpkg defines the closed set of Homebrew package kinds and the
// resolved package entry used throughout brewsync. It replaces the ad-hoc
// string-keyed kinds ("brews", kind + "s", kind[:-1]) with one enumeration
// and exhaustive conversion functions.
package brewpkg

import (
	"strings"

	"github.com/arthur-debert/brewsync/pkg/errors"
)

// Kind enumerates the package kinds brew bundle manages
type Kind int

const (
	// KindTap is a package repository tap
	KindTap Kind = iota
	// KindFormula is an installable command-line formula
	KindFormula
	// KindCask is a GUI application bundle
	KindCask
	// KindMAS is a Mac App Store app, identified by name plus numeric id
	KindMAS
)

// MASSeparator joins a store app's display name and numeric id in declared
// identifiers, e.g. "Xcode::497799835". The installed-state listing only
// ever reports the bare name.
const MASSeparator = "::"

// Kinds returns all kinds in canonical manifest order
func Kinds() []Kind {
	return []Kind{KindTap, KindFormula, KindCask, KindMAS}
}

// String returns the canonical singular form, which is also the Brewfile
// directive for the kind
func (k Kind) String() string {
	switch k {
	case KindTap:
		return "tap"
	case KindFormula:
		return "brew"
	case KindCask:
		return "cask"
	case KindMAS:
		return "mas"
	default:
		return "unknown"
	}
}

// Plural returns the form used as a key in the declaration file. "mas" is
// invariant.
func (k Kind) Plural() string {
	switch k {
	case KindTap:
		return "taps"
	case KindFormula:
		return "brews"
	case KindCask:
		return "casks"
	case KindMAS:
		return "mas"
	default:
		return "unknown"
	}
}

// ParseKind converts a user- or file-supplied kind name into a Kind.
// Common synonyms are accepted; anything else is an unknown-kind error.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "tap", "taps":
		return KindTap, nil
	case "brew", "brews", "formula", "formulae":
		return KindFormula, nil
	case "cask", "casks":
		return KindCask, nil
	case "mas", "app", "appstore":
		return KindMAS, nil
	default:
		return KindTap, errors.Newf(errors.ErrUnknownKind, "unknown package kind: %q", s)
	}
}

// SplitMAS splits a declared mas identifier into its display name and
// numeric id. The id is empty when the identifier carries none.
func SplitMAS(identifier string) (name, id string) {
	idx := strings.LastIndex(identifier, MASSeparator)
	if idx < 0 {
		return identifier, ""
	}
	return identifier[:idx], identifier[idx+len(MASSeparator):]
}

// MASBaseName returns the display name of a mas identifier, with or
// without an embedded id
func MASBaseName(identifier string) string {
	name, _ := SplitMAS(identifier)
	return name
}
