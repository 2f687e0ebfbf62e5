// Package manifest renders resolved package entries into brew bundle's
// declarative Brewfile syntax and parses Brewfiles produced by
// `brew bundle dump`.
package manifest

import (
	"bufio"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/arthur-debert/brewsync/pkg/brewpkg"
	"github.com/arthur-debert/brewsync/pkg/errors"
	"github.com/arthur-debert/brewsync/pkg/filesystem"
)

// Item is one directive parsed from a Brewfile
type Item struct {
	Kind brewpkg.Kind
	Name string
	// MASID is the numeric id of a mas directive, empty for other kinds
	MASID string
}

// directiveRe matches `tap "x"`, `brew "x"`, `cask "x"` and
// `mas "Name", id: 123` lines
var directiveRe = regexp.MustCompile(`^(tap|brew|cask|mas)\s+"([^"]+)"(?:\s*,\s*id:\s*(\d+))?`)

// Render produces Brewfile content for the given entries: one directive
// per line, one block per kind in canonical order, a blank line between
// non-empty blocks. A mas entry without an embedded id becomes a commented
// placeholder so brew bundle never sees an unresolvable directive.
func Render(entries []brewpkg.Entry) string {
	byKind := make(map[brewpkg.Kind][]brewpkg.Entry)
	for _, entry := range entries {
		byKind[entry.Kind] = append(byKind[entry.Kind], entry)
	}

	var blocks []string
	for _, kind := range brewpkg.Kinds() {
		kindEntries := byKind[kind]
		if len(kindEntries) == 0 {
			continue
		}
		lines := make([]string, 0, len(kindEntries))
		for _, entry := range kindEntries {
			lines = append(lines, directive(entry))
		}
		blocks = append(blocks, strings.Join(lines, "\n"))
	}

	if len(blocks) == 0 {
		return ""
	}
	return strings.Join(blocks, "\n\n") + "\n"
}

// directive renders one entry as a Brewfile line
func directive(entry brewpkg.Entry) string {
	if entry.Kind == brewpkg.KindMAS {
		name, id := brewpkg.SplitMAS(entry.Name)
		if id == "" {
			return fmt.Sprintf("# mas %q # id unknown, resolve with: mas list", name)
		}
		return fmt.Sprintf("mas %q, id: %s", name, id)
	}
	return fmt.Sprintf("%s %q", entry.Kind, entry.Name)
}

// Write renders the entries and writes the Brewfile to path, creating
// parent directories as needed
func Write(fs filesystem.FS, path string, entries []brewpkg.Entry) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "could not create %s", filepath.Dir(path))
	}
	if err := fs.WriteFile(path, []byte(Render(entries)), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrManifestWrite, "could not write manifest %s", path)
	}
	return nil
}

// Parse extracts the tap/brew/cask/mas directives from Brewfile content.
// Comments, blank lines, and unrecognized directives (vscode, whalebrew)
// are skipped.
func Parse(r io.Reader) ([]Item, error) {
	var items []Item

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m := directiveRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		kind, err := brewpkg.ParseKind(m[1])
		if err != nil {
			continue
		}
		items = append(items, Item{Kind: kind, Name: m[2], MASID: m[3]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning manifest: %w", err)
	}

	return items, nil
}

// Names filters parsed items to the identifiers of one kind, in file order
func Names(items []Item, kind brewpkg.Kind) []string {
	var names []string
	for _, item := range items {
		if item.Kind == kind {
			names = append(names, item.Name)
		}
	}
	return names
}
