// Package declaration implements the persisted package declaration: named
// package groups plus the machine-to-groups assignment. The declaration is
// the single source of truth for what should be installed; it is loaded
// leniently (a broken file degrades to an empty declaration) but saved
// strictly (a lost write must never go unnoticed).
package declaration

import (
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/brewsync/pkg/brewpkg"
	"github.com/arthur-debert/brewsync/pkg/errors"
	"github.com/arthur-debert/brewsync/pkg/filesystem"
	"github.com/arthur-debert/brewsync/pkg/logging"
)

// CurrentVersion is the declaration file format version written on save
const CurrentVersion = "1.0"

// document is the on-disk shape of the declaration file
type document struct {
	Version  string              `yaml:"version"`
	Packages map[string]*Group   `yaml:"packages"`
	Machines map[string][]string `yaml:"machines"`
}

// Store is the root persisted entity: package groups plus machine
// assignments. Mutating methods auto-persist when the store was loaded
// from a path.
type Store struct {
	Version  string
	Groups   map[string]*Group
	Machines map[string][]string

	fs   filesystem.FS
	path string
}

// NewStore creates an empty in-memory store that does not auto-persist
func NewStore() *Store {
	return &Store{
		Version:  CurrentVersion,
		Groups:   make(map[string]*Group),
		Machines: make(map[string][]string),
	}
}

// Load reads the declaration from path. A missing file, malformed YAML, or
// missing required top-level fields yields a warning and a fresh empty
// store. Configuration can always be regenerated, so availability wins
// over strict validation here.
func Load(fs filesystem.FS, path string) *Store {
	logger := logging.GetLogger("declaration")

	store := NewStore()
	store.fs = fs
	store.path = path

	data, err := fs.ReadFile(path)
	if err != nil {
		logger.Debug().Str("path", path).Err(err).Msg("No declaration file, starting empty")
		return store
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		logger.Warn().Str("path", path).Err(err).Msg("Could not parse declaration, starting empty")
		return store
	}

	if doc.Version == "" || doc.Packages == nil || doc.Machines == nil {
		logger.Warn().Str("path", path).Msg("Declaration missing required fields, starting empty")
		return store
	}

	store.Version = doc.Version
	store.Groups = doc.Packages
	store.Machines = doc.Machines

	// A nil group entry ("base:" with no body) is still a valid empty group
	for name, group := range store.Groups {
		if group == nil {
			store.Groups[name] = &Group{}
		}
	}

	logger.Debug().
		Str("path", path).
		Int("groups", len(store.Groups)).
		Int("machines", len(store.Machines)).
		Msg("Declaration loaded")

	return store
}

// Save serializes the declaration back to its load path, creating parent
// directories as needed. Any failure is returned; losing a declared
// mutation silently would desynchronize the declaration from the system.
func (s *Store) Save() error {
	if s.path == "" || s.fs == nil {
		return errors.New(errors.ErrDeclarationSave, "declaration store has no storage path")
	}

	doc := document{
		Version:  s.Version,
		Packages: s.Groups,
		Machines: s.Machines,
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return errors.Wrap(err, errors.ErrDeclarationSave, "could not serialize declaration")
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDeclarationSave, "could not create %s", filepath.Dir(s.path))
	}

	if err := s.fs.WriteFile(s.path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrDeclarationSave, "could not write %s", s.path)
	}

	return nil
}

// SaveTo binds the store to a storage location and saves it there
func (s *Store) SaveTo(fs filesystem.FS, path string) error {
	s.fs = fs
	s.path = path
	return s.Save()
}

// Path returns the declaration's storage path, empty for in-memory stores
func (s *Store) Path() string {
	return s.path
}

// AvailableGroups returns all group names, sorted
func (s *Store) AvailableGroups() []string {
	names := make([]string, 0, len(s.Groups))
	for name := range s.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// EnsureGroup creates the named group if it does not exist yet
func (s *Store) EnsureGroup(name string) *Group {
	if group, ok := s.Groups[name]; ok {
		return group
	}
	group := &Group{}
	s.Groups[name] = group
	return group
}

// GroupsForMachine resolves the group list for a machine: the explicit
// assignment in order, then the machine's self-named group appended when
// it exists and is not already assigned. The self group is what carries
// per-machine overrides without explicit registration.
func (s *Store) GroupsForMachine(machine string) []string {
	groups := make([]string, 0, len(s.Machines[machine])+1)
	seen := make(map[string]bool)
	for _, name := range s.Machines[machine] {
		if !seen[name] {
			groups = append(groups, name)
			seen[name] = true
		}
	}

	if _, ok := s.Groups[machine]; ok && !seen[machine] {
		groups = append(groups, machine)
	}

	return groups
}

// Configured reports whether the machine resolves to at least one group
func (s *Store) Configured(machine string) bool {
	return len(s.GroupsForMachine(machine)) > 0
}

// SetMachineGroups replaces the machine's explicit group assignment and
// persists the change
func (s *Store) SetMachineGroups(machine string, groups []string) error {
	s.Machines[machine] = groups
	return s.autosave()
}

// AssignGroup appends a group to the machine's assignment if not already
// present and persists the change
func (s *Store) AssignGroup(machine, group string) error {
	for _, existing := range s.Machines[machine] {
		if existing == group {
			return nil
		}
	}
	s.Machines[machine] = append(s.Machines[machine], group)
	return s.autosave()
}

// PackagesForMachine flattens the machine's groups into resolved entries.
// Groups are visited in resolution order; the first occurrence of a
// (kind, identifier) pair wins.
func (s *Store) PackagesForMachine(machine string) []brewpkg.Entry {
	var entries []brewpkg.Entry
	seen := make(map[string]bool)

	for _, groupName := range s.GroupsForMachine(machine) {
		group, ok := s.Groups[groupName]
		if !ok {
			continue
		}
		for _, entry := range group.Entries(groupName) {
			if !seen[entry.Key()] {
				entries = append(entries, entry)
				seen[entry.Key()] = true
			}
		}
	}

	return entries
}

// AddPackage declares (kind, name) in the given group, auto-creating the
// group. Adding an already-declared package is a no-op. The change is
// persisted before returning.
func (s *Store) AddPackage(groupName string, kind brewpkg.Kind, name string) (bool, error) {
	group := s.EnsureGroup(groupName)
	if !group.Add(kind, name) {
		return false, nil
	}
	return true, s.autosave()
}

// RemovePackage deletes the identifier from every group declaring it. A
// package can legitimately appear in several groups; removing only one
// occurrence would let the next sync reinstall what the user just removed.
// The kind comes from the first declaration found; for mas entries a bare
// name matches a declared "name::id". The change is persisted before
// returning.
func (s *Store) RemovePackage(name string) (brewpkg.Kind, bool, error) {
	_, kind, _, ok := s.ResolvePackage(name)
	if !ok {
		return brewpkg.KindTap, false, nil
	}
	for _, groupName := range s.AvailableGroups() {
		for s.Groups[groupName].Remove(kind, name) {
		}
	}
	return kind, true, s.autosave()
}

// FindPackage reports the group and kind declaring the identifier
func (s *Store) FindPackage(name string) (group string, kind brewpkg.Kind, ok bool) {
	group, kind, _, ok = s.ResolvePackage(name)
	return group, kind, ok
}

// ResolvePackage locates the identifier across groups and kinds and
// returns the declared form, which for mas entries carries the id suffix
// even when the lookup used the bare name
func (s *Store) ResolvePackage(name string) (group string, kind brewpkg.Kind, identifier string, ok bool) {
	for _, groupName := range s.AvailableGroups() {
		g := s.Groups[groupName]
		for _, k := range brewpkg.Kinds() {
			for _, existing := range *g.list(k) {
				if existing == name || (k == brewpkg.KindMAS && brewpkg.MASBaseName(existing) == name) {
					return groupName, k, existing, true
				}
			}
		}
	}
	return "", brewpkg.KindTap, "", false
}

// autosave persists the store when it is bound to a path. In-memory
// stores mutate without persistence.
func (s *Store) autosave() error {
	if s.path == "" {
		return nil
	}
	return s.Save()
}
