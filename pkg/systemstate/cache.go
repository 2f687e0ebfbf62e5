// Package systemstate queries the bridge for the currently-installed
// package set and caches the normalized snapshot for the duration of one
// command invocation.
package systemstate

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/brewsync/pkg/brewpkg"
	"github.com/arthur-debert/brewsync/pkg/bridge"
	"github.com/arthur-debert/brewsync/pkg/errors"
	"github.com/arthur-debert/brewsync/pkg/logging"
)

// Snapshot is the set of installed packages observed at one point in
// time, indexed by (kind, identifier). Read-only after construction.
type Snapshot struct {
	entries []brewpkg.Entry
	index   map[string]bool
}

// newSnapshot builds a snapshot from normalized entries
func newSnapshot(entries []brewpkg.Entry) *Snapshot {
	index := make(map[string]bool, len(entries))
	for _, entry := range entries {
		index[entry.Key()] = true
	}
	return &Snapshot{entries: entries, index: index}
}

// Contains reports whether (kind, name) is installed
func (s *Snapshot) Contains(kind brewpkg.Kind, name string) bool {
	return s.index[brewpkg.Entry{Kind: kind, Name: name}.Key()]
}

// Entries returns a copy of the installed entries
func (s *Snapshot) Entries() []brewpkg.Entry {
	out := make([]brewpkg.Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of installed packages
func (s *Snapshot) Len() int {
	return len(s.entries)
}

// Cache lazily builds and holds one Snapshot per command invocation
type Cache struct {
	bridge   bridge.Bridge
	snapshot *Snapshot
}

// NewCache creates a cache querying the given bridge
func NewCache(b bridge.Bridge) *Cache {
	return &Cache{bridge: b}
}

// Installed returns the snapshot of currently-installed packages, building
// it on first access. forceRefresh rebuilds even when a snapshot exists.
//
// The build tidies orphaned dependencies first (best-effort, failures are
// swallowed), then dumps the live system to a manifest and lists it per
// kind. A dump or listing failure is fatal: without ground truth an empty
// snapshot would make everything declared look missing and everything
// installed look extra.
func (c *Cache) Installed(forceRefresh bool) (*Snapshot, error) {
	if c.snapshot != nil && !forceRefresh {
		return c.snapshot, nil
	}

	snapshot, err := c.build()
	if err != nil {
		return nil, err
	}
	c.snapshot = snapshot
	return snapshot, nil
}

// Invalidate discards the cached snapshot; the next Installed call
// rebuilds it. Call after any bridge mutation.
func (c *Cache) Invalidate() {
	c.snapshot = nil
}

func (c *Cache) build() (*Snapshot, error) {
	logger := logging.GetLogger("systemstate")

	if err := c.bridge.Autoremove(); err != nil {
		logger.Warn().Err(err).Msg("Orphan cleanup failed, continuing without it")
	}

	tmpDir, err := os.MkdirTemp("", "brewsync-dump-*")
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrSystemQuery, "could not create temp dir for system dump")
	}
	defer func() {
		_ = os.RemoveAll(tmpDir)
	}()
	dumpPath := filepath.Join(tmpDir, "Brewfile")

	if err := c.bridge.Dump(dumpPath); err != nil {
		return nil, errors.Wrap(err, errors.ErrSystemQuery, "could not dump installed packages")
	}

	var entries []brewpkg.Entry
	for _, kind := range brewpkg.Kinds() {
		names, err := c.bridge.ListManifest(dumpPath, kind)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrSystemQuery,
				"could not list installed %s", kind.Plural())
		}
		for _, name := range names {
			entries = append(entries, brewpkg.Entry{
				Name:   name,
				Kind:   kind,
				Status: brewpkg.StatusInstalled,
			})
		}
	}

	logger.Debug().Int("packages", len(entries)).Msg("System state snapshot built")
	return newSnapshot(entries), nil
}
