// Package testutil provides the shared test environment, a scriptable
// bridge double, and confirmation stubs used across brewsync's tests.
package testutil

import (
	"os"
	"sort"
	"strings"

	"github.com/arthur-debert/brewsync/pkg/brewpkg"
	"github.com/arthur-debert/brewsync/pkg/bridge"
	"github.com/arthur-debert/brewsync/pkg/errors"
	"github.com/arthur-debert/brewsync/pkg/manifest"
)

// BridgeCall records one mutating bridge invocation
type BridgeCall struct {
	Op   string // "install", "uninstall", "bundle-install", "cleanup"
	Kind brewpkg.Kind
	Name string
}

// CleanupCall records a CleanupAgainstManifest invocation along with the
// manifest content at call time
type CleanupCall struct {
	Path     string
	Force    bool
	Contents string
}

// MockBridge simulates the package manager: it tracks a fake installed
// set, applies manifest operations against it, and records every call.
type MockBridge struct {
	// Installed is the simulated system state, bare names per kind
	// (mas entries never carry ids, matching brew bundle's listing)
	Installed map[brewpkg.Kind][]string

	// SearchResults maps kind -> query -> matches
	SearchResults map[brewpkg.Kind]map[string][]string

	// Failure switches
	Unavailable   bool
	InstallErr    error
	UninstallErr  error
	DumpErr       error
	AutoremoveErr error

	// Call records
	Calls        []BridgeCall
	CleanupCalls []CleanupCall
	DumpCount    int
}

// NewMockBridge creates an empty mock bridge
func NewMockBridge() *MockBridge {
	return &MockBridge{
		Installed:     make(map[brewpkg.Kind][]string),
		SearchResults: make(map[brewpkg.Kind]map[string][]string),
	}
}

// SetInstalled seeds the simulated installed set for one kind
func (m *MockBridge) SetInstalled(kind brewpkg.Kind, names ...string) {
	m.Installed[kind] = append([]string{}, names...)
}

// SetSearchResults seeds search output for (kind, query)
func (m *MockBridge) SetSearchResults(kind brewpkg.Kind, query string, matches ...string) {
	if m.SearchResults[kind] == nil {
		m.SearchResults[kind] = make(map[string][]string)
	}
	m.SearchResults[kind][query] = matches
}

// MutationCalls counts the bridge calls that can change the system
func (m *MockBridge) MutationCalls() int {
	return len(m.Calls) + len(m.CleanupCalls)
}

// IsInstalled reports whether the simulated system has (kind, name)
func (m *MockBridge) IsInstalled(kind brewpkg.Kind, name string) bool {
	for _, existing := range m.Installed[kind] {
		if existing == name {
			return true
		}
	}
	return false
}

func (m *MockBridge) Available() error {
	if m.Unavailable {
		return errors.New(errors.ErrBridgeMissing, "brew is not installed")
	}
	return nil
}

func (m *MockBridge) Install(kind brewpkg.Kind, name string) error {
	if m.InstallErr != nil {
		return m.InstallErr
	}
	m.Calls = append(m.Calls, BridgeCall{Op: "install", Kind: kind, Name: name})
	installedName := name
	if kind == brewpkg.KindMAS {
		installedName = brewpkg.MASBaseName(name)
	}
	if !m.IsInstalled(kind, installedName) {
		m.Installed[kind] = append(m.Installed[kind], installedName)
	}
	return nil
}

func (m *MockBridge) Uninstall(kind brewpkg.Kind, name string) error {
	if m.UninstallErr != nil {
		return m.UninstallErr
	}
	m.Calls = append(m.Calls, BridgeCall{Op: "uninstall", Kind: kind, Name: name})
	target := name
	if kind == brewpkg.KindMAS {
		target = brewpkg.MASBaseName(name)
	}
	installed := m.Installed[kind]
	for i, existing := range installed {
		if existing == target {
			m.Installed[kind] = append(installed[:i], installed[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MockBridge) Search(kind brewpkg.Kind, query string) ([]string, error) {
	if byQuery, ok := m.SearchResults[kind]; ok {
		return byQuery[query], nil
	}
	return nil, nil
}

func (m *MockBridge) Autoremove() error {
	return m.AutoremoveErr
}

// Dump writes the simulated installed set to manifestPath in Brewfile form
func (m *MockBridge) Dump(manifestPath string) error {
	if m.DumpErr != nil {
		return m.DumpErr
	}
	m.DumpCount++

	var lines []string
	for _, kind := range brewpkg.Kinds() {
		names := append([]string{}, m.Installed[kind]...)
		sort.Strings(names)
		for _, name := range names {
			if kind == brewpkg.KindMAS {
				lines = append(lines, "mas \""+name+"\", id: 0")
			} else {
				lines = append(lines, kind.String()+" \""+name+"\"")
			}
		}
	}
	return os.WriteFile(manifestPath, []byte(strings.Join(lines, "\n")+"\n"), 0644)
}

func (m *MockBridge) ListManifest(manifestPath string, kind brewpkg.Kind) ([]string, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrBridgeExec, "cannot list manifest %s", manifestPath)
	}
	items, err := manifest.Parse(strings.NewReader(string(data)))
	if err != nil {
		return nil, err
	}
	return manifest.Names(items, kind), nil
}

// InstallFromManifest marks everything the manifest declares as installed
func (m *MockBridge) InstallFromManifest(manifestPath string) error {
	if m.InstallErr != nil {
		return m.InstallErr
	}
	m.Calls = append(m.Calls, BridgeCall{Op: "bundle-install", Name: manifestPath})

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrBridgeExec, "cannot read manifest %s", manifestPath)
	}
	items, err := manifest.Parse(strings.NewReader(string(data)))
	if err != nil {
		return err
	}
	for _, item := range items {
		if !m.IsInstalled(item.Kind, item.Name) {
			m.Installed[item.Kind] = append(m.Installed[item.Kind], item.Name)
		}
	}
	return nil
}

// CleanupAgainstManifest removes every installed package the manifest does
// not declare, recording the manifest content at call time
func (m *MockBridge) CleanupAgainstManifest(manifestPath string, force bool) error {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrBridgeExec, "cannot read manifest %s", manifestPath)
	}
	m.CleanupCalls = append(m.CleanupCalls, CleanupCall{
		Path:     manifestPath,
		Force:    force,
		Contents: string(data),
	})

	items, err := manifest.Parse(strings.NewReader(string(data)))
	if err != nil {
		return err
	}
	declared := make(map[string]bool)
	for _, item := range items {
		declared[item.Kind.String()+"\x00"+item.Name] = true
	}

	for _, kind := range brewpkg.Kinds() {
		var kept []string
		for _, name := range m.Installed[kind] {
			if declared[kind.String()+"\x00"+name] {
				kept = append(kept, name)
			}
		}
		m.Installed[kind] = kept
	}
	return nil
}

// Verify interface compliance
var _ bridge.Bridge = (*MockBridge)(nil)
