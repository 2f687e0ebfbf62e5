package testutil

import (
	"path/filepath"
	"testing"

	"github.com/arthur-debert/brewsync/pkg/declaration"
	"github.com/arthur-debert/brewsync/pkg/filesystem"
	"github.com/arthur-debert/brewsync/pkg/paths"
	"github.com/arthur-debert/brewsync/pkg/systemstate"
	"github.com/stretchr/testify/require"
)

// TestEnvironment wires the full dependency set for command tests: an
// isolated config/state tree under a temp dir, a declaration store backed
// by the real filesystem, a scriptable bridge, and a system state cache
// over it.
type TestEnvironment struct {
	ConfigDir string
	StateDir  string
	Paths     *paths.Paths
	FS        filesystem.FS
	Store     *declaration.Store
	Bridge    *MockBridge
	State     *systemstate.Cache

	t *testing.T
}

// NewTestEnvironment creates an isolated environment. Env overrides are
// installed with t.Setenv, so everything resets when the test ends.
func NewTestEnvironment(t *testing.T) *TestEnvironment {
	t.Helper()

	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, "config")
	stateDir := filepath.Join(tempDir, "state")

	t.Setenv("BREWSYNC_CONFIG_DIR", configDir)
	t.Setenv("BREWSYNC_STATE_DIR", stateDir)
	t.Setenv("BREWSYNC_BREWFILE", filepath.Join(tempDir, "Brewfile"))

	p := paths.New()
	fs := filesystem.NewOS()
	bridge := NewMockBridge()

	env := &TestEnvironment{
		ConfigDir: configDir,
		StateDir:  stateDir,
		Paths:     p,
		FS:        fs,
		Bridge:    bridge,
		State:     systemstate.NewCache(bridge),
		t:         t,
	}
	env.Store = declaration.Load(fs, p.DeclarationPath())
	return env
}

// Declare seeds the store with group assignments and packages, saving the
// result, and maps the given machine to the listed groups.
func (env *TestEnvironment) Declare(machine string, groups ...string) {
	env.t.Helper()
	require.NoError(env.t, env.Store.SetMachineGroups(machine, groups))
}

// ReloadStore re-reads the declaration file from disk, verifying that
// mutations were persisted rather than held in memory
func (env *TestEnvironment) ReloadStore() *declaration.Store {
	env.t.Helper()
	return declaration.Load(env.FS, env.Paths.DeclarationPath())
}
