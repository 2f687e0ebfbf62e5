package synccleanup_test

import (
	"testing"

	"github.com/arthur-debert/brewsync/pkg/brewpkg"
	"github.com/arthur-debert/brewsync/pkg/commands/synccleanup"
	"github.com/arthur-debert/brewsync/pkg/errors"
	"github.com/arthur-debert/brewsync/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, env *testutil.TestEnvironment, machine string, confirmer *testutil.StubConfirmer) (*synccleanup.Result, error) {
	t.Helper()
	return synccleanup.SyncCleanup(synccleanup.Options{
		Store:        env.Store,
		State:        env.State,
		Bridge:       env.Bridge,
		FS:           env.FS,
		Confirmer:    confirmer,
		Machine:      machine,
		BrewfilePath: env.Paths.BrewfilePath(),
	})
}

func TestSyncCleanupRemovesUndeclared(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.Declare("laptop", "base")
	_, err := env.Store.AddPackage("base", brewpkg.KindFormula, "git")
	require.NoError(t, err)
	env.Bridge.SetInstalled(brewpkg.KindFormula, "git", "htop")

	result, err := run(t, env, "laptop", &testutil.StubConfirmer{Approve: true})
	require.NoError(t, err)

	require.Len(t, result.Removed, 1)
	assert.Equal(t, "htop", result.Removed[0].Name)
	assert.False(t, env.Bridge.IsInstalled(brewpkg.KindFormula, "htop"))
	assert.True(t, env.Bridge.IsInstalled(brewpkg.KindFormula, "git"))
}

func TestSyncCleanupManifestFromDeclaredOnly(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.Declare("laptop", "base")
	_, err := env.Store.AddPackage("base", brewpkg.KindFormula, "git")
	require.NoError(t, err)
	env.Bridge.SetInstalled(brewpkg.KindFormula, "git", "htop")

	_, err = run(t, env, "laptop", &testutil.StubConfirmer{Approve: true})
	require.NoError(t, err)

	require.Len(t, env.Bridge.CleanupCalls, 1)
	call := env.Bridge.CleanupCalls[0]
	assert.True(t, call.Force)
	assert.Contains(t, call.Contents, `brew "git"`)
	assert.NotContains(t, call.Contents, "htop",
		"cleanup manifest carries declared packages only")
}

func TestSyncCleanupInstallsMissingToo(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.Declare("laptop", "base")
	_, err := env.Store.AddPackage("base", brewpkg.KindFormula, "git")
	require.NoError(t, err)
	env.Bridge.SetInstalled(brewpkg.KindFormula, "htop")

	result, err := run(t, env, "laptop", &testutil.StubConfirmer{Approve: true})
	require.NoError(t, err)

	require.Len(t, result.Installed, 1)
	assert.Equal(t, "git", result.Installed[0].Name)
	assert.True(t, env.Bridge.IsInstalled(brewpkg.KindFormula, "git"))
	assert.False(t, env.Bridge.IsInstalled(brewpkg.KindFormula, "htop"))
}

func TestSyncCleanupWarnsAndListsRemovals(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.Declare("laptop", "base")
	env.Bridge.SetInstalled(brewpkg.KindFormula, "htop")

	confirmer := &testutil.StubConfirmer{Approve: true}
	_, err := run(t, env, "laptop", confirmer)
	require.NoError(t, err)

	require.Len(t, confirmer.Asked, 1)
	asked := confirmer.Asked[0]
	assert.Contains(t, asked.Items, "brew htop")
	assert.Contains(t, asked.Warning, "UNINSTALLED")
	assert.False(t, asked.Default, "destructive prompt must default to no")
}

func TestSyncCleanupDeclinedChangesNothing(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.Declare("laptop", "base")
	env.Bridge.SetInstalled(brewpkg.KindFormula, "htop")

	result, err := run(t, env, "laptop", &testutil.StubConfirmer{Approve: false})
	require.NoError(t, err)

	assert.True(t, result.Declined)
	assert.True(t, env.Bridge.IsInstalled(brewpkg.KindFormula, "htop"))
	assert.Empty(t, env.Bridge.CleanupCalls)
}

func TestSyncCleanupInSyncSkipsConfirmation(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.Declare("laptop", "base")
	_, err := env.Store.AddPackage("base", brewpkg.KindFormula, "git")
	require.NoError(t, err)
	env.Bridge.SetInstalled(brewpkg.KindFormula, "git")

	confirmer := &testutil.StubConfirmer{Approve: true}
	result, err := run(t, env, "laptop", confirmer)
	require.NoError(t, err)

	assert.Empty(t, result.Removed)
	assert.Empty(t, confirmer.Asked)
	assert.Empty(t, env.Bridge.CleanupCalls)
}

func TestSyncCleanupConvergesToDeclared(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.Declare("laptop", "base")
	_, err := env.Store.AddPackage("base", brewpkg.KindFormula, "git")
	require.NoError(t, err)
	env.Bridge.SetInstalled(brewpkg.KindFormula, "htop")

	_, err = run(t, env, "laptop", &testutil.StubConfirmer{Approve: true})
	require.NoError(t, err)

	second, err := run(t, env, "laptop", &testutil.StubConfirmer{Approve: true})
	require.NoError(t, err)
	assert.Empty(t, second.Installed)
	assert.Empty(t, second.Removed)
}

func TestSyncCleanupUnconfiguredMachine(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	_, err := run(t, env, "stranger", &testutil.StubConfirmer{Approve: true})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMachineNotReady))
}
