package remove_test

import (
	"testing"

	"github.com/arthur-debert/brewsync/pkg/brewpkg"
	"github.com/arthur-debert/brewsync/pkg/commands/remove"
	"github.com/arthur-debert/brewsync/pkg/errors"
	"github.com/arthur-debert/brewsync/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, env *testutil.TestEnvironment, name string, approve bool) (*remove.Result, error) {
	t.Helper()
	return remove.Remove(remove.Options{
		Store:        env.Store,
		State:        env.State,
		Bridge:       env.Bridge,
		FS:           env.FS,
		Confirmer:    &testutil.StubConfirmer{Approve: approve},
		Machine:      "laptop",
		BrewfilePath: env.Paths.BrewfilePath(),
		Name:         name,
	})
}

func TestRemoveUninstallsAndUndeclares(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.Declare("laptop", "base")
	_, err := env.Store.AddPackage("base", brewpkg.KindFormula, "git")
	require.NoError(t, err)
	env.Bridge.SetInstalled(brewpkg.KindFormula, "git")

	result, err := run(t, env, "git", true)
	require.NoError(t, err)

	assert.Equal(t, brewpkg.KindFormula, result.Kind)
	assert.Equal(t, "base", result.Group)
	assert.False(t, env.Bridge.IsInstalled(brewpkg.KindFormula, "git"))

	reloaded := env.ReloadStore()
	_, _, found := reloaded.FindPackage("git")
	assert.False(t, found)
}

func TestRemoveUndeclaredPackageFails(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.Declare("laptop", "base")

	_, err := run(t, env, "git", true)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPackageNotFound))
	assert.Zero(t, env.Bridge.MutationCalls())
}

func TestRemoveUninstallFirstOrdering(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.Declare("laptop", "base")
	_, err := env.Store.AddPackage("base", brewpkg.KindFormula, "git")
	require.NoError(t, err)
	env.Bridge.UninstallErr = errors.New(errors.ErrBridgeExec, "uninstall failed")

	_, err = run(t, env, "git", true)
	require.Error(t, err)

	reloaded := env.ReloadStore()
	_, _, found := reloaded.FindPackage("git")
	assert.True(t, found, "failed uninstall leaves the declaration untouched")
}

func TestRemoveDeclinedChangesNothing(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.Declare("laptop", "base")
	_, err := env.Store.AddPackage("base", brewpkg.KindFormula, "git")
	require.NoError(t, err)
	env.Bridge.SetInstalled(brewpkg.KindFormula, "git")

	result, err := run(t, env, "git", false)
	require.NoError(t, err)

	assert.True(t, result.Declined)
	assert.True(t, env.Bridge.IsInstalled(brewpkg.KindFormula, "git"))
	reloaded := env.ReloadStore()
	_, _, found := reloaded.FindPackage("git")
	assert.True(t, found)
}

func TestRemoveMASByBareName(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.Declare("laptop", "base")
	_, err := env.Store.AddPackage("base", brewpkg.KindMAS, "Xcode::497799835")
	require.NoError(t, err)
	env.Bridge.SetInstalled(brewpkg.KindMAS, "Xcode")

	result, err := run(t, env, "Xcode", true)
	require.NoError(t, err)

	assert.Equal(t, brewpkg.KindMAS, result.Kind)
	assert.False(t, env.Bridge.IsInstalled(brewpkg.KindMAS, "Xcode"))
	reloaded := env.ReloadStore()
	_, _, found := reloaded.FindPackage("Xcode")
	assert.False(t, found)
}

func TestRemovePackageDeclaredInMultipleGroups(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.Declare("laptop", "base", "extra")
	_, err := env.Store.AddPackage("base", brewpkg.KindFormula, "git")
	require.NoError(t, err)
	_, err = env.Store.AddPackage("extra", brewpkg.KindFormula, "git")
	require.NoError(t, err)
	env.Bridge.SetInstalled(brewpkg.KindFormula, "git")

	_, err = run(t, env, "git", true)
	require.NoError(t, err)

	assert.False(t, env.Bridge.IsInstalled(brewpkg.KindFormula, "git"))
	reloaded := env.ReloadStore()
	_, _, found := reloaded.FindPackage("git")
	assert.False(t, found, "no group may still declare the removed package")
}

func TestAddRemoveRoundTrip(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.Declare("laptop", "base")
	_, err := env.Store.AddPackage("base", brewpkg.KindFormula, "git")
	require.NoError(t, err)
	before := env.ReloadStore().AvailableGroups()

	_, err = env.Store.AddPackage("base", brewpkg.KindFormula, "jq")
	require.NoError(t, err)
	_, err = run(t, env, "jq", true)
	require.NoError(t, err)

	reloaded := env.ReloadStore()
	assert.Equal(t, before, reloaded.AvailableGroups())
	_, _, foundGit := reloaded.FindPackage("git")
	assert.True(t, foundGit)
	_, _, foundJq := reloaded.FindPackage("jq")
	assert.False(t, foundJq)
}
