package status_test

import (
	"testing"

	"github.com/arthur-debert/brewsync/pkg/brewpkg"
	"github.com/arthur-debert/brewsync/pkg/commands/status"
	"github.com/arthur-debert/brewsync/pkg/errors"
	"github.com/arthur-debert/brewsync/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusUnconfiguredMachineFails(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	_, err := status.Status(status.Options{
		Store:   env.Store,
		State:   env.State,
		Machine: "unknown-machine",
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMachineNotReady))
	assert.Contains(t, err.Error(), "brewsync init")
}

func TestStatusReportsMissingAndExtra(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.Declare("laptop", "common")
	_, err := env.Store.AddPackage("common", brewpkg.KindFormula, "git")
	require.NoError(t, err)
	_, err = env.Store.AddPackage("common", brewpkg.KindFormula, "ripgrep")
	require.NoError(t, err)

	env.Bridge.SetInstalled(brewpkg.KindFormula, "git", "wget")

	result, err := status.Status(status.Options{
		Store:   env.Store,
		State:   env.State,
		Machine: "laptop",
	})
	require.NoError(t, err)

	assert.Equal(t, "laptop", result.Machine)
	assert.Equal(t, []string{"common"}, result.Groups)

	require.Len(t, result.Diff.Missing, 1)
	assert.Equal(t, "ripgrep", result.Diff.Missing[0].Name)
	require.Len(t, result.Diff.Extra, 1)
	assert.Equal(t, "wget", result.Diff.Extra[0].Name)

	require.Len(t, result.Inventory, 2)
	assert.Equal(t, brewpkg.StatusInstalled, result.Inventory[0].Status)
	assert.Equal(t, "git", result.Inventory[0].Name)
	assert.Equal(t, brewpkg.StatusMissing, result.Inventory[1].Status)
}

func TestStatusIsReadOnly(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.Declare("laptop", "common")
	env.Bridge.SetInstalled(brewpkg.KindFormula, "wget")

	_, err := status.Status(status.Options{
		Store:   env.Store,
		State:   env.State,
		Machine: "laptop",
	})
	require.NoError(t, err)

	assert.Zero(t, env.Bridge.MutationCalls())
	reloaded := env.ReloadStore()
	_, _, found := reloaded.FindPackage("wget")
	assert.False(t, found, "status must not adopt extras")
}
