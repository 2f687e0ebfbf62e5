package generate_test

import (
	"testing"

	"github.com/arthur-debert/brewsync/pkg/brewpkg"
	"github.com/arthur-debert/brewsync/pkg/commands/generate"
	"github.com/arthur-debert/brewsync/pkg/errors"
	"github.com/arthur-debert/brewsync/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWritesDeclaredSet(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.Declare("laptop", "base")
	_, err := env.Store.AddPackage("base", brewpkg.KindTap, "homebrew/cask")
	require.NoError(t, err)
	_, err = env.Store.AddPackage("base", brewpkg.KindFormula, "git")
	require.NoError(t, err)
	_, err = env.Store.AddPackage("base", brewpkg.KindMAS, "Xcode::497799835")
	require.NoError(t, err)

	result, err := generate.Generate(generate.Options{
		Store:        env.Store,
		FS:           env.FS,
		Machine:      "laptop",
		BrewfilePath: env.Paths.BrewfilePath(),
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Packages)

	data, err := env.FS.ReadFile(env.Paths.BrewfilePath())
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, `tap "homebrew/cask"`)
	assert.Contains(t, content, `brew "git"`)
	assert.Contains(t, content, `mas "Xcode", id: 497799835`)
}

func TestGenerateUnconfiguredMachine(t *testing.T) {
	env := testutil.NewTestEnvironment(t)

	_, err := generate.Generate(generate.Options{
		Store:        env.Store,
		FS:           env.FS,
		Machine:      "stranger",
		BrewfilePath: env.Paths.BrewfilePath(),
	})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrMachineNotReady))
}

func TestGenerateOverwritesStaleManifest(t *testing.T) {
	env := testutil.NewTestEnvironment(t)
	env.Declare("laptop", "base")
	_, err := env.Store.AddPackage("base", brewpkg.KindFormula, "git")
	require.NoError(t, err)
	require.NoError(t, env.FS.WriteFile(env.Paths.BrewfilePath(), []byte(`brew "stale"`), 0644))

	_, err = generate.Generate(generate.Options{
		Store:        env.Store,
		FS:           env.FS,
		Machine:      "laptop",
		BrewfilePath: env.Paths.BrewfilePath(),
	})
	require.NoError(t, err)

	data, err := env.FS.ReadFile(env.Paths.BrewfilePath())
	require.NoError(t, err)
	assert.NotContains(t, string(data), "stale")
}
