package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRootCmdRegistersCommands(t *testing.T) {
	root := NewRootCmd()

	expected := []string{"status", "sync", "add", "remove", "init", "generate", "edit"}
	names := map[string]bool{}
	for _, cmd := range root.Commands() {
		names[cmd.Name()] = true
	}
	for _, name := range expected {
		assert.True(t, names[name], "command %s is registered", name)
	}
}

func TestRootCmdSilencesCobraNoise(t *testing.T) {
	root := NewRootCmd()
	assert.True(t, root.SilenceUsage)
	assert.True(t, root.SilenceErrors)
}

func TestRootCmdPersistentFlags(t *testing.T) {
	root := NewRootCmd()
	require.NotNil(t, root.PersistentFlags().Lookup("verbose"))
	require.NotNil(t, root.PersistentFlags().Lookup("machine"))
}

func TestSyncCmdFlags(t *testing.T) {
	root := NewRootCmd()
	sync, _, err := root.Find([]string{"sync"})
	require.NoError(t, err)
	assert.NotNil(t, sync.Flags().Lookup("cleanup"))
	assert.NotNil(t, sync.Flags().Lookup("yes"))
}

func TestJoinGroups(t *testing.T) {
	assert.Equal(t, "(no groups)", joinGroups(nil))
	assert.Equal(t, "base", joinGroups([]string{"base"}))
	assert.Equal(t, "base, dev", joinGroups([]string{"base", "dev"}))
}

func TestAddCmdRequiresExactlyOneArg(t *testing.T) {
	root := NewRootCmd()
	addCmd, _, err := root.Find([]string{"add"})
	require.NoError(t, err)
	assert.Error(t, addCmd.Args(addCmd, []string{}))
	assert.NoError(t, addCmd.Args(addCmd, []string{"git"}))
	assert.Error(t, addCmd.Args(addCmd, []string{"git", "jq"}))
}
