package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
	m "testgrade.dev/pkg/testgrade/internal/model"
)

func TestParsePaths(t *testing.T) {
	require.Equal(t, []m.Path{"a", "b/c"}, parsePaths([]string{"a", "b/c"}))
	require.Empty(t, parsePaths(nil))
}

func TestSubcommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, sub := range rootCmd.Commands() {
		names[sub.Name()] = true
	}

	for _, want := range []string{"assess", "tdd", "view", "init", "version"} {
		require.True(t, names[want], "missing subcommand %s", want)
	}
}

func TestRootFlags(t *testing.T) {
	require.NotNil(t, rootCmd.PersistentFlags().Lookup(outputFlagName))
	require.NotNil(t, rootCmd.PersistentFlags().Lookup(verboseFlagName))
	require.NotNil(t, assessCmd.Flags().Lookup(parallelFlagName))
	require.NotNil(t, tddCmd.Flags().Lookup(alignmentFlagName))
}
