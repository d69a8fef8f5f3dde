package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCmd_HasExpectedFlags(t *testing.T) {
	flags := rootCmd.Flags()

	for _, name := range []string{
		"pattern", "output", "preview", "verbose", "stats", "config-mode",
		"set-config", "remove-config", "list-configs",
	} {
		require.NotNil(t, flags.Lookup(name), name)
	}

	persistent := rootCmd.PersistentFlags()
	require.NotNil(t, persistent.Lookup("config-file"))
	require.NotNil(t, persistent.Lookup("format"))
	require.NotNil(t, persistent.Lookup("log-level"))
}

func TestRootCmd_Shorthands(t *testing.T) {
	flags := rootCmd.Flags()
	tests := map[string]string{
		"p": "pattern",
		"o": "output",
		"n": "preview",
		"v": "verbose",
		"s": "stats",
		"c": "config-mode",
	}
	for short, long := range tests {
		f := flags.ShorthandLookup(short)
		require.NotNil(t, f, short)
		require.Equal(t, long, f.Name)
	}
}

func TestRootCmd_Defaults(t *testing.T) {
	require.Equal(t, "*.pdf", rootCmd.Flags().Lookup("pattern").DefValue)
	require.Equal(t, "{directory}_{date}.pdf", rootCmd.Flags().Lookup("output").DefValue)
	require.Equal(t, "warn", rootCmd.PersistentFlags().Lookup("log-level").DefValue)
}

func TestRootCmd_HasVersionSubcommand(t *testing.T) {
	found := false
	for _, sub := range rootCmd.Commands() {
		if sub.Name() == "version" {
			found = true
			break
		}
	}
	require.True(t, found, "version subcommand should be registered")
}
