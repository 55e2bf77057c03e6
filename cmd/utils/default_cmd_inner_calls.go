package utils

import "github.com/spf13/cobra"

// DefaultPersistentPreRun runs the parent's PersistentPreRun, which cobra skips once a subcommand defines its own.
// The root command parses the global options there.
var DefaultPersistentPreRun = func(cmd *cobra.Command, args []string) {
	if parent := cmd.Parent(); parent != nil && parent.PersistentPreRun != nil {
		parent.PersistentPreRun(parent, args)
	}
}
