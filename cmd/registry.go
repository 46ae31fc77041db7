package cmd

import "github.com/spf13/cobra"

func RegisterCommands(root *cobra.Command) {
	root.AddCommand(versionCmd)

	root.AddCommand(getCmd)
	root.AddCommand(setCmd)
	root.AddCommand(testCmd)
	root.AddCommand(configCmd)

	configCmd.AddCommand(
		configShowCmd,
		configInitCmd,
	)
}
