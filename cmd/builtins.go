package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coalfish/gosh/core/shell"
)

// builtinsCmd shows the commands implemented inside the shell itself.
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the shell's builtin commands.",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range shell.Names() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
