package cmd

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/coalfish/gosh/core/config"
	"github.com/coalfish/gosh/core/shell"
)

var cfgPath string

func loadConfig() (*config.Configuration, error) {
	return config.Load(afero.NewOsFs(), cfgPath)
}

// rootCmd starts an interactive session when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "gosh",
	Short: "A small interactive shell",
	Long: `gosh is an interactive command shell with quoting-aware parsing,
output redirection, and tab completion over commands and paths.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		configuration, err := loadConfig()
		if err != nil {
			return err
		}

		return shell.New(configuration, afero.NewOsFs()).Run()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
}
