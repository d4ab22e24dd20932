// Root command for the bookmon CLI.
package main

import (
	"github.com/spf13/cobra"

	"github.com/benedicteb/bookmon/internal/log"
	"github.com/benedicteb/bookmon/internal/paths"
)

// Global flag values.
var (
	flagConfigDir string
	flagStorage   string
	flagVerbose   bool
)

// configStoragePath holds the storage_path value loaded from config.yaml.
// Set by PersistentPreRunE so all subcommands can use it.
var configStoragePath string

var rootCmd = &cobra.Command{
	Use:           "bookmon",
	Short:         "bookmon tracks your book catalog and reading progress",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagVerbose {
			log.SetVerbose()
		}

		configDir, err := resolveConfigDir()
		if err != nil {
			return err
		}

		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		configStoragePath = cfg.GetString(cfgKeyStoragePath)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagStorage, "storage", "", "storage file (default: platform data dir/storage.json)")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(authorCmd)
	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(finishCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(buyCmd)
	rootCmd.AddCommand(wantCmd)
	rootCmd.AddCommand(unmarkCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(goalCmd)
	rootCmd.AddCommand(exportCmd)
}

// resolveConfigDir follows the precedence chain:
// --config-dir flag > BOOKMON_CONFIG_DIR env > platform default.
func resolveConfigDir() (string, error) {
	return paths.ResolveConfigDir(flagConfigDir)
}

// resolveStoragePath follows the precedence chain:
// --storage flag > config.yaml storage_path > BOOKMON_DATA_DIR env > platform default.
func resolveStoragePath() (string, error) {
	return paths.ResolveStoragePath(flagStorage, configStoragePath)
}
