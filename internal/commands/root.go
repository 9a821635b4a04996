package commands

import (
	"github.com/pocket-ledger/backend/internal/config"
	"github.com/pocket-ledger/backend/internal/router"
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
// Without a subcommand, the API is served.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "pocket-ledger",
		Short:   "Personal finance backend with payment reminders",
		Version: router.Version(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return serve(cmd, configPath)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML configuration file")

	rootCmd.AddCommand(newServeCommand(&configPath))
	rootCmd.AddCommand(newMigrateCommand(&configPath))
	rootCmd.AddCommand(newVersionCommand())

	return rootCmd
}

// loadConfig reads the configuration and sets up logging with it.
func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}

	if err := cfg.ValidateLogging(); err != nil {
		return config.Config{}, err
	}

	setupLogging(cfg)
	return cfg, nil
}
