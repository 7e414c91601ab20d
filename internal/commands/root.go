package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/awesomegic/bank/internal/buildinfo"
	"github.com/awesomegic/bank/internal/config"
	"github.com/awesomegic/bank/internal/ledger"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
// Without a subcommand it runs the interactive menu.
func NewRootCommand() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:     "awesomegic",
		Short:   "Bank ledger with monthly interest statements",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(resolveConfigPath(configPath))
			if err != nil {
				return err
			}

			logger, err := newLogger(cfg.Log, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			l := ledger.New(
				ledger.WithLogger(logger),
				ledger.WithDayCount(cfg.Interest.DayCount),
			)
			m := newMenu(l, cfg, logger, cmd.InOrStdin(), cmd.OutOrStdout())
			return m.run()
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		fmt.Sprintf("config file (default $%s or ./%s)", config.EnvPath, config.FileName))
	rootCmd.AddCommand(newConfigCommand(&configPath))

	return rootCmd
}

// resolveConfigPath picks the flag, then the environment, then the default.
func resolveConfigPath(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv(config.EnvPath); env != "" {
		return env
	}
	return config.FileName
}
