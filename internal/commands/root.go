package commands

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mjs243/money-manager/internal/buildinfo"
	"github.com/mjs243/money-manager/internal/config"
	"github.com/mjs243/money-manager/internal/logger"
	"github.com/mjs243/money-manager/internal/store"
)

// env carries the shared runtime pieces every subcommand needs.
type env struct {
	dataRoot string
	log      zerolog.Logger
}

// configPath returns the moneyman.yaml location under the data root.
func (e *env) configPath() string {
	return filepath.Join(e.dataRoot, "moneyman.yaml")
}

// loadConfig reads moneyman.yaml, falling back to defaults when missing.
func (e *env) loadConfig() *config.Config {
	cfg, err := config.Load(e.configPath())
	if err != nil {
		e.log.Debug().Err(err).Msg("config not found, using defaults")
		return config.Default()
	}
	return cfg
}

// openStore opens the state database under the data root.
func (e *env) openStore() (*store.Store, error) {
	return store.Open(filepath.Join(e.dataRoot, "state.db"))
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	e := &env{}
	var verbose bool

	rootCmd := &cobra.Command{
		Use:     "moneyman",
		Short:   "Personal finance decision engine",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			e.log = logger.New(verbose)
		},
	}

	rootCmd.PersistentFlags().StringVar(&e.dataRoot, "data", ".", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(newInitCommand(e))
	rootCmd.AddCommand(newImportCommand(e))
	rootCmd.AddCommand(newSubscriptionsCommand(e))
	rootCmd.AddCommand(newDebtCommand(e))
	rootCmd.AddCommand(newWantsCommand(e))
	rootCmd.AddCommand(newRestockCommand(e))
	rootCmd.AddCommand(newReportCommand(e))

	return rootCmd
}
