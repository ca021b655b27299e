package cli

import (
	"context"

	"github.com/spf13/cobra"

	"alphahunter/internal/app"
	"alphahunter/internal/config"
)

var (
	flagConfig      string
	flagDB          string
	flagPreviewOnly bool
	flagLogLevel    string
)

var rootCmd = &cobra.Command{
	Use:   "alphahunter",
	Short: "Hunt early-stage crypto opportunities across public feeds",
	Long: `Alpha Hunter watches crypto feeds (Nitter mirrors, news site RSS,
DefiLlama raises, CryptoRank funding rounds), extracts project facts with
Gemini or a rule-based fallback, scores them by investor quality, and
alerts on Telegram. A SQLite database deduplicates projects across scans
and keeps the recurring airdrop chores.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig resolves configuration, then layers the global flags on top.
func loadConfig() config.Config {
	cfg := config.LoadPath(flagConfig)
	if flagDB != "" {
		cfg.Storage.Path = flagDB
	}
	if flagPreviewOnly {
		cfg.Telegram.PreviewOnly = true
	}
	if flagLogLevel != "" {
		cfg.Logging.Level = flagLogLevel
	}
	return cfg
}

func newApp(ctx context.Context) (*app.Application, error) {
	return app.New(ctx, loadConfig(), nil)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config.yaml (default: $ALPHAHUNTER_CONFIG, then ./config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "Override the SQLite database path")
	rootCmd.PersistentFlags().BoolVar(&flagPreviewOnly, "preview-only", false, "Print alerts to stdout instead of sending to Telegram")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log verbosity (debug|info|warn|error)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(scourCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(notifyCmd)
	rootCmd.AddCommand(tasksCmd)
	rootCmd.AddCommand(dashboardCmd)
}
