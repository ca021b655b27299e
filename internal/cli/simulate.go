package cli

import (
	"github.com/spf13/cobra"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Replay the built-in mock batch through the pipeline",
	Long: `Simulate feeds two canned Monad sightings through scoring, dedup, and
alert formatting without touching the network. The duplicate second entry
shows the dedup suppression path. Combine with --preview-only to keep the
alert off Telegram.`,
	RunE: runSimulate,
}

func runSimulate(cmd *cobra.Command, args []string) error {
	application, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer application.Close()

	return application.Simulate(cmd.Context())
}
