package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var flagWithReminders bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the scheduled scan loop until interrupted",
	Long: `Run registers the daily, mid-term, weekly, and monthly scans on their
configured intervals and blocks until SIGINT or SIGTERM. Every scan fires
once immediately on start.`,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer application.Close()

	return application.Run(ctx, flagWithReminders)
}

func init() {
	runCmd.Flags().BoolVar(&flagWithReminders, "with-reminders", false, "Also run the daily todo digest loop")
}
