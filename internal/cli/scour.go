package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var scourCmd = &cobra.Command{
	Use:   "scour",
	Short: "Run the aggressive immediate-opportunity loop",
	Long: `Scour polls the daily feed set on a tight interval and only lets
high-priority or immediate candidates through to alerting. Everything else
is discarded without being recorded.`,
	RunE: runScour,
}

func runScour(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer application.Close()

	return application.Scour(ctx)
}
