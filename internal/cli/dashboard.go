package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"alphahunter/internal/app"
)

var (
	dashboardHostFlag string
	dashboardPortFlag int
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Serve the read-only web view of seen projects",
	RunE:  runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := loadConfig()
	if dashboardHostFlag != "" {
		cfg.Dashboard.Host = dashboardHostFlag
	}
	if dashboardPortFlag != 0 {
		cfg.Dashboard.Port = dashboardPortFlag
	}

	application, err := app.New(ctx, cfg, nil)
	if err != nil {
		return err
	}
	defer application.Close()

	return application.Dashboard(ctx)
}

func init() {
	dashboardCmd.Flags().StringVar(&dashboardHostFlag, "host", "", "Bind address (overrides config)")
	dashboardCmd.Flags().IntVar(&dashboardPortFlag, "port", 0, "Listen port (overrides config)")
}
