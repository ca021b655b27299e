package cli

import (
	"github.com/spf13/cobra"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Alert delivery checks",
}

var notifyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Force one synthetic alert through the delivery path",
	Long: `Test sends a fixed "Nexus Alpha Test" alert, bypassing dedup and the
score threshold, so Telegram credentials can be verified end to end.`,
	RunE: runNotifyTest,
}

func runNotifyTest(cmd *cobra.Command, args []string) error {
	application, err := newApp(cmd.Context())
	if err != nil {
		return err
	}
	defer application.Close()

	return application.NotifyTest(cmd.Context())
}

func init() {
	notifyCmd.AddCommand(notifyTestCmd)
}
