package cli

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var (
	taskProjectFlag     string
	taskDescriptionFlag string
	taskFrequencyFlag   int
	remindOnceFlag      bool
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage recurring airdrop chores",
	Long: `Recurring tasks are manual chores (swaps, predictions, transfers) that
come due every N days. The daily digest lists everything currently due.`,
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every recurring task with its due status",
	RunE:  runTasksList,
}

var tasksAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a recurring task",
	Long: `Add registers a new chore.

Examples:
  alphahunter tasks add --project MetaMask --description "Perform 1 Swap" --frequency 7
  alphahunter tasks add --project Polymarket --description "Place 1 Prediction" --frequency 1`,
	RunE: runTasksAdd,
}

var tasksDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task as completed now",
	Args:  cobra.ExactArgs(1),
	RunE:  runTasksDone,
}

var tasksRemindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Send the daily todo digest",
	Long: `Remind sends the pending-task digest to the configured channel. By
default it loops, firing at the configured reminder hour every day; --once
sends a single digest and exits.`,
	RunE: runTasksRemind,
}

func runTasksList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	application, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer application.Close()

	all, err := application.Tasks().All(ctx)
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No recurring tasks.")
		return nil
	}

	now := time.Now()
	fmt.Fprintf(cmd.OutOrStdout(), "%-4s %-14s %-28s %-8s %-12s %s\n", "ID", "PROJECT", "TASK", "EVERY", "LAST DONE", "STATUS")
	for _, task := range all {
		lastDone := "never"
		if task.LastCompleted != nil {
			lastDone = task.LastCompleted.Format("2006-01-02")
		}
		status := "ok"
		if task.PendingAt(now) {
			status = "due"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%-4d %-14s %-28s %-8s %-12s %s\n",
			task.ID, task.ProjectName, task.Description, fmt.Sprintf("%dd", task.FrequencyDays), lastDone, status)
	}
	return nil
}

func runTasksAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	application, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer application.Close()

	id, err := application.Tasks().Add(ctx, taskProjectFlag, taskDescriptionFlag, taskFrequencyFlag)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Added task %d: %s (%s, every %dd)\n", id, taskDescriptionFlag, taskProjectFlag, taskFrequencyFlag)
	return nil
}

func runTasksDone(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("task id must be a number, got %q", args[0])
	}

	ctx := cmd.Context()

	application, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer application.Close()

	if err := application.Tasks().MarkDone(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Task %d marked done.\n", id)
	return nil
}

func runTasksRemind(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer application.Close()

	return application.Remind(ctx, remindOnceFlag)
}

func init() {
	tasksAddCmd.Flags().StringVar(&taskProjectFlag, "project", "", "Project the chore belongs to")
	tasksAddCmd.Flags().StringVar(&taskDescriptionFlag, "description", "", "What to do")
	tasksAddCmd.Flags().IntVar(&taskFrequencyFlag, "frequency", 7, "Days between completions")

	tasksRemindCmd.Flags().BoolVar(&remindOnceFlag, "once", false, "Send a single digest and exit")

	tasksCmd.AddCommand(tasksListCmd)
	tasksCmd.AddCommand(tasksAddCmd)
	tasksCmd.AddCommand(tasksDoneCmd)
	tasksCmd.AddCommand(tasksRemindCmd)
}
