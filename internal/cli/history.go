package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var taskID string
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the audit history (all tasks, or one with --task)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := context.Background()
			if taskID != "" {
				entries, err := client.TaskHistory(ctx, taskID)
				if err != nil {
					return writeErr(cmd, err)
				}
				return writeOut(cmd, app, map[string]any{"data": entries})
			}
			entries, err := client.History(ctx, limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": entries})
		},
	}

	cmd.Flags().StringVar(&taskID, "task", "", "Limit to one task")
	cmd.Flags().IntVar(&limit, "limit", 100, "Max entries when listing the full history")
	return cmd
}
