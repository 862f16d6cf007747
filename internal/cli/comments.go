package cli

import (
	"context"
	"strings"

	"taskdeck/internal/model"

	"github.com/spf13/cobra"
)

func newCommentsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "comments",
		Short: "Comment commands",
	}
	cmd.AddCommand(newCommentsListCmd(app))
	cmd.AddCommand(newCommentsAddCmd(app))
	return cmd
}

func newCommentsListCmd(app *App) *cobra.Command {
	var taskID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List comments for a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			comments, err := client.TaskComments(context.Background(), taskID)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": comments})
		},
	}

	cmd.Flags().StringVar(&taskID, "task", "", "Task id")
	_ = cmd.MarkFlagRequired("task")
	return cmd
}

func newCommentsAddCmd(app *App) *cobra.Command {
	var taskID string

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Append a comment to a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			in := model.CommentInput{TaskID: taskID, Content: strings.TrimSpace(args[0])}
			c, err := client.CreateComment(context.Background(), in)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": c})
		},
	}

	cmd.Flags().StringVar(&taskID, "task", "", "Task id")
	_ = cmd.MarkFlagRequired("task")
	return cmd
}
