package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregate task statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			st, err := client.Stats(context.Background())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": st})
		},
	}
}

func newReportCmd(app *App) *cobra.Command {
	var reportType string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate a server-side report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch reportType {
			case "tasks", "projects", "users":
			default:
				return writeErr(cmd, fmt.Errorf("unknown report type %q (want tasks, projects or users)", reportType))
			}
			_, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			r, err := client.GenerateReport(context.Background(), reportType)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": r})
		},
	}

	cmd.Flags().StringVar(&reportType, "type", "tasks", "Report type: tasks, projects or users")
	return cmd
}

func newUsersCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			users, err := client.Users(context.Background())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": users})
		},
	}
}
