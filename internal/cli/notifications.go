package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func newNotificationsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notifications",
		Short: "Notification commands",
	}
	cmd.AddCommand(newNotificationsListCmd(app))
	cmd.AddCommand(newNotificationsReadCmd(app))
	cmd.AddCommand(newNotificationsReadAllCmd(app))
	return cmd
}

func newNotificationsListCmd(app *App) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notifications (unread only by default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ns, err := client.Notifications(context.Background(), !all)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": ns})
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include notifications already read")
	return cmd
}

func newNotificationsReadCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "read <notification-id>",
		Short: "Mark one notification read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := context.Background()
			if err := client.MarkNotificationRead(ctx, args[0]); err != nil {
				return writeErr(cmd, err)
			}
			// Reload-after-mutate: print the fresh unread list.
			ns, err := client.Notifications(ctx, true)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": ns})
		},
	}
}

func newNotificationsReadAllCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark every notification read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := context.Background()
			if err := client.MarkAllNotificationsRead(ctx); err != nil {
				return writeErr(cmd, err)
			}
			ns, err := client.Notifications(ctx, true)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": ns})
		},
	}
}
