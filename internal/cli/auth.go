package cli

import (
	"bufio"
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "login <username>",
		Short: "Authenticate and persist the session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}

			if password == "" {
				cmd.Print("Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil {
					return writeErr(cmd, err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				return writeErr(cmd, errors.New("password is empty"))
			}

			ctx := context.Background()
			res, err := client.Login(ctx, args[0], password)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := store.Login(ctx, res.AccessToken, res.User); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": res.User})
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "Password (prompted when omitted)")
	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, _, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := store.Logout(context.Background()); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": "logged out"})
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the authenticated user (validated against the server)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			u, err := client.Me(context.Background())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": u})
		},
	}
}
