package cli

import (
	"context"
	"fmt"
	"os"

	"taskdeck/internal/api"
	"taskdeck/internal/format"
	"taskdeck/internal/session"
	"taskdeck/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	Server     string
	PrettyJSON bool
	OutDir     string
	DebugLog   string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "taskdeck",
		Short:        "Terminal client for the task-management API",
		SilenceUsage: true,
		Example: `  # Start the interactive TUI
  taskdeck

  # Scriptable commands
  taskdeck login admin
  taskdeck tasks list
  taskdeck tasks search --priority High
  taskdeck export report-pdf`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Server, "server", envOr("TASKDECK_SERVER", ""), "API base URL (default from config.json, else "+session.DefaultServerURL+")")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON output")
	cmd.PersistentFlags().StringVar(&app.DebugLog, "debug-log", envOr("TASKDECK_DEBUG_LOG", ""), "Append TUI debug output to this file")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newProjectsCmd(app))
	cmd.AddCommand(newCommentsCmd(app))
	cmd.AddCommand(newNotificationsCmd(app))
	cmd.AddCommand(newHistoryCmd(app))
	cmd.AddCommand(newStatsCmd(app))
	cmd.AddCommand(newReportCmd(app))
	cmd.AddCommand(newUsersCmd(app))
	cmd.AddCommand(newExportCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func runTUI(app *App) error {
	store, client, err := connect(app)
	if err != nil {
		return err
	}
	return tui.Run(tui.Deps{
		Client:   client,
		Session:  store,
		DebugLog: app.DebugLog,
	})
}

// connect builds the session store and an API client whose unauthorized hook
// tears the session down. Token restore is best-effort: an unreadable session
// db just means starting unauthenticated.
func connect(app *App) (*session.Store, *api.Client, error) {
	store, err := session.Open("")
	if err != nil {
		return nil, nil, err
	}
	_, _, _ = store.Restore(context.Background())

	server, err := resolveServer(app)
	if err != nil {
		return nil, nil, err
	}
	client := api.New(server, store, func() {
		_ = store.Logout(context.Background())
	})
	return store, client, nil
}

func resolveServer(app *App) (string, error) {
	if app.Server != "" {
		return app.Server, nil
	}
	cfg, err := session.LoadConfig()
	if err != nil {
		return "", err
	}
	if cfg.ServerURL != "" {
		return cfg.ServerURL, nil
	}
	return session.DefaultServerURL, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
