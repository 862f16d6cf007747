package cli

import (
	"github.com/spf13/cobra"

	"taskdeck/internal/session"
)

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change persisted preferences",
	}
	cmd.AddCommand(newConfigShowCmd(app))
	cmd.AddCommand(newConfigSetCmd(app))
	return cmd
}

func newConfigShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the persisted configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := session.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			path, err := session.ConfigPath()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"path":      path,
				"serverUrl": cfg.ServerURL,
				"exportDir": cfg.ExportDir,
			}})
		},
	}
}

func newConfigSetCmd(app *App) *cobra.Command {
	var serverURL string
	var exportDir string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Persist preferences (unset flags keep current values)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := session.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			if cmd.Flags().Changed("server") {
				cfg.ServerURL = serverURL
			}
			if cmd.Flags().Changed("export-dir") {
				cfg.ExportDir = exportDir
			}
			if err := session.SaveConfig(cfg); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{
				"serverUrl": cfg.ServerURL,
				"exportDir": cfg.ExportDir,
			}})
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "", "API base URL (empty clears, falling back to the default)")
	cmd.Flags().StringVar(&exportDir, "export-dir", "", "Directory for export files (empty clears)")
	return cmd
}
