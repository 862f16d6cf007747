package cli

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"taskdeck/internal/export"
	"taskdeck/internal/session"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write task and report exports to disk",
	}
	cmd.PersistentFlags().StringVar(&app.OutDir, "out", "", "Output directory (default from config.json, else the working directory)")
	cmd.AddCommand(newExportTasksCmd(app))
	cmd.AddCommand(newExportReportCSVCmd(app))
	cmd.AddCommand(newExportReportPDFCmd(app))
	return cmd
}

func newExportTasksCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "Export the current task list as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tasks, err := client.Tasks(context.Background())
			if err != nil {
				return writeErr(cmd, err)
			}
			path, err := writeExport(app, export.TasksFileName(time.Now()), []byte(export.TasksCSV(tasks)))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"file": path, "tasks": len(tasks)}})
		},
	}
}

func newExportReportCSVCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "report-csv",
		Short: "Export the statistics report as CSV",
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
			csv, err := export.ReportCSV(st)
			if err != nil {
				return writeErr(cmd, err)
			}
			path, err := writeExport(app, export.ReportCSVFileName(time.Now()), []byte(csv))
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"file": path}})
		},
	}
}

func newExportReportPDFCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "report-pdf",
		Short: "Export the statistics report as PDF",
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
			now := time.Now()
			pdf, err := export.ReportPDF(st, now)
			if err != nil {
				return writeErr(cmd, err)
			}
			path, err := writeExport(app, export.ReportPDFFileName(now), pdf)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"file": path}})
		},
	}
}

func writeExport(app *App, name string, b []byte) (string, error) {
	dir := app.OutDir
	if dir == "" {
		cfg, err := session.LoadConfig()
		if err != nil {
			return "", err
		}
		dir = cfg.ExportDir
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
