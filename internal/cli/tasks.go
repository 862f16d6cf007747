package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"taskdeck/internal/model"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands",
	}
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksGetCmd(app))
	cmd.AddCommand(newTasksCreateCmd(app))
	cmd.AddCommand(newTasksUpdateCmd(app))
	cmd.AddCommand(newTasksDeleteCmd(app))
	cmd.AddCommand(newTasksSearchCmd(app))
	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all tasks",
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
			return writeOut(cmd, app, map[string]any{"data": tasks})
		},
	}
}

func newTasksGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get <task-id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := client.Task(context.Background(), args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
}

type taskFlags struct {
	title       string
	description string
	status      string
	priority    string
	project     string
	assignee    string
	due         string
	hours       string
}

func (f *taskFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Task title")
	cmd.Flags().StringVar(&f.description, "description", "", "Task description")
	cmd.Flags().StringVar(&f.status, "status", "", "Status (Pending | In Progress | Completed)")
	cmd.Flags().StringVar(&f.priority, "priority", "", "Priority (Low | Medium | High | Critical)")
	cmd.Flags().StringVar(&f.project, "project", "", "Project id (empty clears)")
	cmd.Flags().StringVar(&f.assignee, "assignee", "", "Assignee user id (empty clears)")
	cmd.Flags().StringVar(&f.due, "due", "", "Due date, YYYY-MM-DD (empty clears)")
	cmd.Flags().StringVar(&f.hours, "hours", "", "Estimated hours (empty clears)")
}

// input maps flag strings to the wire payload: empty references become absent
// fields, the date-only due flag expands to a full timestamp, hours parse to a
// decimal.
func (f *taskFlags) input() (model.TaskInput, error) {
	in := model.TaskInput{
		Title:       strings.TrimSpace(f.title),
		Description: f.description,
		Status:      model.Status(f.status),
		Priority:    model.Priority(f.priority),
		ProjectID:   model.OptionalRef(f.project),
		AssignedTo:  model.OptionalRef(f.assignee),
	}
	if in.Title == "" {
		return in, errors.New("title is required")
	}
	if in.Status == "" {
		in.Status = model.StatusPending
	}
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}
	due, err := model.ParseDueDate(f.due)
	if err != nil {
		return in, err
	}
	in.DueDate = due
	hours, err := model.ParseHours(f.hours)
	if err != nil {
		return in, err
	}
	in.EstimatedHours = hours
	return in, nil
}

func newTasksCreateCmd(app *App) *cobra.Command {
	var flags taskFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			in, err := flags.input()
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := client.CreateTask(context.Background(), in)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}

	flags.register(cmd)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newTasksUpdateCmd(app *App) *cobra.Command {
	var flags taskFlags

	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update a task (unset flags keep the current values)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			ctx := context.Background()

			// Fetch-then-merge: the server expects a full payload, so start
			// from the current task and overlay only the flags that were set.
			cur, err := client.Task(ctx, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			merged := taskFlags{
				title:       cur.Title,
				description: cur.Description,
				status:      string(cur.Status),
				priority:    string(cur.Priority),
				project:     deref(cur.ProjectID),
				assignee:    deref(cur.AssignedTo),
				due:         model.DateOnly(cur.DueDate),
				hours:       model.HoursString(cur.EstimatedHours),
			}
			overlay := map[string]*string{
				"title":       &merged.title,
				"description": &merged.description,
				"status":      &merged.status,
				"priority":    &merged.priority,
				"project":     &merged.project,
				"assignee":    &merged.assignee,
				"due":         &merged.due,
				"hours":       &merged.hours,
			}
			for name, dst := range overlay {
				if cmd.Flags().Changed(name) {
					v, _ := cmd.Flags().GetString(name)
					*dst = v
				}
			}

			in, err := merged.input()
			if err != nil {
				return writeErr(cmd, err)
			}
			t, err := client.UpdateTask(ctx, args[0], in)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}

	flags.register(cmd)
	return cmd
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task (asks for confirmation unless --yes)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !yes {
				cmd.Printf("Delete task %s? [y/N] ", args[0])
				line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				switch strings.ToLower(strings.TrimSpace(line)) {
				case "y", "yes":
				default:
					return writeOut(cmd, app, map[string]any{"data": "aborted"})
				}
			}
			if err := client.DeleteTask(context.Background(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": fmt.Sprintf("deleted %s", args[0])})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}

func newTasksSearchCmd(app *App) *cobra.Command {
	var filters model.SearchFilters

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search tasks with server-side filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, client, err := connect(app)
			if err != nil {
				return writeErr(cmd, err)
			}
			tasks, err := client.SearchTasks(context.Background(), filters)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": tasks})
		},
	}

	cmd.Flags().StringVar(&filters.Text, "text", "", "Free-text filter")
	cmd.Flags().StringVar(&filters.Status, "status", "", "Status filter")
	cmd.Flags().StringVar(&filters.Priority, "priority", "", "Priority filter")
	cmd.Flags().StringVar(&filters.ProjectID, "project", "", "Project id filter")
	return cmd
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
