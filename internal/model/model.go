package model

import "time"

// Status is the task lifecycle state as the backend spells it on the wire.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// Statuses lists all statuses in form/display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusCompleted}

type Priority string

const (
	PriorityLow      Priority = "Low"
	PriorityMedium   Priority = "Medium"
	PriorityHigh     Priority = "High"
	PriorityCritical Priority = "Critical"
)

var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical}

// Task is the wire shape of a task. Joined display fields (ProjectName,
// AssignedToName) are supplied by the backend; the client never computes them.
type Task struct {
	ID             string     `json:"_id"`
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Status         Status     `json:"status"`
	Priority       Priority   `json:"priority"`
	ProjectID      *string    `json:"project_id,omitempty"`
	AssignedTo     *string    `json:"assigned_to,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	ProjectName    *string    `json:"project_name,omitempty"`
	AssignedToName *string    `json:"assigned_to_name,omitempty"`
}

// TaskInput is the create/update payload. Optional references stay nil so the
// encoded payload omits them entirely (never an empty-string placeholder).
type TaskInput struct {
	Title          string     `json:"title"`
	Description    string     `json:"description,omitempty"`
	Status         Status     `json:"status"`
	Priority       Priority   `json:"priority"`
	ProjectID      *string    `json:"project_id,omitempty"`
	AssignedTo     *string    `json:"assigned_to,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
}

type Project struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedBy   string    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type ProjectInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Comment is append-only from the client's perspective.
type Comment struct {
	ID        string    `json:"_id"`
	TaskID    string    `json:"task_id"`
	UserID    string    `json:"user_id,omitempty"`
	Username  string    `json:"username"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type CommentInput struct {
	TaskID  string `json:"task_id"`
	Content string `json:"content"`
}

type Notification struct {
	ID        string    `json:"_id"`
	Message   string    `json:"message"`
	Type      string    `json:"type,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

type HistoryAction string

const (
	HistoryCreated         HistoryAction = "CREATED"
	HistoryStatusChanged   HistoryAction = "STATUS_CHANGED"
	HistoryTitleChanged    HistoryAction = "TITLE_CHANGED"
	HistoryAssigned        HistoryAction = "ASSIGNED"
	HistoryPriorityChanged HistoryAction = "PRIORITY_CHANGED"
	HistoryUpdated         HistoryAction = "UPDATED"
	HistoryDeleted         HistoryAction = "DELETED"
)

// HistoryEntry is a server-generated, read-only audit record.
type HistoryEntry struct {
	ID        string        `json:"_id"`
	TaskID    string        `json:"task_id"`
	Action    HistoryAction `json:"action"`
	Username  string        `json:"username"`
	OldValue  *string       `json:"old_value,omitempty"`
	NewValue  *string       `json:"new_value,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// Stats is an opaque server-computed snapshot; the client renders and exports
// it but never recomputes any of its numbers.
type Stats struct {
	Total        int            `json:"total"`
	Pending      int            `json:"pending"`
	InProgress   int            `json:"in_progress"`
	Completed    int            `json:"completed"`
	HighPriority int            `json:"high_priority"`
	Overdue      int            `json:"overdue"`
	ProjectCount int            `json:"project_count,omitempty"`
	UserCount    int            `json:"user_count,omitempty"`
	ByPriority   map[string]int `json:"by_priority,omitempty"`
	ByStatus     map[string]int `json:"by_status,omitempty"`
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// SearchFilters is ephemeral client state used only to build a query string.
type SearchFilters struct {
	Text      string
	Status    string
	Priority  string
	ProjectID string
}

func (f SearchFilters) Empty() bool {
	return f.Text == "" && f.Status == "" && f.Priority == "" && f.ProjectID == ""
}

// Report is the parametrized report payload; Data stays raw because its shape
// depends on the report type and the client only re-emits it.
type Report struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}
