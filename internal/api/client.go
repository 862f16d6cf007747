package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"taskdeck/internal/model"
)

// TokenSource yields the current bearer token ("" when unauthenticated).
// The session store satisfies this; the client never reaches into ambient
// storage itself.
type TokenSource interface {
	Token() string
}

// Client talks to the task-management REST backend. One method per backend
// resource/action; every method is a single request/response round trip.
type Client struct {
	base   string
	http   *http.Client
	tokens TokenSource

	// onUnauthorized runs once per 401 response, before the error is returned.
	// The only global side effect in this package lives behind this hook:
	// callers install session teardown here.
	onUnauthorized func()
}

func New(baseURL string, tokens TokenSource, onUnauthorized func()) *Client {
	return &Client{
		base:           strings.TrimRight(baseURL, "/"),
		http:           &http.Client{Timeout: 30 * time.Second},
		tokens:         tokens,
		onUnauthorized: onUnauthorized,
	}
}

// LoginResult is the login response: bearer token plus the user object the
// session store persists verbatim.
type LoginResult struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	User        model.User `json:"user"`
}

// Login posts form-encoded credentials. It does not attach a bearer token and
// does not trigger the unauthorized hook: a 401 here is a bad password, not an
// expired session.
func (c *Client) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, readError(resp)
	}
	var out LoginResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	return &out, nil
}

func (c *Client) Me(ctx context.Context) (*model.User, error) {
	var out model.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Tasks(ctx context.Context) ([]model.Task, error) {
	var out []model.Task
	err := c.do(ctx, http.MethodGet, "/tasks", nil, nil, &out)
	return out, err
}

func (c *Client) Task(ctx context.Context, id string) (*model.Task, error) {
	var out model.Task
	if err := c.do(ctx, http.MethodGet, "/tasks/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateTask(ctx context.Context, in model.TaskInput) (*model.Task, error) {
	var out model.Task
	if err := c.do(ctx, http.MethodPost, "/tasks", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateTask(ctx context.Context, id string, in model.TaskInput) (*model.Task, error) {
	var out model.Task
	if err := c.do(ctx, http.MethodPut, "/tasks/"+url.PathEscape(id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/tasks/"+url.PathEscape(id), nil, nil, nil)
}

// SearchTasks queries server-side filtering; empty filter fields are omitted
// from the query string.
func (c *Client) SearchTasks(ctx context.Context, f model.SearchFilters) ([]model.Task, error) {
	q := url.Values{}
	if f.Text != "" {
		q.Set("text", f.Text)
	}
	if f.Status != "" {
		q.Set("status", f.Status)
	}
	if f.Priority != "" {
		q.Set("priority", f.Priority)
	}
	if f.ProjectID != "" {
		q.Set("project_id", f.ProjectID)
	}
	var out []model.Task
	err := c.do(ctx, http.MethodGet, "/tasks/search", q, nil, &out)
	return out, err
}

func (c *Client) Projects(ctx context.Context) ([]model.Project, error) {
	var out []model.Project
	err := c.do(ctx, http.MethodGet, "/projects", nil, nil, &out)
	return out, err
}

func (c *Client) CreateProject(ctx context.Context, in model.ProjectInput) (*model.Project, error) {
	var out model.Project
	if err := c.do(ctx, http.MethodPost, "/projects", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProject(ctx context.Context, id string, in model.ProjectInput) (*model.Project, error) {
	var out model.Project
	if err := c.do(ctx, http.MethodPut, "/projects/"+url.PathEscape(id), nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/projects/"+url.PathEscape(id), nil, nil, nil)
}

func (c *Client) TaskComments(ctx context.Context, taskID string) ([]model.Comment, error) {
	var out []model.Comment
	err := c.do(ctx, http.MethodGet, "/comments/task/"+url.PathEscape(taskID), nil, nil, &out)
	return out, err
}

func (c *Client) CreateComment(ctx context.Context, in model.CommentInput) (*model.Comment, error) {
	var out model.Comment
	if err := c.do(ctx, http.MethodPost, "/comments", nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Notifications(ctx context.Context, unreadOnly bool) ([]model.Notification, error) {
	q := url.Values{}
	q.Set("unread_only", strconv.FormatBool(unreadOnly))
	var out []model.Notification
	err := c.do(ctx, http.MethodGet, "/notifications", q, nil, &out)
	return out, err
}

func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/notifications/"+url.PathEscape(id)+"/read", nil, nil, nil)
}

func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/notifications/read-all", nil, nil, nil)
}

func (c *Client) TaskHistory(ctx context.Context, taskID string) ([]model.HistoryEntry, error) {
	var out []model.HistoryEntry
	err := c.do(ctx, http.MethodGet, "/history/task/"+url.PathEscape(taskID), nil, nil, &out)
	return out, err
}

func (c *Client) History(ctx context.Context, limit int) ([]model.HistoryEntry, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	var out []model.HistoryEntry
	err := c.do(ctx, http.MethodGet, "/history", q, nil, &out)
	return out, err
}

func (c *Client) Stats(ctx context.Context) (*model.Stats, error) {
	var out model.Stats
	if err := c.do(ctx, http.MethodGet, "/reports/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GenerateReport(ctx context.Context, reportType string) (*model.Report, error) {
	q := url.Values{}
	q.Set("report_type", reportType)
	var out model.Report
	if err := c.do(ctx, http.MethodGet, "/reports/generate", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Users(ctx context.Context) ([]model.User, error) {
	var out []model.User
	err := c.do(ctx, http.MethodGet, "/reports/users", nil, nil, &out)
	return out, err
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.tokens.Token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := readError(resp)
		if resp.StatusCode == http.StatusUnauthorized && c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return apiErr
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}

func readError(resp *http.Response) *Error {
	e := &Error{StatusCode: resp.StatusCode}
	b, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil || len(b) == 0 {
		return e
	}
	var payload struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(b, &payload) == nil && payload.Detail != "" {
		e.Detail = payload.Detail
	}
	return e
}
