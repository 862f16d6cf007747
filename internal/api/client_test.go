package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskdeck/internal/model"
)

type staticToken string

func (t staticToken) Token() string { return string(t) }

func TestLoginPostsFormEncodedCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Fatalf("unexpected content type: %s", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostForm.Get("username") != "admin" || r.PostForm.Get("password") != "admin123" {
			t.Fatalf("unexpected credentials: %v", r.PostForm)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "tok-1",
			"token_type":   "bearer",
			"user":         map[string]any{"id": "u1", "username": "admin", "email": "admin@example.com"},
		})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken(""), nil)
	res, err := c.Login(context.Background(), "admin", "admin123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.AccessToken != "tok-1" || res.User.Username != "admin" {
		t.Fatalf("unexpected login result: %+v", res)
	}
}

func TestBearerTokenAttachedWhenPresent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok-9"), nil)
	if _, err := c.Tasks(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "Bearer tok-9" {
		t.Fatalf("expected bearer header, got %q", got)
	}

	c = New(srv.URL, staticToken(""), nil)
	if _, err := c.Tasks(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "" {
		t.Fatalf("expected no auth header without a token, got %q", got)
	}
}

func TestUnauthorizedRunsHookAndReturnsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Could not validate credentials"}`))
	}))
	defer srv.Close()

	hooks := 0
	c := New(srv.URL, staticToken("stale"), func() { hooks++ })
	_, err := c.Tasks(context.Background())
	if !IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}
	if hooks != 1 {
		t.Fatalf("expected hook to run once, ran %d times", hooks)
	}

	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.Detail != "Could not validate credentials" {
		t.Fatalf("expected server detail, got %v", err)
	}
}

func TestNonAuthErrorsPassThroughWithoutHook(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"detail":"title is required"}`))
	}))
	defer srv.Close()

	hooks := 0
	c := New(srv.URL, staticToken("tok"), func() { hooks++ })
	_, err := c.CreateTask(context.Background(), model.TaskInput{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if hooks != 0 {
		t.Fatalf("validation failure must not tear down the session")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusUnprocessableEntity || apiErr.Detail != "title is required" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestTaskInputOmitsAbsentReferences(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		_, _ = w.Write([]byte(`{"_id":"t1","title":"x","status":"Pending","priority":"Medium"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok"), nil)
	in := model.TaskInput{
		Title:    "x",
		Status:   model.StatusPending,
		Priority: model.PriorityMedium,
	}
	if _, err := c.CreateTask(context.Background(), in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, k := range []string{"project_id", "assigned_to", "due_date", "estimated_hours"} {
		if _, present := body[k]; present {
			t.Fatalf("field %s must be absent from the payload, got %v", k, body[k])
		}
	}
}

func TestSearchQueryOmitsEmptyFilters(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok"), nil)
	_, err := c.SearchTasks(context.Background(), model.SearchFilters{Text: "deploy", Priority: "High"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if query != "priority=High&text=deploy" {
		t.Fatalf("unexpected query: %q", query)
	}
}
