package cli

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskdeck/internal/session"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestTasksListCommand(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/tasks" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"_id":"t1","title":"Deploy","status":"Pending","priority":"High","created_at":"2026-01-02T10:00:00Z","updated_at":"2026-01-02T10:00:00Z"}]`))
	}))
	defer srv.Close()

	out, err := runCommand(t, "--server", srv.URL+"/api", "tasks", "list")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}

	var envelope struct {
		Data []struct {
			ID    string `json:"_id"`
			Title string `json:"title"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &envelope); err != nil {
		t.Fatalf("output is not the JSON envelope: %v\n%s", err, out)
	}
	if len(envelope.Data) != 1 || envelope.Data[0].ID != "t1" || envelope.Data[0].Title != "Deploy" {
		t.Fatalf("unexpected payload: %+v", envelope.Data)
	}
}

func TestServerResolutionOrder(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("TASKDECK_CONFIG_DIR", dir)

	// No flag, no config: built-in default.
	got, err := resolveServer(&App{})
	if err != nil {
		t.Fatalf("resolveServer: %v", err)
	}
	if got != session.DefaultServerURL {
		t.Fatalf("default = %q, want %q", got, session.DefaultServerURL)
	}

	// Config wins over the default.
	if err := session.SaveConfig(&session.Config{ServerURL: "http://cfg:9000/api"}); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}
	got, err = resolveServer(&App{})
	if err != nil {
		t.Fatalf("resolveServer: %v", err)
	}
	if got != "http://cfg:9000/api" {
		t.Fatalf("config url = %q", got)
	}

	// Flag wins over everything.
	got, err = resolveServer(&App{Server: "http://flag:9000/api"})
	if err != nil {
		t.Fatalf("resolveServer: %v", err)
	}
	if got != "http://flag:9000/api" {
		t.Fatalf("flag url = %q", got)
	}
}

func TestDocsCommandListsTopics(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())

	out, err := runCommand(t, "docs")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	var envelope struct {
		Data struct {
			Topics []string `json:"topics"`
		} `json:"data"`
	}
	if err := json.Unmarshal([]byte(out), &envelope); err != nil {
		t.Fatalf("bad envelope: %v\n%s", err, out)
	}
	if len(envelope.Data.Topics) == 0 {
		t.Fatalf("no docs topics embedded")
	}
}
