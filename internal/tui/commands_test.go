package tui

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"taskdeck/internal/api"
	"taskdeck/internal/export"
	"taskdeck/internal/model"
	"taskdeck/internal/session"
)

// The client in newTestModel points at an unroutable address, so any export
// that touches the network fails. These tests pass only when the export
// reads the slices the model already holds.

func TestReportExportUsesLoadedStats(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())
	dir := t.TempDir()
	if err := session.SaveConfig(&session.Config{ExportDir: dir}); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	m := newTestModel(t)
	m.activeTab = tabReports
	m.stats = &model.Stats{Total: 10, Pending: 4, InProgress: 3, Completed: 3}

	_, cmd := update(t, m, key("c"))
	if cmd == nil {
		t.Fatalf("expected an export command")
	}
	done, ok := cmd().(exportDoneMsg)
	if !ok {
		t.Fatalf("export command returned %T", cmd())
	}
	if done.err != nil {
		t.Fatalf("export failed: %v", done.err)
	}
	b, err := os.ReadFile(done.path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(b), "Total tasks,10") {
		t.Fatalf("export does not reflect the loaded stats:\n%s", b)
	}
	if !strings.HasPrefix(done.path, dir) {
		t.Fatalf("export written to %q, want under %q", done.path, dir)
	}
}

func TestTaskExportUsesLoadedTasks(t *testing.T) {
	t.Setenv("TASKDECK_CONFIG_DIR", t.TempDir())
	dir := t.TempDir()
	if err := session.SaveConfig(&session.Config{ExportDir: dir}); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	m := newTestModel(t)
	m.activeTab = tabReports
	m.tasks = []model.Task{{ID: "t1", Title: "Ship release", Status: model.StatusPending, Priority: model.PriorityHigh}}

	_, cmd := update(t, m, key("t"))
	if cmd == nil {
		t.Fatalf("expected an export command")
	}
	done, ok := cmd().(exportDoneMsg)
	if !ok || done.err != nil {
		t.Fatalf("export: %T %v", cmd(), done.err)
	}
	b, err := os.ReadFile(done.path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if !strings.Contains(string(b), "Ship release") {
		t.Fatalf("export does not reflect the loaded tasks:\n%s", b)
	}
}

func TestReportExportWithoutStats(t *testing.T) {
	m := newTestModel(t)
	m.activeTab = tabReports
	m.stats = nil

	_, cmd := update(t, m, key("p"))
	if cmd == nil {
		t.Fatalf("expected an export command")
	}
	done, ok := cmd().(exportDoneMsg)
	if !ok {
		t.Fatalf("export command returned %T", cmd())
	}
	if !errors.Is(done.err, export.ErrNoStats) {
		t.Fatalf("err = %v, want ErrNoStats", done.err)
	}
}

func TestNotificationsLoadRequestsUnreadOnly(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query().Get("unread_only")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	store, err := session.Open(t.TempDir())
	if err != nil {
		t.Fatalf("session.Open: %v", err)
	}
	client := api.New(srv.URL+"/api", store, nil)

	msg := loadNotificationsCmd(client)()
	nm, ok := msg.(notificationsLoadedMsg)
	if !ok {
		t.Fatalf("command returned %T", msg)
	}
	if nm.err != nil {
		t.Fatalf("load: %v", nm.err)
	}
	if got != "true" {
		t.Fatalf("unread_only = %q, want true", got)
	}
}
