package tui

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// debugLogf appends a line to the debug log when --debug-log was given.
// Failures are ignored; diagnostics must never break the UI.
func (m *appModel) debugLogf(format string, args ...any) {
	path := strings.TrimSpace(m.debugLogPath)
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()
	fmt.Fprintf(f, "%s "+format+"\n", append([]any{time.Now().Format("15:04:05.000")}, args...)...)
}
