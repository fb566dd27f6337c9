package auth

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var (
	loggingEnv = os.Getenv("LOGGING")
	logDir     = "log"
	logMu      sync.Mutex
)

// LogAuthAttempt appends a token lifecycle record to log/auth.log.
// Fields: timestamp (RFC3339) | level | event | status | identifier? | message?
// level: debug|info|warning|error
// event: Issue|Revoke|Verify
// status: Success|Fail
// Does nothing unless LOGGING=true.
func LogAuthAttempt(level string, event string, status string, identifier string, message string) {
	if !strings.EqualFold(loggingEnv, "true") {
		return
	}

	logMu.Lock()
	defer logMu.Unlock()

	if err := os.MkdirAll(logDir, 0o750); err != nil {
		return
	}
	f, err := os.OpenFile(filepath.Join(logDir, "auth.log"), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()

	ts := time.Now().UTC().Format(time.RFC3339)
	parts := []string{ts, level, event, status}
	if identifier != "" {
		parts = append(parts, identifier)
	}
	if message != "" {
		parts = append(parts, message)
	}

	_, _ = f.WriteString(strings.Join(parts, " | ") + "\n")
}
