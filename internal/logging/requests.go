package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// RequestEventType names the API operation a request record describes.
type RequestEventType string

const (
	RequestDiscover RequestEventType = "discover"
	RequestSearch   RequestEventType = "search"
)

// RequestEvent is one line of the request history. The history is a
// JSONL file next to the category logs, one object per API call, for
// inspecting what the app asked for and what came back.
type RequestEvent struct {
	Timestamp  int64            `json:"ts"` // Unix milliseconds
	SessionID  string           `json:"session"`
	Type       RequestEventType `json:"type"`
	Query      string           `json:"query,omitempty"`
	SortBy     string           `json:"sort_by,omitempty"`
	Page       int              `json:"page"`
	Results    int              `json:"results"`
	TotalPages int              `json:"total_pages"`
	DurationMs int64            `json:"dur_ms"`
	Success    bool             `json:"success"`
	Error      string           `json:"error,omitempty"`
}

var (
	requestMu   sync.Mutex
	requestFile *os.File
)

// InitRequestLog opens the request history file. A no-op when logging
// is disabled.
func InitRequestLog() error {
	stateMu.Lock()
	active := enabled
	dir := opts.Dir
	stateMu.Unlock()
	if !active {
		return nil
	}

	requestMu.Lock()
	defer requestMu.Unlock()
	if requestFile != nil {
		return nil
	}

	path := filepath.Join(dir, "requests.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open request log: %w", err)
	}
	requestFile = f
	return nil
}

// CloseRequestLog closes the request history file.
func CloseRequestLog() {
	requestMu.Lock()
	defer requestMu.Unlock()
	if requestFile != nil {
		requestFile.Close()
		requestFile = nil
	}
}

// LogRequest appends one record to the request history. Timestamp and
// session id are filled in when absent. Safe to call when the history
// is not open.
func LogRequest(ev RequestEvent) {
	requestMu.Lock()
	defer requestMu.Unlock()
	if requestFile == nil {
		return
	}

	if ev.Timestamp == 0 {
		ev.Timestamp = time.Now().UnixMilli()
	}
	if ev.SessionID == "" {
		ev.SessionID = SessionID()
	}

	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	requestFile.Write(append(data, '\n'))
}
