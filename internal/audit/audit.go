// Package audit provides structured event logging for discovery runs.
// Events are stored as JSON Lines (JSONL) files, one per run.
package audit

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// EventType classifies a loop event.
type EventType string

const (
	EventSeed   EventType = "seed"
	EventRun    EventType = "run"
	EventScan   EventType = "scan"
	EventPrompt EventType = "prompt"
	EventDone   EventType = "done"
	EventError  EventType = "error"
)

// Event represents a single history entry.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Run       string    `json:"run"`
	Iteration int       `json:"iteration,omitempty"`
	Session   string    `json:"session,omitempty"`
	Details   string    `json:"details,omitempty"`
}

// RunSummary describes one recorded run.
type RunSummary struct {
	ID      string
	Events  int
	Started time.Time
	Updated time.Time
	Last    EventType
}

const eventSuffix = ".events.jsonl"

// Logger writes and reads history events for discovery runs.
// Events are stored in {dir}/{run}.events.jsonl. A Logger with an empty
// dir discards everything it is given.
type Logger struct {
	dir string
}

// NewLogger creates a new history logger rooted at dir.
func NewLogger(dir string) *Logger {
	return &Logger{dir: dir}
}

// Enabled reports whether events are persisted.
func (l *Logger) Enabled() bool {
	return l != nil && l.dir != ""
}

// NewRunID returns a fresh, sortable run identifier.
func NewRunID() string {
	var b [3]byte
	_, _ = rand.Read(b[:])
	return time.Now().UTC().Format("20060102-150405") + "-" + hex.EncodeToString(b[:])
}

// eventPath returns the path to the JSONL event log for a run.
func (l *Logger) eventPath(run string) (string, error) {
	if run == "" || run != filepath.Base(run) || run == "." || run == ".." {
		return "", fmt.Errorf("invalid run id %q", run)
	}
	return filepath.Join(l.dir, run+eventSuffix), nil
}

// Log appends an event to the run's history.
func (l *Logger) Log(event Event) error {
	if !l.Enabled() {
		return nil
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	path, err := l.eventPath(event.Run)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}

	return nil
}

// LogEvent is a convenience method that creates and logs an event.
func (l *Logger) LogEvent(eventType EventType, run string, iteration int, session, details string) error {
	return l.Log(Event{
		Timestamp: time.Now(),
		Type:      eventType,
		Run:       run,
		Iteration: iteration,
		Session:   session,
		Details:   details,
	})
}

// Events reads all events for a run in chronological order.
func (l *Logger) Events(run string) ([]Event, error) {
	if !l.Enabled() {
		return nil, nil
	}
	path, err := l.eventPath(run)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	defer f.Close()

	var events []Event
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			continue // Skip malformed lines
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return events, fmt.Errorf("error reading history: %w", err)
	}

	return events, nil
}

// Remove deletes the history of a run.
func (l *Logger) Remove(run string) error {
	if !l.Enabled() {
		return nil
	}
	path, err := l.eventPath(run)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Runs lists the recorded runs, most recent first.
func (l *Logger) Runs() ([]RunSummary, error) {
	if !l.Enabled() {
		return nil, nil
	}
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list history: %w", err)
	}

	var runs []RunSummary
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, eventSuffix) {
			continue
		}
		id := strings.TrimSuffix(name, eventSuffix)
		events, err := l.Events(id)
		if err != nil || len(events) == 0 {
			continue
		}
		runs = append(runs, RunSummary{
			ID:      id,
			Events:  len(events),
			Started: events[0].Timestamp,
			Updated: events[len(events)-1].Timestamp,
			Last:    events[len(events)-1].Type,
		})
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Started.After(runs[j].Started)
	})
	return runs, nil
}
