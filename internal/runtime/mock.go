package runtime

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/system"
)

// MockSession scripts the outcome of one MockRuntime.Run call.
type MockSession struct {
	// ID is the session id reported in the result
	ID string

	// LogDir is where Logs are written
	LogDir string

	// Logs maps log file names to their content
	Logs map[string]string

	// ReportLogDir includes LogDir in the returned Result
	ReportLogDir bool
}

// MockCall represents a recorded Run call
type MockCall struct {
	Options RunOptions

	// RouteFile is the content of the route file at the time of the call
	RouteFile string
}

// MockRuntime is a mock implementation of Runtime for testing
type MockRuntime struct {
	mu sync.Mutex

	// FS is used to snapshot route files and write session logs
	FS system.FileSystem

	// Sessions are consumed one per call; the last one repeats once exhausted
	Sessions []MockSession

	// Errors allows injecting errors per mode ("run" or "resume")
	Errors map[Mode]error

	// CallLog records all Run calls for verification
	CallLog []MockCall
}

// NewMockRuntime creates a new mock runtime
func NewMockRuntime(fsys system.FileSystem, sessions ...MockSession) *MockRuntime {
	return &MockRuntime{
		FS:       fsys,
		Sessions: sessions,
		Errors:   make(map[Mode]error),
	}
}

// Name returns the runtime identifier
func (m *MockRuntime) Name() string {
	return "mock"
}

// SetError sets an error to be returned for a specific mode
func (m *MockRuntime) SetError(mode Mode, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[mode] = err
}

// Run records the call and replays the next scripted session.
func (m *MockRuntime) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	call := MockCall{Options: opts}
	call.Options.URLs = append([]string(nil), opts.URLs...)
	if m.FS != nil {
		if data, err := m.FS.ReadFile(opts.RouteFile); err == nil {
			call.RouteFile = string(data)
		}
	}
	index := len(m.CallLog)
	m.CallLog = append(m.CallLog, call)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := m.Errors[opts.Mode()]; err != nil {
		return nil, err
	}

	session := MockSession{ID: fmt.Sprintf("mock-%d", index+1)}
	if len(m.Sessions) > 0 {
		session = m.Sessions[min(index, len(m.Sessions)-1)]
	}

	if m.FS != nil && len(session.Logs) > 0 {
		if err := m.FS.MkdirAll(session.LogDir, 0755); err != nil {
			return nil, err
		}
		names := make([]string, 0, len(session.Logs))
		for name := range session.Logs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			if err := m.FS.WriteFile(filepath.Join(session.LogDir, name), []byte(session.Logs[name]), 0644); err != nil {
				return nil, err
			}
		}
	}

	result := &Result{ID: session.ID}
	if session.ReportLogDir {
		result.LogDir = session.LogDir
	}
	return result, nil
}

// GetCalls returns all recorded calls
func (m *MockRuntime) GetCalls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]MockCall(nil), m.CallLog...)
}

// Ensure MockRuntime implements Runtime
var _ Runtime = (*MockRuntime)(nil)
