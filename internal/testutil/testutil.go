// Package testutil provides a mock-backed application for tests that drive
// whole discovery runs.
package testutil

import (
	"context"
	"io"
	"testing"

	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/discover"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/routes"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/runtime"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/system"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/tui"
)

// TestEnv holds the test environment
type TestEnv struct {
	T        *testing.T
	FS       *system.MockFS
	Runtime  *runtime.MockRuntime
	Prompter *tui.ScriptedPrompter
	Config   *config.Config
	App      *app.App
}

// NewTestEnv creates an app over a mock filesystem and runtime. The
// prompter answers with answers in order. The app is installed as
// app.Default until the test ends.
func NewTestEnv(t *testing.T, answers ...string) *TestEnv {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Logs.DataRoot = t.TempDir()

	mockFS := system.NewMockFS()
	env := &TestEnv{
		T:        t,
		FS:       mockFS,
		Runtime:  runtime.NewMockRuntime(mockFS),
		Prompter: tui.NewScriptedPrompter(answers...),
		Config:   cfg,
	}
	env.App = app.New(
		app.WithConfig(cfg),
		app.WithFS(mockFS),
		app.WithExecutor(system.NewMockExecutor()),
		app.WithRuntime(env.Runtime),
		app.WithPrompter(env.Prompter),
	)

	originalDefault := app.Default
	app.SetDefault(env.App)
	t.Cleanup(func() {
		app.SetDefault(originalDefault)
	})

	return env
}

// LogDir returns the configured log directory of session.
func (e *TestEnv) LogDir(session string) string {
	e.T.Helper()

	dir, err := e.Config.Logs.LogDir(session)
	if err != nil {
		e.T.Fatalf("Failed to locate logs of %s: %v", session, err)
	}
	return dir
}

// AddSession queues a runtime session that writes logs, keyed by file name,
// into its configured log directory.
func (e *TestEnv) AddSession(id string, logs map[string]string) {
	e.T.Helper()

	e.Runtime.Sessions = append(e.Runtime.Sessions, runtime.MockSession{
		ID:     id,
		LogDir: e.LogDir(id),
		Logs:   logs,
	})
}

// AddFixtureSession queues a session whose logs are the named network log
// fixtures.
func (e *TestEnv) AddFixtureSession(id string, fixtures ...string) {
	e.T.Helper()

	logs := make(map[string]string, len(fixtures))
	for _, name := range fixtures {
		content, err := NetworkLog(name)
		if err != nil {
			e.T.Fatalf("Failed to load fixture %s: %v", name, err)
		}
		logs[name] = content
	}
	e.AddSession(id, logs)
}

// AddRouteFile places a route file fixture at path.
func (e *TestEnv) AddRouteFile(path, fixture string) {
	e.T.Helper()

	data, err := LoadFixture(fixture)
	if err != nil {
		e.T.Fatalf("Failed to load fixture %s: %v", fixture, err)
	}
	e.FS.AddFile(path, data, 0644)
}

// Discover runs one discovery loop with the block entry from the config.
func (e *TestEnv) Discover(opts discover.Options) (*discover.Outcome, error) {
	if opts.BlockDefault == "" {
		opts.BlockDefault = e.Config.Routes.BlockDefault
	}
	return e.App.Loop("", io.Discard).Run(context.Background(), opts)
}

// RouteFile loads the route file at path from the mock filesystem.
func (e *TestEnv) RouteFile(path string) *routes.RouteFile {
	e.T.Helper()

	rf, err := routes.Load(e.FS, path)
	if err != nil {
		e.T.Fatalf("Failed to load route file %s: %v", path, err)
	}
	return rf
}
