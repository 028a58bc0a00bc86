package integration

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kballard/go-shellquote"

	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/audit"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/discover"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/tui"
)

// CDNScript is a sandbox stand-in. Until the route file allows cdn.test it
// logs a blocked connection to it. It writes its session result to the
// result file.
const CDNScript = `#!/bin/sh
set -e
mode=$1; shift
session=script-1
if [ "$mode" = resume ]; then session=$1; shift; fi
routes=
result=
while [ $# -gt 0 ]; do
	case $1 in
	--route-file) routes=$2; shift 2 ;;
	--result-file) result=$2; shift 2 ;;
	--) shift; break ;;
	*) shift ;;
	esac
done
dir={{LOGS}}/$session
mkdir -p "$dir"
if ! grep -qx 'cdn\.test' "$routes"; then
	printf 'Host cdn.test resolved to: 10.9.9.9\nConnection blocked: 10.9.9.9:443\n' >> "$dir/xcnetwork_1.log"
fi
printf '{"id":"%s","logDir":"%s"}\n' "$session" "$dir" > "$result"
`

// FailingScript exits non-zero without a result.
const FailingScript = `#!/bin/sh
echo "sandbox exploded" >&2
exit 1
`

// GarbageScript exits cleanly but reports no session.
const GarbageScript = `#!/bin/sh
echo "not json"
`

// Harness runs discovery against a command runtime.
type Harness struct {
	t       *testing.T
	dir     string
	logRoot string
	Config  *config.Config
}

func newHarness(t *testing.T, command string) *Harness {
	t.Helper()

	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Runtime.Command = command
	cfg.Logs.DataRoot = filepath.Join(dir, "data")
	cfg.HistoryDir = filepath.Join(dir, "history")

	return &Harness{
		t:       t,
		dir:     dir,
		logRoot: filepath.Join(dir, "logs"),
		Config:  cfg,
	}
}

// NewScriptHarness installs script as the sandbox runtime. A "{{LOGS}}"
// placeholder in script is replaced with the quoted log root.
// It skips the test when no POSIX sh is available.
func NewScriptHarness(t *testing.T, script string) *Harness {
	t.Helper()

	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	h := newHarness(t, "")
	path := filepath.Join(h.dir, "fake-sandbox")
	body := strings.ReplaceAll(script, "{{LOGS}}", shellquote.Join(h.logRoot))
	if err := os.WriteFile(path, []byte(body), 0755); err != nil {
		t.Fatalf("Failed to write script: %v", err)
	}
	h.Config.Runtime.Command = shellquote.Join(path)
	return h
}

// NewHarness uses the sandbox runtime named by FORAGE_ROUTES_RUNTIME.
// It skips the test unless FORAGE_ROUTES_INTEGRATION_TESTS is set.
func NewHarness(t *testing.T) *Harness {
	t.Helper()

	if os.Getenv("FORAGE_ROUTES_INTEGRATION_TESTS") == "" {
		t.Skip("integration tests disabled (set FORAGE_ROUTES_INTEGRATION_TESTS=1 to enable)")
	}
	command := os.Getenv("FORAGE_ROUTES_RUNTIME")
	if command == "" {
		command = config.DefaultCommand
	}
	return newHarness(t, command)
}

// Dir returns the harness scratch directory.
func (h *Harness) Dir() string {
	return h.dir
}

// App builds an app over the real filesystem whose prompter answers with
// answers in order.
func (h *Harness) App(answers ...string) *app.App {
	return app.New(
		app.WithConfig(h.Config),
		app.WithPrompter(tui.NewScriptedPrompter(answers...)),
	)
}

// Discover runs one discovery loop over urls and returns its outcome and
// the run id its history was recorded under.
func (h *Harness) Discover(ctx context.Context, urls []string, destination string, answers ...string) (*discover.Outcome, string, error) {
	h.t.Helper()

	a := h.App(answers...)
	if a.Runtime == nil {
		h.t.Fatalf("runtime %q could not be configured", h.Config.Runtime.Command)
	}

	runID := audit.NewRunID()
	outcome, err := a.Loop(runID, io.Discard).Run(ctx, discover.Options{
		URLs:         urls,
		Destination:  destination,
		BlockDefault: h.Config.Routes.BlockDefault,
		TempDir:      h.dir,
	})
	return outcome, runID, err
}

// TempFiles lists leftover forage-routes temporary files in the scratch
// directory.
func (h *Harness) TempFiles() []string {
	h.t.Helper()

	matches, err := filepath.Glob(filepath.Join(h.dir, "forage-routes-*"))
	if err != nil {
		h.t.Fatalf("glob failed: %v", err)
	}
	return matches
}

// Events returns the recorded history of runID as "type:details" strings.
func (h *Harness) Events(runID string) []string {
	h.t.Helper()

	events, err := audit.NewLogger(h.Config.HistoryDir).Events(runID)
	if err != nil {
		h.t.Fatalf("failed to read history: %v", err)
	}
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, fmt.Sprintf("%s:%s", e.Type, e.Details))
	}
	return out
}
