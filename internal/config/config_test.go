package config

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/system"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Runtime.Command != DefaultCommand {
		t.Errorf("Runtime.Command = %q, want %q", cfg.Runtime.Command, DefaultCommand)
	}
	if !reflect.DeepEqual(cfg.Runtime.NewArgs, []string{"run"}) {
		t.Errorf("Runtime.NewArgs = %v, want [run]", cfg.Runtime.NewArgs)
	}
	if !reflect.DeepEqual(cfg.Runtime.ResumeArgs, []string{"resume"}) {
		t.Errorf("Runtime.ResumeArgs = %v, want [resume]", cfg.Runtime.ResumeArgs)
	}
	if cfg.Logs.Prefix != DefaultLogPrefix {
		t.Errorf("Logs.Prefix = %q, want %q", cfg.Logs.Prefix, DefaultLogPrefix)
	}
	if cfg.Routes.BlockDefault != "0.0.0.0" {
		t.Errorf("Routes.BlockDefault = %q, want 0.0.0.0", cfg.Routes.BlockDefault)
	}
	if cfg.HistoryDir != "" {
		t.Errorf("HistoryDir = %q, want empty", cfg.HistoryDir)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg, err := Load(system.NewMockFS(), "/home/user/.config/forage-routes/config.toml")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Runtime.Command != DefaultCommand {
		t.Errorf("Runtime.Command = %q, want default", cfg.Runtime.Command)
	}
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load(system.NewMockFS(), "")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Routes.BlockDefault != DefaultBlockEntry {
		t.Errorf("Routes.BlockDefault = %q, want default", cfg.Routes.BlockDefault)
	}
}

func TestLoad_TOML(t *testing.T) {
	mockFS := system.NewMockFS()
	mockFS.AddFile("/cfg/config.toml", []byte(`
history_dir = "/var/tmp/routes-history"

[runtime]
command = "'/opt/my sandbox/bin/sbx' --quiet"
resume_args = ["attach", "--id"]
result_file_flag = ""

[logs]
data_root = "/data"
prefix = "net_"
`), 0644)

	cfg, err := Load(mockFS, "/cfg/config.toml")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}

	argv, err := cfg.Runtime.Argv()
	if err != nil {
		t.Fatalf("Argv error: %v", err)
	}
	if !reflect.DeepEqual(argv, []string{"/opt/my sandbox/bin/sbx", "--quiet"}) {
		t.Errorf("Argv = %q", argv)
	}
	if !reflect.DeepEqual(cfg.Runtime.ResumeArgs, []string{"attach", "--id"}) {
		t.Errorf("ResumeArgs = %v", cfg.Runtime.ResumeArgs)
	}
	if cfg.Runtime.ResultFileFlag != "" {
		t.Errorf("ResultFileFlag = %q, want empty", cfg.Runtime.ResultFileFlag)
	}
	if cfg.Runtime.RouteFileFlag != "--route-file" {
		t.Errorf("RouteFileFlag = %q, want default to survive", cfg.Runtime.RouteFileFlag)
	}
	if cfg.Logs.DataRoot != "/data" || cfg.Logs.Prefix != "net_" {
		t.Errorf("Logs = %+v", cfg.Logs)
	}
	if cfg.Logs.Path != DefaultLogPath {
		t.Errorf("Logs.Path = %q, want default", cfg.Logs.Path)
	}
	if cfg.HistoryDir != "/var/tmp/routes-history" {
		t.Errorf("HistoryDir = %q", cfg.HistoryDir)
	}
}

func TestLoad_YAML(t *testing.T) {
	mockFS := system.NewMockFS()
	mockFS.AddFile("/cfg/config.yaml", []byte(`
runtime:
  command: sbx
  new_args: [launch]
logs:
  data_root: /data
routes:
  block_default: 10.255.255.1
`), 0644)

	cfg, err := Load(mockFS, "/cfg/config.yaml")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.Runtime.Command != "sbx" {
		t.Errorf("Runtime.Command = %q, want sbx", cfg.Runtime.Command)
	}
	if !reflect.DeepEqual(cfg.Runtime.NewArgs, []string{"launch"}) {
		t.Errorf("NewArgs = %v, want [launch]", cfg.Runtime.NewArgs)
	}
	if cfg.Routes.BlockDefault != "10.255.255.1" {
		t.Errorf("BlockDefault = %q", cfg.Routes.BlockDefault)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		path string
		data string
	}{
		{"malformed toml", "/c/config.toml", "[runtime\ncommand = 1"},
		{"malformed yaml", "/c/config.yml", "runtime: [unclosed"},
		{"empty command", "/c/config.toml", "[runtime]\ncommand = \"\""},
		{"unterminated quote", "/c/config.toml", "[runtime]\ncommand = \"'sbx\""},
		{"bad template", "/c/config.toml", "[logs]\ndata_root = \"/d\"\npath = \"{{.Session\""},
		{"bad block default", "/c/config.toml", "[logs]\ndata_root = \"/d\"\n[routes]\nblock_default = \"0.0.0.0 1.1.1.1\""},
		{"empty route file flag", "/c/config.toml", "[logs]\ndata_root = \"/d\"\n[runtime]\nroute_file_flag = \"\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockFS := system.NewMockFS()
			mockFS.AddFile(tt.path, []byte(tt.data), 0644)

			_, err := Load(mockFS, tt.path)
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetExitCode(err); got != errors.ExitConfigError {
				t.Errorf("exit code = %d, want %d (err: %v)", got, errors.ExitConfigError, err)
			}
		})
	}
}

func TestLoad_Unreadable(t *testing.T) {
	mockFS := system.NewMockFS()
	mockFS.ReadFileErr = os.ErrPermission

	_, err := Load(mockFS, "/c/config.toml")
	if !errors.HasCode(err, errors.ExitConfigError) {
		t.Errorf("expected config error, got %v", err)
	}
}

func TestLogDir(t *testing.T) {
	root := t.TempDir()
	logs := LogsConfig{DataRoot: root, Path: DefaultLogPath, Prefix: DefaultLogPrefix}

	dir, err := logs.LogDir("abc123")
	if err != nil {
		t.Fatalf("LogDir error: %v", err)
	}
	want := filepath.Join(root, "sandbox", "sessions", "abc123", "logs")
	if dir != want {
		t.Errorf("LogDir = %q, want %q", dir, want)
	}
}

func TestLogDir_StaysUnderRoot(t *testing.T) {
	root := t.TempDir()
	logs := LogsConfig{DataRoot: root, Path: DefaultLogPath, Prefix: DefaultLogPrefix}

	for _, session := range []string{"../../../../etc", "/etc/passwd", "a/../../.."} {
		dir, err := logs.LogDir(session)
		if err != nil {
			t.Fatalf("LogDir(%q) error: %v", session, err)
		}
		if !strings.HasPrefix(dir, root+string(filepath.Separator)) {
			t.Errorf("LogDir(%q) = %q escapes %q", session, dir, root)
		}
	}
}

func TestLogDir_EmptySession(t *testing.T) {
	logs := LogsConfig{DataRoot: t.TempDir(), Path: DefaultLogPath}
	if _, err := logs.LogDir(""); err == nil {
		t.Error("expected error for empty session")
	}
}

func TestEncode(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Logs.DataRoot = "/data"

	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	mockFS := system.NewMockFS()
	mockFS.AddFile("/c/config.toml", buf.Bytes(), 0644)
	loaded, err := Load(mockFS, "/c/config.toml")
	if err != nil {
		t.Fatalf("Load error: %v\n%s", err, buf.String())
	}
	if !reflect.DeepEqual(loaded, cfg) {
		t.Errorf("loaded = %+v, want %+v", loaded, cfg)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	t.Setenv("HOME", "/home/u")

	path, err := DefaultPath()
	if err != nil {
		t.Fatalf("DefaultPath error: %v", err)
	}
	if filepath.Base(path) != DefaultConfigName || filepath.Base(filepath.Dir(path)) != AppName {
		t.Errorf("DefaultPath = %q", path)
	}
}
