package config

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"
	securejoin "github.com/cyphar/filepath-securejoin"
	"github.com/kballard/go-shellquote"
	"gopkg.in/yaml.v3"

	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/system"
)

const (
	AppName           = "forage-routes"
	DefaultConfigName = "config.toml"
	DefaultCommand    = "sandbox"
	DefaultLogPath    = "sandbox/sessions/{{.Session}}/logs"
	DefaultLogPrefix  = "xcnetwork_"
	DefaultBlockEntry = "0.0.0.0"
)

// Config is the forage-routes configuration file.
type Config struct {
	Runtime    RuntimeConfig `toml:"runtime" yaml:"runtime"`
	Logs       LogsConfig    `toml:"logs" yaml:"logs"`
	Routes     RoutesConfig  `toml:"routes" yaml:"routes"`
	HistoryDir string        `toml:"history_dir" yaml:"history_dir"`
}

// RuntimeConfig describes how the external sandbox runtime is invoked.
type RuntimeConfig struct {
	// Command is the runtime executable plus any leading arguments, shell-quoted.
	Command    string   `toml:"command" yaml:"command"`
	NewArgs    []string `toml:"new_args" yaml:"new_args"`
	ResumeArgs []string `toml:"resume_args" yaml:"resume_args"`
	// RouteFileFlag precedes the route file path.
	RouteFileFlag string `toml:"route_file_flag" yaml:"route_file_flag"`
	// ResultFileFlag precedes the path the runtime writes its JSON result to.
	// When empty the result is read from stdout.
	ResultFileFlag string `toml:"result_file_flag" yaml:"result_file_flag"`
}

// LogsConfig locates per-session network logs.
type LogsConfig struct {
	DataRoot string `toml:"data_root" yaml:"data_root"`
	// Path is a text/template relative to DataRoot; {{.Session}} is the session id.
	Path   string `toml:"path" yaml:"path"`
	Prefix string `toml:"prefix" yaml:"prefix"`
}

// RoutesConfig holds route file defaults.
type RoutesConfig struct {
	BlockDefault string `toml:"block_default" yaml:"block_default"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	dataRoot, err := os.UserCacheDir()
	if err != nil {
		logging.Debug("no user cache directory", "error", err)
		dataRoot = ""
	}
	return &Config{
		Runtime: RuntimeConfig{
			Command:        DefaultCommand,
			NewArgs:        []string{"run"},
			ResumeArgs:     []string{"resume"},
			RouteFileFlag:  "--route-file",
			ResultFileFlag: "--result-file",
		},
		Logs: LogsConfig{
			DataRoot: dataRoot,
			Path:     DefaultLogPath,
			Prefix:   DefaultLogPrefix,
		},
		Routes: RoutesConfig{
			BlockDefault: DefaultBlockEntry,
		},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate user config directory: %w", err)
	}
	return filepath.Join(dir, AppName, DefaultConfigName), nil
}

// Load reads the config file at path over the built-in defaults. A missing
// file yields the defaults. Files ending in .yaml or .yml are decoded as
// YAML, everything else as TOML.
func Load(fsys system.FileSystem, path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := fsys.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.Debug("no config file, using defaults", "path", path)
			return cfg, nil
		}
		return nil, errors.ConfigError(fmt.Sprintf("failed to read config %s", path), err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errors.ConfigError(fmt.Sprintf("failed to parse config %s", path), err)
		}
	default:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, errors.ConfigError(fmt.Sprintf("failed to parse config %s", path), err)
		}
		for _, key := range md.Undecoded() {
			logging.Warn("unknown config key", "path", path, "key", key.String())
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logging.Debug("loaded config", "path", path)
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// Validate checks that the Config is usable.
func (c *Config) Validate() error {
	if _, err := c.Runtime.Argv(); err != nil {
		return err
	}
	if c.Runtime.RouteFileFlag == "" {
		return errors.ConfigError("runtime.route_file_flag is required", nil)
	}
	if err := c.Logs.Validate(); err != nil {
		return err
	}
	block := c.Routes.BlockDefault
	if block == "" || strings.ContainsAny(block, " \t\r\n[]") {
		return errors.ConfigError(fmt.Sprintf("invalid routes.block_default %q", block), nil)
	}
	return nil
}

// Argv splits Command into the runtime executable and its leading arguments.
func (r *RuntimeConfig) Argv() ([]string, error) {
	argv, err := shellquote.Split(r.Command)
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("invalid runtime.command %q", r.Command), err)
	}
	if len(argv) == 0 {
		return nil, errors.ConfigError("runtime.command is required", nil)
	}
	return argv, nil
}

// Validate checks the log location settings.
func (l *LogsConfig) Validate() error {
	if l.DataRoot == "" {
		return errors.ConfigError("logs.data_root is required", nil)
	}
	if l.Prefix == "" {
		return errors.ConfigError("logs.prefix is required", nil)
	}
	if _, err := l.template(); err != nil {
		return err
	}
	return nil
}

func (l *LogsConfig) template() (*template.Template, error) {
	tmpl, err := template.New("logs.path").Option("missingkey=error").Parse(l.Path)
	if err != nil {
		return nil, errors.ConfigError(fmt.Sprintf("invalid logs.path %q", l.Path), err)
	}
	return tmpl, nil
}

// LogDir returns the network log directory of session. The rendered path
// is joined under DataRoot and can never resolve outside of it.
func (l *LogsConfig) LogDir(session string) (string, error) {
	if session == "" {
		return "", errors.ValidationError("session id is required")
	}
	tmpl, err := l.template()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Session string }{Session: session}); err != nil {
		return "", errors.ConfigError(fmt.Sprintf("failed to render logs.path %q", l.Path), err)
	}

	dir, err := securejoin.SecureJoin(l.DataRoot, buf.String())
	if err != nil {
		return "", fmt.Errorf("failed to resolve log directory for session %s: %w", session, err)
	}
	return dir, nil
}
