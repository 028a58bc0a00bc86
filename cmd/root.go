package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/config"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/system"
)

var (
	verbose    bool
	jsonOutput bool
	configPath string
)

// newApp builds the application from the loaded configuration. Tests
// replace it to inject fakes.
var newApp = func(cfg *config.Config) *app.App {
	return app.New(app.WithConfig(cfg))
}

var rootCmd = &cobra.Command{
	Use:   "forage-routes",
	Short: "Discover the network routes a sandboxed browser session needs",
	Long: `forage-routes builds a sandbox route file for a set of web pages.

It seeds an allow-list from the page URLs, runs the pages in a sandbox,
reads the sandbox network logs for blocked connections, adds those hosts
and runs again until you confirm the pages render correctly.

Route files look like:
  [ip-add]
  *.example.com

  [ip-block]
  0.0.0.0`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logging.Setup(verbose, jsonOutput, os.Stderr)
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		app.SetDefault(newApp(cfg))
		return nil
	},
}

// ExecuteContext runs the root command with ctx, which is cancelled on
// interrupt.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "log-json", false, "Output logs in JSON format")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/forage-routes/config.toml)")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// loadConfig reads --config, or the default config file when present.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	fsys := system.DefaultFS()
	path := configPath

	if cmd.Flags().Changed("config") {
		if !fsys.Exists(path) {
			return nil, errors.ConfigError("config file "+path+" does not exist", nil)
		}
	} else {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			logging.Debug("no default config path", "error", err)
			return config.DefaultConfig(), nil
		}
	}

	return config.Load(fsys, path)
}
