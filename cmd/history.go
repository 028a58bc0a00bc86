package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/tui"
)

var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "Display the recorded events of a discovery run",
	Long: `Display the recorded events of a discovery run.

Without a run id, recorded runs are listed; on a terminal a picker opens.
History is only kept when history_dir is set in the config file.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

var historyJSON bool

func init() {
	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "Output events as JSON lines")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	history := app.Default.History
	if !history.Enabled() {
		return errors.ConfigError("run history is disabled (set history_dir in the config file)", nil)
	}

	var run string
	if len(args) == 1 {
		run = args[0]
	} else {
		runs, err := history.Runs()
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}
		if len(runs) == 0 || !interactive() {
			fmt.Fprint(cmd.OutOrStdout(), tui.SimplePicker(runs))
			return nil
		}

		logging.Debug("picker mode started", "runs", len(runs))
		run, err = tui.RunPicker(runs)
		if err != nil {
			return fmt.Errorf("picker error: %w", err)
		}
		if run == "" {
			return nil
		}
	}

	events, err := history.Events(run)
	if err != nil {
		return fmt.Errorf("failed to read history: %w", err)
	}

	if len(events) == 0 {
		logInfo("No events found for run %s", run)
		return nil
	}

	out := cmd.OutOrStdout()
	for _, e := range events {
		if historyJSON {
			data, err := json.Marshal(e)
			if err != nil {
				return fmt.Errorf("failed to marshal event: %w", err)
			}
			fmt.Fprintln(out, string(data))
			continue
		}

		ts := e.Timestamp.Local().Format("2006-01-02 15:04:05")
		line := fmt.Sprintf("[%s] %-6s #%d", ts, e.Type, e.Iteration)
		if e.Session != "" {
			line += " " + e.Session
		}
		if e.Details != "" {
			line += " (" + e.Details + ")"
		}
		fmt.Fprintln(out, line)
	}

	return nil
}
