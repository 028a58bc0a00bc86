package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/netlog"
)

var scanCmd = &cobra.Command{
	Use:   "scan <session-id>",
	Short: "List the hosts a sandbox session was blocked from",
	Args:  cobra.ExactArgs(1),
	RunE:  runScan,
}

var (
	scanLogDir string
	scanJSON   bool
)

func init() {
	scanCmd.Flags().StringVar(&scanLogDir, "log-dir", "", "Scan this directory instead of the session's log directory")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Output the scan report as JSON")
	rootCmd.AddCommand(scanCmd)
}

// scanResult is the JSON form of a scan report.
type scanResult struct {
	Session string         `json:"session"`
	Dir     string         `json:"dir"`
	Files   []string       `json:"files"`
	Blocked []string       `json:"blocked"`
	Hosts   netlog.HostMap `json:"hosts"`
}

func runScan(cmd *cobra.Command, args []string) error {
	session := args[0]
	scanner := app.Default.Scanner()

	var report *netlog.Report
	if scanLogDir != "" {
		report = scanner.ScanDir(scanLogDir)
	} else {
		var err error
		report, err = scanner.Scan(session)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if scanJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(scanResult{
			Session: session,
			Dir:     report.Dir,
			Files:   nonNil(report.Files),
			Blocked: nonNil(report.Blocked),
			Hosts:   report.Hosts,
		})
	}

	if len(report.Files) == 0 {
		logInfo("No network logs found in %s", report.Dir)
		return nil
	}
	for _, entry := range report.Blocked {
		fmt.Fprintln(out, entry)
	}
	logInfo("%d blocked entries in %d log files", len(report.Blocked), len(report.Files))
	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
