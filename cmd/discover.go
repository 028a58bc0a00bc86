package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/audit"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/discover"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/logging"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/routes"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/tui"
)

var discoverCmd = &cobra.Command{
	Use:   "discover <url>...",
	Short: "Run the pages in a sandbox until their routes are complete",
	Long: `Discover the hosts a set of pages needs.

Every iteration writes the route file, runs the pages in the sandbox,
adds the hosts the sandbox blocked to [ip-add] and asks whether the pages
rendered correctly. Answer "y" to stop.

Without --output the route file is temporary and printed to stdout at
the end.`,
	Example: `  forage-routes discover https://example.com https://docs.example.com
  forage-routes discover -o routes.txt example.com
  forage-routes discover --resume 4f2a9c https://example.com`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDiscover,
}

var (
	discoverOutput       string
	discoverResume       string
	discoverBlockDefault string
)

func init() {
	discoverCmd.Flags().StringVarP(&discoverOutput, "output", "o", "", "Keep the route file at this path")
	discoverCmd.Flags().StringVar(&discoverResume, "resume", "", "Resume an existing sandbox session on the first run")
	discoverCmd.Flags().StringVar(&discoverBlockDefault, "block-default", "", "Fixed [ip-block] entry (default from config, 0.0.0.0)")
	rootCmd.AddCommand(discoverCmd)
}

func runDiscover(cmd *cobra.Command, args []string) error {
	a := app.Default
	if _, err := getRuntime(); err != nil {
		return err
	}

	// The route file owns stdout when it is streamed at the end.
	if discoverOutput == "" {
		restore := logging.RedirectUser(cmd.ErrOrStderr())
		defer restore()
	}

	block := discoverBlockDefault
	if block == "" {
		block = a.Config.Routes.BlockDefault
	}

	var runID string
	if a.History.Enabled() {
		runID = audit.NewRunID()
	}

	logging.Debug("starting discovery", "urls", len(args), "output", discoverOutput, "resume", discoverResume, "run", runID)

	outcome, err := a.Loop(runID, cmd.ErrOrStderr()).Run(cmd.Context(), discover.Options{
		URLs:         args,
		Destination:  discoverOutput,
		ResumeID:     discoverResume,
		BlockDefault: block,
	})
	if err != nil {
		if runID != "" {
			logInfo("Run history: forage-routes history %s", runID)
		}
		return err
	}

	fmt.Fprint(cmd.ErrOrStderr(), tui.FinalSummary(
		outcome.Iterations,
		len(outcome.Routes.Entries(routes.SectionAdd)),
		len(outcome.Routes.Entries(routes.SectionBlock)),
		outcome.Path))

	if len(outcome.Unapplied) > 0 {
		logWarning("Not added, found after the accepted run: %s", strings.Join(outcome.Unapplied, ", "))
	}
	if runID != "" {
		logInfo("Run history: forage-routes history %s", runID)
	}

	if outcome.Path == "" {
		return outcome.Routes.Encode(cmd.OutOrStdout())
	}

	logSuccess("Route file saved to %s", outcome.Path)
	logInfo("Last session: %s", outcome.Session)
	return nil
}
