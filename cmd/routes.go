package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/app"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/routes"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Inspect and edit route files",
}

var routesShowCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print a route file with duplicates removed",
	Args:  cobra.ExactArgs(1),
	RunE:  runRoutesShow,
}

var routesAddCmd = &cobra.Command{
	Use:   "add <file> <section> <entry>...",
	Short: "Merge entries into a route file section",
	Example: `  forage-routes routes add routes.txt ip-add '*.cdn.example.com'
  forage-routes routes add routes.txt ip-block 203.0.113.7`,
	Args: cobra.MinimumNArgs(3),
	RunE: runRoutesAdd,
}

var routesShowSection string

func init() {
	routesShowCmd.Flags().StringVarP(&routesShowSection, "section", "s", "", "Only print the entries of this section")
	routesCmd.AddCommand(routesShowCmd)
	routesCmd.AddCommand(routesAddCmd)
	rootCmd.AddCommand(routesCmd)
}

func runRoutesShow(cmd *cobra.Command, args []string) error {
	path := args[0]
	fsys := app.Default.FS

	if !fsys.Exists(path) {
		return errors.RouteFileUnreadable(path, fmt.Errorf("no such file"))
	}
	rf, err := routes.Load(fsys, path)
	if err != nil {
		return err
	}

	if routesShowSection == "" {
		return rf.Encode(cmd.OutOrStdout())
	}
	if !rf.Has(routesShowSection) {
		return errors.ValidationError(fmt.Sprintf("route file %s has no [%s] section", path, routesShowSection))
	}
	for _, entry := range rf.Entries(routesShowSection) {
		fmt.Fprintln(cmd.OutOrStdout(), entry)
	}
	return nil
}

func runRoutesAdd(cmd *cobra.Command, args []string) error {
	path, section, entries := args[0], args[1], args[2:]
	fsys := app.Default.FS

	if !routes.ValidSection(section) {
		return errors.ValidationError(fmt.Sprintf("invalid section name %q", section))
	}
	for _, entry := range entries {
		if !routes.ValidEntry(entry) {
			return errors.ValidationError(fmt.Sprintf("invalid route entry %q", entry))
		}
	}

	rf, err := routes.Load(fsys, path)
	if err != nil {
		return err
	}
	added := rf.Merge(section, entries...)
	if err := routes.Save(fsys, path, rf); err != nil {
		return err
	}

	logSuccess("Added %d of %d entries to [%s] in %s", added, len(entries), section, path)
	return nil
}
