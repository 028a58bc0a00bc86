package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/errors"
	"github.com/firefly-engineering/firefly-forage/packages/forage-routes/internal/hostname"
)

var normalizeCmd = &cobra.Command{
	Use:   "normalize <url>...",
	Short: "Print the [ip-add] entries for URLs",
	Example: `  forage-routes normalize "www.Example.com/path"
  *.example.com`,
	Args: cobra.MinimumNArgs(1),
	RunE: runNormalize,
}

var normalizeBare bool

func init() {
	normalizeCmd.Flags().BoolVar(&normalizeBare, "bare", false, "Print hostnames without the wildcard")
	rootCmd.AddCommand(normalizeCmd)
}

func runNormalize(cmd *cobra.Command, args []string) error {
	valid := 0
	for _, raw := range args {
		host, err := hostname.Normalize(raw)
		if err != nil {
			logWarning("Skipping %v", err)
			continue
		}
		valid++
		if normalizeBare {
			fmt.Fprintln(cmd.OutOrStdout(), host)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), hostname.Wildcard(host))
		}
	}

	if valid == 0 {
		return errors.NoValidHosts(len(args))
	}
	return nil
}
