package cmd

import (
	"fmt"
	"os"

	"github.com/restsuite/restsuite/packages/loader"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <file|directory>...",
	Short: "List suites and tests without executing them",
	Args:  cobra.MinimumNArgs(1),
	RunE:  listCommand,
}

func listCommand(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		os.Exit(ExitUsageError)
	}

	for _, path := range files {
		f, err := loader.Parse(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			os.Exit(ExitParseError)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", path)
		for _, s := range f.Suites {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", s.Name)
			for _, a := range s.Actions {
				if a.Test == nil {
					continue
				}
				marker := ""
				if a.Test.Skip {
					marker = " (skipped)"
				}
				if n := len(a.Test.Params); n > 0 {
					marker = fmt.Sprintf(" (%d cases)", n)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "    - %s%s\n", a.Test.Name, marker)
			}
		}
	}
	return nil
}
