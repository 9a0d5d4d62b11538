package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	httpx "github.com/restsuite/restsuite/packages/http"
	"github.com/restsuite/restsuite/packages/loader"
	"github.com/restsuite/restsuite/packages/suite"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file|directory>...",
	Short: "Check suite files for errors without executing them",
	Long: `Parse, validate and compile suite files, reporting any errors.

This catches YAML syntax errors, malformed actions, unknown expectation
names and hook/test ordering problems before a run.`,
	Args: cobra.MinimumNArgs(1),
	RunE: validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		os.Exit(ExitUsageError)
	}

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	client := httpx.NewClient()
	failed := 0
	for _, path := range files {
		if err := validateFile(path, client); err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %v\n", red("✗"), path, err)
			failed++
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", green("✓"), path)
	}

	if failed > 0 {
		os.Exit(ExitParseError)
	}
	return nil
}

func validateFile(path string, client *httpx.Client) error {
	f, err := loader.Parse(path)
	if err != nil {
		return err
	}

	// Compile and classify to catch errors the schema cannot express.
	for _, def := range f.Suites {
		ec := suite.NewExecContext(nil)
		actions, err := loader.CompileSuite(def, filepath.Dir(path), client, ec)
		if err != nil {
			return err
		}
		if _, err := suite.Classify(actions); err != nil {
			return fmt.Errorf("suite %q: %w", def.Name, err)
		}
	}
	return nil
}
