package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/restsuite/restsuite/packages/config"
	"github.com/spf13/cobra"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new restsuite project",
	Long: `Initialize a new restsuite project in the current directory.

This creates:
  - restsuite.yaml       - Configuration file
  - example.suite.yaml   - Example suite file

Examples:
  restsuite init
  restsuite init --force`,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	configFile := filepath.Join(cwd, "restsuite.yaml")
	exampleFile := filepath.Join(cwd, "example.suite.yaml")

	if !forceInit {
		for _, f := range []string{configFile, exampleFile} {
			if _, err := os.Stat(f); err == nil {
				return fmt.Errorf("file already exists: %s (use --force to overwrite)", f)
			}
		}
	}

	cfg := config.Default()
	cfg.BaseURL = "http://localhost:3000"
	cfg.Headers = map[string]string{"User-Agent": "restsuite/1.0"}
	if err := cfg.Save(configFile); err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

	exampleContent := `name: example
suites:
  - name: health
    actions:
      - test:
          name: API is up
          request:
            method: GET
            url: "{{base}}/health"
          expect:
            status: 200

  - name: users
    actions:
      - set:
          userName: Test User
      - test:
          name: create a user
          request:
            method: POST
            url: "{{base}}/users"
            body:
              name: "{{userName}}"
          capture:
            userId: body.id
          expect:
            status: 201
      - test:
          name: fetch the created user
          request:
            method: GET
            url: "{{base}}/users/{{userId}}"
          expect:
            status: 200
            fields:
              name: Test User
`
	if err := os.WriteFile(exampleFile, []byte(exampleContent), 0o644); err != nil {
		return fmt.Errorf("create example file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", exampleFile)

	fmt.Fprintf(cmd.OutOrStdout(), "\nrestsuite project initialized!\n")
	fmt.Fprintf(cmd.OutOrStdout(), "Run 'restsuite run example.suite.yaml' to execute the example suites.\n")
	return nil
}
