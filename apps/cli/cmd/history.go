package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/restsuite/restsuite/packages/config"
	"github.com/restsuite/restsuite/packages/history"
	"github.com/spf13/cobra"
)

var (
	historyLimitFlag int
	historyDBFlag    string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show results of past runs",
	Long: `List runs recorded to the history database, newest first.

Recording happens during 'restsuite run' when a history database is
configured (the history setting in restsuite.yaml or --history).`,
	RunE: historyCommand,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimitFlag, "limit", "n", getEnvInt("RESTSUITE_HISTORY_LIMIT", 10), "Number of runs to show (env: RESTSUITE_HISTORY_LIMIT)")
	historyCmd.Flags().StringVar(&historyDBFlag, "history", getEnvString("RESTSUITE_HISTORY", ""), "History database path (env: RESTSUITE_HISTORY)")
}

func historyCommand(cmd *cobra.Command, args []string) error {
	path := historyDBFlag
	if path == "" {
		cfg, err := config.Load("")
		if err != nil {
			return err
		}
		path = cfg.History
	}
	if path == "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: no history database configured\n")
		os.Exit(ExitConfigError)
	}

	store, err := history.Open(path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		os.Exit(ExitConfigError)
	}
	defer store.Close()

	entries, err := store.Recent(cmd.Context(), historyLimitFlag)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No recorded runs.\n")
		return nil
	}

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	for _, e := range entries {
		verdict := green("pass")
		if e.Failures > 0 {
			verdict = red("fail")
		}
		mode := "sequential"
		if e.Parallel {
			mode = "parallel"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s  %d/%d passed  %s  %s\n",
			e.Start.Local().Format("2006-01-02 15:04:05"), e.ID[:8], verdict,
			e.Passes, e.Tests, e.Duration, mode)
	}
	return nil
}
