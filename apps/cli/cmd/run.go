package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/restsuite/restsuite/packages/config"
	"github.com/restsuite/restsuite/packages/framework"
	httpx "github.com/restsuite/restsuite/packages/http"
	"github.com/restsuite/restsuite/packages/history"
	"github.com/restsuite/restsuite/packages/loader"
	"github.com/restsuite/restsuite/packages/output"
	"github.com/restsuite/restsuite/packages/runner"
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <file|directory>...",
	Short: "Run test suites from .suite.yaml files",
	Long: `Run test suites defined in .suite.yaml files.

Examples:
  restsuite run api.suite.yaml
  restsuite run ./tests/
  restsuite run ./tests/ --parallel
  restsuite run api.suite.yaml --var base=http://localhost:3000
  restsuite run ./tests/ --watch
  restsuite run ./tests/ -o json --output-file results.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCommand,
}

// WatchDebounceDelay is the debounce delay for file watch events
const WatchDebounceDelay = 300 * time.Millisecond

var (
	configFlag     string
	outputFlag     string
	outputFileFlag string
	noColorFlag    bool
	quietFlag      bool
	verboseFlag    bool
	parallelFlag   bool
	watchFlag      bool
	varFlags       []string
	timeoutFlag    string
	proxyFlag      string
	insecureFlag   bool
	historyFlag    string
	noHistoryFlag  bool
)

func init() {
	runCmd.Flags().StringVar(&configFlag, "config", getEnvString("RESTSUITE_CONFIG", ""), "Path to config file (env: RESTSUITE_CONFIG)")
	runCmd.Flags().StringVarP(&outputFlag, "output", "o", getEnvString("RESTSUITE_OUTPUT", "console"), "Output format: console, json (env: RESTSUITE_OUTPUT)")
	runCmd.Flags().StringVar(&outputFileFlag, "output-file", getEnvString("RESTSUITE_OUTPUT_FILE", ""), "Write output to file (default: stdout) (env: RESTSUITE_OUTPUT_FILE)")
	runCmd.Flags().BoolVar(&noColorFlag, "no-color", getEnvBool("RESTSUITE_NO_COLOR", false), "Disable colored output (env: RESTSUITE_NO_COLOR)")
	runCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", getEnvBool("RESTSUITE_QUIET", false), "Suppress all output except errors (env: RESTSUITE_QUIET)")
	runCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Verbose output")
	runCmd.Flags().BoolVarP(&parallelFlag, "parallel", "p", getEnvBool("RESTSUITE_PARALLEL", false), "Run files in parallel (env: RESTSUITE_PARALLEL)")
	runCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch files for changes and re-run suites")
	runCmd.Flags().StringArrayVar(&varFlags, "var", nil, "Set a suite variable (key=value), repeatable")
	runCmd.Flags().StringVar(&timeoutFlag, "timeout", getEnvString("RESTSUITE_TIMEOUT", ""), "Request timeout (e.g., 30s, 1m) (env: RESTSUITE_TIMEOUT)")
	runCmd.Flags().StringVar(&proxyFlag, "proxy", getEnvString("RESTSUITE_PROXY", ""), "Proxy URL for HTTP requests (env: RESTSUITE_PROXY)")
	runCmd.Flags().BoolVarP(&insecureFlag, "insecure", "k", getEnvBool("RESTSUITE_INSECURE", false), "Disable SSL certificate validation (env: RESTSUITE_INSECURE)")
	runCmd.Flags().StringVar(&historyFlag, "history", getEnvString("RESTSUITE_HISTORY", ""), "Record results to this SQLite database (env: RESTSUITE_HISTORY)")
	runCmd.Flags().BoolVar(&noHistoryFlag, "no-history", false, "Skip history recording even if configured")
}

// Environment variable helpers
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

func runCommand(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig()
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		os.Exit(ExitConfigError)
	}

	files, err := collectFiles(args)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		os.Exit(ExitUsageError)
	}
	if len(files) == 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: no %s files found\n", loader.Suffix)
		os.Exit(ExitUsageError)
	}

	var outWriter io.Writer = cmd.OutOrStdout()
	if outputFileFlag != "" {
		f, err := os.Create(outputFileFlag)
		if err != nil {
			return fmt.Errorf("cannot create output file: %w", err)
		}
		defer f.Close()
		outWriter = f
	}
	if quietFlag {
		outWriter = io.Discard
	}

	vars, err := collectVars(cfg)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		os.Exit(ExitUsageError)
	}

	l := loader.New()
	client := httpx.NewClient(cfg.ClientOptions()...)
	parallel := parallelFlag || cfg.GetParallel()

	var rep output.Reporter
	o := runner.New(l, client,
		runner.WithVars(vars),
		runner.WithOutput(outWriter),
		runner.WithReporterFactory(func(w io.Writer) framework.Reporter {
			rep, err = output.New(strings.ToLower(outputFlag), w, noColorFlag || quietFlag)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				os.Exit(ExitUsageError)
			}
			return rep
		}))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runOnce := func() (*runner.AggregateStats, error) {
		agg, err := o.Run(ctx, files, parallel, nil)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			return nil, err
		}
		rep.Summary(agg)
		recordHistory(cmd, cfg, agg, parallel)
		return agg, nil
	}

	agg, err := runOnce()

	if !watchFlag {
		if err != nil {
			os.Exit(ExitParseError)
		}
		if agg.Failed() {
			os.Exit(ExitTestFailure)
		}
		return nil
	}

	return watchAndRerun(ctx, cmd, l, files, runOnce)
}

func loadRunConfig() (*config.Config, error) {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return nil, err
	}

	override := &config.Config{Proxy: proxyFlag, History: historyFlag}
	if insecureFlag {
		override.ValidateSSL = config.BoolPtr(false)
	}
	if timeoutFlag != "" {
		d, err := time.ParseDuration(timeoutFlag)
		if err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", timeoutFlag, err)
		}
		override.Timeout = int(d.Milliseconds())
	}
	return cfg.Merge(override), nil
}

func collectFiles(args []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	for _, arg := range args {
		found, err := loader.Discover(arg)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			if !seen[f] {
				seen[f] = true
				files = append(files, f)
			}
		}
	}
	return files, nil
}

func collectVars(cfg *config.Config) (map[string]any, error) {
	vars := make(map[string]any, len(cfg.Vars)+len(varFlags)+1)
	for k, v := range cfg.Vars {
		vars[k] = v
	}
	if cfg.BaseURL != "" {
		vars["base"] = cfg.BaseURL
	}
	for _, kv := range varFlags {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --var %q, expected key=value", kv)
		}
		vars[key] = value
	}
	return vars, nil
}

func recordHistory(cmd *cobra.Command, cfg *config.Config, agg *runner.AggregateStats, parallel bool) {
	if noHistoryFlag || cfg.History == "" {
		return
	}

	store, err := history.Open(cfg.History)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: history disabled: %v\n", err)
		return
	}
	defer store.Close()

	if _, err := store.Record(cmd.Context(), agg, parallel); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: could not record run: %v\n", err)
	}
}

func watchAndRerun(ctx context.Context, cmd *cobra.Command, l *loader.Loader, files []string, runOnce func() (*runner.AggregateStats, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool)
	for _, file := range files {
		dir := filepath.Dir(file)
		if !watched[dir] {
			if err := watcher.Add(dir); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: cannot watch %s: %v\n", dir, err)
			}
			watched[dir] = true
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n\n")

	var debounce *time.Timer
	rerun := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) || !strings.HasSuffix(event.Name, loader.Suffix) {
				continue
			}

			l.Invalidate(event.Name)
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(WatchDebounceDelay, func() {
				select {
				case rerun <- struct{}{}:
				default:
				}
			})

		case <-rerun:
			if _, err := runOnce(); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nWatching for changes... (press Ctrl+C to stop)\n\n")

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watcher error: %v\n", err)
		}
	}
}
