package commands

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"itd/internal/cli"
	"itd/internal/config"
	"itd/internal/decorator"
	"itd/internal/discovery"
	"itd/internal/execution"
	"itd/internal/host"
	"itd/internal/metrics"
	"itd/internal/parser"
	"itd/internal/registry"
	"itd/internal/storage"
	"itd/internal/ui"
)

// Commands holds all CLI commands
type Commands struct {
	Run    *RunCommand
	List   *ListCommand
	Report *ReportCommand
}

// NewCommands creates all commands with dependencies. The host is loaded
// with the inconclusive decorator before any fixture is built.
func NewCommands(cfg *config.Config, reg *registry.Registry, log *logrus.Logger) *Commands {
	collector := metrics.NewCollector()

	h := host.New(log)
	h.Load(decorator.New(
		decorator.WithLogger(log),
		decorator.WithRecorder(collector),
	))

	filter := discovery.NewFilter()
	runner := execution.NewRunner(cfg, h, collector, log)
	scheduler := execution.NewRoundRobinScheduler()
	resultParser := parser.NewResultParser()
	executor := execution.NewWorkerPool(cfg, runner, scheduler, resultParser, log)
	jsonStorage := storage.NewJSONStorage(cfg)
	formatter := ui.NewFormatter()
	errorViewer := ui.NewErrorViewer(jsonStorage)

	return &Commands{
		Run:    NewRunCommand(cfg, reg, filter, executor, resultParser, jsonStorage, formatter, collector, log),
		List:   NewListCommand(cfg, reg, h, formatter, log),
		Report: NewReportCommand(jsonStorage, errorViewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config, log *logrus.Logger) {
	// Load config once flags are parsed; later sources win over earlier ones
	loadConfig := func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(flags.ToConfigFlags())
		if err != nil {
			return err
		}
		*cfg = *loaded
		cli.SetLevel(log, cfg.LogLevel)
		return nil
	}

	rootCmd.PersistentFlags().StringVar(&flags.ConfigFile, "config", "", "Path to the YAML config file (default ./itd.yaml when present)")
	rootCmd.PersistentFlags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable debug logging")

	// Run command
	runCmd := &cobra.Command{
		Use:     "run",
		Short:   "Run the registered tests in parallel",
		Long:    "Build every registered fixture, run it with parallel workers and report failing tests marked inconclusive as inconclusive",
		RunE:    c.Run.Execute,
		PreRunE: loadConfig,
	}
	runCmd.Flags().IntVarP(&flags.Processors, "processors", "p", 0, "Number of workers to use (default from config)")
	runCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g., '*Divide*')")
	runCmd.Flags().BoolVar(&flags.FailFast, "fail-fast", false, "Stop handing out fixtures after the first failure")
	runCmd.Flags().StringVar(&flags.MetricsFile, "metrics-file", "", "Write run metrics in the Prometheus text format to this file")
	rootCmd.AddCommand(runCmd)

	// List command
	listCmd := &cobra.Command{
		Use:     "list",
		Short:   "List registered tests",
		Long:    "Build and list every registered fixture without running it",
		RunE:    c.List.Execute,
		PreRunE: loadConfig,
	}
	listCmd.Flags().StringVarP(&flags.NameFilter, "filter", "f", "", "Filter tests by name pattern (supports wildcards, e.g., '*Divide*')")
	listCmd.Flags().BoolVarP(&flags.TestCases, "test-cases", "c", false, "List test cases instead of fixtures")
	listCmd.Flags().BoolVar(&flags.OnlyMarked, "marked", false, "List only tests marked inconclusive")
	rootCmd.AddCommand(listCmd)

	// Report command
	reportCmd := &cobra.Command{
		Use:     "report",
		Short:   "View failing and inconclusive tests interactively",
		Long:    "Display the failing and inconclusive tests of the last run in an interactive viewer",
		RunE:    c.Report.Execute,
		PreRunE: loadConfig,
	}
	rootCmd.AddCommand(reportCmd)
}
