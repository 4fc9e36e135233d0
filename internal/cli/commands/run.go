package commands

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"itd/internal/config"
	"itd/internal/discovery"
	"itd/internal/domain"
	"itd/internal/execution"
	"itd/internal/metrics"
	"itd/internal/parser"
	"itd/internal/registry"
	"itd/internal/storage"
	"itd/internal/ui"
)

// ErrTestsFailed is returned by run when at least one test case failed
var ErrTestsFailed = errors.New("one or more tests failed")

// RunCommand handles the run command
type RunCommand struct {
	config    *config.Config
	registry  *registry.Registry
	filter    *discovery.Filter
	executor  *execution.WorkerPool
	parser    *parser.ResultParser
	storage   storage.Storage
	formatter *ui.Formatter
	metrics   *metrics.Collector
	log       logrus.FieldLogger
}

// NewRunCommand creates a new RunCommand
func NewRunCommand(
	cfg *config.Config,
	reg *registry.Registry,
	filter *discovery.Filter,
	executor *execution.WorkerPool,
	parser *parser.ResultParser,
	st storage.Storage,
	formatter *ui.Formatter,
	collector *metrics.Collector,
	log logrus.FieldLogger,
) *RunCommand {
	return &RunCommand{
		config:    cfg,
		registry:  reg,
		filter:    filter,
		executor:  executor,
		parser:    parser,
		storage:   st,
		formatter: formatter,
		metrics:   collector,
		log:       log,
	}
}

// Execute runs the command
func (rc *RunCommand) Execute(cmd *cobra.Command, args []string) error {
	fixtures := rc.selectFixtures(rc.registry.Fixtures(), rc.config.Flags.NameFilter)
	if len(fixtures) == 0 {
		color.Yellow("No tests to execute")
		return nil
	}

	rc.log.WithFields(logrus.Fields{
		"fixtures": len(fixtures),
		"workers":  rc.config.Processors,
	}).Info("Starting test run")

	progressBar := ui.NewProgressBar(len(fixtures))
	rc.executor.SetProgress(progressBar)

	results, duration, err := rc.executor.Execute(fixtures)
	if err != nil {
		return err
	}

	var failures []domain.TestFailure
	for _, result := range results {
		failures = append(failures, rc.parser.ParseFailure(result)...)
	}

	output, err := rc.storage.Save(results, failures, duration, rc.config.Processors)
	if err != nil {
		return fmt.Errorf("failed to save test results: %w", err)
	}

	if path := rc.config.GetMetricsPath(); path != "" {
		if err := rc.metrics.WriteTextfile(path); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
		rc.log.WithField("path", path).Info("Wrote metrics")
	}

	rc.formatter.PrintMetaStats(output)

	if output.Meta.FailedTestCases > 0 {
		return ErrTestsFailed
	}
	return nil
}

// selectFixtures keeps the fixtures with a name or method matching pattern
func (rc *RunCommand) selectFixtures(fixtures []*domain.Fixture, pattern string) []*domain.Fixture {
	if pattern == "" {
		return fixtures
	}

	var selected []*domain.Fixture
	for _, fixture := range fixtures {
		names := []string{fixture.FullName()}
		for _, method := range fixture.Methods {
			names = append(names, fixture.FullName()+"."+method.Name)
		}
		if len(rc.filter.FilterByName(names, pattern)) > 0 {
			selected = append(selected, fixture)
		}
	}
	return selected
}
