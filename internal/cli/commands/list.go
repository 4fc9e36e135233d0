package commands

import (
	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"itd/internal/config"
	"itd/internal/decorator"
	"itd/internal/discovery"
	"itd/internal/domain"
	"itd/internal/host"
	"itd/internal/registry"
	"itd/internal/ui"
)

// ListCommand handles the list command
type ListCommand struct {
	config    *config.Config
	registry  *registry.Registry
	host      *host.Host
	formatter *ui.Formatter
	log       logrus.FieldLogger
}

// NewListCommand creates a new ListCommand
func NewListCommand(
	cfg *config.Config,
	reg *registry.Registry,
	h *host.Host,
	formatter *ui.Formatter,
	log logrus.FieldLogger,
) *ListCommand {
	return &ListCommand{
		config:    cfg,
		registry:  reg,
		host:      h,
		formatter: formatter,
		log:       log,
	}
}

// Execute runs the command
func (lc *ListCommand) Execute(cmd *cobra.Command, args []string) error {
	cases, err := lc.collect()
	if err != nil {
		return err
	}

	if len(cases) == 0 {
		color.Yellow("No tests found")
		return nil
	}

	lc.formatter.PrintTestList(cases, lc.config.Flags.TestCases)
	return nil
}

// collect builds every fixture and returns its test cases, as decorated.
// Fixtures are built in parallel, at most Processors at a time.
func (lc *ListCommand) collect() ([]domain.TestCase, error) {
	defs := lc.registry.Fixtures()
	built := make([][]domain.TestCase, len(defs))

	g := new(errgroup.Group)
	if lc.config.Processors > 0 {
		g.SetLimit(lc.config.Processors)
	}
	for i, def := range defs {
		i, def := i, def
		g.Go(func() error {
			fixture, err := host.NewBuilder(lc.host, i+1, lc.log).Build(def)
			if err != nil {
				return err
			}
			built[i] = testCases(fixture)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var cases []domain.TestCase
	for _, c := range built {
		cases = append(cases, c...)
	}

	var filtered []domain.TestCase
	for _, c := range cases {
		if !discovery.Match(c.FullName, lc.config.Flags.NameFilter) {
			continue
		}
		if lc.config.Flags.OnlyMarked && c.Reference == "" {
			continue
		}
		filtered = append(filtered, c)
	}
	return filtered, nil
}

// testCases walks a built test tree and returns its leaves in run order
func testCases(test domain.Test) []domain.TestCase {
	if container, ok := test.(domain.Container); ok {
		var cases []domain.TestCase
		for _, child := range container.Children() {
			cases = append(cases, testCases(child)...)
		}
		return cases
	}

	info := test.Info()
	c := domain.TestCase{Name: info.Name, FullName: info.FullName}
	if inconclusive, ok := test.(*decorator.InconclusiveTestCase); ok {
		c.Reference = inconclusive.Ticket
	}
	return []domain.TestCase{c}
}
