package execution

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"itd/internal/config"
	"itd/internal/discovery"
	"itd/internal/domain"
	"itd/internal/host"
)

// ResultRecorder is told the final state of every test case
type ResultRecorder interface {
	RecordResult(state domain.ResultState)
}

// Runner builds and runs a single fixture
type Runner struct {
	config   *config.Config
	host     *host.Host
	recorder ResultRecorder
	log      logrus.FieldLogger
}

// NewRunner creates a new Runner building tests with the host's decorators
func NewRunner(cfg *config.Config, h *host.Host, recorder ResultRecorder, log logrus.FieldLogger) *Runner {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Runner{
		config:   cfg,
		host:     h,
		recorder: recorder,
		log:      log,
	}
}

// Run builds the fixture with runner id workerID and runs the tests
// selected by the configured name filter
func (r *Runner) Run(fixture *domain.Fixture, workerID int) (*domain.TestResult, error) {
	test, err := host.NewBuilder(r.host, workerID, r.log).Build(fixture)
	if err != nil {
		return nil, fmt.Errorf("worker %d: %w", workerID, err)
	}

	listener := &resultListener{
		recorder: r.recorder,
		log:      r.log.WithField("worker", workerID),
	}
	return test.Run(listener, discovery.NewNameFilter(r.config.Flags.NameFilter)), nil
}

// resultListener logs test events and forwards final states to the recorder
type resultListener struct {
	domain.NullListener

	recorder ResultRecorder
	log      logrus.FieldLogger
}

func (l *resultListener) TestStarted(name domain.TestName) {
	l.log.WithField("test", name.FullName).Debug("Test started")
}

func (l *resultListener) TestFinished(result *domain.TestResult) {
	fields := logrus.Fields{
		"test":     result.FullName,
		"state":    result.State,
		"duration": result.Duration,
	}
	if result.Reclassified() {
		fields["reference"] = result.Reference
	}
	l.log.WithFields(fields).Debug("Test finished")

	if l.recorder != nil {
		l.recorder.RecordResult(result.State)
	}
}
