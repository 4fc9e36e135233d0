package execution

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"itd/internal/config"
	"itd/internal/domain"
	"itd/internal/parser"
	"itd/internal/ui"
)

// WorkerPool manages a pool of workers for parallel fixture execution
type WorkerPool struct {
	config    *config.Config
	runner    *Runner
	scheduler Scheduler
	progress  *ui.ProgressBar
	parser    *parser.ResultParser
	log       logrus.FieldLogger
}

var _ Executor = (*WorkerPool)(nil)

// NewWorkerPool creates a new WorkerPool
func NewWorkerPool(cfg *config.Config, runner *Runner, scheduler Scheduler, resultParser *parser.ResultParser, log logrus.FieldLogger) *WorkerPool {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &WorkerPool{
		config:    cfg,
		runner:    runner,
		scheduler: scheduler,
		parser:    resultParser,
		log:       log,
	}
}

// SetProgress sets the progress bar for the worker pool
func (wp *WorkerPool) SetProgress(progress *ui.ProgressBar) {
	wp.progress = progress
}

// Execute executes fixtures in parallel, stopping early when fail-fast is configured
func (wp *WorkerPool) Execute(fixtures []*domain.Fixture) ([]*domain.TestResult, time.Duration, error) {
	return wp.ExecuteWithOptions(fixtures, wp.config.Flags.FailFast)
}

// ExecuteWithOptions executes fixtures with optional fail-fast (stop on first failure).
// Inconclusive outcomes never count as failures.
func (wp *WorkerPool) ExecuteWithOptions(fixtures []*domain.Fixture, failFast bool) ([]*domain.TestResult, time.Duration, error) {
	if len(fixtures) == 0 {
		return nil, 0, nil
	}
	if !failFast {
		return wp.executeAll(fixtures)
	}
	return wp.executeFailFast(fixtures)
}

// tally aggregates worker output under a single lock
type tally struct {
	mu        sync.Mutex
	completed int
	counts    parser.Counts
	results   []*domain.TestResult
	errs      []error
}

func (wp *WorkerPool) workerCount() int {
	if wp.config.Processors <= 0 {
		return 1
	}
	return wp.config.Processors
}

// record stores the outcome of one fixture and reports whether it failed
func (wp *WorkerPool) record(t *tally, result *domain.TestResult, err error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.completed++
	if err != nil {
		t.errs = append(t.errs, err)
		wp.log.WithError(err).Error("Failed to build fixture")
	} else {
		t.results = append(t.results, result)
		t.counts.Add(wp.parser.ParseTestCounts(result))
	}

	if wp.progress != nil {
		wp.progress.Update(t.completed, t.counts)
	}
	return err != nil || result.State.IsFailure()
}

func (wp *WorkerPool) finish(t *tally, startTime time.Time) ([]*domain.TestResult, time.Duration, error) {
	if wp.progress != nil {
		wp.progress.Finish()
	}

	sort.Slice(t.results, func(i, j int) bool {
		return t.results[i].FullName < t.results[j].FullName
	})
	return t.results, time.Since(startTime), errors.Join(t.errs...)
}

// executeAll runs every fixture, each worker taking its scheduled share
func (wp *WorkerPool) executeAll(fixtures []*domain.Fixture) ([]*domain.TestResult, time.Duration, error) {
	var t tally
	startTime := time.Now()
	distribution := wp.scheduler.Schedule(fixtures, wp.workerCount())

	var wg sync.WaitGroup
	for i, assigned := range distribution {
		wg.Add(1)
		go func(workerID int, assigned []*domain.Fixture) {
			defer wg.Done()
			for _, fixture := range assigned {
				result, err := wp.runner.Run(fixture, workerID)
				wp.record(&t, result, err)
			}
		}(i+1, assigned)
	}
	wg.Wait()

	return wp.finish(&t, startTime)
}

// executeFailFast runs fixtures and stops handing out work after the first failure.
func (wp *WorkerPool) executeFailFast(fixtures []*domain.Fixture) ([]*domain.TestResult, time.Duration, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	queue := make(chan *domain.Fixture)
	go func() {
		defer close(queue)
		for _, fixture := range fixtures {
			select {
			case <-ctx.Done():
				return
			case queue <- fixture:
			}
		}
	}()

	var t tally
	startTime := time.Now()

	var wg sync.WaitGroup
	for i := 1; i <= wp.workerCount(); i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for fixture := range queue {
				if ctx.Err() != nil {
					continue
				}
				result, err := wp.runner.Run(fixture, workerID)
				if wp.record(&t, result, err) {
					wp.log.WithField("fixture", fixture.FullName()).Info("Stopping after first failure")
					cancel()
				}
			}
		}(i)
	}
	wg.Wait()

	return wp.finish(&t, startTime)
}
