package execution

import (
	"time"

	"itd/internal/domain"
)

// Executor executes fixtures and returns their results
type Executor interface {
	Execute(fixtures []*domain.Fixture) ([]*domain.TestResult, time.Duration, error)
}
