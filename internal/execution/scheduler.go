package execution

import "itd/internal/domain"

// Scheduler distributes fixtures across workers
type Scheduler interface {
	Schedule(fixtures []*domain.Fixture, workerCount int) [][]*domain.Fixture
}

// RoundRobinScheduler distributes fixtures evenly across workers
type RoundRobinScheduler struct{}

// NewRoundRobinScheduler creates a new RoundRobinScheduler
func NewRoundRobinScheduler() *RoundRobinScheduler {
	return &RoundRobinScheduler{}
}

// Schedule distributes fixtures evenly across workers using round-robin
func (s *RoundRobinScheduler) Schedule(fixtures []*domain.Fixture, workerCount int) [][]*domain.Fixture {
	if workerCount <= 0 {
		workerCount = 1
	}

	distribution := make([][]*domain.Fixture, workerCount)
	for i := range distribution {
		distribution[i] = make([]*domain.Fixture, 0)
	}

	for i, fixture := range fixtures {
		workerIndex := i % workerCount
		distribution[workerIndex] = append(distribution[workerIndex], fixture)
	}

	return distribution
}
