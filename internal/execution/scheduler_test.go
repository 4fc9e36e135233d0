package execution

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"itd/internal/domain"
)

func fixtures(n int) []*domain.Fixture {
	out := make([]*domain.Fixture, n)
	for i := range out {
		out[i] = &domain.Fixture{Name: fmt.Sprintf("Fixture%d", i)}
	}
	return out
}

func TestRoundRobinScheduler_Schedule(t *testing.T) {
	tests := []struct {
		name     string
		fixtures int
		workers  int
		sizes    []int
	}{
		{name: "even", fixtures: 4, workers: 2, sizes: []int{2, 2}},
		{name: "uneven", fixtures: 5, workers: 3, sizes: []int{2, 2, 1}},
		{name: "more workers than fixtures", fixtures: 1, workers: 3, sizes: []int{1, 0, 0}},
		{name: "zero workers means one", fixtures: 3, workers: 0, sizes: []int{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := fixtures(tt.fixtures)
			distribution := NewRoundRobinScheduler().Schedule(input, tt.workers)

			var sizes []int
			for _, assigned := range distribution {
				sizes = append(sizes, len(assigned))
			}
			assert.Equal(t, tt.sizes, sizes)
			assert.Same(t, input[0], distribution[0][0])
		})
	}
}
