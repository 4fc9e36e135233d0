package parser

import (
	"strings"

	"itd/internal/domain"
)

// Counts tallies the leaf results of a run
type Counts struct {
	Total        int
	Passed       int
	Failed       int
	Inconclusive int
	Skipped      int
	Reclassified int
}

// Add accumulates other into c
func (c *Counts) Add(other Counts) {
	c.Total += other.Total
	c.Passed += other.Passed
	c.Failed += other.Failed
	c.Inconclusive += other.Inconclusive
	c.Skipped += other.Skipped
	c.Reclassified += other.Reclassified
}

// ResultParser reads test case outcomes out of result trees
type ResultParser struct{}

var _ Parser = (*ResultParser)(nil)

// NewResultParser creates a new ResultParser
func NewResultParser() *ResultParser {
	return &ResultParser{}
}

// ParseTestCounts counts the leaf results under result by state
func (p *ResultParser) ParseTestCounts(result *domain.TestResult) Counts {
	var counts Counts
	for _, leaf := range result.Leaves() {
		counts.Total++
		if leaf.Reclassified() {
			counts.Reclassified++
		}

		switch {
		case leaf.State == domain.ResultStateSuccess:
			counts.Passed++
		case leaf.State.IsFailure(), leaf.State == domain.ResultStateNotRunnable:
			counts.Failed++
		case leaf.State == domain.ResultStateInconclusive:
			counts.Inconclusive++
		default:
			counts.Skipped++
		}
	}
	return counts
}

// ParseFailure returns a record for every leaf that failed, errored or was
// inconclusive, including failures reported as inconclusive
func (p *ResultParser) ParseFailure(result *domain.TestResult) []domain.TestFailure {
	var failures []domain.TestFailure
	for _, leaf := range result.Leaves() {
		if !needsAttention(leaf.State) {
			continue
		}

		failures = append(failures, domain.TestFailure{
			TestName:      leaf.Name,
			FullName:      leaf.FullName,
			State:         leaf.State,
			OriginalState: leaf.OriginalState,
			Reference:     leaf.Reference,
			Site:          leaf.Site,
			StackTrace:    splitStackTrace(leaf.StackTrace),
			Message:       leaf.Message,
		})
	}
	return failures
}

func needsAttention(state domain.ResultState) bool {
	return state.IsFailure() ||
		state == domain.ResultStateInconclusive ||
		state == domain.ResultStateNotRunnable
}

func splitStackTrace(trace string) []string {
	if trace == "" {
		return []string{}
	}

	var lines []string
	for _, line := range strings.Split(trace, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
