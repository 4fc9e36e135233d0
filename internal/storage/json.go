package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"itd/internal/domain"
	"itd/internal/parser"
)

// Save writes a summary of the run and its non-passing tests to the configured JSON output file.
func (s *JSONStorage) Save(results []*domain.TestResult, failures []domain.TestFailure, duration time.Duration, workers int) (*domain.TestResultsOutput, error) {
	resultParser := parser.NewResultParser()
	var counts parser.Counts
	for _, r := range results {
		counts.Add(resultParser.ParseTestCounts(r))
	}

	if failures == nil {
		failures = []domain.TestFailure{}
	}

	output := &domain.TestResultsOutput{
		Meta: domain.TestResultsMeta{
			RunID:             uuid.NewString(),
			TotalFixtures:     len(results),
			TotalTestCases:    counts.Total,
			PassedTestCases:   counts.Passed,
			FailedTestCases:   counts.Failed,
			InconclusiveCases: counts.Inconclusive,
			SkippedTestCases:  counts.Skipped,
			ReclassifiedCases: counts.Reclassified,
			Duration:          duration.String(),
			DurationSeconds:   duration.Seconds(),
			Workers:           workers,
			Timestamp:         time.Now().Format(time.RFC3339),
		},
		Details: failures,
	}

	if err := s.SaveOutput(output); err != nil {
		return nil, err
	}
	return output, nil
}

// Load reads the last test results from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.TestResultsOutput, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read results file: %w", err)
	}
	var output domain.TestResultsOutput
	if err := json.Unmarshal(data, &output); err != nil {
		return nil, fmt.Errorf("parse results: %w", err)
	}
	return &output, nil
}

// SaveOutput writes the full output to the configured JSON file.
func (s *JSONStorage) SaveOutput(output *domain.TestResultsOutput) error {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}
	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}
	return nil
}
