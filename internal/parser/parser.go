package parser

import "itd/internal/domain"

// Parser extracts failures from a result tree
type Parser interface {
	ParseFailure(result *domain.TestResult) []domain.TestFailure
}
