package discovery

import (
	"path/filepath"
	"strings"

	"itd/internal/domain"
)

// Filter filters tests by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters test names by pattern using wildcard matching
// Supports patterns like "*.TestAdd" or "*Divide*"
func (f *Filter) FilterByName(names []string, pattern string) []string {
	if pattern == "" {
		return names
	}

	var filtered []string
	for _, name := range names {
		if Match(name, pattern) {
			filtered = append(filtered, name)
		}
	}
	return filtered
}

// Match reports whether a test name matches pattern. Patterns without
// wildcards match by substring; "*" and "?" follow filepath.Match, with a
// looser fallback where every "*"-separated part must appear in the name.
func Match(name, pattern string) bool {
	if pattern == "" {
		return true
	}

	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}

	// Test names are dotted, so filepath.Match treats them as one segment
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if !strings.Contains(pattern, "*") {
		return false
	}

	hasNonEmptyPart := false
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		hasNonEmptyPart = true
		if !strings.Contains(name, part) {
			return false
		}
	}
	return hasNonEmptyPart
}

// NameFilter is a domain.Filter selecting tests whose full name matches a pattern
type NameFilter struct {
	Pattern string
}

// NewNameFilter returns a filter for pattern, or nil when pattern is empty
func NewNameFilter(pattern string) domain.Filter {
	if pattern == "" {
		return nil
	}
	return &NameFilter{Pattern: pattern}
}

// Pass reports whether the test's full name matches the pattern
func (f *NameFilter) Pass(test domain.Test) bool {
	return Match(test.Info().FullName, f.Pattern)
}
