package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Container is a node that owns child tests
type Container interface {
	Test
	Children() []Test
}

// TestSuite runs an ordered list of child tests
type TestSuite struct {
	TestInfo

	Tests           []Test
	FixtureSetUp    []Hook
	FixtureTearDown []Hook
}

// NewTestSuite creates an empty runnable suite
func NewTestSuite(name, fullName string) *TestSuite {
	return &TestSuite{
		TestInfo: TestInfo{
			TestName: TestName{
				Name:     name,
				FullName: fullName,
				TestID:   uuid.New(),
			},
			RunState:   RunStateRunnable,
			Properties: make(map[string]any),
		},
	}
}

// Add appends a child test and points its parent at the suite
func (s *TestSuite) Add(test Test) {
	test.Info().Parent = s
	s.Tests = append(s.Tests, test)
}

// Children returns the child tests in run order
func (s *TestSuite) Children() []Test {
	return s.Tests
}

// Run runs every child passing filter and aggregates their results
func (s *TestSuite) Run(listener EventListener, filter Filter) *TestResult {
	if listener == nil {
		listener = NullListener{}
	}

	result := NewTestResult(s)
	listener.SuiteStarted(s.TestName)
	start := time.Now()

	s.run(result, listener, filter)

	result.Duration = time.Since(start)
	listener.SuiteFinished(result)
	return result
}

func (s *TestSuite) run(result *TestResult, listener EventListener, filter Filter) {
	switch s.RunState {
	case RunStateNotRunnable:
		result.SetResult(ResultStateNotRunnable, s.IgnoreReason, "", FailureSiteTest)
		s.markChildren(result, filter, ResultStateNotRunnable, s.IgnoreReason)
		return
	case RunStateIgnored:
		result.SetResult(ResultStateIgnored, s.IgnoreReason, "", FailureSiteTest)
		s.markChildren(result, filter, ResultStateIgnored, s.IgnoreReason)
		return
	case RunStateSkipped:
		result.SetResult(ResultStateSkipped, s.IgnoreReason, "", FailureSiteTest)
		s.markChildren(result, filter, ResultStateSkipped, s.IgnoreReason)
		return
	}

	if err := s.runHooks(s.FixtureSetUp); err != nil {
		recordError(result, err, FailureSiteSetUp)
		s.markChildren(result, filter, result.State, fmt.Sprintf("Fixture set-up failed in %s: %v", s.Name, err))
		return
	}

	for _, test := range s.Tests {
		if !Included(test, filter) {
			continue
		}
		result.AddResult(test.Run(listener, filter))
	}

	if err := s.runHooks(s.FixtureTearDown); err != nil && !result.State.IsFailure() {
		recordError(result, err, FailureSiteTearDown)
	}
}

// markChildren records a result for every child that never ran
func (s *TestSuite) markChildren(result *TestResult, filter Filter, state ResultState, message string) {
	for _, test := range s.Tests {
		if !Included(test, filter) {
			continue
		}
		child := NewTestResult(test)
		child.SetResult(state, message, "", FailureSiteParent)
		result.Children = append(result.Children, child)
	}
}

func (s *TestSuite) runHooks(hooks []Hook) error {
	for _, hook := range hooks {
		if _, err := protect(func() (any, error) {
			return nil, hook(s.Fixture)
		}); err != nil {
			return err
		}
	}
	return nil
}

// Included reports whether test, or any test below it, passes filter
func Included(test Test, filter Filter) bool {
	if filter == nil {
		return true
	}
	if container, ok := test.(Container); ok {
		for _, child := range container.Children() {
			if Included(child, filter) {
				return true
			}
		}
		return false
	}
	return filter.Pass(test)
}

// TestFixture is the suite built from a Fixture definition
type TestFixture struct {
	TestSuite

	Definition *Fixture
}

// NewTestFixture creates an empty suite for the fixture definition
func NewTestFixture(def *Fixture) *TestFixture {
	f := &TestFixture{
		TestSuite:  *NewTestSuite(def.Name, def.FullName()),
		Definition: def,
	}
	f.Categories = append(f.Categories, def.Categories...)
	f.FixtureSetUp = def.FixtureSetUp
	f.FixtureTearDown = def.FixtureTearDown
	return f
}

// Add appends a child test and points its parent at the fixture
func (f *TestFixture) Add(test Test) {
	test.Info().Parent = f
	f.Tests = append(f.Tests, test)
}

// ParameterizedMethodSuite groups the test cases generated from one method
type ParameterizedMethodSuite struct {
	TestSuite

	Method *Method
}

// NewParameterizedMethodSuite creates an empty group for method
func NewParameterizedMethodSuite(method *Method, fullName string) *ParameterizedMethodSuite {
	return &ParameterizedMethodSuite{
		TestSuite: *NewTestSuite(method.Name, fullName),
		Method:    method,
	}
}

// Add appends a generated case and points its parent at the group
func (p *ParameterizedMethodSuite) Add(test Test) {
	test.Info().Parent = p
	p.Tests = append(p.Tests, test)
}
