package domain

import "github.com/google/uuid"

// TestName identifies a test within a run
type TestName struct {
	Name     string    // Short name, e.g. "TestAdd" or "TestAdd(1,2)"
	FullName string    // Fixture-qualified name
	RunnerID int       // Identifier of the builder that created the test
	TestID   uuid.UUID // Unique per constructed test
}

// RunState tells whether a test can be executed
type RunState string

const (
	RunStateRunnable    RunState = "runnable"
	RunStateNotRunnable RunState = "not_runnable"
	RunStateIgnored     RunState = "ignored"
	RunStateSkipped     RunState = "skipped"
)

// TestInfo holds the metadata shared by every kind of test node
type TestInfo struct {
	TestName

	Parent       Test // Non-owning back reference, nil for roots
	Fixture      any  // Fixture instance passed to hooks and bodies
	Categories   []string
	Description  string
	IgnoreReason string
	RunState     RunState
	Properties   map[string]any
}

// Info returns the node metadata
func (i *TestInfo) Info() *TestInfo {
	return i
}

// Test is a node the host knows how to run
type Test interface {
	Info() *TestInfo
	Run(listener EventListener, filter Filter) *TestResult
}

// EventListener receives notifications while tests run
type EventListener interface {
	TestStarted(name TestName)
	TestFinished(result *TestResult)
	SuiteStarted(name TestName)
	SuiteFinished(result *TestResult)
}

// Filter selects which tests run
type Filter interface {
	Pass(test Test) bool
}

// NullListener ignores every event
type NullListener struct{}

func (NullListener) TestStarted(TestName)      {}
func (NullListener) TestFinished(*TestResult)  {}
func (NullListener) SuiteStarted(TestName)     {}
func (NullListener) SuiteFinished(*TestResult) {}

// Hook is a set-up or tear-down step run against the fixture instance
type Hook func(fixture any) error

// TestAction runs around a test, at test or suite scope
type TestAction interface {
	BeforeTest(test Test)
	AfterTest(test Test)
}

// TestCase represents a single test case within a fixture, as listed by the CLI
type TestCase struct {
	Name      string // Test name
	FullName  string // Fixture-qualified name
	Reference string // Inconclusive marker reference, if any
}
