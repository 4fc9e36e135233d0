package domain

import (
	"fmt"
	"reflect"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
)

// TestMethod is a single executable test case
type TestMethod struct {
	TestInfo

	Method             *Method
	BuilderError       error
	ExceptionProcessor *ExpectedErrorProcessor

	setUpMethods      []Hook
	tearDownMethods   []Hook
	actions           []TestAction
	suiteActions      []TestAction
	arguments         []any
	expectedResult    any
	hasExpectedResult bool
}

// ExecutionState is the configuration a TestMethod executes with
type ExecutionState struct {
	SetUpMethods      []Hook
	TearDownMethods   []Hook
	Actions           []TestAction
	SuiteActions      []TestAction
	Arguments         []any
	ExpectedResult    any
	HasExpectedResult bool
}

// NewTestMethod creates a runnable test for method. Markers are not applied;
// see ApplyCommonAttributes and ApplyExpectedError.
func NewTestMethod(method *Method) *TestMethod {
	t := &TestMethod{
		TestInfo: TestInfo{
			TestName: TestName{
				Name:     method.Name,
				FullName: method.Name,
				TestID:   uuid.New(),
			},
			RunState:   RunStateRunnable,
			Properties: make(map[string]any),
		},
		Method: method,
	}

	if method.Body == nil {
		t.RunState = RunStateNotRunnable
		t.IgnoreReason = "Method has no body"
	}
	return t
}

// ExecutionState returns the hooks, actions and case data of the test
func (m *TestMethod) ExecutionState() ExecutionState {
	return ExecutionState{
		SetUpMethods:      m.setUpMethods,
		TearDownMethods:   m.tearDownMethods,
		Actions:           m.actions,
		SuiteActions:      m.suiteActions,
		Arguments:         m.arguments,
		ExpectedResult:    m.expectedResult,
		HasExpectedResult: m.hasExpectedResult,
	}
}

// SetExecutionState replaces the hooks, actions and case data of the test
func (m *TestMethod) SetExecutionState(s ExecutionState) {
	m.setUpMethods = s.SetUpMethods
	m.tearDownMethods = s.TearDownMethods
	m.actions = s.Actions
	m.suiteActions = s.SuiteActions
	m.arguments = s.Arguments
	m.expectedResult = s.ExpectedResult
	m.hasExpectedResult = s.HasExpectedResult
}

// Run runs the test and notifies the listener
func (m *TestMethod) Run(listener EventListener, filter Filter) *TestResult {
	return m.RunWith(m, listener, filter, m.RunTest)
}

// RunWith is Run on behalf of self, a node wrapping m, with the execution
// step supplied by that node. The filter sees self and the listener
// observes the wrapper's outcome.
func (m *TestMethod) RunWith(self Test, listener EventListener, filter Filter, runTest func() *TestResult) *TestResult {
	if listener == nil {
		listener = NullListener{}
	}

	if filter != nil && !filter.Pass(self) {
		result := NewTestResult(m)
		result.SetResult(ResultStateSkipped, "Excluded by filter", "", FailureSiteTest)
		return result
	}

	listener.TestStarted(m.TestName)
	result := runTest()
	listener.TestFinished(result)
	return result
}

// RunTest executes the test without listener notification
func (m *TestMethod) RunTest() *TestResult {
	return m.RunTestAs(m)
}

// RunTestAs is RunTest on behalf of self; actions are handed self
func (m *TestMethod) RunTestAs(self Test) *TestResult {
	result := NewTestResult(m)

	switch m.RunState {
	case RunStateNotRunnable:
		reason := m.IgnoreReason
		if m.BuilderError != nil {
			reason = m.BuilderError.Error()
		}
		result.SetResult(ResultStateNotRunnable, reason, "", FailureSiteTest)
		return result
	case RunStateIgnored:
		result.SetResult(ResultStateIgnored, m.IgnoreReason, "", FailureSiteTest)
		return result
	case RunStateSkipped:
		result.SetResult(ResultStateSkipped, m.IgnoreReason, "", FailureSiteTest)
		return result
	}

	start := time.Now()
	m.beforeActions(self)
	m.execute(result)
	m.afterActions(self)
	result.Duration = time.Since(start)

	return result
}

func (m *TestMethod) execute(result *TestResult) {
	if err := m.runHooks(m.setUpMethods); err != nil {
		recordError(result, err, FailureSiteSetUp)
	} else {
		value, err := protect(func() (any, error) {
			return m.Method.Body(m.Fixture, m.arguments)
		})
		m.processOutcome(result, value, err)
	}

	// Tear-down runs even when set-up failed
	if err := m.runHooks(m.tearDownMethods); err != nil {
		if result.State.IsFailure() {
			result.Message += "\nTearDown: " + err.Error()
			return
		}
		recordError(result, err, FailureSiteTearDown)
	}
}

func (m *TestMethod) processOutcome(result *TestResult, value any, err error) {
	if m.ExceptionProcessor != nil {
		m.ExceptionProcessor.Process(result, err)
		return
	}

	if err != nil {
		recordError(result, err, FailureSiteTest)
		return
	}

	if m.hasExpectedResult && !reflect.DeepEqual(m.expectedResult, value) {
		result.SetResult(ResultStateFailure, fmt.Sprintf("Expected: %v\n  But was: %v", m.expectedResult, value), "", FailureSiteTest)
		return
	}

	result.SetResult(ResultStateSuccess, "", "", FailureSiteTest)
}

func (m *TestMethod) runHooks(hooks []Hook) error {
	var first error
	for _, hook := range hooks {
		_, err := protect(func() (any, error) {
			return nil, hook(m.Fixture)
		})
		if err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (m *TestMethod) beforeActions(self Test) {
	for _, action := range m.suiteActions {
		action.BeforeTest(self)
	}
	for _, action := range m.actions {
		action.BeforeTest(self)
	}
}

func (m *TestMethod) afterActions(self Test) {
	for i := len(m.actions) - 1; i >= 0; i-- {
		m.actions[i].AfterTest(self)
	}
	for i := len(m.suiteActions) - 1; i >= 0; i-- {
		m.suiteActions[i].AfterTest(self)
	}
}

func recordError(result *TestResult, err error, site FailureSite) {
	result.SetResult(Classify(err), err.Error(), StackTrace(err), site)
}

// protect runs fn, turning a panic into a PanicError
func protect(fn func() (any, error)) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return fn()
}
