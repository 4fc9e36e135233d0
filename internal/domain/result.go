package domain

import "time"

// ResultState classifies the outcome of a test
type ResultState string

const (
	ResultStateSuccess      ResultState = "success"
	ResultStateFailure      ResultState = "failure"
	ResultStateError        ResultState = "error"
	ResultStateInconclusive ResultState = "inconclusive"
	ResultStateSkipped      ResultState = "skipped"
	ResultStateIgnored      ResultState = "ignored"
	ResultStateNotRunnable  ResultState = "not_runnable"
)

// IsFailure reports whether the state counts against a run (failure or error)
func (s ResultState) IsFailure() bool {
	return s == ResultStateFailure || s == ResultStateError
}

// FailureSite tells where in the execution chain a result was decided
type FailureSite string

const (
	FailureSiteTest     FailureSite = "test"
	FailureSiteSetUp    FailureSite = "setup"
	FailureSiteTearDown FailureSite = "teardown"
	FailureSiteParent   FailureSite = "parent"
	FailureSiteChild    FailureSite = "child"
)

// TestResult represents the result of running a test or a suite
type TestResult struct {
	Name       string        // Short test name
	FullName   string        // Fully qualified test name
	State      ResultState   // Outcome classification
	Message    string        // Failure or skip message
	StackTrace string        // Diagnostic trace, empty for clean results
	Site       FailureSite   // Where the outcome was decided
	Duration   time.Duration // Time taken to execute
	Children   []*TestResult // Child results for suites
	Suite      bool          // Result of a container node

	// Set only when the outcome was reclassified after execution
	OriginalState ResultState
	Reference     string
}

// NewTestResult creates an empty result for the given test
func NewTestResult(test Test) *TestResult {
	info := test.Info()
	_, suite := test.(Container)
	return &TestResult{
		Name:     info.Name,
		FullName: info.FullName,
		State:    ResultStateSuccess,
		Site:     FailureSiteTest,
		Suite:    suite,
	}
}

// SetResult replaces the classification and the diagnostic fields of the result
func (r *TestResult) SetResult(state ResultState, message, stackTrace string, site FailureSite) {
	r.State = state
	r.Message = message
	r.StackTrace = stackTrace
	r.Site = site
}

// Reclassify changes the state while keeping message, trace and site
func (r *TestResult) Reclassify(state ResultState, reference string) {
	r.OriginalState = r.State
	r.Reference = reference
	r.SetResult(state, r.Message, r.StackTrace, r.Site)
}

// Reclassified reports whether the result state was rewritten after execution
func (r *TestResult) Reclassified() bool {
	return r.OriginalState != ""
}

// AddResult appends a child result; a failing child fails the suite
func (r *TestResult) AddResult(child *TestResult) {
	r.Children = append(r.Children, child)

	if child.State.IsFailure() && !r.State.IsFailure() {
		r.SetResult(ResultStateFailure, "One or more child tests had errors", "", FailureSiteChild)
	}
}

// Leaves returns the test case results under r, in execution order.
// A suite that ran no children has none.
func (r *TestResult) Leaves() []*TestResult {
	if len(r.Children) == 0 {
		if r.Suite {
			return nil
		}
		return []*TestResult{r}
	}

	var leaves []*TestResult
	for _, child := range r.Children {
		leaves = append(leaves, child.Leaves()...)
	}
	return leaves
}

// TestResultsMeta contains metadata about a test run
type TestResultsMeta struct {
	RunID             string  `json:"run_id"`
	TotalFixtures     int     `json:"total_fixtures"`
	TotalTestCases    int     `json:"total_test_cases"`
	PassedTestCases   int     `json:"passed_test_cases"`
	FailedTestCases   int     `json:"failed_test_cases"`
	InconclusiveCases int     `json:"inconclusive_test_cases"`
	SkippedTestCases  int     `json:"skipped_test_cases"`
	ReclassifiedCases int     `json:"reclassified_test_cases"`
	Duration          string  `json:"duration"`
	DurationSeconds   float64 `json:"duration_seconds"`
	Workers           int     `json:"workers"`
	Timestamp         string  `json:"timestamp"`
}

// TestResultsOutput is the complete output structure for test results
type TestResultsOutput struct {
	Meta    TestResultsMeta `json:"meta"`
	Details []TestFailure   `json:"details"`
}
