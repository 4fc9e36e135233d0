package domain

// TestFailure represents a test case that did not pass cleanly
type TestFailure struct {
	TestName      string      `json:"test_name"`
	FullName      string      `json:"full_name"`
	State         ResultState `json:"state"`
	OriginalState ResultState `json:"original_state,omitempty"`
	Reference     string      `json:"reference,omitempty"`
	Site          FailureSite `json:"site"`
	StackTrace    []string    `json:"stack_trace"`
	Message       string      `json:"message"`
	Resolved      bool        `json:"resolved,omitempty"` // Track if test case is marked as resolved
}
