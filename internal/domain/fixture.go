package domain

// TestFunc is the body of a test method. It receives the fixture instance
// and, for parameterized cases, the case arguments. The returned value is
// compared against the expected result when the case declares one.
type TestFunc func(fixture any, args []any) (any, error)

// TestCaseData is one invocation of a parameterized method
type TestCaseData struct {
	Name              string // Optional, defaults to Method(arg, ...)
	Arguments         []any
	ExpectedResult    any
	HasExpectedResult bool
}

// Method describes a test method and the markers declared on it
type Method struct {
	Name    string
	Body    TestFunc
	Markers []any
	Cases   []TestCaseData
}

// IsParameterized reports whether the method generates a group of test cases
func (m *Method) IsParameterized() bool {
	return len(m.Cases) > 0
}

// Fixture groups test methods sharing set-up, tear-down and actions
type Fixture struct {
	Name      string
	Namespace string

	// New creates the fixture instance handed to hooks and bodies; nil means none
	New func() any

	SetUp           []Hook // Before every test
	TearDown        []Hook // After every test
	FixtureSetUp    []Hook // Once before the fixture
	FixtureTearDown []Hook // Once after the fixture

	Actions      []TestAction // Test scope
	SuiteActions []TestAction // Suite scope, also run around each test

	Categories []string
	Methods    []*Method
}

// FullName returns the namespace-qualified fixture name
func (f *Fixture) FullName() string {
	if f.Namespace == "" {
		return f.Name
	}
	return f.Namespace + "." + f.Name
}
