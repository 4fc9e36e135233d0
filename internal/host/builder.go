package host

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"itd/internal/domain"
)

// Builder turns fixture definitions into test trees, running every method
// node through the host's test decorators
type Builder struct {
	host     *Host
	runnerID int
	log      logrus.FieldLogger
}

// NewBuilder creates a Builder stamping runnerID on every test it builds
func NewBuilder(h *Host, runnerID int, log logrus.FieldLogger) *Builder {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Builder{
		host:     h,
		runnerID: runnerID,
		log:      log,
	}
}

// Build creates the test fixture for def
func (b *Builder) Build(def *domain.Fixture) (*domain.TestFixture, error) {
	fixture := domain.NewTestFixture(def)
	fixture.RunnerID = b.runnerID

	var instance any
	if def.New != nil {
		instance = def.New()
	}
	fixture.Fixture = instance

	if len(def.Methods) == 0 {
		fixture.RunState = domain.RunStateNotRunnable
		fixture.IgnoreReason = "Fixture has no test methods"
	}

	for _, method := range def.Methods {
		test, err := b.buildMethod(fixture, method)
		if err != nil {
			return nil, fmt.Errorf("build %s.%s: %w", def.FullName(), method.Name, err)
		}
		fixture.Add(test)
	}

	b.log.WithFields(logrus.Fields{
		"fixture": def.FullName(),
		"methods": len(def.Methods),
	}).Debug("Built fixture")

	return fixture, nil
}

func (b *Builder) buildMethod(fixture *domain.TestFixture, method *domain.Method) (domain.Test, error) {
	var test domain.Test
	if method.IsParameterized() {
		group := domain.NewParameterizedMethodSuite(method, fixture.FullName+"."+method.Name)
		group.RunnerID = b.runnerID
		group.Fixture = fixture.Fixture
		domain.ApplyCommonAttributes(method, &group.TestInfo)

		seen := make(map[string]bool, len(method.Cases))
		for _, data := range method.Cases {
			name := caseName(method, data)
			tm := b.newTestMethod(fixture, method, name, data)
			if seen[name] {
				tm.RunState = domain.RunStateNotRunnable
				tm.BuilderError = fmt.Errorf("duplicate test case name %s", tm.FullName)
			}
			seen[name] = true
			group.Add(tm)
		}
		test = group
	} else {
		test = b.newTestMethod(fixture, method, method.Name, domain.TestCaseData{})
	}

	if b.host == nil {
		return test, nil
	}
	decorators := b.host.Decorators()
	if decorators == nil {
		return test, nil
	}
	return decorators.Decorate(test, method)
}

func (b *Builder) newTestMethod(fixture *domain.TestFixture, method *domain.Method, name string, data domain.TestCaseData) *domain.TestMethod {
	def := fixture.Definition

	test := domain.NewTestMethod(method)
	test.Name = name
	test.FullName = fixture.FullName + "." + name
	test.RunnerID = b.runnerID
	test.Fixture = fixture.Fixture

	domain.ApplyCommonAttributes(method, &test.TestInfo)
	domain.ApplyExpectedError(method, test)

	test.SetExecutionState(domain.ExecutionState{
		SetUpMethods:      def.SetUp,
		TearDownMethods:   def.TearDown,
		Actions:           def.Actions,
		SuiteActions:      def.SuiteActions,
		Arguments:         data.Arguments,
		ExpectedResult:    data.ExpectedResult,
		HasExpectedResult: data.HasExpectedResult,
	})
	return test
}

// caseName returns the display name of a generated case, e.g. Add(1,2)
func caseName(method *domain.Method, data domain.TestCaseData) string {
	if data.Name != "" {
		return data.Name
	}

	args := make([]string, len(data.Arguments))
	for i, arg := range data.Arguments {
		if s, ok := arg.(string); ok {
			args[i] = fmt.Sprintf("%q", s)
			continue
		}
		args[i] = fmt.Sprintf("%v", arg)
	}
	return fmt.Sprintf("%s(%s)", method.Name, strings.Join(args, ","))
}
