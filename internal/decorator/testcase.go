package decorator

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"itd/internal/domain"
)

// Recorder is told about every outcome that gets reclassified
type Recorder interface {
	RecordReclassified(reference string, from domain.ResultState)
}

// InconclusiveTestCase is a test case that is unstable enough to have its
// failures considered inconclusive. It behaves exactly like the test it was
// built from, except that failure and error outcomes become inconclusive.
type InconclusiveTestCase struct {
	*domain.TestMethod

	Ticket string

	log      logrus.FieldLogger
	recorder Recorder
}

// NewInconclusiveTestCase builds the rewriting counterpart of original
func NewInconclusiveTestCase(original *domain.TestMethod, ticket string) (*InconclusiveTestCase, error) {
	return newInconclusiveTestCase(original, ticket, logrus.StandardLogger(), nil)
}

func newInconclusiveTestCase(original *domain.TestMethod, ticket string, log logrus.FieldLogger, recorder Recorder) (*InconclusiveTestCase, error) {
	if original == nil {
		return nil, errors.New("inconclusive test case: original test is nil")
	}
	if original.Method == nil {
		return nil, fmt.Errorf("inconclusive test case %s: original test has no method", original.FullName)
	}
	if original.TestID == uuid.Nil {
		return nil, fmt.Errorf("inconclusive test case %s: original test has no test id", original.FullName)
	}

	tc := &InconclusiveTestCase{
		TestMethod: domain.NewTestMethod(original.Method),
		Ticket:     ticket,
		log:        log,
		recorder:   recorder,
	}

	domain.ApplyCommonAttributes(original.Method, &tc.TestInfo)
	domain.ApplyExpectedError(original.Method, tc.TestMethod)

	// Copy all the attributes of the original test
	tc.TestInfo = *original.Info()
	tc.BuilderError = original.BuilderError
	tc.ExceptionProcessor = original.ExceptionProcessor
	tc.SetExecutionState(original.ExecutionState())

	return tc, nil
}

// Run runs the test, notifying the listener with the rewritten result
func (c *InconclusiveTestCase) Run(listener domain.EventListener, filter domain.Filter) *domain.TestResult {
	return c.rewrite(c.TestMethod.RunWith(c, listener, filter, c.RunTest))
}

// RunTest runs the test without listener notification
func (c *InconclusiveTestCase) RunTest() *domain.TestResult {
	return c.rewrite(c.TestMethod.RunTestAs(c))
}

func (c *InconclusiveTestCase) rewrite(result *domain.TestResult) *domain.TestResult {
	if !result.State.IsFailure() {
		return result
	}

	from := result.State
	result.Reclassify(domain.ResultStateInconclusive, c.Ticket)

	c.log.WithFields(logrus.Fields{
		"test":   c.FullName,
		"ticket": c.Ticket,
		"from":   from,
	}).Debug("Reporting unstable test as inconclusive")

	if c.recorder != nil {
		c.recorder.RecordReclassified(c.Ticket, from)
	}
	return result
}
