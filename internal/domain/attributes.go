package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

// Category adds the method to a named category
type Category struct {
	Name string
}

// Description documents the method
type Description struct {
	Text string
}

// Property attaches a named value to the method's property bag
type Property struct {
	Name  string
	Value any
}

// Ignore keeps the method from running
type Ignore struct {
	Reason string
}

// ExpectedError declares that the method body must return a matching error.
// Target is matched with errors.Is, Message against the full error text.
// With neither set any error satisfies the expectation.
type ExpectedError struct {
	Target  error
	Message string
}

func (e ExpectedError) matches(err error) bool {
	if e.Target != nil && !errors.Is(err, e.Target) {
		return false
	}
	if e.Message != "" && err.Error() != e.Message {
		return false
	}
	return true
}

func (e ExpectedError) String() string {
	switch {
	case e.Target != nil:
		return fmt.Sprintf("%q", e.Target.Error())
	case e.Message != "":
		return fmt.Sprintf("%q", e.Message)
	default:
		return "any error"
	}
}

// ExpectedErrorProcessor decides the outcome of a method declared with ExpectedError
type ExpectedErrorProcessor struct {
	Expected ExpectedError
}

// Process sets the result from the error returned by the method body
func (p *ExpectedErrorProcessor) Process(result *TestResult, err error) {
	if err == nil {
		result.SetResult(ResultStateFailure, fmt.Sprintf("Expected error %s but none was returned", p.Expected), "", FailureSiteTest)
		return
	}

	// Outcome signals are never treated as the expected error
	if state := Classify(err); state != ResultStateError && state != ResultStateFailure {
		result.SetResult(state, err.Error(), StackTrace(err), FailureSiteTest)
		return
	}

	if p.Expected.matches(err) {
		result.SetResult(ResultStateSuccess, "", "", FailureSiteTest)
		return
	}

	result.SetResult(ResultStateFailure, fmt.Sprintf("Expected error %s but was: %v", p.Expected, err), StackTrace(err), FailureSiteTest)
}

// ApplyCommonAttributes applies the declarative markers of method to a freshly built node
func ApplyCommonAttributes(method *Method, info *TestInfo) {
	if info.Properties == nil {
		info.Properties = make(map[string]any)
	}

	for _, m := range method.Markers {
		switch attr := m.(type) {
		case Category:
			info.Categories = append(info.Categories, attr.Name)
		case Description:
			info.Description = attr.Text
		case Property:
			info.Properties[attr.Name] = attr.Value
		case Ignore:
			info.RunState = RunStateIgnored
			info.IgnoreReason = attr.Reason
		}
	}
}

// ApplyExpectedError installs an error processor when the method declares ExpectedError
func ApplyExpectedError(method *Method, test *TestMethod) {
	for _, m := range method.Markers {
		if attr, ok := m.(ExpectedError); ok {
			test.ExceptionProcessor = &ExpectedErrorProcessor{Expected: attr}
			return
		}
	}
}
