package domain

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"
)

// AssertionError is returned by a test body when an expectation does not hold
type AssertionError struct {
	Message string
}

func (e *AssertionError) Error() string { return e.Message }

// InconclusiveError is returned by a test body that cannot decide its outcome
type InconclusiveError struct {
	Message string
}

func (e *InconclusiveError) Error() string { return e.Message }

// IgnoreError is returned by a test body that asks to be ignored
type IgnoreError struct {
	Message string
}

func (e *IgnoreError) Error() string { return e.Message }

// SkipError is returned by a test body that skips itself
type SkipError struct {
	Message string
}

func (e *SkipError) Error() string { return e.Message }

// PanicError wraps a value recovered from a panicking test body
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string { return fmt.Sprintf("panic: %v", e.Value) }

// Failf returns an assertion failure carrying the caller's stack
func Failf(format string, args ...any) error {
	return errors.WithStack(&AssertionError{Message: fmt.Sprintf(format, args...)})
}

// Inconclusivef returns an inconclusive outcome carrying the caller's stack
func Inconclusivef(format string, args ...any) error {
	return errors.WithStack(&InconclusiveError{Message: fmt.Sprintf(format, args...)})
}

// Ignoref marks the running test as ignored
func Ignoref(format string, args ...any) error {
	return &IgnoreError{Message: fmt.Sprintf(format, args...)}
}

// Skipf marks the running test as skipped
func Skipf(format string, args ...any) error {
	return &SkipError{Message: fmt.Sprintf(format, args...)}
}

// AssertEqual fails unless expected and actual are deeply equal
func AssertEqual(expected, actual any) error {
	if reflect.DeepEqual(expected, actual) {
		return nil
	}
	return errors.WithStack(&AssertionError{Message: fmt.Sprintf("expected %v but was %v", expected, actual)})
}

// AssertTrue fails with the message unless the condition holds
func AssertTrue(condition bool, message string) error {
	if condition {
		return nil
	}
	return errors.WithStack(&AssertionError{Message: message})
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// StackTrace renders the diagnostic trace attached to err, if any
func StackTrace(err error) string {
	if err == nil {
		return ""
	}

	var pe *PanicError
	if errors.As(err, &pe) {
		return string(pe.Stack)
	}

	var st stackTracer
	if errors.As(err, &st) {
		return strings.TrimSpace(fmt.Sprintf("%+v", st.StackTrace()))
	}
	return ""
}

// Classify maps an error returned by a test body to a result state
func Classify(err error) ResultState {
	if err == nil {
		return ResultStateSuccess
	}

	var (
		assertion    *AssertionError
		inconclusive *InconclusiveError
		ignore       *IgnoreError
		skip         *SkipError
	)
	switch {
	case errors.As(err, &assertion):
		return ResultStateFailure
	case errors.As(err, &inconclusive):
		return ResultStateInconclusive
	case errors.As(err, &ignore):
		return ResultStateIgnored
	case errors.As(err, &skip):
		return ResultStateSkipped
	default:
		return ResultStateError
	}
}
