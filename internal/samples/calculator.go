// Package samples registers example fixtures exercising the inconclusive
// marker, so the CLI has something to run out of the box.
package samples

import (
	"errors"
	"fmt"

	"itd/internal/domain"
	"itd/internal/marker"
	"itd/internal/registry"
)

// ErrDivideByZero is returned by Calculator.Divide
var ErrDivideByZero = errors.New("divide by zero")

// Calculator is the fixture instance shared by the calculator tests
type Calculator struct {
	calls int
}

// Add returns a + b
func (c *Calculator) Add(a, b int) int {
	c.calls++
	return a + b
}

// Divide returns a / b
func (c *Calculator) Divide(a, b int) (int, error) {
	c.calls++
	if b == 0 {
		return 0, ErrDivideByZero
	}
	return a / b, nil
}

func calculator(fixture any) *Calculator {
	return fixture.(*Calculator)
}

// CalculatorFixture returns the calculator fixture definition
func CalculatorFixture() *domain.Fixture {
	return &domain.Fixture{
		Name:      "CalculatorTests",
		Namespace: "samples",
		New: func() any {
			return &Calculator{}
		},
		SetUp: []domain.Hook{
			func(fixture any) error {
				calculator(fixture).calls = 0
				return nil
			},
		},
		Categories: []string{"arithmetic"},
		Methods: []*domain.Method{
			{
				Name: "TestAdd",
				Body: func(fixture any, _ []any) (any, error) {
					return nil, domain.AssertEqual(3, calculator(fixture).Add(1, 2))
				},
			},
			{
				Name:    "TestRemoteSum",
				Markers: []any{marker.New("TICKET-42"), domain.Category{Name: "network"}},
				Body: func(fixture any, _ []any) (any, error) {
					// The remote service answers with a stale value now and then
					return nil, domain.AssertEqual(1, calculator(fixture).Add(1, 1))
				},
			},
			{
				Name:    "TestDivide",
				Markers: []any{marker.New("TICKET-7")},
				Body: func(fixture any, args []any) (any, error) {
					return calculator(fixture).Divide(args[0].(int), args[1].(int))
				},
				Cases: []domain.TestCaseData{
					{Arguments: []any{6, 3}, ExpectedResult: 2, HasExpectedResult: true},
					{Arguments: []any{7, 2}, ExpectedResult: 3.5, HasExpectedResult: true},
					{Arguments: []any{1, 0}, ExpectedResult: 0, HasExpectedResult: true},
				},
			},
			{
				Name:    "TestDivideByZero",
				Markers: []any{domain.ExpectedError{Target: ErrDivideByZero}},
				Body: func(fixture any, _ []any) (any, error) {
					return calculator(fixture).Divide(1, 0)
				},
			},
			{
				Name:    "TestOverflow",
				Markers: []any{marker.New("TICKET-9"), domain.Description{Text: "Panics on some platforms"}},
				Body: func(fixture any, _ []any) (any, error) {
					var lookup []int
					return lookup[calculator(fixture).Add(1, 1)], nil
				},
			},
			{
				Name:    "TestMultiply",
				Markers: []any{domain.Ignore{Reason: "Multiply is not implemented"}},
				Body: func(fixture any, _ []any) (any, error) {
					return nil, fmt.Errorf("not implemented")
				},
			},
		},
	}
}

func init() {
	registry.MustRegister(CalculatorFixture())
}
