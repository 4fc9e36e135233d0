package host

import (
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itd/internal/domain"
)

func body(any, []any) (any, error) { return nil, nil }

func sampleFixture() *domain.Fixture {
	return &domain.Fixture{
		Name:      "MathTests",
		Namespace: "pkg",
		New:       func() any { return &struct{ n int }{} },
		SetUp:     []domain.Hook{func(any) error { return nil }},
		Methods: []*domain.Method{
			{Name: "TestOne", Body: body, Markers: []any{domain.Category{Name: "fast"}}},
			{
				Name: "TestCases",
				Body: body,
				Cases: []domain.TestCaseData{
					{Arguments: []any{1, "x"}, ExpectedResult: nil, HasExpectedResult: true},
					{Name: "Named", Arguments: []any{2}},
				},
			},
		},
	}
}

func TestBuilder_Build(t *testing.T) {
	log, _ := test.NewNullLogger()

	fixture, err := NewBuilder(New(log), 3, log).Build(sampleFixture())
	require.NoError(t, err)

	assert.Equal(t, "pkg.MathTests", fixture.FullName)
	assert.Equal(t, 3, fixture.RunnerID)
	require.Len(t, fixture.Tests, 2)

	one, ok := fixture.Tests[0].(*domain.TestMethod)
	require.True(t, ok)
	assert.Equal(t, "pkg.MathTests.TestOne", one.FullName)
	assert.Equal(t, []string{"fast"}, one.Categories)
	assert.Same(t, fixture.Fixture.(*struct{ n int }), one.Fixture.(*struct{ n int }))
	assert.Len(t, one.ExecutionState().SetUpMethods, 1)

	group, ok := fixture.Tests[1].(*domain.ParameterizedMethodSuite)
	require.True(t, ok)
	assert.Equal(t, "pkg.MathTests.TestCases", group.FullName)
	require.Len(t, group.Tests, 2)
	assert.Equal(t, `TestCases(1,"x")`, group.Tests[0].Info().Name)
	assert.Equal(t, "pkg.MathTests.Named", group.Tests[1].Info().FullName)
	assert.Equal(t, []any{2}, group.Tests[1].(*domain.TestMethod).ExecutionState().Arguments)

	result := fixture.Run(nil, nil)
	assert.Equal(t, domain.ResultStateSuccess, result.State)
	assert.Len(t, result.Leaves(), 3)
}

func TestBuilder_EmptyFixture(t *testing.T) {
	log, _ := test.NewNullLogger()

	fixture, err := NewBuilder(nil, 0, log).Build(&domain.Fixture{Name: "Empty"})
	require.NoError(t, err)

	assert.Equal(t, domain.RunStateNotRunnable, fixture.RunState)
	assert.Equal(t, "Fixture has no test methods", fixture.IgnoreReason)
}

func TestBuilder_RunsDecorators(t *testing.T) {
	log, _ := test.NewNullLogger()

	t.Run("every method node is decorated", func(t *testing.T) {
		h := New(log)
		h.Load(&renamerAddin{decorator: &renamer{suffix: "+"}})

		fixture, err := NewBuilder(h, 1, log).Build(sampleFixture())
		require.NoError(t, err)

		assert.Equal(t, "TestOne+", fixture.Tests[0].Info().Name)
		assert.Equal(t, "TestCases+", fixture.Tests[1].Info().Name)
	})

	t.Run("decorator errors fail the build", func(t *testing.T) {
		h := New(log)
		h.Decorators().Install(failingDecorator{})

		_, err := NewBuilder(h, 1, log).Build(sampleFixture())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "pkg.MathTests.TestOne")
	})
}

func TestBuilder_DuplicateCaseNames(t *testing.T) {
	log, _ := test.NewNullLogger()
	def := &domain.Fixture{
		Name:      "MathTests",
		Namespace: "pkg",
		Methods: []*domain.Method{{
			Name: "TestDouble",
			Body: body,
			Cases: []domain.TestCaseData{
				{Arguments: []any{1}},
				{Arguments: []any{2}},
				{Arguments: []any{1}},
			},
		}},
	}

	fixture, err := NewBuilder(New(log), 1, log).Build(def)
	require.NoError(t, err)

	group := fixture.Tests[0].(*domain.ParameterizedMethodSuite)
	require.Len(t, group.Tests, 3)
	first := group.Tests[0].(*domain.TestMethod)
	dup := group.Tests[2].(*domain.TestMethod)
	assert.NoError(t, first.BuilderError)
	require.Error(t, dup.BuilderError)
	assert.Equal(t, domain.RunStateNotRunnable, dup.RunState)

	result := dup.Run(nil, nil)
	assert.Equal(t, domain.ResultStateNotRunnable, result.State)
	assert.Equal(t, "duplicate test case name pkg.MathTests.TestDouble(1)", result.Message)
}
