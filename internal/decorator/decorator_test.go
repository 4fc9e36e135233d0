package decorator

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itd/internal/domain"
	"itd/internal/host"
	"itd/internal/marker"
)

func failing(any, []any) (any, error) { return nil, domain.AssertEqual(1, 2) }

func parameterized(markers ...any) (*domain.ParameterizedMethodSuite, *domain.Method) {
	method := &domain.Method{
		Name:    "TestDivide",
		Body:    failing,
		Markers: markers,
		Cases: []domain.TestCaseData{
			{Name: "TestDivide(6,3)", Arguments: []any{6, 3}},
			{Name: "TestDivide(7,2)", Arguments: []any{7, 2}},
			{Name: "TestDivide(1,0)", Arguments: []any{1, 0}},
		},
	}
	group := domain.NewParameterizedMethodSuite(method, "samples.CalculatorTests.TestDivide")
	for _, data := range method.Cases {
		tm := domain.NewTestMethod(method)
		tm.Name = data.Name
		tm.FullName = "samples.CalculatorTests." + data.Name
		tm.SetExecutionState(domain.ExecutionState{Arguments: data.Arguments})
		group.Add(tm)
	}
	return group, method
}

// opaque is a test node the decorator does not know how to rewrite
type opaque struct {
	domain.TestInfo
}

func (o *opaque) Run(domain.EventListener, domain.Filter) *domain.TestResult {
	return domain.NewTestResult(o)
}

func newDecorator() (*Decorator, *test.Hook, *fakeRecorder) {
	log, hook := test.NewNullLogger()
	recorder := &fakeRecorder{}
	return New(WithLogger(log), WithRecorder(recorder)), hook, recorder
}

func TestDecorator_Install(t *testing.T) {
	log, _ := test.NewNullLogger()

	t.Run("installs into the decorators point", func(t *testing.T) {
		h := host.New(log)
		d := New(WithLogger(log))

		assert.True(t, d.Install(h))
		assert.Equal(t, 1, h.Decorators().Len())
	})

	t.Run("repeated install is idempotent", func(t *testing.T) {
		h := host.New(log)
		d := New(WithLogger(log))

		assert.True(t, d.Install(h))
		assert.True(t, d.Install(h))
		assert.Equal(t, 1, h.Decorators().Len())
	})

	t.Run("host without the point", func(t *testing.T) {
		assert.False(t, New(WithLogger(log)).Install(host.NewEmpty(log)))
	})

	t.Run("loaded as an addin", func(t *testing.T) {
		h := host.New(log)

		assert.Equal(t, 1, h.Load(New(WithLogger(log))))
	})
}

func TestDecorator_AddinInfo(t *testing.T) {
	info := New().AddinInfo()

	assert.Equal(t, AddinName, info.Name)
	assert.Equal(t, host.ExtensionTypeCore, info.Type)
	assert.NotEmpty(t, info.Description)
}

func TestDecorator_PassThrough(t *testing.T) {
	d, _, _ := newDecorator()
	unmarked := &domain.Method{Name: "TestAdd", Body: failing, Markers: []any{domain.Category{Name: "fast"}}}
	marked := &domain.Method{Name: "TestRemote", Body: failing, Markers: []any{marker.New("TICKET-1")}}

	single := domain.NewTestMethod(unmarked)
	group, _ := parameterized()
	other := &opaque{}

	tests := []struct {
		name   string
		test   domain.Test
		method *domain.Method
	}{
		{name: "single method", test: single, method: unmarked},
		{name: "parameterized group", test: group, method: unmarked},
		{name: "other node", test: other, method: unmarked},
		{name: "nil method", test: single, method: nil},
		{name: "marked but unknown node", test: other, method: marked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decorated, err := d.Decorate(tt.test, tt.method)
			require.NoError(t, err)
			assert.Same(t, tt.test, decorated)
		})
	}

	for _, child := range group.Tests {
		assert.IsType(t, &domain.TestMethod{}, child)
	}
}

func TestDecorator_WrapsMarkedMethod(t *testing.T) {
	d, _, recorder := newDecorator()
	method := &domain.Method{Name: "TestRemoteSum", Body: failing, Markers: []any{marker.New("TICKET-42")}}
	original := domain.NewTestMethod(method)
	original.FullName = "samples.CalculatorTests.TestRemoteSum"

	decorated, err := d.Decorate(original, method)
	require.NoError(t, err)

	tc, ok := decorated.(*InconclusiveTestCase)
	require.True(t, ok)
	assert.Equal(t, "TICKET-42", tc.Ticket)
	assert.Equal(t, original.TestID, tc.TestID)

	result := tc.Run(nil, nil)
	assert.Equal(t, domain.ResultStateInconclusive, result.State)
	assert.Equal(t, "expected 1 but was 2", result.Message)
	assert.NotEmpty(t, result.StackTrace)
	assert.Equal(t, []reclassification{{"TICKET-42", domain.ResultStateFailure}}, recorder.calls)
}

func TestDecorator_RewritesGroupInPlace(t *testing.T) {
	d, _, _ := newDecorator()
	group, method := parameterized(marker.New("TICKET-7"))

	var before []string
	for _, child := range group.Tests {
		before = append(before, child.Info().FullName)
	}

	decorated, err := d.Decorate(group, method)
	require.NoError(t, err)
	assert.Same(t, group, decorated)

	require.Len(t, group.Tests, 3)
	for i, child := range group.Tests {
		tc, ok := child.(*InconclusiveTestCase)
		require.True(t, ok, "child %d", i)
		assert.Equal(t, before[i], tc.FullName)
		assert.Equal(t, "TICKET-7", tc.Ticket)
		assert.Same(t, group, tc.Parent)
	}

	result := group.Run(nil, nil)
	assert.Equal(t, domain.ResultStateSuccess, result.State)
	require.Len(t, result.Children, 3)
	for _, child := range result.Children {
		assert.Equal(t, domain.ResultStateInconclusive, child.State)
		assert.Equal(t, domain.ResultStateFailure, child.OriginalState)
	}
}

func TestDecorator_GroupSkipsForeignChildren(t *testing.T) {
	d, _, _ := newDecorator()
	group, method := parameterized(marker.New("TICKET-7"))
	foreign := &opaque{}
	group.Add(foreign)

	_, err := d.Decorate(group, method)
	require.NoError(t, err)

	require.Len(t, group.Tests, 4)
	assert.Same(t, foreign, group.Tests[3])
}

func TestDecorator_FirstMarkerWins(t *testing.T) {
	d, hook, _ := newDecorator()
	method := &domain.Method{Name: "TestFlaky", Body: failing, Markers: []any{marker.New("FIRST-1"), marker.New("SECOND-2")}}

	decorated, err := d.Decorate(domain.NewTestMethod(method), method)
	require.NoError(t, err)

	assert.Equal(t, "FIRST-1", decorated.(*InconclusiveTestCase).Ticket)
	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, 2, hook.LastEntry().Data["markers"])
}

func TestDecorator_ThroughHost(t *testing.T) {
	log, _ := test.NewNullLogger()
	h := host.New(log)
	h.Load(New(WithLogger(log)))

	def := &domain.Fixture{
		Name:      "CalculatorTests",
		Namespace: "samples",
		Methods: []*domain.Method{
			{Name: "TestAdd", Body: func(any, []any) (any, error) { return nil, nil }},
			{Name: "TestRemoteSum", Body: failing, Markers: []any{marker.New("TICKET-42")}},
		},
	}

	fixture, err := host.NewBuilder(h, 1, log).Build(def)
	require.NoError(t, err)

	assert.IsType(t, &domain.TestMethod{}, fixture.Tests[0])
	assert.IsType(t, &InconclusiveTestCase{}, fixture.Tests[1])

	result := fixture.Run(nil, nil)
	assert.Equal(t, domain.ResultStateSuccess, result.State)
	assert.Equal(t, domain.ResultStateInconclusive, result.Children[1].State)
	assert.Equal(t, "TICKET-42", result.Children[1].Reference)
}
