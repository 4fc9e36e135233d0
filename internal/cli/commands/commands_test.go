package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itd/internal/config"
	"itd/internal/decorator"
	"itd/internal/discovery"
	"itd/internal/domain"
	"itd/internal/execution"
	"itd/internal/host"
	"itd/internal/marker"
	"itd/internal/metrics"
	"itd/internal/parser"
	"itd/internal/registry"
	"itd/internal/samples"
	"itd/internal/storage"
	"itd/internal/ui"
)

func sampleRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New()
	require.NoError(t, reg.Register(samples.CalculatorFixture()))
	return reg
}

func loadedHost(collector *metrics.Collector) *host.Host {
	log, _ := test.NewNullLogger()
	h := host.New(log)
	h.Load(decorator.New(decorator.WithLogger(log), decorator.WithRecorder(collector)))
	return h
}

func TestListCommand_Collect(t *testing.T) {
	log, _ := test.NewNullLogger()

	tests := []struct {
		name       string
		flags      config.Flags
		expected   []string
		references map[string]string
	}{
		{
			name: "all cases",
			expected: []string{
				"TestAdd", "TestRemoteSum", "TestDivide(6,3)", "TestDivide(7,2)", "TestDivide(1,0)",
				"TestDivideByZero", "TestOverflow", "TestMultiply",
			},
			references: map[string]string{
				"TestRemoteSum":   "TICKET-42",
				"TestDivide(7,2)": "TICKET-7",
				"TestOverflow":    "TICKET-9",
				"TestAdd":         "",
			},
		},
		{
			name:     "only marked",
			flags:    config.Flags{OnlyMarked: true},
			expected: []string{"TestRemoteSum", "TestDivide(6,3)", "TestDivide(7,2)", "TestDivide(1,0)", "TestOverflow"},
		},
		{
			name:     "name filter",
			flags:    config.Flags{NameFilter: "*Divide*"},
			expected: []string{"TestDivide(6,3)", "TestDivide(7,2)", "TestDivide(1,0)", "TestDivideByZero"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Flags = tt.flags
			lc := NewListCommand(cfg, sampleRegistry(t), loadedHost(metrics.NewCollector()), ui.NewFormatterTo(&bytes.Buffer{}), log)

			cases, err := lc.collect()
			require.NoError(t, err)

			var names []string
			refs := make(map[string]string)
			for _, c := range cases {
				names = append(names, c.Name)
				refs[c.Name] = c.Reference
				assert.True(t, strings.HasPrefix(c.FullName, "samples.CalculatorTests."))
			}
			assert.Equal(t, tt.expected, names)
			for name, ref := range tt.references {
				assert.Equal(t, ref, refs[name], name)
			}
		})
	}
}

func newRunCommand(t *testing.T, cfg *config.Config, reg *registry.Registry) (*RunCommand, *storage.JSONStorage, *bytes.Buffer) {
	t.Helper()
	log, _ := test.NewNullLogger()

	collector := metrics.NewCollector()
	h := loadedHost(collector)
	resultParser := parser.NewResultParser()
	runner := execution.NewRunner(cfg, h, collector, log)
	executor := execution.NewWorkerPool(cfg, runner, execution.NewRoundRobinScheduler(), resultParser, log)
	st := storage.NewJSONStorage(cfg)

	var out bytes.Buffer
	rc := NewRunCommand(cfg, reg, discovery.NewFilter(), executor, resultParser, st, ui.NewFormatterTo(&out), collector, log)
	return rc, st, &out
}

func TestRunCommand_Execute(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	cfg.Processors = 2
	cfg.MetricsFile = "itd.prom"

	rc, st, out := newRunCommand(t, cfg, sampleRegistry(t))

	require.NoError(t, rc.Execute(nil, nil))

	saved, err := st.Load()
	require.NoError(t, err)

	assert.Equal(t, 1, saved.Meta.TotalFixtures)
	assert.Equal(t, 8, saved.Meta.TotalTestCases)
	assert.Equal(t, 3, saved.Meta.PassedTestCases)
	assert.Equal(t, 0, saved.Meta.FailedTestCases)
	assert.Equal(t, 4, saved.Meta.InconclusiveCases)
	assert.Equal(t, 4, saved.Meta.ReclassifiedCases)
	assert.Equal(t, 1, saved.Meta.SkippedTestCases)

	var remote *domain.TestFailure
	for i := range saved.Details {
		if saved.Details[i].TestName == "TestRemoteSum" {
			remote = &saved.Details[i]
		}
	}
	require.NotNil(t, remote)
	assert.Equal(t, domain.ResultStateInconclusive, remote.State)
	assert.Equal(t, domain.ResultStateFailure, remote.OriginalState)
	assert.Equal(t, "TICKET-42", remote.Reference)
	assert.Equal(t, "expected 1 but was 2", remote.Message)
	assert.Equal(t, domain.FailureSiteTest, remote.Site)
	assert.NotEmpty(t, remote.StackTrace)

	assert.FileExists(t, cfg.GetMetricsPath())
	assert.Contains(t, out.String(), "TICKET-42")
}

func TestRunCommand_ExecuteExitStatus(t *testing.T) {
	fail := func(any, []any) (any, error) { return nil, domain.AssertEqual(1, 2) }

	tests := []struct {
		name    string
		marked  bool
		wantErr error
		failed  int
	}{
		{name: "unmarked failure fails the run", marked: false, wantErr: ErrTestsFailed, failed: 1},
		{name: "marked failure is inconclusive", marked: true, wantErr: nil, failed: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := &domain.Method{Name: "TestStale", Body: fail}
			if tt.marked {
				method.Markers = []any{marker.New("TICKET-1")}
			}
			reg := registry.New()
			require.NoError(t, reg.Register(&domain.Fixture{Name: "RemoteTests", Namespace: "samples", Methods: []*domain.Method{method}}))

			cfg := config.New()
			cfg.ProjectPath = t.TempDir()
			rc, st, _ := newRunCommand(t, cfg, reg)

			err := rc.Execute(nil, nil)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			// Results are saved either way
			saved, lerr := st.Load()
			require.NoError(t, lerr)
			assert.Equal(t, tt.failed, saved.Meta.FailedTestCases)
			assert.Equal(t, 1, saved.Meta.TotalTestCases)
		})
	}
}

func TestRunCommand_ExecuteNothingSelected(t *testing.T) {
	cfg := config.New()
	cfg.ProjectPath = t.TempDir()
	// Matches the fixture name but none of its test names
	cfg.Flags.NameFilter = "samples.Calculator?ests"

	rc, st, _ := newRunCommand(t, cfg, sampleRegistry(t))

	require.NoError(t, rc.Execute(nil, nil))

	saved, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, 1, saved.Meta.TotalFixtures)
	assert.Equal(t, 0, saved.Meta.TotalTestCases)
	assert.Equal(t, 0, saved.Meta.PassedTestCases)
	assert.Equal(t, 0, saved.Meta.FailedTestCases)
	assert.Empty(t, saved.Details)
}

func TestRunCommand_SelectFixtures(t *testing.T) {
	calc := samples.CalculatorFixture()
	other := &domain.Fixture{Name: "StringTests", Namespace: "samples", Methods: []*domain.Method{{Name: "TestTrim"}}}
	fixtures := []*domain.Fixture{calc, other}

	tests := []struct {
		name     string
		pattern  string
		expected []*domain.Fixture
	}{
		{name: "empty pattern keeps all", pattern: "", expected: fixtures},
		{name: "fixture name", pattern: "StringTests", expected: []*domain.Fixture{other}},
		{name: "method name", pattern: "*RemoteSum", expected: []*domain.Fixture{calc}},
		{name: "no match", pattern: "*Nothing*", expected: nil},
	}

	rc := &RunCommand{filter: discovery.NewFilter()}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, rc.selectFixtures(fixtures, tt.pattern))
		})
	}
}
