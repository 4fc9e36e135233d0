package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"itd/internal/domain"
)

func TestCollector(t *testing.T) {
	c := NewCollector()

	c.RecordResult(domain.ResultStateSuccess)
	c.RecordResult(domain.ResultStateSuccess)
	c.RecordResult(domain.ResultStateInconclusive)
	c.RecordReclassified("TICKET-42", domain.ResultStateFailure)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.results.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.results.WithLabelValues("inconclusive")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.reclassified.WithLabelValues("failure", "TICKET-42")))

	families, err := c.Registry().Gather()
	require.NoError(t, err)
	var names []string
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.ElementsMatch(t, []string{"itd_results_total", "itd_reclassified_total"}, names)
}

func TestCollector_WriteTextfile(t *testing.T) {
	c := NewCollector()
	c.RecordReclassified("TICKET-7", domain.ResultStateError)

	path := filepath.Join(t.TempDir(), "itd.prom")
	require.NoError(t, c.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `itd_reclassified_total{from="error",reference="TICKET-7"} 1`)
}
