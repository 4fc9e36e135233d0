package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"itd/internal/domain"
)

const (
	MetricsNamespace = "itd"
)

// Collector counts test outcomes and reclassifications on its own registry
type Collector struct {
	registry     *prometheus.Registry
	results      *prometheus.CounterVec
	reclassified *prometheus.CounterVec
}

// NewCollector creates a Collector with a private registry
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		results: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "results_total",
			Help:      "Count of test case results by final state",
		}, []string{
			"state",
		}),
		reclassified: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      "reclassified_total",
			Help:      "Count of failing test cases reported as inconclusive",
		}, []string{
			"from",
			"reference",
		}),
	}
}

// RecordResult counts a finished test case
func (c *Collector) RecordResult(state domain.ResultState) {
	c.results.WithLabelValues(string(state)).Inc()
}

// RecordReclassified counts an outcome rewritten to inconclusive
func (c *Collector) RecordReclassified(reference string, from domain.ResultState) {
	c.reclassified.WithLabelValues(string(from), reference).Inc()
}

// Registry returns the registry the collector's metrics live on
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WriteTextfile writes the metrics in the Prometheus text format to path
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}
