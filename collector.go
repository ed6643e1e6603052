package countz

import (
	"github.com/prometheus/client_golang/prometheus"
)

// MetricsCollector exposes a Store to Prometheus.
// Safe for concurrent use by multiple goroutines.
//
// Values are reported as gauges because a counter can be decremented.
type MetricsCollector struct {
	store   *Store
	value   *prometheus.Desc
	entries *prometheus.Desc
}

// NewMetricsCollector creates a collector over store. Metric names are
// prefixed with namespace when it is non-empty.
func NewMetricsCollector(store *Store, namespace string) *MetricsCollector {
	return &MetricsCollector{
		store: store,
		value: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "counter_value"),
			"Current value of a field-derived counter.",
			[]string{"counter"}, nil,
		),
		entries: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "counters"),
			"Number of counters in the store.",
			nil, nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *MetricsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.value
	ch <- c.entries
}

// Collect implements prometheus.Collector.
func (c *MetricsCollector) Collect(ch chan<- prometheus.Metric) {
	snap := c.store.Snapshot()
	for _, s := range snap.Samples {
		ch <- prometheus.MustNewConstMetric(c.value, prometheus.GaugeValue, float64(s.Value), s.Name)
	}
	ch <- prometheus.MustNewConstMetric(c.entries, prometheus.GaugeValue, float64(len(snap.Samples)))
}
