package collector

import (
	"github.com/prometheus/client_golang/prometheus"

	"aiswei_bridge/internal/mapper"
)

const (
	namespace   = "aiswei"
	labelDevice = "device"
)

// MetricSet holds all Prometheus metric descriptors for the AISWEI exporter.
type MetricSet struct {
	// One gauge per mapper field, in mapper.Fields order
	fields []*prometheus.Desc

	// Status metrics
	up           *prometheus.Desc
	deviceOnline *prometheus.Desc

	// Scrape metrics
	scrapeErrors    prometheus.Counter
	scrapeThrottled prometheus.Counter
	scrapeDuration  prometheus.Histogram
}

// newMetricSet creates all metric descriptors.
func newMetricSet() *MetricSet {
	labels := []string{labelDevice}

	fields := make([]*prometheus.Desc, len(mapper.Fields))
	for i, f := range mapper.Fields {
		fields[i] = prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", f.Metric),
			f.Help,
			labels, nil,
		)
	}

	return &MetricSet{
		fields: fields,

		up: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "up"),
			"Whether the last scrape of the AISWEI API succeeded (1) or not (0)",
			nil, nil,
		),
		deviceOnline: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "device_online"),
			"Inverter state Normal (1) / Offline (0)",
			labels, nil,
		),

		scrapeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scrape_errors_total",
			Help:      "Total number of failed AISWEI API scrapes",
		}),
		scrapeThrottled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scrape_throttled_total",
			Help:      "Scrapes skipped because the minimum interval between API calls had not elapsed",
		}),
		scrapeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "scrape_duration_seconds",
			Help:      "Time spent calling the AISWEI API",
			Buckets:   []float64{0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}
