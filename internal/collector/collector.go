// Package collector implements the Prometheus collector interface for AISWEI inverters.
package collector

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"

	"aiswei_bridge/internal/mapper"
	"aiswei_bridge/internal/types"
)

// Source retrieves the latest telemetry reply.
type Source interface {
	GetLastTsData(ctx context.Context) (*types.Response, error)
}

// AisweiCollector implements prometheus.Collector for one AISWEI inverter.
// Scrapes are serialized; each one issues at most one API request.
type AisweiCollector struct {
	source  Source
	timeout time.Duration
	limiter *rate.Limiter
	logger  *slog.Logger
	metrics *MetricSet

	mu sync.Mutex
}

// NewAisweiCollector creates a new collector. minInterval bounds how often the
// vendor API is called; zero disables the limit.
func NewAisweiCollector(source Source, timeout, minInterval time.Duration, logger *slog.Logger) *AisweiCollector {
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}

	return &AisweiCollector{
		source:  source,
		timeout: timeout,
		limiter: rate.NewLimiter(limit, 1),
		logger:  logger,
		metrics: newMetricSet(),
	}
}

// Describe implements prometheus.Collector.
func (c *AisweiCollector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range c.metrics.fields {
		ch <- d
	}
	ch <- c.metrics.up
	ch <- c.metrics.deviceOnline

	c.metrics.scrapeErrors.Describe(ch)
	c.metrics.scrapeThrottled.Describe(ch)
	c.metrics.scrapeDuration.Describe(ch)
}

// Collect implements prometheus.Collector.
// It performs on-demand scraping when Prometheus scrapes the /metrics endpoint.
func (c *AisweiCollector) Collect(ch chan<- prometheus.Metric) {
	c.mu.Lock()
	defer c.mu.Unlock()

	defer func() {
		c.metrics.scrapeErrors.Collect(ch)
		c.metrics.scrapeThrottled.Collect(ch)
		c.metrics.scrapeDuration.Collect(ch)
	}()

	if !c.limiter.Allow() {
		c.logger.Debug("Scrape throttled")
		c.metrics.scrapeThrottled.Inc()
		ch <- prometheus.MustNewConstMetric(c.metrics.up, prometheus.GaugeValue, 0)
		return
	}

	up := 0.0
	if c.scrape(ch) {
		up = 1.0
	} else {
		c.metrics.scrapeErrors.Inc()
	}
	ch <- prometheus.MustNewConstMetric(c.metrics.up, prometheus.GaugeValue, up)
}

// scrape fetches and emits the device metrics, reporting success.
func (c *AisweiCollector) scrape(ch chan<- prometheus.Metric) bool {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.source.GetLastTsData(ctx)
	c.metrics.scrapeDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		c.logger.Error("Failed to get live telemetry", "error", err)
		return false
	}

	rec := mapper.Normalize(resp)
	if len(rec) == 0 {
		c.logger.Warn("No device data in telemetry reply")
		return false
	}

	c.emitDeviceMetrics(ch, rec)
	return true
}

// emitDeviceMetrics emits one gauge per telemetry field plus the online state.
func (c *AisweiCollector) emitDeviceMetrics(ch chan<- prometheus.Metric, rec mapper.Record) {
	device := rec.Text(mapper.KeyDeviceName)

	for i, f := range mapper.Fields {
		ch <- prometheus.MustNewConstMetric(c.metrics.fields[i], prometheus.GaugeValue, rec.Float(f.Key), device)
	}

	online := 0.0
	if rec.Text(mapper.KeyStatus) == mapper.StatusNormal {
		online = 1.0
	}
	ch <- prometheus.MustNewConstMetric(c.metrics.deviceOnline, prometheus.GaugeValue, online, device)
}
