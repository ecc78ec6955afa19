package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// CartMetrics records cart engine and catalog load activity.
type CartMetrics struct {
	operations    *prometheus.CounterVec
	rejections    *prometheus.CounterVec
	saveFailures  prometheus.Counter
	catalogLoad   prometheus.Histogram
	catalogErrors prometheus.Counter
}

// NewCartMetrics registers the widget metrics on the provided registerer.
func NewCartMetrics(reg prometheus.Registerer) *CartMetrics {
	if reg == nil {
		return &CartMetrics{}
	}
	operations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_operations_total",
		Help: "Cart mutations by operation and outcome.",
	}, []string{"op", "result"})
	rejections := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "cart_rejections_total",
		Help: "Rejected add-to-cart attempts by reason.",
	}, []string{"reason"})
	saveFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "cart_save_failures_total",
		Help: "Cart persistence failures (in-memory state kept).",
	})
	catalogLoad := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_load_duration_seconds",
		Help:    "Duration of catalog source fetches in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	catalogErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "catalog_load_failures_total",
		Help: "Failed catalog source fetches.",
	})
	reg.MustRegister(operations, rejections, saveFailures, catalogLoad, catalogErrors)
	return &CartMetrics{
		operations:    operations,
		rejections:    rejections,
		saveFailures:  saveFailures,
		catalogLoad:   catalogLoad,
		catalogErrors: catalogErrors,
	}
}

// IncOperation counts a cart mutation outcome, e.g. ("add", "merged").
func (c *CartMetrics) IncOperation(op, result string) {
	if c == nil || c.operations == nil {
		return
	}
	c.operations.WithLabelValues(normalizeLabel(op), normalizeLabel(result)).Inc()
}

// IncRejection counts a rejected add by reason.
func (c *CartMetrics) IncRejection(reason string) {
	if c == nil || c.rejections == nil {
		return
	}
	c.rejections.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncSaveFailure counts a persistence failure.
func (c *CartMetrics) IncSaveFailure() {
	if c == nil || c.saveFailures == nil {
		return
	}
	c.saveFailures.Inc()
}

// ObserveCatalogLoad records the duration of a catalog fetch.
func (c *CartMetrics) ObserveCatalogLoad(duration time.Duration) {
	if c == nil || c.catalogLoad == nil {
		return
	}
	c.catalogLoad.Observe(duration.Seconds())
}

// IncCatalogError counts a failed catalog fetch.
func (c *CartMetrics) IncCatalogError() {
	if c == nil || c.catalogErrors == nil {
		return
	}
	c.catalogErrors.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
