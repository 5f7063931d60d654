package prometheus

import (
	"net/http"
	"time"

	"github.com/bnema/halo-bridge/internal/domain"
	"github.com/bnema/halo-bridge/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "halo"

// Collector implements ports.Metrics on its own registry so several bridges can live in one process.
type Collector struct {
	registry *prometheus.Registry

	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	refreshes       *prometheus.CounterVec
	attachStages    *prometheus.CounterVec
	uploadBytes     prometheus.Histogram
	finalizations   *prometheus.CounterVec
}

var _ ports.Metrics = (*Collector)(nil)

func NewCollector() *Collector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Collector{
		registry: registry,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "gateway_requests_total",
				Help:      "Gateway requests by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "gateway_request_duration_seconds",
				Help:      "Gateway request latency in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		refreshes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "token_refreshes_total",
				Help:      "Token refresh attempts by outcome",
			},
			[]string{"outcome"},
		),
		attachStages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "attach_stage_total",
				Help:      "File attach progress by stage and outcome",
			},
			[]string{"stage", "outcome"},
		),
		uploadBytes: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upload_bytes",
				Help:      "Size of uploaded submission files",
				Buckets:   prometheus.ExponentialBuckets(1<<10, 4, 10),
			},
		),
		finalizations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "finalizations_total",
				Help:      "Submission finalize attempts by outcome",
			},
			[]string{"outcome"},
		),
	}
}

func (c *Collector) ObserveRequest(operation string, outcome string, elapsed time.Duration) {
	c.requests.WithLabelValues(operation, outcome).Inc()
	c.requestDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func (c *Collector) ObserveRefresh(outcome string) {
	c.refreshes.WithLabelValues(outcome).Inc()
}

// ObserveAttach counts stage transitions. bytes is recorded only for a successful upload.
func (c *Collector) ObserveAttach(stage domain.AttachStage, outcome string, bytes int64) {
	c.attachStages.WithLabelValues(string(stage), outcome).Inc()
	if stage == domain.StageUploaded && outcome == "ok" && bytes > 0 {
		c.uploadBytes.Observe(float64(bytes))
	}
}

func (c *Collector) ObserveFinalize(outcome string) {
	c.finalizations.WithLabelValues(outcome).Inc()
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
