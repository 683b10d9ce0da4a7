package telemetry

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jamesainslie/go-ner/metric"
	"github.com/jamesainslie/go-ner/tagset"
)

// Collectors holds the Prometheus collectors of an evaluation run.
type Collectors struct {
	Evaluations  prometheus.Counter
	Spans        *prometheus.CounterVec
	Score        *prometheus.GaugeVec
	BatchLatency prometheus.Histogram
}

// NewCollectors creates the collectors and registers them with reg. A nil
// reg leaves them unregistered. Collectors already present in reg are
// reused, so repeated evaluations share one set of series.
func NewCollectors(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		Evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "ner_evaluations_total",
			Help: "Total number of completed evaluations.",
		}),
		Spans: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ner_spans_total",
			Help: "Entity spans extracted, by source (predicted, gold) and category.",
		}, []string{"source", "category"}),
		Score: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ner_score",
			Help: "Most recent evaluation score by metric (precision, recall, f1).",
		}, []string{"metric"}),
		BatchLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "ner_batch_inference_seconds",
			Help:    "Model inference latency per batch in seconds.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
	}
	if reg == nil {
		return c
	}

	c.Evaluations = register(reg, c.Evaluations)
	c.Spans = register(reg, c.Spans)
	c.Score = register(reg, c.Score)
	c.BatchLatency = register(reg, c.BatchLatency)
	return c
}

// ObserveMetrics records one finished evaluation.
func (c *Collectors) ObserveMetrics(m metric.Metrics) {
	c.Evaluations.Inc()
	c.Score.WithLabelValues("precision").Set(m.Precision)
	c.Score.WithLabelValues("recall").Set(m.Recall)
	c.Score.WithLabelValues("f1").Set(m.F1)
	for _, cat := range tagset.Categories {
		cm := m.ByCategory[cat]
		c.Spans.WithLabelValues("predicted", cat.String()).Add(float64(cm.PredictedSpans))
		c.Spans.WithLabelValues("gold", cat.String()).Add(float64(cm.GoldSpans))
	}
}

// ObserveBatch records the inference latency of one batch.
func (c *Collectors) ObserveBatch(d time.Duration) {
	c.BatchLatency.Observe(d.Seconds())
}

func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// Handler serves the metrics gathered by g.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}

// StartServer serves /metrics on addr in the background and returns the
// server's Shutdown.
func StartServer(addr string, g prometheus.Gatherer) (shutdown func(context.Context) error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler(g))

	server := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("metrics server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server error", "error", err)
		}
	}()

	return server.Shutdown
}
