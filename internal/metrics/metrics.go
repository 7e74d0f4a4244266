// Package metrics provides the centralized Prometheus registry for the
// tips pipeline.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	ResultsIngestedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tennis_tips",
		Name:      "results_ingested_total",
		Help:      "Total number of match result rows ingested",
	}, []string{"source"})
	OddsIngestedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tennis_tips",
		Name:      "odds_ingested_total",
		Help:      "Total number of odds rows ingested",
	}, []string{"source"})
	RowsSkippedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tennis_tips",
		Name:      "rows_skipped_total",
		Help:      "Total number of raw rows skipped during parsing",
	}, []string{"source", "reason"})
	OddsMatchedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tennis_tips",
		Name:      "odds_matched_total",
		Help:      "Total number of results joined with odds",
	})
	OddsUnmatchedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tennis_tips",
		Name:      "odds_unmatched_total",
		Help:      "Total number of results left without odds",
	})
	TipsGeneratedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tennis_tips",
		Name:      "tips_generated_total",
		Help:      "Total number of tips generated",
	}, []string{"decision"})
	TrainingRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tennis_tips",
		Name:      "training_runs_total",
		Help:      "Total number of model training runs",
	})
)

// Gauge metrics
var (
	RatedPlayers = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tennis_tips",
		Name:      "rated_players",
		Help:      "Number of players with rating state after replay",
	})
	ModelLogLoss = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tennis_tips",
		Name:      "model_log_loss",
		Help:      "Validation log loss of the last trained model",
	})
	ModelAUC = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "tennis_tips",
		Name:      "model_auc",
		Help:      "Validation AUC of the last trained model",
	})
)

// Histogram metrics
var (
	IngestionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "tennis_tips",
		Name:      "ingestion_duration_seconds",
		Help:      "Duration of historical ingestion runs in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600, 1800},
	})
	ReplayDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "tennis_tips",
		Name:      "replay_duration_seconds",
		Help:      "Duration of rating replays in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	TrainingDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "tennis_tips",
		Name:      "training_duration_seconds",
		Help:      "Duration of model training runs in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(ResultsIngestedTotal)
		registry.MustRegister(OddsIngestedTotal)
		registry.MustRegister(RowsSkippedTotal)
		registry.MustRegister(OddsMatchedTotal)
		registry.MustRegister(OddsUnmatchedTotal)
		registry.MustRegister(TipsGeneratedTotal)
		registry.MustRegister(TrainingRunsTotal)

		registry.MustRegister(RatedPlayers)
		registry.MustRegister(ModelLogLoss)
		registry.MustRegister(ModelAUC)

		registry.MustRegister(IngestionDuration)
		registry.MustRegister(ReplayDuration)
		registry.MustRegister(TrainingDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordMergeStats records one merge run's joined and unjoined counts.
func RecordMergeStats(matched, unmatched int) {
	OddsMatchedTotal.Add(float64(matched))
	OddsUnmatchedTotal.Add(float64(unmatched))
}

// RecordTip records one generated tip by decision outcome.
func RecordTip(decision bool) {
	if decision {
		TipsGeneratedTotal.WithLabelValues("bet").Inc()
	} else {
		TipsGeneratedTotal.WithLabelValues("pass").Inc()
	}
}

// RecordTraining records a training run and its headline metrics.
func RecordTraining(durationSeconds, logLoss, auc float64) {
	TrainingRunsTotal.Inc()
	TrainingDuration.Observe(durationSeconds)
	ModelLogLoss.Set(logLoss)
	ModelAUC.Set(auc)
}
