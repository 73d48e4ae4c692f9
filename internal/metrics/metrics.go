package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Gate run outcomes.
const (
	GateOutcomePassed = "passed"
	GateOutcomeFailed = "failed"
	GateOutcomeError  = "error"
)

var (
	evaluationsTotal *prometheus.CounterVec
	evaluationScores prometheus.Histogram
	gateRunsTotal    *prometheus.CounterVec

	initOnce sync.Once
)

// Init registers the evaluator metrics with the default registry.
// Must be called once at startup.
func Init() {
	initOnce.Do(func() {
		evaluationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "answer_evaluations_total",
			Help: "Completed answer evaluations by verdict",
		}, []string{"verdict"})

		evaluationScores = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "answer_evaluation_score",
			Help:    "Distribution of answer scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		})

		gateRunsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "article_gate_runs_total",
			Help: "Completed quality gate runs by outcome",
		}, []string{"outcome"})

		prometheus.MustRegister(evaluationsTotal, evaluationScores, gateRunsTotal)
	})
}

// RecordEvaluation counts one finished evaluation. Safe to call before
// Init; it just drops the sample.
func RecordEvaluation(verdict string, score int) {
	if evaluationsTotal == nil {
		return
	}
	evaluationsTotal.WithLabelValues(verdict).Inc()
	evaluationScores.Observe(float64(score))
}

// RecordGateRun counts one finished quality gate run.
func RecordGateRun(outcome string) {
	if gateRunsTotal == nil {
		return
	}
	gateRunsTotal.WithLabelValues(outcome).Inc()
}
