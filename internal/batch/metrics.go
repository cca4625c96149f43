package batch

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"

	"github.com/simplesurance/upstream-updater/internal/logfields"
)

const metricNamespace = "upstream_updater"

const (
	outcomesMetricName    = "repository_outcomes_total"
	runsMetricName        = "batch_runs_total"
	runDurationMetricName = "batch_duration_seconds"
)

const (
	statusLabel = "status"
	stepLabel   = "step"
	resultLabel = "result"
)

const (
	resultLabelSuccessVal  = "success"
	resultLabelFailuresVal = "finished_with_failures"
	resultLabelAbortedVal  = "aborted"
)

type metricCollector struct {
	logger      *zap.Logger
	outcomes    *prometheus.CounterVec
	runs        *prometheus.CounterVec
	runDuration prometheus.Gauge
}

var metrics = newMetricCollector()

func newMetricCollector() *metricCollector {
	return &metricCollector{
		logger: zap.L().Named(loggerName).Named("metrics"),
		outcomes: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      outcomesMetricName,
				Help:      "count of processed repositories by outcome",
			},
			[]string{statusLabel, stepLabel},
		),
		runs: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricNamespace,
				Name:      runsMetricName,
				Help:      "count of batch runs",
			},
			[]string{resultLabel},
		),
		runDuration: promauto.NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricNamespace,
				Name:      runDurationMetricName,
				Help:      "duration of the last batch run",
			},
		),
	}
}

func (m *metricCollector) logGetMetricFailed(metricName string, err error) {
	m.logger.Warn(
		"could not record metric",
		zap.String("metric", metricName),
		logfields.Event("recording_metric_failed"),
		zap.Error(err),
	)
}

func (m *metricCollector) OutcomeInc(o *Outcome) {
	cnt, err := m.outcomes.GetMetricWith(prometheus.Labels{
		statusLabel: string(o.Status),
		stepLabel:   string(o.FailedStep),
	})
	if err != nil {
		m.logGetMetricFailed(outcomesMetricName, err)
		return
	}

	cnt.Inc()
}

func (m *metricCollector) RunFinished(result string, duration time.Duration) {
	cnt, err := m.runs.GetMetricWith(prometheus.Labels{resultLabel: result})
	if err != nil {
		m.logGetMetricFailed(runsMetricName, err)
		return
	}

	cnt.Inc()
	m.runDuration.Set(duration.Seconds())
}
