package runtime

import (
	"strings"

	"github.com/MixinNetwork/launchpad/chain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const metricsNamespace = "launchpad"

type Metrics struct {
	extrinsics *prometheus.CounterVec
	events     prometheus.Counter
	block      prometheus.Gauge
	duration   prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		extrinsics: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "extrinsics_total",
				Help:      "number of dispatched extrinsics by call and result",
			},
			[]string{"call", "result"},
		),
		events: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "events_total",
				Help:      "number of events deposited by committed extrinsics",
			},
		),
		block: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "block_height",
				Help:      "current block number",
			},
		),
		duration: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "extrinsic_duration_seconds",
				Help:      "time spent applying an extrinsic",
				Buckets:   prometheus.DefBuckets,
			},
		),
	}
}

// ResultLabel maps an extrinsic error to its metrics label.
func ResultLabel(err error) string {
	if err == nil {
		return "ok"
	}
	if kind := chain.KindOf(err); kind != nil {
		return strings.ReplaceAll(kind.Error(), " ", "_")
	}
	return "error"
}
