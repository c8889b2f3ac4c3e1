package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Colectores del motor de adherencia. Se registran en el registry default
// y se exponen en /metrics.
var (
	IntakeAdjudications = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "adherence",
		Name:      "intake_adjudications_total",
		Help:      "Intake attempts adjudicated, by resulting status",
	}, []string{"status"})

	OracleDegraded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "adherence",
		Name:      "oracle_degraded_total",
		Help:      "Verification oracle calls that failed and were downgraded to FAILED",
	})

	StorageFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "adherence",
		Name:      "storage_failures_total",
		Help:      "Object store or event log write failures, by pipeline stage",
	}, []string{"stage"})

	MoodCheckIns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "adherence",
		Name:      "mood_checkins_total",
		Help:      "Mood check-ins recorded, by flagged-for-review",
	}, []string{"flagged"})

	PanelScanSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "adherence",
		Name:      "panel_scan_seconds",
		Help:      "Duration of a clinician panel alert scan",
		Buckets:   prometheus.DefBuckets,
	})

	PanelPatients = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "adherence",
		Name:      "panel_patients",
		Help:      "Patients analyzed per clinician panel scan",
		Buckets:   []float64{1, 5, 10, 25, 50, 100, 250},
	})
)
