package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for the application.
type Metrics struct {
	CheckIns           *prometheus.CounterVec   // Counter for check-in/check-out events, by source
	BulletinsGenerated prometheus.Counter       // Counter for generated bulletins
	PaymentsProcessed  *prometheus.CounterVec   // Counter for processed payments, by method
	PayrollGeneration  *prometheus.HistogramVec // Histogram for pay-run generation durations
	ReportGeneration   *prometheus.HistogramVec // Histogram for Excel report generation durations
}

// NewMetrics registers the application metrics with the provided Registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		CheckIns: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "paietrack_attendance_events_total",
			Help: "Total number of attendance events",
		}, []string{"action", "source"}), // action: check_in, check_out; source: session, qr
		BulletinsGenerated: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "paietrack_bulletins_generated_total",
			Help: "Total number of generated bulletins",
		}),
		PaymentsProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "paietrack_payments_processed_total",
			Help: "Total number of processed payments",
		}, []string{"method"}),
		PayrollGeneration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "paietrack_payrun_generation_duration_seconds",
			Help:    "Duration of pay-run bulletin generation.",
			Buckets: prometheus.DefBuckets,
		}, []string{"status"}), // status: ok, error
		ReportGeneration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name: "paietrack_report_generation_duration_seconds",
			Help: "Duration of Excel report generation.",
		}, []string{"report"}), // report: attendance, payroll
	}
}
