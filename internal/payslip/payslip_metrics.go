package payslip

import "github.com/prometheus/client_golang/prometheus"

const (
	skipReasonEntryMissing  = "entry_missing"
	skipReasonAlreadyExists = "already_exists"
)

type Metrics struct {
	generated prometheus.Counter
	errors    prometheus.Counter
	skipped   *prometheus.CounterVec
}

// NewMetrics mendaftarkan counter generate payslip. reg nil = tidak didaftarkan.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		generated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "payslip_generated_total",
			Help: "Number of payslips generated.",
		}),
		errors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "payslip_generation_errors_total",
			Help: "Number of payroll entries that failed payslip generation.",
		}),
		skipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "payslip_skipped_total",
			Help: "Number of payroll entries skipped during payslip generation.",
		}, []string{"reason"}),
	}
	if reg != nil {
		reg.MustRegister(m.generated, m.errors, m.skipped)
	}
	return m
}
