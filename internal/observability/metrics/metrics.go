package metrics

import "github.com/prometheus/client_golang/prometheus"

// LeadMetrics exposes counters for the lead capture flow.
type LeadMetrics struct {
	submittedTotal *prometheus.CounterVec
	notifyTotal    *prometheus.CounterVec
}

func NewLeadMetrics(reg prometheus.Registerer) *LeadMetrics {
	m := &LeadMetrics{
		submittedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "brandmetro",
			Subsystem: "leads",
			Name:      "submitted_total",
			Help:      "Total lead form submissions",
		}, []string{"requirement", "status"}),
		notifyTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "brandmetro",
			Subsystem: "leads",
			Name:      "notification_total",
			Help:      "Outcomes of best-effort lead notifications",
		}, []string{"step", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.submittedTotal, m.notifyTotal)
	return m
}

// ObserveSubmission records one lead submission attempt.
func (m *LeadMetrics) ObserveSubmission(requirement, status string) {
	if m == nil {
		return
	}
	m.submittedTotal.WithLabelValues(requirement, status).Inc()
}

// ObserveNotification records the outcome of one notification step
// (pdf, requester_email, admin_email).
func (m *LeadMetrics) ObserveNotification(step, status string) {
	if m == nil {
		return
	}
	m.notifyTotal.WithLabelValues(step, status).Inc()
}

// ImportMetrics counts spreadsheet import row outcomes.
type ImportMetrics struct {
	rowsTotal *prometheus.CounterVec
}

func NewImportMetrics(reg prometheus.Registerer) *ImportMetrics {
	m := &ImportMetrics{
		rowsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "brandmetro",
			Subsystem: "import",
			Name:      "rows_total",
			Help:      "Spreadsheet import rows by outcome",
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.rowsTotal)
	return m
}

// ObserveRows records the tally of one import batch.
func (m *ImportMetrics) ObserveRows(success, failed int) {
	if m == nil {
		return
	}
	m.rowsTotal.WithLabelValues("success").Add(float64(success))
	m.rowsTotal.WithLabelValues("failed").Add(float64(failed))
}
