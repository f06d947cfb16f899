package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestLeadMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewLeadMetrics(reg)

	m.ObserveSubmission("advertise", "created")
	m.ObserveSubmission("advertise", "created")
	m.ObserveNotification("requester_email", "error")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.submittedTotal.WithLabelValues("advertise", "created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.notifyTotal.WithLabelValues("requester_email", "error")))
}

func TestImportMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewImportMetrics(reg)

	m.ObserveRows(9, 1)

	assert.Equal(t, 9.0, testutil.ToFloat64(m.rowsTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rowsTotal.WithLabelValues("failed")))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var lm *LeadMetrics
	var im *ImportMetrics
	lm.ObserveSubmission("advertise", "created")
	lm.ObserveNotification("pdf", "ok")
	im.ObserveRows(1, 0)
}
