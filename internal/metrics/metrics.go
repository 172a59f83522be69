package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Outcomes recorded for public submissions.
const (
	OutcomeAccepted = "accepted"
	OutcomeHoneypot = "honeypot"
	OutcomeRejected = "captcha_rejected"
	OutcomeInvalid  = "invalid"
	OutcomeFailed   = "failed"
)

// Metrics holds the domain counters. Best-effort side effects that fail
// are only visible here and in the log.
type Metrics struct {
	submissions        *prometheus.CounterVec
	notifyFailures     *prometheus.CounterVec
	assetDeleteFailure prometheus.Counter
	auditWriteFailure  prometheus.Counter
}

// New registers the domain counters on reg.
func New(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intake_submissions_total",
				Help: "Public submissions by channel and outcome.",
			},
			[]string{"channel", "outcome"},
		),
		notifyFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intake_notification_failures_total",
				Help: "Notifications that could not be delivered.",
			},
			[]string{"channel"},
		),
		assetDeleteFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "asset_delete_failures_total",
			Help: "Managed asset deletions that failed and left an orphan.",
		}),
		auditWriteFailure: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "audit_write_failures_total",
			Help: "Access log entries that could not be written.",
		}),
	}

	for _, c := range []prometheus.Collector{m.submissions, m.notifyFailures, m.assetDeleteFailure, m.auditWriteFailure} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Discard returns counters registered on a throwaway registry.
func Discard() *Metrics {
	m, _ := New(prometheus.NewRegistry())
	return m
}

func (m *Metrics) Submission(channel, outcome string) {
	m.submissions.WithLabelValues(channel, outcome).Inc()
}

func (m *Metrics) NotifyFailed(channel string) {
	m.notifyFailures.WithLabelValues(channel).Inc()
}

func (m *Metrics) AssetDeleteFailed() {
	m.assetDeleteFailure.Inc()
}

func (m *Metrics) AuditWriteFailed() {
	m.auditWriteFailure.Inc()
}
