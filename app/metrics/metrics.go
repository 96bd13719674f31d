package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics groups the Prometheus instruments used across the service.
// Registered once at startup via New and passed by pointer wherever needed.
type Metrics struct {
	EventsConsumed        *prometheus.CounterVec
	EmailsSent            *prometheus.CounterVec
	EmailsFailed          *prometheus.CounterVec
	LookupFailures        *prometheus.CounterVec
	NotificationsRecorded prometheus.Counter
}

// New registers all instruments with the given registerer. Using an injected
// registerer instead of prometheus.DefaultRegisterer keeps tests isolated.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		EventsConsumed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notification_events_consumed_total",
			Help: "Broker deliveries processed, by queue and outcome (acked, rejected, duplicate).",
		}, []string{"queue", "outcome"}),

		EmailsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notification_emails_sent_total",
			Help: "Emails handed to the mail transport successfully, by event kind.",
		}, []string{"kind"}),

		EmailsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notification_emails_failed_total",
			Help: "Emails the mail transport refused, by event kind. The delivery is still acked.",
		}, []string{"kind"}),

		LookupFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notification_lookup_failures_total",
			Help: "Enrichment lookups that failed and were degraded, by target (users, products).",
		}, []string{"target"}),

		NotificationsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "notification_records_written_total",
			Help: "Notification rows written through to the store after a successful send.",
		}),
	}

	reg.MustRegister(
		m.EventsConsumed,
		m.EmailsSent,
		m.EmailsFailed,
		m.LookupFailures,
		m.NotificationsRecorded,
	)

	return m
}
