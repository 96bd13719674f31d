package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/fedorhub/ms-go-notifications/app/metrics"
	"github.com/fedorhub/ms-go-notifications/app/provider"
)

// NotificationRecorder persists a record of a dispatched notification so the
// read API can list it later.
type NotificationRecorder interface {
	Create(ctx context.Context, userID int64, message string, service string) error
}

// Mailer dispatches composed messages through the mail transport. Transport
// failures never propagate to the caller: email delivery is best-effort and
// the broker message must still be acknowledged. Failures surface through
// logs and metrics instead.
type Mailer struct {
	provider provider.EmailProvider
	records  NotificationRecorder
	metrics  *metrics.Metrics
	log      *logrus.Logger
}

func NewMailer(p provider.EmailProvider, records NotificationRecorder, m *metrics.Metrics, log *logrus.Logger) *Mailer {
	return &Mailer{provider: p, records: records, metrics: m, log: log}
}

// Send dispatches one message on behalf of the given event kind and records
// it for the recipient. The write-through is best-effort too: a failed insert
// must not undo an email that already went out.
func (m *Mailer) Send(ctx context.Context, kind string, userID int64, msg provider.Message) {
	entry := m.log.WithFields(logrus.Fields{
		"kind":      kind,
		"recipient": msg.To,
		"subject":   msg.Subject,
	})

	if err := m.provider.Send(ctx, msg); err != nil {
		m.metrics.EmailsFailed.WithLabelValues(kind).Inc()
		entry.WithError(err).Error("email send failed")
		return
	}
	m.metrics.EmailsSent.WithLabelValues(kind).Inc()
	entry.Info("email sent")

	if err := m.records.Create(ctx, userID, msg.Subject, kind); err != nil {
		entry.WithError(err).Warn("failed to record notification")
		return
	}
	m.metrics.NotificationsRecorded.Inc()
}
