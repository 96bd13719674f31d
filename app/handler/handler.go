// Package handler holds the per-queue dispatch logic: one handler per event
// category, each orchestrating enrichment, composition, and send, and each
// defining its own partial-failure policy.
package handler

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/fedorhub/ms-go-notifications/app/entity"
	"github.com/fedorhub/ms-go-notifications/app/event"
	"github.com/fedorhub/ms-go-notifications/app/provider"
)

// Handler reacts to one queue's decoded events. A returned error rejects the
// delivery without requeue; nil acknowledges it.
type Handler interface {
	Handle(ctx context.Context, ev event.Event) error
}

// Enricher resolves identifiers against external state before composition.
type Enricher interface {
	FetchUser(ctx context.Context, id int64) (*entity.User, bool)
	FetchProductQuantity(ctx context.Context, title string) int
}

// Sender dispatches one composed message, best-effort.
type Sender interface {
	Send(ctx context.Context, kind string, userID int64, msg provider.Message)
}

// logUnhandled records an event type a handler does not recognize. The event
// still counts as handled so the delivery is acknowledged.
func logUnhandled(log *logrus.Logger, queueKind string, t event.Type) {
	log.WithFields(logrus.Fields{
		"kind": queueKind,
		"type": t,
	}).Warn("unhandled event type")
}
