package handler

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/fedorhub/ms-go-notifications/app/composer"
	"github.com/fedorhub/ms-go-notifications/app/event"
	"github.com/fedorhub/ms-go-notifications/app/provider"
)

const kindAuth = "auth"

// AuthHandler reacts to authentication lifecycle events with exactly one
// email per event.
type AuthHandler struct {
	enricher Enricher
	sender   Sender
	log      *logrus.Logger
}

func NewAuthHandler(enricher Enricher, sender Sender, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{enricher: enricher, sender: sender, log: log}
}

func (h *AuthHandler) Handle(ctx context.Context, ev event.Event) error {
	auth, ok := ev.(event.Auth)
	if !ok {
		logUnhandled(h.log, kindAuth, ev.EventType())
		return nil
	}

	// A missing user is a valid outcome: nobody to notify.
	user, found := h.enricher.FetchUser(ctx, auth.UserID)
	if !found {
		return nil
	}

	var msg provider.Message
	switch auth.Type {
	case event.TypeUserCreated:
		msg = composer.Welcome(user)
	case event.TypeUserLoggedIn:
		msg = composer.LoginAlert(user)
	case event.TypeUserLoggedOut:
		msg = composer.LogoutNotice(user)
	default:
		logUnhandled(h.log, kindAuth, auth.Type)
		return nil
	}

	h.sender.Send(ctx, kindAuth, user.ID, msg)
	return nil
}
