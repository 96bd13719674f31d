package handler

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fedorhub/ms-go-notifications/app/entity"
	"github.com/fedorhub/ms-go-notifications/app/event"
)

const kindUserSync = "user_sync"

// UserUpserter writes a synced user record into the local store.
type UserUpserter interface {
	Upsert(ctx context.Context, u entity.User) error
}

// UserSyncHandler mirrors upstream user records into the local store.
// Idempotent by construction: repeating the same event converges to the same
// stored state.
type UserSyncHandler struct {
	users UserUpserter
	log   *logrus.Logger
}

func NewUserSyncHandler(users UserUpserter, log *logrus.Logger) *UserSyncHandler {
	return &UserSyncHandler{users: users, log: log}
}

func (h *UserSyncHandler) Handle(ctx context.Context, ev event.Event) error {
	sync, ok := ev.(event.UserSync)
	if !ok {
		logUnhandled(h.log, kindUserSync, ev.EventType())
		return nil
	}

	u := entity.User{
		ID:       sync.ID,
		Username: sync.Username,
		Email:    sync.Email,
		Role:     sync.Role,
	}
	if err := h.users.Upsert(ctx, u); err != nil {
		return fmt.Errorf("sync user %d: %w", sync.ID, err)
	}

	h.log.WithField("user_id", sync.ID).Info("user data synced")
	return nil
}
