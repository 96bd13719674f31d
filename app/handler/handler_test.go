package handler

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/fedorhub/ms-go-notifications/app/entity"
	"github.com/fedorhub/ms-go-notifications/app/provider"
)

type fakeEnricher struct {
	users      map[int64]*entity.User
	quantities map[string]int
}

func (f *fakeEnricher) FetchUser(_ context.Context, id int64) (*entity.User, bool) {
	u, ok := f.users[id]
	return u, ok
}

func (f *fakeEnricher) FetchProductQuantity(_ context.Context, title string) int {
	return f.quantities[title]
}

type sentMail struct {
	kind    string
	userID  int64
	message provider.Message
}

// fakeSender captures sends; safe for the order handler's concurrent fan-out.
type fakeSender struct {
	mu   sync.Mutex
	sent []sentMail
}

func (f *fakeSender) Send(_ context.Context, kind string, userID int64, msg provider.Message) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMail{kind: kind, userID: userID, message: msg})
}

func (f *fakeSender) all() []sentMail {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]sentMail(nil), f.sent...)
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}
