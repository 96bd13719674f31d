package handler

import (
	"context"
	"strings"
	"testing"

	"github.com/fedorhub/ms-go-notifications/app/entity"
	"github.com/fedorhub/ms-go-notifications/app/event"
)

func orderFixture(t event.Type) event.Order {
	return event.Order{
		Type:       t,
		UserID:     1,
		SellerIDs:  []int64{7, 8},
		Titles:     []string{"Widget", "Gadget"},
		Quantities: []int{2, 1},
	}
}

func TestOrderHandlerAllPartiesFound(t *testing.T) {
	t.Parallel()

	enricher := &fakeEnricher{
		users: map[int64]*entity.User{
			1: {ID: 1, Username: "buyer", Email: "buyer@example.com"},
			7: {ID: 7, Username: "seven", Email: "seven@example.com"},
			8: {ID: 8, Username: "eight", Email: "eight@example.com"},
		},
		quantities: map[string]int{"Widget": 10, "Gadget": 4},
	}
	sender := &fakeSender{}
	h := NewOrderHandler(enricher, sender, testLogger())

	if err := h.Handle(context.Background(), orderFixture(event.TypeOrderPlaced)); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	sent := sender.all()
	if len(sent) != 3 {
		t.Fatalf("expected 1 buyer + 2 seller emails, got %d", len(sent))
	}

	recipients := map[string]bool{}
	for _, s := range sent {
		recipients[s.message.To] = true
	}
	for _, want := range []string{"buyer@example.com", "seven@example.com", "eight@example.com"} {
		if !recipients[want] {
			t.Errorf("missing email to %s", want)
		}
	}
}

func TestOrderHandlerMissingSellerSkipsOnlyThatLineItem(t *testing.T) {
	t.Parallel()

	// Seller 8 is unknown: exactly one seller email plus the buyer email.
	enricher := &fakeEnricher{
		users: map[int64]*entity.User{
			1: {ID: 1, Username: "buyer", Email: "buyer@example.com"},
			7: {ID: 7, Username: "seven", Email: "seven@example.com"},
		},
		quantities: map[string]int{"Widget": 10},
	}
	sender := &fakeSender{}
	h := NewOrderHandler(enricher, sender, testLogger())

	if err := h.Handle(context.Background(), orderFixture(event.TypeOrderPlaced)); err != nil {
		t.Fatalf("handler must still report success, got %v", err)
	}

	sent := sender.all()
	if len(sent) != 2 {
		t.Fatalf("expected 2 emails, got %d", len(sent))
	}
	for _, s := range sent {
		if s.message.To == "eight@example.com" {
			t.Error("unexpected email to the missing seller")
		}
	}
}

func TestOrderHandlerMissingBuyerSkipsOnlyBuyerEmail(t *testing.T) {
	t.Parallel()

	enricher := &fakeEnricher{
		users: map[int64]*entity.User{
			7: {ID: 7, Username: "seven", Email: "seven@example.com"},
			8: {ID: 8, Username: "eight", Email: "eight@example.com"},
		},
	}
	sender := &fakeSender{}
	h := NewOrderHandler(enricher, sender, testLogger())

	if err := h.Handle(context.Background(), orderFixture(event.TypeOrderUpdated)); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	sent := sender.all()
	if len(sent) != 2 {
		t.Fatalf("expected only the 2 seller emails, got %d", len(sent))
	}
	for _, s := range sent {
		if s.message.Subject != "Order Updated" {
			t.Errorf("subject = %q", s.message.Subject)
		}
	}
}

func TestOrderHandlerUnknownStockRendersUnknown(t *testing.T) {
	t.Parallel()

	// No quantities at all: the index lookup degrades, the email still goes.
	enricher := &fakeEnricher{
		users: map[int64]*entity.User{
			7: {ID: 7, Username: "seven", Email: "seven@example.com"},
			8: {ID: 8, Username: "eight", Email: "eight@example.com"},
		},
	}
	sender := &fakeSender{}
	h := NewOrderHandler(enricher, sender, testLogger())

	if err := h.Handle(context.Background(), orderFixture(event.TypeOrderPlaced)); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	sent := sender.all()
	if len(sent) != 2 {
		t.Fatalf("expected 2 seller emails, got %d", len(sent))
	}
	for _, s := range sent {
		if !strings.Contains(s.message.HTML, "Remaining Stock:</b> Unknown") {
			t.Errorf("expected Unknown stock in %q", s.message.HTML)
		}
	}
}

func TestOrderHandlerCancellation(t *testing.T) {
	t.Parallel()

	enricher := &fakeEnricher{
		users: map[int64]*entity.User{
			1: {ID: 1, Username: "buyer", Email: "buyer@example.com"},
			7: {ID: 7, Username: "seven", Email: "seven@example.com"},
			8: {ID: 8, Username: "eight", Email: "eight@example.com"},
		},
	}
	sender := &fakeSender{}
	h := NewOrderHandler(enricher, sender, testLogger())

	if err := h.Handle(context.Background(), orderFixture(event.TypeOrderDeleted)); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	for _, s := range sender.all() {
		if s.message.Subject != "Order Cancelled" {
			t.Errorf("subject = %q, want Order Cancelled", s.message.Subject)
		}
	}
}

func TestOrderHandlerUnknownEvent(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	h := NewOrderHandler(&fakeEnricher{}, sender, testLogger())

	if err := h.Handle(context.Background(), event.Unknown{Type: "order_archived"}); err != nil {
		t.Fatalf("unknown type must count as handled, got %v", err)
	}
	if len(sender.all()) != 0 {
		t.Fatal("expected no email for unknown type")
	}
}
