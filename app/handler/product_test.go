package handler

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fedorhub/ms-go-notifications/app/entity"
	"github.com/fedorhub/ms-go-notifications/app/event"
)

func TestProductHandlerNotifiesSeller(t *testing.T) {
	t.Parallel()

	enricher := &fakeEnricher{users: map[int64]*entity.User{
		5: {ID: 5, Username: "ana", Email: "ana@example.com", Role: entity.RoleShopOwner},
	}}
	sender := &fakeSender{}
	h := NewProductHandler(enricher, sender, testLogger())

	ev := event.Product{
		Type:      event.TypeProductCreated,
		Title:     "Widget",
		Price:     19.99,
		Quantity:  7,
		SellerID:  5,
		CreatedAt: time.Now(),
	}
	if err := h.Handle(context.Background(), ev); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	sent := sender.all()
	if len(sent) != 1 {
		t.Fatalf("expected exactly 1 email, got %d", len(sent))
	}
	if sent[0].message.To != "ana@example.com" {
		t.Errorf("To = %q", sent[0].message.To)
	}
	if sent[0].message.Subject != "Product Created Successfully" {
		t.Errorf("subject = %q", sent[0].message.Subject)
	}
}

func TestProductHandlerSubtypes(t *testing.T) {
	t.Parallel()

	enricher := &fakeEnricher{users: map[int64]*entity.User{
		5: {ID: 5, Username: "ana", Email: "ana@example.com"},
	}}
	sender := &fakeSender{}
	h := NewProductHandler(enricher, sender, testLogger())

	for _, typ := range []event.Type{event.TypeProductUpdated, event.TypeProductDeleted} {
		ev := event.Product{Type: typ, Title: "Widget", Category: "tools", SellerID: 5, Quantity: 3}
		if err := h.Handle(context.Background(), ev); err != nil {
			t.Fatalf("Handle %s: %v", typ, err)
		}
	}

	sent := sender.all()
	if len(sent) != 2 {
		t.Fatalf("expected 2 emails, got %d", len(sent))
	}
	if !strings.Contains(sent[0].message.HTML, "Category:</b> tools") {
		t.Errorf("updated copy must include category: %q", sent[0].message.HTML)
	}
	if !strings.Contains(sent[1].message.HTML, "Remaining Quantity Before Deletion") {
		t.Errorf("deleted copy must include remaining quantity: %q", sent[1].message.HTML)
	}
}

func TestProductHandlerSellerNotFound(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	h := NewProductHandler(&fakeEnricher{}, sender, testLogger())

	ev := event.Product{Type: event.TypeProductCreated, Title: "Widget", SellerID: 404}
	if err := h.Handle(context.Background(), ev); err != nil {
		t.Fatalf("missing seller must be a no-op, got %v", err)
	}
	if len(sender.all()) != 0 {
		t.Fatal("expected no email for missing seller")
	}
}

func TestProductHandlerUnknownEvent(t *testing.T) {
	t.Parallel()

	sender := &fakeSender{}
	h := NewProductHandler(&fakeEnricher{}, sender, testLogger())

	if err := h.Handle(context.Background(), event.Unknown{Type: "product_archived"}); err != nil {
		t.Fatalf("unknown type must count as handled, got %v", err)
	}
	if len(sender.all()) != 0 {
		t.Fatal("expected no email for unknown type")
	}
}
