package event

import (
	"testing"
	"time"
)

func TestDecodeAuthEvent(t *testing.T) {
	t.Parallel()

	body := []byte(`{"type":"user_logged_in","data":{"userId":42}}`)
	ev, err := Decode(body)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	auth, ok := ev.(Auth)
	if !ok {
		t.Fatalf("expected Auth, got %T", ev)
	}
	if auth.Type != TypeUserLoggedIn {
		t.Errorf("Type = %q, want %q", auth.Type, TypeUserLoggedIn)
	}
	if auth.UserID != 42 {
		t.Errorf("UserID = %d, want 42", auth.UserID)
	}
}

func TestDecodeProductEvent(t *testing.T) {
	t.Parallel()

	body := []byte(`{
		"type": "product_updated",
		"data": {
			"title": "Widget",
			"description": "A fine widget",
			"category": "tools",
			"price": 19.99,
			"quantity": 7,
			"seller": {"id": 5},
			"createdAt": "2024-03-01T12:00:00Z"
		}
	}`)
	ev, err := Decode(body)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	product, ok := ev.(Product)
	if !ok {
		t.Fatalf("expected Product, got %T", ev)
	}
	if product.Title != "Widget" || product.Category != "tools" {
		t.Errorf("unexpected product fields: %+v", product)
	}
	if product.SellerID != 5 {
		t.Errorf("SellerID = %d, want 5", product.SellerID)
	}
	if !product.CreatedAt.Equal(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("CreatedAt = %v", product.CreatedAt)
	}
}

func TestDecodeOrderEvent(t *testing.T) {
	t.Parallel()

	body := []byte(`{
		"type": "order_placed",
		"data": {
			"userId": 1,
			"sellerIds": [7, 8],
			"titles": ["Widget", "Gadget"],
			"quantities": [2, 1]
		}
	}`)
	ev, err := Decode(body)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	order, ok := ev.(Order)
	if !ok {
		t.Fatalf("expected Order, got %T", ev)
	}
	if order.UserID != 1 {
		t.Errorf("UserID = %d, want 1", order.UserID)
	}
	if len(order.SellerIDs) != 2 || order.SellerIDs[1] != 8 {
		t.Errorf("SellerIDs = %v", order.SellerIDs)
	}
	if order.Titles[0] != "Widget" || order.Quantities[1] != 1 {
		t.Errorf("line items = %v / %v", order.Titles, order.Quantities)
	}
}

func TestDecodeOrderEventMismatchedArrays(t *testing.T) {
	t.Parallel()

	body := []byte(`{
		"type": "order_placed",
		"data": {"userId": 1, "sellerIds": [7], "titles": ["Widget", "Gadget"], "quantities": [2, 1]}
	}`)
	if _, err := Decode(body); err == nil {
		t.Fatal("expected error for mismatched line item arrays")
	}
}

func TestDecodeUserSyncEvent(t *testing.T) {
	t.Parallel()

	body := []byte(`{
		"type": "user_data_sync",
		"data": {"id": 9, "username": "ana", "email": "ana@example.com", "role": "SHOP_OWNER"}
	}`)
	ev, err := Decode(body)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}

	sync, ok := ev.(UserSync)
	if !ok {
		t.Fatalf("expected UserSync, got %T", ev)
	}
	if sync.ID != 9 || sync.Username != "ana" || sync.Role != "SHOP_OWNER" {
		t.Errorf("unexpected sync fields: %+v", sync)
	}
}

func TestDecodeUnknownType(t *testing.T) {
	t.Parallel()

	ev, err := Decode([]byte(`{"type":"price_changed","data":{}}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	unknown, ok := ev.(Unknown)
	if !ok {
		t.Fatalf("expected Unknown, got %T", ev)
	}
	if unknown.Type != "price_changed" {
		t.Errorf("Type = %q", unknown.Type)
	}
}

func TestDecodeMalformed(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"not json":        `{{{`,
		"missing type":    `{"data":{}}`,
		"bad payload":     `{"type":"user_created","data":{"userId":"not-a-number"}}`,
		"bad order items": `{"type":"order_placed","data":{"sellerIds":"nope"}}`,
	}
	for name, body := range cases {
		if _, err := Decode([]byte(body)); err == nil {
			t.Errorf("%s: expected decode error", name)
		}
	}
}
