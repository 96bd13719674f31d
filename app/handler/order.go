package handler

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/fedorhub/ms-go-notifications/app/composer"
	"github.com/fedorhub/ms-go-notifications/app/entity"
	"github.com/fedorhub/ms-go-notifications/app/event"
)

const kindOrder = "order"

// OrderHandler fans out over an order's line items: one email per seller that
// can be resolved, plus one consolidated email to the buyer. Line items are
// independent best-effort operations; no single item can abort its siblings
// or the buyer email.
type OrderHandler struct {
	enricher Enricher
	sender   Sender
	log      *logrus.Logger
}

func NewOrderHandler(enricher Enricher, sender Sender, log *logrus.Logger) *OrderHandler {
	return &OrderHandler{enricher: enricher, sender: sender, log: log}
}

func (h *OrderHandler) Handle(ctx context.Context, ev event.Event) error {
	order, ok := ev.(event.Order)
	if !ok {
		logUnhandled(h.log, kindOrder, ev.EventType())
		return nil
	}

	// The buyer lookup has no ordering dependency on line items; run it
	// alongside them.
	buyerCh := make(chan *entity.User, 1)
	go func() {
		buyer, found := h.enricher.FetchUser(ctx, order.UserID)
		if !found {
			buyer = nil
		}
		buyerCh <- buyer
	}()

	var wg sync.WaitGroup
	for i := range order.Titles {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h.notifySeller(ctx, order, i)
		}(i)
	}
	wg.Wait()

	// The buyer email waits only on its own lookup. A missing buyer skips
	// this email; the seller emails above are unaffected.
	if buyer := <-buyerCh; buyer != nil {
		h.sender.Send(ctx, kindOrder, buyer.ID, composer.BuyerOrderSummary(buyer, order))
	}
	return nil
}

// notifySeller processes one line item: resolve the seller and current stock
// concurrently, then send the seller-facing email if the seller exists.
func (h *OrderHandler) notifySeller(ctx context.Context, order event.Order, i int) {
	remainingCh := make(chan int, 1)
	go func() {
		remainingCh <- h.enricher.FetchProductQuantity(ctx, order.Titles[i])
	}()

	seller, found := h.enricher.FetchUser(ctx, order.SellerIDs[i])
	remaining := <-remainingCh
	if !found {
		return
	}

	msg := composer.SellerOrderLine(seller, order.Type, order.Titles[i], order.Quantities[i], remaining)
	h.sender.Send(ctx, kindOrder, seller.ID, msg)
}
