package handler

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/fedorhub/ms-go-notifications/app/composer"
	"github.com/fedorhub/ms-go-notifications/app/event"
	"github.com/fedorhub/ms-go-notifications/app/provider"
)

const kindProduct = "product"

// ProductHandler notifies the seller about product lifecycle changes with
// exactly one email per event.
type ProductHandler struct {
	enricher Enricher
	sender   Sender
	log      *logrus.Logger
}

func NewProductHandler(enricher Enricher, sender Sender, log *logrus.Logger) *ProductHandler {
	return &ProductHandler{enricher: enricher, sender: sender, log: log}
}

func (h *ProductHandler) Handle(ctx context.Context, ev event.Event) error {
	product, ok := ev.(event.Product)
	if !ok {
		logUnhandled(h.log, kindProduct, ev.EventType())
		return nil
	}

	seller, found := h.enricher.FetchUser(ctx, product.SellerID)
	if !found {
		return nil
	}

	var msg provider.Message
	switch product.Type {
	case event.TypeProductCreated:
		msg = composer.ProductCreated(seller, product)
	case event.TypeProductUpdated:
		msg = composer.ProductUpdated(seller, product)
	case event.TypeProductDeleted:
		msg = composer.ProductDeleted(seller, product)
	default:
		logUnhandled(h.log, kindProduct, product.Type)
		return nil
	}

	h.sender.Send(ctx, kindProduct, seller.ID, msg)
	return nil
}
