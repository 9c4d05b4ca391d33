package service

import (
	"context"

	"cart-offer/internal/model"
	"cart-offer/internal/offer"
)

// OfferEngine defines the offer creation and cart application operations.
type OfferEngine interface {
	// CreateOffer validates the request and appends the accepted offer to the
	// store. Rejections are returned as *model.DomainError and leave the store
	// untouched.
	CreateOffer(ctx context.Context, req *model.OfferRequest) (offer.Offer, error)

	// ApplyOffer resolves the user's segment, picks the first matching offer
	// and returns the discounted cart value. It never fails: an unresolved
	// segment or a missing offer returns the cart value unchanged.
	ApplyOffer(ctx context.Context, req model.ApplyOfferRequest) model.ApplyOfferResponse

	// ListOffers returns the stored offers in insertion order.
	ListOffers(ctx context.Context) []offer.Offer
}
