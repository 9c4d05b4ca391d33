package service

import (
	"context"
	"errors"
	"time"

	"cart-offer/internal/events"
	"cart-offer/internal/metrics"
	"cart-offer/internal/model"
	"cart-offer/internal/offer"
	"cart-offer/internal/segment"

	"github.com/rs/zerolog"
)

// publishTimeout bounds event publication after an offer is stored.
const publishTimeout = 5 * time.Second

// offerEngine implements OfferEngine.
type offerEngine struct {
	validator offer.Validator
	store     *offer.Store
	matcher   *offer.Matcher
	resolver  segment.Resolver
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewOfferEngine creates a new offer engine. Segment lookups are bounded by
// resolveTimeout. A nil publisher discards events and nil metrics record
// nothing.
func NewOfferEngine(
	store *offer.Store,
	validator offer.Validator,
	resolver segment.Resolver,
	resolveTimeout time.Duration,
	publisher events.Publisher,
	m *metrics.Metrics,
	logger zerolog.Logger,
) OfferEngine {
	if publisher == nil {
		publisher = events.NewNopPublisher()
	}

	return &offerEngine{
		validator: validator,
		store:     store,
		matcher:   offer.NewMatcher(store),
		resolver:  segment.WithTimeout(resolver, resolveTimeout),
		publisher: publisher,
		metrics:   m,
		logger:    logger.With().Str("service", "offer").Logger(),
	}
}

// CreateOffer validates and stores an offer.
func (e *offerEngine) CreateOffer(ctx context.Context, req *model.OfferRequest) (offer.Offer, error) {
	o, err := e.validator.Validate(req)
	if err != nil {
		code := model.ErrCodeInternalError
		var domainErr *model.DomainError
		if errors.As(err, &domainErr) {
			code = domainErr.Code
		}
		e.metrics.OfferRejected(code)

		e.logger.Info().
			Str("code", code).
			Str("reason", err.Error()).
			Msg("offer rejected")
		return offer.Offer{}, err
	}

	e.store.Insert(o)
	e.metrics.OfferCreated(o.Type.String())

	e.logger.Info().
		Str("offer_id", o.ID.String()).
		Int("restaurant_id", o.RestaurantID).
		Str("offer_type", o.Type.String()).
		Int("offer_value", o.Value).
		Int("store_size", e.store.Len()).
		Msg("offer created successfully")

	// The offer is already stored; a failed publish is only logged.
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	if err := e.publisher.OfferCreated(pubCtx, o); err != nil {
		e.logger.Warn().
			Err(err).
			Str("offer_id", o.ID.String()).
			Msg("failed to publish offer event")
	}

	return o, nil
}

// ApplyOffer applies the first matching offer to the cart.
func (e *offerEngine) ApplyOffer(ctx context.Context, req model.ApplyOfferRequest) model.ApplyOfferResponse {
	unchanged := model.ApplyOfferResponse{CartValue: req.CartValue}

	start := time.Now()
	seg, err := e.resolver.Resolve(ctx, req.UserID)
	e.metrics.ObserveSegmentResolution(time.Since(start))
	if err != nil {
		e.metrics.OfferApplied(metrics.OutcomeUnresolved)
		e.logger.Warn().
			Err(err).
			Int("user_id", req.UserID).
			Int("restaurant_id", req.RestaurantID).
			Msg("segment lookup failed, applying no offer")
		return unchanged
	}

	o, ok := e.matcher.Match(req.RestaurantID, seg)
	if !ok {
		e.metrics.OfferApplied(metrics.OutcomeUnmatched)
		e.logger.Debug().
			Int("user_id", req.UserID).
			Int("restaurant_id", req.RestaurantID).
			Str("segment", string(seg)).
			Msg("no matching offer")
		return unchanged
	}

	value := offer.Apply(req.CartValue, &o)
	e.metrics.OfferApplied(metrics.OutcomeMatched)

	e.logger.Debug().
		Str("offer_id", o.ID.String()).
		Int("user_id", req.UserID).
		Int("restaurant_id", req.RestaurantID).
		Str("segment", string(seg)).
		Int("cart_value", req.CartValue).
		Int("discounted_value", value).
		Msg("offer applied")

	return model.ApplyOfferResponse{CartValue: value}
}

// ListOffers returns a snapshot of the store.
func (e *offerEngine) ListOffers(ctx context.Context) []offer.Offer {
	return e.store.Snapshot()
}
