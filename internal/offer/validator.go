package offer

import (
	"strings"
	"time"

	"cart-offer/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Validator checks submitted offers for structural and business-rule
// correctness.
type Validator interface {
	// Validate converts an offer request into an Offer, or returns the
	// *model.DomainError for the first rule it breaks. Rules are checked in
	// order: presence, restaurant id, offer type, offer value, segment
	// presence, segment membership.
	Validate(req *model.OfferRequest) (Offer, error)
}

// validator implements Validator against a segment registry.
type validator struct {
	registry          *SegmentRegistry
	invalidSegmentErr *model.DomainError
	now               func() time.Time
	logger            zerolog.Logger
}

// NewValidator creates a new offer validator. A nil registry falls back to
// the default p1/p2/p3 set.
func NewValidator(registry *SegmentRegistry, logger zerolog.Logger) Validator {
	if registry == nil {
		registry = DefaultSegmentRegistry()
	}

	invalidSegmentErr := model.ErrInvalidSegment
	if msg := "error: Invalid customer segment. Must be " + registry.Describe(); msg != invalidSegmentErr.Message {
		invalidSegmentErr = model.NewDomainError(model.ErrCodeInvalidSegment, msg)
	}

	return &validator{
		registry:          registry,
		invalidSegmentErr: invalidSegmentErr,
		now:               time.Now,
		logger:            logger.With().Str("component", "offer-validator").Logger(),
	}
}

// Validate checks the offer request and builds the accepted Offer.
func (v *validator) Validate(req *model.OfferRequest) (Offer, error) {
	if req == nil {
		return Offer{}, v.reject(model.ErrOfferNil, 0)
	}

	if req.RestaurantID <= 0 {
		return Offer{}, v.reject(model.ErrInvalidRestaurantID, req.RestaurantID)
	}

	if trimControl(req.OfferType) == "" {
		return Offer{}, v.reject(model.ErrEmptyOfferType, req.RestaurantID)
	}

	offerType, ok := ParseType(req.OfferType)
	if !ok {
		return Offer{}, v.reject(model.ErrInvalidOfferType, req.RestaurantID)
	}

	if req.OfferValue < 0 {
		return Offer{}, v.reject(model.ErrNegativeOfferValue, req.RestaurantID)
	}

	if len(req.CustomerSegments) == 0 {
		return Offer{}, v.reject(model.ErrEmptySegments, req.RestaurantID)
	}

	segments := make([]Segment, len(req.CustomerSegments))
	for i, tag := range req.CustomerSegments {
		s := Segment(tag)
		if !v.registry.Contains(s) {
			v.logger.Debug().Str("segment", tag).Msg("unrecognised customer segment")
			return Offer{}, v.reject(v.invalidSegmentErr, req.RestaurantID)
		}
		segments[i] = s
	}

	return Offer{
		ID:           uuid.New(),
		RestaurantID: req.RestaurantID,
		Type:         offerType,
		Value:        req.OfferValue,
		Segments:     segments,
		CreatedAt:    v.now().UTC(),
	}, nil
}

func (v *validator) reject(err *model.DomainError, restaurantID int) error {
	v.logger.Debug().
		Str("code", err.Code).
		Int("restaurant_id", restaurantID).
		Msg("offer rejected")
	return err
}

// trimControl strips leading and trailing ASCII control characters and
// spaces. Unicode spaces such as U+00A0 are kept.
func trimControl(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })
}
