package handler

import (
	"errors"
	"net/http"

	"cart-offer/internal/model"
	"cart-offer/internal/offer"
	"cart-offer/internal/service"

	"github.com/rs/zerolog"
)

// OfferHandler handles offer-related HTTP requests.
type OfferHandler struct {
	engine service.OfferEngine
	logger zerolog.Logger
}

// NewOfferHandler creates a new offer handler.
func NewOfferHandler(engine service.OfferEngine, logger zerolog.Logger) *OfferHandler {
	return &OfferHandler{
		engine: engine,
		logger: logger.With().Str("handler", "offer").Logger(),
	}
}

// Create handles POST /api/v1/offer requests. Validation failures are a
// normal outcome and are reported with status 200.
func (h *OfferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req *model.OfferRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	if _, err := h.engine.CreateOffer(r.Context(), req); err != nil {
		var domainErr *model.DomainError
		if errors.As(err, &domainErr) {
			writeJSON(w, http.StatusOK, model.ApiResponse{ResponseMsg: domainErr.Message})
			return
		}

		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "failed to create offer", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.ApiResponse{ResponseMsg: model.ResponseSuccess})
}

// List handles GET /api/v1/offers requests.
func (h *OfferHandler) List(w http.ResponseWriter, r *http.Request) {
	offers := h.engine.ListOffers(r.Context())

	views := make([]model.OfferView, 0, len(offers))
	for _, o := range offers {
		views = append(views, toView(o))
	}

	writeJSON(w, http.StatusOK, views)
}

func toView(o offer.Offer) model.OfferView {
	segments := make([]string, len(o.Segments))
	for i, s := range o.Segments {
		segments[i] = string(s)
	}

	return model.OfferView{
		ID:               o.ID,
		RestaurantID:     o.RestaurantID,
		OfferType:        o.Type.String(),
		OfferValue:       o.Value,
		CustomerSegments: segments,
		CreatedAt:        o.CreatedAt,
	}
}
