package handler

import (
	"net/http"

	"cart-offer/internal/model"
	"cart-offer/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles cart-related HTTP requests.
type CartHandler struct {
	engine service.OfferEngine
	logger zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(engine service.OfferEngine, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		engine: engine,
		logger: logger.With().Str("handler", "cart").Logger(),
	}
}

// ApplyOffer handles POST /api/v1/cart/apply_offer requests.
func (h *CartHandler) ApplyOffer(w http.ResponseWriter, r *http.Request) {
	var req model.ApplyOfferRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidJSON, "invalid request body", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, h.engine.ApplyOffer(r.Context(), req))
}
