package model

import (
	"time"

	"github.com/google/uuid"
)

// ResponseSuccess is the response message for an accepted offer.
const ResponseSuccess = "success"

// OfferRequest represents the request payload for creating an offer.
type OfferRequest struct {
	RestaurantID     int      `json:"restaurant_id"`
	OfferType        string   `json:"offer_type"`
	OfferValue       int      `json:"offer_value"`
	CustomerSegments []string `json:"customer_segment"`
}

// ApiResponse is returned by the offer creation endpoint.
type ApiResponse struct {
	ResponseMsg string `json:"response_msg"`
}

// ApplyOfferRequest represents the request payload for applying an offer to a cart.
type ApplyOfferRequest struct {
	RestaurantID int `json:"restaurant_id"`
	UserID       int `json:"user_id"`
	CartValue    int `json:"cart_value"`
}

// ApplyOfferResponse carries the cart value after any discount.
type ApplyOfferResponse struct {
	CartValue int `json:"cart_value"`
}

// SegmentResponse is the payload returned by the user segment service.
type SegmentResponse struct {
	Segment string `json:"segment"`
}

// OfferView is the read-only representation of a stored offer.
type OfferView struct {
	ID               uuid.UUID `json:"id"`
	RestaurantID     int       `json:"restaurant_id"`
	OfferType        string    `json:"offer_type"`
	OfferValue       int       `json:"offer_value"`
	CustomerSegments []string  `json:"customer_segment"`
	CreatedAt        time.Time `json:"created_at"`
}
