package offer

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Type is the discount rule an offer applies.
type Type int

const (
	// FlatAmount subtracts a fixed amount from the cart value.
	FlatAmount Type = iota + 1
	// PercentageAmount subtracts a percentage of the cart value.
	PercentageAmount
)

// Wire tags accepted for offer_type. Matching is exact and case-sensitive.
const (
	TagFlatAmount       = "FLATX"
	TagPercentageAmount = "PERCENTAGE"
)

// ParseType maps a wire tag to its Type.
func ParseType(tag string) (Type, bool) {
	switch tag {
	case TagFlatAmount:
		return FlatAmount, true
	case TagPercentageAmount:
		return PercentageAmount, true
	default:
		return 0, false
	}
}

// String returns the wire tag of the type.
func (t Type) String() string {
	switch t {
	case FlatAmount:
		return TagFlatAmount
	case PercentageAmount:
		return TagPercentageAmount
	default:
		return "UNKNOWN"
	}
}

// Offer is an accepted discount rule scoped to a restaurant and a set of
// customer segments. Offers are never modified after they enter a Store.
type Offer struct {
	ID           uuid.UUID
	RestaurantID int
	Type         Type
	Value        int
	Segments     []Segment
	CreatedAt    time.Time
}

// Targets reports whether the offer is available to the given segment.
func (o Offer) Targets(segment Segment) bool {
	if segment == "" {
		return false
	}
	return slices.Contains(o.Segments, segment)
}

// clone detaches the segment slice from the caller's backing array.
func (o Offer) clone() Offer {
	o.Segments = slices.Clone(o.Segments)
	return o
}
