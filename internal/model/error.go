package model

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"requestId,omitempty"`
}

// Standard error codes for offer validation and transport failures.
const (
	ErrCodeInvalidJSON         = "INVALID_JSON"
	ErrCodeOfferNil            = "OFFER_NIL"
	ErrCodeInvalidRestaurantID = "INVALID_RESTAURANT_ID"
	ErrCodeEmptyOfferType      = "EMPTY_OFFER_TYPE"
	ErrCodeInvalidOfferType    = "INVALID_OFFER_TYPE"
	ErrCodeNegativeOfferValue  = "NEGATIVE_OFFER_VALUE"
	ErrCodeEmptySegments       = "EMPTY_CUSTOMER_SEGMENT"
	ErrCodeInvalidSegment      = "INVALID_CUSTOMER_SEGMENT"
	ErrCodeInternalError       = "INTERNAL_ERROR"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Offer validation errors. Message is returned to clients verbatim.
var (
	ErrOfferNil            = NewDomainError(ErrCodeOfferNil, "error: Offer request cannot be null")
	ErrInvalidRestaurantID = NewDomainError(ErrCodeInvalidRestaurantID, "error: Restaurant ID must be positive")
	ErrEmptyOfferType      = NewDomainError(ErrCodeEmptyOfferType, "error: Offer type cannot be empty")
	ErrInvalidOfferType    = NewDomainError(ErrCodeInvalidOfferType, "error: Offer type must be FLATX or PERCENTAGE")
	ErrNegativeOfferValue  = NewDomainError(ErrCodeNegativeOfferValue, "error: Offer value cannot be negative")
	ErrEmptySegments       = NewDomainError(ErrCodeEmptySegments, "error: Customer segment cannot be empty")
	ErrInvalidSegment      = NewDomainError(ErrCodeInvalidSegment, "error: Invalid customer segment. Must be p1, p2, or p3")
)
