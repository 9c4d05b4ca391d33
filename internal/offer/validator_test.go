package offer

import (
	"testing"

	"cart-offer/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidator_Validate_Valid(t *testing.T) {
	v := NewValidator(nil, zerolog.Nop())

	tests := []struct {
		name     string
		req      *model.OfferRequest
		wantType Type
	}{
		{
			name: "Flat offer single segment",
			req: &model.OfferRequest{
				RestaurantID:     1,
				OfferType:        "FLATX",
				OfferValue:       10,
				CustomerSegments: []string{"p1"},
			},
			wantType: FlatAmount,
		},
		{
			name: "Percentage offer all segments",
			req: &model.OfferRequest{
				RestaurantID:     42,
				OfferType:        "PERCENTAGE",
				OfferValue:       15,
				CustomerSegments: []string{"p1", "p2", "p3"},
			},
			wantType: PercentageAmount,
		},
		{
			name: "Zero offer value",
			req: &model.OfferRequest{
				RestaurantID:     8,
				OfferType:        "FLATX",
				OfferValue:       0,
				CustomerSegments: []string{"p2"},
			},
			wantType: FlatAmount,
		},
		{
			name: "Percentage above one hundred",
			req: &model.OfferRequest{
				RestaurantID:     1012,
				OfferType:        "PERCENTAGE",
				OfferValue:       150,
				CustomerSegments: []string{"p1"},
			},
			wantType: PercentageAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := v.Validate(tt.req)

			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, o.ID)
			assert.Equal(t, tt.req.RestaurantID, o.RestaurantID)
			assert.Equal(t, tt.wantType, o.Type)
			assert.Equal(t, tt.req.OfferValue, o.Value)
			require.Len(t, o.Segments, len(tt.req.CustomerSegments))
			for i, s := range tt.req.CustomerSegments {
				assert.Equal(t, Segment(s), o.Segments[i])
			}
			assert.False(t, o.CreatedAt.IsZero())
		})
	}
}

func TestValidator_Validate_Rejections(t *testing.T) {
	v := NewValidator(nil, zerolog.Nop())

	tests := []struct {
		name      string
		req       *model.OfferRequest
		expectErr *model.DomainError
	}{
		{
			name:      "Nil offer",
			req:       nil,
			expectErr: model.ErrOfferNil,
		},
		{
			name: "Zero restaurant id",
			req: &model.OfferRequest{
				RestaurantID: 0, OfferType: "FLATX", OfferValue: 10, CustomerSegments: []string{"p1"},
			},
			expectErr: model.ErrInvalidRestaurantID,
		},
		{
			name: "Negative restaurant id",
			req: &model.OfferRequest{
				RestaurantID: -3, OfferType: "FLATX", OfferValue: 10, CustomerSegments: []string{"p1"},
			},
			expectErr: model.ErrInvalidRestaurantID,
		},
		{
			name: "Empty offer type",
			req: &model.OfferRequest{
				RestaurantID: 1, OfferType: "", OfferValue: 10, CustomerSegments: []string{"p1"},
			},
			expectErr: model.ErrEmptyOfferType,
		},
		{
			name: "Blank offer type",
			req: &model.OfferRequest{
				RestaurantID: 1, OfferType: "   ", OfferValue: 10, CustomerSegments: []string{"p1"},
			},
			expectErr: model.ErrEmptyOfferType,
		},
		{
			name: "Control characters only offer type",
			req: &model.OfferRequest{
				RestaurantID: 1, OfferType: "\t\r\n\x00", OfferValue: 10, CustomerSegments: []string{"p1"},
			},
			expectErr: model.ErrEmptyOfferType,
		},
		{
			name: "Non-breaking space offer type is not blank",
			req: &model.OfferRequest{
				RestaurantID: 1, OfferType: "\u00a0", OfferValue: 10, CustomerSegments: []string{"p1"},
			},
			expectErr: model.ErrInvalidOfferType,
		},
		{
			name: "Next line offer type is not blank",
			req: &model.OfferRequest{
				RestaurantID: 1, OfferType: "\u0085", OfferValue: 10, CustomerSegments: []string{"p1"},
			},
			expectErr: model.ErrInvalidOfferType,
		},
		{
			name: "Unknown offer type",
			req: &model.OfferRequest{
				RestaurantID: 1005, OfferType: "INVALID_TYPE", OfferValue: 10, CustomerSegments: []string{"p1"},
			},
			expectErr: model.ErrInvalidOfferType,
		},
		{
			name: "Offer type is case sensitive",
			req: &model.OfferRequest{
				RestaurantID: 1, OfferType: "flatx", OfferValue: 10, CustomerSegments: []string{"p1"},
			},
			expectErr: model.ErrInvalidOfferType,
		},
		{
			name: "Offer type is not trimmed",
			req: &model.OfferRequest{
				RestaurantID: 1, OfferType: " PERCENTAGE", OfferValue: 10, CustomerSegments: []string{"p1"},
			},
			expectErr: model.ErrInvalidOfferType,
		},
		{
			name: "Negative offer value",
			req: &model.OfferRequest{
				RestaurantID: 1006, OfferType: "FLATX", OfferValue: -10, CustomerSegments: []string{"p1"},
			},
			expectErr: model.ErrNegativeOfferValue,
		},
		{
			name: "Missing customer segments",
			req: &model.OfferRequest{
				RestaurantID: 1, OfferType: "FLATX", OfferValue: 10,
			},
			expectErr: model.ErrEmptySegments,
		},
		{
			name: "Empty customer segments",
			req: &model.OfferRequest{
				RestaurantID: 1007, OfferType: "FLATX", OfferValue: 10, CustomerSegments: []string{},
			},
			expectErr: model.ErrEmptySegments,
		},
		{
			name: "Unknown customer segment",
			req: &model.OfferRequest{
				RestaurantID: 1008, OfferType: "FLATX", OfferValue: 10, CustomerSegments: []string{"invalid_segment"},
			},
			expectErr: model.ErrInvalidSegment,
		},
		{
			name: "One unknown segment rejects the offer",
			req: &model.OfferRequest{
				RestaurantID: 1, OfferType: "FLATX", OfferValue: 10, CustomerSegments: []string{"p1", "P2"},
			},
			expectErr: model.ErrInvalidSegment,
		},
		{
			name: "First failing rule wins",
			req: &model.OfferRequest{
				RestaurantID: 0, OfferType: "BOGUS", OfferValue: -1, CustomerSegments: nil,
			},
			expectErr: model.ErrInvalidRestaurantID,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o, err := v.Validate(tt.req)

			require.Error(t, err)
			assert.Equal(t, tt.expectErr, err)
			assert.Equal(t, Offer{}, o)
		})
	}
}

func TestValidator_RejectionMessagesAreDistinct(t *testing.T) {
	errs := []*model.DomainError{
		model.ErrOfferNil,
		model.ErrInvalidRestaurantID,
		model.ErrEmptyOfferType,
		model.ErrInvalidOfferType,
		model.ErrNegativeOfferValue,
		model.ErrEmptySegments,
		model.ErrInvalidSegment,
	}

	messages := make(map[string]struct{}, len(errs))
	codes := make(map[string]struct{}, len(errs))
	for _, e := range errs {
		assert.Contains(t, e.Message, "error: ")
		messages[e.Message] = struct{}{}
		codes[e.Code] = struct{}{}
	}

	assert.Len(t, messages, len(errs))
	assert.Len(t, codes, len(errs))
}

func TestValidator_CustomRegistry(t *testing.T) {
	v := NewValidator(NewSegmentRegistry("gold", "silver"), zerolog.Nop())

	_, err := v.Validate(&model.OfferRequest{
		RestaurantID: 1, OfferType: "FLATX", OfferValue: 5, CustomerSegments: []string{"gold"},
	})
	require.NoError(t, err)

	_, err = v.Validate(&model.OfferRequest{
		RestaurantID: 1, OfferType: "FLATX", OfferValue: 5, CustomerSegments: []string{"p1"},
	})
	require.Error(t, err)

	var domainErr *model.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, model.ErrCodeInvalidSegment, domainErr.Code)
	assert.Equal(t, "error: Invalid customer segment. Must be gold or silver", domainErr.Message)
}
