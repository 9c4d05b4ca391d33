package offer

// Matcher selects the offer that applies to a restaurant and segment.
type Matcher struct {
	store *Store
}

// NewMatcher creates a matcher over the given store.
func NewMatcher(store *Store) *Matcher {
	return &Matcher{store: store}
}

// Match returns the earliest created offer for restaurantID that targets
// segment. An empty segment never matches.
func (m *Matcher) Match(restaurantID int, segment Segment) (Offer, bool) {
	if segment == "" {
		return Offer{}, false
	}

	return m.store.FindFirstMatch(func(o Offer) bool {
		return o.RestaurantID == restaurantID && o.Targets(segment)
	})
}
