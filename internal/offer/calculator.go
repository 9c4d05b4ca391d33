package offer

// Apply returns cartValue after applying o. A nil offer leaves the cart
// unchanged. Results are not clamped, so a flat discount larger than the
// cart or a negative cart value yields a negative result.
func Apply(cartValue int, o *Offer) int {
	if o == nil {
		return cartValue
	}

	switch o.Type {
	case FlatAmount:
		return cartValue - o.Value
	case PercentageAmount:
		// Split on the hundreds so the product cannot overflow; both parts
		// truncate toward zero like cartValue*o.Value/100.
		return cartValue - (cartValue/100*o.Value + cartValue%100*o.Value/100)
	default:
		return cartValue
	}
}
