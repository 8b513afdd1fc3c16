package utils

// ShippingFee returns the delivery fee for an order subtotal.
// Orders at or above the free-shipping threshold ship free.
func ShippingFee(subtotal float64) float64 {
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return FlatShippingFee
}
