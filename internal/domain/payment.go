package domain

// DefaultPaymentMethods returns the payment options offered at checkout.
// Cash on delivery is the shipped default.
func DefaultPaymentMethods() []PaymentMethod {
	return []PaymentMethod{
		{
			ID:      "card",
			Type:    PaymentTypeCard,
			Name:    "Credit/Debit Card",
			Details: "Visa, Mastercard, American Express",
		},
		{
			ID:      "mobile",
			Type:    PaymentTypeMobile,
			Name:    "Mobile Payment",
			Details: "Dialog, Mobitel, Airtel, Hutch",
		},
		{
			ID:      "bank",
			Type:    PaymentTypeBank,
			Name:    "Bank Transfer",
			Details: "Online banking or ATM transfer",
		},
		{
			ID:        "cod",
			Type:      PaymentTypeCOD,
			Name:      "Cash on Delivery",
			Details:   "Pay when you receive your order",
			IsDefault: true,
		},
	}
}

// DefaultPaymentMethod returns the method marked as default.
func DefaultPaymentMethod() PaymentMethod {
	methods := DefaultPaymentMethods()
	for _, m := range methods {
		if m.IsDefault {
			return m
		}
	}
	return methods[0]
}
