package domain

// Mode selects which side of the marketplace a user is acting on.
type Mode string

const (
	ModeBuyer  Mode = "buyer"
	ModeSeller Mode = "seller"
)

// IsValid checks if the mode is valid
func (m Mode) IsValid() bool {
	return m == ModeBuyer || m == ModeSeller
}

// Language is the user's UI language preference.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageSinhala Language = "si"
)

// IsValid checks if the language is valid
func (l Language) IsValid() bool {
	return l == LanguageEnglish || l == LanguageSinhala
}

// PaymentType identifies the kind of payment method.
type PaymentType string

const (
	PaymentTypeCard   PaymentType = "card"
	PaymentTypeMobile PaymentType = "mobile"
	PaymentTypeBank   PaymentType = "bank"
	PaymentTypeCOD    PaymentType = "cod"
)

// IsValid checks if the payment type is valid
func (t PaymentType) IsValid() bool {
	switch t {
	case PaymentTypeCard, PaymentTypeMobile, PaymentTypeBank, PaymentTypeCOD:
		return true
	default:
		return false
	}
}

// OrderStatus represents the status of an order
type OrderStatus string

const (
	OrderStatusNew        OrderStatus = "NEW"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusNew,
		OrderStatusProcessing,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a status transition is valid
func (s OrderStatus) CanTransitionTo(newStatus OrderStatus) bool {
	switch s {
	case OrderStatusNew:
		return newStatus == OrderStatusProcessing ||
			newStatus == OrderStatusCancelled
	case OrderStatusProcessing:
		return newStatus == OrderStatusShipped ||
			newStatus == OrderStatusCancelled
	case OrderStatusShipped:
		return newStatus == OrderStatusDelivered
	case OrderStatusDelivered, OrderStatusCancelled:
		return false // Terminal states
	default:
		return false
	}
}
