package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is the single account record of the marketplace. The same record
// serves both buyer and seller modes; CurrentMode selects which one is
// active without re-authentication.
type User struct {
	ID                     uuid.UUID `json:"id"`
	Email                  string    `json:"email"`
	FirstName              string    `json:"first_name"`
	LastName               string    `json:"last_name"`
	MobileNumber           string    `json:"mobile_number"`
	Language               Language  `json:"language"`
	DefaultMode            Mode      `json:"default_mode"`
	CurrentMode            Mode      `json:"current_mode"`
	HasCompletedOnboarding bool      `json:"has_completed_onboarding"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// PaymentMethod describes one of the configured ways to pay at checkout.
// At most one method is marked default; cash on delivery ships as the default.
type PaymentMethod struct {
	ID        string      `json:"id"`
	Type      PaymentType `json:"type"`
	Name      string      `json:"name"`
	Details   string      `json:"details"`
	IsDefault bool        `json:"is_default,omitempty"`
}

// Session records an issued bearer token. Only the bcrypt hash of the
// token is stored; the plaintext is returned to the client once at mint time.
type Session struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	TokenHash string
	CreatedAt time.Time
}

// Order is a confirmed checkout. Line items and the quote breakdown are
// captured at confirmation time so later price changes don't rewrite history.
type Order struct {
	ID            uuid.UUID
	UserID        uuid.UUID
	Status        OrderStatus
	Subtotal      float64
	DeliveryFee   float64
	PromoCode     *string
	PromoDiscount float64
	Total         float64
	PaymentMethod *PaymentMethod
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// OrderItem is one line of an order, copied from the cart at confirmation.
type OrderItem struct {
	ID        uuid.UUID
	OrderID   uuid.UUID
	ProductID string
	Name      string
	UnitPrice float64
	Quantity  int
	SellerID  string
	ShopName  string
	CreatedAt time.Time
}
