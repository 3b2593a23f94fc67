package checkout

import (
	"strings"

	"github.com/lankacraft/marketapi/internal/config"
	"github.com/lankacraft/marketapi/pkg/errors"
)

// promoCodes maps code to discount percent. There is no expiry or usage
// tracking; a code is either in the table or invalid.
var promoCodes = map[string]float64{
	"FIRST10":   10,
	"SAVE5":     5,
	"WELCOME15": 15,
}

// Quote is the checkout price breakdown for a cart subtotal.
type Quote struct {
	Subtotal      float64 `json:"subtotal"`
	DeliveryFee   float64 `json:"delivery_fee"`
	PromoCode     *string `json:"promo_code,omitempty"`
	PromoDiscount float64 `json:"promo_discount"`
	Total         float64 `json:"total"`
}

// Calculator derives checkout quotes from configured delivery pricing.
type Calculator struct {
	freeDeliveryThreshold float64
	flatDeliveryFee       float64
}

// NewCalculator creates a quote calculator
func NewCalculator(cfg config.CheckoutConfig) *Calculator {
	return &Calculator{
		freeDeliveryThreshold: cfg.FreeDeliveryThreshold,
		flatDeliveryFee:       cfg.FlatDeliveryFee,
	}
}

// DeliveryFee is zero above the free-delivery threshold, flat otherwise.
func (c *Calculator) DeliveryFee(subtotal float64) float64 {
	if subtotal > c.freeDeliveryThreshold {
		return 0
	}
	return c.flatDeliveryFee
}

// Quote computes the full breakdown for a subtotal with an optional promo
// code. An empty code means no discount; an unknown code is an error.
func (c *Calculator) Quote(subtotal float64, promoCode string) (Quote, error) {
	q := Quote{
		Subtotal:    subtotal,
		DeliveryFee: c.DeliveryFee(subtotal),
	}

	promoCode = strings.TrimSpace(promoCode)
	if promoCode != "" {
		percent, ok := promoCodes[promoCode]
		if !ok {
			return Quote{}, &errors.ErrInvalidPromoCode{Code: promoCode}
		}
		q.PromoCode = &promoCode
		q.PromoDiscount = subtotal * percent / 100
	}

	q.Total = q.Subtotal + q.DeliveryFee - q.PromoDiscount
	return q, nil
}
