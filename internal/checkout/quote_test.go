package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lankacraft/marketapi/internal/config"
	"github.com/lankacraft/marketapi/pkg/errors"
)

func testCalculator() *Calculator {
	return NewCalculator(config.CheckoutConfig{
		FreeDeliveryThreshold: 2000,
		FlatDeliveryFee:       250,
	})
}

func TestDeliveryFeeAboveThresholdIsFree(t *testing.T) {
	c := testCalculator()

	assert.Equal(t, 0.0, c.DeliveryFee(2500))
}

func TestDeliveryFeeAtOrBelowThresholdIsFlat(t *testing.T) {
	c := testCalculator()

	assert.Equal(t, 250.0, c.DeliveryFee(1500))
	assert.Equal(t, 250.0, c.DeliveryFee(2000), "fee applies at the threshold, free only above it")
}

func TestQuoteWithoutPromo(t *testing.T) {
	c := testCalculator()

	q, err := c.Quote(1500, "")
	require.NoError(t, err)

	assert.Equal(t, 1500.0, q.Subtotal)
	assert.Equal(t, 250.0, q.DeliveryFee)
	assert.Nil(t, q.PromoCode)
	assert.Equal(t, 0.0, q.PromoDiscount)
	assert.Equal(t, 1750.0, q.Total)
}

func TestQuoteWithPromo(t *testing.T) {
	c := testCalculator()

	q, err := c.Quote(1000, "FIRST10")
	require.NoError(t, err)

	assert.Equal(t, 100.0, q.PromoDiscount)
	assert.Equal(t, 1000.0+250.0-100.0, q.Total)
	require.NotNil(t, q.PromoCode)
	assert.Equal(t, "FIRST10", *q.PromoCode)
}

func TestQuotePromoTable(t *testing.T) {
	c := testCalculator()

	cases := []struct {
		code     string
		discount float64
	}{
		{"FIRST10", 100},
		{"SAVE5", 50},
		{"WELCOME15", 150},
	}
	for _, tc := range cases {
		q, err := c.Quote(1000, tc.code)
		require.NoError(t, err, tc.code)
		assert.Equal(t, tc.discount, q.PromoDiscount, tc.code)
	}
}

func TestQuoteUnknownPromoCode(t *testing.T) {
	c := testCalculator()

	_, err := c.Quote(1000, "BOGUS")
	require.Error(t, err)

	var invalid *errors.ErrInvalidPromoCode
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "BOGUS", invalid.Code)
}
