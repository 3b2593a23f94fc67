package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lankacraft/marketapi/internal/cart"
	"github.com/lankacraft/marketapi/internal/checkout"
	"github.com/lankacraft/marketapi/internal/config"
	"github.com/lankacraft/marketapi/internal/domain"
	"github.com/lankacraft/marketapi/internal/repository/memory"
	"github.com/lankacraft/marketapi/pkg/errors"
)

func newTestOrderService(t *testing.T) (*OrderService, *cart.Registry) {
	t.Helper()
	logger := zap.NewNop()
	repos := memory.NewRepositories(logger)
	carts := cart.NewRegistry()
	calc := checkout.NewCalculator(config.CheckoutConfig{
		FreeDeliveryThreshold: 2000,
		FlatDeliveryFee:       250,
	})
	return NewOrderService(repos, carts, calc, logger), carts
}

func fillCart(carts *cart.Registry, userID uuid.UUID, unitPrice float64, quantity int) {
	carts.Update(userID, func(s cart.State) cart.State {
		return s.AddItem(cart.Item{
			ID:        "p1",
			Name:      "Raksha Mask",
			UnitPrice: unitPrice,
			SellerID:  "s1",
			ShopName:  "Heritage Crafts",
		}, quantity)
	})
}

func TestQuoteEmptyCart(t *testing.T) {
	svc, _ := newTestOrderService(t)

	_, err := svc.Quote(context.Background(), uuid.New(), "")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestQuoteAppliesDeliveryFeeAndPromo(t *testing.T) {
	svc, carts := newTestOrderService(t)
	userID := uuid.New()
	fillCart(carts, userID, 500, 2) // subtotal 1000

	quote, err := svc.Quote(context.Background(), userID, "FIRST10")
	require.NoError(t, err)

	assert.Equal(t, 1000.0, quote.Subtotal)
	assert.Equal(t, 250.0, quote.DeliveryFee)
	assert.Equal(t, 100.0, quote.PromoDiscount)
	assert.Equal(t, 1150.0, quote.Total)
}

func TestConfirmCreatesOrderAndClearsCart(t *testing.T) {
	svc, carts := newTestOrderService(t)
	userID := uuid.New()
	fillCart(carts, userID, 1500, 2) // subtotal 3000, free delivery

	order, items, err := svc.Confirm(context.Background(), userID, "")
	require.NoError(t, err)

	assert.Equal(t, domain.OrderStatusNew, order.Status)
	assert.Equal(t, 3000.0, order.Subtotal)
	assert.Equal(t, 0.0, order.DeliveryFee)
	assert.Equal(t, 3000.0, order.Total)
	require.Len(t, items, 1)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)

	// Unselected payment method falls back to cash on delivery.
	require.NotNil(t, order.PaymentMethod)
	assert.Equal(t, domain.PaymentTypeCOD, order.PaymentMethod.Type)

	assert.Empty(t, carts.Snapshot(userID).Items, "confirmation clears the cart")
}

func TestConfirmKeepsSelectedPaymentMethod(t *testing.T) {
	svc, carts := newTestOrderService(t)
	userID := uuid.New()
	fillCart(carts, userID, 1000, 1)
	carts.Update(userID, func(s cart.State) cart.State {
		return s.SetPaymentMethod(domain.PaymentMethod{ID: "card", Type: domain.PaymentTypeCard, Name: "Credit/Debit Card"})
	})

	order, _, err := svc.Confirm(context.Background(), userID, "")
	require.NoError(t, err)

	require.NotNil(t, order.PaymentMethod)
	assert.Equal(t, domain.PaymentTypeCard, order.PaymentMethod.Type)
}

func TestConfirmEmptyCart(t *testing.T) {
	svc, _ := newTestOrderService(t)

	_, _, err := svc.Confirm(context.Background(), uuid.New(), "")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestConfirmInvalidPromoLeavesCartIntact(t *testing.T) {
	svc, carts := newTestOrderService(t)
	userID := uuid.New()
	fillCart(carts, userID, 1000, 1)

	_, _, err := svc.Confirm(context.Background(), userID, "BOGUS")
	require.Error(t, err)

	var invalid *errors.ErrInvalidPromoCode
	assert.ErrorAs(t, err, &invalid)
	assert.NotEmpty(t, carts.Snapshot(userID).Items, "failed confirmation must not clear the cart")
}

func TestGetScopesToOwner(t *testing.T) {
	svc, carts := newTestOrderService(t)
	owner := uuid.New()
	fillCart(carts, owner, 1000, 1)

	order, _, err := svc.Confirm(context.Background(), owner, "")
	require.NoError(t, err)

	_, _, err = svc.Get(context.Background(), owner, order.ID)
	require.NoError(t, err)

	_, _, err = svc.Get(context.Background(), uuid.New(), order.ID)
	var notFound *errors.ErrNotFound
	assert.ErrorAs(t, err, &notFound, "another user's order must look missing")
}

func TestListReturnsOwnOrders(t *testing.T) {
	svc, carts := newTestOrderService(t)
	userID := uuid.New()

	fillCart(carts, userID, 1000, 1)
	_, _, err := svc.Confirm(context.Background(), userID, "")
	require.NoError(t, err)

	fillCart(carts, userID, 2000, 1)
	_, _, err = svc.Confirm(context.Background(), userID, "")
	require.NoError(t, err)

	orders, err := svc.List(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	other, err := svc.List(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestAdvanceStatus(t *testing.T) {
	svc, carts := newTestOrderService(t)
	userID := uuid.New()
	fillCart(carts, userID, 1000, 1)

	order, _, err := svc.Confirm(context.Background(), userID, "")
	require.NoError(t, err)

	updated, err := svc.AdvanceStatus(context.Background(), order.ID, domain.OrderStatusProcessing)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusProcessing, updated.Status)
}

func TestAdvanceStatusRejectsInvalidTransition(t *testing.T) {
	svc, carts := newTestOrderService(t)
	userID := uuid.New()
	fillCart(carts, userID, 1000, 1)

	order, _, err := svc.Confirm(context.Background(), userID, "")
	require.NoError(t, err)

	_, err = svc.AdvanceStatus(context.Background(), order.ID, domain.OrderStatusDelivered)
	var invalid *errors.ErrInvalidStateTransition
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, string(domain.OrderStatusNew), invalid.From)
	assert.Equal(t, string(domain.OrderStatusDelivered), invalid.To)
}
