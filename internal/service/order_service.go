package service

import (
	"context"
	stderrors "errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lankacraft/marketapi/internal/cart"
	"github.com/lankacraft/marketapi/internal/checkout"
	"github.com/lankacraft/marketapi/internal/domain"
	"github.com/lankacraft/marketapi/internal/repository"
	"github.com/lankacraft/marketapi/pkg/errors"
)

// ErrEmptyCart is returned when checkout is attempted with no items.
var ErrEmptyCart = stderrors.New("cart is empty")

type OrderService struct {
	repos  *repository.Repositories
	carts  *cart.Registry
	calc   *checkout.Calculator
	logger *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(repos *repository.Repositories, carts *cart.Registry, calc *checkout.Calculator, logger *zap.Logger) *OrderService {
	return &OrderService{
		repos:  repos,
		carts:  carts,
		calc:   calc,
		logger: logger,
	}
}

// Quote prices the user's current cart with an optional promo code without
// confirming anything.
func (s *OrderService) Quote(ctx context.Context, userID uuid.UUID, promoCode string) (checkout.Quote, error) {
	snapshot := s.carts.Snapshot(userID)
	if len(snapshot.Items) == 0 {
		return checkout.Quote{}, ErrEmptyCart
	}
	return s.calc.Quote(snapshot.TotalAmount, promoCode)
}

// Confirm turns the user's cart into an order and clears the cart. Line
// items and the quote breakdown are copied so the order is self-contained.
func (s *OrderService) Confirm(ctx context.Context, userID uuid.UUID, promoCode string) (*domain.Order, []*domain.OrderItem, error) {
	snapshot := s.carts.Snapshot(userID)
	if len(snapshot.Items) == 0 {
		return nil, nil, ErrEmptyCart
	}

	quote, err := s.calc.Quote(snapshot.TotalAmount, promoCode)
	if err != nil {
		return nil, nil, err
	}

	paymentMethod := domain.DefaultPaymentMethod()
	if snapshot.SelectedPaymentMethod != nil {
		paymentMethod = *snapshot.SelectedPaymentMethod
	}

	order := &domain.Order{
		ID:            uuid.New(),
		UserID:        userID,
		Status:        domain.OrderStatusNew,
		Subtotal:      quote.Subtotal,
		DeliveryFee:   quote.DeliveryFee,
		PromoCode:     quote.PromoCode,
		PromoDiscount: quote.PromoDiscount,
		Total:         quote.Total,
		PaymentMethod: &paymentMethod,
	}

	items := make([]*domain.OrderItem, 0, len(snapshot.Items))
	for _, line := range snapshot.Items {
		items = append(items, &domain.OrderItem{
			OrderID:   order.ID,
			ProductID: line.ID,
			Name:      line.Name,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			SellerID:  line.SellerID,
			ShopName:  line.ShopName,
		})
	}

	if err := s.repos.Orders.Create(ctx, order, items); err != nil {
		return nil, nil, err
	}

	// The cart is cleared only after the order is durably created.
	s.carts.Update(userID, func(state cart.State) cart.State {
		return state.Clear()
	})

	s.logger.Info("Order confirmed",
		zap.String("order_id", order.ID.String()),
		zap.String("user_id", userID.String()),
		zap.Float64("total", order.Total),
	)

	return order, items, nil
}

// Get returns an order with its items, scoped to the owning user.
func (s *OrderService) Get(ctx context.Context, userID, orderID uuid.UUID) (*domain.Order, []*domain.OrderItem, error) {
	order, err := s.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	if order.UserID != userID {
		// Another user's order looks like a missing one.
		return nil, nil, &errors.ErrNotFound{Resource: "order", ID: orderID.String()}
	}

	items, err := s.repos.Orders.GetItems(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}
	return order, items, nil
}

// List returns the user's orders, newest first.
func (s *OrderService) List(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	return s.repos.Orders.ListByUser(ctx, userID)
}

// AdvanceStatus moves an order along its lifecycle, rejecting transitions
// the status machine doesn't allow.
func (s *OrderService) AdvanceStatus(ctx context.Context, orderID uuid.UUID, status domain.OrderStatus) (*domain.Order, error) {
	if !status.IsValid() {
		return nil, &errors.ErrInvalidStateTransition{From: "", To: string(status)}
	}

	order, err := s.repos.Orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !order.Status.CanTransitionTo(status) {
		return nil, &errors.ErrInvalidStateTransition{
			From: string(order.Status),
			To:   string(status),
		}
	}

	if err := s.repos.Orders.UpdateStatus(ctx, orderID, status); err != nil {
		return nil, err
	}

	return s.repos.Orders.GetByID(ctx, orderID)
}
