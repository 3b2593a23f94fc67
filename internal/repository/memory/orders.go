package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lankacraft/marketapi/internal/domain"
	"github.com/lankacraft/marketapi/pkg/errors"
)

type orderRepository struct {
	mu     sync.RWMutex
	orders map[uuid.UUID]domain.Order
	items  map[uuid.UUID][]domain.OrderItem
	logger *zap.Logger
}

// NewOrderRepository creates an in-memory order repository
func NewOrderRepository(logger *zap.Logger) *orderRepository {
	return &orderRepository{
		orders: make(map[uuid.UUID]domain.Order),
		items:  make(map[uuid.UUID][]domain.OrderItem),
		logger: logger,
	}
}

func (r *orderRepository) Create(ctx context.Context, order *domain.Order, items []*domain.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = now
	}
	order.UpdatedAt = now

	stored := make([]domain.OrderItem, 0, len(items))
	for _, item := range items {
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		item.OrderID = order.ID
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		stored = append(stored, *item)
	}

	r.orders[order.ID] = *order
	r.items[order.ID] = stored
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	return &order, nil
}

func (r *orderRepository) GetItems(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.items[orderID]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "order", ID: orderID.String()}
	}
	items := make([]*domain.OrderItem, 0, len(stored))
	for i := range stored {
		item := stored[i]
		items = append(items, &item)
	}
	return items, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orders := make([]*domain.Order, 0)
	for id := range r.orders {
		order := r.orders[id]
		if order.UserID == userID {
			orders = append(orders, &order)
		}
	}
	// Newest first.
	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return &errors.ErrNotFound{Resource: "order", ID: id.String()}
	}
	order.Status = status
	order.UpdatedAt = time.Now()
	r.orders[id] = order
	return nil
}
