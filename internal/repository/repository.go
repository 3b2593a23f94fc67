package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/lankacraft/marketapi/internal/domain"
)

// Users stores marketplace accounts.
type Users interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
}

// Sessions stores bearer-token hashes. A user has at most one active
// session; replacing mints over any previous one.
type Sessions interface {
	ReplaceForUser(ctx context.Context, session *domain.Session) error
	// GetByToken resolves a plaintext bearer token to its session by
	// verifying it against stored hashes.
	GetByToken(ctx context.Context, token string) (*domain.Session, error)
	DeleteForUser(ctx context.Context, userID uuid.UUID) error
}

// Orders stores confirmed checkouts and their line items.
type Orders interface {
	Create(ctx context.Context, order *domain.Order, items []*domain.OrderItem) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error)
	GetItems(ctx context.Context, orderID uuid.UUID) ([]*domain.OrderItem, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OrderStatus) error
}

// Repositories aggregates all repository implementations
type Repositories struct {
	Users    Users
	Sessions Sessions
	Orders   Orders
}
