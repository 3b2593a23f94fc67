package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lankacraft/marketapi/internal/domain"
	"github.com/lankacraft/marketapi/pkg/errors"
)

type sessionRepository struct {
	mu     sync.RWMutex
	byUser map[uuid.UUID]domain.Session
	logger *zap.Logger
}

// NewSessionRepository creates an in-memory session repository
func NewSessionRepository(logger *zap.Logger) *sessionRepository {
	return &sessionRepository{
		byUser: make(map[uuid.UUID]domain.Session),
		logger: logger,
	}
}

func (r *sessionRepository) ReplaceForUser(ctx context.Context, session *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	r.byUser[session.UserID] = *session
	return nil
}

func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*domain.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	// Hashes are salted, so the token has to be verified against each
	// stored session rather than looked up directly.
	for _, session := range r.byUser {
		if err := bcrypt.CompareHashAndPassword([]byte(session.TokenHash), []byte(token)); err == nil {
			s := session
			return &s, nil
		}
	}
	return nil, &errors.ErrUnauthorized{Message: "invalid session token"}
}

func (r *sessionRepository) DeleteForUser(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.byUser, userID)
	return nil
}
