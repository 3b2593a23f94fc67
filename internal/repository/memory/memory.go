// Package memory holds in-memory repository implementations. They back the
// server when no database is configured and stand in for the real backend
// the same way the original mock service layer did.
package memory

import (
	"go.uber.org/zap"

	"github.com/lankacraft/marketapi/internal/repository"
)

// NewRepositories creates the full in-memory repository set
func NewRepositories(logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Users:    NewUserRepository(logger),
		Sessions: NewSessionRepository(logger),
		Orders:   NewOrderRepository(logger),
	}
}
