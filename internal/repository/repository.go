package repository

import (
	"context"
	"time"

	"classcode/internal/domain"
)

// Repository defines the contract for session storage.
// All implementations must be thread-safe for concurrent access.
type Repository interface {
	// SaveIfNotExists atomically saves the session only if its code
	// isn't taken. Returns domain.ErrCodeExists if taken.
	SaveIfNotExists(ctx context.Context, session *domain.Session) error

	// FindByCode retrieves a session by its code.
	// Returns domain.ErrNotFound if the code doesn't exist.
	FindByCode(ctx context.Context, code string) (*domain.Session, error)

	// IncrementJoinCount atomically increments the join counter
	// and updates LastJoinedAt.
	// Returns domain.ErrNotFound if the code doesn't exist.
	IncrementJoinCount(ctx context.Context, code string, joinedAt time.Time) error

	// DeleteExpired removes all sessions where ExpiresAt < before.
	// Returns the number of deleted sessions.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
