package repository

import (
	"context"
	"sync"
	"time"

	"classcode/internal/domain"
)

// MemoryRepository provides thread-safe in-memory storage.
type MemoryRepository struct {
	mu   sync.RWMutex
	data map[string]*domain.Session
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		data: make(map[string]*domain.Session),
	}
}

func (r *MemoryRepository) SaveIfNotExists(ctx context.Context, session *domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// An expired holder gives the code up, as Redis expiry would.
	if existing, exists := r.data[session.Code]; exists && !existing.IsExpired(session.CreatedAt) {
		return domain.ErrCodeExists
	}

	r.data[session.Code] = session.Clone()
	return nil
}

func (r *MemoryRepository) FindByCode(ctx context.Context, code string) (*domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.data[code]
	if !exists {
		return nil, domain.ErrNotFound
	}
	return session.Clone(), nil
}

func (r *MemoryRepository) IncrementJoinCount(ctx context.Context, code string, joinedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session, exists := r.data[code]
	if !exists {
		return domain.ErrNotFound
	}

	session.JoinCount++
	session.LastJoinedAt = joinedAt
	return nil
}

func (r *MemoryRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for code, session := range r.data {
		if session.ExpiresAt.Before(before) {
			delete(r.data, code)
			deleted++
		}
	}
	return deleted, nil
}
