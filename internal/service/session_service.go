package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"classcode/internal/alphabet"
	"classcode/internal/domain"
	"classcode/internal/repository"
)

const (
	maxRetries = 5
	defaultTTL = 24 * time.Hour
)

// CodeGenerator produces candidate join codes.
type CodeGenerator interface {
	Generate() (string, error)
}

// Option configures a SessionService.
type Option func(*SessionService)

// WithDefaultTTL sets the lifetime used when Create is given none.
func WithDefaultTTL(ttl time.Duration) Option {
	return func(s *SessionService) {
		if ttl > 0 {
			s.defaultTTL = ttl
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *SessionService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// SessionService issues class sessions and tracks students joining them.
type SessionService struct {
	repo  repository.Repository
	clock domain.Clock

	// The generator mutates its trie on every call.
	mu        sync.Mutex
	generator CodeGenerator

	defaultTTL time.Duration
	logger     *slog.Logger
}

func NewSessionService(repo repository.Repository, generator CodeGenerator, clock domain.Clock, opts ...Option) *SessionService {
	s := &SessionService{
		repo:       repo,
		generator:  generator,
		clock:      clock,
		defaultTTL: defaultTTL,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SessionService) nextCode() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generator.Generate()
}

// Create opens a session with a fresh code. A zero ttl means the default.
func (s *SessionService) Create(ctx context.Context, label string, ttl time.Duration) (*domain.Session, error) {
	if ttl == 0 {
		ttl = s.defaultTTL
	}

	now := s.clock.Now()

	for attempt := 0; attempt < maxRetries; attempt++ {
		code, err := s.nextCode()
		if err != nil {
			return nil, fmt.Errorf("generating code: %w", err)
		}

		session := &domain.Session{
			ID:        uuid.New(),
			Code:      code,
			Label:     label,
			CreatedAt: now,
			ExpiresAt: now.Add(ttl),
		}

		err = s.repo.SaveIfNotExists(ctx, session)
		if err == nil {
			return session, nil
		}

		if errors.Is(err, domain.ErrCodeExists) {
			s.logger.Debug("code collision", slog.String("code", code), slog.Int("attempt", attempt+1))
			continue
		}

		return nil, fmt.Errorf("saving session: %w", err)
	}

	return nil, ErrMaxRetries
}

// Join records a student joining the session behind code and returns the
// updated session. Codes are matched case-insensitively.
func (s *SessionService) Join(ctx context.Context, code string) (*domain.Session, error) {
	session, err := s.lookup(ctx, code)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	if err := s.repo.IncrementJoinCount(ctx, session.Code, now); err != nil {
		return nil, fmt.Errorf("recording join: %w", err)
	}

	session.JoinCount++
	session.LastJoinedAt = now
	return session, nil
}

// GetStats returns the session behind code without recording a join.
func (s *SessionService) GetStats(ctx context.Context, code string) (*domain.Session, error) {
	return s.lookup(ctx, code)
}

// Cleanup removes sessions that have expired by now.
func (s *SessionService) Cleanup(ctx context.Context) (int64, error) {
	deleted, err := s.repo.DeleteExpired(ctx, s.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("deleting expired sessions: %w", err)
	}
	if deleted > 0 {
		s.logger.Info("expired sessions removed", slog.Int64("count", deleted))
	}
	return deleted, nil
}

func (s *SessionService) lookup(ctx context.Context, code string) (*domain.Session, error) {
	code, err := Normalize(code)
	if err != nil {
		return nil, err
	}

	session, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if session.IsExpired(s.clock.Now()) {
		return nil, domain.ErrExpired
	}
	return session, nil
}

// Normalize folds a client-supplied code to its canonical form. It returns
// domain.ErrInvalidCode for anything a generator could not have produced.
func Normalize(code string) (string, error) {
	code = alphabet.Fold(strings.TrimSpace(code))
	if !alphabet.Valid(code) {
		return "", domain.ErrInvalidCode
	}
	return code, nil
}
