package repository_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"classcode/internal/domain"
	"classcode/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testRepository runs the behaviour every Repository must share.
// expiresNatively marks stores that drop expired sessions on their own.
func testRepository(t *testing.T, newRepo func(t *testing.T) repository.Repository, expiresNatively bool) {
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	session := func(code string) *domain.Session {
		return &domain.Session{
			ID:        uuid.New(),
			Code:      code,
			Label:     "Algebra 1",
			CreatedAt: now,
			ExpiresAt: now.Add(time.Hour),
		}
	}

	t.Run("SaveIfNotExists stores the session", func(t *testing.T) {
		repo := newRepo(t)
		want := session("ABC234")

		require.NoError(t, repo.SaveIfNotExists(ctx, want))

		got, err := repo.FindByCode(ctx, "ABC234")
		require.NoError(t, err)
		assert.Equal(t, want.ID, got.ID)
		assert.Equal(t, "Algebra 1", got.Label)
		assert.True(t, want.CreatedAt.Equal(got.CreatedAt))
		assert.True(t, want.ExpiresAt.Equal(got.ExpiresAt))
		assert.Zero(t, got.JoinCount)
		assert.True(t, got.LastJoinedAt.IsZero())
	})

	t.Run("SaveIfNotExists rejects a taken code", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.SaveIfNotExists(ctx, session("ABC234")))

		other := session("ABC234")
		other.Label = "Geometry"
		err := repo.SaveIfNotExists(ctx, other)
		assert.ErrorIs(t, err, domain.ErrCodeExists)

		got, err := repo.FindByCode(ctx, "ABC234")
		require.NoError(t, err)
		assert.Equal(t, "Algebra 1", got.Label)
	})

	t.Run("stored sessions are detached from callers", func(t *testing.T) {
		repo := newRepo(t)
		s := session("ABC234")
		require.NoError(t, repo.SaveIfNotExists(ctx, s))

		s.JoinCount = 999
		found, err := repo.FindByCode(ctx, "ABC234")
		require.NoError(t, err)
		assert.Zero(t, found.JoinCount)

		found.JoinCount = 999
		again, err := repo.FindByCode(ctx, "ABC234")
		require.NoError(t, err)
		assert.Zero(t, again.JoinCount)
	})

	t.Run("FindByCode reports missing codes", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.FindByCode(ctx, "ZZZZZZ")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("IncrementJoinCount counts and stamps", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.SaveIfNotExists(ctx, session("ABC234")))

		joinedAt := now.Add(10 * time.Minute)
		for i := 0; i < 3; i++ {
			require.NoError(t, repo.IncrementJoinCount(ctx, "ABC234", joinedAt))
		}

		found, err := repo.FindByCode(ctx, "ABC234")
		require.NoError(t, err)
		assert.Equal(t, int64(3), found.JoinCount)
		assert.True(t, joinedAt.Equal(found.LastJoinedAt))
	})

	t.Run("IncrementJoinCount reports missing codes", func(t *testing.T) {
		repo := newRepo(t)

		err := repo.IncrementJoinCount(ctx, "ZZZZZZ", now)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("concurrent joins are all counted", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.SaveIfNotExists(ctx, session("ABC234")))

		const workers, perWorker = 20, 25
		var wg sync.WaitGroup
		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go func() {
				defer wg.Done()
				for j := 0; j < perWorker; j++ {
					assert.NoError(t, repo.IncrementJoinCount(ctx, "ABC234", time.Now()))
				}
			}()
		}
		wg.Wait()

		found, err := repo.FindByCode(ctx, "ABC234")
		require.NoError(t, err)
		assert.Equal(t, int64(workers*perWorker), found.JoinCount)
	})

	t.Run("concurrent saves of one code let exactly one win", func(t *testing.T) {
		repo := newRepo(t)

		const workers = 50
		var wg sync.WaitGroup
		var wins, collisions atomic.Int32
		wg.Add(workers)
		for i := 0; i < workers; i++ {
			go func(id int) {
				defer wg.Done()
				s := session("SAME22")
				s.Label = fmt.Sprintf("class %d", id)

				err := repo.SaveIfNotExists(ctx, s)
				switch {
				case err == nil:
					wins.Add(1)
				case errors.Is(err, domain.ErrCodeExists):
					collisions.Add(1)
				}
			}(i)
		}
		wg.Wait()

		assert.Equal(t, int32(1), wins.Load())
		assert.Equal(t, int32(workers-1), collisions.Load())
	})

	t.Run("DeleteExpired drops only expired sessions", func(t *testing.T) {
		if expiresNatively {
			t.Skip("store expires sessions on its own")
		}
		repo := newRepo(t)

		for code, expiresAt := range map[string]time.Time{
			"EXP222": now.Add(-time.Hour),
			"EXP333": now.Add(-time.Minute),
			"VAL234": now.Add(time.Hour),
			"VAL567": now.Add(time.Minute),
		} {
			s := session(code)
			s.ExpiresAt = expiresAt
			require.NoError(t, repo.SaveIfNotExists(ctx, s))
		}

		deleted, err := repo.DeleteExpired(ctx, now)
		require.NoError(t, err)
		assert.Equal(t, int64(2), deleted)

		for _, code := range []string{"EXP222", "EXP333"} {
			_, err := repo.FindByCode(ctx, code)
			assert.ErrorIs(t, err, domain.ErrNotFound, code)
		}
		for _, code := range []string{"VAL234", "VAL567"} {
			_, err := repo.FindByCode(ctx, code)
			assert.NoError(t, err, code)
		}
	})

	t.Run("DeleteExpired on empty store", func(t *testing.T) {
		repo := newRepo(t)

		deleted, err := repo.DeleteExpired(ctx, now)
		require.NoError(t, err)
		assert.Zero(t, deleted)
	})

	t.Run("cancelled context is honoured", func(t *testing.T) {
		repo := newRepo(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		assert.ErrorIs(t, repo.SaveIfNotExists(cctx, session("TEST23")), context.Canceled)

		_, err := repo.FindByCode(cctx, "TEST23")
		assert.ErrorIs(t, err, context.Canceled)

		assert.ErrorIs(t, repo.IncrementJoinCount(cctx, "TEST23", now), context.Canceled)

		_, err = repo.DeleteExpired(cctx, now)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
