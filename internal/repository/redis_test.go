package repository_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"classcode/internal/domain"
	"classcode/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newRedisClient connects to REDIS_URL, skipping the test when it is unset.
func newRedisClient(t *testing.T) *redis.Client {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	client, err := repository.ConnectRedis(context.Background(), url, 3, 100*time.Millisecond)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

// newRedisRepo returns a repository under a fresh key prefix and removes
// its keys afterwards.
func newRedisRepo(t *testing.T) repository.Repository {
	client := newRedisClient(t)
	prefix := "classcode-test-" + uuid.NewString()

	t.Cleanup(func() {
		ctx := context.Background()
		iter := client.Scan(ctx, 0, prefix+":*", 100).Iterator()
		for iter.Next(ctx) {
			client.Del(ctx, iter.Val())
		}
	})
	return repository.NewRedisRepository(client, prefix)
}

func TestRedisRepository(t *testing.T) {
	testRepository(t, newRedisRepo, true)
}

func TestRedisRepository_SessionsExpire(t *testing.T) {
	repo := newRedisRepo(t)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.SaveIfNotExists(ctx, &domain.Session{
		ID:        uuid.New(),
		Code:      "EXP222",
		CreatedAt: now,
		ExpiresAt: now.Add(1500 * time.Millisecond),
	}))

	assert.Eventually(t, func() bool {
		_, err := repo.FindByCode(ctx, "EXP222")
		return errors.Is(err, domain.ErrNotFound)
	}, 5*time.Second, 100*time.Millisecond)
}

func TestRedisRepository_ReusedCodeStartsFresh(t *testing.T) {
	client := newRedisClient(t)
	prefix := "classcode-test-" + uuid.NewString()
	repo := repository.NewRedisRepository(client, prefix)
	ctx := context.Background()
	t.Cleanup(func() {
		client.Del(context.Background(), prefix+":session:ABC234", prefix+":session:ABC234:joins")
	})
	now := time.Now()

	first := &domain.Session{ID: uuid.New(), Code: "ABC234", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, repo.SaveIfNotExists(ctx, first))
	require.NoError(t, repo.IncrementJoinCount(ctx, "ABC234", now))

	found, err := repo.FindByCode(ctx, "ABC234")
	require.NoError(t, err)
	require.Equal(t, int64(1), found.JoinCount)

	// Drop only the session key, as Redis would on expiry.
	require.NoError(t, client.Del(ctx, prefix+":session:ABC234").Err())

	second := &domain.Session{ID: uuid.New(), Code: "ABC234", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, repo.SaveIfNotExists(ctx, second))

	found, err = repo.FindByCode(ctx, "ABC234")
	require.NoError(t, err)
	assert.Equal(t, second.ID, found.ID)
	assert.Zero(t, found.JoinCount)
}

func TestRedisRepository_RejectedSaveKeepsJoinStats(t *testing.T) {
	repo := newRedisRepo(t)
	ctx := context.Background()
	now := time.Now()

	first := &domain.Session{ID: uuid.New(), Code: "ABC234", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, repo.SaveIfNotExists(ctx, first))
	require.NoError(t, repo.IncrementJoinCount(ctx, "ABC234", now))

	second := &domain.Session{ID: uuid.New(), Code: "ABC234", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}
	assert.ErrorIs(t, repo.SaveIfNotExists(ctx, second), domain.ErrCodeExists)

	found, err := repo.FindByCode(ctx, "ABC234")
	require.NoError(t, err)
	assert.Equal(t, first.ID, found.ID)
	assert.Equal(t, int64(1), found.JoinCount)
}

func TestConnectRedis_BadURL(t *testing.T) {
	_, err := repository.ConnectRedis(context.Background(), "not-a-redis-url", 1, time.Millisecond)
	assert.ErrorIs(t, err, repository.ErrRedisURL)
}
