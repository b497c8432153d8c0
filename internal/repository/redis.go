package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"classcode/internal/domain"
)

var (
	ErrRedisURL      = errors.New("failed to parse redis connection string")
	ErrRedisNotReady = errors.New("redis did not become ready within the given time period")
)

// saveScript claims a free code and clears any join stats left by a
// previous holder in the same step.
var saveScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
	return 0
end
redis.call('DEL', KEYS[2])
local expireAt = tonumber(ARGV[2])
if expireAt > 0 then
	redis.call('SET', KEYS[1], ARGV[1], 'PXAT', expireAt)
else
	redis.call('SET', KEYS[1], ARGV[1])
end
return 1
`)

// joinScript bumps the join counter of a live session and keeps the
// counter's TTL in step with the session key.
var joinScript = redis.NewScript(`
local ttl = redis.call('PTTL', KEYS[1])
if ttl == -2 then
	return 0
end
redis.call('HINCRBY', KEYS[2], 'count', 1)
redis.call('HSET', KEYS[2], 'last', ARGV[1])
if ttl > 0 then
	redis.call('PEXPIRE', KEYS[2], ttl)
end
return 1
`)

// RedisRepository stores sessions in Redis. Expiry is left to Redis, so
// DeleteExpired never finds anything to remove.
type RedisRepository struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisRepository(client redis.UniversalClient, prefix string) *RedisRepository {
	return &RedisRepository{client: client, prefix: prefix}
}

// ConnectRedis parses url and pings the server until it answers, up to
// attempts times.
func ConnectRedis(ctx context.Context, url string, attempts int, interval time.Duration) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrRedisURL, err)
	}

	for range max(attempts, 1) {
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(interval):
		}
	}
	return nil, ErrRedisNotReady
}

// sessionRecord is the stored form of a session; join stats live in a
// separate hash.
type sessionRecord struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (r *RedisRepository) key(code string) string {
	return r.prefix + ":session:" + code
}

func (r *RedisRepository) joinsKey(code string) string {
	return r.key(code) + ":joins"
}

func (r *RedisRepository) SaveIfNotExists(ctx context.Context, session *domain.Session) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.Marshal(sessionRecord{
		ID:        session.ID.String(),
		Label:     session.Label,
		CreatedAt: session.CreatedAt,
		ExpiresAt: session.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}

	var expireAt int64
	if !session.ExpiresAt.IsZero() {
		expireAt = session.ExpiresAt.UnixMilli()
	}

	keys := []string{r.key(session.Code), r.joinsKey(session.Code)}
	ok, err := saveScript.Run(ctx, r.client, keys, data, expireAt).Int()
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	if ok == 0 {
		return domain.ErrCodeExists
	}
	return nil
}

func (r *RedisRepository) FindByCode(ctx context.Context, code string) (*domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		get   *redis.StringCmd
		joins *redis.MapStringStringCmd
	)
	_, err := r.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		get = p.Get(ctx, r.key(code))
		joins = p.HGetAll(ctx, r.joinsKey(code))
		return nil
	})
	if errors.Is(err, redis.Nil) || errors.Is(get.Err(), redis.Nil) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	var rec sessionRecord
	if err := json.Unmarshal([]byte(get.Val()), &rec); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}

	session := &domain.Session{
		Code:      code,
		Label:     rec.Label,
		CreatedAt: rec.CreatedAt,
		ExpiresAt: rec.ExpiresAt,
	}
	if err := session.ID.UnmarshalText([]byte(rec.ID)); err != nil {
		return nil, fmt.Errorf("decoding session id: %w", err)
	}

	stats := joins.Val()
	if v, ok := stats["count"]; ok {
		session.JoinCount, _ = strconv.ParseInt(v, 10, 64)
	}
	if v, ok := stats["last"]; ok {
		if nanos, err := strconv.ParseInt(v, 10, 64); err == nil {
			session.LastJoinedAt = time.Unix(0, nanos).UTC()
		}
	}
	return session, nil
}

func (r *RedisRepository) IncrementJoinCount(ctx context.Context, code string, joinedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	keys := []string{r.key(code), r.joinsKey(code)}
	ok, err := joinScript.Run(ctx, r.client, keys, joinedAt.UnixNano()).Int()
	if err != nil {
		return fmt.Errorf("recording join: %w", err)
	}
	if ok == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteExpired is a no-op: Redis evicts sessions at their expiry.
func (r *RedisRepository) DeleteExpired(ctx context.Context, _ time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return 0, nil
}
