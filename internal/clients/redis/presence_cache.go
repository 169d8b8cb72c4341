package redis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/presslog/newsroom-backend/internal/platform/logger"
)

// PresenceCache keeps last-active timestamps hot for the online roster. The
// durable copy lives on the user row; a cache miss just means the caller
// falls back to the database.
type PresenceCache interface {
	SetLastActive(ctx context.Context, userID uuid.UUID, at time.Time) error
	GetLastActive(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]time.Time, error)
	Close() error
}

type presenceCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewPresenceCache connects using REDIS_ADDR. Entries expire after
// REDIS_PRESENCE_TTL_SECONDS (default 300) so departed users age out even
// if their last write was the final heartbeat.
func NewPresenceCache(log *logger.Logger) (PresenceCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	ttl := 300 * time.Second
	if raw := strings.TrimSpace(os.Getenv("REDIS_PRESENCE_TTL_SECONDS")); raw != "" {
		var secs int
		if _, err := fmt.Sscanf(raw, "%d", &secs); err == nil && secs > 0 {
			ttl = time.Duration(secs) * time.Second
		}
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &presenceCache{
		log: log.With("service", "RedisPresenceCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func presenceKey(userID uuid.UUID) string {
	return "presence:last_active:" + userID.String()
}

func (c *presenceCache) SetLastActive(ctx context.Context, userID uuid.UUID, at time.Time) error {
	if c == nil || c.rdb == nil {
		return fmt.Errorf("presence cache not initialized")
	}
	return c.rdb.Set(ctx, presenceKey(userID), at.UTC().Format(time.RFC3339Nano), c.ttl).Err()
}

func (c *presenceCache) GetLastActive(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]time.Time, error) {
	if c == nil || c.rdb == nil {
		return nil, fmt.Errorf("presence cache not initialized")
	}
	result := make(map[uuid.UUID]time.Time, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	keys := make([]string, len(userIDs))
	for i, id := range userIDs {
		keys[i] = presenceKey(id)
	}
	values, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range values {
		raw, ok := v.(string)
		if !ok || raw == "" {
			continue
		}
		at, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			c.log.Warn("dropping malformed presence entry", "key", keys[i], "error", err)
			continue
		}
		result[userIDs[i]] = at
	}
	return result, nil
}

func (c *presenceCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
