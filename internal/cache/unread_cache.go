// Package cache holds the two write-behind caches described in the core
// spec: unread message counters and recent chat messages. Both use Redis as
// the shared, restart-surviving layer in front of Postgres, in the same role
// the teacher's rate limiter already gives Redis (internal/http/middleware/ratelimit_redis.go).
package cache

import (
	"context"
	"fmt"
	"strconv"

	"telegram_webapp/internal/logger"

	"github.com/redis/go-redis/v9"
)

func unreadKey(userID, friendID int64) string {
	return fmt.Sprintf("unread:%d:%d", userID, friendID)
}

// UnreadCache buffers unread_add deltas in one Redis counter key per
// (user, friend) pair, bumped with INCR, and periodically
// drains them into the relation table's persisted counter.
type UnreadCache struct {
	rdb *redis.Client
}

func NewUnreadCache(rdb *redis.Client) *UnreadCache {
	return &UnreadCache{rdb: rdb}
}

// Add bumps the in-flight delta for (userID, friendID) by one. Safe to call
// even if the row has never been flushed yet.
func (c *UnreadCache) Add(ctx context.Context, userID, friendID int64) error {
	return c.rdb.Incr(ctx, unreadKey(userID, friendID)).Err()
}

// Clear zeroes the pending delta. The persisted counter is cleared by the
// caller through the repository in the same request.
func (c *UnreadCache) Clear(ctx context.Context, userID, friendID int64) error {
	return c.rdb.Del(ctx, unreadKey(userID, friendID)).Err()
}

// PendingDelta returns the not-yet-flushed delta for (userID, friendID), so
// a friend-list read can show the bump before the next flush.
func (c *UnreadCache) PendingDelta(ctx context.Context, userID, friendID int64) (int64, error) {
	v, err := c.rdb.Get(ctx, unreadKey(userID, friendID)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(v, 10, 64)
}

// UnreadDelta is one drained entry, ready to apply to the durable store.
type UnreadDelta struct {
	UserID   int64
	FriendID int64
	Delta    int64
}

// DrainAll scans every pending key, returns their deltas, and removes them.
// Entries added concurrently with a drain are not lost: Redis INCR after the
// GETDEL observed here simply starts a fresh key for the next flush window.
func (c *UnreadCache) DrainAll(ctx context.Context) ([]UnreadDelta, error) {
	var out []UnreadDelta
	iter := c.rdb.Scan(ctx, 0, "unread:*:*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		val, err := c.rdb.GetDel(ctx, key).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			logger.Warn("unread_cache: drain failed", "key", key, "err", err)
			continue
		}
		delta, err := strconv.ParseInt(val, 10, 64)
		if err != nil {
			continue
		}
		var userID, friendID int64
		if _, err := fmt.Sscanf(key, "unread:%d:%d", &userID, &friendID); err != nil {
			continue
		}
		out = append(out, UnreadDelta{UserID: userID, FriendID: friendID, Delta: delta})
	}
	return out, iter.Err()
}
