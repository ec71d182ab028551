package cache

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"telegram_webapp/internal/domain"
	"telegram_webapp/internal/logger"
	"telegram_webapp/internal/repository"

	"github.com/redis/go-redis/v9"
)

const chatBufferKey = "chat:pending"

// ChatCache buffers freshly sent messages before they are batched into
// Postgres, and serves recent history straight out of the buffer so a
// chat-history read issued moments after a WHISPER_MESSAGE doesn't race the
// flusher. Mirrors ChatHistory's split between an in-memory message vector
// and the durable table in the original server.
type ChatCache struct {
	rdb  *redis.Client
	repo *repository.ChatRepository

	mu      sync.Mutex
	pending []domain.ChatMessage
}

func NewChatCache(rdb *redis.Client, repo *repository.ChatRepository) *ChatCache {
	return &ChatCache{rdb: rdb, repo: repo}
}

// Append records a new message in the in-memory buffer and mirrors it into
// Redis so a restart between flushes doesn't lose it.
func (c *ChatCache) Append(ctx context.Context, m domain.ChatMessage) error {
	c.mu.Lock()
	c.pending = append(c.pending, m)
	c.mu.Unlock()

	blob, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return c.rdb.RPush(ctx, chatBufferKey, blob).Err()
}

// RecentBetween returns buffered messages between the two users older than
// beforeTS, newest first, capped at limit. Used to merge with a durable-store
// query so very recent sends are visible before the next flush.
func (c *ChatCache) RecentBetween(userID, peerID, beforeTS int64, limit int) []domain.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()

	var out []domain.ChatMessage
	for _, m := range c.pending {
		if m.Timestamp >= beforeTS {
			continue
		}
		if (m.SenderID == userID && m.ReceiverID == peerID) || (m.SenderID == peerID && m.ReceiverID == userID) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// FlushNow drains the buffer into Postgres synchronously. Exported so tests
// don't have to wait on the ticker.
func (c *ChatCache) FlushNow(ctx context.Context) error {
	c.mu.Lock()
	batch := c.pending
	c.pending = nil
	c.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	if err := c.repo.InsertBatch(ctx, batch); err != nil {
		c.mu.Lock()
		c.pending = append(batch, c.pending...)
		c.mu.Unlock()
		return err
	}

	if err := c.rdb.Del(ctx, chatBufferKey).Err(); err != nil {
		logger.Warn("chat_cache: failed to clear redis buffer after flush", "err", err)
	}
	return nil
}

// Restore replays any messages left in Redis from a previous process into
// the in-memory buffer, so a crash between flushes doesn't drop writes.
func (c *ChatCache) Restore(ctx context.Context) error {
	vals, err := c.rdb.LRange(ctx, chatBufferKey, 0, -1).Result()
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, v := range vals {
		var m domain.ChatMessage
		if err := json.Unmarshal([]byte(v), &m); err != nil {
			continue
		}
		c.pending = append(c.pending, m)
	}
	return nil
}
