package cache

import (
	"context"
	"time"

	"telegram_webapp/internal/logger"
	"telegram_webapp/internal/repository"
)

// Flusher periodically drains both write-behind caches into Postgres. Shaped
// like ws.RoomManager.StartSweeper: a background goroutine driven by a time.Ticker,
// stoppable, with a synchronous FlushNow for tests.
type Flusher struct {
	unread     *UnreadCache
	chat       *ChatCache
	friendRepo *repository.FriendRepository
	interval   time.Duration
	stop       chan struct{}
}

func NewFlusher(unread *UnreadCache, chat *ChatCache, friendRepo *repository.FriendRepository, interval time.Duration) *Flusher {
	return &Flusher{
		unread:     unread,
		chat:       chat,
		friendRepo: friendRepo,
		interval:   interval,
		stop:       make(chan struct{}),
	}
}

// Start runs the flush loop until Stop is called. Call as a goroutine.
func (f *Flusher) Start() {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			if err := f.FlushNow(ctx); err != nil {
				logger.Error("cache flush failed", "err", err)
			}
			cancel()
		case <-f.stop:
			return
		}
	}
}

func (f *Flusher) Stop() {
	close(f.stop)
}

// FlushNow drains both caches synchronously. Exposed for tests that need a
// deterministic flush point instead of waiting on the ticker.
func (f *Flusher) FlushNow(ctx context.Context) error {
	if err := f.chat.FlushNow(ctx); err != nil {
		return err
	}

	deltas, err := f.unread.DrainAll(ctx)
	if err != nil {
		return err
	}
	for _, d := range deltas {
		if err := f.friendRepo.AddUnread(ctx, d.UserID, d.FriendID, d.Delta); err != nil {
			logger.Error("unread flush failed", "user_id", d.UserID, "friend_id", d.FriendID, "err", err)
		}
	}
	return nil
}
