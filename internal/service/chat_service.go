package service

import (
	"context"
	"sort"

	"telegram_webapp/internal/cache"
	"telegram_webapp/internal/domain"
	"telegram_webapp/internal/repository"
)

const chatHistoryPerPeerLimit = 20

// ChatService is ChatHistory from §4.F: a write-behind buffer of private
// messages in front of the chat table, merged with durable rows on read.
type ChatService struct {
	repo  *repository.ChatRepository
	cache *cache.ChatCache
}

func NewChatService(repo *repository.ChatRepository, cache *cache.ChatCache) *ChatService {
	return &ChatService{repo: repo, cache: cache}
}

// NewMessage implements new_chat_message: append to the cache, persisted on
// the next flush.
func (s *ChatService) NewMessage(ctx context.Context, msg domain.ChatMessage) error {
	return s.cache.Append(ctx, msg)
}

// GetHistory implements get_chat_message(user, before_ts): merges cached and
// durable rows, newest first, capped at 20 per peer.
func (s *ChatService) GetHistory(ctx context.Context, userID, peerID int64, beforeTS int64) ([]domain.ChatMessage, error) {
	if beforeTS <= 0 {
		beforeTS = 1<<63 - 1
	}

	persisted, err := s.repo.GetPeerHistory(ctx, userID, peerID, beforeTS, chatHistoryPerPeerLimit)
	if err != nil {
		return nil, err
	}
	cached := s.cache.RecentBetween(userID, peerID, beforeTS, chatHistoryPerPeerLimit)

	merged := append(cached, persisted...)
	sort.Slice(merged, func(i, j int) bool { return merged[i].Timestamp > merged[j].Timestamp })
	if len(merged) > chatHistoryPerPeerLimit {
		merged = merged[:chatHistoryPerPeerLimit]
	}
	return merged, nil
}
