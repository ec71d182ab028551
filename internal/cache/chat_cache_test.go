package cache

import (
	"testing"

	"telegram_webapp/internal/domain"
)

func TestChatCacheRecentBetweenFiltersAndOrders(t *testing.T) {
	c := &ChatCache{pending: []domain.ChatMessage{
		{SenderID: 1, ReceiverID: 2, Timestamp: 100, Message: "hi"},
		{SenderID: 2, ReceiverID: 1, Timestamp: 200, Message: "hey"},
		{SenderID: 1, ReceiverID: 3, Timestamp: 150, Message: "unrelated"},
		{SenderID: 1, ReceiverID: 2, Timestamp: 300, Message: "too new"},
	}}

	got := c.RecentBetween(1, 2, 300, 10)
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
	if got[0].Timestamp != 200 || got[1].Timestamp != 100 {
		t.Fatalf("expected newest-first order, got %+v", got)
	}
}

func TestChatCacheRecentBetweenRespectsLimit(t *testing.T) {
	c := &ChatCache{pending: []domain.ChatMessage{
		{SenderID: 1, ReceiverID: 2, Timestamp: 100},
		{SenderID: 1, ReceiverID: 2, Timestamp: 101},
		{SenderID: 1, ReceiverID: 2, Timestamp: 102},
	}}

	got := c.RecentBetween(1, 2, 1000, 2)
	if len(got) != 2 {
		t.Fatalf("len(got) = %d, want 2", len(got))
	}
}
