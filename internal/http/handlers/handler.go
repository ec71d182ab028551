package handlers

import (
	"telegram_webapp/internal/service"
	"telegram_webapp/internal/ws"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Handler holds every dependency the HTTP surface needs. Auth and Chat are
// the same Authorizer/ChatHistory instances SessionHub uses, so the unread
// and chat write-behind caches stay consistent across both entry points.
type Handler struct {
	DB    *pgxpool.Pool
	Auth  *service.AuthService
	Chat  *service.ChatService
	Rooms *ws.RoomManager
}

func NewHandler(db *pgxpool.Pool, auth *service.AuthService, chat *service.ChatService, rooms *ws.RoomManager) *Handler {
	return &Handler{DB: db, Auth: auth, Chat: chat, Rooms: rooms}
}

func getUserID(c interface{ Get(string) (any, bool) }) (int64, bool) {
	uidVal, ok := c.Get("user_id")
	if !ok {
		return 0, false
	}
	switch v := uidVal.(type) {
	case int64:
		return v, true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
