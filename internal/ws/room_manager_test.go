package ws

import (
	"testing"

	"telegram_webapp/internal/domain"
	"telegram_webapp/internal/game"
)

func noopPush(uint32, string, interface{}) {}

func newTestRoomManager() *RoomManager {
	return NewRoomManager(game.NewFactory(), nil)
}

func TestRoomManagerCreateRoomRejectsDuplicateID(t *testing.T) {
	rm := newTestRoomManager()

	if _, err := rm.CreateRoom("r1", domain.RoomTypeChat, 1, "alice", "Alice's Room", "", noopPush); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := rm.CreateRoom("r1", domain.RoomTypeChat, 2, "bob", "Bob's Room", "", noopPush); err != roomError(ErrRoomExists) {
		t.Fatalf("expected ErrRoomExists, got %v", err)
	}
}

func TestRoomManagerJoinEnforcesSingleRoomPerUser(t *testing.T) {
	rm := newTestRoomManager()
	if _, err := rm.CreateRoom("r1", domain.RoomTypeChat, 1, "alice", "Room 1", "", noopPush); err != nil {
		t.Fatalf("create r1: %v", err)
	}
	if _, err := rm.CreateRoom("r2", domain.RoomTypeChat, 2, "bob", "Room 2", "", noopPush); err != nil {
		t.Fatalf("create r2: %v", err)
	}

	if err := rm.Join("r1", 10, 1, "alice", ""); err != nil {
		t.Fatalf("join r1: %v", err)
	}
	if err := rm.Join("r2", 11, 1, "alice", ""); err != roomError(ErrAlreadyInRoom) {
		t.Fatalf("expected ErrAlreadyInRoom, got %v", err)
	}
}

func TestRoomManagerLeaveClearsIndexOnFullRemoval(t *testing.T) {
	rm := newTestRoomManager()
	if _, err := rm.CreateRoom("r1", domain.RoomTypeChat, 1, "alice", "Room 1", "", noopPush); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := rm.Join("r1", 10, 1, "alice", ""); err != nil {
		t.Fatalf("join: %v", err)
	}

	rm.Leave(1, 10)

	if _, ok := rm.RoomOf(1); ok {
		t.Fatalf("expected user to have no room after leaving")
	}
}

func TestRoomManagerGetRoomListReflectsCreatedRooms(t *testing.T) {
	rm := newTestRoomManager()
	if _, err := rm.CreateRoom("r1", domain.RoomTypeUno, 1, "alice", "Room 1", "", noopPush); err != nil {
		t.Fatalf("create: %v", err)
	}

	list := rm.GetRoomList()
	if len(list) != 1 || list[0].RoomID != "r1" {
		t.Fatalf("unexpected room list: %+v", list)
	}
}
