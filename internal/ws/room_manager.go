package ws

import (
	"sync"
	"time"

	"telegram_webapp/internal/domain"
	"telegram_webapp/internal/game"
	"telegram_webapp/internal/logger"
)

// RoomManager is the thread-safe room_id -> Room registry plus the
// process-wide user_id -> room_id index from §3. It is only ever touched
// from SessionHub's single worker, so its mutex exists purely to let the
// empty-room sweeper and any HTTP room-list read run concurrently with it.
type RoomManager struct {
	mu       sync.Mutex
	rooms    map[string]*Room
	userRoom map[int64]string

	factory *game.Factory
	onFinish func(room *Room, result *game.Result)

	stop chan struct{}
}

func NewRoomManager(factory *game.Factory, onFinish func(room *Room, result *game.Result)) *RoomManager {
	return &RoomManager{
		rooms:    make(map[string]*Room),
		userRoom: make(map[int64]string),
		factory:  factory,
		onFinish: onFinish,
		stop:     make(chan struct{}),
	}
}

// StartSweeper runs the ~5 minute empty-room sweeper from §4.C as a detached
// goroutine. Call once at startup.
func (rm *RoomManager) StartSweeper(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				rm.sweep()
			case <-rm.stop:
				return
			}
		}
	}()
}

func (rm *RoomManager) Stop() { close(rm.stop) }

func (rm *RoomManager) sweep() {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	for id, room := range rm.rooms {
		if !room.IsGameOn && room.IsEmpty() {
			delete(rm.rooms, id)
			roomsActive.Dec()
			logger.Info("ws: swept empty room", "room_id", id)
		}
	}
}

// CreateRoom implements create(room_id, type, creator, password, name):
// fails if room_id already exists.
func (rm *RoomManager) CreateRoom(roomID string, roomType domain.RoomType, creatorID int64, creatorName, displayName, password string, push Pusher) (*Room, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	if _, exists := rm.rooms[roomID]; exists {
		return nil, roomError(ErrRoomExists)
	}
	room := NewRoom(roomID, roomType, creatorID, creatorName, displayName, password, push, rm.factory)
	room.OnGameFinished = rm.onFinish
	rm.rooms[roomID] = room
	roomsActive.Inc()
	return room, nil
}

func (rm *RoomManager) GetRoomList() []RoomListEntry {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	out := make([]RoomListEntry, 0, len(rm.rooms))
	for _, room := range rm.rooms {
		out = append(out, room.ListEntry())
	}
	return out
}

func (rm *RoomManager) GetRoom(roomID string) (*Room, bool) {
	rm.mu.Lock()
	defer rm.mu.Unlock()
	room, ok := rm.rooms[roomID]
	return room, ok
}

// RoomOf resolves the caller's current room via the user_id -> room_id
// index, per §4.C's dispatch rule for every message type except
// CREATE_ROOM/GET_ROOM_LIST/JOIN_ROOM.
func (rm *RoomManager) RoomOf(userID int64) (*Room, bool) {
	rm.mu.Lock()
	roomID, ok := rm.userRoom[userID]
	rm.mu.Unlock()
	if !ok {
		return nil, false
	}
	return rm.GetRoom(roomID)
}

// Join resolves roomID and runs Room.Join, updating the user_id index on
// success. Enforces the single-room invariant from §3.
func (rm *RoomManager) Join(roomID string, connID uint32, userID int64, userName, password string) error {
	room, ok := rm.GetRoom(roomID)
	if !ok {
		return roomError(ErrRoomDoesNotExist)
	}

	rm.mu.Lock()
	currentRoomID, hasRoom := rm.userRoom[userID]
	rm.mu.Unlock()
	if hasRoom && currentRoomID != roomID {
		return roomError(ErrAlreadyInRoom)
	}

	if err := room.Join(connID, userID, userName, password); err != nil {
		return err
	}

	rm.mu.Lock()
	rm.userRoom[userID] = roomID
	rm.mu.Unlock()
	return nil
}

// Leave tells the user's single indexed Room to close that seat, and removes
// the room-index entry only when the Room removed the member (not when the
// seat is kept offline during a game). Called on socket disconnect.
func (rm *RoomManager) Leave(userID int64, connID uint32) {
	room, ok := rm.RoomOf(userID)
	if !ok {
		return
	}
	if removed := room.Close(connID); removed {
		rm.mu.Lock()
		delete(rm.userRoom, userID)
		rm.mu.Unlock()
	}
}
