package ws

import (
	"testing"

	"telegram_webapp/internal/domain"
	"telegram_webapp/internal/game"
)

// recordingPusher captures every frame pushed to a conn_id, for assertions.
type recordingPusher struct {
	sent []sentFrame
}

type sentFrame struct {
	connID      uint32
	messageType string
	payload     interface{}
}

func (p *recordingPusher) push(connID uint32, messageType string, payload interface{}) {
	p.sent = append(p.sent, sentFrame{connID, messageType, payload})
}

func newTestRoom(roomType domain.RoomType) (*Room, *recordingPusher) {
	p := &recordingPusher{}
	r := NewRoom("room-1", roomType, 1, "alice", "Alice's Room", "", p.push, game.NewFactory())
	return r, p
}

func TestRoomJoinAddsMemberAndBroadcasts(t *testing.T) {
	r, p := newTestRoom(domain.RoomTypeChat)

	if err := r.Join(10, 1, "alice", ""); err != nil {
		t.Fatalf("join: %v", err)
	}
	if r.MemberCount() != 1 {
		t.Fatalf("member count = %d, want 1", r.MemberCount())
	}

	found := false
	for _, f := range p.sent {
		if f.messageType == OutNewMember {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a %s broadcast on join", OutNewMember)
	}
}

func TestRoomJoinRejectsBadPassword(t *testing.T) {
	p := &recordingPusher{}
	r := NewRoom("room-1", domain.RoomTypeChat, 1, "alice", "Alice's Room", "secret", p.push, game.NewFactory())

	if err := r.Join(10, 1, "alice", "wrong"); err != errBadPassword {
		t.Fatalf("err = %v, want errBadPassword", err)
	}
}

func TestRoomCloseRemovesMemberWhenGameOff(t *testing.T) {
	r, _ := newTestRoom(domain.RoomTypeChat)
	_ = r.Join(10, 1, "alice", "")

	if removed := r.Close(10); !removed {
		t.Fatalf("expected member to be removed")
	}
	if r.MemberCount() != 0 {
		t.Fatalf("member count = %d, want 0", r.MemberCount())
	}
}

func TestRoomCloseMarksOfflineDuringGame(t *testing.T) {
	r, _ := newTestRoom(domain.RoomTypeGomoku)
	_ = r.Join(10, 1, "alice", "")
	_ = r.Join(20, 2, "bob", "")
	if err := r.Prepare(10, true); err != nil {
		t.Fatalf("prepare alice: %v", err)
	}
	if err := r.Prepare(20, true); err != nil {
		t.Fatalf("prepare bob: %v", err)
	}
	if !r.IsGameOn {
		t.Fatalf("expected game to start once both players are prepared")
	}

	if removed := r.Close(10); removed {
		t.Fatalf("expected offline seat to be kept, not removed, while game is on")
	}
	if r.MemberCount() != 2 {
		t.Fatalf("member count = %d, want 2 (seat kept offline)", r.MemberCount())
	}
}

func TestRoomJoinReconnectsByNameDuringGame(t *testing.T) {
	r, p := newTestRoom(domain.RoomTypeGomoku)
	_ = r.Join(10, 1, "alice", "")
	_ = r.Join(20, 2, "bob", "")
	_ = r.Prepare(10, true)
	_ = r.Prepare(20, true)
	r.Close(10) // alice disconnects mid-game

	p.sent = nil
	if err := r.Join(30, 1, "alice", ""); err != nil {
		t.Fatalf("reconnect join: %v", err)
	}

	m := r.members[30]
	if m == nil || m.UserID != 1 || m.Offline {
		t.Fatalf("expected alice's seat rebound to conn 30 and online")
	}

	sawSnapshot := false
	for _, f := range p.sent {
		if f.connID == 30 && f.messageType == OutGomokuGameInfo {
			sawSnapshot = true
		}
	}
	if !sawSnapshot {
		t.Fatalf("expected a game snapshot sent only to the reconnecting conn")
	}
}

func TestRoomPrepareStartsGameOnceAllPrepared(t *testing.T) {
	r, p := newTestRoom(domain.RoomTypeGomoku)
	_ = r.Join(10, 1, "alice", "")
	_ = r.Join(20, 2, "bob", "")

	if err := r.Prepare(10, true); err != nil {
		t.Fatalf("prepare alice: %v", err)
	}
	if r.IsGameOn {
		t.Fatalf("game should not start until everyone is prepared")
	}
	if err := r.Prepare(20, true); err != nil {
		t.Fatalf("prepare bob: %v", err)
	}
	if !r.IsGameOn {
		t.Fatalf("expected game to start")
	}

	sawStart := false
	for _, f := range p.sent {
		if f.messageType == OutGomokuStart {
			sawStart = true
		}
	}
	if !sawStart {
		t.Fatalf("expected %s broadcast once prepared", OutGomokuStart)
	}
}

func TestRoomSoleSurvivorWinsByForfeit(t *testing.T) {
	r, p := newTestRoom(domain.RoomTypeGomoku)
	_ = r.Join(10, 1, "alice", "")
	_ = r.Join(20, 2, "bob", "")
	_ = r.Prepare(10, true)
	_ = r.Prepare(20, true)

	r.Close(10) // alice leaves, bob is sole survivor

	if r.IsGameOn {
		t.Fatalf("expected game to finish by forfeit")
	}

	var gotResult bool
	for _, f := range p.sent {
		if f.messageType == OutGomokuGameover {
			pl, ok := f.payload.(GameoverPayload)
			if ok && pl.WinnerID != nil && *pl.WinnerID == 2 {
				gotResult = true
			}
		}
	}
	if !gotResult {
		t.Fatalf("expected bob to be reported as the forfeit winner")
	}
}

func TestRoomListEntryReflectsState(t *testing.T) {
	r, _ := newTestRoom(domain.RoomTypeChat)
	_ = r.Join(10, 1, "alice", "")

	entry := r.ListEntry()
	if entry.RoomID != "room-1" || entry.MemberCount != 1 || entry.IsGameOn {
		t.Fatalf("unexpected list entry: %+v", entry)
	}
}
