package ws

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"telegram_webapp/internal/domain"
	"telegram_webapp/internal/game"
	"telegram_webapp/internal/logger"
)

// Membership is one seat in a Room. Offline marks a seat held open for
// reconnection while a game is on; it is never set for a CHAT room, whose
// members are simply removed on close.
type Membership struct {
	UserName string
	UserID   int64
	ConnID   uint32
	Offline  bool
	Prepared bool
}

// roomError is a sentinel the dispatcher sends back as the "info" field of
// the request's *_RES acknowledgement, per the catalogue in §7.
type roomError string

func (e roomError) Error() string { return string(e) }

const (
	errRoomFullGameOn  roomError = ErrGameOn
	errAlreadyInRoom   roomError = ErrAlreadyInRoom
	errBadPassword     roomError = ErrBadPassword
	errLessThanXPeople roomError = ErrLessThanXPeople
	errMoreThanXPeople roomError = ErrMoreThanXPeople
)

// Pusher delivers one outbound envelope to one connection. The Room never
// touches a socket directly; SessionHub supplies this.
type Pusher func(connID uint32, messageType string, payload interface{})

// Room is the membership/chat/prepare/close state machine shared by every
// game kind. GameRules state is held as an opaque game.Game, constructed
// once every member has prepared. All methods are called from SessionHub's
// single worker goroutine and need no internal locking.
type Room struct {
	ID          string
	Type        domain.RoomType
	CreatorName string
	CreatorID   int64
	DisplayName string
	Password    string
	CreatedAt   time.Time

	order   []uint32 // conn_id join order, doubles as turn order at game start
	members map[uint32]*Membership

	IsGameOn bool
	Game     game.Game

	push    Pusher
	factory *game.Factory

	// OnGameFinished is invoked once per finished game, with the final
	// roster and result, so the caller can persist game_history rows.
	OnGameFinished func(room *Room, result *game.Result)
}

func NewRoom(id string, roomType domain.RoomType, creatorID int64, creatorName, displayName, password string, push Pusher, factory *game.Factory) *Room {
	return &Room{
		ID:          id,
		Type:        roomType,
		CreatorID:   creatorID,
		CreatorName: creatorName,
		DisplayName: displayName,
		Password:    password,
		CreatedAt:   time.Now(),
		members:     make(map[uint32]*Membership),
		push:        push,
		factory:     factory,
	}
}

func (r *Room) gameKind() (game.Kind, bool) {
	switch r.Type {
	case domain.RoomTypeUno:
		return game.KindUno, true
	case domain.RoomTypeGem:
		return game.KindGem, true
	case domain.RoomTypeGomoku:
		return game.KindGomoku, true
	default:
		return "", false
	}
}

func (r *Room) findByUserName(name string) *Membership {
	for _, connID := range r.order {
		if m := r.members[connID]; m != nil && m.UserName == name {
			return m
		}
	}
	return nil
}

// Join implements §4.B join(conn_id, user_name, user_id, password).
func (r *Room) Join(connID uint32, userID int64, userName, password string) error {
	if r.IsGameOn {
		existing := r.findByUserName(userName)
		if existing == nil {
			return errRoomFullGameOn
		}
		oldConnID := existing.ConnID
		delete(r.members, oldConnID)
		existing.ConnID = connID
		existing.Offline = false
		r.members[connID] = existing
		for i, c := range r.order {
			if c == oldConnID {
				r.order[i] = connID
			}
		}
		r.broadcastMembers()
		r.sendSnapshot(connID, userID)
		return nil
	}

	if r.Password != "" && r.Password != password {
		return errBadPassword
	}

	if _, exists := r.members[connID]; !exists {
		r.order = append(r.order, connID)
	}
	r.members[connID] = &Membership{UserName: userName, UserID: userID, ConnID: connID}

	r.broadcast(OutNewMember, NewMemberPayload{UserName: userName, UserID: userID})
	r.broadcastMembers()
	return nil
}

// Chat implements §4.B chat(payload): stamp and relay to live members.
func (r *Room) Chat(connID uint32, message string) {
	m := r.members[connID]
	if m == nil {
		return
	}
	r.broadcast(OutChatMessage, ChatMessageOutPayload{
		SenderID:   m.UserID,
		SenderName: m.UserName,
		Message:    message,
		Timestamp:  time.Now().Unix(),
	})
}

// Prepare implements §4.B prepare(conn_id, bool).
func (r *Room) Prepare(connID uint32, prepared bool) error {
	m := r.members[connID]
	if m == nil {
		return errors.New("not a member")
	}
	m.Prepared = prepared
	r.broadcastMembers()

	if !prepared || r.IsGameOn {
		return nil
	}
	for _, c := range r.order {
		if mm := r.members[c]; mm != nil && !mm.Offline && !mm.Prepared {
			return nil
		}
	}
	return r.onEveryonePrepared()
}

func (r *Room) onlineRoster() []int64 {
	roster := make([]int64, 0, len(r.order))
	for _, c := range r.order {
		if m := r.members[c]; m != nil && !m.Offline {
			roster = append(roster, m.UserID)
		}
	}
	return roster
}

func (r *Room) onEveryonePrepared() error {
	kind, ok := r.gameKind()
	if !ok {
		return nil // CHAT rooms have no game to start
	}

	roster := r.onlineRoster()
	min, max := game.PlayerBounds(kind)
	if len(roster) < min {
		return errLessThanXPeople
	}
	if len(roster) > max {
		return errMoreThanXPeople
	}

	g, err := r.factory.CreateGame(kind, r.ID, roster)
	if err != nil {
		return err
	}
	r.Game = g
	r.IsGameOn = true
	gamesInProgress.Inc()
	for _, c := range r.order {
		if m := r.members[c]; m != nil {
			m.Prepared = false
		}
	}

	for _, c := range r.order {
		if m := r.members[c]; m != nil && !m.Offline {
			r.push(c, startMessageFor(kind), r.Game.Snapshot(m.UserID))
		}
	}
	return nil
}

func startMessageFor(kind game.Kind) string {
	switch kind {
	case game.KindUno:
		return OutUnoStart
	case game.KindGem:
		return OutSplendorStart
	case game.KindGomoku:
		return OutGomokuStart
	default:
		return OutError
	}
}

func gameInfoMessageFor(kind game.Kind) string {
	switch kind {
	case game.KindUno:
		return OutUnoGameInfo
	case game.KindGem:
		return OutSplendorGameInfo
	case game.KindGomoku:
		return OutGomokuGameInfo
	default:
		return OutError
	}
}

func gameoverMessageFor(kind game.Kind) string {
	switch kind {
	case game.KindUno:
		return OutUnoGameover
	case game.KindGem:
		return OutSplendorGameover
	case game.KindGomoku:
		return OutGomokuGameover
	default:
		return OutError
	}
}

// sendSnapshot pushes the current game snapshot to one user, used on
// reconnect so only that socket sees it (per scenario 5 in §8).
func (r *Room) sendSnapshot(connID uint32, userID int64) {
	if r.Game == nil {
		return
	}
	r.push(connID, gameInfoMessageFor(r.Game.Kind()), r.Game.Snapshot(userID))
}

// HandleMove decodes a game-specific inbound message and applies it to the
// live game, then broadcasts the resulting snapshot to every online member.
// Illegal moves are silently dropped per §7's propagation policy.
func (r *Room) HandleMove(connID uint32, messageType string, rawPayload interface{}) {
	m := r.members[connID]
	if m == nil || !r.IsGameOn || r.Game == nil {
		return
	}

	payload, err := decodeMovePayload(r.Game.Kind(), messageType, rawPayload)
	if err != nil {
		logger.Warn("ws: bad move payload", "room", r.ID, "type", messageType, "err", err)
		return
	}

	if err := r.Game.HandleMove(m.UserID, messageType, payload); err != nil {
		return
	}

	kind := r.Game.Kind()
	for _, c := range r.order {
		if mm := r.members[c]; mm != nil && !mm.Offline {
			r.push(c, gameInfoMessageFor(kind), r.Game.Snapshot(mm.UserID))
		}
	}

	if result := r.Game.CheckResult(); result != nil {
		r.finishGame(kind, result)
	}
}

func (r *Room) finishGame(kind game.Kind, result *game.Result) {
	r.IsGameOn = false
	gamesInProgress.Dec()
	for _, c := range r.order {
		if mm := r.members[c]; mm != nil && !mm.Offline {
			r.push(c, gameoverMessageFor(kind), GameoverPayload{WinnerID: result.WinnerID, Reason: result.Reason, Details: result.Details})
		}
	}
	if r.OnGameFinished != nil {
		r.OnGameFinished(r, result)
	}
	r.Game = nil
	for _, c := range r.order {
		if m := r.members[c]; m != nil {
			m.Offline = false
		}
	}
	r.broadcastMembers()
}

// Close implements §4.B close(conn_id).
func (r *Room) Close(connID uint32) (removed bool) {
	m := r.members[connID]
	if m == nil {
		return false
	}
	if r.IsGameOn {
		m.Offline = true
		r.broadcastMembers()
		if result := r.checkSoleSurvivor(); result != nil {
			r.finishGame(r.Game.Kind(), result)
		}
		return false
	}

	delete(r.members, connID)
	for i, c := range r.order {
		if c == connID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.broadcast(OutMemberLeaves, MemberLeavesPayload{UserID: m.UserID})
	r.broadcastMembers()
	return true
}

// checkSoleSurvivor reports a win-by-forfeit once every other member has
// gone offline mid-game, matching the source's "last leaver" behavior.
func (r *Room) checkSoleSurvivor() *game.Result {
	var online []int64
	for _, c := range r.order {
		if m := r.members[c]; m != nil && !m.Offline {
			online = append(online, m.UserID)
		}
	}
	if len(online) != 1 || len(r.order) < 2 {
		return nil
	}
	winner := online[0]
	return &game.Result{WinnerID: &winner, Reason: "opponent_disconnected"}
}

// Players returns the game's fixed roster, for an OnGameFinished callback
// that persists a per-player result. It returns nil once that callback has
// returned, because the finished game is then dropped.
func (r *Room) Players() []int64 {
	if r.Game == nil {
		return nil
	}
	return r.Game.Players()
}

func (r *Room) IsEmpty() bool {
	for _, m := range r.members {
		if !m.Offline {
			return false
		}
	}
	return true
}

func (r *Room) MemberCount() int { return len(r.members) }

func (r *Room) broadcastMembers() {
	members := make([]RoomMemberWire, 0, len(r.order))
	for _, c := range r.order {
		m := r.members[c]
		if m == nil {
			continue
		}
		members = append(members, RoomMemberWire{UserName: m.UserName, UserID: m.UserID, Offline: m.Offline, Prepared: m.Prepared})
	}
	sort.Slice(members, func(i, j int) bool { return members[i].UserID < members[j].UserID })
	r.broadcast(OutRoomMembersInfo, RoomMembersInfoPayload{RoomID: r.ID, IsGameOn: r.IsGameOn, Members: members})
}

func (r *Room) broadcast(messageType string, payload interface{}) {
	for _, c := range r.order {
		if m := r.members[c]; m != nil && !m.Offline {
			r.push(c, messageType, payload)
		}
	}
}

func (r *Room) ListEntry() RoomListEntry {
	return RoomListEntry{
		RoomID:      r.ID,
		RoomType:    string(r.Type),
		DisplayName: r.DisplayName,
		CreatorName: r.CreatorName,
		HasPassword: r.Password != "",
		IsGameOn:    r.IsGameOn,
		MemberCount: r.MemberCount(),
	}
}

// decodeMovePayload translates the wire payload (already json-decoded into
// the Msg*Payload wire structs by SessionHub) into the shape each GameRules
// engine's HandleMove expects.
func decodeMovePayload(kind game.Kind, messageType string, raw interface{}) (interface{}, error) {
	switch kind {
	case game.KindUno:
		if messageType != MsgUnoPlay {
			return nil, nil
		}
		p, ok := raw.(UnoPlayPayloadWire)
		if !ok {
			return nil, fmt.Errorf("expected UNO_PLAY payload")
		}
		return game.UnoPlayPayload{Card: p.Card, SpecifiedColor: p.SpecifiedColor}, nil
	case game.KindGem:
		switch messageType {
		case MsgSplendorTake3:
			p, ok := raw.(SplendorTake3Payload)
			if !ok {
				return nil, fmt.Errorf("expected SPLENDOR_TAKE_3 payload")
			}
			return [3]game.Mineral{game.Mineral(p.Mines[0]), game.Mineral(p.Mines[1]), game.Mineral(p.Mines[2])}, nil
		case MsgSplendorTake2:
			p, ok := raw.(SplendorTake2Payload)
			if !ok {
				return nil, fmt.Errorf("expected SPLENDOR_TAKE_2 payload")
			}
			return game.Mineral(p.Mine), nil
		case MsgSplendorReserveCoupon, MsgSplendorBuyCoupon, MsgSplendorBuyReserved:
			p, ok := raw.(SplendorCouponPayload)
			if !ok {
				return nil, fmt.Errorf("expected coupon payload")
			}
			return p.CouponIdx, nil
		case MsgSplendorReturnMine:
			p, ok := raw.(SplendorReturnMinePayload)
			if !ok {
				return nil, fmt.Errorf("expected SPLENDOR_RETURN_MINE payload")
			}
			return game.Mineral(p.Mine), nil
		}
		return nil, nil
	case game.KindGomoku:
		p, ok := raw.(GomokuDropPayload)
		if !ok {
			return nil, fmt.Errorf("expected GOMOKU_DROP payload")
		}
		return [2]int{p.X, p.Y}, nil
	default:
		return nil, fmt.Errorf("unknown game kind")
	}
}
