package ws

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"telegram_webapp/internal/domain"
	"telegram_webapp/internal/game"
	"telegram_webapp/internal/logger"
	"telegram_webapp/internal/service"
)

type rawFrame struct {
	MessageType string          `json:"message_type"`
	Payload     json.RawMessage `json:"payload"`
}

type actionKind int

const (
	actionFrame actionKind = iota
	actionClose
)

type action struct {
	kind   actionKind
	client *Client
	raw    []byte
}

// SessionHub owns the socket registry, authenticates the first message on
// each connection, and runs every mutation through one FIFO action queue so
// Room/RoomManager/Game state is touched by a single goroutine, per §5.
type SessionHub struct {
	Rooms *RoomManager
	Auth  *service.AuthService
	Chat  *service.ChatService

	connSeq uint32

	mu        sync.Mutex
	sockets   map[uint32]*Client
	userConns map[int64]map[uint32]bool

	actions chan action
}

func NewSessionHub(rooms *RoomManager, auth *service.AuthService, chat *service.ChatService) *SessionHub {
	return &SessionHub{
		Rooms:     rooms,
		Auth:      auth,
		Chat:      chat,
		sockets:   make(map[uint32]*Client),
		userConns: make(map[int64]map[uint32]bool),
		actions:   make(chan action, 4096),
	}
}

// Run is the dedicated worker loop: the only goroutine that mutates Session,
// Room, Game, and RoomManager state.
func (h *SessionHub) Run() {
	for a := range h.actions {
		switch a.kind {
		case actionFrame:
			h.handleFrame(a.client, a.raw)
		case actionClose:
			h.handleClose(a.client)
		}
	}
}

// OnFrame is the externally-visible entry point a Client's read pump calls
// for every inbound message.
func (h *SessionHub) OnFrame(c *Client, raw []byte) {
	h.actions <- action{kind: actionFrame, client: c, raw: raw}
}

// OnClose is the externally-visible entry point called once a socket's read
// pump exits.
func (h *SessionHub) OnClose(c *Client) {
	h.actions <- action{kind: actionClose, client: c}
}

func (h *SessionHub) handleClose(c *Client) {
	if !c.Authenticated() {
		return
	}
	connID, userID := c.ConnID(), c.UserID()

	h.Rooms.Leave(userID, connID)

	h.mu.Lock()
	delete(h.sockets, connID)
	if conns, ok := h.userConns[userID]; ok {
		delete(conns, connID)
		if len(conns) == 0 {
			delete(h.userConns, userID)
		}
	}
	h.mu.Unlock()
	wsClientsConnected.Dec()
}

func (h *SessionHub) push(connID uint32, messageType string, payload interface{}) {
	h.mu.Lock()
	c, ok := h.sockets[connID]
	h.mu.Unlock()
	if !ok {
		return
	}
	c.pushEnvelope(messageType, payload)
}

func (h *SessionHub) ack(connID uint32, requestType string, success bool, info string) {
	h.push(connID, requestType+ackSuffix, AckPayload{Success: success, Info: info})
}

func (h *SessionHub) handleFrame(c *Client, raw []byte) {
	var frame rawFrame
	if err := json.Unmarshal(raw, &frame); err != nil {
		logger.Warn("ws: malformed frame", "err", err)
		return
	}

	if !c.Authenticated() {
		if frame.MessageType != MsgAuthorize {
			h.pushUnauth(c, OutPleaseLogIn)
			return
		}
		h.handleAuthorize(c, frame.Payload)
		return
	}

	connID, userID, userName := c.ConnID(), c.UserID(), c.UserName()

	switch frame.MessageType {
	case MsgWhisperMessage:
		h.handleWhisper(connID, userID, userName, frame.Payload)
	case MsgReadWhisperMessages:
		h.handleReadWhisper(connID, userID, frame.Payload)
	case MsgCreateRoom:
		h.handleCreateRoom(connID, userID, userName, frame.Payload)
	case MsgGetRoomList:
		h.push(connID, OutRoomList, RoomListPayload{Rooms: h.Rooms.GetRoomList()})
	case MsgJoinRoom:
		h.handleJoinRoom(connID, userID, userName, frame.Payload)
	case MsgChatMessage:
		h.withRoom(connID, userID, frame.MessageType, func(room *Room) {
			var p ChatMessagePayload
			if json.Unmarshal(frame.Payload, &p) == nil {
				room.Chat(connID, p.Message)
			}
		})
	case MsgGamePrepare:
		h.withRoom(connID, userID, frame.MessageType, func(room *Room) {
			var p GamePreparePayload
			if json.Unmarshal(frame.Payload, &p) != nil {
				return
			}
			err := room.Prepare(connID, p.Prepare)
			h.ack(connID, frame.MessageType, err == nil, errString(err))
		})
	default:
		h.handleGameMove(connID, userID, frame.MessageType, frame.Payload)
	}
}

func (h *SessionHub) pushUnauth(c *Client, messageType string) {
	c.pushEnvelope(messageType, nil)
}

func (h *SessionHub) handleAuthorize(c *Client, raw json.RawMessage) {
	var p AuthorizePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		c.pushEnvelope(MsgAuthorize+ackSuffix, AckPayload{Success: false, Info: ErrFailed})
		return
	}

	userID, userName, err := h.Auth.Authorize(context.Background(), p.SessData)
	if err != nil {
		c.pushEnvelope(MsgAuthorize+ackSuffix, AckPayload{Success: false, Info: ErrUserDoesNotExist})
		return
	}

	connID := atomic.AddUint32(&h.connSeq, 1)
	c.bind(connID, userID, userName)

	h.mu.Lock()
	h.sockets[connID] = c
	if h.userConns[userID] == nil {
		h.userConns[userID] = make(map[uint32]bool)
	}
	h.userConns[userID][connID] = true
	h.mu.Unlock()
	wsClientsConnected.Inc()

	c.pushEnvelope(MsgAuthorize+ackSuffix, AckPayload{Success: true, Info: ""})
}

func (h *SessionHub) withRoom(connID uint32, userID int64, messageType string, fn func(room *Room)) {
	room, ok := h.Rooms.RoomOf(userID)
	if !ok {
		h.ack(connID, messageType, false, ErrRoomDoesNotExist)
		return
	}
	fn(room)
}

func (h *SessionHub) handleGameMove(connID uint32, userID int64, messageType string, raw json.RawMessage) {
	room, ok := h.Rooms.RoomOf(userID)
	if !ok {
		return
	}

	payload, err := unmarshalMovePayload(messageType, raw)
	if err != nil {
		return
	}
	room.HandleMove(connID, messageType, payload)
}

func unmarshalMovePayload(messageType string, raw json.RawMessage) (interface{}, error) {
	switch messageType {
	case MsgUnoPlay:
		var p UnoPlayPayloadWire
		return p, json.Unmarshal(raw, &p)
	case MsgUnoDrawOne, MsgUnoSkipAfterDrawingOne, MsgUnoSayUno, MsgUnoSuspect, MsgUnoDissuspect:
		return nil, nil
	case MsgSplendorTake2:
		var p SplendorTake2Payload
		return p, json.Unmarshal(raw, &p)
	case MsgSplendorTake3:
		var p SplendorTake3Payload
		return p, json.Unmarshal(raw, &p)
	case MsgSplendorBuyCoupon, MsgSplendorReserveCoupon, MsgSplendorBuyReserved:
		var p SplendorCouponPayload
		return p, json.Unmarshal(raw, &p)
	case MsgSplendorReturnMine:
		var p SplendorReturnMinePayload
		return p, json.Unmarshal(raw, &p)
	case MsgGomokuDrop:
		var p GomokuDropPayload
		return p, json.Unmarshal(raw, &p)
	default:
		return nil, errUnknownMessageType
	}
}

var errUnknownMessageType = &unknownMessageTypeError{}

type unknownMessageTypeError struct{}

func (e *unknownMessageTypeError) Error() string { return "unknown message type" }

func (h *SessionHub) handleCreateRoom(connID uint32, userID int64, userName string, raw json.RawMessage) {
	var p CreateRoomPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.ack(connID, MsgCreateRoom, false, ErrFailed)
		return
	}

	room, err := h.Rooms.CreateRoom(p.RoomID, domain.RoomType(p.RoomType), userID, userName, p.RoomName, p.Password, h.push)
	if err != nil {
		h.ack(connID, MsgCreateRoom, false, errString(err))
		return
	}
	if err := h.Rooms.Join(room.ID, connID, userID, userName, p.Password); err != nil {
		h.ack(connID, MsgCreateRoom, false, errString(err))
		return
	}
	h.ack(connID, MsgCreateRoom, true, room.ID)
}

func (h *SessionHub) handleJoinRoom(connID uint32, userID int64, userName string, raw json.RawMessage) {
	var p JoinRoomPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.ack(connID, MsgJoinRoom, false, ErrFailed)
		return
	}
	err := h.Rooms.Join(p.RoomID, connID, userID, userName, p.Password)
	h.ack(connID, MsgJoinRoom, err == nil, errString(err))
}

// handleWhisper implements §4.D's private message path: stamp identity and
// timestamp, persist via ChatHistory, bump Authorizer's unread cache, echo
// to the sender, and fan out to every live connection of the receiver.
func (h *SessionHub) handleWhisper(connID uint32, senderID int64, senderName string, raw json.RawMessage) {
	var p WhisperMessagePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		h.ack(connID, MsgWhisperMessage, false, ErrFailed)
		return
	}

	ts := time.Now().Unix()
	msg := domain.ChatMessage{SenderID: senderID, ReceiverID: p.ReceiverID, Timestamp: ts, Message: p.Message}

	ctx := context.Background()
	if err := h.Chat.NewMessage(ctx, msg); err != nil {
		h.ack(connID, MsgWhisperMessage, false, ErrFailed)
		return
	}
	if err := h.Auth.UnreadAdd(ctx, p.ReceiverID, senderID); err != nil {
		logger.Warn("ws: unread_add failed", "err", err)
	}

	out := WhisperMessageOutPayload{SenderID: senderID, ReceiverID: p.ReceiverID, Message: p.Message, Timestamp: ts}
	h.push(connID, OutWhisperMessage, out)
	h.ack(connID, MsgWhisperMessage, true, "")

	h.mu.Lock()
	receiverConns := make([]uint32, 0, len(h.userConns[p.ReceiverID]))
	for cid := range h.userConns[p.ReceiverID] {
		receiverConns = append(receiverConns, cid)
	}
	h.mu.Unlock()
	for _, cid := range receiverConns {
		h.push(cid, OutWhisperMessage, out)
	}
}

func (h *SessionHub) handleReadWhisper(connID uint32, userID int64, raw json.RawMessage) {
	var p ReadWhisperMessagesPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return
	}
	if err := h.Auth.UnreadClear(context.Background(), userID, p.FriendID); err != nil {
		logger.Warn("ws: unread_clear failed", "err", err)
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
