package ws

// Envelope is the wire shape every frame shares: a message_type discriminator
// plus an opaque payload decoded according to that type.
type Envelope struct {
	MessageType string `json:"message_type"`
	Payload     any    `json:"payload,omitempty"`
}

// inbound payloads

type AuthorizePayload struct {
	SessData uint32 `json:"sessdata"`
}

type WhisperMessagePayload struct {
	ReceiverID int64  `json:"receiver_id"`
	Message    string `json:"message"`
}

type ReadWhisperMessagesPayload struct {
	FriendID int64 `json:"friend_id"`
}

type CreateRoomPayload struct {
	RoomID   string `json:"room_id"`
	RoomType string `json:"room_type"`
	RoomName string `json:"room_name"`
	Password string `json:"password"`
}

type JoinRoomPayload struct {
	RoomID   string `json:"room_id"`
	Password string `json:"password"`
}

type ChatMessagePayload struct {
	Message string `json:"message"`
}

type GamePreparePayload struct {
	Prepare bool `json:"prepare"`
}

type UnoPlayPayloadWire struct {
	Card           int `json:"card"`
	SpecifiedColor int `json:"specified_color"`
}

type SplendorTake2Payload struct {
	Mine int `json:"mine"`
}

type SplendorTake3Payload struct {
	Mines [3]int `json:"mines"`
}

type SplendorCouponPayload struct {
	CouponIdx int `json:"coupon_idx"`
}

type SplendorReturnMinePayload struct {
	Mine int `json:"mine"`
}

type GomokuDropPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// outbound payloads

type AckPayload struct {
	Success bool   `json:"success"`
	Info    string `json:"info"`
}

type ErrorPayload struct {
	Code string `json:"code"`
}

type RoomMemberWire struct {
	UserName string `json:"user_name"`
	UserID   int64  `json:"user_id"`
	Offline  bool   `json:"offline"`
	Prepared bool   `json:"prepared"`
}

type RoomMembersInfoPayload struct {
	RoomID    string           `json:"room_id"`
	IsGameOn  bool             `json:"is_game_on"`
	Members   []RoomMemberWire `json:"members"`
}

type NewMemberPayload struct {
	UserName string `json:"user_name"`
	UserID   int64  `json:"user_id"`
}

type MemberLeavesPayload struct {
	UserID int64 `json:"user_id"`
}

type ChatMessageOutPayload struct {
	SenderID   int64  `json:"sender_id"`
	SenderName string `json:"sender_name"`
	Message    string `json:"message"`
	Timestamp  int64  `json:"timestamp"`
}

type WhisperMessageOutPayload struct {
	SenderID   int64  `json:"sender_id"`
	ReceiverID int64  `json:"receiver_id"`
	Message    string `json:"message"`
	Timestamp  int64  `json:"timestamp"`
}

type RoomListEntry struct {
	RoomID      string `json:"room_id"`
	RoomType    string `json:"room_type"`
	DisplayName string `json:"display_name"`
	CreatorName string `json:"creator_name"`
	HasPassword bool   `json:"has_password"`
	IsGameOn    bool   `json:"is_game_on"`
	MemberCount int    `json:"member_count"`
}

type RoomListPayload struct {
	Rooms []RoomListEntry `json:"rooms"`
}

type GameoverPayload struct {
	WinnerID *int64                 `json:"winner_id"`
	Reason   string                 `json:"reason"`
	Details  map[string]interface{} `json:"details,omitempty"`
}
