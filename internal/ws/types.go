package ws

// Inbound message types, per the core message-type catalogue.
const (
	MsgAuthorize              = "AUTHORIZE"
	MsgWhisperMessage         = "WHISPER_MESSAGE"
	MsgReadWhisperMessages    = "READ_WHISPER_MESSAGES"
	MsgCreateRoom             = "CREATE_ROOM"
	MsgGetRoomList            = "GET_ROOM_LIST"
	MsgJoinRoom               = "JOIN_ROOM"
	MsgChatMessage            = "CHAT_MESSAGE"
	MsgGamePrepare            = "GAME_PREPARE"
	MsgUnoPlay                = "UNO_PLAY"
	MsgUnoDrawOne             = "UNO_DRAW_ONE"
	MsgUnoSkipAfterDrawingOne = "UNO_SKIP_AFTER_DRAWING_ONE"
	MsgUnoSayUno              = "UNO_SAY_UNO"
	MsgUnoSuspect             = "UNO_SUSPECT"
	MsgUnoDissuspect          = "UNO_DISSUSPECT"
	MsgSplendorTake2          = "SPLENDOR_TAKE_2"
	MsgSplendorTake3          = "SPLENDOR_TAKE_3"
	MsgSplendorBuyCoupon      = "SPLENDOR_BUY_COUPON"
	MsgSplendorReserveCoupon  = "SPLENDOR_RESERVE_COUPON"
	MsgSplendorBuyReserved    = "SPLENDOR_BUY_RESERVED_COUPON"
	MsgSplendorReturnMine     = "SPLENDOR_RETURN_MINE"
	MsgGomokuDrop             = "GOMOKU_DROP"
)

// Outbound message types.
const (
	OutRoomMembersInfo = "ROOM_MEMBERS_INFO"
	OutNewMember       = "NEW_MEMBER"
	OutMemberLeaves    = "MEMBER_LEAVES"
	OutChatMessage     = "CHAT_MESSAGE"
	OutWhisperMessage  = "WHISPER_MESSAGE"
	OutError           = "ERROR"
	OutPleaseLogIn     = "PLEASE_LOG_IN"
	OutRoomList        = "ROOM_LIST"

	OutUnoStart         = "UNO_START"
	OutUnoGameInfo      = "UNO_GAME_INFO"
	OutUnoCardsInHand   = "UNO_CARDS_IN_HAND"
	OutUnoLastCard      = "UNO_LAST_CARD"
	OutUnoBroadcast     = "UNO_BROADCAST"
	OutUnoGameover      = "UNO_GAMEOVER"
	OutUnoSuspectCards  = "UNO_SUSPECT_CARDS"
	OutUnoDrawOneRes    = "UNO_DRAW_ONE_RES"
	OutSplendorStart    = "SPLENDOR_START"
	OutSplendorGameInfo = "SPLENDOR_GAME_INFO"
	OutSplendorGameover = "SPLENDOR_GAMEOVER"
	OutGomokuStart      = "GOMOKU_START"
	OutGomokuGameInfo   = "GOMOKU_GAME_INFO"
	OutGomokuGameover   = "GOMOKU_GAMEOVER"
)

// ackSuffix is appended to an inbound request-style message type to build
// its acknowledgement's message type, e.g. CREATE_ROOM -> CREATE_ROOM_RES.
const ackSuffix = "_RES"

// Error codes surfaced to clients in the "info" field of a *_RES acknowledgement.
const (
	ErrPleaseLogIn       = "PLEASE_LOG_IN"
	ErrUserDoesNotExist  = "USER_DONOT_EXIST"
	ErrPasswordIncorrect = "PASSWORD_INCORRECT"
	ErrUsernameDuplicate = "USERNAME_DUPLICATE"
	ErrUsernameInvalid   = "USERNAME_INVALID"
	ErrPasswordEmpty     = "PASSWORD_EMPTY"
	ErrRoomDoesNotExist  = "ROOM_DONOT_EXIST"
	ErrAlreadyInRoom     = "ALREADY_IN_ROOM"
	ErrBadPassword       = "BAD_PASSWORD"
	ErrGameOn            = "GAME_ON"
	ErrLessThanXPeople   = "LESS_THAN_X_PEOPLE"
	ErrMoreThanXPeople   = "MORE_THAN_X_PEOPLE"
	ErrAlreadyFriend     = "ALREADY_FRIEND"
	ErrAlreadyRequested  = "ALREADY_REQUESTED"
	ErrCannotRequestSelf = "CANNOT_REQUEST_SELF"
	ErrSetIconFailed     = "SET_ICON_FAILED"
	ErrFailed            = "FAILED"
	ErrRoomExists        = "ROOM_ALREADY_EXISTS"
)
