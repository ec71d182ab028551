package game

import "time"

// Kind identifies a rule engine. Values are the wire room_type strings.
type Kind string

const (
	KindUno    Kind = "UNO"
	KindGem    Kind = "GEM"
	KindGomoku Kind = "GOMOKU"
)

// Result is what a finished game reports back to its Room. WinnerID is nil
// for a draw, and also when Gomoku's built-in AI wins (Reason "ai_win").
type Result struct {
	WinnerID *int64
	Reason   string
	Details  map[string]interface{}
}

// Game is the common shape every rule engine satisfies: a pure state
// machine driven by per-player moves, with no knowledge of sockets, rooms,
// or persistence. Players() is the fixed roster decided at prepare time;
// reconnection re-binds a socket to an existing player id, it never changes
// the roster.
type Game interface {
	Kind() Kind
	Players() []int64

	// TurnTimeout bounds a single player's move once the round is live.
	// Zero means no timeout is enforced; every engine here returns zero.
	TurnTimeout() time.Duration

	// HandleMove applies a move by messageType with an already-decoded
	// payload. An illegal move returns an error and leaves state
	// untouched, per the "rule violations are silently dropped" policy.
	// The one exception is a wrong UNO_SAY_UNO call, which returns an
	// error after dealing its two-card penalty.
	HandleMove(playerID int64, messageType string, payload interface{}) error

	// CheckResult returns non-nil once the game has a winner or has
	// otherwise concluded (e.g. draw).
	CheckResult() *Result
	IsFinished() bool

	// Snapshot renders game state as seen by playerID (hidden information
	// such as other players' hands is omitted or redacted).
	Snapshot(playerID int64) interface{}
}
