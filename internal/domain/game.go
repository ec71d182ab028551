package domain

import "time"

// RoomType identifies which rule engine (if any) a Room is bound to.
type RoomType string

const (
	RoomTypeChat    RoomType = "CHAT"
	RoomTypeUno     RoomType = "UNO"
	RoomTypeGem     RoomType = "GEM"
	RoomTypeGomoku  RoomType = "GOMOKU"
)

// GameResult is the outcome written to game_history once a room's game
// finishes. Games with more than two players (UNO) record one row per
// participant with OpponentID left nil.
type GameResult string

const (
	GameResultWin  GameResult = "win"
	GameResultLose GameResult = "lose"
	GameResultDraw GameResult = "draw"
)

// GameHistory is a finished-game record, kept for the leaderboard and for
// players reviewing their own results. It is not a replay log.
type GameHistory struct {
	ID         int64      `db:"id" json:"id"`
	UserID     int64      `db:"user_id" json:"user_id"`
	RoomType   RoomType   `db:"room_type" json:"room_type"`
	RoomID     string     `db:"room_id" json:"room_id"`
	OpponentID *int64     `db:"opponent_id" json:"opponent_id,omitempty"`
	Result     GameResult `db:"result" json:"result"`
	Reason     string     `db:"reason" json:"reason"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
}
