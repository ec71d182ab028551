package repository

import (
	"context"
	"encoding/json"

	"telegram_webapp/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type GameHistoryRepository struct {
	db *pgxpool.Pool
}

func NewGameHistoryRepository(db *pgxpool.Pool) *GameHistoryRepository {
	return &GameHistoryRepository{db: db}
}

// Create persists one player's outcome in a finished room.
func (r *GameHistoryRepository) Create(ctx context.Context, gh *domain.GameHistory) error {
	detailsJSON, err := json.Marshal(struct{}{})
	if err != nil {
		detailsJSON = []byte("{}")
	}

	return r.db.QueryRow(ctx,
		`INSERT INTO game_history (user_id, room_type, room_id, opponent_id, result, reason, details)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		gh.UserID, gh.RoomType, gh.RoomID, gh.OpponentID, gh.Result, gh.Reason, detailsJSON,
	).Scan(&gh.ID, &gh.CreatedAt)
}

// GetByUser returns a user's most recent finished games, newest first.
func (r *GameHistoryRepository) GetByUser(ctx context.Context, userID int64, limit int) ([]*domain.GameHistory, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, room_type, room_id, opponent_id, result, reason, created_at
		 FROM game_history
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*domain.GameHistory
	for rows.Next() {
		var gh domain.GameHistory
		if err := rows.Scan(&gh.ID, &gh.UserID, &gh.RoomType, &gh.RoomID, &gh.OpponentID, &gh.Result, &gh.Reason, &gh.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, &gh)
	}
	return result, nil
}
