package repository

import (
	"context"

	"telegram_webapp/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ChatRepository struct {
	db *pgxpool.Pool
}

func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{db: db}
}

func (r *ChatRepository) Insert(ctx context.Context, m domain.ChatMessage) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO chat (sender_id, receiver_id, timestamp, message) VALUES ($1, $2, $3, $4)`,
		m.SenderID, m.ReceiverID, m.Timestamp, m.Message,
	)
	return err
}

// InsertBatch is used by the chat write-behind flusher.
func (r *ChatRepository) InsertBatch(ctx context.Context, msgs []domain.ChatMessage) error {
	if len(msgs) == 0 {
		return nil
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, m := range msgs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO chat (sender_id, receiver_id, timestamp, message) VALUES ($1, $2, $3, $4)`,
			m.SenderID, m.ReceiverID, m.Timestamp, m.Message,
		); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

// GetPeerHistory returns up to limit messages between user and peer older
// than beforeTS, newest first — the per-peer half of ChatHistory.get_chat_message.
func (r *ChatRepository) GetPeerHistory(ctx context.Context, userID, peerID int64, beforeTS int64, limit int) ([]domain.ChatMessage, error) {
	rows, err := r.db.Query(ctx,
		`SELECT sender_id, receiver_id, timestamp, message
		 FROM chat
		 WHERE ((sender_id = $1 AND receiver_id = $2) OR (sender_id = $2 AND receiver_id = $1))
		   AND timestamp < $3
		 ORDER BY timestamp DESC
		 LIMIT $4`,
		userID, peerID, beforeTS, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.ChatMessage
	for rows.Next() {
		var m domain.ChatMessage
		if err := rows.Scan(&m.SenderID, &m.ReceiverID, &m.Timestamp, &m.Message); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
