package repository

import (
	"context"
	"errors"

	"telegram_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FriendRepository struct {
	db *pgxpool.Pool
}

func NewFriendRepository(db *pgxpool.Pool) *FriendRepository {
	return &FriendRepository{db: db}
}

// AreFriends reports whether a symmetric relation row already exists.
func (r *FriendRepository) AreFriends(ctx context.Context, userID, friendID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM relation WHERE user_id = $1 AND friend_id = $2)`,
		userID, friendID,
	).Scan(&exists)
	return exists, err
}

// AddFriendship inserts both directed rows of the symmetric relation.
func (r *FriendRepository) AddFriendship(ctx context.Context, userA, userB int64) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `INSERT INTO relation (user_id, friend_id, unread) VALUES ($1, $2, 0)`, userA, userB); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `INSERT INTO relation (user_id, friend_id, unread) VALUES ($1, $2, 0)`, userB, userA); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ListFriends returns a user's friend list joined with the persisted unread
// counter. In-memory deltas are merged in by the caller (service layer).
func (r *FriendRepository) ListFriends(ctx context.Context, userID int64) ([]domain.FriendInfo, error) {
	rows, err := r.db.Query(ctx,
		`SELECT u.id, u.user_name, COALESCE(u.slogan, ''), rel.unread
		 FROM relation rel
		 JOIN "user" u ON u.id = rel.friend_id
		 WHERE rel.user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.FriendInfo
	for rows.Next() {
		var fi domain.FriendInfo
		if err := rows.Scan(&fi.ID, &fi.Username, &fi.Slogan, &fi.Unread); err != nil {
			return nil, err
		}
		out = append(out, fi)
	}
	return out, nil
}

// AddUnread applies a persisted delta (called only by the unread flusher).
func (r *FriendRepository) AddUnread(ctx context.Context, userID, friendID int64, delta int64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE relation SET unread = unread + $1 WHERE user_id = $2 AND friend_id = $3`,
		delta, userID, friendID,
	)
	return err
}

func (r *FriendRepository) ClearUnread(ctx context.Context, userID, friendID int64) error {
	_, err := r.db.Exec(ctx, `UPDATE relation SET unread = 0 WHERE user_id = $1 AND friend_id = $2`, userID, friendID)
	return err
}

// CreateRequest inserts a pending directed request. Returns ErrDuplicateRow
// if one already exists for this ordered pair.
func (r *FriendRepository) CreateRequest(ctx context.Context, req domain.FriendRequest) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO friend_request (requester_id, requestee_id) VALUES ($1, $2)`,
		req.RequesterID, req.RequesteeID,
	)
	if isUniqueViolation(err) {
		return ErrDuplicateRow
	}
	return err
}

func (r *FriendRepository) DeleteRequest(ctx context.Context, requesterID, requesteeID int64) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM friend_request WHERE requester_id = $1 AND requestee_id = $2`,
		requesterID, requesteeID,
	)
	return err
}

func (r *FriendRepository) ListRequestsFor(ctx context.Context, requesteeID int64) ([]domain.FriendRequest, error) {
	rows, err := r.db.Query(ctx,
		`SELECT requester_id, requestee_id FROM friend_request WHERE requestee_id = $1`, requesteeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.FriendRequest
	for rows.Next() {
		var fr domain.FriendRequest
		if err := rows.Scan(&fr.RequesterID, &fr.RequesteeID); err != nil {
			return nil, err
		}
		out = append(out, fr)
	}
	return out, nil
}

func (r *FriendRepository) RequestExists(ctx context.Context, requesterID, requesteeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM friend_request WHERE requester_id = $1 AND requestee_id = $2)`,
		requesterID, requesteeID,
	).Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	return exists, err
}
