package repository

import (
	"context"
	"errors"

	"telegram_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateRow = errors.New("duplicate row")
)

const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user row. Returns ErrDuplicateRow if user_name is
// already taken.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO "user" (user_name, password) VALUES ($1, $2) RETURNING id, created_at`,
		u.Username, u.Password,
	).Scan(&u.ID, &u.CreatedAt)
	if isUniqueViolation(err) {
		return ErrDuplicateRow
	}
	return err
}

func (r *UserRepository) scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	var icon []byte
	if err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Slogan, &icon, &u.SessData, &u.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	u.HasIcon = len(icon) > 0
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_name, password, COALESCE(slogan, ''), icon, sessdata, created_at FROM "user" WHERE id = $1`, id)
	return r.scanUser(row)
}

func (r *UserRepository) GetByName(ctx context.Context, name string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_name, password, COALESCE(slogan, ''), icon, sessdata, created_at FROM "user" WHERE user_name = $1`, name)
	return r.scanUser(row)
}

func (r *UserRepository) GetBySessData(ctx context.Context, sessdata uint32) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, user_name, password, COALESCE(slogan, ''), icon, sessdata, created_at FROM "user" WHERE sessdata = $1`, sessdata)
	return r.scanUser(row)
}

// SetSessData writes a freshly minted session token, or clears it (nil) on
// log out.
func (r *UserRepository) SetSessData(ctx context.Context, userID int64, sessdata *uint32) error {
	_, err := r.db.Exec(ctx, `UPDATE "user" SET sessdata = $1 WHERE id = $2`, sessdata, userID)
	return err
}

// SetUsername renames a user. Returns ErrDuplicateRow if the name is taken.
func (r *UserRepository) SetUsername(ctx context.Context, userID int64, name string) error {
	_, err := r.db.Exec(ctx, `UPDATE "user" SET user_name = $1 WHERE id = $2`, name, userID)
	if isUniqueViolation(err) {
		return ErrDuplicateRow
	}
	return err
}

func (r *UserRepository) SetSlogan(ctx context.Context, userID int64, slogan string) error {
	_, err := r.db.Exec(ctx, `UPDATE "user" SET slogan = $1 WHERE id = $2`, slogan, userID)
	return err
}

func (r *UserRepository) SetIcon(ctx context.Context, userID int64, icon []byte) error {
	_, err := r.db.Exec(ctx, `UPDATE "user" SET icon = $1 WHERE id = $2`, icon, userID)
	return err
}

func (r *UserRepository) GetIcon(ctx context.Context, userID int64) ([]byte, error) {
	var icon []byte
	err := r.db.QueryRow(ctx, `SELECT icon FROM "user" WHERE id = $1`, userID).Scan(&icon)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return icon, err
}
