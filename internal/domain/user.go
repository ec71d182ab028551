package domain

import "time"

// User is a registered account. Password is stored as opaque bytes; this
// service does not hash it (see DESIGN.md for the reasoning carried over
// from the source implementation).
type User struct {
	ID        int64     `db:"id" json:"id"`
	Username  string    `db:"user_name" json:"user_name"`
	Password  string    `db:"password" json:"-"`
	Slogan    string    `db:"slogan" json:"slogan"`
	HasIcon   bool      `db:"-" json:"has_icon"`
	SessData  *uint32   `db:"sessdata" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

const MaxUsernameLen = 40
