package models

import "time"

// Column limits of the users table, enforced for both stores.
const (
	MaxEmailLength = 255
	MaxPhoneLength = 20
)

// User is a registered account. PasswordDigest and Token never leave the
// server.
type User struct {
	ID             int64     `db:"id" json:"id"`
	Email          string    `db:"email" json:"email"`
	Phone          string    `db:"phone" json:"phone"`
	PasswordDigest string    `db:"password_digest" json:"-"`
	Token          *string   `db:"token" json:"-"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
