package models

import "time"

// User is a registered account. Passwords are stored as plain text rows;
// hardening is an explicit non-goal of this backend.
type User struct {
	UserID    string    `json:"user_id" db:"user_id"`
	Username  string    `json:"username" db:"username"`
	Password  string    `json:"-" db:"password"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
