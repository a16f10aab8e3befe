package models

import "time"

// Role defines the user role type
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// Timestamps are maintained by the repositories on insert and update
type Timestamps struct {
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Page selects a window of a list ordered newest first
type Page struct {
	Offset uint64
	Limit  uint64
}
