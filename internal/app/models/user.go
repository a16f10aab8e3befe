package models

import "time"

// User is an account able to log in, mapped to the 'users' table
type User struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	Email    string `db:"email"`
	Password string `db:"password"` // bcrypt hash, never rendered
	Role     Role   `db:"role"`
	Timestamps
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// AccessToken tracks an issued bearer token by its jti
type AccessToken struct {
	JTI       string     `db:"jti"`
	UserID    int64      `db:"user_id"`
	ExpiresAt time.Time  `db:"expires_at"`
	RevokedAt *time.Time `db:"revoked_at"`
	CreatedAt time.Time  `db:"created_at"`
}
