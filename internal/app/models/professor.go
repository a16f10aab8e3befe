package models

// Professor teaches subjects
type Professor struct {
	ID    int64  `db:"id"`
	Name  string `db:"name"`
	Email string `db:"email"`
	Timestamps
}
