package models

import "time"

// Student is a learner record linked 1:1 to a student user
type Student struct {
	ID        int64      `db:"id"`
	Name      string     `db:"name"`
	Email     string     `db:"email"`
	BirthDate *time.Time `db:"birth_date"`
	UserID    int64      `db:"user_id"`
	Timestamps
}

// StudentFilter narrows the admin student listing. Empty fields are ignored.
type StudentFilter struct {
	Name  string
	Email string
}
