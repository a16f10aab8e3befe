package models

import "time"

// Course runs between StartDate and EndDate (inclusive) and groups subjects
type Course struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description *string   `db:"description"`
	StartDate   time.Time `db:"start_date"`
	EndDate     time.Time `db:"end_date"`
	Timestamps
}
