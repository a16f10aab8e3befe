package models

// Subject belongs to one course and is taught by one professor
type Subject struct {
	ID          int64   `db:"id"`
	Title       string  `db:"title"`
	Description *string `db:"description"`
	CourseID    int64   `db:"course_id"`
	ProfessorID int64   `db:"professor_id"`
	Timestamps

	// Relations (populated by the subject queries)
	Course    *Course
	Professor *Professor
}
