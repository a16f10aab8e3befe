package models

import "time"

// Enrollment links a student to a course; (StudentID, CourseID) is unique
type Enrollment struct {
	StudentID int64 `db:"student_id"`
	CourseID  int64 `db:"course_id"`
	Timestamps
}

// CourseStudentRow is one row of the report join: a course with one of its
// enrolled students, or with no student when StudentID is nil.
type CourseStudentRow struct {
	CourseID     int64
	CourseTitle  string
	StudentID    *int64
	StudentName  *string
	StudentEmail *string
	BirthDate    *time.Time
}
