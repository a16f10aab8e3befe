package dto

// EnrollRequest enrolls a student in a course
type EnrollRequest struct {
	CourseID int64 `json:"course_id" validate:"required" example:"1"`
}
