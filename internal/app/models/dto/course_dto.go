package dto

import (
	"time"

	"github.com/jubilut/academia/internal/app/models"
	"github.com/jubilut/academia/internal/pkg/validation"
)

// CourseRequest is used for both create and update. Dates are YYYY-MM-DD.
type CourseRequest struct {
	Title       string  `json:"title" validate:"required,max=255" example:"Biologia Geral"`
	Description *string `json:"description" example:"Fundamentos da biologia"`
	StartDate   string  `json:"start_date" validate:"required,date" example:"2024-02-01"`
	EndDate     string  `json:"end_date" validate:"required,date,after_or_equal=StartDate" example:"2024-06-30"`
}

// CourseResponse represents a course
type CourseResponse struct {
	ID          int64     `json:"id" example:"1"`
	Title       string    `json:"title" example:"Biologia Geral"`
	Description *string   `json:"description" example:"Fundamentos da biologia"`
	StartDate   string    `json:"start_date" example:"2024-02-01"`
	EndDate     string    `json:"end_date" example:"2024-06-30"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewCourseResponse(c *models.Course) CourseResponse {
	return CourseResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		StartDate:   c.StartDate.Format(validation.DateLayout),
		EndDate:     c.EndDate.Format(validation.DateLayout),
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func NewCourseResponses(courses []*models.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, NewCourseResponse(c))
	}
	return out
}
