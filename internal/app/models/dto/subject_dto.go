package dto

import (
	"time"

	"github.com/jubilut/academia/internal/app/models"
)

// SubjectRequest is used for both create and update
type SubjectRequest struct {
	Title       string  `json:"title" validate:"required,max=255" example:"Citologia"`
	Description *string `json:"description" example:"Estudo da celula"`
	CourseID    int64   `json:"course_id" validate:"required" example:"1"`
	ProfessorID int64   `json:"professor_id" validate:"required" example:"1"`
}

// CourseSummary is the course embedded in a subject
type CourseSummary struct {
	ID    int64  `json:"id" example:"1"`
	Title string `json:"title" example:"Biologia Geral"`
}

// ProfessorSummary is the professor embedded in a subject
type ProfessorSummary struct {
	ID   int64  `json:"id" example:"1"`
	Name string `json:"name" example:"Paulo Jubilut"`
}

// SubjectResponse represents a subject with its course and professor
type SubjectResponse struct {
	ID          int64             `json:"id" example:"1"`
	Title       string            `json:"title" example:"Citologia"`
	Description *string           `json:"description"`
	CourseID    int64             `json:"course_id" example:"1"`
	ProfessorID int64             `json:"professor_id" example:"1"`
	Course      *CourseSummary    `json:"course"`
	Professor   *ProfessorSummary `json:"professor"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func NewSubjectResponse(s *models.Subject) SubjectResponse {
	res := SubjectResponse{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		CourseID:    s.CourseID,
		ProfessorID: s.ProfessorID,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.Course != nil {
		res.Course = &CourseSummary{ID: s.Course.ID, Title: s.Course.Title}
	}
	if s.Professor != nil {
		res.Professor = &ProfessorSummary{ID: s.Professor.ID, Name: s.Professor.Name}
	}
	return res
}

func NewSubjectResponses(subjects []*models.Subject) []SubjectResponse {
	out := make([]SubjectResponse, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, NewSubjectResponse(s))
	}
	return out
}
