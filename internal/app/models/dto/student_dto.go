package dto

import (
	"time"

	"github.com/jubilut/academia/internal/app/models"
	"github.com/jubilut/academia/internal/pkg/validation"
)

// CreateStudentRequest creates a student together with its login user
type CreateStudentRequest struct {
	Name      string  `json:"name" validate:"required,max=255" example:"Maria Souza"`
	Email     string  `json:"email" validate:"required,email,max=255" example:"maria@example.com"`
	BirthDate *string `json:"birth_date" validate:"omitempty,date" example:"2001-08-21"`
	Password  string  `json:"password" validate:"required,min=6" example:"secret1"`
}

// UpdateStudentRequest replaces a student's data. Password is changed only when present.
type UpdateStudentRequest struct {
	Name      string  `json:"name" validate:"required,max=255"`
	Email     string  `json:"email" validate:"required,email,max=255"`
	BirthDate *string `json:"birth_date" validate:"omitempty,date"`
	Password  *string `json:"password" validate:"omitempty,min=6"`
}

// UpdateProfileRequest is what a student may change about themself
type UpdateProfileRequest struct {
	Name      string  `json:"name" validate:"required,max=255"`
	Email     string  `json:"email" validate:"required,email,max=255"`
	BirthDate *string `json:"birth_date" validate:"omitempty,date"`
}

// StudentResponse represents a student
type StudentResponse struct {
	ID        int64     `json:"id" example:"1"`
	Name      string    `json:"name" example:"Maria Souza"`
	Email     string    `json:"email" example:"maria@example.com"`
	BirthDate *string   `json:"birth_date" example:"2001-08-21"`
	UserID    int64     `json:"user_id" example:"2"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewStudentResponse(s *models.Student) StudentResponse {
	return StudentResponse{
		ID:        s.ID,
		Name:      s.Name,
		Email:     s.Email,
		BirthDate: formatDatePtr(s.BirthDate),
		UserID:    s.UserID,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func NewStudentResponses(students []*models.Student) []StudentResponse {
	out := make([]StudentResponse, 0, len(students))
	for _, s := range students {
		out = append(out, NewStudentResponse(s))
	}
	return out
}

func formatDatePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(validation.DateLayout)
	return &s
}
