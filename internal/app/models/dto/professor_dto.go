package dto

import (
	"time"

	"github.com/jubilut/academia/internal/app/models"
)

// ProfessorRequest is used for both create and update
type ProfessorRequest struct {
	Name  string `json:"name" validate:"required,max=255" example:"Paulo Jubilut"`
	Email string `json:"email" validate:"required,email,max=255" example:"jubilut@prof.com"`
}

// ProfessorResponse represents a professor
type ProfessorResponse struct {
	ID        int64     `json:"id" example:"1"`
	Name      string    `json:"name" example:"Paulo Jubilut"`
	Email     string    `json:"email" example:"jubilut@prof.com"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewProfessorResponse(p *models.Professor) ProfessorResponse {
	return ProfessorResponse{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func NewProfessorResponses(professors []*models.Professor) []ProfessorResponse {
	out := make([]ProfessorResponse, 0, len(professors))
	for _, p := range professors {
		out = append(out, NewProfessorResponse(p))
	}
	return out
}
