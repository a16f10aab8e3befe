package dto

import "github.com/jubilut/academia/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" example:"admin@jubilut.com.br"`
	Password string `json:"password" validate:"required" example:"password"`
}

// LoginResponse carries the issued bearer token
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type" example:"bearer"`
	ExpiresIn   int          `json:"expires_in" example:"86400"`
	User        UserResource `json:"user"`
}

// UserResource is the public view of a user. StudentID is set for student users only.
type UserResource struct {
	ID        int64       `json:"id" example:"1"`
	StudentID *int64      `json:"student_id" example:"3"`
	Name      string      `json:"name" example:"Administrador"`
	Email     string      `json:"email" example:"admin@jubilut.com.br"`
	Role      models.Role `json:"role" example:"admin" enums:"admin,student"`
}

// NewUserResource maps a user and its optional student record
func NewUserResource(user *models.User, student *models.Student) UserResource {
	res := UserResource{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
	if student != nil {
		id := student.ID
		res.StudentID = &id
	}
	return res
}
