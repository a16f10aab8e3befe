package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jubilut/academia/internal/app/models"
	"github.com/jubilut/academia/internal/app/repositories"
	"github.com/jubilut/academia/internal/pkg/apperrors"
	"github.com/jubilut/academia/internal/pkg/logger"
)

// AuthorizationService resolves what an authenticated user may act on
type AuthorizationService struct {
	studentRepo repositories.IStudentRepository
}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService(studentRepo repositories.IStudentRepository) *AuthorizationService {
	return &AuthorizationService{studentRepo: studentRepo}
}

// StudentForUser returns the student record owned by userID. A user without
// one gets ErrStudentProfileNotFound.
func (s *AuthorizationService) StudentForUser(ctx context.Context, userID int64) (*models.Student, error) {
	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, apperrors.ErrStudentProfileNotFound
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error getting student by user ID")
		return nil, fmt.Errorf("error resolving student profile: %w", err)
	}
	return student, nil
}

// OptionalStudentForUser is StudentForUser that reports a missing record as nil
func (s *AuthorizationService) OptionalStudentForUser(ctx context.Context, userID int64) (*models.Student, error) {
	student, err := s.StudentForUser(ctx, userID)
	if errors.Is(err, apperrors.ErrStudentProfileNotFound) {
		return nil, nil
	}
	return student, err
}
