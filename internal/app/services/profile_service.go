package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	appauth "github.com/jubilut/academia/internal/app/auth"
	"github.com/jubilut/academia/internal/app/models"
	"github.com/jubilut/academia/internal/app/models/dto"
	"github.com/jubilut/academia/internal/app/repositories"
	"github.com/jubilut/academia/internal/pkg/apperrors"
	"github.com/jubilut/academia/internal/pkg/helpers"
	"github.com/jubilut/academia/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// ProfileService lets a student read and edit their own record
type ProfileService interface {
	GetProfile(ctx context.Context, userID int64) (*models.Student, error)
	UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.Student, error)
}

type profileServiceImpl struct {
	studentRepo repositories.IStudentRepository
	userRepo    repositories.IUserRepository
	authz       *appauth.AuthorizationService
	validator   *validation.Validator
	logger      zerolog.Logger
}

// NewProfileService creates a new profile service instance
func NewProfileService(
	studentRepo repositories.IStudentRepository,
	userRepo repositories.IUserRepository,
	authz *appauth.AuthorizationService,
	validator *validation.Validator,
	logger zerolog.Logger,
) ProfileService {
	return &profileServiceImpl{
		studentRepo: studentRepo,
		userRepo:    userRepo,
		authz:       authz,
		validator:   validator,
		logger:      logger,
	}
}

// GetProfile returns the caller's student record
func (s *profileServiceImpl) GetProfile(ctx context.Context, userID int64) (*models.Student, error) {
	return s.authz.StudentForUser(ctx, userID)
}

// UpdateProfile changes name, email and birth date of the caller's record and
// mirrors name and email onto their login user
func (s *profileServiceImpl) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest) (*models.Student, error) {
	student, err := s.authz.StudentForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = helpers.NormalizeEmail(req.Email)
	req.BirthDate = helpers.NilIfBlank(req.BirthDate)

	verr, err := validateRequest(s.validator, req)
	if err != nil {
		return nil, err
	}
	if err := checkEmailAvailable(ctx, s.studentRepo, s.userRepo, verr, req.Email, student.ID, student.UserID); err != nil {
		return nil, err
	}
	if verr.HasErrors() {
		return nil, verr
	}

	student.Name = req.Name
	student.Email = req.Email
	student.BirthDate = parseOptionalDate(req.BirthDate)

	if err := s.studentRepo.UpdateWithUser(ctx, student, nil); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrEmailAlreadyExists):
			return nil, uniqueEmailError()
		case errors.Is(err, apperrors.ErrStudentNotFound):
			return nil, apperrors.ErrStudentProfileNotFound
		}
		return nil, fmt.Errorf("error updating profile: %w", err)
	}

	s.logger.Info().Int64("studentID", student.ID).Msg("Student profile updated")
	return student, nil
}
