package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jubilut/academia/internal/app/models"
	"github.com/jubilut/academia/internal/app/models/dto"
	"github.com/jubilut/academia/internal/app/repositories"
	"github.com/jubilut/academia/internal/pkg/apperrors"
	"github.com/jubilut/academia/internal/pkg/auth"
	"github.com/jubilut/academia/internal/pkg/helpers"
	"github.com/jubilut/academia/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// StudentService defines the admin operations on students
type StudentService interface {
	ListStudents(ctx context.Context, filter models.StudentFilter, page models.Page) ([]*models.Student, int64, error)
	GetStudentByID(ctx context.Context, id int64) (*models.Student, error)
	CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error)
	UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) error
	DeleteStudent(ctx context.Context, id int64) error
}

type studentServiceImpl struct {
	studentRepo repositories.IStudentRepository
	userRepo    repositories.IUserRepository
	validator   *validation.Validator
	logger      zerolog.Logger
}

// NewStudentService creates a new student service instance
func NewStudentService(
	studentRepo repositories.IStudentRepository,
	userRepo repositories.IUserRepository,
	validator *validation.Validator,
	logger zerolog.Logger,
) StudentService {
	return &studentServiceImpl{
		studentRepo: studentRepo,
		userRepo:    userRepo,
		validator:   validator,
		logger:      logger,
	}
}

// checkEmailAvailable adds a field error when email is taken by another student
// or by another login user. Either id may be 0 to ignore nobody.
func checkEmailAvailable(
	ctx context.Context,
	studentRepo repositories.IStudentRepository,
	userRepo repositories.IUserRepository,
	verr *apperrors.ValidationError,
	email string,
	exceptStudentID, exceptUserID int64,
) error {
	if _, failed := verr.Fields["email"]; failed {
		return nil
	}

	taken, err := studentRepo.EmailExists(ctx, email, exceptStudentID)
	if err != nil {
		return fmt.Errorf("error checking student email: %w", err)
	}
	if !taken {
		taken, err = userRepo.EmailExists(ctx, email, exceptUserID)
		if err != nil {
			return fmt.Errorf("error checking user email: %w", err)
		}
	}
	if taken {
		addUnique(verr, "email")
	}
	return nil
}

// ListStudents returns one filtered page of students and the total count
func (s *studentServiceImpl) ListStudents(ctx context.Context, filter models.StudentFilter, page models.Page) ([]*models.Student, int64, error) {
	filter.Name = strings.TrimSpace(filter.Name)
	filter.Email = strings.TrimSpace(filter.Email)

	students, total, err := s.studentRepo.List(ctx, filter, page)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to list students")
		return nil, 0, fmt.Errorf("error retrieving students: %w", err)
	}
	return students, total, nil
}

// GetStudentByID retrieves a student by ID
func (s *studentServiceImpl) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return student, nil
}

// CreateStudent creates the student and its login user in one transaction
func (s *studentServiceImpl) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = helpers.NormalizeEmail(req.Email)
	req.BirthDate = helpers.NilIfBlank(req.BirthDate)

	verr, err := validateRequest(s.validator, req)
	if err != nil {
		return nil, err
	}
	if err := checkEmailAvailable(ctx, s.studentRepo, s.userRepo, verr, req.Email, 0, 0); err != nil {
		return nil, err
	}
	if verr.HasErrors() {
		return nil, verr
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	student := &models.Student{
		Name:      req.Name,
		Email:     req.Email,
		BirthDate: parseOptionalDate(req.BirthDate),
	}
	user := &models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Role:     models.RoleStudent,
	}

	if err := s.studentRepo.CreateWithUser(ctx, student, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, uniqueEmailError()
		}
		return nil, fmt.Errorf("error creating student: %w", err)
	}

	s.logger.Info().Int64("studentID", student.ID).Int64("userID", user.ID).Msg("Student created")
	return student, nil
}

// UpdateStudent replaces the student's data and mirrors it to the linked user.
// Changing the password revokes the student's access tokens.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, id int64, req *dto.UpdateStudentRequest) error {
	student, err := s.GetStudentByID(ctx, id)
	if err != nil {
		return err
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = helpers.NormalizeEmail(req.Email)
	req.BirthDate = helpers.NilIfBlank(req.BirthDate)

	verr, err := validateRequest(s.validator, req)
	if err != nil {
		return err
	}
	if err := checkEmailAvailable(ctx, s.studentRepo, s.userRepo, verr, req.Email, student.ID, student.UserID); err != nil {
		return err
	}
	if verr.HasErrors() {
		return verr
	}

	var passwordHash *string
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return fmt.Errorf("error hashing password: %w", err)
		}
		passwordHash = &hash
	}

	student.Name = req.Name
	student.Email = req.Email
	student.BirthDate = parseOptionalDate(req.BirthDate)

	if err := s.studentRepo.UpdateWithUser(ctx, student, passwordHash); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrEmailAlreadyExists):
			return uniqueEmailError()
		case errors.Is(err, apperrors.ErrStudentNotFound):
			return err
		}
		return fmt.Errorf("error updating student: %w", err)
	}

	if passwordHash != nil {
		s.logger.Info().Int64("studentID", student.ID).Msg("Student password changed, tokens revoked")
	}
	return nil
}

// DeleteStudent removes the student, its enrollments and its login user
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, id int64) error {
	if err := s.studentRepo.DeleteWithUser(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return err
		}
		return fmt.Errorf("error deleting student: %w", err)
	}

	s.logger.Info().Int64("studentID", id).Msg("Student deleted")
	return nil
}
