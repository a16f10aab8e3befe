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
	"github.com/jubilut/academia/internal/pkg/helpers"
	"github.com/jubilut/academia/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// SubjectService defines the interface for subject-related operations.
// Returned subjects carry their course and professor.
type SubjectService interface {
	GetAllSubjects(ctx context.Context) ([]*models.Subject, error)
	GetSubjectByID(ctx context.Context, id int64) (*models.Subject, error)
	CreateSubject(ctx context.Context, req *dto.SubjectRequest) (*models.Subject, error)
	UpdateSubject(ctx context.Context, id int64, req *dto.SubjectRequest) (*models.Subject, error)
	DeleteSubject(ctx context.Context, id int64) error
}

type subjectServiceImpl struct {
	subjectRepo   repositories.ISubjectRepository
	courseRepo    repositories.ICourseRepository
	professorRepo repositories.IProfessorRepository
	validator     *validation.Validator
	logger        zerolog.Logger
}

// NewSubjectService creates a new subject service instance
func NewSubjectService(
	subjectRepo repositories.ISubjectRepository,
	courseRepo repositories.ICourseRepository,
	professorRepo repositories.IProfessorRepository,
	validator *validation.Validator,
	logger zerolog.Logger,
) SubjectService {
	return &subjectServiceImpl{
		subjectRepo:   subjectRepo,
		courseRepo:    courseRepo,
		professorRepo: professorRepo,
		validator:     validator,
		logger:        logger,
	}
}

// validate checks the rules of req and that the referenced course and professor exist
func (s *subjectServiceImpl) validate(ctx context.Context, req *dto.SubjectRequest) error {
	req.Title = strings.TrimSpace(req.Title)

	verr, err := validateRequest(s.validator, req)
	if err != nil {
		return err
	}

	if _, failed := verr.Fields["course_id"]; !failed {
		ok, err := s.courseRepo.Exists(ctx, req.CourseID)
		if err != nil {
			return fmt.Errorf("error checking course: %w", err)
		}
		if !ok {
			addExists(verr, "course_id")
		}
	}
	if _, failed := verr.Fields["professor_id"]; !failed {
		ok, err := s.professorRepo.Exists(ctx, req.ProfessorID)
		if err != nil {
			return fmt.Errorf("error checking professor: %w", err)
		}
		if !ok {
			addExists(verr, "professor_id")
		}
	}
	return verr.OrNil()
}

// writeError turns a parent row vanishing mid-write into the matching field error
func writeError(err error, op string) error {
	switch {
	case errors.Is(err, apperrors.ErrCourseNotFound):
		verr := &apperrors.ValidationError{}
		addExists(verr, "course_id")
		return verr
	case errors.Is(err, apperrors.ErrProfessorNotFound):
		verr := &apperrors.ValidationError{}
		addExists(verr, "professor_id")
		return verr
	case errors.Is(err, apperrors.ErrSubjectNotFound):
		return err
	}
	return fmt.Errorf("error %s subject: %w", op, err)
}

// GetAllSubjects lists every subject, newest first
func (s *subjectServiceImpl) GetAllSubjects(ctx context.Context) ([]*models.Subject, error) {
	subjects, err := s.subjectRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving subjects: %w", err)
	}
	return subjects, nil
}

// GetSubjectByID retrieves a subject by ID
func (s *subjectServiceImpl) GetSubjectByID(ctx context.Context, id int64) (*models.Subject, error) {
	subject, err := s.subjectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrSubjectNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}
	return subject, nil
}

// CreateSubject creates a subject and returns it with its relations
func (s *subjectServiceImpl) CreateSubject(ctx context.Context, req *dto.SubjectRequest) (*models.Subject, error) {
	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}

	subject := &models.Subject{
		Title:       req.Title,
		Description: helpers.NilIfBlank(req.Description),
		CourseID:    req.CourseID,
		ProfessorID: req.ProfessorID,
	}
	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		return nil, writeError(err, "creating")
	}
	return s.GetSubjectByID(ctx, subject.ID)
}

// UpdateSubject replaces a subject's fields and returns it with its relations
func (s *subjectServiceImpl) UpdateSubject(ctx context.Context, id int64, req *dto.SubjectRequest) (*models.Subject, error) {
	subject, err := s.GetSubjectByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, req); err != nil {
		return nil, err
	}

	subject.Title = req.Title
	subject.Description = helpers.NilIfBlank(req.Description)
	subject.CourseID = req.CourseID
	subject.ProfessorID = req.ProfessorID
	if err := s.subjectRepo.Update(ctx, subject); err != nil {
		return nil, writeError(err, "updating")
	}
	return s.GetSubjectByID(ctx, id)
}

// DeleteSubject deletes a subject
func (s *subjectServiceImpl) DeleteSubject(ctx context.Context, id int64) error {
	if err := s.subjectRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrSubjectNotFound) {
			return err
		}
		return fmt.Errorf("error deleting subject: %w", err)
	}
	return nil
}
