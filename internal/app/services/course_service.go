package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jubilut/academia/internal/app/models"
	"github.com/jubilut/academia/internal/app/models/dto"
	"github.com/jubilut/academia/internal/app/repositories"
	"github.com/jubilut/academia/internal/pkg/apperrors"
	"github.com/jubilut/academia/internal/pkg/helpers"
	"github.com/jubilut/academia/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// CourseService defines the interface for course-related operations
type CourseService interface {
	ListCourses(ctx context.Context, page models.Page) ([]*models.Course, int64, error)
	GetCourseByID(ctx context.Context, id int64) (*models.Course, error)
	CreateCourse(ctx context.Context, req *dto.CourseRequest) (*models.Course, error)
	UpdateCourse(ctx context.Context, id int64, req *dto.CourseRequest) error
	DeleteCourse(ctx context.Context, id int64) error
}

type courseServiceImpl struct {
	courseRepo repositories.ICourseRepository
	validator  *validation.Validator
	logger     zerolog.Logger
}

// NewCourseService creates a new course service instance
func NewCourseService(courseRepo repositories.ICourseRepository, validator *validation.Validator, logger zerolog.Logger) CourseService {
	return &courseServiceImpl{
		courseRepo: courseRepo,
		validator:  validator,
		logger:     logger,
	}
}

// courseFromRequest validates req and fills the editable fields of course
func (s *courseServiceImpl) courseFromRequest(req *dto.CourseRequest, course *models.Course) error {
	req.Title = strings.TrimSpace(req.Title)

	verr, err := validateRequest(s.validator, req)
	if err != nil {
		return err
	}
	if verr.HasErrors() {
		return verr
	}

	var start, end time.Time
	if start, err = validation.ParseDate(req.StartDate); err != nil {
		return apperrors.NewValidationError("start_date", validation.Message("date", "start_date"))
	}
	if end, err = validation.ParseDate(req.EndDate); err != nil {
		return apperrors.NewValidationError("end_date", validation.Message("date", "end_date"))
	}

	course.Title = req.Title
	course.Description = helpers.NilIfBlank(req.Description)
	course.StartDate = start
	course.EndDate = end
	return nil
}

// ListCourses returns one page of courses and the total count
func (s *courseServiceImpl) ListCourses(ctx context.Context, page models.Page) ([]*models.Course, int64, error) {
	courses, total, err := s.courseRepo.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving courses: %w", err)
	}
	return courses, total, nil
}

// GetCourseByID retrieves a course by ID
func (s *courseServiceImpl) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

// CreateCourse creates a new course
func (s *courseServiceImpl) CreateCourse(ctx context.Context, req *dto.CourseRequest) (*models.Course, error) {
	course := &models.Course{}
	if err := s.courseFromRequest(req, course); err != nil {
		return nil, err
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, fmt.Errorf("error creating course: %w", err)
	}
	return course, nil
}

// UpdateCourse replaces the editable fields of a course
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, id int64, req *dto.CourseRequest) error {
	course, err := s.GetCourseByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.courseFromRequest(req, course); err != nil {
		return err
	}

	if err := s.courseRepo.Update(ctx, course); err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return err
		}
		return fmt.Errorf("error updating course: %w", err)
	}
	return nil
}

// DeleteCourse deletes a course with its subjects and enrollments
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) error {
	if err := s.courseRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			return err
		}
		return fmt.Errorf("error deleting course: %w", err)
	}
	return nil
}
