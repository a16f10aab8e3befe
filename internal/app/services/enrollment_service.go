package services

import (
	"context"
	"errors"
	"fmt"

	appauth "github.com/jubilut/academia/internal/app/auth"
	"github.com/jubilut/academia/internal/app/models"
	"github.com/jubilut/academia/internal/app/models/dto"
	"github.com/jubilut/academia/internal/app/repositories"
	"github.com/jubilut/academia/internal/pkg/apperrors"
	"github.com/jubilut/academia/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// EnrollmentService defines the interface for enrolling students in courses
type EnrollmentService interface {
	GetStudentCourses(ctx context.Context, studentID int64) ([]*models.Course, error)
	EnrollStudent(ctx context.Context, studentID int64, req *dto.EnrollRequest) (*models.Course, error)
	UnenrollStudent(ctx context.Context, studentID, courseID int64) error
	GetMyCourses(ctx context.Context, userID int64) ([]*models.Course, error)
}

type enrollmentServiceImpl struct {
	enrollmentRepo repositories.IEnrollmentRepository
	studentRepo    repositories.IStudentRepository
	courseRepo     repositories.ICourseRepository
	authz          *appauth.AuthorizationService
	validator      *validation.Validator
	logger         zerolog.Logger
}

// NewEnrollmentService creates a new enrollment service instance
func NewEnrollmentService(
	enrollmentRepo repositories.IEnrollmentRepository,
	studentRepo repositories.IStudentRepository,
	courseRepo repositories.ICourseRepository,
	authz *appauth.AuthorizationService,
	validator *validation.Validator,
	logger zerolog.Logger,
) EnrollmentService {
	return &enrollmentServiceImpl{
		enrollmentRepo: enrollmentRepo,
		studentRepo:    studentRepo,
		courseRepo:     courseRepo,
		authz:          authz,
		validator:      validator,
		logger:         logger,
	}
}

func (s *enrollmentServiceImpl) requireStudent(ctx context.Context, studentID int64) error {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, apperrors.ErrStudentNotFound) {
			return err
		}
		return fmt.Errorf("error retrieving student: %w", err)
	}
	return nil
}

func (s *enrollmentServiceImpl) coursesOf(ctx context.Context, studentID int64) ([]*models.Course, error) {
	courses, err := s.enrollmentRepo.CoursesForStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving student courses: %w", err)
	}
	return courses, nil
}

// GetStudentCourses lists the courses of a student in enrollment order
func (s *enrollmentServiceImpl) GetStudentCourses(ctx context.Context, studentID int64) ([]*models.Course, error) {
	if err := s.requireStudent(ctx, studentID); err != nil {
		return nil, err
	}
	return s.coursesOf(ctx, studentID)
}

// EnrollStudent enrolls a student in the requested course. A second enrollment
// in the same course fails with ErrAlreadyEnrolled.
func (s *enrollmentServiceImpl) EnrollStudent(ctx context.Context, studentID int64, req *dto.EnrollRequest) (*models.Course, error) {
	if err := s.requireStudent(ctx, studentID); err != nil {
		return nil, err
	}

	verr, err := validateRequest(s.validator, req)
	if err != nil {
		return nil, err
	}
	if verr.HasErrors() {
		return nil, verr
	}

	course, err := s.courseRepo.GetByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCourseNotFound) {
			addExists(verr, "course_id")
			return nil, verr
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	enrolled, err := s.enrollmentRepo.IsEnrolled(ctx, studentID, req.CourseID)
	if err != nil {
		return nil, fmt.Errorf("error checking enrollment: %w", err)
	}
	if enrolled {
		return nil, apperrors.ErrAlreadyEnrolled
	}

	if err := s.enrollmentRepo.Enroll(ctx, studentID, req.CourseID); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrAlreadyEnrolled), errors.Is(err, apperrors.ErrStudentNotFound):
			return nil, err
		case errors.Is(err, apperrors.ErrCourseNotFound):
			addExists(verr, "course_id")
			return nil, verr
		}
		return nil, fmt.Errorf("error enrolling student: %w", err)
	}

	s.logger.Info().Int64("studentID", studentID).Int64("courseID", req.CourseID).Msg("Student enrolled")
	return course, nil
}

// UnenrollStudent removes the enrollment if there is one
func (s *enrollmentServiceImpl) UnenrollStudent(ctx context.Context, studentID, courseID int64) error {
	if err := s.requireStudent(ctx, studentID); err != nil {
		return err
	}
	if err := s.enrollmentRepo.Unenroll(ctx, studentID, courseID); err != nil {
		return fmt.Errorf("error unenrolling student: %w", err)
	}
	return nil
}

// GetMyCourses lists the courses of the student owned by userID
func (s *enrollmentServiceImpl) GetMyCourses(ctx context.Context, userID int64) ([]*models.Course, error) {
	student, err := s.authz.StudentForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.coursesOf(ctx, student.ID)
}
