package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jubilut/academia/internal/app/models"
	"github.com/jubilut/academia/internal/pkg/apperrors"
	"github.com/jubilut/academia/internal/pkg/dberrors"
	"github.com/jubilut/academia/internal/pkg/logger"
)

const (
	enrollmentsPK        = "enrollments_pkey"
	enrollmentsStudentFK = "enrollments_student_id_fkey"
	enrollmentsCourseFK  = "enrollments_course_id_fkey"
)

// EnrollmentRepository handles the enrollments join table
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new EnrollmentRepository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// IsEnrolled checks whether the (student, course) pair exists
func (r *EnrollmentRepository) IsEnrolled(ctx context.Context, studentID, courseID int64) (bool, error) {
	return exists(ctx, r.db, r.sb, "enrollments", squirrel.Eq{"student_id": studentID, "course_id": courseID})
}

// Enroll inserts the pair. The primary key rejects a concurrent duplicate.
func (r *EnrollmentRepository) Enroll(ctx context.Context, studentID, courseID int64) error {
	sql, args, err := r.sb.Insert("enrollments").
		Columns("student_id", "course_id").
		Values(studentID, courseID).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build enroll query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		switch {
		case dberrors.IsDuplicateConstraintError(err, enrollmentsPK):
			return apperrors.ErrAlreadyEnrolled
		case dberrors.IsForeignKeyError(err, enrollmentsStudentFK):
			return apperrors.ErrStudentNotFound
		case dberrors.IsForeignKeyError(err, enrollmentsCourseFK):
			return apperrors.ErrCourseNotFound
		}
		logger.Error().Err(err).Int64("studentID", studentID).Int64("courseID", courseID).Msg("Error executing enroll query")
		return fmt.Errorf("error enrolling student: %w", err)
	}
	return nil
}

// Unenroll deletes the pair if present
func (r *EnrollmentRepository) Unenroll(ctx context.Context, studentID, courseID int64) error {
	sql, args, err := r.sb.Delete("enrollments").
		Where(squirrel.Eq{"student_id": studentID, "course_id": courseID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build unenroll query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Int64("courseID", courseID).Msg("Error executing unenroll query")
		return fmt.Errorf("error unenrolling student: %w", err)
	}
	return nil
}

// CoursesForStudent lists the student's courses in enrollment order
func (r *EnrollmentRepository) CoursesForStudent(ctx context.Context, studentID int64) ([]*models.Course, error) {
	sql, args, err := r.sb.Select(
		"c.id", "c.title", "c.description", "c.start_date", "c.end_date", "c.created_at", "c.updated_at",
	).
		From("courses c").
		Join("enrollments e ON e.course_id = c.id").
		Where(squirrel.Eq{"e.student_id": studentID}).
		OrderBy("e.created_at", "c.id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("studentID", studentID).Msg("Error executing student courses query")
		return nil, fmt.Errorf("error listing student courses: %w", err)
	}
	return collectCourses(rows)
}
