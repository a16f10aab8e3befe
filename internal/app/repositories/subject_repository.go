package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jubilut/academia/internal/app/models"
	"github.com/jubilut/academia/internal/pkg/apperrors"
	"github.com/jubilut/academia/internal/pkg/dberrors"
	"github.com/jubilut/academia/internal/pkg/logger"
)

const (
	subjectsCourseFK    = "subjects_course_id_fkey"
	subjectsProfessorFK = "subjects_professor_id_fkey"
)

// SubjectRepository handles subject database operations
type SubjectRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewSubjectRepository creates a new SubjectRepository
func NewSubjectRepository(db *pgxpool.Pool) *SubjectRepository {
	return &SubjectRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// selectWithRelations loads each subject with its course title and professor name
func (r *SubjectRepository) selectWithRelations() squirrel.SelectBuilder {
	return r.sb.Select(
		"s.id", "s.title", "s.description", "s.course_id", "s.professor_id", "s.created_at", "s.updated_at",
		"c.title", "p.name",
	).
		From("subjects s").
		Join("courses c ON c.id = s.course_id").
		Join("professors p ON p.id = s.professor_id")
}

func scanSubject(row pgx.Row) (*models.Subject, error) {
	s := &models.Subject{Course: &models.Course{}, Professor: &models.Professor{}}
	err := row.Scan(
		&s.ID, &s.Title, &s.Description, &s.CourseID, &s.ProfessorID, &s.CreatedAt, &s.UpdatedAt,
		&s.Course.Title, &s.Professor.Name,
	)
	if err != nil {
		return nil, err
	}
	s.Course.ID = s.CourseID
	s.Professor.ID = s.ProfessorID
	return s, nil
}

// List returns all subjects, newest first
func (r *SubjectRepository) List(ctx context.Context) ([]*models.Subject, error) {
	sql, args, err := r.selectWithRelations().OrderBy("s.id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list subjects query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list subjects query")
		return nil, fmt.Errorf("error listing subjects: %w", err)
	}
	defer rows.Close()

	subjects := make([]*models.Subject, 0)
	for rows.Next() {
		s, err := scanSubject(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning subject: %w", err)
		}
		subjects = append(subjects, s)
	}
	return subjects, rows.Err()
}

// GetByID retrieves a subject by ID
func (r *SubjectRepository) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	sql, args, err := r.selectWithRelations().Where(squirrel.Eq{"s.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get subject query: %w", err)
	}

	s, err := scanSubject(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrSubjectNotFound
		}
		logger.Error().Err(err).Int64("id", id).Msg("Error scanning subject row")
		return nil, fmt.Errorf("error retrieving subject: %w", err)
	}
	return s, nil
}

// Create inserts a subject and fills its ID and timestamps
func (r *SubjectRepository) Create(ctx context.Context, subject *models.Subject) error {
	sql, args, err := r.sb.Insert("subjects").
		Columns("title", "description", "course_id", "professor_id").
		Values(subject.Title, subject.Description, subject.CourseID, subject.ProfessorID).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create subject query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&subject.ID, &subject.CreatedAt, &subject.UpdatedAt)
	return mapSubjectWriteError(err, "create")
}

// Update writes every editable column
func (r *SubjectRepository) Update(ctx context.Context, subject *models.Subject) error {
	sql, args, err := r.sb.Update("subjects").
		Set("title", subject.Title).
		Set("description", subject.Description).
		Set("course_id", subject.CourseID).
		Set("professor_id", subject.ProfessorID).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": subject.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update subject query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return mapSubjectWriteError(err, "update")
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}
	return nil
}

// Delete removes a subject
func (r *SubjectRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("subjects").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete subject query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("id", id).Msg("Error executing delete subject query")
		return fmt.Errorf("error deleting subject: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSubjectNotFound
	}
	return nil
}

// mapSubjectWriteError reports a parent row deleted between validation and write as not found
func mapSubjectWriteError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case dberrors.IsForeignKeyError(err, subjectsCourseFK):
		return apperrors.ErrCourseNotFound
	case dberrors.IsForeignKeyError(err, subjectsProfessorFK):
		return apperrors.ErrProfessorNotFound
	}
	logger.Error().Err(err).Str("op", op).Msg("Error writing subject")
	return fmt.Errorf("error during subject %s: %w", op, err)
}
