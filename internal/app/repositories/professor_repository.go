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

const professorsEmailConstraint = "professors_email_unique"

var professorColumns = []string{"id", "name", "email", "created_at", "updated_at"}

// ProfessorRepository handles professor database operations
type ProfessorRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProfessorRepository creates a new ProfessorRepository
func NewProfessorRepository(db *pgxpool.Pool) *ProfessorRepository {
	return &ProfessorRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanProfessor(row pgx.Row) (*models.Professor, error) {
	p := &models.Professor{}
	if err := row.Scan(&p.ID, &p.Name, &p.Email, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return p, nil
}

// List returns all professors, newest first
func (r *ProfessorRepository) List(ctx context.Context) ([]*models.Professor, error) {
	sql, args, err := r.sb.Select(professorColumns...).From("professors").OrderBy("id DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list professors query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list professors query")
		return nil, fmt.Errorf("error listing professors: %w", err)
	}
	defer rows.Close()

	professors := make([]*models.Professor, 0)
	for rows.Next() {
		p, err := scanProfessor(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning professor: %w", err)
		}
		professors = append(professors, p)
	}
	return professors, rows.Err()
}

// GetByID retrieves a professor by ID
func (r *ProfessorRepository) GetByID(ctx context.Context, id int64) (*models.Professor, error) {
	sql, args, err := r.sb.Select(professorColumns...).From("professors").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get professor query: %w", err)
	}

	p, err := scanProfessor(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrProfessorNotFound
		}
		logger.Error().Err(err).Int64("id", id).Msg("Error scanning professor row")
		return nil, fmt.Errorf("error retrieving professor: %w", err)
	}
	return p, nil
}

// Exists checks if a professor with id exists
func (r *ProfessorRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return exists(ctx, r.db, r.sb, "professors", squirrel.Eq{"id": id})
}

// EmailExists checks whether another professor already uses email
func (r *ProfessorRepository) EmailExists(ctx context.Context, email string, exceptID int64) (bool, error) {
	return exists(ctx, r.db, r.sb, "professors", squirrel.And{
		squirrel.Eq{"email": email},
		squirrel.NotEq{"id": exceptID},
	})
}

// Create inserts a professor and fills its ID and timestamps
func (r *ProfessorRepository) Create(ctx context.Context, professor *models.Professor) error {
	sql, args, err := r.sb.Insert("professors").
		Columns("name", "email").
		Values(professor.Name, professor.Email).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create professor query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&professor.ID, &professor.CreatedAt, &professor.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, professorsEmailConstraint) {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create professor query")
		return fmt.Errorf("error creating professor: %w", err)
	}
	return nil
}

// Update writes name and email
func (r *ProfessorRepository) Update(ctx context.Context, professor *models.Professor) error {
	sql, args, err := r.sb.Update("professors").
		Set("name", professor.Name).
		Set("email", professor.Email).
		Set("updated_at", time.Now()).
		Where(squirrel.Eq{"id": professor.ID}).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update professor query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&professor.CreatedAt, &professor.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrProfessorNotFound
		}
		if dberrors.IsDuplicateConstraintError(err, professorsEmailConstraint) {
			return apperrors.ErrEmailAlreadyExists
		}
		logger.Error().Err(err).Int64("id", professor.ID).Msg("Error executing update professor query")
		return fmt.Errorf("error updating professor: %w", err)
	}
	return nil
}

// Delete removes a professor; their subjects cascade
func (r *ProfessorRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("professors").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete professor query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("id", id).Msg("Error executing delete professor query")
		return fmt.Errorf("error deleting professor: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrProfessorNotFound
	}
	return nil
}
