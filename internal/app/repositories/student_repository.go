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
	"github.com/jubilut/academia/internal/db"
	"github.com/jubilut/academia/internal/pkg/apperrors"
	"github.com/jubilut/academia/internal/pkg/dberrors"
	"github.com/jubilut/academia/internal/pkg/logger"
)

const studentsEmailConstraint = "students_email_unique"

var studentColumns = []string{"id", "name", "email", "birth_date", "user_id", "created_at", "updated_at"}

// StudentRepository handles student database operations
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	s := &models.Student{}
	if err := row.Scan(&s.ID, &s.Name, &s.Email, &s.BirthDate, &s.UserID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return s, nil
}

func studentFilterConditions(filter models.StudentFilter) squirrel.And {
	cond := squirrel.And{}
	if filter.Name != "" {
		cond = append(cond, squirrel.ILike{"name": containsPattern(filter.Name)})
	}
	if filter.Email != "" {
		cond = append(cond, squirrel.ILike{"email": containsPattern(filter.Email)})
	}
	return cond
}

// List returns one page of students, newest first, and the total matching the filter
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter, page models.Page) ([]*models.Student, int64, error) {
	where := studentFilterConditions(filter)

	countSQL, countArgs, err := r.sb.Select("COUNT(*)").From("students").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting students")
		return nil, 0, fmt.Errorf("error counting students: %w", err)
	}

	sql, args, err := r.sb.Select(studentColumns...).
		From("students").
		Where(where).
		OrderBy("id DESC").
		Offset(page.Offset).
		Limit(page.Limit).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build list students query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list students query")
		return nil, 0, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	students := make([]*models.Student, 0, page.Limit)
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning student row")
			return nil, 0, fmt.Errorf("error scanning student: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating students: %w", err)
	}

	return students, total, nil
}

func (r *StudentRepository) getBy(ctx context.Context, where squirrel.Sqlizer) (*models.Student, error) {
	sql, args, err := r.sb.Select(studentColumns...).From("students").Where(where).Limit(1).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get student query: %w", err)
	}

	s, err := scanStudent(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		logger.Error().Err(err).Msg("Error scanning student row")
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return s, nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

// GetByUserID retrieves the student linked to a user
func (r *StudentRepository) GetByUserID(ctx context.Context, userID int64) (*models.Student, error) {
	return r.getBy(ctx, squirrel.Eq{"user_id": userID})
}

// EmailExists checks whether another student already uses email
func (r *StudentRepository) EmailExists(ctx context.Context, email string, exceptID int64) (bool, error) {
	return exists(ctx, r.db, r.sb, "students", squirrel.And{
		squirrel.Eq{"email": email},
		squirrel.NotEq{"id": exceptID},
	})
}

// CreateWithUser inserts the login user, then the student linked to it
func (r *StudentRepository) CreateWithUser(ctx context.Context, student *models.Student, user *models.User) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := insertUser(ctx, tx, r.sb, user); err != nil {
			return err
		}
		student.UserID = user.ID

		sql, args, err := r.sb.Insert("students").
			Columns("name", "email", "birth_date", "user_id").
			Values(student.Name, student.Email, student.BirthDate, student.UserID).
			Suffix("RETURNING id, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create student query: %w", err)
		}

		return tx.QueryRow(ctx, sql, args...).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	})
	return r.mapWriteError(err, "create")
}

// UpdateWithUser updates the student and mirrors name/email (and optionally password) to its user.
// A password change revokes the user's live access tokens in the same transaction.
func (r *StudentRepository) UpdateWithUser(ctx context.Context, student *models.Student, passwordHash *string) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		now := time.Now()

		sql, args, err := r.sb.Update("students").
			Set("name", student.Name).
			Set("email", student.Email).
			Set("birth_date", student.BirthDate).
			Set("updated_at", now).
			Where(squirrel.Eq{"id": student.ID}).
			Suffix("RETURNING user_id, created_at, updated_at").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update student query: %w", err)
		}

		if err := tx.QueryRow(ctx, sql, args...).Scan(&student.UserID, &student.CreatedAt, &student.UpdatedAt); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrStudentNotFound
			}
			return err
		}

		update := r.sb.Update("users").
			Set("name", student.Name).
			Set("email", student.Email).
			Set("updated_at", now).
			Where(squirrel.Eq{"id": student.UserID})
		if passwordHash != nil {
			update = update.Set("password", *passwordHash)
		}

		sql, args, err = update.ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update user query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}

		if passwordHash == nil {
			return nil
		}
		sql, args, err = r.sb.Update("access_tokens").
			Set("revoked_at", now).
			Where(squirrel.Eq{"user_id": student.UserID, "revoked_at": nil}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build revoke tokens query: %w", err)
		}
		_, err = tx.Exec(ctx, sql, args...)
		return err
	})
	return r.mapWriteError(err, "update")
}

// DeleteWithUser removes the student (enrollments cascade) and then its user
func (r *StudentRepository) DeleteWithUser(ctx context.Context, id int64) error {
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Delete("students").
			Where(squirrel.Eq{"id": id}).
			Suffix("RETURNING user_id").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete student query: %w", err)
		}

		var userID int64
		if err := tx.QueryRow(ctx, sql, args...).Scan(&userID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrStudentNotFound
			}
			return err
		}

		sql, args, err = r.sb.Delete("users").Where(squirrel.Eq{"id": userID}).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete user query: %w", err)
		}
		_, err = tx.Exec(ctx, sql, args...)
		return err
	})
	return r.mapWriteError(err, "delete")
}

// mapWriteError turns constraint violations into domain errors and logs the rest
func (r *StudentRepository) mapWriteError(err error, op string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, apperrors.ErrStudentNotFound), errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return err
	case dberrors.IsDuplicateConstraintError(err, studentsEmailConstraint),
		dberrors.IsDuplicateConstraintError(err, usersEmailConstraint):
		return apperrors.ErrEmailAlreadyExists
	}
	logger.Error().Err(err).Str("op", op).Msg("Error writing student")
	return fmt.Errorf("error during student %s: %w", op, err)
}
