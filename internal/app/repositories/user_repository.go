package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jubilut/academia/internal/app/models"
	"github.com/jubilut/academia/internal/pkg/apperrors"
	"github.com/jubilut/academia/internal/pkg/dberrors"
	"github.com/jubilut/academia/internal/pkg/logger"
)

const usersEmailConstraint = "users_email_unique"

var userColumns = []string{"id", "name", "email", "password", "role", "created_at", "updated_at"}

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{
		db: db,
		sb: statementBuilder(),
	}
}

func scanUser(row pgx.Row) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// insertUser is shared with the student repository transaction
func insertUser(ctx context.Context, q querier, sb squirrel.StatementBuilderType, user *models.User) error {
	sql, args, err := sb.Insert("users").
		Columns("name", "email", "password", "role").
		Values(user.Name, user.Email, user.Password, user.Role).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create user query: %w", err)
	}

	err = q.QueryRow(ctx, sql, args...).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, usersEmailConstraint) {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}
	return nil
}

// Create inserts a user and fills its ID and timestamps
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := insertUser(ctx, r.db, r.sb, user); err != nil {
		if !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			logger.Error().Err(err).Str("email", user.Email).Msg("Error executing create user query")
		}
		return err
	}
	return nil
}

func (r *UserRepository) getBy(ctx context.Context, where squirrel.Sqlizer) (*models.User, error) {
	sql, args, err := r.sb.Select(userColumns...).
		From("users").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get user query: %w", err)
	}

	user, err := scanUser(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		logger.Error().Err(err).Msg("Error scanning user row")
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}
	return user, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getBy(ctx, squirrel.Eq{"id": id})
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getBy(ctx, squirrel.Eq{"email": email})
}

// EmailExists checks whether another user already uses email
func (r *UserRepository) EmailExists(ctx context.Context, email string, exceptID int64) (bool, error) {
	return exists(ctx, r.db, r.sb, "users", squirrel.And{
		squirrel.Eq{"email": email},
		squirrel.NotEq{"id": exceptID},
	})
}

// exists runs SELECT EXISTS over table with the given condition
func exists(ctx context.Context, q querier, sb squirrel.StatementBuilderType, table string, where squirrel.Sqlizer) (bool, error) {
	sql, args, err := sb.Select("1").
		Prefix("SELECT EXISTS (").
		From(table).
		Where(where).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build exists query on %s: %w", table, err)
	}

	var found bool
	if err := q.QueryRow(ctx, sql, args...).Scan(&found); err != nil {
		logger.Error().Err(err).Str("table", table).Msg("Error executing exists query")
		return false, fmt.Errorf("error checking %s existence: %w", table, err)
	}
	return found, nil
}
