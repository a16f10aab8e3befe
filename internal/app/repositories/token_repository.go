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

// TokenRepository handles access token database operations
type TokenRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(db *pgxpool.Pool) *TokenRepository {
	return &TokenRepository{
		db: db,
		sb: statementBuilder(),
	}
}

// Create records an issued access token
func (r *TokenRepository) Create(ctx context.Context, token *models.AccessToken) error {
	sql, args, err := r.sb.Insert("access_tokens").
		Columns("jti", "user_id", "expires_at").
		Values(token.JTI, token.UserID, token.ExpiresAt).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create token SQL")
		return fmt.Errorf("failed to build create token query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&token.CreatedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "access_tokens_pkey") {
			logger.Warn().Str("jti", token.JTI).Msg("Attempted to create duplicate token")
			return apperrors.ErrTokenInvalid
		}
		logger.Error().Err(err).Int64("userID", token.UserID).Msg("Error executing create token query")
		return fmt.Errorf("error creating token: %w", err)
	}
	return nil
}

// GetActive returns the token only if it is neither revoked nor expired at now
func (r *TokenRepository) GetActive(ctx context.Context, jti string, now time.Time) (*models.AccessToken, error) {
	sql, args, err := r.sb.Select("jti", "user_id", "expires_at", "revoked_at", "created_at").
		From("access_tokens").
		Where(squirrel.Eq{"jti": jti}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get token query: %w", err)
	}

	t := &models.AccessToken{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&t.JTI, &t.UserID, &t.ExpiresAt, &t.RevokedAt, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTokenNotFound
		}
		logger.Error().Err(err).Str("jti", jti).Msg("Error scanning token row")
		return nil, fmt.Errorf("error retrieving token: %w", err)
	}

	if t.RevokedAt != nil {
		return nil, apperrors.ErrTokenRevoked
	}
	if !now.Before(t.ExpiresAt) {
		return nil, apperrors.ErrTokenExpired
	}
	return t, nil
}

// Revoke marks a token revoked. Unknown or already revoked tokens are left alone.
func (r *TokenRepository) Revoke(ctx context.Context, jti string, at time.Time) error {
	sql, args, err := r.sb.Update("access_tokens").
		Set("revoked_at", at).
		Where(squirrel.Eq{"jti": jti, "revoked_at": nil}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build revoke token query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Str("jti", jti).Msg("Error executing revoke token query")
		return fmt.Errorf("error revoking token: %w", err)
	}
	return nil
}

// DeleteExpired removes tokens that expired, or were revoked, before the cutoff
func (r *TokenRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	sql, args, err := r.sb.Delete("access_tokens").
		Where(squirrel.Or{
			squirrel.Lt{"expires_at": before},
			squirrel.Lt{"revoked_at": before},
		}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build delete expired tokens query: %w", err)
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing delete expired tokens query")
		return 0, fmt.Errorf("error deleting expired tokens: %w", err)
	}
	return tag.RowsAffected(), nil
}
