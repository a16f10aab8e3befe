package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	appauth "github.com/jubilut/academia/internal/app/auth"
	"github.com/jubilut/academia/internal/app/models"
	"github.com/jubilut/academia/internal/app/models/dto"
	"github.com/jubilut/academia/internal/app/repositories"
	"github.com/jubilut/academia/internal/pkg/apperrors"
	"github.com/jubilut/academia/internal/pkg/auth"
	"github.com/jubilut/academia/internal/pkg/helpers"
	"github.com/jubilut/academia/internal/pkg/validation"
	"github.com/rs/zerolog"
)

// AuthService handles authentication operations
type AuthService struct {
	userRepo   repositories.IUserRepository
	tokenRepo  repositories.ITokenRepository
	authz      *appauth.AuthorizationService
	jwtService *auth.JWTService
	validator  *validation.Validator
	logger     zerolog.Logger
	now        func() time.Time
}

// NewAuthService creates a new AuthService
func NewAuthService(
	userRepo repositories.IUserRepository,
	tokenRepo repositories.ITokenRepository,
	authz *appauth.AuthorizationService,
	jwtService *auth.JWTService,
	validator *validation.Validator,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokenRepo:  tokenRepo,
		authz:      authz,
		jwtService: jwtService,
		validator:  validator,
		logger:     logger,
		now:        time.Now,
	}
}

// Login checks the credentials and issues a tracked access token
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	req.Email = helpers.NormalizeEmail(req.Email)

	verr, err := validateRequest(s.validator, req)
	if err != nil {
		return nil, err
	}
	if verr.HasErrors() {
		return nil, verr
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Warn().Int64("userID", user.ID).Msg("Failed login attempt")
		return nil, apperrors.ErrInvalidCredentials
	}

	issued, err := s.jwtService.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	err = s.tokenRepo.Create(ctx, &models.AccessToken{
		JTI:       issued.JTI,
		UserID:    user.ID,
		ExpiresAt: issued.ExpiresAt,
	})
	if err != nil {
		return nil, fmt.Errorf("error storing access token: %w", err)
	}

	student, err := s.studentFor(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Msg("User logged in")
	return &dto.LoginResponse{
		AccessToken: issued.Token,
		TokenType:   "bearer",
		ExpiresIn:   issued.ExpiresIn,
		User:        dto.NewUserResource(user, student),
	}, nil
}

// Authenticate validates a bearer token and checks it has not been revoked
func (s *AuthService) Authenticate(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateAndExtractClaims(token)
	if err != nil {
		if errors.Is(err, auth.ErrExpiredToken) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}

	if _, err := uuid.Parse(claims.ID); err != nil {
		return nil, apperrors.ErrTokenInvalid
	}

	if _, err := s.tokenRepo.GetActive(ctx, claims.ID, s.now()); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrTokenNotFound),
			errors.Is(err, apperrors.ErrTokenRevoked),
			errors.Is(err, apperrors.ErrTokenExpired):
			return nil, err
		}
		return nil, fmt.Errorf("error checking access token: %w", err)
	}
	return claims, nil
}

// Logout revokes the token identified by jti
func (s *AuthService) Logout(ctx context.Context, jti string) error {
	if err := s.tokenRepo.Revoke(ctx, jti, s.now()); err != nil {
		return fmt.Errorf("error revoking access token: %w", err)
	}
	return nil
}

// Me returns the user resource of the authenticated user
func (s *AuthService) Me(ctx context.Context, userID int64) (*dto.UserResource, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrTokenInvalid
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	student, err := s.studentFor(ctx, user)
	if err != nil {
		return nil, err
	}

	res := dto.NewUserResource(user, student)
	return &res, nil
}

// CleanupExpiredTokens deletes tokens that can no longer authenticate
func (s *AuthService) CleanupExpiredTokens(ctx context.Context) (int64, error) {
	removed, err := s.tokenRepo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, fmt.Errorf("error cleaning up tokens: %w", err)
	}
	return removed, nil
}

// studentFor loads the student record of a student user, nil for anyone else
func (s *AuthService) studentFor(ctx context.Context, user *models.User) (*models.Student, error) {
	if user.Role != models.RoleStudent {
		return nil, nil
	}
	return s.authz.OptionalStudentForUser(ctx, user.ID)
}
