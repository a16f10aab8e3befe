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

// ProfessorService defines the interface for professor-related operations
type ProfessorService interface {
	GetAllProfessors(ctx context.Context) ([]*models.Professor, error)
	GetProfessorByID(ctx context.Context, id int64) (*models.Professor, error)
	CreateProfessor(ctx context.Context, req *dto.ProfessorRequest) (*models.Professor, error)
	UpdateProfessor(ctx context.Context, id int64, req *dto.ProfessorRequest) (*models.Professor, error)
	DeleteProfessor(ctx context.Context, id int64) error
}

type professorServiceImpl struct {
	professorRepo repositories.IProfessorRepository
	validator     *validation.Validator
	logger        zerolog.Logger
}

// NewProfessorService creates a new professor service instance
func NewProfessorService(professorRepo repositories.IProfessorRepository, validator *validation.Validator, logger zerolog.Logger) ProfessorService {
	return &professorServiceImpl{
		professorRepo: professorRepo,
		validator:     validator,
		logger:        logger,
	}
}

// validate normalizes req and checks its rules and email uniqueness, ignoring exceptID
func (s *professorServiceImpl) validate(ctx context.Context, req *dto.ProfessorRequest, exceptID int64) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = helpers.NormalizeEmail(req.Email)

	verr, err := validateRequest(s.validator, req)
	if err != nil {
		return err
	}
	if _, failed := verr.Fields["email"]; !failed {
		taken, err := s.professorRepo.EmailExists(ctx, req.Email, exceptID)
		if err != nil {
			return fmt.Errorf("error checking professor email: %w", err)
		}
		if taken {
			addUnique(verr, "email")
		}
	}
	return verr.OrNil()
}

// GetAllProfessors lists every professor, newest first
func (s *professorServiceImpl) GetAllProfessors(ctx context.Context) ([]*models.Professor, error) {
	professors, err := s.professorRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving professors: %w", err)
	}
	return professors, nil
}

// GetProfessorByID retrieves a professor by ID
func (s *professorServiceImpl) GetProfessorByID(ctx context.Context, id int64) (*models.Professor, error) {
	professor, err := s.professorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrProfessorNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error retrieving professor: %w", err)
	}
	return professor, nil
}

// CreateProfessor creates a new professor
func (s *professorServiceImpl) CreateProfessor(ctx context.Context, req *dto.ProfessorRequest) (*models.Professor, error) {
	if err := s.validate(ctx, req, 0); err != nil {
		return nil, err
	}

	professor := &models.Professor{Name: req.Name, Email: req.Email}
	if err := s.professorRepo.Create(ctx, professor); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil, uniqueEmailError()
		}
		return nil, fmt.Errorf("error creating professor: %w", err)
	}
	return professor, nil
}

// UpdateProfessor replaces a professor's name and email
func (s *professorServiceImpl) UpdateProfessor(ctx context.Context, id int64, req *dto.ProfessorRequest) (*models.Professor, error) {
	professor, err := s.GetProfessorByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, req, id); err != nil {
		return nil, err
	}

	professor.Name = req.Name
	professor.Email = req.Email
	if err := s.professorRepo.Update(ctx, professor); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrEmailAlreadyExists):
			return nil, uniqueEmailError()
		case errors.Is(err, apperrors.ErrProfessorNotFound):
			return nil, err
		}
		return nil, fmt.Errorf("error updating professor: %w", err)
	}
	return professor, nil
}

// DeleteProfessor deletes a professor and, by cascade, their subjects
func (s *professorServiceImpl) DeleteProfessor(ctx context.Context, id int64) error {
	if err := s.professorRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, apperrors.ErrProfessorNotFound) {
			return err
		}
		return fmt.Errorf("error deleting professor: %w", err)
	}
	return nil
}
