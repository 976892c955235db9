package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pooya1361/makerspace/internal/models"
	"github.com/pooya1361/makerspace/internal/repositories"
	"github.com/pooya1361/makerspace/internal/validator"
)

type workshopService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewWorkshopService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) WorkshopService {
	return &workshopService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *workshopService) Create(ctx context.Context, req CreateWorkshopRequest) (*models.WorkshopResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	workshop := &models.Workshop{
		Name:        req.Name,
		Description: req.Description,
		Size:        req.Size,
	}
	if err := s.repo.Workshop().Create(ctx, workshop); err != nil {
		return nil, fmt.Errorf("failed to create workshop: %w", err)
	}

	s.logger.Info("workshop created", "workshop_id", workshop.ID, "name", workshop.Name)
	return models.NewWorkshopResponse(workshop), nil
}

func (s *workshopService) GetAll(ctx context.Context) ([]models.WorkshopResponse, error) {
	workshops, err := s.repo.Workshop().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list workshops: %w", err)
	}

	out := make([]models.WorkshopResponse, 0, len(workshops))
	for i := range workshops {
		out = append(out, *models.NewWorkshopResponse(&workshops[i]))
	}
	return out, nil
}

func (s *workshopService) GetByID(ctx context.Context, id uint) (*models.WorkshopResponse, error) {
	workshop, err := s.repo.Workshop().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrWorkshopNotFound
		}
		return nil, fmt.Errorf("failed to get workshop: %w", err)
	}
	return models.NewWorkshopResponse(workshop), nil
}

func (s *workshopService) Update(ctx context.Context, id uint, req UpdateWorkshopRequest) (*models.WorkshopResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	workshop, err := s.repo.Workshop().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrWorkshopNotFound
		}
		return nil, fmt.Errorf("failed to get workshop: %w", err)
	}

	if req.Name != nil {
		workshop.Name = *req.Name
	}
	if req.Description != nil {
		workshop.Description = req.Description
	}
	if req.Size != nil {
		workshop.Size = *req.Size
	}

	if err := s.repo.Workshop().Update(ctx, workshop); err != nil {
		return nil, fmt.Errorf("failed to update workshop: %w", err)
	}
	return models.NewWorkshopResponse(workshop), nil
}

func (s *workshopService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Workshop().Delete(ctx, id); err != nil {
		if repositories.IsNotFound(err) {
			return ErrWorkshopNotFound
		}
		return fmt.Errorf("failed to delete workshop: %w", err)
	}
	return nil
}
