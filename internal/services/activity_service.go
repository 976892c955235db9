package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pooya1361/makerspace/internal/models"
	"github.com/pooya1361/makerspace/internal/repositories"
	"github.com/pooya1361/makerspace/internal/validator"
)

type activityService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewActivityService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) ActivityService {
	return &activityService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *activityService) Create(ctx context.Context, req CreateActivityRequest) (*models.ActivityResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if req.WorkshopID != nil {
		if _, err := s.repo.Workshop().GetByID(ctx, *req.WorkshopID); err != nil {
			if repositories.IsNotFound(err) {
				return nil, ErrWorkshopNotFound
			}
			return nil, fmt.Errorf("failed to check workshop: %w", err)
		}
	}

	activity := &models.Activity{
		Name:        req.Name,
		Description: req.Description,
		WorkshopID:  req.WorkshopID,
	}
	if err := s.repo.Activity().Create(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to create activity: %w", err)
	}

	s.logger.Info("activity created", "activity_id", activity.ID, "name", activity.Name)
	return models.NewActivityResponse(activity), nil
}

func (s *activityService) GetAll(ctx context.Context) ([]models.ActivityResponse, error) {
	activities, err := s.repo.Activity().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}

	out := make([]models.ActivityResponse, 0, len(activities))
	for i := range activities {
		out = append(out, *models.NewActivityResponse(&activities[i]))
	}
	return out, nil
}

func (s *activityService) GetByID(ctx context.Context, id uint) (*models.ActivityResponse, error) {
	activity, err := s.repo.Activity().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return models.NewActivityResponse(activity), nil
}

func (s *activityService) Update(ctx context.Context, id uint, req UpdateActivityRequest) (*models.ActivityResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	activity, err := s.repo.Activity().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrActivityNotFound
		}
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}

	if req.Name != nil {
		activity.Name = *req.Name
	}
	if req.Description != nil {
		activity.Description = req.Description
	}
	if req.WorkshopID != nil {
		if _, err := s.repo.Workshop().GetByID(ctx, *req.WorkshopID); err != nil {
			if repositories.IsNotFound(err) {
				return nil, ErrWorkshopNotFound
			}
			return nil, fmt.Errorf("failed to check workshop: %w", err)
		}
		activity.WorkshopID = req.WorkshopID
	}

	if err := s.repo.Activity().Update(ctx, activity); err != nil {
		return nil, fmt.Errorf("failed to update activity: %w", err)
	}
	return models.NewActivityResponse(activity), nil
}

func (s *activityService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Activity().Delete(ctx, id); err != nil {
		if repositories.IsNotFound(err) {
			return ErrActivityNotFound
		}
		return fmt.Errorf("failed to delete activity: %w", err)
	}
	return nil
}
