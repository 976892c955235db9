package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pooya1361/makerspace/internal/models"
	"github.com/pooya1361/makerspace/internal/repositories"
	"github.com/pooya1361/makerspace/internal/validator"
)

type lessonService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewLessonService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) LessonService {
	return &lessonService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *lessonService) Create(ctx context.Context, req CreateLessonRequest) (*models.LessonResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if req.ActivityID != nil {
		if _, err := s.repo.Activity().GetByID(ctx, *req.ActivityID); err != nil {
			if repositories.IsNotFound(err) {
				return nil, ErrActivityNotFound
			}
			return nil, fmt.Errorf("failed to check activity: %w", err)
		}
	}

	lesson := &models.Lesson{
		Name:        req.Name,
		Description: req.Description,
		ActivityID:  req.ActivityID,
	}
	if err := s.repo.Lesson().Create(ctx, lesson); err != nil {
		return nil, fmt.Errorf("failed to create lesson: %w", err)
	}

	s.logger.Info("lesson created", "lesson_id", lesson.ID, "name", lesson.Name)
	return models.NewLessonResponse(lesson), nil
}

func (s *lessonService) GetAll(ctx context.Context) ([]models.LessonResponse, error) {
	lessons, err := s.repo.Lesson().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list lessons: %w", err)
	}

	out := make([]models.LessonResponse, 0, len(lessons))
	for i := range lessons {
		out = append(out, *models.NewLessonResponse(&lessons[i]))
	}
	return out, nil
}

func (s *lessonService) GetByID(ctx context.Context, id uint) (*models.LessonResponse, error) {
	lesson, err := s.repo.Lesson().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrLessonNotFound
		}
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}
	return models.NewLessonResponse(lesson), nil
}

func (s *lessonService) Update(ctx context.Context, id uint, req UpdateLessonRequest) (*models.LessonResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	lesson, err := s.repo.Lesson().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrLessonNotFound
		}
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}

	if req.Name != nil {
		lesson.Name = *req.Name
	}
	if req.Description != nil {
		lesson.Description = req.Description
	}
	if req.ActivityID != nil {
		if _, err := s.repo.Activity().GetByID(ctx, *req.ActivityID); err != nil {
			if repositories.IsNotFound(err) {
				return nil, ErrActivityNotFound
			}
			return nil, fmt.Errorf("failed to check activity: %w", err)
		}
		lesson.ActivityID = req.ActivityID
	}

	if err := s.repo.Lesson().Update(ctx, lesson); err != nil {
		return nil, fmt.Errorf("failed to update lesson: %w", err)
	}
	return models.NewLessonResponse(lesson), nil
}

func (s *lessonService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Lesson().Delete(ctx, id); err != nil {
		if repositories.IsNotFound(err) {
			return ErrLessonNotFound
		}
		return fmt.Errorf("failed to delete lesson: %w", err)
	}
	return nil
}
