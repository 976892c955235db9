package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pooya1361/makerspace/internal/models"
	"github.com/pooya1361/makerspace/internal/repositories"
	"github.com/pooya1361/makerspace/internal/validator"
)

type scheduledLessonService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewScheduledLessonService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) ScheduledLessonService {
	return &scheduledLessonService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *scheduledLessonService) Create(ctx context.Context, req CreateScheduledLessonRequest) (*models.ScheduledLessonResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.Lesson().GetByID(ctx, req.LessonID); err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrLessonNotFound
		}
		return nil, fmt.Errorf("failed to check lesson: %w", err)
	}
	if req.InstructorID != nil {
		if _, err := s.repo.User().GetByID(ctx, *req.InstructorID); err != nil {
			if repositories.IsNotFound(err) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to check instructor: %w", err)
		}
	}

	scheduledLesson := &models.ScheduledLesson{
		StartTime:         req.StartTime,
		DurationInMinutes: req.DurationInMinutes,
		LessonID:          req.LessonID,
		InstructorID:      req.InstructorID,
	}
	if err := s.repo.ScheduledLesson().Create(ctx, scheduledLesson); err != nil {
		return nil, fmt.Errorf("failed to create scheduled lesson: %w", err)
	}

	s.logger.Info("scheduled lesson created",
		"scheduled_lesson_id", scheduledLesson.ID,
		"lesson_id", scheduledLesson.LessonID,
	)

	created, err := s.repo.ScheduledLesson().GetByID(ctx, scheduledLesson.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload scheduled lesson: %w", err)
	}
	return models.NewScheduledLessonResponse(created), nil
}

func (s *scheduledLessonService) GetAll(ctx context.Context) ([]models.ScheduledLessonResponse, error) {
	scheduledLessons, err := s.repo.ScheduledLesson().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list scheduled lessons: %w", err)
	}

	out := make([]models.ScheduledLessonResponse, 0, len(scheduledLessons))
	for i := range scheduledLessons {
		out = append(out, *models.NewScheduledLessonResponse(&scheduledLessons[i]))
	}
	return out, nil
}

func (s *scheduledLessonService) GetByID(ctx context.Context, id uint) (*models.ScheduledLessonResponse, error) {
	scheduledLesson, err := s.repo.ScheduledLesson().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrScheduledLessonNotFound
		}
		return nil, fmt.Errorf("failed to get scheduled lesson: %w", err)
	}
	return models.NewScheduledLessonResponse(scheduledLesson), nil
}

func (s *scheduledLessonService) Update(ctx context.Context, id uint, req UpdateScheduledLessonRequest) (*models.ScheduledLessonResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	scheduledLesson, err := s.repo.ScheduledLesson().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrScheduledLessonNotFound
		}
		return nil, fmt.Errorf("failed to get scheduled lesson: %w", err)
	}

	if req.StartTime != nil {
		scheduledLesson.StartTime = req.StartTime
	}
	if req.DurationInMinutes != nil {
		scheduledLesson.DurationInMinutes = *req.DurationInMinutes
	}
	if req.LessonID != nil {
		if _, err := s.repo.Lesson().GetByID(ctx, *req.LessonID); err != nil {
			if repositories.IsNotFound(err) {
				return nil, ErrLessonNotFound
			}
			return nil, fmt.Errorf("failed to check lesson: %w", err)
		}
		scheduledLesson.LessonID = *req.LessonID
	}
	if req.InstructorID != nil {
		if _, err := s.repo.User().GetByID(ctx, *req.InstructorID); err != nil {
			if repositories.IsNotFound(err) {
				return nil, ErrUserNotFound
			}
			return nil, fmt.Errorf("failed to check instructor: %w", err)
		}
		scheduledLesson.InstructorID = req.InstructorID
	}

	if err := s.repo.ScheduledLesson().Update(ctx, scheduledLesson); err != nil {
		return nil, fmt.Errorf("failed to update scheduled lesson: %w", err)
	}
	return models.NewScheduledLessonResponse(scheduledLesson), nil
}

func (s *scheduledLessonService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.ScheduledLesson().Delete(ctx, id); err != nil {
		if repositories.IsNotFound(err) {
			return ErrScheduledLessonNotFound
		}
		return fmt.Errorf("failed to delete scheduled lesson: %w", err)
	}
	return nil
}
