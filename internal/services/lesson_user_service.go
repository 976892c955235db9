package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pooya1361/makerspace/internal/models"
	"github.com/pooya1361/makerspace/internal/repositories"
	"github.com/pooya1361/makerspace/internal/validator"
)

type lessonUserService struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator
}

func NewLessonUserService(repo repositories.Repository, logger *slog.Logger, validator *validator.Validator) LessonUserService {
	return &lessonUserService{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}
}

func (s *lessonUserService) Create(ctx context.Context, req CreateLessonUserRequest) (*models.LessonUserResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.repo.Lesson().GetByID(ctx, req.LessonID); err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrLessonNotFound
		}
		return nil, fmt.Errorf("failed to check lesson: %w", err)
	}
	if _, err := s.repo.User().GetByID(ctx, req.UserID); err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to check user: %w", err)
	}

	if _, err := s.repo.LessonUser().FindByUserAndLesson(ctx, req.UserID, req.LessonID); err == nil {
		return nil, ErrDuplicateInterest
	} else if !repositories.IsNotFound(err) {
		return nil, fmt.Errorf("failed to check existing interest: %w", err)
	}

	lessonUser := &models.LessonUser{
		LessonID: req.LessonID,
		UserID:   req.UserID,
		Acquired: req.Acquired,
	}
	if err := s.repo.LessonUser().Create(ctx, lessonUser); err != nil {
		return nil, fmt.Errorf("failed to create lesson user: %w", err)
	}

	s.logger.Info("lesson interest recorded",
		"lesson_user_id", lessonUser.ID,
		"lesson_id", req.LessonID,
		"user_id", req.UserID,
	)

	created, err := s.repo.LessonUser().GetByID(ctx, lessonUser.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload lesson user: %w", err)
	}
	return models.NewLessonUserResponse(created), nil
}

func (s *lessonUserService) GetAll(ctx context.Context) ([]models.LessonUserResponse, error) {
	lessonUsers, err := s.repo.LessonUser().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list lesson users: %w", err)
	}

	out := make([]models.LessonUserResponse, 0, len(lessonUsers))
	for i := range lessonUsers {
		out = append(out, *models.NewLessonUserResponse(&lessonUsers[i]))
	}
	return out, nil
}

func (s *lessonUserService) GetByID(ctx context.Context, id uint) (*models.LessonUserResponse, error) {
	lessonUser, err := s.repo.LessonUser().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrLessonUserNotFound
		}
		return nil, fmt.Errorf("failed to get lesson user: %w", err)
	}
	return models.NewLessonUserResponse(lessonUser), nil
}

func (s *lessonUserService) GetByUserID(ctx context.Context, userID uint) ([]models.LessonUserResponse, error) {
	lessonUsers, err := s.repo.LessonUser().GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list lesson users by user: %w", err)
	}

	out := make([]models.LessonUserResponse, 0, len(lessonUsers))
	for i := range lessonUsers {
		out = append(out, *models.NewLessonUserResponse(&lessonUsers[i]))
	}
	return out, nil
}

func (s *lessonUserService) Update(ctx context.Context, id uint, req UpdateLessonUserRequest) (*models.LessonUserResponse, error) {
	lessonUser, err := s.repo.LessonUser().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrLessonUserNotFound
		}
		return nil, fmt.Errorf("failed to get lesson user: %w", err)
	}

	if req.Acquired != nil {
		lessonUser.Acquired = *req.Acquired
	}

	if err := s.repo.LessonUser().Update(ctx, lessonUser); err != nil {
		return nil, fmt.Errorf("failed to update lesson user: %w", err)
	}
	return models.NewLessonUserResponse(lessonUser), nil
}

func (s *lessonUserService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.LessonUser().Delete(ctx, id); err != nil {
		if repositories.IsNotFound(err) {
			return ErrLessonUserNotFound
		}
		return fmt.Errorf("failed to delete lesson user: %w", err)
	}
	return nil
}
