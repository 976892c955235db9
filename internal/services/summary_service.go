package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/pooya1361/makerspace/internal/models"
	"github.com/pooya1361/makerspace/internal/repositories"
)

type summaryService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

func NewSummaryService(repo repositories.Repository, logger *slog.Logger) SummaryService {
	return &summaryService{
		repo:   repo,
		logger: logger,
	}
}

func (s *summaryService) GetSummary(ctx context.Context) (*models.SummaryResponse, error) {
	workshops, err := s.repo.Workshop().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count workshops: %w", err)
	}
	activities, err := s.repo.Activity().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count activities: %w", err)
	}
	lessons, err := s.repo.Lesson().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count lessons: %w", err)
	}
	scheduledLessons, err := s.repo.ScheduledLesson().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count scheduled lessons: %w", err)
	}
	users, err := s.repo.User().Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	return &models.SummaryResponse{
		TotalWorkshops:        workshops,
		TotalActivities:       activities,
		TotalLessons:          lessons,
		TotalScheduledLessons: scheduledLessons,
		TotalUsers:            users,
	}, nil
}

// GetAvailableLessons returns unscheduled occurrences of the lessons the
// user is interested in but has not acquired, restricted to those with at
// least one proposal and ordered by the earliest proposed start time.
func (s *summaryService) GetAvailableLessons(ctx context.Context, userID uint) ([]models.ScheduledLessonResponse, error) {
	interests, err := s.repo.LessonUser().GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user interests: %w", err)
	}

	lessonIDs := make([]uint, 0, len(interests))
	for i := range interests {
		if interests[i].Acquired {
			continue
		}
		lessonIDs = append(lessonIDs, interests[i].LessonID)
	}
	if len(lessonIDs) == 0 {
		return []models.ScheduledLessonResponse{}, nil
	}

	scheduledLessons, err := s.repo.ScheduledLesson().FindUnscheduledByLessonIDs(ctx, lessonIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list unscheduled lessons: %w", err)
	}

	type candidate struct {
		lesson   *models.ScheduledLesson
		earliest time.Time
	}

	candidates := make([]candidate, 0, len(scheduledLessons))
	for i := range scheduledLessons {
		sl := &scheduledLessons[i]
		if len(sl.ProposedTimeSlots) == 0 {
			continue
		}
		earliest := sl.ProposedTimeSlots[0].ProposedStartTime
		for _, slot := range sl.ProposedTimeSlots[1:] {
			if slot.ProposedStartTime.Before(earliest) {
				earliest = slot.ProposedStartTime
			}
		}
		candidates = append(candidates, candidate{lesson: sl, earliest: earliest})
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].earliest.Before(candidates[j].earliest)
	})

	out := make([]models.ScheduledLessonResponse, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, *models.NewScheduledLessonResponse(c.lesson))
	}
	return out, nil
}
