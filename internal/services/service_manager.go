package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pooya1361/makerspace/internal/mail"
	"github.com/pooya1361/makerspace/internal/repositories"
	"github.com/pooya1361/makerspace/internal/validator"
)

// serviceManager wires every service to the shared repository, validator
// and logger, and owns their lifecycle.
type serviceManager struct {
	repo      repositories.Repository
	logger    *slog.Logger
	validator *validator.Validator

	userService             UserService
	workshopService         WorkshopService
	activityService         ActivityService
	lessonService           LessonService
	scheduledLessonService  ScheduledLessonService
	proposedTimeSlotService ProposedTimeSlotService
	voteService             VoteService
	lessonUserService       LessonUserService
	summaryService          SummaryService

	shutdown bool
	mu       sync.RWMutex
}

func NewServiceManager(repo repositories.Repository, mailer mail.Mailer, logger *slog.Logger, validator *validator.Validator, notification NotificationConfig) ServiceManager {
	sm := &serviceManager{
		repo:      repo,
		logger:    logger,
		validator: validator,
	}

	sm.userService = NewUserService(repo, logger, validator)
	sm.workshopService = NewWorkshopService(repo, logger, validator)
	sm.activityService = NewActivityService(repo, logger, validator)
	sm.lessonService = NewLessonService(repo, logger, validator)
	sm.scheduledLessonService = NewScheduledLessonService(repo, logger, validator)
	sm.proposedTimeSlotService = NewProposedTimeSlotService(repo, mailer, logger, validator, notification)
	sm.voteService = NewVoteService(repo, logger, validator)
	sm.lessonUserService = NewLessonUserService(repo, logger, validator)
	sm.summaryService = NewSummaryService(repo, logger)

	return sm
}

func (sm *serviceManager) User() UserService { return sm.userService }

func (sm *serviceManager) Workshop() WorkshopService { return sm.workshopService }

func (sm *serviceManager) Activity() ActivityService { return sm.activityService }

func (sm *serviceManager) Lesson() LessonService { return sm.lessonService }

func (sm *serviceManager) ScheduledLesson() ScheduledLessonService {
	return sm.scheduledLessonService
}

func (sm *serviceManager) ProposedTimeSlot() ProposedTimeSlotService {
	return sm.proposedTimeSlotService
}

func (sm *serviceManager) Vote() VoteService { return sm.voteService }

func (sm *serviceManager) LessonUser() LessonUserService { return sm.lessonUserService }

func (sm *serviceManager) Summary() SummaryService { return sm.summaryService }

func (sm *serviceManager) HealthCheck(ctx context.Context) error {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	if sm.shutdown {
		return fmt.Errorf("service manager is shut down")
	}
	return sm.repo.Ping(ctx)
}

func (sm *serviceManager) Shutdown(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.shutdown {
		return nil
	}

	sm.logger.Info("shutting down service manager")
	sm.shutdown = true
	return nil
}
