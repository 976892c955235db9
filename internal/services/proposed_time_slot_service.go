package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pooya1361/makerspace/internal/mail"
	"github.com/pooya1361/makerspace/internal/models"
	"github.com/pooya1361/makerspace/internal/repositories"
	"github.com/pooya1361/makerspace/internal/validator"
)

// NotificationConfig controls the interested-user emails sent when a new
// time slot is proposed.
type NotificationConfig struct {
	FrontendURL string
	Cooldown    time.Duration
}

type proposedTimeSlotService struct {
	repo      repositories.Repository
	mailer    mail.Mailer
	logger    *slog.Logger
	validator *validator.Validator
	config    NotificationConfig

	now func() time.Time
}

// NewProposedTimeSlotService takes the cooldown as configured; zero disables
// the debounce so every proposal notifies. Defaulting happens in config.
func NewProposedTimeSlotService(repo repositories.Repository, mailer mail.Mailer, logger *slog.Logger, validator *validator.Validator, config NotificationConfig) ProposedTimeSlotService {
	if config.Cooldown < 0 {
		config.Cooldown = 0
	}
	return &proposedTimeSlotService{
		repo:      repo,
		mailer:    mailer,
		logger:    logger,
		validator: validator,
		config:    config,
		now:       time.Now,
	}
}

// Create persists a new proposal and, at most once per cooldown window per
// scheduled lesson, emails every interested user. The debounce decision is
// taken against the state BEFORE this proposal exists, so the first slot in
// a quiet window always notifies and the ones right after it stay silent.
func (s *proposedTimeSlotService) Create(ctx context.Context, req CreateProposedTimeSlotRequest) (*models.ProposedTimeSlotResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	scheduledLesson, err := s.repo.ScheduledLesson().GetByID(ctx, req.ScheduledLessonID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrScheduledLessonNotFound
		}
		return nil, fmt.Errorf("failed to get scheduled lesson: %w", err)
	}

	slot := &models.ProposedTimeSlot{
		ProposedStartTime: req.ProposedStartTime,
		ScheduledLessonID: scheduledLesson.ID,
	}

	var shouldNotify bool
	err = s.repo.WithTransaction(ctx, func(txRepo repositories.Repository) error {
		cutoff := s.now().Add(-s.config.Cooldown)
		hasRecent, err := txRepo.ProposedTimeSlot().ExistsRecentForScheduledLesson(ctx, scheduledLesson.ID, cutoff)
		if err != nil {
			return fmt.Errorf("failed to check recent proposals: %w", err)
		}
		shouldNotify = !hasRecent

		if err := txRepo.ProposedTimeSlot().Create(ctx, slot); err != nil {
			return fmt.Errorf("failed to create proposed time slot: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if shouldNotify {
		s.notifyInterestedUsers(ctx, scheduledLesson, slot)
	} else {
		s.logger.Debug("skipping notification, recent proposal already notified",
			"scheduled_lesson_id", scheduledLesson.ID,
		)
	}

	slot.ScheduledLesson = scheduledLesson
	return models.NewProposedTimeSlotResponse(slot), nil
}

// notifyInterestedUsers is best effort: a failed send is logged and the loop
// keeps going, and no failure here ever surfaces to the caller.
func (s *proposedTimeSlotService) notifyInterestedUsers(ctx context.Context, scheduledLesson *models.ScheduledLesson, slot *models.ProposedTimeSlot) {
	interestedUsers, err := s.repo.LessonUser().FindInterestedUsers(ctx, scheduledLesson.LessonID)
	if err != nil {
		s.logger.Error("failed to load interested users",
			"lesson_id", scheduledLesson.LessonID,
			"error", err,
		)
		return
	}
	if len(interestedUsers) == 0 {
		s.logger.Info("no interested users for lesson", "lesson_id", scheduledLesson.LessonID)
		return
	}

	sent := 0
	for i := range interestedUsers {
		user := &interestedUsers[i]
		subject := fmt.Sprintf("New lesson scheduled for %s", scheduledLesson.Lesson.Name)
		body := s.buildNotificationBody(user, scheduledLesson)

		if err := s.mailer.Send(ctx, user.Email, subject, body); err != nil {
			s.logger.Error("failed to send notification email",
				"email", user.Email,
				"proposed_time_slot_id", slot.ID,
				"error", err,
			)
			continue
		}
		sent++
	}

	s.logger.Info("sent proposal notifications",
		"scheduled_lesson_id", scheduledLesson.ID,
		"recipients", sent,
		"interested", len(interestedUsers),
	)
}

func (s *proposedTimeSlotService) buildNotificationBody(user *models.User, scheduledLesson *models.ScheduledLesson) string {
	name := user.FirstName
	if name == "" {
		name = "Student"
	}

	return fmt.Sprintf(`<html>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
  <div style="max-width: 600px;">
    <h2 style="color: #2c3e50;">New Time Slot Proposed!</h2>
    <p>Hi %s,</p>
    <p>A lesson has been scheduled for <strong>%s</strong>.</p>
    <p>Please click on the link below and vote on the available time slots:</p>
    <p style="text-align: center;">
      <a href="%s/scheduled-lessons/%d"
         style="background: #007bff; color: white; padding: 12px 25px;
                text-decoration: none; border-radius: 5px; display: inline-block;">
        Vote on Time Slots
      </a>
    </p>
    <p>If you're no longer interested in this lesson, you can remove this lesson from your interested list
       <a href="%s/lessons">here</a>.</p>
    <p>Best regards,<br>
    <strong>The Makerspace Team</strong></p>
  </div>
</body>
</html>`,
		name,
		scheduledLesson.Lesson.Name,
		s.config.FrontendURL,
		scheduledLesson.ID,
		s.config.FrontendURL,
	)
}

func (s *proposedTimeSlotService) GetAll(ctx context.Context) ([]models.ProposedTimeSlotResponse, error) {
	slots, err := s.repo.ProposedTimeSlot().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposed time slots: %w", err)
	}

	out := make([]models.ProposedTimeSlotResponse, 0, len(slots))
	for i := range slots {
		out = append(out, *models.NewProposedTimeSlotResponse(&slots[i]))
	}
	return out, nil
}

func (s *proposedTimeSlotService) GetByID(ctx context.Context, id uint) (*models.ProposedTimeSlotResponse, error) {
	slot, err := s.repo.ProposedTimeSlot().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrProposedTimeSlotNotFound
		}
		return nil, fmt.Errorf("failed to get proposed time slot: %w", err)
	}
	return models.NewProposedTimeSlotResponse(slot), nil
}

func (s *proposedTimeSlotService) GetByScheduledLessonID(ctx context.Context, scheduledLessonID uint) ([]models.ProposedTimeSlotResponse, error) {
	if _, err := s.repo.ScheduledLesson().GetByID(ctx, scheduledLessonID); err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrScheduledLessonNotFound
		}
		return nil, fmt.Errorf("failed to get scheduled lesson: %w", err)
	}

	slots, err := s.repo.ProposedTimeSlot().GetByScheduledLessonID(ctx, scheduledLessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list proposed time slots: %w", err)
	}

	out := make([]models.ProposedTimeSlotResponse, 0, len(slots))
	for i := range slots {
		out = append(out, *models.NewProposedTimeSlotResponse(&slots[i]))
	}
	return out, nil
}

func (s *proposedTimeSlotService) Update(ctx context.Context, id uint, req UpdateProposedTimeSlotRequest) (*models.ProposedTimeSlotResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	slot, err := s.repo.ProposedTimeSlot().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, ErrProposedTimeSlotNotFound
		}
		return nil, fmt.Errorf("failed to get proposed time slot: %w", err)
	}

	if req.ProposedStartTime != nil {
		slot.ProposedStartTime = *req.ProposedStartTime
	}

	if err := s.repo.ProposedTimeSlot().Update(ctx, slot); err != nil {
		return nil, fmt.Errorf("failed to update proposed time slot: %w", err)
	}
	return models.NewProposedTimeSlotResponse(slot), nil
}

func (s *proposedTimeSlotService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.ProposedTimeSlot().Delete(ctx, id); err != nil {
		if repositories.IsNotFound(err) {
			return ErrProposedTimeSlotNotFound
		}
		return fmt.Errorf("failed to delete proposed time slot: %w", err)
	}
	return nil
}
