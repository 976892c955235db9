package repositories

import (
	"context"
	"time"

	"github.com/pooya1361/makerspace/internal/models"
)

// UserRepository handles user persistence and lookup by credential email.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type WorkshopRepository interface {
	Create(ctx context.Context, workshop *models.Workshop) error
	GetByID(ctx context.Context, id uint) (*models.Workshop, error)
	GetAll(ctx context.Context) ([]models.Workshop, error)
	Update(ctx context.Context, workshop *models.Workshop) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type ActivityRepository interface {
	Create(ctx context.Context, activity *models.Activity) error
	GetByID(ctx context.Context, id uint) (*models.Activity, error)
	GetAll(ctx context.Context) ([]models.Activity, error)
	GetByWorkshopID(ctx context.Context, workshopID uint) ([]models.Activity, error)
	Update(ctx context.Context, activity *models.Activity) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type LessonRepository interface {
	Create(ctx context.Context, lesson *models.Lesson) error
	GetByID(ctx context.Context, id uint) (*models.Lesson, error)
	GetAll(ctx context.Context) ([]models.Lesson, error)
	GetByActivityID(ctx context.Context, activityID uint) ([]models.Lesson, error)
	Update(ctx context.Context, lesson *models.Lesson) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// ScheduledLessonRepository handles lesson occurrences. A scheduled lesson
// with a nil start time is still in the proposal phase.
type ScheduledLessonRepository interface {
	Create(ctx context.Context, scheduledLesson *models.ScheduledLesson) error
	GetByID(ctx context.Context, id uint) (*models.ScheduledLesson, error)
	GetAll(ctx context.Context) ([]models.ScheduledLesson, error)
	// FindUnscheduledByLessonIDs returns scheduled lessons for the given
	// lessons that have no start time yet, with proposals preloaded.
	FindUnscheduledByLessonIDs(ctx context.Context, lessonIDs []uint) ([]models.ScheduledLesson, error)
	Update(ctx context.Context, scheduledLesson *models.ScheduledLesson) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type ProposedTimeSlotRepository interface {
	Create(ctx context.Context, slot *models.ProposedTimeSlot) error
	GetByID(ctx context.Context, id uint) (*models.ProposedTimeSlot, error)
	GetAll(ctx context.Context) ([]models.ProposedTimeSlot, error)
	GetByScheduledLessonID(ctx context.Context, scheduledLessonID uint) ([]models.ProposedTimeSlot, error)
	Update(ctx context.Context, slot *models.ProposedTimeSlot) error
	Delete(ctx context.Context, id uint) error
	// ExistsRecentForScheduledLesson reports whether any proposal for the
	// scheduled lesson was created at or after the cutoff. Drives the
	// notification cooldown.
	ExistsRecentForScheduledLesson(ctx context.Context, scheduledLessonID uint, cutoff time.Time) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type VoteRepository interface {
	Create(ctx context.Context, vote *models.Vote) error
	GetByID(ctx context.Context, id uint) (*models.Vote, error)
	GetAll(ctx context.Context) ([]models.Vote, error)
	GetByTimeSlotID(ctx context.Context, timeSlotID uint) ([]models.Vote, error)
	FindByUserAndTimeSlot(ctx context.Context, userID, timeSlotID uint) (*models.Vote, error)
	Update(ctx context.Context, vote *models.Vote) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

// LessonUserRepository tracks which users are interested in which lessons
// and whether they have already acquired them.
type LessonUserRepository interface {
	Create(ctx context.Context, lessonUser *models.LessonUser) error
	GetByID(ctx context.Context, id uint) (*models.LessonUser, error)
	GetAll(ctx context.Context) ([]models.LessonUser, error)
	GetByUserID(ctx context.Context, userID uint) ([]models.LessonUser, error)
	FindByUserAndLesson(ctx context.Context, userID, lessonID uint) (*models.LessonUser, error)
	// FindInterestedUsers returns every user with an interest row for the
	// lesson, regardless of acquired status.
	FindInterestedUsers(ctx context.Context, lessonID uint) ([]models.User, error)
	Update(ctx context.Context, lessonUser *models.LessonUser) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}
