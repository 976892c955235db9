package services

import (
	"context"
	"time"

	"github.com/pooya1361/makerspace/internal/models"
)

// ===== REQUEST DTOs =====

type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	FirstName string `json:"first_name" validate:"omitempty,max=100"`
	LastName  string `json:"last_name" validate:"omitempty,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateUserRequest struct {
	Email     string          `json:"email" validate:"required,email"`
	Password  string          `json:"password" validate:"required,min=8,max=72"`
	FirstName string          `json:"first_name" validate:"omitempty,max=100"`
	LastName  string          `json:"last_name" validate:"omitempty,max=100"`
	UserType  models.UserType `json:"user_type" validate:"omitempty,oneof=NORMAL INSTRUCTOR ADMIN SUPERADMIN"`
}

type UpdateUserRequest struct {
	Email     *string          `json:"email" validate:"omitempty,email"`
	Password  *string          `json:"password" validate:"omitempty,min=8,max=72"`
	FirstName *string          `json:"first_name" validate:"omitempty,max=100"`
	LastName  *string          `json:"last_name" validate:"omitempty,max=100"`
	UserType  *models.UserType `json:"user_type" validate:"omitempty,oneof=NORMAL INSTRUCTOR ADMIN SUPERADMIN"`
}

type CreateWorkshopRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	Size        float64 `json:"size" validate:"omitempty,min=0"`
}

type UpdateWorkshopRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=1000"`
	Size        *float64 `json:"size" validate:"omitempty,min=0"`
}

type CreateActivityRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	WorkshopID  *uint   `json:"workshop_id"`
}

type UpdateActivityRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	WorkshopID  *uint   `json:"workshop_id"`
}

type CreateLessonRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	ActivityID  *uint   `json:"activity_id"`
}

type UpdateLessonRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=1000"`
	ActivityID  *uint   `json:"activity_id"`
}

type CreateScheduledLessonRequest struct {
	StartTime         *time.Time `json:"start_time"`
	DurationInMinutes int64      `json:"duration_in_minutes" validate:"required,min=1"`
	LessonID          uint       `json:"lesson_id" validate:"required"`
	InstructorID      *uint      `json:"instructor_id"`
}

type UpdateScheduledLessonRequest struct {
	StartTime         *time.Time `json:"start_time"`
	DurationInMinutes *int64     `json:"duration_in_minutes" validate:"omitempty,min=1"`
	LessonID          *uint      `json:"lesson_id"`
	InstructorID      *uint      `json:"instructor_id"`
}

type CreateProposedTimeSlotRequest struct {
	ProposedStartTime time.Time `json:"proposed_start_time" validate:"required"`
	ScheduledLessonID uint      `json:"scheduled_lesson_id" validate:"required"`
}

type UpdateProposedTimeSlotRequest struct {
	ProposedStartTime *time.Time `json:"proposed_start_time"`
}

type CreateVoteRequest struct {
	ProposedTimeSlotID uint `json:"proposed_time_slot_id" validate:"required"`
}

type UpdateVoteRequest struct {
	ProposedTimeSlotID *uint `json:"proposed_time_slot_id" validate:"omitempty,min=1"`
}

type CreateLessonUserRequest struct {
	LessonID uint `json:"lesson_id" validate:"required"`
	UserID   uint `json:"user_id" validate:"required"`
	Acquired bool `json:"acquired"`
}

type UpdateLessonUserRequest struct {
	Acquired *bool `json:"acquired"`
}

// ===== SERVICE INTERFACES =====

type UserService interface {
	Register(ctx context.Context, req RegisterRequest) (*models.UserResponse, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	Create(ctx context.Context, req CreateUserRequest) (*models.UserResponse, error)
	GetAll(ctx context.Context) ([]models.UserResponse, error)
	GetByID(ctx context.Context, id uint) (*models.UserResponse, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id uint, req UpdateUserRequest) (*models.UserResponse, error)
	Delete(ctx context.Context, id uint) error
}

type WorkshopService interface {
	Create(ctx context.Context, req CreateWorkshopRequest) (*models.WorkshopResponse, error)
	GetAll(ctx context.Context) ([]models.WorkshopResponse, error)
	GetByID(ctx context.Context, id uint) (*models.WorkshopResponse, error)
	Update(ctx context.Context, id uint, req UpdateWorkshopRequest) (*models.WorkshopResponse, error)
	Delete(ctx context.Context, id uint) error
}

type ActivityService interface {
	Create(ctx context.Context, req CreateActivityRequest) (*models.ActivityResponse, error)
	GetAll(ctx context.Context) ([]models.ActivityResponse, error)
	GetByID(ctx context.Context, id uint) (*models.ActivityResponse, error)
	Update(ctx context.Context, id uint, req UpdateActivityRequest) (*models.ActivityResponse, error)
	Delete(ctx context.Context, id uint) error
}

type LessonService interface {
	Create(ctx context.Context, req CreateLessonRequest) (*models.LessonResponse, error)
	GetAll(ctx context.Context) ([]models.LessonResponse, error)
	GetByID(ctx context.Context, id uint) (*models.LessonResponse, error)
	Update(ctx context.Context, id uint, req UpdateLessonRequest) (*models.LessonResponse, error)
	Delete(ctx context.Context, id uint) error
}

type ScheduledLessonService interface {
	Create(ctx context.Context, req CreateScheduledLessonRequest) (*models.ScheduledLessonResponse, error)
	GetAll(ctx context.Context) ([]models.ScheduledLessonResponse, error)
	GetByID(ctx context.Context, id uint) (*models.ScheduledLessonResponse, error)
	Update(ctx context.Context, id uint, req UpdateScheduledLessonRequest) (*models.ScheduledLessonResponse, error)
	Delete(ctx context.Context, id uint) error
}

// ProposedTimeSlotService owns the proposal lifecycle, including the
// debounced interested-user notification on create.
type ProposedTimeSlotService interface {
	Create(ctx context.Context, req CreateProposedTimeSlotRequest) (*models.ProposedTimeSlotResponse, error)
	GetAll(ctx context.Context) ([]models.ProposedTimeSlotResponse, error)
	GetByID(ctx context.Context, id uint) (*models.ProposedTimeSlotResponse, error)
	GetByScheduledLessonID(ctx context.Context, scheduledLessonID uint) ([]models.ProposedTimeSlotResponse, error)
	Update(ctx context.Context, id uint, req UpdateProposedTimeSlotRequest) (*models.ProposedTimeSlotResponse, error)
	Delete(ctx context.Context, id uint) error
}

type VoteService interface {
	Create(ctx context.Context, userID uint, req CreateVoteRequest) (*models.VoteResponse, error)
	GetAll(ctx context.Context) ([]models.VoteResponse, error)
	GetByID(ctx context.Context, id uint) (*models.VoteResponse, error)
	GetByTimeSlotID(ctx context.Context, timeSlotID uint) ([]models.VoteResponse, error)
	Update(ctx context.Context, id uint, req UpdateVoteRequest) (*models.VoteResponse, error)
	Delete(ctx context.Context, id uint) error
}

type LessonUserService interface {
	Create(ctx context.Context, req CreateLessonUserRequest) (*models.LessonUserResponse, error)
	GetAll(ctx context.Context) ([]models.LessonUserResponse, error)
	GetByID(ctx context.Context, id uint) (*models.LessonUserResponse, error)
	GetByUserID(ctx context.Context, userID uint) ([]models.LessonUserResponse, error)
	Update(ctx context.Context, id uint, req UpdateLessonUserRequest) (*models.LessonUserResponse, error)
	Delete(ctx context.Context, id uint) error
}

type SummaryService interface {
	GetSummary(ctx context.Context) (*models.SummaryResponse, error)
	// GetAvailableLessons returns unscheduled lessons among the user's
	// un-acquired interests that have at least one proposal, sorted by the
	// earliest proposed start time.
	GetAvailableLessons(ctx context.Context, userID uint) ([]models.ScheduledLessonResponse, error)
}

// ServiceManager bundles all services behind one dependency for the
// handler layer.
type ServiceManager interface {
	User() UserService
	Workshop() WorkshopService
	Activity() ActivityService
	Lesson() LessonService
	ScheduledLesson() ScheduledLessonService
	ProposedTimeSlot() ProposedTimeSlotService
	Vote() VoteService
	LessonUser() LessonUserService
	Summary() SummaryService

	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
