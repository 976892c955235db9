package repositories

import "context"

// Repository aggregates all entity repositories behind one handle so
// services can take a single dependency and share transactions.
type Repository interface {
	User() UserRepository
	Workshop() WorkshopRepository
	Activity() ActivityRepository
	Lesson() LessonRepository
	ScheduledLesson() ScheduledLessonRepository
	ProposedTimeSlot() ProposedTimeSlotRepository
	Vote() VoteRepository
	LessonUser() LessonUserRepository

	// WithTransaction runs fn with a Repository bound to a single
	// database transaction. fn returning an error rolls back.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

// RepositoryManager owns repository lifecycle: connect, health, shutdown.
type RepositoryManager interface {
	Initialize() error
	GetRepository() Repository
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
