package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pooya1361/makerspace/internal/repositories"
)

// PostgreSQLRepository implements the aggregate Repository interface.
type PostgreSQLRepository struct {
	db          *gorm.DB
	redisClient *redis.Client

	user             repositories.UserRepository
	workshop         repositories.WorkshopRepository
	activity         repositories.ActivityRepository
	lesson           repositories.LessonRepository
	scheduledLesson  repositories.ScheduledLessonRepository
	proposedTimeSlot repositories.ProposedTimeSlotRepository
	vote             repositories.VoteRepository
	lessonUser       repositories.LessonUserRepository
}

// RepositoryConfig holds configuration for repository initialization.
type RepositoryConfig struct {
	DB          *gorm.DB
	RedisClient *redis.Client
}

func NewPostgreSQLRepository(config RepositoryConfig) repositories.Repository {
	repo := &PostgreSQLRepository{
		db:          config.DB,
		redisClient: config.RedisClient,
	}
	repo.bind(config.DB)
	return repo
}

// bind wires every sub-repository to the given database handle, either the
// shared connection or a transaction.
func (r *PostgreSQLRepository) bind(db *gorm.DB) {
	r.user = NewUserPostgreSQL(db)
	r.workshop = NewWorkshopPostgreSQL(db)
	r.activity = NewActivityPostgreSQL(db)
	r.lesson = NewLessonPostgreSQL(db)
	r.scheduledLesson = NewScheduledLessonPostgreSQL(db)
	r.proposedTimeSlot = NewProposedTimeSlotPostgreSQL(db)
	r.vote = NewVotePostgreSQL(db)
	r.lessonUser = NewLessonUserPostgreSQL(db)
}

func (r *PostgreSQLRepository) User() repositories.UserRepository { return r.user }

func (r *PostgreSQLRepository) Workshop() repositories.WorkshopRepository { return r.workshop }

func (r *PostgreSQLRepository) Activity() repositories.ActivityRepository { return r.activity }

func (r *PostgreSQLRepository) Lesson() repositories.LessonRepository { return r.lesson }

func (r *PostgreSQLRepository) ScheduledLesson() repositories.ScheduledLessonRepository {
	return r.scheduledLesson
}

func (r *PostgreSQLRepository) ProposedTimeSlot() repositories.ProposedTimeSlotRepository {
	return r.proposedTimeSlot
}

func (r *PostgreSQLRepository) Vote() repositories.VoteRepository { return r.vote }

func (r *PostgreSQLRepository) LessonUser() repositories.LessonUserRepository {
	return r.lessonUser
}

// WithTransaction executes fn against a repository bound to one database
// transaction. An error from fn rolls everything back.
func (r *PostgreSQLRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &PostgreSQLRepository{
			db:          tx,
			redisClient: r.redisClient,
		}
		txRepo.bind(tx)
		return fn(txRepo)
	})
}

func (r *PostgreSQLRepository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	if r.redisClient != nil {
		if err := r.redisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis ping failed: %w", err)
		}
	}
	return nil
}

func (r *PostgreSQLRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close redis: %w", err)
		}
	}
	return nil
}

// Manager implements repositories.RepositoryManager.
type Manager struct {
	config RepositoryConfig
	repo   repositories.Repository
}

func NewRepositoryManager(config RepositoryConfig) repositories.RepositoryManager {
	return &Manager{config: config}
}

func (m *Manager) Initialize() error {
	if m.config.DB == nil {
		return fmt.Errorf("database connection is required")
	}

	sqlDB, err := m.config.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}

	if m.config.RedisClient != nil {
		if err := m.config.RedisClient.Ping(ctx).Err(); err != nil {
			return fmt.Errorf("redis connection failed: %w", err)
		}
	}

	m.repo = NewPostgreSQLRepository(m.config)
	return nil
}

func (m *Manager) GetRepository() repositories.Repository {
	return m.repo
}

func (m *Manager) HealthCheck(ctx context.Context) error {
	if m.repo == nil {
		return fmt.Errorf("repository not initialized")
	}
	return m.repo.Ping(ctx)
}

func (m *Manager) Shutdown(ctx context.Context) error {
	if m.repo == nil {
		return nil
	}
	return m.repo.Close()
}
