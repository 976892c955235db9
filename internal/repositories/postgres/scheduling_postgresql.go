package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/pooya1361/makerspace/internal/models"
	"github.com/pooya1361/makerspace/internal/repositories"
)

// ===== SCHEDULED LESSON =====

type scheduledLessonRepository struct {
	db *gorm.DB
}

func NewScheduledLessonPostgreSQL(db *gorm.DB) repositories.ScheduledLessonRepository {
	return &scheduledLessonRepository{db: db}
}

func (r *scheduledLessonRepository) Create(ctx context.Context, scheduledLesson *models.ScheduledLesson) error {
	if err := r.db.WithContext(ctx).Create(scheduledLesson).Error; err != nil {
		return handleDBError(err, "create scheduled lesson")
	}
	return nil
}

func (r *scheduledLessonRepository) GetByID(ctx context.Context, id uint) (*models.ScheduledLesson, error) {
	var scheduledLesson models.ScheduledLesson
	if err := r.db.WithContext(ctx).
		Preload("Lesson").
		Preload("Instructor").
		Preload("ProposedTimeSlots").
		Preload("ProposedTimeSlots.Votes").
		First(&scheduledLesson, id).Error; err != nil {
		return nil, handleDBError(err, "get scheduled lesson by id")
	}
	return &scheduledLesson, nil
}

func (r *scheduledLessonRepository) GetAll(ctx context.Context) ([]models.ScheduledLesson, error) {
	var scheduledLessons []models.ScheduledLesson
	if err := r.db.WithContext(ctx).
		Preload("Lesson").
		Preload("Instructor").
		Preload("ProposedTimeSlots").
		Order("id").
		Find(&scheduledLessons).Error; err != nil {
		return nil, handleDBError(err, "list scheduled lessons")
	}
	return scheduledLessons, nil
}

func (r *scheduledLessonRepository) FindUnscheduledByLessonIDs(ctx context.Context, lessonIDs []uint) ([]models.ScheduledLesson, error) {
	if len(lessonIDs) == 0 {
		return nil, nil
	}

	var scheduledLessons []models.ScheduledLesson
	if err := r.db.WithContext(ctx).
		Preload("Lesson").
		Preload("ProposedTimeSlots").
		Where("lesson_id IN ? AND start_time IS NULL", lessonIDs).
		Find(&scheduledLessons).Error; err != nil {
		return nil, handleDBError(err, "list unscheduled lessons")
	}
	return scheduledLessons, nil
}

func (r *scheduledLessonRepository) Update(ctx context.Context, scheduledLesson *models.ScheduledLesson) error {
	if err := r.db.WithContext(ctx).Save(scheduledLesson).Error; err != nil {
		return handleDBError(err, "update scheduled lesson")
	}
	return nil
}

func (r *scheduledLessonRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.ScheduledLesson{}, id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete scheduled lesson")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete scheduled lesson")
	}
	return nil
}

func (r *scheduledLessonRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ScheduledLesson{}).Count(&count).Error; err != nil {
		return 0, handleDBError(err, "count scheduled lessons")
	}
	return count, nil
}

// ===== PROPOSED TIME SLOT =====

type proposedTimeSlotRepository struct {
	db *gorm.DB
}

func NewProposedTimeSlotPostgreSQL(db *gorm.DB) repositories.ProposedTimeSlotRepository {
	return &proposedTimeSlotRepository{db: db}
}

func (r *proposedTimeSlotRepository) Create(ctx context.Context, slot *models.ProposedTimeSlot) error {
	if err := r.db.WithContext(ctx).Create(slot).Error; err != nil {
		return handleDBError(err, "create proposed time slot")
	}
	return nil
}

func (r *proposedTimeSlotRepository) GetByID(ctx context.Context, id uint) (*models.ProposedTimeSlot, error) {
	var slot models.ProposedTimeSlot
	if err := r.db.WithContext(ctx).
		Preload("ScheduledLesson").
		Preload("Votes").
		Preload("Votes.User").
		First(&slot, id).Error; err != nil {
		return nil, handleDBError(err, "get proposed time slot by id")
	}
	return &slot, nil
}

func (r *proposedTimeSlotRepository) GetAll(ctx context.Context) ([]models.ProposedTimeSlot, error) {
	var slots []models.ProposedTimeSlot
	if err := r.db.WithContext(ctx).
		Preload("Votes").
		Order("id").
		Find(&slots).Error; err != nil {
		return nil, handleDBError(err, "list proposed time slots")
	}
	return slots, nil
}

func (r *proposedTimeSlotRepository) GetByScheduledLessonID(ctx context.Context, scheduledLessonID uint) ([]models.ProposedTimeSlot, error) {
	var slots []models.ProposedTimeSlot
	if err := r.db.WithContext(ctx).
		Preload("Votes").
		Where("scheduled_lesson_id = ?", scheduledLessonID).
		Order("proposed_start_time").
		Find(&slots).Error; err != nil {
		return nil, handleDBError(err, "list proposed time slots by scheduled lesson")
	}
	return slots, nil
}

func (r *proposedTimeSlotRepository) Update(ctx context.Context, slot *models.ProposedTimeSlot) error {
	if err := r.db.WithContext(ctx).Save(slot).Error; err != nil {
		return handleDBError(err, "update proposed time slot")
	}
	return nil
}

func (r *proposedTimeSlotRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.ProposedTimeSlot{}, id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete proposed time slot")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete proposed time slot")
	}
	return nil
}

func (r *proposedTimeSlotRepository) ExistsRecentForScheduledLesson(ctx context.Context, scheduledLessonID uint, cutoff time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.ProposedTimeSlot{}).
		Where("scheduled_lesson_id = ? AND created_at >= ?", scheduledLessonID, cutoff).
		Count(&count).Error
	if err != nil {
		return false, handleDBError(err, "check recent proposed time slots")
	}
	return count > 0, nil
}

func (r *proposedTimeSlotRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.ProposedTimeSlot{}).Count(&count).Error; err != nil {
		return 0, handleDBError(err, "count proposed time slots")
	}
	return count, nil
}

// ===== VOTE =====

type voteRepository struct {
	db *gorm.DB
}

func NewVotePostgreSQL(db *gorm.DB) repositories.VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) Create(ctx context.Context, vote *models.Vote) error {
	if err := r.db.WithContext(ctx).Create(vote).Error; err != nil {
		return handleDBError(err, "create vote")
	}
	return nil
}

func (r *voteRepository) GetByID(ctx context.Context, id uint) (*models.Vote, error) {
	var vote models.Vote
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("ProposedTimeSlot").
		First(&vote, id).Error; err != nil {
		return nil, handleDBError(err, "get vote by id")
	}
	return &vote, nil
}

func (r *voteRepository) GetAll(ctx context.Context) ([]models.Vote, error) {
	var votes []models.Vote
	if err := r.db.WithContext(ctx).
		Preload("User").
		Order("id").
		Find(&votes).Error; err != nil {
		return nil, handleDBError(err, "list votes")
	}
	return votes, nil
}

func (r *voteRepository) GetByTimeSlotID(ctx context.Context, timeSlotID uint) ([]models.Vote, error) {
	var votes []models.Vote
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("time_slot_id = ?", timeSlotID).
		Order("id").
		Find(&votes).Error; err != nil {
		return nil, handleDBError(err, "list votes by time slot")
	}
	return votes, nil
}

func (r *voteRepository) FindByUserAndTimeSlot(ctx context.Context, userID, timeSlotID uint) (*models.Vote, error) {
	var vote models.Vote
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND time_slot_id = ?", userID, timeSlotID).
		First(&vote).Error; err != nil {
		return nil, handleDBError(err, "find vote by user and time slot")
	}
	return &vote, nil
}

func (r *voteRepository) Update(ctx context.Context, vote *models.Vote) error {
	if err := r.db.WithContext(ctx).Save(vote).Error; err != nil {
		return handleDBError(err, "update vote")
	}
	return nil
}

func (r *voteRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Vote{}, id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete vote")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete vote")
	}
	return nil
}

func (r *voteRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Vote{}).Count(&count).Error; err != nil {
		return 0, handleDBError(err, "count votes")
	}
	return count, nil
}

// ===== LESSON USER =====

type lessonUserRepository struct {
	db *gorm.DB
}

func NewLessonUserPostgreSQL(db *gorm.DB) repositories.LessonUserRepository {
	return &lessonUserRepository{db: db}
}

func (r *lessonUserRepository) Create(ctx context.Context, lessonUser *models.LessonUser) error {
	if err := r.db.WithContext(ctx).Create(lessonUser).Error; err != nil {
		return handleDBError(err, "create lesson user")
	}
	return nil
}

func (r *lessonUserRepository) GetByID(ctx context.Context, id uint) (*models.LessonUser, error) {
	var lessonUser models.LessonUser
	if err := r.db.WithContext(ctx).
		Preload("Lesson").
		Preload("User").
		First(&lessonUser, id).Error; err != nil {
		return nil, handleDBError(err, "get lesson user by id")
	}
	return &lessonUser, nil
}

func (r *lessonUserRepository) GetAll(ctx context.Context) ([]models.LessonUser, error) {
	var lessonUsers []models.LessonUser
	if err := r.db.WithContext(ctx).
		Preload("Lesson").
		Preload("User").
		Order("id").
		Find(&lessonUsers).Error; err != nil {
		return nil, handleDBError(err, "list lesson users")
	}
	return lessonUsers, nil
}

func (r *lessonUserRepository) GetByUserID(ctx context.Context, userID uint) ([]models.LessonUser, error) {
	var lessonUsers []models.LessonUser
	if err := r.db.WithContext(ctx).
		Preload("Lesson").
		Where("user_id = ?", userID).
		Order("id").
		Find(&lessonUsers).Error; err != nil {
		return nil, handleDBError(err, "list lesson users by user")
	}
	return lessonUsers, nil
}

func (r *lessonUserRepository) FindByUserAndLesson(ctx context.Context, userID, lessonID uint) (*models.LessonUser, error) {
	var lessonUser models.LessonUser
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&lessonUser).Error; err != nil {
		return nil, handleDBError(err, "find lesson user by user and lesson")
	}
	return &lessonUser, nil
}

func (r *lessonUserRepository) FindInterestedUsers(ctx context.Context, lessonID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("INNER JOIN lesson_users lu ON lu.user_id = users.id").
		Where("lu.lesson_id = ?", lessonID).
		Find(&users).Error
	if err != nil {
		return nil, handleDBError(err, "list interested users")
	}
	return users, nil
}

func (r *lessonUserRepository) Update(ctx context.Context, lessonUser *models.LessonUser) error {
	if err := r.db.WithContext(ctx).Save(lessonUser).Error; err != nil {
		return handleDBError(err, "update lesson user")
	}
	return nil
}

func (r *lessonUserRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.LessonUser{}, id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete lesson user")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete lesson user")
	}
	return nil
}

func (r *lessonUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.LessonUser{}).Count(&count).Error; err != nil {
		return 0, handleDBError(err, "count lesson users")
	}
	return count, nil
}
