package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/pooya1361/makerspace/internal/models"
	"github.com/pooya1361/makerspace/internal/repositories"
)

// ===== WORKSHOP =====

type workshopRepository struct {
	db *gorm.DB
}

func NewWorkshopPostgreSQL(db *gorm.DB) repositories.WorkshopRepository {
	return &workshopRepository{db: db}
}

func (r *workshopRepository) Create(ctx context.Context, workshop *models.Workshop) error {
	if err := r.db.WithContext(ctx).Create(workshop).Error; err != nil {
		return handleDBError(err, "create workshop")
	}
	return nil
}

func (r *workshopRepository) GetByID(ctx context.Context, id uint) (*models.Workshop, error) {
	var workshop models.Workshop
	if err := r.db.WithContext(ctx).
		Preload("Activities").
		First(&workshop, id).Error; err != nil {
		return nil, handleDBError(err, "get workshop by id")
	}
	return &workshop, nil
}

func (r *workshopRepository) GetAll(ctx context.Context) ([]models.Workshop, error) {
	var workshops []models.Workshop
	if err := r.db.WithContext(ctx).
		Preload("Activities").
		Order("id").
		Find(&workshops).Error; err != nil {
		return nil, handleDBError(err, "list workshops")
	}
	return workshops, nil
}

func (r *workshopRepository) Update(ctx context.Context, workshop *models.Workshop) error {
	if err := r.db.WithContext(ctx).Save(workshop).Error; err != nil {
		return handleDBError(err, "update workshop")
	}
	return nil
}

func (r *workshopRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Workshop{}, id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete workshop")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete workshop")
	}
	return nil
}

func (r *workshopRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Workshop{}).Count(&count).Error; err != nil {
		return 0, handleDBError(err, "count workshops")
	}
	return count, nil
}

// ===== ACTIVITY =====

type activityRepository struct {
	db *gorm.DB
}

func NewActivityPostgreSQL(db *gorm.DB) repositories.ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) Create(ctx context.Context, activity *models.Activity) error {
	if err := r.db.WithContext(ctx).Create(activity).Error; err != nil {
		return handleDBError(err, "create activity")
	}
	return nil
}

func (r *activityRepository) GetByID(ctx context.Context, id uint) (*models.Activity, error) {
	var activity models.Activity
	if err := r.db.WithContext(ctx).
		Preload("Lessons").
		First(&activity, id).Error; err != nil {
		return nil, handleDBError(err, "get activity by id")
	}
	return &activity, nil
}

func (r *activityRepository) GetAll(ctx context.Context) ([]models.Activity, error) {
	var activities []models.Activity
	if err := r.db.WithContext(ctx).
		Preload("Lessons").
		Order("id").
		Find(&activities).Error; err != nil {
		return nil, handleDBError(err, "list activities")
	}
	return activities, nil
}

func (r *activityRepository) GetByWorkshopID(ctx context.Context, workshopID uint) ([]models.Activity, error) {
	var activities []models.Activity
	if err := r.db.WithContext(ctx).
		Where("workshop_id = ?", workshopID).
		Order("id").
		Find(&activities).Error; err != nil {
		return nil, handleDBError(err, "list activities by workshop")
	}
	return activities, nil
}

func (r *activityRepository) Update(ctx context.Context, activity *models.Activity) error {
	if err := r.db.WithContext(ctx).Save(activity).Error; err != nil {
		return handleDBError(err, "update activity")
	}
	return nil
}

func (r *activityRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Activity{}, id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete activity")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete activity")
	}
	return nil
}

func (r *activityRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Activity{}).Count(&count).Error; err != nil {
		return 0, handleDBError(err, "count activities")
	}
	return count, nil
}

// ===== LESSON =====

type lessonRepository struct {
	db *gorm.DB
}

func NewLessonPostgreSQL(db *gorm.DB) repositories.LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) Create(ctx context.Context, lesson *models.Lesson) error {
	if err := r.db.WithContext(ctx).Create(lesson).Error; err != nil {
		return handleDBError(err, "create lesson")
	}
	return nil
}

func (r *lessonRepository) GetByID(ctx context.Context, id uint) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := r.db.WithContext(ctx).First(&lesson, id).Error; err != nil {
		return nil, handleDBError(err, "get lesson by id")
	}
	return &lesson, nil
}

func (r *lessonRepository) GetAll(ctx context.Context) ([]models.Lesson, error) {
	var lessons []models.Lesson
	if err := r.db.WithContext(ctx).Order("id").Find(&lessons).Error; err != nil {
		return nil, handleDBError(err, "list lessons")
	}
	return lessons, nil
}

func (r *lessonRepository) GetByActivityID(ctx context.Context, activityID uint) ([]models.Lesson, error) {
	var lessons []models.Lesson
	if err := r.db.WithContext(ctx).
		Where("activity_id = ?", activityID).
		Order("id").
		Find(&lessons).Error; err != nil {
		return nil, handleDBError(err, "list lessons by activity")
	}
	return lessons, nil
}

func (r *lessonRepository) Update(ctx context.Context, lesson *models.Lesson) error {
	if err := r.db.WithContext(ctx).Save(lesson).Error; err != nil {
		return handleDBError(err, "update lesson")
	}
	return nil
}

func (r *lessonRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Lesson{}, id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete lesson")
	}
	if result.RowsAffected == 0 {
		return handleDBError(gorm.ErrRecordNotFound, "delete lesson")
	}
	return nil
}

func (r *lessonRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Lesson{}).Count(&count).Error; err != nil {
		return 0, handleDBError(err, "count lessons")
	}
	return count, nil
}
