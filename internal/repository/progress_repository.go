package repository

import (
	"studyhub_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) GetModuleProgress(userID uint, moduleID string) (*model.ModuleProgress, error) {
	var mp model.ModuleProgress
	err := r.DB.Where("user_id = ? AND module_id = ?", userID, moduleID).First(&mp).Error
	if err != nil {
		return nil, err
	}
	return &mp, nil
}

// ListModuleProgress returns all of a user's per-module rows for one course.
// The aggregator recomputes the course percentage from this full read rather
// than keeping an incremental counter.
func (r *ProgressRepository) ListModuleProgress(tx *gorm.DB, userID uint, courseID string) ([]model.ModuleProgress, error) {
	if tx == nil {
		tx = r.DB
	}
	var rows []model.ModuleProgress
	err := tx.Where("user_id = ? AND course_id = ?", userID, courseID).Find(&rows).Error
	return rows, err
}

// UpsertModuleProgress creates or updates the (user, module) row. Concurrent
// toggles for the same pair resolve through the unique composite index.
func (r *ProgressRepository) UpsertModuleProgress(tx *gorm.DB, mp *model.ModuleProgress) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "module_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"completed", "completed_at", "updated_at"}),
	}).Create(mp).Error
}

func (r *ProgressRepository) GetCourseProgress(userID uint, courseID string) (*model.CourseProgress, error) {
	var cp model.CourseProgress
	err := r.DB.Where("user_id = ? AND course_id = ?", userID, courseID).First(&cp).Error
	if err != nil {
		return nil, err
	}
	return &cp, nil
}

func (r *ProgressRepository) UpsertCourseProgress(tx *gorm.DB, cp *model.CourseProgress) error {
	if tx == nil {
		tx = r.DB
	}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"progress", "completed_at", "last_accessed_at", "updated_at"}),
	}).Create(cp).Error
}

func (r *ProgressRepository) ListCourseProgressByUser(userID uint) ([]model.CourseProgress, error) {
	var rows []model.CourseProgress
	err := r.DB.Where("user_id = ?", userID).
		Order("last_accessed_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *ProgressRepository) CountCompletedCourses(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.CourseProgress{}).
		Where("user_id = ? AND completed_at IS NOT NULL", userID).
		Count(&count).Error
	return count, err
}
