package repository

import (
	"time"

	"studyhub_backend/internal/model"

	"gorm.io/gorm"
)

type TaskRepository struct {
	DB *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

// TaskFilter is the typed query surface for task listings; every field is
// optional.
type TaskFilter struct {
	Status    model.TaskStatus
	Priority  model.TaskPriority
	SubjectID *uint
	DueBefore *time.Time
	DueAfter  *time.Time
	Search    string
	SortBy    string // due_date, priority, created_at
	Page      int
	Limit     int
}

func (r *TaskRepository) Create(task *model.Task) error {
	return r.DB.Create(task).Error
}

func (r *TaskRepository) FindByIDForUser(id, userID uint) (*model.Task, error) {
	var task model.Task
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *TaskRepository) ListByUser(userID uint, filter TaskFilter) ([]model.Task, int64, error) {
	query := r.DB.Model(&model.Task{}).Where("user_id = ?", userID)

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.SubjectID != nil {
		query = query.Where("subject_id = ?", *filter.SubjectID)
	}
	if filter.DueBefore != nil {
		query = query.Where("due_date <= ?", *filter.DueBefore)
	}
	if filter.DueAfter != nil {
		query = query.Where("due_date >= ?", *filter.DueAfter)
	}
	if filter.Search != "" {
		query = query.Where("title LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch filter.SortBy {
	case "due_date":
		query = query.Order("due_date IS NULL, due_date ASC")
	case "priority":
		query = query.Order("FIELD(priority, 'high', 'medium', 'low')")
	default:
		query = query.Order("created_at DESC")
	}

	if filter.Limit > 0 {
		query = query.Offset((filter.Page - 1) * filter.Limit).Limit(filter.Limit)
	}

	var tasks []model.Task
	err := query.Find(&tasks).Error
	return tasks, total, err
}

func (r *TaskRepository) Save(task *model.Task) error {
	return r.DB.Save(task).Error
}

func (r *TaskRepository) Delete(id, userID uint) error {
	return r.DB.Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Task{}).Error
}

func (r *TaskRepository) CountByStatus(userID uint) (map[model.TaskStatus]int64, error) {
	type row struct {
		Status model.TaskStatus
		Count  int64
	}
	var rows []row
	err := r.DB.Model(&model.Task{}).
		Select("status, COUNT(*) as count").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[model.TaskStatus]int64, len(rows))
	for _, rw := range rows {
		counts[rw.Status] = rw.Count
	}
	return counts, nil
}

func (r *TaskRepository) CountDueToday(userID uint) (int64, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var count int64
	err := r.DB.Model(&model.Task{}).
		Where("user_id = ? AND status != ? AND due_date >= ? AND due_date < ?",
			userID, model.TaskDone, dayStart, dayEnd).
		Count(&count).Error
	return count, err
}

func (r *TaskRepository) CountBySubject(userID uint) (map[uint]int64, error) {
	type row struct {
		SubjectID *uint
		Count     int64
	}
	var rows []row
	err := r.DB.Model(&model.Task{}).
		Select("subject_id, COUNT(*) as count").
		Where("user_id = ? AND subject_id IS NOT NULL", userID).
		Group("subject_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, rw := range rows {
		if rw.SubjectID != nil {
			counts[*rw.SubjectID] = rw.Count
		}
	}
	return counts, nil
}
