package repository

import (
	"studyhub_backend/internal/model"

	"gorm.io/gorm"
)

type SubjectRepository struct {
	DB *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *SubjectRepository {
	return &SubjectRepository{DB: db}
}

func (r *SubjectRepository) Create(subject *model.Subject) error {
	return r.DB.Create(subject).Error
}

// FindByIDForUser scopes the lookup to the owner so one user can never read
// another user's planner rows.
func (r *SubjectRepository) FindByIDForUser(id, userID uint) (*model.Subject, error) {
	var subject model.Subject
	err := r.DB.Where("id = ? AND user_id = ?", id, userID).First(&subject).Error
	if err != nil {
		return nil, err
	}
	return &subject, nil
}

func (r *SubjectRepository) ListByUser(userID uint) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.DB.Where("user_id = ?", userID).
		Order("`order` ASC, created_at ASC").
		Find(&subjects).Error
	return subjects, err
}

func (r *SubjectRepository) Save(subject *model.Subject) error {
	return r.DB.Save(subject).Error
}

func (r *SubjectRepository) Delete(id, userID uint) error {
	// Detach tasks first so they survive as uncategorized.
	err := r.DB.Model(&model.Task{}).
		Where("subject_id = ? AND user_id = ?", id, userID).
		Update("subject_id", nil).Error
	if err != nil {
		return err
	}
	return r.DB.Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.Subject{}).Error
}
