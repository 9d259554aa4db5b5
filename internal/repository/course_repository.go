package repository

import (
	"studyhub_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

// CourseFilter narrows the public catalog listing.
type CourseFilter struct {
	Category string
	Level    model.CourseLevel
	Search   string
	Page     int
	Limit    int
}

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) Save(course *model.Course) error {
	return r.DB.Save(course).Error
}

func (r *CourseRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", id).Delete(&model.CourseModule{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Course{}).Error
	})
}

func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Modules", func(db *gorm.DB) *gorm.DB {
		return db.Order("course_modules.`order` ASC")
	}).Where("id = ?", id).First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) FindBySlug(slug string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Modules", func(db *gorm.DB) *gorm.DB {
		return db.Order("course_modules.`order` ASC")
	}).Where("slug = ?", slug).First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) SlugExists(slug, excludeID string) (bool, error) {
	var count int64
	query := r.DB.Model(&model.Course{}).Where("slug = ?", slug)
	if excludeID != "" {
		query = query.Where("id != ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

func (r *CourseRepository) ListPublished(filter CourseFilter) ([]model.Course, int64, error) {
	query := r.DB.Model(&model.Course{}).Where("published = ?", true)

	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Level != "" {
		query = query.Where("level = ?", filter.Level)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []model.Course
	err := query.Order("created_at DESC").
		Offset((filter.Page - 1) * filter.Limit).
		Limit(filter.Limit).
		Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) ListByAuthor(authorID uint, page, limit int) ([]model.Course, int64, error) {
	query := r.DB.Model(&model.Course{}).Where("author_id = ?", authorID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []model.Course
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) CreateModule(mod *model.CourseModule) error {
	return r.DB.Create(mod).Error
}

func (r *CourseRepository) SaveModule(mod *model.CourseModule) error {
	return r.DB.Save(mod).Error
}

func (r *CourseRepository) DeleteModule(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.CourseModule{}).Error
}

func (r *CourseRepository) FindModuleByID(id string) (*model.CourseModule, error) {
	var mod model.CourseModule
	err := r.DB.Where("id = ?", id).First(&mod).Error
	if err != nil {
		return nil, err
	}
	return &mod, nil
}

// ModuleIDsByCourse returns the full module id set of a course; the progress
// aggregator treats this set as the denominator.
func (r *CourseRepository) ModuleIDsByCourse(courseID string) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.CourseModule{}).
		Where("course_id = ?", courseID).
		Pluck("id", &ids).Error
	return ids, err
}
