package repository

import (
	"studyhub_backend/internal/model"

	"gorm.io/gorm"
)

type ContentRepository struct {
	DB *gorm.DB
}

func NewContentRepository(db *gorm.DB) *ContentRepository {
	return &ContentRepository{DB: db}
}

func (r *ContentRepository) CreatePost(post *model.BlogPost) error {
	return r.DB.Create(post).Error
}

func (r *ContentRepository) SavePost(post *model.BlogPost) error {
	return r.DB.Save(post).Error
}

func (r *ContentRepository) DeletePost(id string) error {
	return r.DB.Where("id = ?", id).Delete(&model.BlogPost{}).Error
}

func (r *ContentRepository) FindPostBySlug(slug string) (*model.BlogPost, error) {
	var post model.BlogPost
	err := r.DB.Where("slug = ?", slug).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *ContentRepository) FindPostByID(id string) (*model.BlogPost, error) {
	var post model.BlogPost
	err := r.DB.Where("id = ?", id).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *ContentRepository) ListPosts(publishedOnly bool, page, limit int) ([]model.BlogPost, int64, error) {
	query := r.DB.Model(&model.BlogPost{})
	if publishedOnly {
		query = query.Where("published = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []model.BlogPost
	err := query.Order("published_at DESC, created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&posts).Error
	return posts, total, err
}

func (r *ContentRepository) CreateFAQ(faq *model.FAQ) error {
	return r.DB.Create(faq).Error
}

func (r *ContentRepository) SaveFAQ(faq *model.FAQ) error {
	return r.DB.Save(faq).Error
}

func (r *ContentRepository) DeleteFAQ(id uint) error {
	return r.DB.Delete(&model.FAQ{}, id).Error
}

func (r *ContentRepository) FindFAQByID(id uint) (*model.FAQ, error) {
	var faq model.FAQ
	err := r.DB.First(&faq, id).Error
	if err != nil {
		return nil, err
	}
	return &faq, nil
}

func (r *ContentRepository) ListFAQs(publishedOnly bool) ([]model.FAQ, error) {
	query := r.DB.Model(&model.FAQ{})
	if publishedOnly {
		query = query.Where("published = ?", true)
	}
	var faqs []model.FAQ
	err := query.Order("category ASC, `order` ASC").Find(&faqs).Error
	return faqs, err
}

func (r *ContentRepository) CreateJob(job *model.JobOpening) error {
	return r.DB.Create(job).Error
}

func (r *ContentRepository) SaveJob(job *model.JobOpening) error {
	return r.DB.Save(job).Error
}

func (r *ContentRepository) DeleteJob(id uint) error {
	return r.DB.Delete(&model.JobOpening{}, id).Error
}

func (r *ContentRepository) FindJobByID(id uint) (*model.JobOpening, error) {
	var job model.JobOpening
	err := r.DB.First(&job, id).Error
	if err != nil {
		return nil, err
	}
	return &job, nil
}

func (r *ContentRepository) ListJobs(activeOnly bool) ([]model.JobOpening, error) {
	query := r.DB.Model(&model.JobOpening{})
	if activeOnly {
		query = query.Where("active = ?", true)
	}
	var jobs []model.JobOpening
	err := query.Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

func (r *ContentRepository) CreateContactMessage(msg *model.ContactMessage) error {
	return r.DB.Create(msg).Error
}

func (r *ContentRepository) ListContactMessages(unhandledOnly bool, page, limit int) ([]model.ContactMessage, int64, error) {
	query := r.DB.Model(&model.ContactMessage{})
	if unhandledOnly {
		query = query.Where("handled = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var msgs []model.ContactMessage
	err := query.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&msgs).Error
	return msgs, total, err
}

func (r *ContentRepository) MarkContactHandled(id uint) error {
	return r.DB.Model(&model.ContactMessage{}).
		Where("id = ?", id).
		Update("handled", true).Error
}
