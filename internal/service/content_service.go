package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"
	"studyhub_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	blogCacheKeyPrefix = "content:blog:"
	faqCacheKey        = "content:faqs"
	contentCacheTTL    = 10 * time.Minute
)

type ContentService struct {
	ContentRepo *repository.ContentRepository
	EmailSvc    *EmailService
	Redis       *redis.Client
}

func NewContentService(contentRepo *repository.ContentRepository, emailSvc *EmailService, rdb *redis.Client) *ContentService {
	return &ContentService{
		ContentRepo: contentRepo,
		EmailSvc:    emailSvc,
		Redis:       rdb,
	}
}

type BlogPage struct {
	Posts []model.BlogPost `json:"posts"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// ListPublishedPosts serves the public blog index, cached per page.
func (s *ContentService) ListPublishedPosts(ctx context.Context, page, limit int) (*BlogPage, error) {
	cacheKey := fmt.Sprintf("%s%d:%d", blogCacheKeyPrefix, page, limit)

	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var cached BlogPage
			if json.Unmarshal([]byte(val), &cached) == nil {
				return &cached, nil
			}
		}
	}

	posts, total, err := s.ContentRepo.ListPosts(true, page, limit)
	if err != nil {
		return nil, err
	}
	result := &BlogPage{Posts: posts, Total: total, Page: page, Limit: limit}

	if s.Redis != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, data, contentCacheTTL).Err(); err != nil {
				logger.Log.Warn("blog cache write failed", zap.Error(err))
			}
		}
	}

	return result, nil
}

func (s *ContentService) invalidateBlogCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	iter := s.Redis.Scan(ctx, 0, blogCacheKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		s.Redis.Del(ctx, iter.Val())
	}
}

// GetPost serves a single published post by slug. Admins use ListAllPosts
// and GetPostByID instead, which do not filter on published.
func (s *ContentService) GetPost(slug string) (*model.BlogPost, error) {
	post, err := s.ContentRepo.FindPostBySlug(slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPostNotFound
		}
		return nil, err
	}
	if !post.Published {
		return nil, util.ErrPostNotFound
	}
	return post, nil
}

func (s *ContentService) ListAllPosts(page, limit int) (*BlogPage, error) {
	posts, total, err := s.ContentRepo.ListPosts(false, page, limit)
	if err != nil {
		return nil, err
	}
	return &BlogPage{Posts: posts, Total: total, Page: page, Limit: limit}, nil
}

func (s *ContentService) GetPostByID(id string) (*model.BlogPost, error) {
	post, err := s.ContentRepo.FindPostByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

type BlogPostRequest struct {
	Title      *string `json:"title"`
	Slug       *string `json:"slug"`
	Excerpt    *string `json:"excerpt"`
	Body       *string `json:"body"`
	CoverImage *string `json:"coverImage"`
	AuthorName *string `json:"authorName"`
	Published  *bool   `json:"published"`
}

func (s *ContentService) applyPostRequest(post *model.BlogPost, req BlogPostRequest) {
	if req.Title != nil && *req.Title != "" {
		post.Title = *req.Title
	}
	if req.Excerpt != nil {
		post.Excerpt = *req.Excerpt
	}
	if req.Body != nil {
		post.Body = *req.Body
	}
	if req.CoverImage != nil {
		post.CoverImage = *req.CoverImage
	}
	if req.AuthorName != nil {
		post.AuthorName = *req.AuthorName
	}
	if req.Published != nil && *req.Published != post.Published {
		post.Published = *req.Published
		if post.Published {
			now := time.Now()
			post.PublishedAt = &now
		} else {
			post.PublishedAt = nil
		}
	}
}

func (s *ContentService) CreatePost(ctx context.Context, req BlogPostRequest) (*model.BlogPost, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, errTitleRequired
	}

	post := &model.BlogPost{}
	s.applyPostRequest(post, req)

	slug := Slugify(*req.Title)
	if req.Slug != nil && *req.Slug != "" {
		slug = Slugify(*req.Slug)
	}
	if _, err := s.ContentRepo.FindPostBySlug(slug); err == nil {
		return nil, util.ErrSlugTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	post.Slug = slug

	if err := s.ContentRepo.CreatePost(post); err != nil {
		return nil, err
	}
	s.invalidateBlogCache(ctx)
	return post, nil
}

func (s *ContentService) UpdatePost(ctx context.Context, id string, req BlogPostRequest) (*model.BlogPost, error) {
	post, err := s.GetPostByID(id)
	if err != nil {
		return nil, err
	}

	if req.Slug != nil && *req.Slug != "" {
		slug := Slugify(*req.Slug)
		if slug != post.Slug {
			if existing, err := s.ContentRepo.FindPostBySlug(slug); err == nil && existing.ID != post.ID {
				return nil, util.ErrSlugTaken
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			post.Slug = slug
		}
	}
	s.applyPostRequest(post, req)

	if err := s.ContentRepo.SavePost(post); err != nil {
		return nil, err
	}
	s.invalidateBlogCache(ctx)
	return post, nil
}

func (s *ContentService) DeletePost(ctx context.Context, id string) error {
	if _, err := s.GetPostByID(id); err != nil {
		return err
	}
	if err := s.ContentRepo.DeletePost(id); err != nil {
		return err
	}
	s.invalidateBlogCache(ctx)
	return nil
}

// ListFAQs serves published FAQ entries, cached as a single blob since the
// list is small and changes rarely.
func (s *ContentService) ListFAQs(ctx context.Context) ([]model.FAQ, error) {
	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, faqCacheKey).Result(); err == nil {
			var cached []model.FAQ
			if json.Unmarshal([]byte(val), &cached) == nil {
				return cached, nil
			}
		}
	}

	faqs, err := s.ContentRepo.ListFAQs(true)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(faqs); err == nil {
			if err := s.Redis.Set(ctx, faqCacheKey, data, contentCacheTTL).Err(); err != nil {
				logger.Log.Warn("faq cache write failed", zap.Error(err))
			}
		}
	}

	return faqs, nil
}

func (s *ContentService) invalidateFAQCache(ctx context.Context) {
	if s.Redis != nil {
		s.Redis.Del(ctx, faqCacheKey)
	}
}

func (s *ContentService) ListAllFAQs() ([]model.FAQ, error) {
	return s.ContentRepo.ListFAQs(false)
}

type FAQRequest struct {
	Question  *string `json:"question"`
	Answer    *string `json:"answer"`
	Category  *string `json:"category"`
	Order     *int    `json:"order"`
	Published *bool   `json:"published"`
}

func (s *ContentService) applyFAQRequest(faq *model.FAQ, req FAQRequest) {
	if req.Question != nil && *req.Question != "" {
		faq.Question = *req.Question
	}
	if req.Answer != nil && *req.Answer != "" {
		faq.Answer = *req.Answer
	}
	if req.Category != nil {
		faq.Category = *req.Category
	}
	if req.Order != nil {
		faq.Order = *req.Order
	}
	if req.Published != nil {
		faq.Published = *req.Published
	}
}

func (s *ContentService) CreateFAQ(ctx context.Context, req FAQRequest) (*model.FAQ, error) {
	if req.Question == nil || *req.Question == "" || req.Answer == nil || *req.Answer == "" {
		return nil, errors.New("question and answer are required")
	}
	faq := &model.FAQ{}
	s.applyFAQRequest(faq, req)
	if err := s.ContentRepo.CreateFAQ(faq); err != nil {
		return nil, err
	}
	s.invalidateFAQCache(ctx)
	return faq, nil
}

func (s *ContentService) UpdateFAQ(ctx context.Context, id uint, req FAQRequest) (*model.FAQ, error) {
	faq, err := s.ContentRepo.FindFAQByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrFAQNotFound
		}
		return nil, err
	}
	s.applyFAQRequest(faq, req)
	if err := s.ContentRepo.SaveFAQ(faq); err != nil {
		return nil, err
	}
	s.invalidateFAQCache(ctx)
	return faq, nil
}

func (s *ContentService) DeleteFAQ(ctx context.Context, id uint) error {
	if _, err := s.ContentRepo.FindFAQByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrFAQNotFound
		}
		return err
	}
	if err := s.ContentRepo.DeleteFAQ(id); err != nil {
		return err
	}
	s.invalidateFAQCache(ctx)
	return nil
}

func (s *ContentService) ListJobs(activeOnly bool) ([]model.JobOpening, error) {
	return s.ContentRepo.ListJobs(activeOnly)
}

type JobRequest struct {
	Title       *string `json:"title"`
	Department  *string `json:"department"`
	Location    *string `json:"location"`
	Type        *string `json:"type"`
	Description *string `json:"description"`
	Active      *bool   `json:"active"`
}

func (s *ContentService) applyJobRequest(job *model.JobOpening, req JobRequest) {
	if req.Title != nil && *req.Title != "" {
		job.Title = *req.Title
	}
	if req.Department != nil {
		job.Department = *req.Department
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.Type != nil && *req.Type != "" {
		job.Type = *req.Type
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Active != nil {
		job.Active = *req.Active
	}
}

func (s *ContentService) CreateJob(req JobRequest) (*model.JobOpening, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, errTitleRequired
	}
	job := &model.JobOpening{}
	s.applyJobRequest(job, req)
	if err := s.ContentRepo.CreateJob(job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *ContentService) UpdateJob(id uint, req JobRequest) (*model.JobOpening, error) {
	job, err := s.ContentRepo.FindJobByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrJobNotFound
		}
		return nil, err
	}
	s.applyJobRequest(job, req)
	if err := s.ContentRepo.SaveJob(job); err != nil {
		return nil, err
	}
	return job, nil
}

func (s *ContentService) DeleteJob(id uint) error {
	if _, err := s.ContentRepo.FindJobByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrJobNotFound
		}
		return err
	}
	return s.ContentRepo.DeleteJob(id)
}

type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject"`
	Body    string `json:"body" binding:"required"`
}

// SubmitContact records a contact-form message and notifies the support
// inbox in the background.
func (s *ContentService) SubmitContact(req ContactRequest) (*model.ContactMessage, error) {
	msg := &model.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Body:    req.Body,
	}
	if err := s.ContentRepo.CreateContactMessage(msg); err != nil {
		return nil, err
	}

	go s.EmailSvc.SendContactNotification(msg.Name, msg.Email, msg.Subject, msg.Body)
	return msg, nil
}

type ContactPage struct {
	Messages []model.ContactMessage `json:"messages"`
	Total    int64                  `json:"total"`
	Page     int                    `json:"page"`
	Limit    int                    `json:"limit"`
}

func (s *ContentService) ListContactMessages(unhandledOnly bool, page, limit int) (*ContactPage, error) {
	msgs, total, err := s.ContentRepo.ListContactMessages(unhandledOnly, page, limit)
	if err != nil {
		return nil, err
	}
	return &ContactPage{Messages: msgs, Total: total, Page: page, Limit: limit}, nil
}

func (s *ContentService) MarkContactHandled(id uint) error {
	return s.ContentRepo.MarkContactHandled(id)
}
