package service

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
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
	catalogCacheKeyPrefix = "catalog:courses:"
	catalogCacheTTL       = 5 * time.Minute
)

type CourseService struct {
	CourseRepo   *repository.CourseRepository
	QuizRepo     *repository.QuizRepository
	ProgressRepo *repository.ProgressRepository
	Storage      *StorageService
	Redis        *redis.Client
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	quizRepo *repository.QuizRepository,
	progressRepo *repository.ProgressRepository,
	storage *StorageService,
	rdb *redis.Client,
) *CourseService {
	return &CourseService{
		CourseRepo:   courseRepo,
		QuizRepo:     quizRepo,
		ProgressRepo: progressRepo,
		Storage:      storage,
		Redis:        rdb,
	}
}

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the title and collapses everything non-alphanumeric
// into single dashes.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugInvalidChars.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}

type CatalogPage struct {
	List  []model.Course `json:"list"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// ListCatalog serves the public course catalog, cached per filter for a few
// minutes. Cache failures fall through to the database.
func (s *CourseService) ListCatalog(ctx context.Context, filter repository.CourseFilter) (*CatalogPage, error) {
	cacheKey := fmt.Sprintf("%s%s:%s:%s:%d:%d",
		catalogCacheKeyPrefix, filter.Category, filter.Level, filter.Search, filter.Page, filter.Limit)

	if s.Redis != nil {
		if val, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var page CatalogPage
			if json.Unmarshal([]byte(val), &page) == nil {
				return &page, nil
			}
		}
	}

	courses, total, err := s.CourseRepo.ListPublished(filter)
	if err != nil {
		return nil, err
	}

	page := &CatalogPage{
		List:  courses,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}

	if s.Redis != nil {
		if data, err := json.Marshal(page); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, data, catalogCacheTTL).Err(); err != nil {
				logger.Log.Warn("catalog cache write failed", zap.Error(err))
			}
		}
	}

	return page, nil
}

func (s *CourseService) invalidateCatalogCache(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	iter := s.Redis.Scan(ctx, 0, catalogCacheKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		s.Redis.Del(ctx, iter.Val())
	}
}

// courseFinder is the lookup slice of the course repository that idOrSlug
// resolution needs.
type courseFinder interface {
	FindByID(id string) (*model.Course, error)
	FindBySlug(slug string) (*model.Course, error)
}

// resolveCourse looks a course up by primary key first, then by slug. Every
// route mounted on an idOrSlug segment resolves through here.
func resolveCourse(repo courseFinder, idOrSlug string) (*model.Course, error) {
	course, err := repo.FindByID(idOrSlug)
	if err == gorm.ErrRecordNotFound {
		course, err = repo.FindBySlug(idOrSlug)
	}
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

// GetCourse resolves by slug or id; unpublished courses are only visible to
// instructors and admins.
func (s *CourseService) GetCourse(idOrSlug string, role model.UserRole) (*model.Course, error) {
	course, err := resolveCourse(s.CourseRepo, idOrSlug)
	if err != nil {
		return nil, err
	}

	if !course.Published && !privilegedRole(role) {
		return nil, util.ErrCourseNotPublished
	}
	return course, nil
}

type CourseRequest struct {
	Title       *string `json:"title"`
	Slug        *string `json:"slug"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
	Level       *string `json:"level"`
	Published   *bool   `json:"published"`
}

func (s *CourseService) CreateCourse(ctx context.Context, authorID uint, req CourseRequest) (*model.Course, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, errTitleRequired
	}

	course := &model.Course{
		Title:    *req.Title,
		AuthorID: authorID,
		Level:    model.LevelBeginner,
	}

	slug := Slugify(*req.Title)
	if req.Slug != nil && *req.Slug != "" {
		slug = Slugify(*req.Slug)
	}
	taken, err := s.CourseRepo.SlugExists(slug, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, util.ErrSlugTaken
	}
	course.Slug = slug

	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Category != nil {
		course.Category = *req.Category
	}
	if req.Level != nil {
		course.Level = model.CourseLevel(*req.Level)
	}
	if req.Published != nil {
		course.Published = *req.Published
	}

	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}

	s.invalidateCatalogCache(ctx)
	return course, nil
}

// authorizeCourse loads a course for mutation. Courses authored by someone
// else look like missing ones unless the caller is an admin.
func (s *CourseService) authorizeCourse(courseID string, userID uint, role model.UserRole) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if !canManage(course.AuthorID, userID, role) {
		return nil, util.ErrCourseNotFound
	}
	return course, nil
}

// authorizeModule does the same for a module via its parent course.
func (s *CourseService) authorizeModule(moduleID string, userID uint, role model.UserRole) (*model.CourseModule, error) {
	mod, err := s.CourseRepo.FindModuleByID(moduleID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}
	course, err := s.CourseRepo.FindByID(mod.CourseID)
	if err != nil {
		return nil, err
	}
	if !canManage(course.AuthorID, userID, role) {
		return nil, util.ErrModuleNotFound
	}
	return mod, nil
}

func (s *CourseService) UpdateCourse(ctx context.Context, courseID string, userID uint, role model.UserRole, req CourseRequest) (*model.Course, error) {
	course, err := s.authorizeCourse(courseID, userID, role)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != "" {
		course.Title = *req.Title
	}
	if req.Slug != nil && *req.Slug != "" {
		slug := Slugify(*req.Slug)
		taken, err := s.CourseRepo.SlugExists(slug, course.ID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, util.ErrSlugTaken
		}
		course.Slug = slug
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Category != nil {
		course.Category = *req.Category
	}
	if req.Level != nil {
		course.Level = model.CourseLevel(*req.Level)
	}
	if req.Published != nil {
		course.Published = *req.Published
	}

	if err := s.CourseRepo.Save(course); err != nil {
		return nil, err
	}

	s.invalidateCatalogCache(ctx)
	return course, nil
}

func (s *CourseService) DeleteCourse(ctx context.Context, courseID string, userID uint, role model.UserRole) error {
	if _, err := s.authorizeCourse(courseID, userID, role); err != nil {
		return err
	}
	if err := s.CourseRepo.Delete(courseID); err != nil {
		return err
	}
	s.invalidateCatalogCache(ctx)
	return nil
}

func (s *CourseService) ListByAuthor(authorID uint, page, limit int) ([]model.Course, int64, error) {
	return s.CourseRepo.ListByAuthor(authorID, page, limit)
}

type ModuleRequest struct {
	Title   *string `json:"title"`
	Order   *int    `json:"order"`
	Content *string `json:"content"`
}

func (s *CourseService) CreateModule(courseID string, userID uint, role model.UserRole, req ModuleRequest) (*model.CourseModule, error) {
	if _, err := s.authorizeCourse(courseID, userID, role); err != nil {
		return nil, err
	}
	if req.Title == nil || *req.Title == "" {
		return nil, errTitleRequired
	}

	mod := &model.CourseModule{
		CourseID: courseID,
		Title:    *req.Title,
	}
	if req.Order != nil {
		mod.Order = *req.Order
	}
	if req.Content != nil {
		mod.Content = *req.Content
	}

	if err := s.CourseRepo.CreateModule(mod); err != nil {
		return nil, err
	}
	return mod, nil
}

func (s *CourseService) UpdateModule(moduleID string, userID uint, role model.UserRole, req ModuleRequest) (*model.CourseModule, error) {
	mod, err := s.authorizeModule(moduleID, userID, role)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != "" {
		mod.Title = *req.Title
	}
	if req.Order != nil {
		mod.Order = *req.Order
	}
	if req.Content != nil {
		mod.Content = *req.Content
	}

	if err := s.CourseRepo.SaveModule(mod); err != nil {
		return nil, err
	}
	return mod, nil
}

func (s *CourseService) DeleteModule(moduleID string, userID uint, role model.UserRole) error {
	if _, err := s.authorizeModule(moduleID, userID, role); err != nil {
		return err
	}
	return s.CourseRepo.DeleteModule(moduleID)
}

// GetModule returns the module plus its published quizzes for students, or
// all quizzes for privileged roles.
func (s *CourseService) GetModule(moduleID string, role model.UserRole) (*model.CourseModule, []model.Quiz, error) {
	mod, err := s.CourseRepo.FindModuleByID(moduleID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, util.ErrModuleNotFound
		}
		return nil, nil, err
	}

	course, err := s.CourseRepo.FindByID(mod.CourseID)
	if err != nil {
		return nil, nil, err
	}
	if !course.Published && !privilegedRole(role) {
		return nil, nil, util.ErrCourseNotPublished
	}

	quizzes, err := s.QuizRepo.ListByModule(moduleID)
	if err != nil {
		return nil, nil, err
	}
	if !privilegedRole(role) {
		published := quizzes[:0]
		for _, q := range quizzes {
			if q.Published {
				published = append(published, q)
			}
		}
		quizzes = published
	}

	return mod, quizzes, nil
}

// UploadCover stores a course cover image and records its URL.
func (s *CourseService) UploadCover(ctx context.Context, courseID string, userID uint, role model.UserRole, file *multipart.FileHeader) (*model.Course, error) {
	course, err := s.authorizeCourse(courseID, userID, role)
	if err != nil {
		return nil, err
	}

	url, err := s.Storage.UploadImage(ctx, "covers", file)
	if err != nil {
		return nil, err
	}

	course.CoverImage = url
	if err := s.CourseRepo.Save(course); err != nil {
		return nil, err
	}

	s.invalidateCatalogCache(ctx)
	return course, nil
}

// UploadModuleVideo stores a lecture video and probes it for its duration.
func (s *CourseService) UploadModuleVideo(ctx context.Context, moduleID string, userID uint, role model.UserRole, file *multipart.FileHeader) (*model.CourseModule, error) {
	mod, err := s.authorizeModule(moduleID, userID, role)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := false
	for _, e := range util.AllowedVideoExtensions {
		if e == ext {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("unsupported video format: %s", ext)
	}

	url, localPath, err := s.Storage.UploadVideo(ctx, "modules", file)
	if err != nil {
		return nil, err
	}

	mod.VideoURL = url
	if localPath != "" {
		if info, err := util.GetVideoInfo(localPath); err == nil {
			mod.VideoDuration = info.Duration
		} else {
			logger.Log.Warn("video probe failed", zap.String("module", moduleID), zap.Error(err))
		}
		os.Remove(localPath)
	}

	if err := s.CourseRepo.SaveModule(mod); err != nil {
		return nil, err
	}
	return mod, nil
}
