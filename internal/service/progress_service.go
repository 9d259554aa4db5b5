package service

import (
	"math"
	"time"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"

	"gorm.io/gorm"
)

type ProgressService struct {
	CourseRepo   *repository.CourseRepository
	ProgressRepo *repository.ProgressRepository
	DB           *gorm.DB
}

func NewProgressService(courseRepo *repository.CourseRepository, progressRepo *repository.ProgressRepository, db *gorm.DB) *ProgressService {
	return &ProgressService{
		CourseRepo:   courseRepo,
		ProgressRepo: progressRepo,
		DB:           db,
	}
}

// CourseSummary is the course-level aggregate returned after every toggle.
type CourseSummary struct {
	CourseID         string `json:"courseId"`
	Progress         int    `json:"progress"` // 0-100
	TotalModules     int    `json:"totalModules"`
	CompletedModules int    `json:"completedModules"`
	IsCompleted      bool   `json:"isCompleted"`
}

// ComputeCourseProgress counts completed modules against the course's module
// id set and derives the rounded percentage. Progress rows for modules no
// longer in the course do not count, and a module counts at most once no
// matter how many rows mention it. Pure; no storage access.
func ComputeCourseProgress(moduleIDs []string, rows []model.ModuleProgress) (total, completed, percentage int) {
	idSet := make(map[string]bool, len(moduleIDs))
	for _, id := range moduleIDs {
		idSet[id] = true
	}

	for _, row := range rows {
		if row.Completed && idSet[row.ModuleID] {
			idSet[row.ModuleID] = false
			completed++
		}
	}

	total = len(moduleIDs)
	if total > 0 {
		percentage = int(math.Round(100 * float64(completed) / float64(total)))
	}
	return total, completed, percentage
}

type ToggleResult struct {
	Module model.ModuleProgress `json:"module"`
	Course CourseSummary        `json:"course"`
}

// ToggleModuleProgress flips one module's completion flag for a user, then
// re-reads every progress row for the course and recomputes the course-level
// aggregate inside the same transaction. Read-recompute-write, not an
// incremental counter.
func (s *ProgressService) ToggleModuleProgress(userID uint, role model.UserRole, moduleID string, completed bool) (*ToggleResult, error) {
	mod, err := s.CourseRepo.FindModuleByID(moduleID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	course, err := s.CourseRepo.FindByID(mod.CourseID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if !course.Published && !privilegedRole(role) {
		return nil, util.ErrCourseNotPublished
	}

	// Fresh denominator read; the preloaded Modules slice could predate a
	// concurrent module add or delete.
	moduleIDs, err := s.CourseRepo.ModuleIDsByCourse(course.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	mp := &model.ModuleProgress{
		UserID:    userID,
		ModuleID:  mod.ID,
		CourseID:  course.ID,
		Completed: completed,
	}
	if completed {
		mp.CompletedAt = &now
		// Re-completing an already complete module keeps its original stamp.
		if prev, err := s.ProgressRepo.GetModuleProgress(userID, mod.ID); err == nil && prev.Completed && prev.CompletedAt != nil {
			mp.CompletedAt = prev.CompletedAt
		}
	}

	var summary CourseSummary

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.ProgressRepo.UpsertModuleProgress(tx, mp); err != nil {
			return err
		}

		rows, err := s.ProgressRepo.ListModuleProgress(tx, userID, course.ID)
		if err != nil {
			return err
		}

		total, done, pct := ComputeCourseProgress(moduleIDs, rows)

		cp := &model.CourseProgress{
			UserID:         userID,
			CourseID:       course.ID,
			Progress:       pct,
			StartedAt:      now,
			LastAccessedAt: now,
		}
		// Completing the last module stamps the course; un-completing any
		// module afterwards clears the stamp again.
		if total > 0 && done == total {
			cp.CompletedAt = &now
		}

		if err := s.ProgressRepo.UpsertCourseProgress(tx, cp); err != nil {
			return err
		}

		summary = CourseSummary{
			CourseID:         course.ID,
			Progress:         pct,
			TotalModules:     total,
			CompletedModules: done,
			IsCompleted:      total > 0 && done == total,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ToggleResult{Module: *mp, Course: summary}, nil
}

// Enroll creates the (user, course) aggregate row on first touch; repeat
// calls only bump lastAccessedAt.
func (s *ProgressService) Enroll(userID uint, role model.UserRole, idOrSlug string) (*CourseSummary, error) {
	course, err := resolveCourse(s.CourseRepo, idOrSlug)
	if err != nil {
		return nil, err
	}

	if !course.Published && !privilegedRole(role) {
		return nil, util.ErrCourseNotPublished
	}

	summary, err := s.summarize(nil, userID, course)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	cp := &model.CourseProgress{
		UserID:         userID,
		CourseID:       course.ID,
		Progress:       summary.Progress,
		StartedAt:      now,
		LastAccessedAt: now,
	}
	if summary.IsCompleted {
		cp.CompletedAt = &now
	}
	if err := s.ProgressRepo.UpsertCourseProgress(nil, cp); err != nil {
		return nil, err
	}

	return summary, nil
}

func (s *ProgressService) summarize(tx *gorm.DB, userID uint, course *model.Course) (*CourseSummary, error) {
	rows, err := s.ProgressRepo.ListModuleProgress(tx, userID, course.ID)
	if err != nil {
		return nil, err
	}

	moduleIDs := make([]string, 0, len(course.Modules))
	for _, m := range course.Modules {
		moduleIDs = append(moduleIDs, m.ID)
	}

	total, done, pct := ComputeCourseProgress(moduleIDs, rows)
	return &CourseSummary{
		CourseID:         course.ID,
		Progress:         pct,
		TotalModules:     total,
		CompletedModules: done,
		IsCompleted:      total > 0 && done == total,
	}, nil
}

// CourseProgressDetail pairs the stored aggregate with the per-module rows.
type CourseProgressDetail struct {
	Course    CourseSummary          `json:"course"`
	StartedAt *time.Time             `json:"startedAt"`
	Modules   []model.ModuleProgress `json:"modules"`
}

func (s *ProgressService) GetCourseProgress(userID uint, idOrSlug string) (*CourseProgressDetail, error) {
	course, err := resolveCourse(s.CourseRepo, idOrSlug)
	if err != nil {
		return nil, err
	}

	cp, err := s.ProgressRepo.GetCourseProgress(userID, course.ID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrNotEnrolled
		}
		return nil, err
	}

	summary, err := s.summarize(nil, userID, course)
	if err != nil {
		return nil, err
	}

	rows, err := s.ProgressRepo.ListModuleProgress(nil, userID, course.ID)
	if err != nil {
		return nil, err
	}

	return &CourseProgressDetail{
		Course:    *summary,
		StartedAt: &cp.StartedAt,
		Modules:   rows,
	}, nil
}

func (s *ProgressService) ListEnrollments(userID uint) ([]model.CourseProgress, error) {
	return s.ProgressRepo.ListCourseProgressByUser(userID)
}
