package service

import (
	"errors"
	"time"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"

	"gorm.io/gorm"
)

var errNameRequired = errors.New("name is required")

type TaskService struct {
	TaskRepo    *repository.TaskRepository
	SubjectRepo *repository.SubjectRepository
}

func NewTaskService(taskRepo *repository.TaskRepository, subjectRepo *repository.SubjectRepository) *TaskService {
	return &TaskService{
		TaskRepo:    taskRepo,
		SubjectRepo: subjectRepo,
	}
}

type TaskRequest struct {
	Title            *string    `json:"title"`
	Notes            *string    `json:"notes"`
	SubjectID        *uint      `json:"subjectId"`
	Status           *string    `json:"status"`
	Priority         *string    `json:"priority"`
	DueDate          *time.Time `json:"dueDate"`
	EstimatedMinutes *int       `json:"estimatedMinutes"`
}

func validTaskStatus(s string) bool {
	switch model.TaskStatus(s) {
	case model.TaskTodo, model.TaskInProgress, model.TaskDone:
		return true
	}
	return false
}

func validTaskPriority(p string) bool {
	switch model.TaskPriority(p) {
	case model.PriorityLow, model.PriorityMedium, model.PriorityHigh:
		return true
	}
	return false
}

func (s *TaskService) Create(userID uint, req TaskRequest) (*model.Task, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, errTitleRequired
	}

	task := &model.Task{
		UserID:   userID,
		Title:    *req.Title,
		Status:   model.TaskTodo,
		Priority: model.PriorityMedium,
	}

	if err := s.applyRequest(task, userID, req); err != nil {
		return nil, err
	}

	if err := s.TaskRepo.Create(task); err != nil {
		return nil, err
	}
	return task, nil
}

// applyRequest copies the optional fields onto the task, validating the
// enums and subject ownership.
func (s *TaskService) applyRequest(task *model.Task, userID uint, req TaskRequest) error {
	if req.Title != nil && *req.Title != "" {
		task.Title = *req.Title
	}
	if req.Notes != nil {
		task.Notes = *req.Notes
	}
	if req.SubjectID != nil {
		if *req.SubjectID == 0 {
			task.SubjectID = nil
		} else {
			if _, err := s.SubjectRepo.FindByIDForUser(*req.SubjectID, userID); err != nil {
				if err == gorm.ErrRecordNotFound {
					return util.ErrSubjectNotFound
				}
				return err
			}
			task.SubjectID = req.SubjectID
		}
	}
	if req.Status != nil {
		if !validTaskStatus(*req.Status) {
			return errInvalidTaskStatus
		}
		s.setStatus(task, model.TaskStatus(*req.Status))
	}
	if req.Priority != nil {
		if !validTaskPriority(*req.Priority) {
			return errInvalidTaskPriority
		}
		task.Priority = model.TaskPriority(*req.Priority)
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}
	if req.EstimatedMinutes != nil {
		task.EstimatedMinutes = *req.EstimatedMinutes
	}
	return nil
}

func (s *TaskService) setStatus(task *model.Task, status model.TaskStatus) {
	task.Status = status
	if status == model.TaskDone {
		if task.CompletedAt == nil {
			now := time.Now()
			task.CompletedAt = &now
		}
	} else {
		task.CompletedAt = nil
	}
}

var (
	errInvalidTaskStatus   = errors.New("status must be todo, in_progress or done")
	errInvalidTaskPriority = errors.New("priority must be low, medium or high")
)

func (s *TaskService) List(userID uint, filter repository.TaskFilter) ([]model.Task, int64, error) {
	return s.TaskRepo.ListByUser(userID, filter)
}

func (s *TaskService) Get(id, userID uint) (*model.Task, error) {
	task, err := s.TaskRepo.FindByIDForUser(id, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Update(id, userID uint, req TaskRequest) (*model.Task, error) {
	task, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	if err := s.applyRequest(task, userID, req); err != nil {
		return nil, err
	}

	if err := s.TaskRepo.Save(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) UpdateStatus(id, userID uint, status string) (*model.Task, error) {
	if !validTaskStatus(status) {
		return nil, errInvalidTaskStatus
	}

	task, err := s.Get(id, userID)
	if err != nil {
		return nil, err
	}

	s.setStatus(task, model.TaskStatus(status))

	if err := s.TaskRepo.Save(task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(id, userID uint) error {
	if _, err := s.Get(id, userID); err != nil {
		return err
	}
	return s.TaskRepo.Delete(id, userID)
}
