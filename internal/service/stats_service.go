package service

import (
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
)

type StatsService struct {
	TaskRepo     *repository.TaskRepository
	SubjectRepo  *repository.SubjectRepository
	AttemptRepo  *repository.AttemptRepository
	ProgressRepo *repository.ProgressRepository
}

func NewStatsService(
	taskRepo *repository.TaskRepository,
	subjectRepo *repository.SubjectRepository,
	attemptRepo *repository.AttemptRepository,
	progressRepo *repository.ProgressRepository,
) *StatsService {
	return &StatsService{
		TaskRepo:     taskRepo,
		SubjectRepo:  subjectRepo,
		AttemptRepo:  attemptRepo,
		ProgressRepo: progressRepo,
	}
}

type SubjectTaskCount struct {
	SubjectID   uint   `json:"subjectId"`
	SubjectName string `json:"subjectName"`
	Color       string `json:"color"`
	TaskCount   int64  `json:"taskCount"`
}

type TaskStats struct {
	Todo       int64 `json:"todo"`
	InProgress int64 `json:"inProgress"`
	Done       int64 `json:"done"`
	DueToday   int64 `json:"dueToday"`
}

type QuizStats struct {
	TotalAttempts int64   `json:"totalAttempts"`
	AverageScore  float64 `json:"averageScore"`
}

type CourseStats struct {
	Enrolled  int   `json:"enrolled"`
	Completed int64 `json:"completed"`
}

// Dashboard aggregates the numbers shown on the student home screen.
type Dashboard struct {
	Tasks      TaskStats          `json:"tasks"`
	BySubject  []SubjectTaskCount `json:"bySubject"`
	Quizzes    QuizStats          `json:"quizzes"`
	Courses    CourseStats        `json:"courses"`
	Continuing []CourseSummary    `json:"continuing"`
}

func (s *StatsService) GetDashboard(userID uint) (*Dashboard, error) {
	statusCounts, err := s.TaskRepo.CountByStatus(userID)
	if err != nil {
		return nil, err
	}
	dueToday, err := s.TaskRepo.CountDueToday(userID)
	if err != nil {
		return nil, err
	}

	bySubject, err := s.countsBySubject(userID)
	if err != nil {
		return nil, err
	}

	attempts, err := s.AttemptRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	avgScore := 0.0
	if attempts > 0 {
		avgScore, err = s.AttemptRepo.AverageScore(userID)
		if err != nil {
			return nil, err
		}
	}

	enrollments, err := s.ProgressRepo.ListCourseProgressByUser(userID)
	if err != nil {
		return nil, err
	}
	completedCourses, err := s.ProgressRepo.CountCompletedCourses(userID)
	if err != nil {
		return nil, err
	}

	// Up to three in-flight courses, most recently touched first. The
	// repository already orders by last_accessed_at.
	var continuing []CourseSummary
	for _, cp := range enrollments {
		if cp.CompletedAt != nil {
			continue
		}
		continuing = append(continuing, CourseSummary{
			CourseID:    cp.CourseID,
			Progress:    cp.Progress,
			IsCompleted: false,
		})
		if len(continuing) == 3 {
			break
		}
	}

	return &Dashboard{
		Tasks: TaskStats{
			Todo:       statusCounts[model.TaskTodo],
			InProgress: statusCounts[model.TaskInProgress],
			Done:       statusCounts[model.TaskDone],
			DueToday:   dueToday,
		},
		BySubject: bySubject,
		Quizzes: QuizStats{
			TotalAttempts: attempts,
			AverageScore:  avgScore,
		},
		Courses: CourseStats{
			Enrolled:  len(enrollments),
			Completed: completedCourses,
		},
		Continuing: continuing,
	}, nil
}

func (s *StatsService) countsBySubject(userID uint) ([]SubjectTaskCount, error) {
	counts, err := s.TaskRepo.CountBySubject(userID)
	if err != nil {
		return nil, err
	}
	subjects, err := s.SubjectRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}

	out := make([]SubjectTaskCount, 0, len(subjects))
	for _, subject := range subjects {
		out = append(out, SubjectTaskCount{
			SubjectID:   subject.ID,
			SubjectName: subject.Name,
			Color:       subject.Color,
			TaskCount:   counts[subject.ID],
		})
	}
	return out, nil
}
