package model

import "time"

type TaskStatus string

const (
	TaskTodo       TaskStatus = "todo"
	TaskInProgress TaskStatus = "in_progress"
	TaskDone       TaskStatus = "done"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// swagger:model Task
type Task struct {
	BaseModel
	UserID           uint         `gorm:"index;not null" json:"userId"`
	SubjectID        *uint        `gorm:"index" json:"subjectId"`
	Title            string       `gorm:"size:255;not null" json:"title"`
	Notes            string       `gorm:"type:text" json:"notes"`
	Status           TaskStatus   `gorm:"type:enum('todo','in_progress','done');default:'todo'" json:"status"`
	Priority         TaskPriority `gorm:"type:enum('low','medium','high');default:'medium'" json:"priority"`
	DueDate          *time.Time   `json:"dueDate"`
	EstimatedMinutes int          `gorm:"default:0" json:"estimatedMinutes"`
	CompletedAt      *time.Time   `json:"completedAt"`
}

func (Task) TableName() string {
	return "tasks"
}
