package model

import "time"

// ModuleProgress tracks one user's completion flag for one module.
// Upserted on the (user, module) composite key.
// swagger:model ModuleProgress
type ModuleProgress struct {
	BaseModel
	UserID      uint       `gorm:"uniqueIndex:idx_user_module;not null" json:"userId"`
	ModuleID    string     `gorm:"type:varchar(36);uniqueIndex:idx_user_module;not null" json:"moduleId"`
	CourseID    string     `gorm:"type:varchar(36);index;not null" json:"courseId"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completedAt"`
}

func (ModuleProgress) TableName() string {
	return "module_progress"
}

// CourseProgress is the per (user, course) aggregate, recomputed from
// ModuleProgress rows whenever any of them changes.
// swagger:model CourseProgress
type CourseProgress struct {
	BaseModel
	UserID         uint       `gorm:"uniqueIndex:idx_user_course;not null" json:"userId"`
	CourseID       string     `gorm:"type:varchar(36);uniqueIndex:idx_user_course;not null" json:"courseId"`
	Progress       int        `gorm:"default:0" json:"progress"` // 0-100
	StartedAt      time.Time  `json:"startedAt"`
	CompletedAt    *time.Time `json:"completedAt"`
	LastAccessedAt time.Time  `json:"lastAccessedAt"`
}

func (CourseProgress) TableName() string {
	return "course_progress"
}
