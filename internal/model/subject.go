package model

// Subject is a per-user planner category used to group study tasks.
// swagger:model Subject
type Subject struct {
	BaseModel
	UserID uint   `gorm:"index;not null" json:"userId"`
	Name   string `gorm:"size:100;not null" json:"name"`
	Color  string `gorm:"size:20;default:'#6366f1'" json:"color"`
	Order  int    `gorm:"default:0" json:"order"`
	Tasks  []Task `gorm:"foreignKey:SubjectID" json:"tasks,omitempty"`
}

func (Subject) TableName() string {
	return "subjects"
}
