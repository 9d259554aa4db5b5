package model

type CourseLevel string

const (
	LevelBeginner     CourseLevel = "beginner"
	LevelIntermediate CourseLevel = "intermediate"
	LevelAdvanced     CourseLevel = "advanced"
)

// swagger:model Course
type Course struct {
	UUIDBase
	Title       string         `gorm:"size:255;not null" json:"title"`
	Slug        string         `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description string         `gorm:"type:text" json:"description"`
	Category    string         `gorm:"size:100;index" json:"category"`
	Level       CourseLevel    `gorm:"type:enum('beginner','intermediate','advanced');default:'beginner'" json:"level"`
	CoverImage  string         `gorm:"size:255" json:"coverImage"`
	Published   bool           `gorm:"default:false;index" json:"published"`
	AuthorID    uint           `gorm:"index" json:"authorId"`
	Modules     []CourseModule `gorm:"foreignKey:CourseID" json:"modules,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseModule is an ordered sub-unit of a course with independent
// completion tracking.
// swagger:model CourseModule
type CourseModule struct {
	UUIDBase
	CourseID      string  `gorm:"type:varchar(36);index;not null" json:"courseId"`
	Title         string  `gorm:"size:255;not null" json:"title"`
	Order         int     `gorm:"default:0" json:"order"`
	Content       string  `gorm:"type:text" json:"content"`
	VideoURL      string  `gorm:"size:255" json:"videoUrl"`
	VideoDuration float64 `gorm:"default:0" json:"videoDuration"` // seconds
}

func (CourseModule) TableName() string {
	return "course_modules"
}
