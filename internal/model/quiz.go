package model

// AnswerOption is one of the four option tags a question carries.
type AnswerOption string

const (
	OptionA AnswerOption = "A"
	OptionB AnswerOption = "B"
	OptionC AnswerOption = "C"
	OptionD AnswerOption = "D"
)

func ValidAnswerOption(tag string) bool {
	switch AnswerOption(tag) {
	case OptionA, OptionB, OptionC, OptionD:
		return true
	}
	return false
}

// swagger:model Quiz
type Quiz struct {
	UUIDBase
	ModuleID     *string    `gorm:"type:varchar(36);index" json:"moduleId"`
	Title        string     `gorm:"size:255;not null" json:"title"`
	Description  string     `gorm:"type:text" json:"description"`
	PassingScore int        `gorm:"default:70" json:"passingScore"` // percentage
	TimeLimit    int        `gorm:"default:0" json:"timeLimit"`     // minutes, 0 = unlimited
	Published    bool       `gorm:"default:false;index" json:"published"`
	AuthorID     uint       `gorm:"index" json:"authorId"`
	Questions    []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// swagger:model Question
type Question struct {
	UUIDBase
	QuizID        string       `gorm:"type:varchar(36);index;not null" json:"quizId"`
	Text          string       `gorm:"type:text;not null" json:"text"`
	OptionA       string       `gorm:"size:500" json:"optionA"`
	OptionB       string       `gorm:"size:500" json:"optionB"`
	OptionC       string       `gorm:"size:500" json:"optionC"`
	OptionD       string       `gorm:"size:500" json:"optionD"`
	CorrectAnswer AnswerOption `gorm:"type:enum('A','B','C','D');not null" json:"correctAnswer"`
	Points        int          `gorm:"default:1" json:"points"`
	Explanation   string       `gorm:"type:text" json:"explanation"`
	Order         int          `gorm:"default:0" json:"order"`
}

func (Question) TableName() string {
	return "questions"
}
