package model

import "time"

// QuestionResult is the per-question breakdown stored alongside an attempt.
type QuestionResult struct {
	QuestionID    string `json:"questionId"`
	UserAnswer    string `json:"userAnswer"`
	CorrectAnswer string `json:"correctAnswer"`
	IsCorrect     bool   `json:"isCorrect"`
	PointsAwarded int    `json:"pointsAwarded"`
	Explanation   string `json:"explanation,omitempty"`
}

// QuizAttempt is one user's single graded submission of answers to a quiz.
// Attempts are append-only: a row is written once at submission and never
// updated. The passed/failed verdict is intentionally not a column; it is
// recomputed from Score against the quiz's current passing score on read.
// swagger:model QuizAttempt
type QuizAttempt struct {
	UUIDBase
	UserID       uint              `gorm:"index:idx_attempt_user_quiz;not null" json:"userId"`
	QuizID       string            `gorm:"type:varchar(36);index:idx_attempt_user_quiz;not null" json:"quizId"`
	Quiz         *Quiz             `gorm:"foreignKey:QuizID" json:"-"`
	Answers      map[string]string `gorm:"serializer:json" json:"answers"`
	Results      []QuestionResult  `gorm:"serializer:json" json:"results"`
	EarnedPoints int               `gorm:"not null" json:"earnedPoints"`
	TotalPoints  int               `gorm:"not null" json:"totalPoints"`
	Score        float64           `gorm:"not null" json:"score"` // percentage
	TimeTaken    int               `gorm:"default:0" json:"timeTaken"` // seconds
	StartedAt    *time.Time        `json:"startedAt"`
	CompletedAt  time.Time         `json:"completedAt"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
