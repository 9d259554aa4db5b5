package service

import (
	"math"
	"testing"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/util"
)

func question(id string, correct model.AnswerOption, points int) model.Question {
	q := model.Question{
		Text:          "q-" + id,
		CorrectAnswer: correct,
		Points:        points,
	}
	q.ID = id
	return q
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestGrade(t *testing.T) {
	questions := []model.Question{
		question("q1", model.OptionA, 1),
		question("q2", model.OptionB, 2),
	}

	tests := []struct {
		name         string
		questions    []model.Question
		answers      map[string]string
		wantEarned   int
		wantTotal    int
		wantScore    float64
	}{
		{
			name:       "all correct scores 100",
			questions:  questions,
			answers:    map[string]string{"q1": "A", "q2": "B"},
			wantEarned: 3,
			wantTotal:  3,
			wantScore:  100,
		},
		{
			name:       "empty submission scores 0",
			questions:  questions,
			answers:    map[string]string{},
			wantEarned: 0,
			wantTotal:  3,
			wantScore:  0,
		},
		{
			name:       "partial credit is point weighted",
			questions:  questions,
			answers:    map[string]string{"q1": "A", "q2": "C"},
			wantEarned: 1,
			wantTotal:  3,
			wantScore:  100.0 / 3.0,
		},
		{
			name:       "answers for foreign questions are ignored",
			questions:  questions,
			answers:    map[string]string{"q1": "A", "q2": "B", "other": "D"},
			wantEarned: 3,
			wantTotal:  3,
			wantScore:  100,
		},
		{
			name:       "no questions scores 0 not NaN",
			questions:  nil,
			answers:    map[string]string{"q1": "A"},
			wantEarned: 0,
			wantTotal:  0,
			wantScore:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Grade(tt.questions, tt.answers)
			if got.EarnedPoints != tt.wantEarned {
				t.Errorf("EarnedPoints = %d, want %d", got.EarnedPoints, tt.wantEarned)
			}
			if got.TotalPoints != tt.wantTotal {
				t.Errorf("TotalPoints = %d, want %d", got.TotalPoints, tt.wantTotal)
			}
			if !almostEqual(got.Score, tt.wantScore) {
				t.Errorf("Score = %f, want %f", got.Score, tt.wantScore)
			}
			if len(got.Results) != len(tt.questions) {
				t.Errorf("len(Results) = %d, want %d", len(got.Results), len(tt.questions))
			}
		})
	}
}

func TestGradePerQuestionResults(t *testing.T) {
	questions := []model.Question{
		question("q1", model.OptionA, 1),
		question("q2", model.OptionB, 2),
	}
	got := Grade(questions, map[string]string{"q1": "A", "q2": "C"})

	first := got.Results[0]
	if !first.IsCorrect || first.PointsAwarded != 1 || first.UserAnswer != "A" {
		t.Errorf("first result = %+v, want correct with 1 point", first)
	}

	second := got.Results[1]
	if second.IsCorrect {
		t.Error("second result marked correct, want incorrect")
	}
	if second.PointsAwarded != 0 {
		t.Errorf("second PointsAwarded = %d, want 0", second.PointsAwarded)
	}
	if second.CorrectAnswer != "B" {
		t.Errorf("second CorrectAnswer = %q, want %q", second.CorrectAnswer, "B")
	}
}

func TestGradeUnansweredQuestionIsIncorrect(t *testing.T) {
	questions := []model.Question{question("q1", model.OptionD, 5)}
	got := Grade(questions, map[string]string{})

	if got.Results[0].UserAnswer != "" {
		t.Errorf("UserAnswer = %q, want empty", got.Results[0].UserAnswer)
	}
	if got.Results[0].IsCorrect {
		t.Error("unanswered question marked correct")
	}
	if got.EarnedPoints != 0 {
		t.Errorf("EarnedPoints = %d, want 0", got.EarnedPoints)
	}
}

func TestGradeIsDeterministic(t *testing.T) {
	questions := []model.Question{
		question("q1", model.OptionA, 1),
		question("q2", model.OptionB, 2),
		question("q3", model.OptionC, 3),
	}
	answers := map[string]string{"q1": "A", "q2": "D", "q3": "C"}

	first := Grade(questions, answers)
	for i := 0; i < 10; i++ {
		again := Grade(questions, answers)
		if again.EarnedPoints != first.EarnedPoints ||
			again.TotalPoints != first.TotalPoints ||
			!almostEqual(again.Score, first.Score) {
			t.Fatalf("run %d diverged: %+v vs %+v", i, again, first)
		}
	}
}

func TestPassed(t *testing.T) {
	tests := []struct {
		name         string
		score        float64
		passingScore int
		want         bool
	}{
		{"well above threshold", 90, 70, true},
		{"exactly at threshold passes", 70, 70, true},
		{"just below threshold fails", 69.99, 70, false},
		{"zero threshold always passes", 0, 0, true},
		{"perfect score at 100 threshold", 100, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Passed(tt.score, tt.passingScore); got != tt.want {
				t.Errorf("Passed(%f, %d) = %v, want %v", tt.score, tt.passingScore, got, tt.want)
			}
		})
	}
}

func TestValidatePublishable(t *testing.T) {
	tests := []struct {
		name          string
		published     bool
		questionCount int
		wantErr       error
	}{
		{"publishing with no questions is rejected", true, 0, util.ErrQuizHasNoQuestions},
		{"draft without questions is fine", false, 0, nil},
		{"publishing with questions is fine", true, 3, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := validatePublishable(tt.published, tt.questionCount); err != tt.wantErr {
				t.Errorf("validatePublishable(%v, %d) = %v, want %v", tt.published, tt.questionCount, err, tt.wantErr)
			}
		})
	}
}
