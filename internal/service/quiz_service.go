package service

import (
	"errors"
	"time"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/util"
	"studyhub_backend/pkg/monitoring"

	"gorm.io/gorm"
)

var errTitleRequired = errors.New("title is required")

type QuizService struct {
	QuizRepo    *repository.QuizRepository
	AttemptRepo *repository.AttemptRepository
	DB          *gorm.DB
}

func NewQuizService(quizRepo *repository.QuizRepository, attemptRepo *repository.AttemptRepository, db *gorm.DB) *QuizService {
	return &QuizService{
		QuizRepo:    quizRepo,
		AttemptRepo: attemptRepo,
		DB:          db,
	}
}

// GradeResult is the outcome of grading one submission against one quiz.
type GradeResult struct {
	EarnedPoints int                    `json:"earnedPoints"`
	TotalPoints  int                    `json:"totalPoints"`
	Score        float64                `json:"score"`
	Results      []model.QuestionResult `json:"results"`
}

// Grade scores a submission against the quiz's question set. It is a pure
// function: no storage access, identical inputs always produce identical
// output. Only the quiz's own questions are iterated, so answer keys that do
// not belong to the quiz are ignored. A question with no submitted answer
// grades as incorrect.
func Grade(questions []model.Question, answers map[string]string) GradeResult {
	result := GradeResult{
		Results: make([]model.QuestionResult, 0, len(questions)),
	}

	for _, q := range questions {
		result.TotalPoints += q.Points

		submitted := answers[q.ID] // "" when unanswered
		isCorrect := submitted == string(q.CorrectAnswer)

		awarded := 0
		if isCorrect {
			awarded = q.Points
			result.EarnedPoints += awarded
		}

		result.Results = append(result.Results, model.QuestionResult{
			QuestionID:    q.ID,
			UserAnswer:    submitted,
			CorrectAnswer: string(q.CorrectAnswer),
			IsCorrect:     isCorrect,
			PointsAwarded: awarded,
			Explanation:   q.Explanation,
		})
	}

	if result.TotalPoints > 0 {
		result.Score = 100 * float64(result.EarnedPoints) / float64(result.TotalPoints)
	}

	return result
}

// Passed reports whether a score meets the passing threshold. Boundary
// equality passes.
func Passed(score float64, passingScore int) bool {
	return score >= float64(passingScore)
}

type SubmitAttemptRequest struct {
	Answers   map[string]string `json:"answers" binding:"required"`
	TimeTaken int               `json:"timeTaken"`
	StartedAt *time.Time        `json:"startedAt"`
}

// AttemptView is an attempt plus its passed verdict, which is derived from
// the quiz's current passing score on every read rather than stored.
type AttemptView struct {
	model.QuizAttempt
	Passed       bool `json:"passed"`
	PassingScore int  `json:"passingScore"`
}

func privilegedRole(role model.UserRole) bool {
	return role == model.Instructor || role == model.Admin
}

// canManage reports whether a caller may mutate an authored resource. Admins
// manage everything; everyone else only their own.
func canManage(authorID, userID uint, role model.UserRole) bool {
	return role == model.Admin || authorID == userID
}

// SubmitAttempt grades the submission and appends a new attempt record.
// Unpublished quizzes are only gradable by instructors and admins; the gate
// runs before grading.
func (s *QuizService) SubmitAttempt(userID uint, role model.UserRole, quizID string, req SubmitAttemptRequest) (*AttemptView, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	if !quiz.Published && !privilegedRole(role) {
		return nil, util.ErrQuizNotPublished
	}

	for _, tag := range req.Answers {
		if !model.ValidAnswerOption(tag) {
			return nil, util.ErrInvalidAnswerOption
		}
	}

	graded := Grade(quiz.Questions, req.Answers)

	attempt := &model.QuizAttempt{
		UserID:       userID,
		QuizID:       quiz.ID,
		Answers:      req.Answers,
		Results:      graded.Results,
		EarnedPoints: graded.EarnedPoints,
		TotalPoints:  graded.TotalPoints,
		Score:        graded.Score,
		TimeTaken:    req.TimeTaken,
		StartedAt:    req.StartedAt,
		CompletedAt:  time.Now(),
	}

	if err := s.AttemptRepo.Create(attempt); err != nil {
		return nil, err
	}

	passed := Passed(attempt.Score, quiz.PassingScore)
	monitoring.ObserveQuizAttempt(passed)

	return &AttemptView{
		QuizAttempt:  *attempt,
		Passed:       passed,
		PassingScore: quiz.PassingScore,
	}, nil
}

// viewOf recomputes the verdict for a stored attempt against the quiz's
// current passing score, so a threshold change applies retroactively.
func viewOf(attempt model.QuizAttempt) AttemptView {
	passingScore := 0
	if attempt.Quiz != nil {
		passingScore = attempt.Quiz.PassingScore
	}
	return AttemptView{
		QuizAttempt:  attempt,
		Passed:       Passed(attempt.Score, passingScore),
		PassingScore: passingScore,
	}
}

func (s *QuizService) GetAttempt(id string, userID uint) (*AttemptView, error) {
	attempt, err := s.AttemptRepo.FindByIDForUser(id, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	view := viewOf(*attempt)
	return &view, nil
}

func (s *QuizService) ListAttempts(userID uint, quizID string) ([]AttemptView, error) {
	attempts, err := s.AttemptRepo.ListByUserAndQuiz(userID, quizID)
	if err != nil {
		return nil, err
	}

	views := make([]AttemptView, 0, len(attempts))
	for _, a := range attempts {
		views = append(views, viewOf(a))
	}
	return views, nil
}

func (s *QuizService) ListAttemptHistory(userID uint, page, limit int) ([]AttemptView, int64, error) {
	attempts, total, err := s.AttemptRepo.ListByUser(userID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	views := make([]AttemptView, 0, len(attempts))
	for _, a := range attempts {
		views = append(views, viewOf(a))
	}
	return views, total, nil
}

// StudentQuestion is the question shape served to takers: no correct answer,
// no explanation.
type StudentQuestion struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	OptionA string `json:"optionA"`
	OptionB string `json:"optionB"`
	OptionC string `json:"optionC"`
	OptionD string `json:"optionD"`
	Points  int    `json:"points"`
	Order   int    `json:"order"`
}

type StudentQuizView struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	PassingScore  int               `json:"passingScore"`
	TimeLimit     int               `json:"timeLimit"`
	QuestionCount int               `json:"questionCount"`
	Questions     []StudentQuestion `json:"questions"`
}

// GetQuizForTaking returns the quiz without answer keys. Unpublished quizzes
// are only visible to instructors and admins.
func (s *QuizService) GetQuizForTaking(quizID string, role model.UserRole) (*StudentQuizView, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}

	if !quiz.Published && !privilegedRole(role) {
		return nil, util.ErrQuizNotPublished
	}

	view := &StudentQuizView{
		ID:            quiz.ID,
		Title:         quiz.Title,
		Description:   quiz.Description,
		PassingScore:  quiz.PassingScore,
		TimeLimit:     quiz.TimeLimit,
		QuestionCount: len(quiz.Questions),
		Questions:     make([]StudentQuestion, 0, len(quiz.Questions)),
	}
	for _, q := range quiz.Questions {
		view.Questions = append(view.Questions, StudentQuestion{
			ID:      q.ID,
			Text:    q.Text,
			OptionA: q.OptionA,
			OptionB: q.OptionB,
			OptionC: q.OptionC,
			OptionD: q.OptionD,
			Points:  q.Points,
			Order:   q.Order,
		})
	}
	return view, nil
}

type QuestionRequest struct {
	ID            string `json:"id"`
	Text          string `json:"text" binding:"required"`
	OptionA       string `json:"optionA" binding:"required"`
	OptionB       string `json:"optionB" binding:"required"`
	OptionC       string `json:"optionC" binding:"required"`
	OptionD       string `json:"optionD" binding:"required"`
	CorrectAnswer string `json:"correctAnswer" binding:"required"`
	Points        int    `json:"points"`
	Explanation   string `json:"explanation"`
	Order         int    `json:"order"`
}

type QuizRequest struct {
	ModuleID     *string            `json:"moduleId"`
	Title        *string            `json:"title"`
	Description  *string            `json:"description"`
	PassingScore *int               `json:"passingScore"`
	TimeLimit    *int               `json:"timeLimit"`
	Published    *bool              `json:"published"`
	Questions    *[]QuestionRequest `json:"questions"`
}

func questionFromRequest(quizID string, req QuestionRequest) (*model.Question, error) {
	if !model.ValidAnswerOption(req.CorrectAnswer) {
		return nil, util.ErrInvalidAnswerOption
	}
	points := req.Points
	if points <= 0 {
		points = 1
	}
	return &model.Question{
		QuizID:        quizID,
		Text:          req.Text,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectAnswer: model.AnswerOption(req.CorrectAnswer),
		Points:        points,
		Explanation:   req.Explanation,
		Order:         req.Order,
	}, nil
}

// validatePublishable rejects publishing a quiz that has nothing to grade.
func validatePublishable(published bool, questionCount int) error {
	if published && questionCount == 0 {
		return util.ErrQuizHasNoQuestions
	}
	return nil
}

func (s *QuizService) CreateQuiz(authorID uint, req QuizRequest) (*model.Quiz, error) {
	if req.Title == nil || *req.Title == "" {
		return nil, errTitleRequired
	}

	questionCount := 0
	if req.Questions != nil {
		questionCount = len(*req.Questions)
	}
	if err := validatePublishable(req.Published != nil && *req.Published, questionCount); err != nil {
		return nil, err
	}

	quiz := &model.Quiz{
		Title:        *req.Title,
		AuthorID:     authorID,
		PassingScore: 70,
	}
	if req.ModuleID != nil {
		quiz.ModuleID = req.ModuleID
	}
	if req.Description != nil {
		quiz.Description = *req.Description
	}
	if req.PassingScore != nil {
		quiz.PassingScore = *req.PassingScore
	}
	if req.TimeLimit != nil {
		quiz.TimeLimit = *req.TimeLimit
	}
	if req.Published != nil {
		quiz.Published = *req.Published
	}

	if err := s.QuizRepo.Create(quiz); err != nil {
		return nil, err
	}

	if req.Questions != nil {
		for _, qReq := range *req.Questions {
			q, err := questionFromRequest(quiz.ID, qReq)
			if err != nil {
				return nil, err
			}
			if err := s.QuizRepo.CreateQuestion(q); err != nil {
				return nil, err
			}
		}
	}

	return s.QuizRepo.FindByID(quiz.ID)
}

// UpdateQuiz applies the partial request; when a questions list is present it
// replaces the set: known IDs update in place, new entries insert, and
// questions missing from the list are deleted. Quizzes authored by someone
// else look like missing ones unless the caller is an admin.
func (s *QuizService) UpdateQuiz(quizID string, userID uint, role model.UserRole, req QuizRequest) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if !canManage(quiz.AuthorID, userID, role) {
		return nil, util.ErrQuizNotFound
	}

	questionCount := len(quiz.Questions)
	if req.Questions != nil {
		questionCount = len(*req.Questions)
	}
	published := quiz.Published
	if req.Published != nil {
		published = *req.Published
	}
	if err := validatePublishable(published, questionCount); err != nil {
		return nil, err
	}

	if req.Title != nil {
		quiz.Title = *req.Title
	}
	if req.ModuleID != nil {
		quiz.ModuleID = req.ModuleID
	}
	if req.Description != nil {
		quiz.Description = *req.Description
	}
	if req.PassingScore != nil {
		quiz.PassingScore = *req.PassingScore
	}
	if req.TimeLimit != nil {
		quiz.TimeLimit = *req.TimeLimit
	}
	if req.Published != nil {
		quiz.Published = *req.Published
	}

	if err := s.QuizRepo.Save(quiz); err != nil {
		return nil, err
	}

	if req.Questions != nil {
		existing, err := s.QuizRepo.ListQuestions(quizID)
		if err != nil {
			return nil, err
		}
		existingMap := make(map[string]*model.Question, len(existing))
		for i := range existing {
			existingMap[existing[i].ID] = &existing[i]
		}

		kept := make(map[string]bool)
		for _, qReq := range *req.Questions {
			if qReq.ID != "" {
				if q, ok := existingMap[qReq.ID]; ok {
					updated, err := questionFromRequest(quizID, qReq)
					if err != nil {
						return nil, err
					}
					updated.UUIDBase = q.UUIDBase
					if err := s.QuizRepo.SaveQuestion(updated); err != nil {
						return nil, err
					}
					kept[q.ID] = true
					continue
				}
			}
			q, err := questionFromRequest(quizID, qReq)
			if err != nil {
				return nil, err
			}
			if err := s.QuizRepo.CreateQuestion(q); err != nil {
				return nil, err
			}
		}

		for id := range existingMap {
			if !kept[id] {
				if err := s.QuizRepo.DeleteQuestion(id); err != nil {
					return nil, err
				}
			}
		}
	}

	return s.QuizRepo.FindByID(quizID)
}

func (s *QuizService) DeleteQuiz(quizID string, userID uint, role model.UserRole) error {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrQuizNotFound
		}
		return err
	}
	if !canManage(quiz.AuthorID, userID, role) {
		return util.ErrQuizNotFound
	}
	return s.QuizRepo.Delete(quizID)
}

// GetQuiz returns the quiz with its answer key, so it is restricted to the
// author and admins.
func (s *QuizService) GetQuiz(quizID string, userID uint, role model.UserRole) (*model.Quiz, error) {
	quiz, err := s.QuizRepo.FindByID(quizID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, util.ErrQuizNotFound
		}
		return nil, err
	}
	if !canManage(quiz.AuthorID, userID, role) {
		return nil, util.ErrQuizNotFound
	}
	return quiz, nil
}

func (s *QuizService) ListQuizzesByAuthor(authorID uint, page, limit int) ([]model.Quiz, int64, error) {
	return s.QuizRepo.ListByAuthor(authorID, page, limit)
}

func (s *QuizService) ListQuizzesByModule(moduleID string, publishedOnly bool) ([]model.Quiz, error) {
	quizzes, err := s.QuizRepo.ListByModule(moduleID)
	if err != nil {
		return nil, err
	}
	if !publishedOnly {
		return quizzes, nil
	}
	published := make([]model.Quiz, 0, len(quizzes))
	for _, q := range quizzes {
		if q.Published {
			published = append(published, q)
		}
	}
	return published, nil
}
