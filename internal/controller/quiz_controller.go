package controller

import (
	"errors"
	"strconv"

	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
	AIService   *service.AIService
}

func NewQuizController(quizService *service.QuizService, aiService *service.AIService) *QuizController {
	return &QuizController{QuizService: quizService, AIService: aiService}
}

func handleQuizError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrQuizNotFound), errors.Is(err, util.ErrAttemptNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrQuizNotPublished):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrQuizHasNoQuestions),
		errors.Is(err, util.ErrInvalidAnswerOption):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// GetQuizForTaking godoc
// @Summary Fetch a quiz for taking
// @Description Returns questions without correct answers or explanations
// @Tags quizzes
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Quiz ID"
// @Success 200 {object} util.Response{data=service.StudentQuizView} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/quizzes/{id} [get]
func (c *QuizController) GetQuizForTaking(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	view, err := c.QuizService.GetQuizForTaking(ctx.Param("id"), claims.Role)
	if err != nil {
		handleQuizError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// SubmitAttempt godoc
// @Summary Submit quiz answers
// @Description Grades the submission and records an immutable attempt
// @Tags quizzes
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Quiz ID"
// @Param   body body service.SubmitAttemptRequest true "Answers keyed by question ID"
// @Success 201 {object} util.Response{data=service.AttemptView} "Created"
// @Failure 400 {object} util.Response "Invalid answers"
// @Failure 404 {object} util.Response "Quiz not found"
// @Router /api/quizzes/{id}/attempts [post]
func (c *QuizController) SubmitAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.SubmitAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	view, err := c.QuizService.SubmitAttempt(claims.UserID, claims.Role, ctx.Param("id"), req)
	if err != nil {
		handleQuizError(ctx, err)
		return
	}
	util.Created(ctx, view)
}

// ListAttempts godoc
// @Summary List own attempts for a quiz
// @Tags quizzes
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Quiz ID"
// @Success 200 {object} util.Response{data=[]service.AttemptView} "Success"
// @Router /api/quizzes/{id}/attempts [get]
func (c *QuizController) ListAttempts(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	views, err := c.QuizService.ListAttempts(claims.UserID, ctx.Param("id"))
	if err != nil {
		handleQuizError(ctx, err)
		return
	}
	util.Success(ctx, views)
}

// GetAttempt godoc
// @Summary Get one of my attempts
// @Tags quizzes
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Attempt ID"
// @Success 200 {object} util.Response{data=service.AttemptView} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/attempts/{id} [get]
func (c *QuizController) GetAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	view, err := c.QuizService.GetAttempt(ctx.Param("id"), claims.UserID)
	if err != nil {
		handleQuizError(ctx, err)
		return
	}
	util.Success(ctx, view)
}

// ListAttemptHistory godoc
// @Summary List my attempt history across all quizzes
// @Tags quizzes
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse} "Success"
// @Router /api/attempts [get]
func (c *QuizController) ListAttemptHistory(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	views, total, err := c.QuizService.ListAttemptHistory(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: views, Total: total, Page: page, Limit: limit})
}

// ListMyQuizzes godoc
// @Summary List quizzes authored by the current instructor
// @Tags instructor
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse} "Success"
// @Router /api/instructor/quizzes [get]
func (c *QuizController) ListMyQuizzes(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	quizzes, total, err := c.QuizService.ListQuizzesByAuthor(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: quizzes, Total: total, Page: page, Limit: limit})
}

// GetQuiz godoc
// @Summary Get a quiz with its answer key
// @Tags instructor
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Quiz ID"
// @Success 200 {object} util.Response{data=model.Quiz} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/instructor/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	quiz, err := c.QuizService.GetQuiz(ctx.Param("id"), claims.UserID, claims.Role)
	if err != nil {
		handleQuizError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// CreateQuiz godoc
// @Summary Create a quiz
// @Tags instructor
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.QuizRequest true "Quiz and questions"
// @Success 201 {object} util.Response{data=model.Quiz} "Created"
// @Failure 400 {object} util.Response "Invalid request"
// @Router /api/instructor/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.CreateQuiz(claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrInvalidAnswerOption) || errors.Is(err, util.ErrModuleNotFound) {
			util.BadRequest(ctx, err.Error())
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, quiz)
}

// UpdateQuiz godoc
// @Summary Update a quiz and replace its question set
// @Description Questions present in the request are kept or updated, the rest are deleted
// @Tags instructor
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Quiz ID"
// @Param   body body service.QuizRequest true "Fields to change"
// @Success 200 {object} util.Response{data=model.Quiz} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/instructor/quizzes/{id} [put]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.UpdateQuiz(ctx.Param("id"), claims.UserID, claims.Role, req)
	if err != nil {
		handleQuizError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// DeleteQuiz godoc
// @Summary Delete a quiz
// @Tags instructor
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Quiz ID"
// @Success 200 {object} util.Response "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/instructor/quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.QuizService.DeleteQuiz(ctx.Param("id"), claims.UserID, claims.Role); err != nil {
		handleQuizError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

type GenerateQuestionsRequest struct {
	Topic      string `json:"topic" binding:"required"`
	Difficulty string `json:"difficulty" binding:"omitempty,oneof=easy medium hard"`
	Count      int    `json:"count"`
}

// GenerateQuestions godoc
// @Summary Draft quiz questions with the AI provider
// @Description Returns generated questions for review; nothing is persisted
// @Tags instructor
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body GenerateQuestionsRequest true "Topic, difficulty and count"
// @Success 200 {object} util.Response{data=[]service.GeneratedQuestion} "Success"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 502 {object} util.Response "Provider error"
// @Router /api/instructor/quizzes/generate [post]
func (c *QuizController) GenerateQuestions(ctx *gin.Context) {
	var req GenerateQuestionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	questions, err := c.AIService.GenerateQuestions(ctx.Request.Context(), req.Topic, req.Difficulty, req.Count)
	if err != nil {
		util.Error(ctx, 502, "question generation failed: "+err.Error())
		return
	}
	util.Success(ctx, questions)
}
