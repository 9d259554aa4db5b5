package controller

import (
	"errors"
	"strconv"
	"time"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TaskController struct {
	TaskService *service.TaskService
}

func NewTaskController(taskService *service.TaskService) *TaskController {
	return &TaskController{TaskService: taskService}
}

// parseQueryTime accepts RFC3339 timestamps or bare dates.
func parseQueryTime(v string) (time.Time, bool) {
	if v == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, true
	}
	if t, err := time.Parse(util.DateFormat, v); err == nil {
		return t, true
	}
	return time.Time{}, false
}

func taskFilterFromQuery(ctx *gin.Context) repository.TaskFilter {
	filter := repository.TaskFilter{
		Status:   model.TaskStatus(ctx.Query("status")),
		Priority: model.TaskPriority(ctx.Query("priority")),
		Search:   ctx.Query("search"),
		SortBy:   ctx.Query("sortBy"),
	}

	if v := ctx.Query("subjectId"); v != "" {
		id := util.MustParseUint(v)
		filter.SubjectID = &id
	}
	if t, ok := parseQueryTime(ctx.Query("dueBefore")); ok {
		filter.DueBefore = &t
	}
	if t, ok := parseQueryTime(ctx.Query("dueAfter")); ok {
		filter.DueAfter = &t
	}

	filter.Page, _ = strconv.Atoi(ctx.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(ctx.DefaultQuery("limit", "50"))
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 200 {
		filter.Limit = 50
	}
	return filter
}

// ListTasks godoc
// @Summary List own tasks
// @Tags tasks
// @Produce  json
// @Security ApiKeyAuth
// @Param   status query string false "todo, in_progress or done"
// @Param   priority query string false "low, medium or high"
// @Param   subjectId query int false "Filter by subject"
// @Param   dueBefore query string false "RFC3339 timestamp or YYYY-MM-DD"
// @Param   dueAfter query string false "RFC3339 timestamp or YYYY-MM-DD"
// @Param   search query string false "Title substring"
// @Param   sortBy query string false "due_date, priority or created_at"
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(50)
// @Success 200 {object} util.Response{data=util.PageResponse} "Success"
// @Router /api/tasks [get]
func (c *TaskController) ListTasks(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	filter := taskFilterFromQuery(ctx)

	tasks, total, err := c.TaskService.List(claims.UserID, filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: tasks, Total: total, Page: filter.Page, Limit: filter.Limit})
}

// CreateTask godoc
// @Summary Create a task
// @Tags tasks
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.TaskRequest true "Task fields"
// @Success 201 {object} util.Response{data=model.Task} "Created"
// @Failure 400 {object} util.Response "Invalid request"
// @Router /api/tasks [post]
func (c *TaskController) CreateTask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.TaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	task, err := c.TaskService.Create(claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.BadRequest(ctx, "subject does not exist")
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, task)
}

// GetTask godoc
// @Summary Get a task
// @Tags tasks
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Task ID"
// @Success 200 {object} util.Response{data=model.Task} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/tasks/{id} [get]
func (c *TaskController) GetTask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	task, err := c.TaskService.Get(util.MustParseUint(ctx.Param("id")), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrTaskNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, task)
}

// UpdateTask godoc
// @Summary Update a task
// @Tags tasks
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Task ID"
// @Param   body body service.TaskRequest true "Fields to change"
// @Success 200 {object} util.Response{data=model.Task} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/tasks/{id} [put]
func (c *TaskController) UpdateTask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.TaskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	task, err := c.TaskService.Update(util.MustParseUint(ctx.Param("id")), claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrTaskNotFound) {
			util.NotFound(ctx)
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, task)
}

type TaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=todo in_progress done"`
}

// UpdateTaskStatus godoc
// @Summary Move a task between board columns
// @Description Setting done stamps completedAt; moving it back clears it
// @Tags tasks
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Task ID"
// @Param   body body TaskStatusRequest true "New status"
// @Success 200 {object} util.Response{data=model.Task} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/tasks/{id}/status [put]
func (c *TaskController) UpdateTaskStatus(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req TaskStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	task, err := c.TaskService.UpdateStatus(util.MustParseUint(ctx.Param("id")), claims.UserID, req.Status)
	if err != nil {
		if errors.Is(err, util.ErrTaskNotFound) {
			util.NotFound(ctx)
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, task)
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags tasks
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Task ID"
// @Success 200 {object} util.Response "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/tasks/{id} [delete]
func (c *TaskController) DeleteTask(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	if err := c.TaskService.Delete(util.MustParseUint(ctx.Param("id")), claims.UserID); err != nil {
		if errors.Is(err, util.ErrTaskNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
