package controller

import (
	"errors"

	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

func handleProgressError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrModuleNotFound),
		errors.Is(err, util.ErrCourseNotPublished):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrNotEnrolled):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// Enroll godoc
// @Summary Enroll in a course
// @Tags progress
// @Produce  json
// @Security ApiKeyAuth
// @Param   idOrSlug path string true "Course ID or slug"
// @Success 200 {object} util.Response{data=service.CourseSummary} "Success"
// @Failure 404 {object} util.Response "Course not found"
// @Router /api/courses/{idOrSlug}/enroll [post]
func (c *ProgressController) Enroll(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	summary, err := c.ProgressService.Enroll(claims.UserID, claims.Role, ctx.Param("idOrSlug"))
	if err != nil {
		handleProgressError(ctx, err)
		return
	}
	util.Success(ctx, summary)
}

type ToggleModuleRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}

// ToggleModule godoc
// @Summary Mark a module complete or incomplete
// @Description Recomputes the parent course's progress in the same transaction
// @Tags progress
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Module ID"
// @Param   body body ToggleModuleRequest true "Completed flag"
// @Success 200 {object} util.Response{data=service.ToggleResult} "Success"
// @Failure 404 {object} util.Response "Module not found"
// @Router /api/modules/{id}/progress [put]
func (c *ProgressController) ToggleModule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req ToggleModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ProgressService.ToggleModuleProgress(claims.UserID, claims.Role, ctx.Param("id"), *req.Completed)
	if err != nil {
		handleProgressError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// GetCourseProgress godoc
// @Summary Progress detail for one course
// @Tags progress
// @Produce  json
// @Security ApiKeyAuth
// @Param   idOrSlug path string true "Course ID or slug"
// @Success 200 {object} util.Response{data=service.CourseProgressDetail} "Success"
// @Failure 400 {object} util.Response "Not enrolled"
// @Failure 404 {object} util.Response "Course not found"
// @Router /api/courses/{idOrSlug}/progress [get]
func (c *ProgressController) GetCourseProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	detail, err := c.ProgressService.GetCourseProgress(claims.UserID, ctx.Param("idOrSlug"))
	if err != nil {
		handleProgressError(ctx, err)
		return
	}
	util.Success(ctx, detail)
}

// ListEnrollments godoc
// @Summary List my course enrollments
// @Tags progress
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.CourseProgress} "Success"
// @Router /api/enrollments [get]
func (c *ProgressController) ListEnrollments(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	enrollments, err := c.ProgressService.ListEnrollments(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, enrollments)
}
