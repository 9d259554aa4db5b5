package controller

import (
	"errors"

	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubjectController struct {
	SubjectService *service.SubjectService
}

func NewSubjectController(subjectService *service.SubjectService) *SubjectController {
	return &SubjectController{SubjectService: subjectService}
}

// ListSubjects godoc
// @Summary List own subjects
// @Tags subjects
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.Subject} "Success"
// @Router /api/subjects [get]
func (c *SubjectController) ListSubjects(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	subjects, err := c.SubjectService.List(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subjects)
}

// CreateSubject godoc
// @Summary Create a subject
// @Tags subjects
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.SubjectRequest true "Subject fields"
// @Success 201 {object} util.Response{data=model.Subject} "Created"
// @Failure 400 {object} util.Response "Invalid request"
// @Router /api/subjects [post]
func (c *SubjectController) CreateSubject(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.SubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subject, err := c.SubjectService.Create(claims.UserID, req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, subject)
}

// GetSubject godoc
// @Summary Get a subject
// @Tags subjects
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Subject ID"
// @Success 200 {object} util.Response{data=model.Subject} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/subjects/{id} [get]
func (c *SubjectController) GetSubject(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	subject, err := c.SubjectService.Get(util.MustParseUint(ctx.Param("id")), claims.UserID)
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subject)
}

// UpdateSubject godoc
// @Summary Update a subject
// @Tags subjects
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Subject ID"
// @Param   body body service.SubjectRequest true "Fields to change"
// @Success 200 {object} util.Response{data=model.Subject} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/subjects/{id} [put]
func (c *SubjectController) UpdateSubject(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.SubjectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	subject, err := c.SubjectService.Update(util.MustParseUint(ctx.Param("id")), claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subject)
}

// DeleteSubject godoc
// @Summary Delete a subject
// @Description Deletes the subject; its tasks are kept and detached
// @Tags subjects
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Subject ID"
// @Success 200 {object} util.Response "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/subjects/{id} [delete]
func (c *SubjectController) DeleteSubject(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	if err := c.SubjectService.Delete(util.MustParseUint(ctx.Param("id")), claims.UserID); err != nil {
		if errors.Is(err, util.ErrSubjectNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
