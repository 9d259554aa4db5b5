package controller

import (
	"errors"
	"strconv"

	"studyhub_backend/internal/model"
	"studyhub_backend/internal/repository"
	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// viewerRole resolves the role of the requester; anonymous visitors get the
// least privileged one.
func viewerRole(ctx *gin.Context) model.UserRole {
	if claims := util.GetUserFromContext(ctx); claims != nil {
		return claims.Role
	}
	return model.Student
}

func handleCourseError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrCourseNotFound), errors.Is(err, util.ErrModuleNotFound):
		util.NotFound(ctx)
	case errors.Is(err, util.ErrCourseNotPublished):
		util.NotFound(ctx) // unpublished looks identical to missing
	case errors.Is(err, util.ErrSlugTaken):
		util.Error(ctx, 409, "slug already in use")
	default:
		util.LogInternalError(ctx, err)
	}
}

// ListCatalog godoc
// @Summary Browse the public course catalog
// @Tags courses
// @Produce  json
// @Param   category query string false "Category"
// @Param   level query string false "beginner, intermediate or advanced"
// @Param   search query string false "Title substring"
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(12)
// @Success 200 {object} util.Response{data=service.CatalogPage} "Success"
// @Router /api/courses [get]
func (c *CourseController) ListCatalog(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "12"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 50 {
		limit = 12
	}

	filter := repository.CourseFilter{
		Category: ctx.Query("category"),
		Level:    model.CourseLevel(ctx.Query("level")),
		Search:   ctx.Query("search"),
		Page:     page,
		Limit:    limit,
	}

	catalog, err := c.CourseService.ListCatalog(ctx.Request.Context(), filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, catalog)
}

// GetCourse godoc
// @Summary Get a course by id or slug
// @Tags courses
// @Produce  json
// @Param   idOrSlug path string true "Course ID or slug"
// @Success 200 {object} util.Response{data=model.Course} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/courses/{idOrSlug} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	course, err := c.CourseService.GetCourse(ctx.Param("idOrSlug"), viewerRole(ctx))
	if err != nil {
		handleCourseError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// GetModule godoc
// @Summary Get a course module with its quizzes
// @Tags courses
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Module ID"
// @Success 200 {object} util.Response{data=object} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/modules/{id} [get]
func (c *CourseController) GetModule(ctx *gin.Context) {
	mod, quizzes, err := c.CourseService.GetModule(ctx.Param("id"), viewerRole(ctx))
	if err != nil {
		handleCourseError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"module": mod, "quizzes": quizzes})
}

// ListMyCourses godoc
// @Summary List courses authored by the current instructor
// @Tags instructor
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=util.PageResponse} "Success"
// @Router /api/instructor/courses [get]
func (c *CourseController) ListMyCourses(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	courses, total, err := c.CourseService.ListByAuthor(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// CreateCourse godoc
// @Summary Create a course
// @Tags instructor
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.CourseRequest true "Course fields"
// @Success 201 {object} util.Response{data=model.Course} "Created"
// @Failure 400 {object} util.Response "Invalid request"
// @Failure 409 {object} util.Response "Slug already in use"
// @Router /api/instructor/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.CreateCourse(ctx.Request.Context(), claims.UserID, req)
	if err != nil {
		if errors.Is(err, util.ErrSlugTaken) {
			util.Error(ctx, 409, "slug already in use")
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, course)
}

// UpdateCourse godoc
// @Summary Update a course
// @Tags instructor
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Course ID"
// @Param   body body service.CourseRequest true "Fields to change"
// @Success 200 {object} util.Response{data=model.Course} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/instructor/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.CourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	course, err := c.CourseService.UpdateCourse(ctx.Request.Context(), ctx.Param("id"), claims.UserID, claims.Role, req)
	if err != nil {
		handleCourseError(ctx, err)
		return
	}
	util.Success(ctx, course)
}

// DeleteCourse godoc
// @Summary Delete a course
// @Tags instructor
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Course ID"
// @Success 200 {object} util.Response "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/instructor/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.CourseService.DeleteCourse(ctx.Request.Context(), ctx.Param("id"), claims.UserID, claims.Role); err != nil {
		handleCourseError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UploadCover godoc
// @Summary Upload a course cover image
// @Tags instructor
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Course ID"
// @Param   file formData file true "Cover image"
// @Success 200 {object} util.Response{data=model.Course} "Success"
// @Failure 400 {object} util.Response "Invalid file"
// @Router /api/instructor/courses/{id}/cover [post]
func (c *CourseController) UploadCover(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	course, err := c.CourseService.UploadCover(ctx.Request.Context(), ctx.Param("id"), claims.UserID, claims.Role, file)
	if err != nil {
		if errors.Is(err, util.ErrCourseNotFound) {
			util.NotFound(ctx)
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, course)
}

// CreateModule godoc
// @Summary Add a module to a course
// @Tags instructor
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Course ID"
// @Param   body body service.ModuleRequest true "Module fields"
// @Success 201 {object} util.Response{data=model.CourseModule} "Created"
// @Failure 404 {object} util.Response "Course not found"
// @Router /api/instructor/courses/{id}/modules [post]
func (c *CourseController) CreateModule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	mod, err := c.CourseService.CreateModule(ctx.Param("id"), claims.UserID, claims.Role, req)
	if err != nil {
		handleCourseError(ctx, err)
		return
	}
	util.Created(ctx, mod)
}

// UpdateModule godoc
// @Summary Update a module
// @Tags instructor
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Module ID"
// @Param   body body service.ModuleRequest true "Fields to change"
// @Success 200 {object} util.Response{data=model.CourseModule} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/instructor/modules/{id} [put]
func (c *CourseController) UpdateModule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var req service.ModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	mod, err := c.CourseService.UpdateModule(ctx.Param("id"), claims.UserID, claims.Role, req)
	if err != nil {
		handleCourseError(ctx, err)
		return
	}
	util.Success(ctx, mod)
}

// DeleteModule godoc
// @Summary Delete a module
// @Tags instructor
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Module ID"
// @Success 200 {object} util.Response "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/instructor/modules/{id} [delete]
func (c *CourseController) DeleteModule(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if err := c.CourseService.DeleteModule(ctx.Param("id"), claims.UserID, claims.Role); err != nil {
		handleCourseError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// UploadModuleVideo godoc
// @Summary Upload a lecture video for a module
// @Description Stores the file and probes its duration with ffmpeg
// @Tags instructor
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Module ID"
// @Param   file formData file true "Video file"
// @Success 200 {object} util.Response{data=model.CourseModule} "Success"
// @Failure 400 {object} util.Response "Invalid file"
// @Router /api/instructor/modules/{id}/video [post]
func (c *CourseController) UploadModuleVideo(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	file, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	mod, err := c.CourseService.UploadModuleVideo(ctx.Request.Context(), ctx.Param("id"), claims.UserID, claims.Role, file)
	if err != nil {
		if errors.Is(err, util.ErrModuleNotFound) {
			util.NotFound(ctx)
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, mod)
}
