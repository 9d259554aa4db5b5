package controller

import (
	"errors"
	"strconv"

	"studyhub_backend/internal/service"
	"studyhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

func pageParams(ctx *gin.Context, defaultLimit int) (int, int) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}
	return page, limit
}

// ListPosts godoc
// @Summary Public blog index
// @Tags content
// @Produce  json
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(10)
// @Success 200 {object} util.Response{data=service.BlogPage} "Success"
// @Router /api/blog [get]
func (c *ContentController) ListPosts(ctx *gin.Context) {
	page, limit := pageParams(ctx, 10)

	posts, err := c.ContentService.ListPublishedPosts(ctx.Request.Context(), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, posts)
}

// GetPost godoc
// @Summary Read a blog post
// @Tags content
// @Produce  json
// @Param   slug path string true "Post slug"
// @Success 200 {object} util.Response{data=model.BlogPost} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/blog/{slug} [get]
func (c *ContentController) GetPost(ctx *gin.Context) {
	post, err := c.ContentService.GetPost(ctx.Param("slug"))
	if err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, post)
}

// ListFAQs godoc
// @Summary Public FAQ list
// @Tags content
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.FAQ} "Success"
// @Router /api/faqs [get]
func (c *ContentController) ListFAQs(ctx *gin.Context) {
	faqs, err := c.ContentService.ListFAQs(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, faqs)
}

// ListJobs godoc
// @Summary Open job positions
// @Tags content
// @Produce  json
// @Success 200 {object} util.Response{data=[]model.JobOpening} "Success"
// @Router /api/careers [get]
func (c *ContentController) ListJobs(ctx *gin.Context) {
	jobs, err := c.ContentService.ListJobs(true)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, jobs)
}

// SubmitContact godoc
// @Summary Submit the contact form
// @Tags content
// @Accept  json
// @Produce  json
// @Param   body body service.ContactRequest true "Message"
// @Success 201 {object} util.Response "Created"
// @Failure 400 {object} util.Response "Invalid request"
// @Router /api/contact [post]
func (c *ContentController) SubmitContact(ctx *gin.Context) {
	var req service.ContactRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	msg, err := c.ContentService.SubmitContact(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, gin.H{"id": msg.ID})
}

// --- admin surface ---

// AdminListPosts godoc
// @Summary List all posts including drafts
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=service.BlogPage} "Success"
// @Router /api/admin/blog [get]
func (c *ContentController) AdminListPosts(ctx *gin.Context) {
	page, limit := pageParams(ctx, 20)

	posts, err := c.ContentService.ListAllPosts(page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, posts)
}

// CreatePost godoc
// @Summary Create a blog post
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.BlogPostRequest true "Post fields"
// @Success 201 {object} util.Response{data=model.BlogPost} "Created"
// @Failure 409 {object} util.Response "Slug already in use"
// @Router /api/admin/blog [post]
func (c *ContentController) CreatePost(ctx *gin.Context) {
	var req service.BlogPostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post, err := c.ContentService.CreatePost(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, util.ErrSlugTaken) {
			util.Error(ctx, 409, "slug already in use")
			return
		}
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, post)
}

// UpdatePost godoc
// @Summary Update a blog post
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Post ID"
// @Param   body body service.BlogPostRequest true "Fields to change"
// @Success 200 {object} util.Response{data=model.BlogPost} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/admin/blog/{id} [put]
func (c *ContentController) UpdatePost(ctx *gin.Context) {
	var req service.BlogPostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	post, err := c.ContentService.UpdatePost(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrPostNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrSlugTaken):
			util.Error(ctx, 409, "slug already in use")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, post)
}

// DeletePost godoc
// @Summary Delete a blog post
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path string true "Post ID"
// @Success 200 {object} util.Response "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/admin/blog/{id} [delete]
func (c *ContentController) DeletePost(ctx *gin.Context) {
	if err := c.ContentService.DeletePost(ctx.Request.Context(), ctx.Param("id")); err != nil {
		if errors.Is(err, util.ErrPostNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// AdminListFAQs godoc
// @Summary List all FAQ entries including unpublished
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.FAQ} "Success"
// @Router /api/admin/faqs [get]
func (c *ContentController) AdminListFAQs(ctx *gin.Context) {
	faqs, err := c.ContentService.ListAllFAQs()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, faqs)
}

// CreateFAQ godoc
// @Summary Create an FAQ entry
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.FAQRequest true "Question and answer"
// @Success 201 {object} util.Response{data=model.FAQ} "Created"
// @Router /api/admin/faqs [post]
func (c *ContentController) CreateFAQ(ctx *gin.Context) {
	var req service.FAQRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	faq, err := c.ContentService.CreateFAQ(ctx.Request.Context(), req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, faq)
}

// UpdateFAQ godoc
// @Summary Update an FAQ entry
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "FAQ ID"
// @Param   body body service.FAQRequest true "Fields to change"
// @Success 200 {object} util.Response{data=model.FAQ} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/admin/faqs/{id} [put]
func (c *ContentController) UpdateFAQ(ctx *gin.Context) {
	var req service.FAQRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	faq, err := c.ContentService.UpdateFAQ(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		if errors.Is(err, util.ErrFAQNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, faq)
}

// DeleteFAQ godoc
// @Summary Delete an FAQ entry
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "FAQ ID"
// @Success 200 {object} util.Response "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/admin/faqs/{id} [delete]
func (c *ContentController) DeleteFAQ(ctx *gin.Context) {
	if err := c.ContentService.DeleteFAQ(ctx.Request.Context(), util.MustParseUint(ctx.Param("id"))); err != nil {
		if errors.Is(err, util.ErrFAQNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// AdminListJobs godoc
// @Summary List all job openings including inactive
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.JobOpening} "Success"
// @Router /api/admin/careers [get]
func (c *ContentController) AdminListJobs(ctx *gin.Context) {
	jobs, err := c.ContentService.ListJobs(false)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, jobs)
}

// CreateJob godoc
// @Summary Create a job opening
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.JobRequest true "Job fields"
// @Success 201 {object} util.Response{data=model.JobOpening} "Created"
// @Router /api/admin/careers [post]
func (c *ContentController) CreateJob(ctx *gin.Context) {
	var req service.JobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	job, err := c.ContentService.CreateJob(req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, job)
}

// UpdateJob godoc
// @Summary Update a job opening
// @Tags admin
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Job ID"
// @Param   body body service.JobRequest true "Fields to change"
// @Success 200 {object} util.Response{data=model.JobOpening} "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/admin/careers/{id} [put]
func (c *ContentController) UpdateJob(ctx *gin.Context) {
	var req service.JobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	job, err := c.ContentService.UpdateJob(util.MustParseUint(ctx.Param("id")), req)
	if err != nil {
		if errors.Is(err, util.ErrJobNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, job)
}

// DeleteJob godoc
// @Summary Delete a job opening
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Job ID"
// @Success 200 {object} util.Response "Success"
// @Failure 404 {object} util.Response "Not found"
// @Router /api/admin/careers/{id} [delete]
func (c *ContentController) DeleteJob(ctx *gin.Context) {
	if err := c.ContentService.DeleteJob(util.MustParseUint(ctx.Param("id"))); err != nil {
		if errors.Is(err, util.ErrJobNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListContactMessages godoc
// @Summary List contact-form messages
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Param   unhandled query bool false "Only unhandled messages"
// @Param   page query int false "Page" default(1)
// @Param   limit query int false "Page size" default(20)
// @Success 200 {object} util.Response{data=service.ContactPage} "Success"
// @Router /api/admin/contact [get]
func (c *ContentController) ListContactMessages(ctx *gin.Context) {
	page, limit := pageParams(ctx, 20)
	unhandledOnly := ctx.Query("unhandled") == "true"

	msgs, err := c.ContentService.ListContactMessages(unhandledOnly, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, msgs)
}

// MarkContactHandled godoc
// @Summary Mark a contact message handled
// @Tags admin
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Message ID"
// @Success 200 {object} util.Response "Success"
// @Router /api/admin/contact/{id}/handled [put]
func (c *ContentController) MarkContactHandled(ctx *gin.Context) {
	if err := c.ContentService.MarkContactHandled(util.MustParseUint(ctx.Param("id"))); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
