package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jubilut/academia/internal/app/models/dto"
	"github.com/jubilut/academia/internal/app/services"
	"github.com/jubilut/academia/internal/middleware"
	"github.com/jubilut/academia/internal/pkg/helpers"
)

// CourseController handles course endpoints
type CourseController struct {
	courseService services.CourseService
	paginator     helpers.Paginator
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService, paginator helpers.Paginator) *CourseController {
	return &CourseController{
		courseService: courseService,
		paginator:     paginator,
	}
}

// ListCourses lists courses page by page
// @Summary List courses
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Page size" default(15)
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Courses"
// @Router /admin/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	pageReq := c.paginator.Parse(ctx)

	courses, total, err := c.courseService.ListCourses(ctx.Request.Context(), pageReq.Window())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	links, meta := helpers.NewPagination(total, pageReq, len(courses), ctx.Request.URL.Path, ctx.Request.URL.Query())
	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(dto.NewCourseResponses(courses), links, meta))
}

// CreateCourse creates a course
// @Summary Create course
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CourseRequest true "Course"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse} "Course created"
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Router /admin/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.CreateCourse(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.NewCourseResponse(course)))
}

// GetCourse retrieves a course
// @Summary Get course
// @Tags courses
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /admin/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourseByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewCourseResponse(course)))
}

// UpdateCourse updates a course
// @Summary Update course
// @Tags courses
// @Accept json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.CourseRequest true "Course"
// @Success 204 "Updated"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Router /admin/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	var req dto.CourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.courseService.UpdateCourse(ctx.Request.Context(), id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// DeleteCourse deletes a course
// @Summary Delete course
// @Description Deletes a course with its subjects and enrollments
// @Tags courses
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /admin/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
