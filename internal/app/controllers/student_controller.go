package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jubilut/academia/internal/app/models"
	"github.com/jubilut/academia/internal/app/models/dto"
	"github.com/jubilut/academia/internal/app/services"
	"github.com/jubilut/academia/internal/middleware"
	"github.com/jubilut/academia/internal/pkg/helpers"
)

// StudentController handles the admin student endpoints
type StudentController struct {
	studentService services.StudentService
	paginator      helpers.Paginator
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService services.StudentService, paginator helpers.Paginator) *StudentController {
	return &StudentController{
		studentService: studentService,
		paginator:      paginator,
	}
}

// ListStudents lists students page by page
// @Summary List students
// @Description Lists students newest first, filtered by name and email substrings
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param name query string false "Name contains (case-insensitive)"
// @Param email query string false "Email contains (case-insensitive)"
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Page size" default(15)
// @Success 200 {object} dto.APIResponse{data=[]dto.StudentResponse} "Students"
// @Failure 401 {object} dto.ErrorResponse "Unauthenticated"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Router /admin/students [get]
func (c *StudentController) ListStudents(ctx *gin.Context) {
	pageReq := c.paginator.Parse(ctx)
	filter := models.StudentFilter{
		Name:  ctx.Query("name"),
		Email: ctx.Query("email"),
	}

	students, total, err := c.studentService.ListStudents(ctx.Request.Context(), filter, pageReq.Window())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	links, meta := helpers.NewPagination(total, pageReq, len(students), ctx.Request.URL.Path, ctx.Request.URL.Query())
	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(dto.NewStudentResponses(students), links, meta))
}

// CreateStudent creates a student and its login
// @Summary Create student
// @Description Creates a student together with a student-role user
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student"
// @Success 201 {object} dto.APIResponse{data=dto.StudentResponse} "Student created"
// @Failure 400 {object} dto.ErrorResponse "Malformed request body"
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Router /admin/students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.studentService.CreateStudent(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.NewStudentResponse(student)))
}

// GetStudent retrieves a student by ID
// @Summary Get student
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Student"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /admin/students/{id} [get]
func (c *StudentController) GetStudent(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	student, err := c.studentService.GetStudentByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewStudentResponse(student)))
}

// UpdateStudent replaces a student's data
// @Summary Update student
// @Description Updates the student and its user; the password changes only when given
// @Tags students
// @Accept json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Student"
// @Success 204 "Updated"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Router /admin/students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateStudentRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	if err := c.studentService.UpdateStudent(ctx.Request.Context(), id, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// DeleteStudent deletes a student, its enrollments and its user
// @Summary Delete student
// @Tags students
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /admin/students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	if err := c.studentService.DeleteStudent(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
