package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jubilut/academia/internal/app/models/dto"
	"github.com/jubilut/academia/internal/app/services"
	"github.com/jubilut/academia/internal/middleware"
	"github.com/jubilut/academia/internal/pkg/apperrors"
)

// EnrollmentController handles enrollment endpoints for admins and students
type EnrollmentController struct {
	enrollmentService services.EnrollmentService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService services.EnrollmentService) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
	}
}

// GetStudentCourses lists a student's courses
// @Summary List a student's courses
// @Tags enrollments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Courses"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /admin/students/{id}/courses [get]
func (c *EnrollmentController) GetStudentCourses(ctx *gin.Context) {
	studentID, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	courses, err := c.enrollmentService.GetStudentCourses(ctx.Request.Context(), studentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewCourseResponses(courses)))
}

// EnrollStudent enrolls a student in a course
// @Summary Enroll student
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param request body dto.EnrollRequest true "Course to enroll in"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse} "Enrolled"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 422 {object} dto.ErrorResponse "Validation failed or already enrolled"
// @Router /admin/students/{id}/courses [post]
func (c *EnrollmentController) EnrollStudent(ctx *gin.Context) {
	studentID, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	var req dto.EnrollRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.enrollmentService.EnrollStudent(ctx.Request.Context(), studentID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.NewAPIResponse(dto.NewCourseResponse(course))
	resp.Message = "Student enrolled successfully."
	ctx.JSON(http.StatusCreated, resp)
}

// UnenrollStudent removes a student from a course
// @Summary Unenroll student
// @Tags enrollments
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Param course path int true "Course ID"
// @Success 204 "Unenrolled"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /admin/students/{id}/courses/{course} [delete]
func (c *EnrollmentController) UnenrollStudent(ctx *gin.Context) {
	studentID, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}
	courseID, ok := middleware.ParamID(ctx, "course")
	if !ok {
		return
	}

	if err := c.enrollmentService.UnenrollStudent(ctx.Request.Context(), studentID, courseID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// GetMyCourses lists the authenticated student's courses
// @Summary My courses
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Courses"
// @Failure 404 {object} dto.ErrorResponse "Student profile not found"
// @Router /student/courses [get]
func (c *EnrollmentController) GetMyCourses(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	courses, err := c.enrollmentService.GetMyCourses(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewCourseResponses(courses)))
}
