package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jubilut/academia/internal/app/models/dto"
	"github.com/jubilut/academia/internal/app/services"
	"github.com/jubilut/academia/internal/middleware"
	"github.com/jubilut/academia/internal/pkg/apperrors"
)

// ProfileController handles the student's own profile
type ProfileController struct {
	profileService services.ProfileService
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService services.ProfileService) *ProfileController {
	return &ProfileController{
		profileService: profileService,
	}
}

// GetProfile returns the caller's student record
// @Summary My profile
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Profile"
// @Failure 404 {object} dto.ErrorResponse "Student profile not found"
// @Router /student/profile [get]
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	student, err := c.profileService.GetProfile(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewStudentResponse(student)))
}

// UpdateProfile edits the caller's student record
// @Summary Update my profile
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Profile"
// @Success 200 {object} dto.APIResponse{data=dto.StudentResponse} "Profile updated"
// @Failure 404 {object} dto.ErrorResponse "Student profile not found"
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Router /student/profile [put]
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrTokenInvalid)
		return
	}

	var req dto.UpdateProfileRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	student, err := c.profileService.UpdateProfile(ctx.Request.Context(), userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewStudentResponse(student)))
}
