package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jubilut/academia/internal/app/models/dto"
	"github.com/jubilut/academia/internal/app/services"
	"github.com/jubilut/academia/internal/middleware"
)

// ProfessorController handles professor endpoints
type ProfessorController struct {
	professorService services.ProfessorService
}

// NewProfessorController creates a new ProfessorController
func NewProfessorController(professorService services.ProfessorService) *ProfessorController {
	return &ProfessorController{
		professorService: professorService,
	}
}

// GetAllProfessors lists professors
// @Summary List professors
// @Tags professors
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.ProfessorResponse} "Professors"
// @Router /admin/professors [get]
func (c *ProfessorController) GetAllProfessors(ctx *gin.Context) {
	professors, err := c.professorService.GetAllProfessors(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewProfessorResponses(professors)))
}

// CreateProfessor creates a professor
// @Summary Create professor
// @Tags professors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProfessorRequest true "Professor"
// @Success 201 {object} dto.APIResponse{data=dto.ProfessorResponse} "Professor created"
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Router /admin/professors [post]
func (c *ProfessorController) CreateProfessor(ctx *gin.Context) {
	var req dto.ProfessorRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	professor, err := c.professorService.CreateProfessor(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(dto.NewProfessorResponse(professor)))
}

// GetProfessorByID retrieves a professor
// @Summary Get professor
// @Tags professors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Professor ID"
// @Success 200 {object} dto.APIResponse{data=dto.ProfessorResponse} "Professor"
// @Failure 404 {object} dto.ErrorResponse "Professor not found"
// @Router /admin/professors/{id} [get]
func (c *ProfessorController) GetProfessorByID(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	professor, err := c.professorService.GetProfessorByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewProfessorResponse(professor)))
}

// UpdateProfessor updates a professor
// @Summary Update professor
// @Tags professors
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Professor ID"
// @Param request body dto.ProfessorRequest true "Professor"
// @Success 200 {object} dto.APIResponse{data=dto.ProfessorResponse} "Professor updated"
// @Failure 404 {object} dto.ErrorResponse "Professor not found"
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Router /admin/professors/{id} [put]
func (c *ProfessorController) UpdateProfessor(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	var req dto.ProfessorRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	professor, err := c.professorService.UpdateProfessor(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.NewProfessorResponse(professor)))
}

// DeleteProfessor deletes a professor
// @Summary Delete professor
// @Description Deletes a professor and their subjects
// @Tags professors
// @Produce json
// @Security BearerAuth
// @Param id path int true "Professor ID"
// @Success 200 {object} dto.APIResponse "Professor deleted"
// @Failure 404 {object} dto.ErrorResponse "Professor not found"
// @Router /admin/professors/{id} [delete]
func (c *ProfessorController) DeleteProfessor(ctx *gin.Context) {
	id, ok := middleware.ParamID(ctx, "id")
	if !ok {
		return
	}

	if err := c.professorService.DeleteProfessor(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Professor deleted successfully."))
}
