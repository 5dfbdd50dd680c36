package controller

import (
	"github.com/gin-gonic/gin"

	"lgs_prep_backend/internal/model"
	"lgs_prep_backend/internal/service"
	"lgs_prep_backend/internal/util"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// GetSummary godoc
// @Summary Student dashboard
// @Description Mastery per subject, weak topics and recommended focus topics for the caller
// @Tags dashboard
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=model.DashboardSummary} "Success"
// @Failure 401 {object} util.Response "Unauthorized"
// @Router /api/dashboard [get]
func (c *DashboardController) GetSummary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	summary, err := c.DashboardService.Summary(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}

// GetStudentSummary godoc
// @Summary Student dashboard for teachers
// @Description Same dashboard, viewed by a teacher or admin for any student
// @Tags dashboard
// @Produce  json
// @Security ApiKeyAuth
// @Param   id path int true "Student ID"
// @Success 200 {object} util.Response{data=model.DashboardSummary} "Success"
// @Failure 403 {object} util.Response "Forbidden"
// @Router /api/students/{id}/dashboard [get]
func (c *DashboardController) GetStudentSummary(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	if claims.Role != model.Teacher && claims.Role != model.Admin {
		util.Forbidden(ctx)
		return
	}

	studentID := util.MustParseUint(ctx.Param("id"))
	if studentID == 0 {
		util.BadRequest(ctx, "invalid student id")
		return
	}

	summary, err := c.DashboardService.Summary(ctx.Request.Context(), studentID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}
