package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/instracore/backend/internal/app/models/dto"
	"github.com/instracore/backend/internal/app/services"
	"github.com/instracore/backend/internal/middleware"
)

// DashboardController serves the role-specific dashboard
type DashboardController struct {
	dashboardService *services.DashboardService
	logger           zerolog.Logger
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService *services.DashboardService, logger zerolog.Logger) *DashboardController {
	return &DashboardController{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// Dashboard returns the dashboard for the current user's role and sub-role
func (c *DashboardController) Dashboard(ctx *gin.Context) {
	resp, err := c.dashboardService.Dashboard(ctx.Request.Context(), currentUserID(ctx), currentRole(ctx), currentSubRole(ctx))
	if err != nil {
		c.logger.Warn().Err(err).Str("role", string(currentRole(ctx))).Msg("Failed to build dashboard")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Success: true, Data: resp})
}
