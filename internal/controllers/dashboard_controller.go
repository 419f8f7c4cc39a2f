package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"compuscan/internal/services"
	"compuscan/pkg/utils"
)

type DashboardController struct {
	dashboardService services.DashboardServiceInterface
	logger           *zap.Logger
}

func NewDashboardController(dashboardService services.DashboardServiceInterface, logger *zap.Logger) *DashboardController {
	return &DashboardController{dashboardService: dashboardService, logger: logger}
}

// GetStats returns the variant matching the caller's role; the payload
// shape differs per role, so the client switches on the rol field.
func (ctrl *DashboardController) GetStats(c echo.Context) error {
	stats, err := ctrl.dashboardService.StatsFor(c.Request().Context())
	if err != nil {
		ctrl.logger.Error("GetStats: stats computation failed", zap.Error(err))
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	return utils.SuccessResponse(c, stats, "Estadísticas del panel", http.StatusOK)
}
