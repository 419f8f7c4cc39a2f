package routes

import (
	"github.com/labstack/echo/v4"

	"compuscan/internal/controllers"
)

func runDashboardRouter(secureGroup *echo.Group, dashboardCtrl *controllers.DashboardController) {
	secureGroup.GET("/dashboard/stats", dashboardCtrl.GetStats)
}
