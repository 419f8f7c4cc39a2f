package routes

import (
	"github.com/labstack/echo/v4"

	"compuscan/internal/controllers"
	"compuscan/pkg/middleware"
)

func runReportRouter(secureGroup *echo.Group, reportCtrl *controllers.ReportController, authMW *middleware.AuthMiddleware) {
	secureGroup.GET("/reportes/asistencias", reportCtrl.GetAttendanceReport, authMW.RequireAdmin)
}
