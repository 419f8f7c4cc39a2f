package routes

import (
	"github.com/labstack/echo/v4"

	"compuscan/internal/controllers"
	"compuscan/pkg/middleware"
)

func runAttendanceRouter(secureGroup *echo.Group, attendanceCtrl *controllers.AttendanceController, authMW *middleware.AuthMiddleware) {
	secureGroup.POST("/asistencias/entrada", attendanceCtrl.RegistrarEntrada)
	secureGroup.POST("/asistencias/salida", attendanceCtrl.RegistrarSalida)
	secureGroup.GET("/asistencias/ultima", attendanceCtrl.GetUltima)
	secureGroup.GET("/asistencias", attendanceCtrl.GetEventos)
	secureGroup.GET("/asistencias/rango", attendanceCtrl.GetEnRango, authMW.RequireAdmin)
}
