package routes

import (
	"github.com/labstack/echo/v4"

	"compuscan/internal/controllers"
	"compuscan/pkg/middleware"
)

func runEquipmentRouter(secureGroup *echo.Group, equipmentCtrl *controllers.EquipmentController, authMW *middleware.AuthMiddleware) {
	secureGroup.GET("/equipos", equipmentCtrl.GetEquipos, authMW.RequireAdmin)
	secureGroup.GET("/equipos/usuario/:usuarioId", equipmentCtrl.GetEquiposByUsuario)
	secureGroup.GET("/equipo/:id", equipmentCtrl.FindEquipo)
	secureGroup.POST("/equipo", equipmentCtrl.CreateEquipo)
	secureGroup.PUT("/equipo/:id", equipmentCtrl.UpdateEquipo)
	secureGroup.DELETE("/equipo/:id", equipmentCtrl.DeleteEquipo)
}
