package routes

import (
	"github.com/labstack/echo/v4"

	"compuscan/internal/controllers"
	"compuscan/pkg/middleware"
)

func runUserRouter(secureGroup *echo.Group, userCtrl *controllers.UserController, authMW *middleware.AuthMiddleware) {
	secureGroup.GET("/usuarios", userCtrl.GetUsers, authMW.RequireAdmin)
	secureGroup.GET("/usuario/:id", userCtrl.FindUser)
	secureGroup.GET("/usuario/rfid/:carnet", userCtrl.FindUserByRfid)
	secureGroup.PUT("/usuario/:id", userCtrl.UpdateUser)
	secureGroup.DELETE("/usuario/:id", userCtrl.DeleteUser, authMW.RequireAdmin)
	secureGroup.POST("/usuario/:id/foto", userCtrl.UploadPhoto)
}
