package routes

import (
	"github.com/labstack/echo/v4"

	"compuscan/internal/controllers"
)

func runAuthRouter(api *echo.Group, secureGroup *echo.Group, authCtrl *controllers.AuthController) {
	api.POST("/auth/register", authCtrl.Register)
	api.POST("/auth/login", authCtrl.Login)
	api.POST("/auth/refresh", authCtrl.Refresh)

	secureGroup.GET("/auth/me", authCtrl.Me)
}
