package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"compuscan/internal/dto"
	"compuscan/internal/services"
	apperrors "compuscan/pkg/errors"
	"compuscan/pkg/utils"
)

type UserController struct {
	userService services.UserServiceInterface
	logger      *zap.Logger
}

func NewUserController(userService services.UserServiceInterface, logger *zap.Logger) *UserController {
	return &UserController{
		userService: userService,
		logger:      logger,
	}
}

func (ctrl *UserController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *UserController) GetUsers(c echo.Context) error {
	filter := utils.ParseFilterFromQuery(c.Request().URL.Query())

	users, total, err := ctrl.userService.GetUsers(c.Request().Context(), filter)
	if err != nil {
		ctrl.logger.Error("GetUsers: listing failed", zap.Error(err))
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, users, "Lista de usuarios", http.StatusOK, total)
}

func (ctrl *UserController) FindUser(c echo.Context) error {
	user, err := ctrl.userService.FindUser(c.Request().Context(), c.Param("id"))
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, user, "Usuario encontrado", http.StatusOK)
}

// FindUserByRfid resolves a badge scan to its owner. This is what the scan
// station calls before recording attendance.
func (ctrl *UserController) FindUserByRfid(c echo.Context) error {
	user, err := ctrl.userService.FindUserByRfid(c.Request().Context(), c.Param("carnet"))
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, user, "Usuario encontrado", http.StatusOK)
}

func (ctrl *UserController) UpdateUser(c echo.Context) error {
	var payload dto.UpdateUserDTO

	if err := c.Bind(&payload); err != nil {
		ctrl.logger.Error("UpdateUser: bad request body", zap.Error(err))
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Formato de datos inválido", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	user, err := ctrl.userService.UpdateUser(c.Request().Context(), c.Param("id"), payload)
	if err != nil {
		ctrl.logger.Error("UpdateUser: update failed", zap.String("id", c.Param("id")), zap.Error(err))
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, user, "Usuario actualizado", http.StatusOK)
}

func (ctrl *UserController) DeleteUser(c echo.Context) error {
	if err := ctrl.userService.DeleteUser(c.Request().Context(), c.Param("id")); err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, nil, "Usuario eliminado", http.StatusOK)
}

func (ctrl *UserController) UploadPhoto(c echo.Context) error {
	fileHeader, err := c.FormFile("foto")
	if err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Se requiere el archivo 'foto'", err, nil))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "No se pudo leer el archivo", err, nil))
	}
	defer src.Close()

	user, err := ctrl.userService.SetProfilePhoto(c.Request().Context(), c.Param("id"), src, fileHeader.Filename)
	if err != nil {
		ctrl.logger.Error("UploadPhoto: upload failed", zap.String("id", c.Param("id")), zap.Error(err))
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, user, "Foto de perfil actualizada", http.StatusOK)
}
