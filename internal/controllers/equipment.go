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

type EquipmentController struct {
	equipmentService services.EquipmentServiceInterface
	logger           *zap.Logger
}

func NewEquipmentController(equipmentService services.EquipmentServiceInterface, logger *zap.Logger) *EquipmentController {
	return &EquipmentController{
		equipmentService: equipmentService,
		logger:           logger,
	}
}

func (ctrl *EquipmentController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

func (ctrl *EquipmentController) GetEquipos(c echo.Context) error {
	filter := utils.ParseFilterFromQuery(c.Request().URL.Query())

	equipos, total, err := ctrl.equipmentService.GetEquipos(c.Request().Context(), filter)
	if err != nil {
		ctrl.logger.Error("GetEquipos: listing failed", zap.Error(err))
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, equipos, "Lista de equipos", http.StatusOK, total)
}

func (ctrl *EquipmentController) GetEquiposByUsuario(c echo.Context) error {
	equipos, err := ctrl.equipmentService.GetEquiposByUsuario(c.Request().Context(), c.Param("usuarioId"))
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, equipos, "Equipos del usuario", http.StatusOK)
}

func (ctrl *EquipmentController) FindEquipo(c echo.Context) error {
	equipo, err := ctrl.equipmentService.FindEquipo(c.Request().Context(), c.Param("id"))
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, equipo, "Equipo encontrado", http.StatusOK)
}

func (ctrl *EquipmentController) CreateEquipo(c echo.Context) error {
	var payload dto.CreateEquipoDTO

	if err := c.Bind(&payload); err != nil {
		ctrl.logger.Error("CreateEquipo: bad request body", zap.Error(err))
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Formato de datos inválido", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	equipo, err := ctrl.equipmentService.CreateEquipo(c.Request().Context(), payload)
	if err != nil {
		ctrl.logger.Error("CreateEquipo: creation failed", zap.Error(err))
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, equipo, "Equipo registrado", http.StatusCreated)
}

func (ctrl *EquipmentController) UpdateEquipo(c echo.Context) error {
	var payload dto.UpdateEquipoDTO

	if err := c.Bind(&payload); err != nil {
		ctrl.logger.Error("UpdateEquipo: bad request body", zap.Error(err))
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Formato de datos inválido", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	equipo, err := ctrl.equipmentService.UpdateEquipo(c.Request().Context(), c.Param("id"), payload)
	if err != nil {
		ctrl.logger.Error("UpdateEquipo: update failed", zap.String("id", c.Param("id")), zap.Error(err))
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, equipo, "Equipo actualizado", http.StatusOK)
}

func (ctrl *EquipmentController) DeleteEquipo(c echo.Context) error {
	if err := ctrl.equipmentService.DeleteEquipo(c.Request().Context(), c.Param("id")); err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, nil, "Equipo eliminado", http.StatusOK)
}
