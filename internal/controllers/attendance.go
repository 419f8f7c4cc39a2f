package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"compuscan/internal/dto"
	"compuscan/internal/services"
	apperrors "compuscan/pkg/errors"
	"compuscan/pkg/utils"
)

type AttendanceController struct {
	attendanceService services.AttendanceServiceInterface
	logger            *zap.Logger
}

func NewAttendanceController(attendanceService services.AttendanceServiceInterface, logger *zap.Logger) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
		logger:            logger,
	}
}

func (ctrl *AttendanceController) errorResponse(c echo.Context, err error) error {
	return utils.ErrorResponse(c, err, ctrl.logger)
}

// targetUser resolves whose ledger a read targets: the caller's own by
// default, anyone's for an administrator via ?usuario_id=.
func targetUser(c echo.Context) (string, error) {
	callerID, err := utils.GetUserIDFromCtx(c.Request().Context())
	if err != nil {
		return "", err
	}

	target := c.QueryParam("usuario_id")
	if target == "" || target == callerID {
		return callerID, nil
	}
	if !utils.GetIsAdminFromCtx(c.Request().Context()) {
		return "", apperrors.ErrForbidden
	}
	return target, nil
}

// parseDay accepts 2006-01-02 or RFC3339. A date-only upper bound is
// stretched to the end of that day so the range stays inclusive.
func parseDay(raw string, endOfDay bool) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return time.Time{}, apperrors.NewInvalidInputError("invalid date, expected YYYY-MM-DD or RFC3339")
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1).Add(-time.Second)
	}
	return t, nil
}

func (ctrl *AttendanceController) recordScan(c echo.Context, record func(c echo.Context, usuarioID, carnetRfid string) (*dto.AsistenciaDTO, error), message string) error {
	var payload dto.RegistrarAsistenciaDTO

	if err := c.Bind(&payload); err != nil {
		ctrl.logger.Error("attendance scan: bad request body", zap.Error(err))
		return ctrl.errorResponse(c, apperrors.NewHttpError(http.StatusBadRequest, "Formato de datos inválido", err, nil))
	}
	if err := c.Validate(&payload); err != nil {
		return ctrl.errorResponse(c, err)
	}

	usuarioID, err := utils.GetUserIDFromCtx(c.Request().Context())
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	asistencia, err := record(c, usuarioID, payload.CarnetRfid)
	if err != nil {
		ctrl.logger.Warn("attendance scan rejected", zap.String("usuarioID", usuarioID), zap.Error(err))
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, asistencia, message, http.StatusCreated)
}

func (ctrl *AttendanceController) RegistrarEntrada(c echo.Context) error {
	return ctrl.recordScan(c, func(c echo.Context, usuarioID, carnetRfid string) (*dto.AsistenciaDTO, error) {
		return ctrl.attendanceService.RecordEntry(c.Request().Context(), usuarioID, carnetRfid)
	}, "Entrada registrada")
}

func (ctrl *AttendanceController) RegistrarSalida(c echo.Context) error {
	return ctrl.recordScan(c, func(c echo.Context, usuarioID, carnetRfid string) (*dto.AsistenciaDTO, error) {
		return ctrl.attendanceService.RecordExit(c.Request().Context(), usuarioID, carnetRfid)
	}, "Salida registrada")
}

func (ctrl *AttendanceController) GetUltima(c echo.Context) error {
	usuarioID, err := targetUser(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	ultima, err := ctrl.attendanceService.LastEventFor(c.Request().Context(), usuarioID)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, ultima, "Última asistencia", http.StatusOK)
}

func (ctrl *AttendanceController) GetEventos(c echo.Context) error {
	usuarioID, err := targetUser(c)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	eventos, err := ctrl.attendanceService.EventsFor(c.Request().Context(), usuarioID)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, eventos, "Historial de asistencias", http.StatusOK)
}

func (ctrl *AttendanceController) GetEnRango(c echo.Context) error {
	desde, err := parseDay(c.QueryParam("desde"), false)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}
	hasta, err := parseDay(c.QueryParam("hasta"), true)
	if err != nil {
		return ctrl.errorResponse(c, err)
	}

	eventos, err := ctrl.attendanceService.EventsInRange(c.Request().Context(), desde, hasta)
	if err != nil {
		ctrl.logger.Error("GetEnRango: range query failed", zap.Error(err))
		return ctrl.errorResponse(c, err)
	}

	return utils.SuccessResponse(c, eventos, "Asistencias en el rango", http.StatusOK)
}
