package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"compuscan/internal/dto"
	"compuscan/internal/services"
	"compuscan/pkg/utils"
)

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

// GetAttendanceReport returns the attendance report as JSON, or as a
// spreadsheet when ?format=xlsx is given.
func (ctrl *ReportController) GetAttendanceReport(c echo.Context) error {
	desde, err := parseDay(c.QueryParam("desde"), false)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}
	hasta, err := parseDay(c.QueryParam("hasta"), true)
	if err != nil {
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	items, err := ctrl.reportService.AttendanceReport(c.Request().Context(), desde, hasta)
	if err != nil {
		ctrl.logger.Error("GetAttendanceReport: report failed", zap.Error(err))
		return utils.ErrorResponse(c, err, ctrl.logger)
	}

	if strings.ToLower(c.QueryParam("format")) == "xlsx" {
		return ctrl.respondWithXLSX(c, items)
	}

	return utils.SuccessResponse(c, items, "Reporte de asistencias", http.StatusOK)
}

var reportHeaders = []string{
	"Fecha", "Nombre", "Apellido", "Email", "Carnet RFID", "Tipo", "Estado",
}

func reportRow(item dto.ReportItemDTO) []interface{} {
	return []interface{}{
		item.Fecha, item.Nombre, item.Apellido, item.Email,
		item.CarnetRfid, item.Tipo, item.Estado,
	}
}

func (ctrl *ReportController) respondWithXLSX(c echo.Context, items []dto.ReportItemDTO) error {
	f := excelize.NewFile()
	sheet := "Asistencias"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &reportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "G1", style)

	for i, item := range items {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := reportRow(item)
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "A", "A", 22)
	f.SetColWidth(sheet, "B", "C", 18)
	f.SetColWidth(sheet, "D", "D", 30)
	f.SetColWidth(sheet, "E", "E", 20)

	fileName := fmt.Sprintf("asistencias_%s.xlsx", time.Now().Format("2006-01-02"))
	c.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)
	c.Response().WriteHeader(http.StatusOK)
	return f.Write(c.Response().Writer)
}
