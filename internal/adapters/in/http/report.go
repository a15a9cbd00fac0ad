package http

import (
	"fmt"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"

	"metrology/internal/core/application/usecases/queries"
	"metrology/internal/core/domain/model/order"
)

var reportHeaders = []string{
	"Serial Number",
	"Order ID",
	"Article Number",
	"Drawing Number",
	"Status",
	"Controller",
	"Features Measured",
	"Features Failed",
	"Created At",
	"Completed At",
}

// DownloadOrdersReport handles GET /api/v1/reports/orders.xlsx - exports the
// whole order set as a spreadsheet, archived orders first.
func (s *Server) DownloadOrdersReport(ctx echo.Context) error {
	board, err := s.getBoardHandler.Handle(ctx.Request().Context(), queries.NewGetBoardQuery())
	if err != nil {
		return internalError(ctx, "Failed to build report")
	}

	f := excelize.NewFile()
	sheet := "Orders"
	f.SetSheetName("Sheet1", sheet)

	f.SetSheetRow(sheet, "A1", &reportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "J1", style)

	docs := append(append([]order.Doc{}, board.Archived...), board.Active...)
	for i, doc := range docs {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := reportRow(doc)
		f.SetSheetRow(sheet, cell, &row)
	}

	f.SetColWidth(sheet, "A", "B", 25)
	f.SetColWidth(sheet, "C", "F", 18)
	f.SetColWidth(sheet, "I", "J", 22)

	fileName := fmt.Sprintf("orders-%s.xlsx", time.Now().UTC().Format("2006-01-02"))
	ctx.Response().Header().Set(echo.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().Header().Set("Content-Disposition", "attachment; filename="+fileName)

	return f.Write(ctx.Response().Writer)
}

func reportRow(doc order.Doc) []any {
	failed := 0
	for _, m := range doc.Results {
		if m.Status != order.StatusOK {
			failed++
		}
	}

	completedAt := ""
	if doc.CompletedAt != nil {
		completedAt = doc.CompletedAt.UTC().Format(time.RFC3339)
	}

	return []any{
		doc.SerialNumber,
		doc.ID,
		doc.ArticleNumber,
		doc.DrawingNumber,
		string(doc.Status),
		doc.Controller,
		len(doc.Results),
		failed,
		doc.CreatedAt.UTC().Format(time.RFC3339),
		completedAt,
	}
}
