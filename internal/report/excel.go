// Package report writes the monthly offerings register as a spreadsheet for
// the temple trust's accountants.
package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/kovilapp/temple-admin/internal/application/port"
	"github.com/kovilapp/temple-admin/internal/domain/entity"
)

const sheetName = "Offerings"

// ExcelExporter implements port.ReportExporter with excelize
type ExcelExporter struct {
	logger *zap.Logger
}

// NewExcelExporter creates a new monthly report exporter
func NewExcelExporter(logger *zap.Logger) *ExcelExporter {
	return &ExcelExporter{logger: logger}
}

// ExportMonth writes one month of receipts to a workbook. Each offering item
// gets its own row so the register can be filtered per seva; the grand total
// sits under the amount column.
func (e *ExcelExporter) ExportMonth(year int, month string, receipts []*entity.Receipt) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	e.setCell(f, "A1", fmt.Sprintf("Offerings Register - %s %d", month, year))

	headers := []string{"Receipt No", "Devotee", "Offering Date", "Seva / Donation", "Amount", "Status"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		e.setCell(f, cell, header)
	}

	row := 4
	var total float64
	for _, receipt := range receipts {
		for _, item := range receipt.Items {
			e.setCell(f, fmt.Sprintf("A%d", row), receipt.ReceiptNumber)
			e.setCell(f, fmt.Sprintf("B%d", row), receipt.DevoteeName)
			e.setCell(f, fmt.Sprintf("C%d", row), receipt.OfferingDate)
			e.setCell(f, fmt.Sprintf("D%d", row), item.Description)
			e.setCell(f, fmt.Sprintf("E%d", row), item.Amount)
			e.setCell(f, fmt.Sprintf("F%d", row), string(receipt.Status))
			row++
		}
		total += receipt.TotalAmount()
	}

	row++
	e.setCell(f, fmt.Sprintf("D%d", row), "Grand Total")
	e.setCell(f, fmt.Sprintf("E%d", row), total)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	e.logger.Info("Monthly report exported",
		zap.String("month", month),
		zap.Int("year", year),
		zap.Int("receipts", len(receipts)))

	return buf.Bytes(), nil
}

// setCell sets a cell value, logging instead of failing on bad coordinates
func (e *ExcelExporter) setCell(f *excelize.File, cell string, value interface{}) {
	if err := f.SetCellValue(sheetName, cell, value); err != nil {
		e.logger.Warn("Failed to set cell value",
			zap.String("cell", cell),
			zap.Error(err))
	}
}

// Verify interface compliance
var _ port.ReportExporter = (*ExcelExporter)(nil)
