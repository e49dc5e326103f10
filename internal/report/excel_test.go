package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/kovilapp/temple-admin/internal/domain/entity"
)

func TestExportMonthWritesWorkbook(t *testing.T) {
	exporter := NewExcelExporter(zap.NewNop())

	receipts := []*entity.Receipt{
		{
			ReceiptNumber: "REC-10055",
			DevoteeName:   "Kumar",
			OfferingDate:  "2024-07-15",
			Status:        entity.StatusCompleted,
			Items: []entity.OfferingItem{
				{ID: "itm-1", Description: "Archana", Amount: 200},
				{ID: "itm-2", Description: "Prasadam", Amount: 100},
			},
		},
		{
			ReceiptNumber: "REC-10090",
			DevoteeName:   "Priya",
			OfferingDate:  "2024-07-20",
			Status:        entity.StatusCompleted,
			Items: []entity.OfferingItem{
				{ID: "itm-3", Description: "Abhishekam", Amount: 1500},
			},
		},
	}

	out, err := exporter.ExportMonth(2024, "July", receipts)
	require.NoError(t, err)
	require.NotEmpty(t, out)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	title, err := f.GetCellValue(sheetName, "A1")
	require.NoError(t, err)
	assert.Equal(t, "Offerings Register - July 2024", title)

	// one row per offering item
	firstSeva, err := f.GetCellValue(sheetName, "D4")
	require.NoError(t, err)
	assert.Equal(t, "Archana", firstSeva)

	thirdNumber, err := f.GetCellValue(sheetName, "A6")
	require.NoError(t, err)
	assert.Equal(t, "REC-10090", thirdNumber)

	// grand total sits two rows below the last item row
	total, err := f.GetCellValue(sheetName, "E8")
	require.NoError(t, err)
	assert.Equal(t, "1800", total)
}

func TestExportMonthEmpty(t *testing.T) {
	exporter := NewExcelExporter(zap.NewNop())

	out, err := exporter.ExportMonth(2024, "December", nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	total, err := f.GetCellValue(sheetName, "E5")
	require.NoError(t, err)
	assert.Equal(t, "0", total)
}
