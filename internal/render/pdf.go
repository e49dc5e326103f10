// Package render produces the printable donation receipt. The layout mirrors
// the paper receipts the temple office hands out: temple letterhead, a seva
// table, the grand total and the amount spelled out in words.
package render

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/kovilapp/temple-admin/internal/application/port"
	"github.com/kovilapp/temple-admin/internal/domain/entity"
	"github.com/kovilapp/temple-admin/internal/notification"
)

const blessingNote = "Prasadam will be offered in your name. May the blessings of the deity be with you always."

// PdfRenderer implements port.ReceiptRenderer with gofpdf. The temple name
// and address come from configuration so the letterhead matches the trust's
// registration.
type PdfRenderer struct {
	templeName    string
	templeAddress string
}

// NewPdfRenderer creates a new receipt PDF renderer
func NewPdfRenderer(templeName, templeAddress string) *PdfRenderer {
	return &PdfRenderer{
		templeName:    templeName,
		templeAddress: templeAddress,
	}
}

// Render produces an A4 receipt document for the given receipt
func (p *PdfRenderer) Render(receipt *entity.Receipt) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(0, 10, p.templeName, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, p.templeAddress, "", 1, "C", false, 0, "")

	pdf.SetLineWidth(0.5)
	pdf.Line(15, 35, 195, 35)
	pdf.SetY(40)

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Donation & Pooja Receipt", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(90, 6, "Receipt No: "+receipt.ReceiptNumber, "", 0, "L", false, 0, "")
	pdf.CellFormat(90, 6, "Date: "+longDate(receipt.OfferingDate), "", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.CellFormat(0, 6, "Received with thanks from:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, receipt.DevoteeName, "", 1, "L", false, 0, "")
	pdf.Ln(6)

	p.sevaTable(pdf, receipt)

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(135, 8, "Total Amount:", "", 0, "R", false, 0, "")
	pdf.CellFormat(45, 8, rupees(receipt.TotalAmount()), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 8, fmt.Sprintf("In words: Rupees %s Only", AmountInWords(receipt.TotalAmount())), "", 1, "L", false, 0, "")

	pdf.Ln(8)
	pdf.SetLineWidth(0.2)
	y := pdf.GetY()
	pdf.Line(15, y, 195, y)
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 6, blessingNote, "", "C", false)
	pdf.Ln(12)
	pdf.CellFormat(0, 6, "For "+p.templeName+" Trust", "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render receipt pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// sevaTable writes the offering table with a maroon header row
func (p *PdfRenderer) sevaTable(pdf *gofpdf.Fpdf, receipt *entity.Receipt) {
	pdf.SetFillColor(128, 0, 0)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(135, 8, "Seva / Donation Description", "1", 0, "L", true, 0, "")
	pdf.CellFormat(45, 8, "Amount", "1", 1, "R", true, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 10)
	for _, item := range receipt.Items {
		pdf.CellFormat(135, 8, item.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(45, 8, rupees(item.Amount), "1", 1, "R", false, 0, "")
	}
}

// rupees renders an amount for the PDF. The core fonts have no glyph for the
// rupee sign, so the "Rs." prefix stands in for it.
func rupees(amount float64) string {
	return "Rs. " + strings.TrimPrefix(notification.FormatINR(amount), "₹")
}

// longDate formats YYYY-MM-DD as "15 July 2024"
func longDate(date string) string {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return d.Format("02 January 2006")
}

// Verify interface compliance
var _ port.ReceiptRenderer = (*PdfRenderer)(nil)
