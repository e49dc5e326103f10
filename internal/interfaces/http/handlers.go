package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kovilapp/temple-admin/internal/application/port"
	"github.com/kovilapp/temple-admin/internal/application/service"
	"github.com/kovilapp/temple-admin/internal/assistant"
	"github.com/kovilapp/temple-admin/internal/domain/entity"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	receiptService  service.ReceiptService
	staffService    service.StaffService
	conversation    service.ConversationService
	receiptRenderer port.ReceiptRenderer
	reportExporter  port.ReportExporter
	logger          Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	receiptService service.ReceiptService,
	staffService service.StaffService,
	conversation service.ConversationService,
	receiptRenderer port.ReceiptRenderer,
	reportExporter port.ReportExporter,
	logger Logger,
) *Handlers {
	return &Handlers{
		receiptService:  receiptService,
		staffService:    staffService,
		conversation:    conversation,
		receiptRenderer: receiptRenderer,
		reportExporter:  reportExporter,
		logger:          logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// ChatSendRequest is the body of POST /api/chat/messages
type ChatSendRequest struct {
	Text string `json:"text" binding:"required"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// ListReceipts handles GET /api/receipts. With year and month query
// parameters it returns only that month's receipts.
func (h *Handlers) ListReceipts(c *gin.Context) {
	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr != "" && monthStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			badRequest(c, "invalid year")
			return
		}
		month, err := strconv.Atoi(monthStr)
		if err != nil || month < 1 || month > 12 {
			badRequest(c, "invalid month")
			return
		}

		receipts, err := h.receiptService.ListByMonth(c.Request.Context(), year, time.Month(month))
		if err != nil {
			h.logger.Error("Failed to list receipts by month", "error", err)
			internalError(c, "failed to retrieve receipts")
			return
		}
		ok(c, receipts)
		return
	}

	receipts, err := h.receiptService.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list receipts", "error", err)
		internalError(c, "failed to retrieve receipts")
		return
	}
	ok(c, receipts)
}

// CreateReceipt handles POST /api/receipts
func (h *Handlers) CreateReceipt(c *gin.Context) {
	var receipt entity.Receipt
	if err := c.ShouldBindJSON(&receipt); err != nil {
		h.logger.Error("Invalid receipt payload", "error", err)
		badRequest(c, "invalid receipt payload")
		return
	}

	created, err := h.receiptService.Create(c.Request.Context(), &receipt)
	if err != nil {
		if errors.Is(err, service.ErrNoItems) {
			badRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to create receipt", "error", err)
		internalError(c, "failed to create receipt")
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: created})
}

// GetReceipt handles GET /api/receipts/:id
func (h *Handlers) GetReceipt(c *gin.Context) {
	id, done := pathID(c)
	if done {
		return
	}

	receipt, err := h.receiptService.Get(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get receipt", "id", id, "error", err)
		internalError(c, "failed to retrieve receipt")
		return
	}
	if receipt == nil {
		notFound(c, "receipt not found")
		return
	}
	ok(c, receipt)
}

// UpdateReceipt handles PUT /api/receipts/:id
func (h *Handlers) UpdateReceipt(c *gin.Context) {
	id, done := pathID(c)
	if done {
		return
	}

	var receipt entity.Receipt
	if err := c.ShouldBindJSON(&receipt); err != nil {
		badRequest(c, "invalid receipt payload")
		return
	}
	receipt.ID = id

	existing, err := h.receiptService.Get(c.Request.Context(), id)
	if err != nil {
		internalError(c, "failed to retrieve receipt")
		return
	}
	if existing == nil {
		notFound(c, "receipt not found")
		return
	}

	if err := h.receiptService.Update(c.Request.Context(), &receipt); err != nil {
		if errors.Is(err, service.ErrNoItems) {
			badRequest(c, err.Error())
			return
		}
		h.logger.Error("Failed to update receipt", "id", id, "error", err)
		internalError(c, "failed to update receipt")
		return
	}
	ok(c, receipt)
}

// DeleteReceipt handles DELETE /api/receipts/:id
func (h *Handlers) DeleteReceipt(c *gin.Context) {
	id, done := pathID(c)
	if done {
		return
	}

	if err := h.receiptService.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("Failed to delete receipt", "id", id, "error", err)
		internalError(c, "failed to delete receipt")
		return
	}
	ok(c, nil)
}

// ReceiptPdf handles GET /api/receipts/:id/pdf
func (h *Handlers) ReceiptPdf(c *gin.Context) {
	id, done := pathID(c)
	if done {
		return
	}

	receipt, err := h.receiptService.Get(c.Request.Context(), id)
	if err != nil {
		internalError(c, "failed to retrieve receipt")
		return
	}
	if receipt == nil {
		notFound(c, "receipt not found")
		return
	}

	pdf, err := h.receiptRenderer.Render(receipt)
	if err != nil {
		h.logger.Error("Failed to render receipt PDF", "id", id, "error", err)
		internalError(c, "failed to render receipt")
		return
	}

	filename := fmt.Sprintf("Receipt-%s.pdf", receipt.ReceiptNumber)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ListStaff handles GET /api/staff
func (h *Handlers) ListStaff(c *gin.Context) {
	records, err := h.staffService.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list staff", "error", err)
		internalError(c, "failed to retrieve staff records")
		return
	}
	ok(c, records)
}

// CreateStaff handles POST /api/staff
func (h *Handlers) CreateStaff(c *gin.Context) {
	var staff entity.StaffRecord
	if err := c.ShouldBindJSON(&staff); err != nil {
		badRequest(c, "invalid staff payload")
		return
	}

	created, err := h.staffService.Create(c.Request.Context(), &staff)
	if err != nil {
		h.logger.Error("Failed to create staff record", "error", err)
		badRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusCreated, Response{Success: true, Data: created})
}

// GetStaff handles GET /api/staff/:id
func (h *Handlers) GetStaff(c *gin.Context) {
	id, done := pathID(c)
	if done {
		return
	}

	staff, err := h.staffService.Get(c.Request.Context(), id)
	if err != nil {
		internalError(c, "failed to retrieve staff record")
		return
	}
	if staff == nil {
		notFound(c, "staff record not found")
		return
	}
	ok(c, staff)
}

// UpdateStaff handles PUT /api/staff/:id
func (h *Handlers) UpdateStaff(c *gin.Context) {
	id, done := pathID(c)
	if done {
		return
	}

	var staff entity.StaffRecord
	if err := c.ShouldBindJSON(&staff); err != nil {
		badRequest(c, "invalid staff payload")
		return
	}
	staff.ID = id

	existing, err := h.staffService.Get(c.Request.Context(), id)
	if err != nil {
		internalError(c, "failed to retrieve staff record")
		return
	}
	if existing == nil {
		notFound(c, "staff record not found")
		return
	}

	if err := h.staffService.Update(c.Request.Context(), &staff); err != nil {
		h.logger.Error("Failed to update staff record", "id", id, "error", err)
		internalError(c, "failed to update staff record")
		return
	}
	ok(c, staff)
}

// DeleteStaff handles DELETE /api/staff/:id
func (h *Handlers) DeleteStaff(c *gin.Context) {
	id, done := pathID(c)
	if done {
		return
	}

	if err := h.staffService.Delete(c.Request.Context(), id); err != nil {
		h.logger.Error("Failed to delete staff record", "id", id, "error", err)
		internalError(c, "failed to delete staff record")
		return
	}
	ok(c, nil)
}

// YearSummary handles GET /api/summary/:year
func (h *Handlers) YearSummary(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		badRequest(c, "invalid year")
		return
	}

	summaries, err := h.receiptService.YearSummary(c.Request.Context(), year)
	if err != nil {
		h.logger.Error("Failed to build year summary", "year", year, "error", err)
		internalError(c, "failed to build summary")
		return
	}
	ok(c, summaries)
}

// MonthReport handles GET /api/reports/:year/:month and streams the
// spreadsheet register for that month.
func (h *Handlers) MonthReport(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		badRequest(c, "invalid year")
		return
	}
	month, valid := assistant.ParseMonth(c.Param("month"))
	if !valid {
		badRequest(c, "invalid month")
		return
	}

	receipts, err := h.receiptService.ListByMonth(c.Request.Context(), year, month)
	if err != nil {
		internalError(c, "failed to retrieve receipts")
		return
	}

	workbook, err := h.reportExporter.ExportMonth(year, month.String(), receipts)
	if err != nil {
		h.logger.Error("Failed to export month report", "year", year, "month", month.String(), "error", err)
		internalError(c, "failed to export report")
		return
	}

	filename := fmt.Sprintf("Offerings-%s-%d.xlsx", month.String(), year)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}

// ChatState handles GET /api/chat
func (h *Handlers) ChatState(c *gin.Context) {
	ok(c, h.conversation.State())
}

// ChatSend handles POST /api/chat/messages
func (h *Handlers) ChatSend(c *gin.Context) {
	var req ChatSendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "message text is required")
		return
	}

	msg, err := h.conversation.Send(c.Request.Context(), req.Text)
	if err != nil {
		h.logger.Error("Failed to process chat message", "error", err)
		internalError(c, "failed to process message")
		return
	}
	ok(c, msg)
}

// ChatConfirm handles POST /api/chat/messages/:id/confirm
func (h *Handlers) ChatConfirm(c *gin.Context) {
	id, done := chatMessageID(c)
	if done {
		return
	}

	msg, err := h.conversation.Confirm(c.Request.Context(), id)
	if err != nil {
		chatDecisionError(c, err)
		return
	}
	ok(c, msg)
}

// ChatCancel handles POST /api/chat/messages/:id/cancel
func (h *Handlers) ChatCancel(c *gin.Context) {
	id, done := chatMessageID(c)
	if done {
		return
	}

	msg, err := h.conversation.Cancel(c.Request.Context(), id)
	if err != nil {
		chatDecisionError(c, err)
		return
	}
	ok(c, msg)
}

// ChatTriggerSend handles POST /api/chat/messages/:id/send
func (h *Handlers) ChatTriggerSend(c *gin.Context) {
	id, done := chatMessageID(c)
	if done {
		return
	}

	outcome, err := h.conversation.TriggerSend(c.Request.Context(), id)
	if err != nil {
		chatDecisionError(c, err)
		return
	}
	ok(c, outcome)
}

// ChatReset handles POST /api/chat/reset
func (h *Handlers) ChatReset(c *gin.Context) {
	h.conversation.Reset()
	ok(c, h.conversation.State())
}

func chatDecisionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMessageNotFound):
		notFound(c, "message not found")
	case errors.Is(err, service.ErrNoPendingAction):
		c.JSON(http.StatusConflict, Response{Success: false, Error: "no pending action on message"})
	default:
		c.JSON(http.StatusInternalServerError, Response{Success: false, Error: "failed to apply decision"})
	}
}

// chatMessageID parses the :id path parameter of chat routes
func chatMessageID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		badRequest(c, "invalid message ID")
		return 0, true
	}
	return id, false
}

// pathID parses the :id path parameter of record routes
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, "invalid ID")
		return 0, true
	}
	return id, false
}

func ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Error: msg})
}

func notFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, Response{Success: false, Error: msg})
}

func internalError(c *gin.Context, msg string) {
	c.JSON(http.StatusInternalServerError, Response{Success: false, Error: msg})
}
