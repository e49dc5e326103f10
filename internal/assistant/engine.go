// Package assistant interprets free-text operator requests through the
// language-model endpoint and materializes the selected callable action as a
// typed, pending Action for the confirmation workflow.
package assistant

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/kovilapp/temple-admin/internal/application/port"
	"github.com/kovilapp/temple-admin/internal/domain/entity"
	"github.com/kovilapp/temple-admin/internal/notification"
	"go.uber.org/zap"
)

// User-facing texts. Lookup failures and endpoint errors are conversation
// messages, never propagated errors.
const (
	textApology        = "Sorry, something went wrong. Please try again."
	textFallback       = "How can I assist you with the temple's activities?"
	textReceiptDraft   = "I have the offering details. Please review and confirm to create the receipt."
	textStaffDraft     = "I have the new person's details. Please review and confirm to add them to the temple records."
	textNoMatch        = "Sorry, no receipts match that information."
	textSmsNeedsBoth   = "I need both the receipt number and the mobile number to prepare an SMS."
)

// Response is the outcome of interpreting one user message
type Response struct {
	Text   string
	Action *entity.Action
}

// Engine maps language-model tool selections onto typed pending actions
type Engine struct {
	completer port.ChatCompleter
	logger    *zap.Logger
	newItemID func() string
}

// New creates a new assistant engine
func New(completer port.ChatCompleter, logger *zap.Logger) *Engine {
	return &Engine{
		completer: completer,
		logger:    logger,
		newItemID: randomItemID,
	}
}

// Tool argument payloads, decoded at the boundary. Unknown tool names and
// undecodable arguments are never propagated inward.
type receiptItemArgs struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

type createReceiptArgs struct {
	DevoteeName  string            `json:"devoteeName"`
	OfferingDate string            `json:"offeringDate"`
	Items        []receiptItemArgs `json:"items"`
	MobileNumber string            `json:"mobileNumber"`
	Notes        string            `json:"notes"`
}

type createStaffArgs struct {
	Name          string `json:"name"`
	Role          string `json:"role"`
	Specialty     string `json:"specialty"`
	ContactPerson string `json:"contactPerson"`
	ContactEmail  string `json:"contactEmail"`
	ContactPhone  string `json:"contactPhone"`
	AddressLine1  string `json:"addressLine1"`
	City          string `json:"city"`
	State         string `json:"state"`
	Pincode       string `json:"pincode"`
}

type getReceiptDetailsArgs struct {
	ReceiptNumber string `json:"receiptNumber"`
	DevoteeName   string `json:"devoteeName"`
}

type getReceiptsByMonthArgs struct {
	Year  int    `json:"year"`
	Month string `json:"month"`
}

type prepareWhatsAppArgs struct {
	ReceiptNumber string `json:"receiptNumber"`
}

type prepareSmsArgs struct {
	ReceiptNumber string `json:"receiptNumber"`
	MobileNumber  string `json:"mobileNumber"`
}

// Interpret sends the user's text to the language-model endpoint and maps
// the selected callable action, if any, to a pending Action. Failures are
// converted to conversational replies; Interpret never returns an error.
func (e *Engine) Interpret(ctx context.Context, userText string, receipts []*entity.Receipt, staff []*entity.StaffRecord) *Response {
	result, err := e.completer.Complete(ctx, userText)
	if err != nil {
		e.logger.Error("Completion call failed", zap.Error(err))
		return &Response{Text: textApology}
	}

	if result.Call == nil {
		text := strings.TrimSpace(result.Text)
		if text == "" {
			text = textFallback
		}
		return &Response{Text: text}
	}

	e.logger.Debug("Tool selected",
		zap.String("tool", result.Call.Name))

	switch result.Call.Name {
	case ToolCreateReceipt:
		return e.handleCreateReceipt(result.Call.Arguments)
	case ToolCreateStaff:
		return e.handleCreateStaff(result.Call.Arguments)
	case ToolGetReceiptDetails:
		return e.handleGetReceiptDetails(result.Call.Arguments, receipts)
	case ToolGetReceiptsByMonth:
		return e.handleGetReceiptsByMonth(result.Call.Arguments, receipts)
	case ToolPrepareWhatsApp:
		return e.handlePrepareWhatsApp(result.Call.Arguments, receipts)
	case ToolPrepareSms:
		return e.handlePrepareSms(result.Call.Arguments, receipts)
	default:
		e.logger.Warn("Ignoring unrecognized tool", zap.String("tool", result.Call.Name))
		text := strings.TrimSpace(result.Text)
		if text == "" {
			text = textFallback
		}
		return &Response{Text: text}
	}
}

func (e *Engine) handleCreateReceipt(args json.RawMessage) *Response {
	var a createReceiptArgs
	if err := json.Unmarshal(args, &a); err != nil {
		e.logger.Error("Bad createReceipt arguments", zap.Error(err))
		return &Response{Text: textApology}
	}

	items := make([]entity.OfferingItem, 0, len(a.Items))
	for _, item := range a.Items {
		items = append(items, entity.OfferingItem{
			ID:          e.newItemID(),
			Description: item.Description,
			Amount:      item.Amount,
		})
	}

	draft := &entity.Receipt{
		DevoteeName:  a.DevoteeName,
		OfferingDate: a.OfferingDate,
		Items:        items,
		Status:       entity.StatusDraft,
		Notes:        a.Notes,
		MobileNumber: a.MobileNumber,
	}

	return &Response{
		Text:   textReceiptDraft,
		Action: &entity.Action{Kind: entity.ActionReceiptDraft, ReceiptDraft: draft},
	}
}

func (e *Engine) handleCreateStaff(args json.RawMessage) *Response {
	var a createStaffArgs
	if err := json.Unmarshal(args, &a); err != nil {
		e.logger.Error("Bad createStaff arguments", zap.Error(err))
		return &Response{Text: textApology}
	}

	draft := &entity.StaffRecord{
		Name:          a.Name,
		Role:          a.Role,
		Specialty:     a.Specialty,
		ContactPerson: a.ContactPerson,
		ContactEmail:  a.ContactEmail,
		ContactPhone:  a.ContactPhone,
		AddressLine1:  a.AddressLine1,
		City:          a.City,
		State:         a.State,
		Pincode:       a.Pincode,
	}

	return &Response{
		Text:   textStaffDraft,
		Action: &entity.Action{Kind: entity.ActionStaffDraft, StaffDraft: draft},
	}
}

func (e *Engine) handleGetReceiptDetails(args json.RawMessage, receipts []*entity.Receipt) *Response {
	var a getReceiptDetailsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		e.logger.Error("Bad getReceiptDetails arguments", zap.Error(err))
		return &Response{Text: textApology}
	}

	found := findReceipt(receipts, a.ReceiptNumber, a.DevoteeName)
	if found == nil {
		return &Response{Text: textNoMatch}
	}

	return &Response{Text: receiptSummary(found)}
}

func (e *Engine) handleGetReceiptsByMonth(args json.RawMessage, receipts []*entity.Receipt) *Response {
	var a getReceiptsByMonthArgs
	if err := json.Unmarshal(args, &a); err != nil {
		e.logger.Error("Bad getReceiptsByMonth arguments", zap.Error(err))
		return &Response{Text: textApology}
	}

	month, ok := ParseMonth(a.Month)
	if !ok {
		return &Response{Text: textApology}
	}

	var found []*entity.Receipt
	for _, r := range receipts {
		if r.InMonth(a.Year, month) {
			found = append(found, r)
		}
	}

	return &Response{Text: monthListing(a.Month, a.Year, found)}
}

func (e *Engine) handlePrepareWhatsApp(args json.RawMessage, receipts []*entity.Receipt) *Response {
	var a prepareWhatsAppArgs
	if err := json.Unmarshal(args, &a); err != nil {
		e.logger.Error("Bad prepareWhatsAppConfirmation arguments", zap.Error(err))
		return &Response{Text: textApology}
	}

	receipt := findByNumber(receipts, a.ReceiptNumber)
	if receipt == nil {
		return &Response{Text: notFoundText(a.ReceiptNumber)}
	}
	if receipt.MobileNumber == "" {
		return &Response{Text: missingPhoneText(a.ReceiptNumber)}
	}

	return &Response{
		Text:   sendConfirmationText(receipt.ReceiptNumber),
		Action: &entity.Action{Kind: entity.ActionSendConfirmation, Receipt: receipt},
	}
}

func (e *Engine) handlePrepareSms(args json.RawMessage, receipts []*entity.Receipt) *Response {
	var a prepareSmsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		e.logger.Error("Bad prepareSms arguments", zap.Error(err))
		return &Response{Text: textApology}
	}

	if a.ReceiptNumber == "" || a.MobileNumber == "" {
		return &Response{Text: textSmsNeedsBoth}
	}

	receipt := findByNumber(receipts, a.ReceiptNumber)
	if receipt == nil {
		return &Response{Text: notFoundText(a.ReceiptNumber)}
	}

	message := notification.SmsBody(receipt)

	return &Response{
		Text: sendSmsText(receipt.ReceiptNumber, a.MobileNumber),
		Action: &entity.Action{
			Kind:         entity.ActionSendSms,
			Receipt:      receipt,
			MobileNumber: a.MobileNumber,
			Message:      message,
		},
	}
}

// findByNumber returns the first receipt whose number equals the given one
// case-insensitively, or nil.
func findByNumber(receipts []*entity.Receipt, number string) *entity.Receipt {
	if number == "" {
		return nil
	}
	for _, r := range receipts {
		if strings.EqualFold(r.ReceiptNumber, number) {
			return r
		}
	}
	return nil
}

// findReceipt resolves a lookup by receipt number or devotee name. An exact
// case-insensitive number match takes priority; otherwise the first receipt
// whose devotee name contains the query is returned.
func findReceipt(receipts []*entity.Receipt, number, devotee string) *entity.Receipt {
	if r := findByNumber(receipts, number); r != nil {
		return r
	}
	if devotee == "" {
		return nil
	}
	needle := strings.ToLower(devotee)
	for _, r := range receipts {
		if strings.Contains(strings.ToLower(r.DevoteeName), needle) {
			return r
		}
	}
	return nil
}

func randomItemID() string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic(err)
	}
	return "itm-" + hex.EncodeToString(buf)
}
