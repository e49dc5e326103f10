package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kovilapp/temple-admin/internal/application/port"
	"github.com/kovilapp/temple-admin/internal/domain/entity"
)

type fakeCompleter struct {
	result *port.ChatResult
	err    error
}

func (f *fakeCompleter) Complete(ctx context.Context, userText string) (*port.ChatResult, error) {
	return f.result, f.err
}

func newTestEngine(result *port.ChatResult, err error) *Engine {
	e := New(&fakeCompleter{result: result, err: err}, zap.NewNop())
	e.newItemID = func() string { return "itm-test" }
	return e
}

func toolResult(name string, args interface{}) *port.ChatResult {
	raw, _ := json.Marshal(args)
	return &port.ChatResult{Call: &port.ToolCall{Name: name, Arguments: raw}}
}

func sampleReceipts() []*entity.Receipt {
	return []*entity.Receipt{
		{
			ID:            1,
			ReceiptNumber: "REC-10055",
			DevoteeName:   "Kumar",
			OfferingDate:  "2024-07-15",
			Status:        entity.StatusCompleted,
			MobileNumber:  "9876543210",
			Items: []entity.OfferingItem{
				{ID: "itm-1", Description: "Archana", Amount: 200},
			},
		},
		{
			ID:            2,
			ReceiptNumber: "REC-10090",
			DevoteeName:   "Priya Kumari",
			OfferingDate:  "2024-08-02",
			Status:        entity.StatusCompleted,
			Items: []entity.OfferingItem{
				{ID: "itm-2", Description: "Abhishekam", Amount: 1500},
				{ID: "itm-3", Description: "Prasadam", Amount: 100},
			},
		},
	}
}

func TestInterpretEndpointFailureIsApology(t *testing.T) {
	e := newTestEngine(nil, errors.New("connection refused"))

	resp := e.Interpret(context.Background(), "hello", nil, nil)

	assert.Equal(t, textApology, resp.Text)
	assert.Nil(t, resp.Action)
}

func TestInterpretPlainTextReply(t *testing.T) {
	e := newTestEngine(&port.ChatResult{Text: "Vanakam! The temple opens at 6am."}, nil)

	resp := e.Interpret(context.Background(), "when does the temple open", nil, nil)

	assert.Equal(t, "Vanakam! The temple opens at 6am.", resp.Text)
	assert.Nil(t, resp.Action)
}

func TestInterpretEmptyReplyFallsBack(t *testing.T) {
	e := newTestEngine(&port.ChatResult{Text: "  "}, nil)

	resp := e.Interpret(context.Background(), "hmm", nil, nil)

	assert.Equal(t, textFallback, resp.Text)
}

func TestCreateReceiptProposesDraft(t *testing.T) {
	e := newTestEngine(toolResult(ToolCreateReceipt, map[string]interface{}{
		"devoteeName":  "Kumar",
		"offeringDate": "2024-07-15",
		"items": []map[string]interface{}{
			{"description": "Archana", "amount": 200},
		},
		"mobileNumber": "9876543210",
	}), nil)

	resp := e.Interpret(context.Background(), "receipt for Kumar, archana, 200 rupees", nil, nil)

	require.NotNil(t, resp.Action)
	assert.Equal(t, entity.ActionReceiptDraft, resp.Action.Kind)
	assert.True(t, resp.Action.RequiresDecision())

	draft := resp.Action.ReceiptDraft
	require.NotNil(t, draft)
	assert.Equal(t, "Kumar", draft.DevoteeName)
	assert.Equal(t, entity.StatusDraft, draft.Status)
	require.Len(t, draft.Items, 1)
	assert.Equal(t, "Archana", draft.Items[0].Description)
	assert.Equal(t, 200.0, draft.Items[0].Amount)
	assert.NotEmpty(t, draft.Items[0].ID)
}

func TestCreateStaffProposesDraft(t *testing.T) {
	e := newTestEngine(toolResult(ToolCreateStaff, map[string]interface{}{
		"name":         "Raman",
		"role":         "Head Priest",
		"contactPhone": "9876543210",
	}), nil)

	resp := e.Interpret(context.Background(), "add head priest Raman", nil, nil)

	require.NotNil(t, resp.Action)
	assert.Equal(t, entity.ActionStaffDraft, resp.Action.Kind)
	assert.Equal(t, "Raman", resp.Action.StaffDraft.Name)
}

func TestGetReceiptDetailsByNumber(t *testing.T) {
	e := newTestEngine(toolResult(ToolGetReceiptDetails, map[string]interface{}{
		"receiptNumber": "rec-10055",
	}), nil)

	resp := e.Interpret(context.Background(), "show REC-10055", sampleReceipts(), nil)

	assert.Nil(t, resp.Action)
	assert.Contains(t, resp.Text, "REC-10055")
	assert.Contains(t, resp.Text, "Kumar")
	assert.Contains(t, resp.Text, "15-Jul-2024")
	assert.Contains(t, resp.Text, "₹200")
}

func TestGetReceiptDetailsNumberWinsOverName(t *testing.T) {
	// the devotee name also matches the second receipt; the number decides
	e := newTestEngine(toolResult(ToolGetReceiptDetails, map[string]interface{}{
		"receiptNumber": "REC-10090",
		"devoteeName":   "Kumar",
	}), nil)

	resp := e.Interpret(context.Background(), "details", sampleReceipts(), nil)

	assert.Contains(t, resp.Text, "REC-10090")
	assert.Contains(t, resp.Text, "Priya Kumari")
}

func TestGetReceiptDetailsByNameSubstring(t *testing.T) {
	e := newTestEngine(toolResult(ToolGetReceiptDetails, map[string]interface{}{
		"devoteeName": "priya",
	}), nil)

	resp := e.Interpret(context.Background(), "show priya's receipt", sampleReceipts(), nil)

	assert.Contains(t, resp.Text, "REC-10090")
}

func TestGetReceiptDetailsNoMatch(t *testing.T) {
	e := newTestEngine(toolResult(ToolGetReceiptDetails, map[string]interface{}{
		"receiptNumber": "REC-99999",
	}), nil)

	resp := e.Interpret(context.Background(), "show REC-99999", sampleReceipts(), nil)

	assert.Equal(t, textNoMatch, resp.Text)
}

func TestGetReceiptsByMonthFilters(t *testing.T) {
	e := newTestEngine(toolResult(ToolGetReceiptsByMonth, map[string]interface{}{
		"year":  2024,
		"month": "July",
	}), nil)

	resp := e.Interpret(context.Background(), "receipts for july 2024", sampleReceipts(), nil)

	assert.Contains(t, resp.Text, "Found 1 receipt(s) for July 2024")
	assert.Contains(t, resp.Text, "REC-10055")
	assert.NotContains(t, resp.Text, "REC-10090")
}

func TestGetReceiptsByMonthEmpty(t *testing.T) {
	e := newTestEngine(toolResult(ToolGetReceiptsByMonth, map[string]interface{}{
		"year":  2024,
		"month": "December",
	}), nil)

	resp := e.Interpret(context.Background(), "december receipts", sampleReceipts(), nil)

	assert.Equal(t, "No receipts were recorded in December 2024.", resp.Text)
}

func TestPrepareWhatsAppAttachesSendAction(t *testing.T) {
	e := newTestEngine(toolResult(ToolPrepareWhatsApp, map[string]interface{}{
		"receiptNumber": "REC-10055",
	}), nil)

	resp := e.Interpret(context.Background(), "send confirmation for REC-10055", sampleReceipts(), nil)

	require.NotNil(t, resp.Action)
	assert.Equal(t, entity.ActionSendConfirmation, resp.Action.Kind)
	assert.False(t, resp.Action.RequiresDecision())
	assert.Equal(t, "REC-10055", resp.Action.Receipt.ReceiptNumber)
}

func TestPrepareWhatsAppMissingPhone(t *testing.T) {
	e := newTestEngine(toolResult(ToolPrepareWhatsApp, map[string]interface{}{
		"receiptNumber": "REC-10090",
	}), nil)

	resp := e.Interpret(context.Background(), "send confirmation for REC-10090", sampleReceipts(), nil)

	assert.Nil(t, resp.Action)
	assert.Contains(t, resp.Text, "does not have a mobile number")
}

func TestPrepareWhatsAppUnknownReceipt(t *testing.T) {
	e := newTestEngine(toolResult(ToolPrepareWhatsApp, map[string]interface{}{
		"receiptNumber": "REC-00000",
	}), nil)

	resp := e.Interpret(context.Background(), "send it", sampleReceipts(), nil)

	assert.Nil(t, resp.Action)
	assert.Contains(t, resp.Text, "could not find receipt REC-00000")
}

func TestPrepareSmsNeedsBothArguments(t *testing.T) {
	e := newTestEngine(toolResult(ToolPrepareSms, map[string]interface{}{
		"receiptNumber": "REC-10055",
	}), nil)

	resp := e.Interpret(context.Background(), "sms Kumar", sampleReceipts(), nil)

	assert.Nil(t, resp.Action)
	assert.Equal(t, textSmsNeedsBoth, resp.Text)
}

func TestPrepareSmsAttachesMessage(t *testing.T) {
	e := newTestEngine(toolResult(ToolPrepareSms, map[string]interface{}{
		"receiptNumber": "REC-10055",
		"mobileNumber":  "9876543210",
	}), nil)

	resp := e.Interpret(context.Background(), "sms 9876543210 about REC-10055", sampleReceipts(), nil)

	require.NotNil(t, resp.Action)
	assert.Equal(t, entity.ActionSendSms, resp.Action.Kind)
	assert.Equal(t, "9876543210", resp.Action.MobileNumber)
	assert.Contains(t, resp.Action.Message, "REC-10055")
}

func TestUnknownToolFallsBackToText(t *testing.T) {
	e := newTestEngine(&port.ChatResult{
		Text: "Let me check.",
		Call: &port.ToolCall{Name: "deleteEverything", Arguments: json.RawMessage(`{}`)},
	}, nil)

	resp := e.Interpret(context.Background(), "do something odd", nil, nil)

	assert.Nil(t, resp.Action)
	assert.Equal(t, "Let me check.", resp.Text)
}

func TestBadArgumentsAreApology(t *testing.T) {
	e := newTestEngine(&port.ChatResult{
		Call: &port.ToolCall{Name: ToolCreateReceipt, Arguments: json.RawMessage(`{"items": "nope"}`)},
	}, nil)

	resp := e.Interpret(context.Background(), "receipt", nil, nil)

	assert.Nil(t, resp.Action)
	assert.Equal(t, textApology, resp.Text)
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		in    string
		month time.Month
		ok    bool
	}{
		{"July", time.July, true},
		{"july", time.July, true},
		{"JUL", time.July, true},
		{"dec", time.December, true},
		{"", 0, false},
		{"Julyy", 0, false},
	}
	for _, tt := range tests {
		m, ok := ParseMonth(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		if tt.ok {
			assert.Equal(t, tt.month, m, tt.in)
		}
	}
}
