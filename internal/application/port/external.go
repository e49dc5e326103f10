package port

import (
	"context"
	"encoding/json"

	"github.com/kovilapp/temple-admin/internal/domain/entity"
)

// ToolCall is one callable action selected by the language model,
// with its loosely-typed arguments still to be decoded at the boundary.
type ToolCall struct {
	Name      string
	Arguments json.RawMessage
}

// ChatResult is the outcome of one completion call: free text, and at most
// one selected tool call. If the model returns several, only the first is
// surfaced.
type ChatResult struct {
	Text string
	Call *ToolCall
}

// ChatCompleter sends user free text to the language-model endpoint
// configured with the fixed tool registry.
type ChatCompleter interface {
	Complete(ctx context.Context, userText string) (*ChatResult, error)
}

// Notifier prepares outbound notification deep links. Dispatch is
// fire-and-forget from the core's perspective: the returned link is handed
// to the presentation layer, which opens the external application.
type Notifier interface {
	// SendChatConfirmation builds and dispatches a WhatsApp confirmation
	// for the receipt. Returns the deep link that was opened.
	SendChatConfirmation(ctx context.Context, phone string, receipt *entity.Receipt) (string, error)

	// SendSms builds and dispatches an SMS with the prepared message text.
	// Returns the deep link that was opened.
	SendSms(ctx context.Context, phone string, message string) (string, error)
}

// ReceiptRenderer renders a receipt to a printable document
type ReceiptRenderer interface {
	Render(receipt *entity.Receipt) ([]byte, error)
}

// ReportExporter writes a spreadsheet report for a month of receipts
type ReportExporter interface {
	ExportMonth(year int, month string, receipts []*entity.Receipt) ([]byte, error)
}
