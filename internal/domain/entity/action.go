package entity

// ActionKind identifies the variant of a pending assistant action
type ActionKind string

const (
	ActionReceiptDraft     ActionKind = "receipt_draft"
	ActionStaffDraft       ActionKind = "staff_draft"
	ActionSendConfirmation ActionKind = "send_confirmation"
	ActionSendSms          ActionKind = "send_sms"
)

// Action is a pending, human-confirmable operation proposed by the assistant.
// Exactly one of the payload fields is set, selected by Kind. Actions are
// transient: they live on a single chat message and are consumed on
// confirm, cancel or send.
type Action struct {
	Kind ActionKind `json:"kind"`

	// ActionReceiptDraft: partial receipt awaiting confirmation
	ReceiptDraft *Receipt `json:"receipt_draft,omitempty"`

	// ActionStaffDraft: partial staff record awaiting confirmation
	StaffDraft *StaffRecord `json:"staff_draft,omitempty"`

	// ActionSendConfirmation / ActionSendSms: target receipt
	Receipt *Receipt `json:"receipt,omitempty"`

	// ActionSendSms only
	MobileNumber string `json:"mobile_number,omitempty"`
	Message      string `json:"message,omitempty"`
}

// RequiresDecision reports whether the action needs an explicit
// confirm/cancel choice. Send-kind actions carry a single trigger instead.
func (a *Action) RequiresDecision() bool {
	return a.Kind == ActionReceiptDraft || a.Kind == ActionStaffDraft
}
