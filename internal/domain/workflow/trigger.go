package workflow

// Trigger represents an event that can cause a state transition
type Trigger string

const (
	// TriggerPropose fires when the assistant attaches a draft requiring
	// a decision. Firing it while a decision is already pending supersedes
	// the earlier proposal.
	TriggerPropose Trigger = "PROPOSE"

	// TriggerConfirm fires when the operator confirms the pending draft
	TriggerConfirm Trigger = "CONFIRM"

	// TriggerCancel fires when the operator rejects the pending draft
	TriggerCancel Trigger = "CANCEL"
)

// String returns the string representation of the trigger
func (t Trigger) String() string {
	return string(t)
}
