package workflow

// State represents a conversation state in the confirmation lifecycle
type State string

const (
	// StateIdle means no assistant proposal is awaiting a decision
	StateIdle State = "IDLE"

	// StateAwaitingDecision means a draft proposal is pending an explicit
	// confirm or cancel from the operator
	StateAwaitingDecision State = "AWAITING_DECISION"
)

var validStates = map[State]bool{
	StateIdle:             true,
	StateAwaitingDecision: true,
}

// String returns the string representation of the state
func (s State) String() string {
	return string(s)
}

// IsValid returns true if the state is a valid conversation state
func (s State) IsValid() bool {
	return validStates[s]
}
