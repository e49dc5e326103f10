package workflow

import (
	"context"
	"fmt"
)

// GuardFunc is a function that evaluates whether a transition should be allowed
type GuardFunc func(ctx context.Context) bool

// StateMachine tracks the current conversation state and validates transitions
type StateMachine interface {
	// State returns the current state
	State() State

	// CanFire returns true if the trigger is permitted in the current state
	CanFire(trigger Trigger) bool

	// Fire attempts to execute the trigger, transitioning to the new state if allowed
	Fire(ctx context.Context, trigger Trigger) error
}

// StateConfiguration configures transitions out of a specific state
type StateConfiguration interface {
	// Permit allows a trigger to transition to the target state
	Permit(trigger Trigger, toState State) StateConfiguration

	// PermitIf allows a trigger to transition to the target state if the guard passes
	PermitIf(trigger Trigger, toState State, guard GuardFunc) StateConfiguration
}

// transition is a target state with an optional guard
type transition struct {
	toState State
	guard   GuardFunc
}

type stateConfig struct {
	transitions map[Trigger][]transition
}

type stateMachine struct {
	currentState   State
	configurations map[State]*stateConfig
}

// Builder assembles a state machine configuration
type Builder struct {
	configurations map[State]*stateConfig
}

// NewBuilder creates a new state machine builder
func NewBuilder() *Builder {
	return &Builder{configurations: make(map[State]*stateConfig)}
}

// Configure returns the state configuration for the given state
func (b *Builder) Configure(state State) StateConfiguration {
	if !state.IsValid() {
		panic(fmt.Sprintf("invalid state: %s", state))
	}
	config, ok := b.configurations[state]
	if !ok {
		config = &stateConfig{transitions: make(map[Trigger][]transition)}
		b.configurations[state] = config
	}
	return config
}

// Build creates a new state machine instance with the given initial state.
// The configuration is copied so machines built from one builder do not
// share mutable state.
func (b *Builder) Build(initialState State) StateMachine {
	if !initialState.IsValid() {
		panic(fmt.Sprintf("invalid initial state: %s", initialState))
	}

	configsCopy := make(map[State]*stateConfig, len(b.configurations))
	for state, config := range b.configurations {
		transitionsCopy := make(map[Trigger][]transition, len(config.transitions))
		for trigger, ts := range config.transitions {
			transitionsCopy[trigger] = append([]transition{}, ts...)
		}
		configsCopy[state] = &stateConfig{transitions: transitionsCopy}
	}

	return &stateMachine{
		currentState:   initialState,
		configurations: configsCopy,
	}
}

// Permit allows a trigger to transition to the target state
func (c *stateConfig) Permit(trigger Trigger, toState State) StateConfiguration {
	return c.PermitIf(trigger, toState, nil)
}

// PermitIf allows a trigger to transition to the target state if the guard passes
func (c *stateConfig) PermitIf(trigger Trigger, toState State, guard GuardFunc) StateConfiguration {
	if !toState.IsValid() {
		panic(fmt.Sprintf("invalid target state: %s", toState))
	}
	c.transitions[trigger] = append(c.transitions[trigger], transition{toState: toState, guard: guard})
	return c
}

// State returns the current state
func (m *stateMachine) State() State {
	return m.currentState
}

// CanFire returns true if the trigger is permitted in the current state
func (m *stateMachine) CanFire(trigger Trigger) bool {
	config, ok := m.configurations[m.currentState]
	if !ok {
		return false
	}
	return len(config.transitions[trigger]) > 0
}

// Fire attempts to execute the trigger, transitioning to the new state if allowed
func (m *stateMachine) Fire(ctx context.Context, trigger Trigger) error {
	config, ok := m.configurations[m.currentState]
	if !ok {
		return fmt.Errorf("%w: cannot fire trigger %s from state %s", ErrInvalidTransition, trigger, m.currentState)
	}

	transitions, ok := config.transitions[trigger]
	if !ok || len(transitions) == 0 {
		return fmt.Errorf("%w: cannot fire trigger %s from state %s", ErrInvalidTransition, trigger, m.currentState)
	}

	for _, t := range transitions {
		if t.guard == nil || t.guard(ctx) {
			m.currentState = t.toState
			return nil
		}
	}

	return fmt.Errorf("%w: trigger %s from state %s", ErrGuardFailed, trigger, m.currentState)
}

// NewConversationMachine builds the confirmation lifecycle machine:
// a draft proposal moves the conversation to AWAITING_DECISION, a confirm
// or cancel returns it to IDLE, and a newer proposal while a decision is
// pending supersedes the earlier one.
func NewConversationMachine() StateMachine {
	builder := NewBuilder()

	builder.Configure(StateIdle).
		Permit(TriggerPropose, StateAwaitingDecision)

	builder.Configure(StateAwaitingDecision).
		Permit(TriggerConfirm, StateIdle).
		Permit(TriggerCancel, StateIdle).
		Permit(TriggerPropose, StateAwaitingDecision)

	return builder.Build(StateIdle)
}
