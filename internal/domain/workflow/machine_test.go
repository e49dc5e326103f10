package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConversationMachine_ProposeConfirm(t *testing.T) {
	m := NewConversationMachine()
	ctx := context.Background()

	assert.Equal(t, StateIdle, m.State())

	require.NoError(t, m.Fire(ctx, TriggerPropose))
	assert.Equal(t, StateAwaitingDecision, m.State())

	require.NoError(t, m.Fire(ctx, TriggerConfirm))
	assert.Equal(t, StateIdle, m.State())
}

func TestConversationMachine_ProposeCancel(t *testing.T) {
	m := NewConversationMachine()
	ctx := context.Background()

	require.NoError(t, m.Fire(ctx, TriggerPropose))
	require.NoError(t, m.Fire(ctx, TriggerCancel))
	assert.Equal(t, StateIdle, m.State())
}

func TestConversationMachine_ConfirmWithoutProposal(t *testing.T) {
	m := NewConversationMachine()

	err := m.Fire(context.Background(), TriggerConfirm)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidTransition))
	assert.Equal(t, StateIdle, m.State())
}

func TestConversationMachine_ProposeSupersedes(t *testing.T) {
	m := NewConversationMachine()
	ctx := context.Background()

	require.NoError(t, m.Fire(ctx, TriggerPropose))
	// A second proposal while a decision is pending stays in AWAITING_DECISION.
	require.NoError(t, m.Fire(ctx, TriggerPropose))
	assert.Equal(t, StateAwaitingDecision, m.State())

	require.NoError(t, m.Fire(ctx, TriggerCancel))
	assert.Equal(t, StateIdle, m.State())
}

func TestConversationMachine_CanFire(t *testing.T) {
	m := NewConversationMachine()

	assert.True(t, m.CanFire(TriggerPropose))
	assert.False(t, m.CanFire(TriggerConfirm))
	assert.False(t, m.CanFire(TriggerCancel))

	require.NoError(t, m.Fire(context.Background(), TriggerPropose))
	assert.True(t, m.CanFire(TriggerConfirm))
	assert.True(t, m.CanFire(TriggerCancel))
}

func TestBuilder_GuardBlocksTransition(t *testing.T) {
	builder := NewBuilder()
	builder.Configure(StateIdle).
		PermitIf(TriggerPropose, StateAwaitingDecision, func(ctx context.Context) bool { return false })
	m := builder.Build(StateIdle)

	err := m.Fire(context.Background(), TriggerPropose)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGuardFailed))
	assert.Equal(t, StateIdle, m.State())
}
