package workflow

import (
	"context"
	"testing"

	"github.com/JaimeStill/go-agents-orchestration/pkg/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvanceFollowsTransitionTable(t *testing.T) {
	e := &execution{stage: StageCreated}

	require.NoError(t, e.advance(StageResearching))
	require.NoError(t, e.advance(StageQualifying))

	err := e.advance(StageDrafting)
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StageQualifying, e.stage, "refused move must not change the stage")

	require.NoError(t, e.advance(StageRouteOutreach))
	require.NoError(t, e.advance(StageDrafting))
}

func TestNodeRejectsOutOfOrderStage(t *testing.T) {
	e := &execution{stage: StageCreated}

	var called bool
	node := e.node(StageDrafting, func(_ context.Context, s state.State) (state.State, error) {
		called = true
		return s, nil
	})

	_, err := node.Execute(context.Background(), state.New(nil))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDraftFailed)
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.False(t, called, "step must not run after a refused transition")
	assert.ErrorIs(t, e.err, ErrInvalidTransition, "failure is recorded on the execution")
	assert.Equal(t, StageCreated, e.stage)
}
