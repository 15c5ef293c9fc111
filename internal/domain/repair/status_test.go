package repair

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tallergestion/workshop-api/internal/httperr"
)

func TestCanTransition(t *testing.T) {
	t.Run("pending to in_progress", func(t *testing.T) {
		require.NoError(t, CanTransition(StatusPending, StatusInProgress))
	})

	t.Run("in_progress to completed", func(t *testing.T) {
		require.NoError(t, CanTransition(StatusInProgress, StatusCompleted))
	})

	t.Run("pending cannot complete directly", func(t *testing.T) {
		err := CanTransition(StatusPending, StatusCompleted)
		require.True(t, httperr.IsBusiness(err, "invalid_transition"))
	})

	t.Run("terminal states are frozen", func(t *testing.T) {
		require.Error(t, CanTransition(StatusCompleted, StatusInProgress))
		require.Error(t, CanTransition(StatusCancelled, StatusPending))
	})
}

func TestCanTake(t *testing.T) {
	require.NoError(t, CanTake(StatusPending, false))

	err := CanTake(StatusPending, true)
	require.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))

	err = CanTake(StatusInProgress, false)
	require.True(t, httperr.IsBusiness(err, httperr.CodeInvalidState))
}

func TestValidators(t *testing.T) {
	require.True(t, ValidStatus("waiting_parts"))
	require.False(t, ValidStatus("paused"))
	require.True(t, ValidCondition("critical"))
	require.False(t, ValidCondition("destroyed"))
}
