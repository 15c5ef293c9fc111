package task

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tallergestion/workshop-api/internal/httperr"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		ok       bool
	}{
		{StatusTodo, StatusInProgress, true},
		{StatusTodo, StatusDone, true},
		{StatusInProgress, StatusTodo, true},
		{StatusInProgress, StatusDone, true},
		{StatusDone, StatusInProgress, true},
		{StatusDone, StatusTodo, false},
		{StatusDone, StatusDone, false},
		{StatusTodo, StatusTodo, false},
	}

	for _, tc := range cases {
		err := CanTransition(tc.from, tc.to)
		if tc.ok {
			require.NoErrorf(t, err, "%s -> %s", tc.from, tc.to)
		} else {
			require.Truef(t, httperr.IsBusiness(err, "invalid_transition"),
				"%s -> %s debe rechazarse", tc.from, tc.to)
		}
	}
}

func TestValidators(t *testing.T) {
	require.True(t, ValidStatus("todo"))
	require.True(t, ValidStatus("in_progress"))
	require.True(t, ValidStatus("done"))
	require.False(t, ValidStatus("archived"))

	require.True(t, ValidPriority("low"))
	require.True(t, ValidPriority("medium"))
	require.True(t, ValidPriority("high"))
	require.False(t, ValidPriority("urgent"))

	require.Equal(t, StatusTodo, InitialStatus())
}
