package events

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchRunsListenersInRegistrationOrder(t *testing.T) {
	d := NewDefaultDispatcher()
	var order []int

	d.ListenFunc("create_table", func(e Event) error { order = append(order, 1); return nil })
	d.ListenFunc("create_table", func(e Event) error { order = append(order, 2); return nil })

	require.NoError(t, d.Dispatch(NewBaseEvent("create_table")))
	assert.Equal(t, []int{1, 2}, order)
}

func TestDispatchStopsAtFirstListenerError(t *testing.T) {
	d := NewDefaultDispatcher()
	boom := errors.New("boom")
	called := false

	d.ListenFunc("drop_table", func(e Event) error { return boom })
	d.ListenFunc("drop_table", func(e Event) error { called = true; return nil })

	err := d.Dispatch(NewBaseEvent("drop_table"))
	require.Error(t, err)
	assert.False(t, called, "a later listener must not run once an earlier one fails")
}

func TestHasListenersAndForget(t *testing.T) {
	d := NewDefaultDispatcher()
	assert.False(t, d.HasListeners("alter_table"))

	d.ListenFunc("alter_table", func(e Event) error { return nil })
	assert.True(t, d.HasListeners("alter_table"))

	d.Forget("alter_table")
	assert.False(t, d.HasListeners("alter_table"))
}

func TestDispatchOnlyInvokesListenersForMatchingEventName(t *testing.T) {
	d := NewDefaultDispatcher()
	called := false
	d.ListenFunc("create_table", func(e Event) error { called = true; return nil })

	require.NoError(t, d.Dispatch(NewBaseEvent("drop_table")))
	assert.False(t, called)
}

func TestBaseEventPreventDefaultAndSQLBuffer(t *testing.T) {
	ev := NewBaseEvent("create_table")
	assert.False(t, ev.IsDefaultPrevented())

	ev.PreventDefault()
	assert.True(t, ev.IsDefaultPrevented())

	ev.AddSQL("CREATE TABLE widgets (id INTEGER)")
	ev.AddSQL("CREATE INDEX idx_widgets_id ON widgets (id)")
	assert.Equal(t, []string{
		"CREATE TABLE widgets (id INTEGER)",
		"CREATE INDEX idx_widgets_id ON widgets (id)",
	}, ev.SQL())
}
