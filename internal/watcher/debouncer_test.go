package watcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeEvent(path string, op Operation) FileEvent {
	return FileEvent{
		Path:      path,
		Operation: op,
		Timestamp: time.Now(),
	}
}

func collectBatch(t *testing.T, d *Debouncer) []FileEvent {
	t.Helper()
	select {
	case events := <-d.Output():
		return events
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for debounced batch")
		return nil
	}
}

func TestDebouncer_EmitsAfterWindow(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	d.Add(makeEvent("a.go", OpModify))

	events := collectBatch(t, d)
	require.Len(t, events, 1)
	assert.Equal(t, "a.go", events[0].Path)
	assert.Equal(t, OpModify, events[0].Operation)
}

func TestDebouncer_CoalescesCreateModify(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	d.Add(makeEvent("new.go", OpCreate))
	d.Add(makeEvent("new.go", OpModify))

	events := collectBatch(t, d)
	require.Len(t, events, 1)
	assert.Equal(t, OpCreate, events[0].Operation)
}

func TestDebouncer_CreateDeleteCancelsOut(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	d.Add(makeEvent("temp.go", OpCreate))
	d.Add(makeEvent("temp.go", OpDelete))
	d.Add(makeEvent("kept.go", OpModify))

	events := collectBatch(t, d)
	require.Len(t, events, 1)
	assert.Equal(t, "kept.go", events[0].Path)
}

func TestDebouncer_ModifyDeleteBecomesDelete(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	d.Add(makeEvent("gone.go", OpModify))
	d.Add(makeEvent("gone.go", OpDelete))

	events := collectBatch(t, d)
	require.Len(t, events, 1)
	assert.Equal(t, OpDelete, events[0].Operation)
}

func TestDebouncer_DeleteCreateBecomesModify(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	d.Add(makeEvent("swap.go", OpDelete))
	d.Add(makeEvent("swap.go", OpCreate))

	events := collectBatch(t, d)
	require.Len(t, events, 1)
	assert.Equal(t, OpModify, events[0].Operation)
}

func TestDebouncer_SeparatePathsStayApart(t *testing.T) {
	d := NewDebouncer(50 * time.Millisecond)
	defer d.Stop()

	d.Add(makeEvent("a.go", OpModify))
	d.Add(makeEvent("b.go", OpDelete))

	events := collectBatch(t, d)
	assert.Len(t, events, 2)
}

func TestDebouncer_AddAfterStopIsNoop(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	d.Stop()

	// Must not panic or emit
	d.Add(makeEvent("late.go", OpModify))

	_, ok := <-d.Output()
	assert.False(t, ok)
}

func TestDebouncer_StopIsIdempotent(t *testing.T) {
	d := NewDebouncer(10 * time.Millisecond)
	d.Stop()
	d.Stop()
}
