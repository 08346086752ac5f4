package submissions

import (
	"sync"
	"testing"
	"time"

	"github.com/rolodex-dev/rolodex/internal/commands"
	"github.com/rolodex-dev/rolodex/internal/reconcile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackerBeginAndFinish(t *testing.T) {
	t.Parallel()

	tracker := NewTracker()
	defer tracker.Stop()

	key := tracker.BeginNote(1, commands.NoteCommand{Kind: commands.KindCreate, Content: "hello"})
	require.NotEmpty(t, key)

	pending := tracker.PendingNotes(1)
	require.Len(t, pending, 1)
	assert.Equal(t, key, pending[0].Key)
	assert.Equal(t, reconcile.StatusSubmitting, pending[0].Status)
	assert.Equal(t, "hello", pending[0].Command.Content)
	assert.False(t, pending[0].SubmittedAt.IsZero())

	tracker.Finish(key)

	assert.Empty(t, tracker.PendingNotes(1))
}

func TestTrackerScopesByContact(t *testing.T) {
	t.Parallel()

	tracker := NewTracker()
	defer tracker.Stop()

	tracker.BeginTask(1, commands.TaskCommand{Kind: commands.KindCreate, Description: "for contact one"})
	tracker.BeginTask(2, commands.TaskCommand{Kind: commands.KindDeleteAll})

	assert.Len(t, tracker.PendingTasks(1), 1)
	assert.Len(t, tracker.PendingTasks(2), 1)
	assert.Empty(t, tracker.PendingTasks(3))
}

func TestTrackerNotesAndTasksAreIndependent(t *testing.T) {
	t.Parallel()

	tracker := NewTracker()
	defer tracker.Stop()

	noteKey := tracker.BeginNote(1, commands.NoteCommand{Kind: commands.KindDelete, NoteID: 5})
	taskKey := tracker.BeginTask(1, commands.TaskCommand{Kind: commands.KindDelete, TaskID: 5})

	assert.NotEqual(t, noteKey, taskKey)
	assert.Len(t, tracker.PendingNotes(1), 1)
	assert.Len(t, tracker.PendingTasks(1), 1)

	tracker.Finish(noteKey)

	assert.Empty(t, tracker.PendingNotes(1))
	assert.Len(t, tracker.PendingTasks(1), 1)
}

func TestTrackerPendingOrderIsStable(t *testing.T) {
	t.Parallel()

	tracker := NewTracker()
	defer tracker.Stop()

	for i := 0; i < 5; i++ {
		tracker.BeginTask(1, commands.TaskCommand{Kind: commands.KindCreate, Description: "task"})
	}

	first := tracker.PendingTasks(1)
	second := tracker.PendingTasks(1)

	require.Len(t, first, 5)
	assert.Equal(t, first, second)
}

func TestTrackerConcurrentUse(t *testing.T) {
	t.Parallel()

	tracker := NewTracker()
	defer tracker.Stop()

	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			key := tracker.BeginNote(7, commands.NoteCommand{Kind: commands.KindCreate, Content: "racing"})
			tracker.PendingNotes(7)
			tracker.Finish(key)
		}()
	}

	wg.Wait()

	assert.Empty(t, tracker.PendingNotes(7))
}

func TestTrackerDropsStaleEntries(t *testing.T) {
	t.Parallel()

	tracker := NewTracker()
	defer tracker.Stop()

	tracker.BeginNote(1, commands.NoteCommand{Kind: commands.KindCreate, Content: "abandoned"})
	tracker.BeginTask(1, commands.TaskCommand{Kind: commands.KindCreate, Description: "abandoned"})

	// A cutoff in the future makes every current entry stale.
	tracker.dropStale(time.Now().Add(time.Second))

	assert.Empty(t, tracker.PendingNotes(1))
	assert.Empty(t, tracker.PendingTasks(1))
}
