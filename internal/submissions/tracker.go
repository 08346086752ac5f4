// Package submissions tracks mutation requests that are still in flight, so
// overlapping list reads can merge them into an optimistic view. Handlers
// register a submission before applying it to the store and remove it once the
// request finishes, whether it confirmed or failed.
package submissions

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rolodex-dev/rolodex/internal/commands"
	"github.com/rolodex-dev/rolodex/internal/reconcile"
)

// maxAge is the cutoff after which the sweeper drops an entry. A request that
// has not finished within this window died without calling Finish.
const maxAge = time.Minute

const sweepInterval = 30 * time.Second

type noteEntry struct {
	contactID   uint
	command     commands.NoteCommand
	submittedAt time.Time
}

type taskEntry struct {
	contactID   uint
	command     commands.TaskCommand
	submittedAt time.Time
}

type Tracker struct {
	mu     sync.RWMutex
	notes  map[string]noteEntry // correlation key -> entry
	tasks  map[string]taskEntry
	cancel context.CancelFunc
}

// Default is the tracker the handlers share.
var Default = NewTracker()

func NewTracker() *Tracker {
	ctx, cancel := context.WithCancel(context.Background())

	t := &Tracker{
		notes:  make(map[string]noteEntry),
		tasks:  make(map[string]taskEntry),
		cancel: cancel,
	}

	go t.sweep(ctx)

	return t
}

// Stop shuts down the stale-entry sweeper.
func (t *Tracker) Stop() {
	t.cancel()
}

// BeginNote registers an in-flight note mutation and returns its correlation key.
func (t *Tracker) BeginNote(contactID uint, cmd commands.NoteCommand) string {
	key := uuid.NewString()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.notes[key] = noteEntry{
		contactID:   contactID,
		command:     cmd,
		submittedAt: time.Now(),
	}

	return key
}

// BeginTask registers an in-flight task mutation and returns its correlation key.
func (t *Tracker) BeginTask(contactID uint, cmd commands.TaskCommand) string {
	key := uuid.NewString()

	t.mu.Lock()
	defer t.mu.Unlock()

	t.tasks[key] = taskEntry{
		contactID:   contactID,
		command:     cmd,
		submittedAt: time.Now(),
	}

	return key
}

// Finish drops a submission once its request has confirmed or failed. The
// next list read uses only the refreshed confirmed rows.
func (t *Tracker) Finish(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.notes, key)
	delete(t.tasks, key)
}

// PendingNotes snapshots the in-flight note submissions for one contact.
func (t *Tracker) PendingNotes(contactID uint) []reconcile.NoteSubmission {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var pending []reconcile.NoteSubmission

	for key, entry := range t.notes {
		if entry.contactID != contactID {
			continue
		}

		pending = append(pending, reconcile.NoteSubmission{
			Key:         key,
			Status:      reconcile.StatusSubmitting,
			Command:     entry.command,
			SubmittedAt: entry.submittedAt,
		})
	}

	// Map iteration order is random; the reconciler needs a stable input.
	sort.Slice(pending, func(i, j int) bool {
		if !pending[i].SubmittedAt.Equal(pending[j].SubmittedAt) {
			return pending[i].SubmittedAt.Before(pending[j].SubmittedAt)
		}
		return pending[i].Key < pending[j].Key
	})

	return pending
}

// PendingTasks snapshots the in-flight task submissions for one contact.
func (t *Tracker) PendingTasks(contactID uint) []reconcile.TaskSubmission {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var pending []reconcile.TaskSubmission

	for key, entry := range t.tasks {
		if entry.contactID != contactID {
			continue
		}

		pending = append(pending, reconcile.TaskSubmission{
			Key:         key,
			Status:      reconcile.StatusSubmitting,
			Command:     entry.command,
			SubmittedAt: entry.submittedAt,
		})
	}

	sort.Slice(pending, func(i, j int) bool {
		if !pending[i].SubmittedAt.Equal(pending[j].SubmittedAt) {
			return pending[i].SubmittedAt.Before(pending[j].SubmittedAt)
		}
		return pending[i].Key < pending[j].Key
	})

	return pending
}

// sweep periodically drops entries whose request never finished.
func (t *Tracker) sweep(ctx context.Context) {
	ticker := time.NewTicker(sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.dropStale(time.Now().Add(-maxAge))
		}
	}
}

func (t *Tracker) dropStale(cutoff time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for key, entry := range t.notes {
		if entry.submittedAt.Before(cutoff) {
			log.Printf("Dropping stale note submission %s", key)
			delete(t.notes, key)
		}
	}

	for key, entry := range t.tasks {
		if entry.submittedAt.Before(cutoff) {
			log.Printf("Dropping stale task submission %s", key)
			delete(t.tasks, key)
		}
	}
}
