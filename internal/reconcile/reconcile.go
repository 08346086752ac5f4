// Package reconcile merges the last confirmed list of notes or tasks with the
// mutations still in flight for the same contact, producing the list a client
// should render. The merge is a pure function of its two inputs: same
// confirmed snapshot plus same pending set always yields the same output, and
// neither input is modified.
//
// Keying is by record id (confirmed rows) or correlation key (unconfirmed
// creates), never by list position, so confirmations may arrive in any order.
package reconcile

import (
	"sort"
	"time"

	"github.com/rolodex-dev/rolodex/internal/commands"
)

// Status of an in-flight submission.
type Status int

const (
	// StatusSubmitting marks a submission whose request has not finished.
	// Only submissions in this state contribute to the merged view.
	StatusSubmitting Status = iota
	// StatusDone marks a confirmed submission awaiting removal; its result
	// is already (or about to be) part of the confirmed snapshot.
	StatusDone
)

// Note is the rendered view of one note.
type Note struct {
	ID        uint      `json:"id"`
	Key       string    `json:"key,omitempty"` // Correlation key; set while the record is unconfirmed
	Content   string    `json:"content"`
	Date      time.Time `json:"date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Pending   bool      `json:"pending"`
}

// Task is the rendered view of one task.
type Task struct {
	ID          uint       `json:"id"`
	Key         string     `json:"key,omitempty"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
	CreatedAt   time.Time  `json:"created_at"`
	Pending     bool       `json:"pending"`
}

// NoteSubmission is one in-flight note mutation.
type NoteSubmission struct {
	Key         string
	Status      Status
	Command     commands.NoteCommand
	SubmittedAt time.Time
}

// TaskSubmission is one in-flight task mutation.
type TaskSubmission struct {
	Key         string
	Status      Status
	Command     commands.TaskCommand
	SubmittedAt time.Time
}

// Notes merges confirmed notes with pending note submissions.
//
// Creates contribute synthetic entries keyed by correlation key, edits
// override content and date in place, deletes hide the record. A delete and an
// edit pending for the same id compose with the delete winning. The result is
// ordered by date descending, then creation time descending, then id.
func Notes(confirmed []Note, pending []NoteSubmission) []Note {
	deleted := make(map[uint]bool)
	edits := make(map[uint]commands.NoteCommand)
	var synthetic []Note

	for _, sub := range pending {
		if sub.Status != StatusSubmitting {
			continue
		}

		switch sub.Command.Kind {
		case commands.KindCreate:
			synthetic = append(synthetic, Note{
				Key:       sub.Key,
				Content:   sub.Command.Content,
				Date:      sub.Command.Date,
				CreatedAt: sub.SubmittedAt,
				UpdatedAt: sub.SubmittedAt,
				Pending:   true,
			})
		case commands.KindEdit:
			edits[sub.Command.NoteID] = sub.Command
		case commands.KindDelete:
			deleted[sub.Command.NoteID] = true
		}
	}

	merged := make([]Note, 0, len(confirmed)+len(synthetic))

	for _, note := range confirmed {
		if deleted[note.ID] {
			continue
		}

		if edit, ok := edits[note.ID]; ok {
			note.Content = edit.Content
			note.Date = edit.Date
			note.Pending = true
		}

		merged = append(merged, note)
	}

	merged = append(merged, synthetic...)

	sort.SliceStable(merged, func(i, j int) bool {
		if !merged[i].Date.Equal(merged[j].Date) {
			return merged[i].Date.After(merged[j].Date)
		}
		if !merged[i].CreatedAt.Equal(merged[j].CreatedAt) {
			return merged[i].CreatedAt.After(merged[j].CreatedAt)
		}
		return merged[i].ID > merged[j].ID
	})

	return merged
}

// Tasks merges confirmed tasks with pending task submissions.
//
// Toggles and edits override fields per id, deletes hide single records,
// clear-completed hides every task whose effective (post-override) completed
// flag is set, and delete-all hides the whole list, synthetic entries
// included. The result is ordered by creation time descending, then id.
func Tasks(confirmed []Task, pending []TaskSubmission) []Task {
	deleted := make(map[uint]bool)
	edits := make(map[uint]commands.TaskCommand)
	toggles := make(map[uint]TaskSubmission)
	var synthetic []Task
	clearCompleted := false
	deleteAll := false

	for _, sub := range pending {
		if sub.Status != StatusSubmitting {
			continue
		}

		switch sub.Command.Kind {
		case commands.KindCreate:
			synthetic = append(synthetic, Task{
				Key:         sub.Key,
				Description: sub.Command.Description,
				CreatedAt:   sub.SubmittedAt,
				Pending:     true,
			})
		case commands.KindEdit:
			edits[sub.Command.TaskID] = sub.Command
		case commands.KindToggleCompletion:
			toggles[sub.Command.TaskID] = sub
		case commands.KindDelete:
			deleted[sub.Command.TaskID] = true
		case commands.KindClearCompleted:
			clearCompleted = true
		case commands.KindDeleteAll:
			deleteAll = true
		}
	}

	if deleteAll {
		return []Task{}
	}

	merged := make([]Task, 0, len(confirmed)+len(synthetic))

	for _, task := range confirmed {
		if deleted[task.ID] {
			continue
		}

		if edit, ok := edits[task.ID]; ok {
			task.Description = edit.Description
			task.Pending = true
		}

		if toggle, ok := toggles[task.ID]; ok {
			task.Completed = toggle.Command.Completed
			if toggle.Command.Completed {
				completedAt := toggle.SubmittedAt
				task.CompletedAt = &completedAt
			} else {
				task.CompletedAt = nil
			}
			task.Pending = true
		}

		if clearCompleted && task.Completed {
			continue
		}

		merged = append(merged, task)
	}

	merged = append(merged, synthetic...)

	sort.SliceStable(merged, func(i, j int) bool {
		if !merged[i].CreatedAt.Equal(merged[j].CreatedAt) {
			return merged[i].CreatedAt.After(merged[j].CreatedAt)
		}
		return merged[i].ID > merged[j].ID
	})

	return merged
}
