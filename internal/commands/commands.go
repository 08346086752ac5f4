// Package commands turns form submissions into typed mutation commands.
//
// Every note/task mutation arrives as a POST with an "intent" discriminator
// field plus entity-specific fields. Parsing happens once, at the request
// boundary; handlers and the reconciler only ever see the typed command.
package commands

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type Kind int

const (
	KindCreate Kind = iota
	KindEdit
	KindDelete
	KindToggleCompletion
	KindClearCompleted
	KindDeleteAll
)

// Note intents
const (
	IntentCreateNote = "create-note"
	IntentEditNote   = "edit-note"
	IntentDeleteNote = "delete-note"
)

// Task intents
const (
	IntentCreateTask          = "create-task"
	IntentEditTask            = "edit-task"
	IntentToggleTask          = "toggle-task-completion"
	IntentDeleteTask          = "delete-task"
	IntentClearCompletedTasks = "clear-completed-tasks"
	IntentDeleteAllTasks      = "delete-all-tasks"
)

// DateLayout is the wire format for the user-assigned note date.
const DateLayout = "2006-01-02"

// FieldErrors maps a form field to its validation messages.
type FieldErrors map[string][]string

func (e FieldErrors) add(field, message string) {
	e[field] = append(e[field], message)
}

// UnknownIntentError reports an intent value no dispatcher recognizes.
type UnknownIntentError struct {
	Intent string
}

func (e *UnknownIntentError) Error() string {
	return fmt.Sprintf("Invalid/Missing intent: %q", e.Intent)
}

// NoteCommand is one parsed note mutation.
type NoteCommand struct {
	Kind    Kind
	NoteID  uint      // Edit and Delete
	Content string    // Create and Edit
	Date    time.Time // Create and Edit; defaults to submission time
}

// TaskCommand is one parsed task mutation.
type TaskCommand struct {
	Kind        Kind
	TaskID      uint   // Edit, Delete and ToggleCompletion
	Description string // Create and Edit
	Completed   bool   // ToggleCompletion
}

// ParseNoteCommand validates form values against the note intents.
// A non-empty FieldErrors means the submission must be rejected without
// touching the store.
func ParseNoteCommand(form url.Values) (NoteCommand, FieldErrors, error) {
	var cmd NoteCommand
	fieldErrors := make(FieldErrors)

	intent := form.Get("intent")

	switch intent {
	case IntentCreateNote:
		cmd.Kind = KindCreate
		cmd.Content = parseContent(form, fieldErrors)
		cmd.Date = parseDate(form, fieldErrors)
	case IntentEditNote:
		cmd.Kind = KindEdit
		cmd.NoteID = parseID(form, "note_id", fieldErrors)
		cmd.Content = parseContent(form, fieldErrors)
		cmd.Date = parseDate(form, fieldErrors)
	case IntentDeleteNote:
		cmd.Kind = KindDelete
		cmd.NoteID = parseID(form, "note_id", fieldErrors)
	default:
		return NoteCommand{}, nil, &UnknownIntentError{Intent: intent}
	}

	if len(fieldErrors) > 0 {
		return NoteCommand{}, fieldErrors, nil
	}

	return cmd, nil, nil
}

// ParseTaskCommand validates form values against the task intents.
func ParseTaskCommand(form url.Values) (TaskCommand, FieldErrors, error) {
	var cmd TaskCommand
	fieldErrors := make(FieldErrors)

	intent := form.Get("intent")

	switch intent {
	case IntentCreateTask:
		cmd.Kind = KindCreate
		cmd.Description = parseDescription(form, fieldErrors)
	case IntentEditTask:
		cmd.Kind = KindEdit
		cmd.TaskID = parseID(form, "task_id", fieldErrors)
		cmd.Description = parseDescription(form, fieldErrors)
	case IntentToggleTask:
		cmd.Kind = KindToggleCompletion
		cmd.TaskID = parseID(form, "task_id", fieldErrors)
		cmd.Completed = form.Get("completed") == "true"
	case IntentDeleteTask:
		cmd.Kind = KindDelete
		cmd.TaskID = parseID(form, "task_id", fieldErrors)
	case IntentClearCompletedTasks:
		cmd.Kind = KindClearCompleted
	case IntentDeleteAllTasks:
		cmd.Kind = KindDeleteAll
	default:
		return TaskCommand{}, nil, &UnknownIntentError{Intent: intent}
	}

	if len(fieldErrors) > 0 {
		return TaskCommand{}, fieldErrors, nil
	}

	return cmd, nil, nil
}

func parseContent(form url.Values, fieldErrors FieldErrors) string {
	content := strings.TrimSpace(form.Get("content"))

	if content == "" {
		fieldErrors.add("content", "Content is required")
	}

	return content
}

func parseDescription(form url.Values, fieldErrors FieldErrors) string {
	description := strings.TrimSpace(form.Get("description"))

	if description == "" {
		fieldErrors.add("description", "Description is required")
	}

	return description
}

func parseID(form url.Values, field string, fieldErrors FieldErrors) uint {
	raw := form.Get(field)

	if raw == "" {
		fieldErrors.add(field, "Missing id")
		return 0
	}

	id, err := strconv.ParseUint(raw, 10, 32)

	if err != nil || id == 0 {
		fieldErrors.add(field, "Invalid id")
		return 0
	}

	return uint(id)
}

func parseDate(form url.Values, fieldErrors FieldErrors) time.Time {
	raw := strings.TrimSpace(form.Get("date"))

	if raw == "" {
		return time.Now()
	}

	date, err := time.Parse(DateLayout, raw)

	if err != nil {
		fieldErrors.add("date", fmt.Sprintf("Date must be in %s format", DateLayout))
		return time.Time{}
	}

	return date
}
