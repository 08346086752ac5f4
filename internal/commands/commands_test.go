package commands

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseNoteCommandCreate(t *testing.T) {
	t.Parallel()

	form := url.Values{
		"intent":  {IntentCreateNote},
		"content": {"  met for coffee  "},
		"date":    {"2026-03-10"},
	}

	cmd, fieldErrors, err := ParseNoteCommand(form)

	require.NoError(t, err)
	require.Empty(t, fieldErrors)
	assert.Equal(t, KindCreate, cmd.Kind)
	assert.Equal(t, "met for coffee", cmd.Content)
	assert.True(t, cmd.Date.Equal(time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC)))
}

func TestParseNoteCommandCreateDefaultsDate(t *testing.T) {
	t.Parallel()

	form := url.Values{
		"intent":  {IntentCreateNote},
		"content": {"no date given"},
	}

	before := time.Now()
	cmd, fieldErrors, err := ParseNoteCommand(form)

	require.NoError(t, err)
	require.Empty(t, fieldErrors)
	assert.False(t, cmd.Date.Before(before))
}

func TestParseNoteCommandMissingContent(t *testing.T) {
	t.Parallel()

	form := url.Values{
		"intent":  {IntentCreateNote},
		"content": {"   "},
	}

	_, fieldErrors, err := ParseNoteCommand(form)

	require.NoError(t, err)
	require.Contains(t, fieldErrors, "content")
}

func TestParseNoteCommandEdit(t *testing.T) {
	t.Parallel()

	form := url.Values{
		"intent":  {IntentEditNote},
		"note_id": {"7"},
		"content": {"revised"},
		"date":    {"2026-01-02"},
	}

	cmd, fieldErrors, err := ParseNoteCommand(form)

	require.NoError(t, err)
	require.Empty(t, fieldErrors)
	assert.Equal(t, KindEdit, cmd.Kind)
	assert.Equal(t, uint(7), cmd.NoteID)
}

func TestParseNoteCommandBadDate(t *testing.T) {
	t.Parallel()

	form := url.Values{
		"intent":  {IntentCreateNote},
		"content": {"fine"},
		"date":    {"03/10/2026"},
	}

	_, fieldErrors, err := ParseNoteCommand(form)

	require.NoError(t, err)
	require.Contains(t, fieldErrors, "date")
}

func TestParseNoteCommandDeleteBadID(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "0", "abc", "-4"} {
		form := url.Values{"intent": {IntentDeleteNote}}
		if raw != "" {
			form.Set("note_id", raw)
		}

		_, fieldErrors, err := ParseNoteCommand(form)

		require.NoError(t, err)
		require.Contains(t, fieldErrors, "note_id", "raw id %q", raw)
	}
}

func TestParseNoteCommandUnknownIntent(t *testing.T) {
	t.Parallel()

	form := url.Values{"intent": {"set-reminder"}}

	_, _, err := ParseNoteCommand(form)

	var unknown *UnknownIntentError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "set-reminder", unknown.Intent)
}

func TestParseTaskCommandAllIntents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		form url.Values
		want TaskCommand
	}{
		{
			name: "create",
			form: url.Values{"intent": {IntentCreateTask}, "description": {"buy milk"}},
			want: TaskCommand{Kind: KindCreate, Description: "buy milk"},
		},
		{
			name: "edit",
			form: url.Values{"intent": {IntentEditTask}, "task_id": {"3"}, "description": {"buy oat milk"}},
			want: TaskCommand{Kind: KindEdit, TaskID: 3, Description: "buy oat milk"},
		},
		{
			name: "toggle on",
			form: url.Values{"intent": {IntentToggleTask}, "task_id": {"3"}, "completed": {"true"}},
			want: TaskCommand{Kind: KindToggleCompletion, TaskID: 3, Completed: true},
		},
		{
			name: "toggle off",
			form: url.Values{"intent": {IntentToggleTask}, "task_id": {"3"}, "completed": {"false"}},
			want: TaskCommand{Kind: KindToggleCompletion, TaskID: 3},
		},
		{
			name: "delete",
			form: url.Values{"intent": {IntentDeleteTask}, "task_id": {"3"}},
			want: TaskCommand{Kind: KindDelete, TaskID: 3},
		},
		{
			name: "clear completed",
			form: url.Values{"intent": {IntentClearCompletedTasks}},
			want: TaskCommand{Kind: KindClearCompleted},
		},
		{
			name: "delete all",
			form: url.Values{"intent": {IntentDeleteAllTasks}},
			want: TaskCommand{Kind: KindDeleteAll},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cmd, fieldErrors, err := ParseTaskCommand(tt.form)

			require.NoError(t, err)
			require.Empty(t, fieldErrors)
			assert.Equal(t, tt.want, cmd)
		})
	}
}

func TestParseTaskCommandMissingDescription(t *testing.T) {
	t.Parallel()

	form := url.Values{"intent": {IntentCreateTask}}

	_, fieldErrors, err := ParseTaskCommand(form)

	require.NoError(t, err)
	require.Contains(t, fieldErrors, "description")
}

func TestParseTaskCommandMissingIntent(t *testing.T) {
	t.Parallel()

	_, _, err := ParseTaskCommand(url.Values{})

	var unknown *UnknownIntentError
	require.ErrorAs(t, err, &unknown)
	assert.Empty(t, unknown.Intent)
}
