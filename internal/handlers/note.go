package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rolodex-dev/rolodex/db"
	"github.com/rolodex-dev/rolodex/internal/commands"
	"github.com/rolodex-dev/rolodex/internal/models"
	"github.com/rolodex-dev/rolodex/internal/reconcile"
	"github.com/rolodex-dev/rolodex/internal/submissions"
	"gorm.io/gorm"
)

func noteView(note models.Note) reconcile.Note {
	return reconcile.Note{
		ID:        note.ID,
		Content:   note.Content,
		Date:      note.Date,
		CreatedAt: note.CreatedAt,
		UpdatedAt: note.UpdatedAt,
	}
}

// ListNotes returns the reconciled note list for a contact: the confirmed
// rows merged with any of the contact's submissions still in flight.
func ListNotes(ctx *gin.Context) {
	contact, ok := findOwnedContact(ctx)

	if !ok {
		return
	}

	var notes []models.Note

	if err := db.DB.Where("contact_id = ?", contact.ID).
		Order("date DESC, created_at DESC").
		Find(&notes).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notes"})
		return
	}

	confirmed := make([]reconcile.Note, 0, len(notes))

	for _, note := range notes {
		confirmed = append(confirmed, noteView(note))
	}

	merged := reconcile.Notes(confirmed, submissions.Default.PendingNotes(contact.ID))

	ctx.JSON(http.StatusOK, gin.H{"notes": merged})
}

// MutateNote dispatches a form submission against the contact's notes. The
// form carries an "intent" discriminator plus the fields of that intent.
func MutateNote(ctx *gin.Context) {
	contact, ok := findOwnedContact(ctx)

	if !ok {
		return
	}

	if err := ctx.Request.ParseForm(); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form submission"})
		return
	}

	cmd, fieldErrors, err := commands.ParseNoteCommand(ctx.Request.PostForm)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(fieldErrors) > 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
		return
	}

	// Track the submission so list reads that overlap this request observe
	// the optimistic view.
	key := submissions.Default.BeginNote(contact.ID, cmd)
	defer submissions.Default.Finish(key)

	switch cmd.Kind {
	case commands.KindCreate:
		note := models.Note{
			ContactID: contact.ID,
			Content:   cmd.Content,
			Date:      cmd.Date,
		}

		if err := db.DB.Create(&note).Error; err != nil {
			log.Printf("Failed to create note: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create note"})
			return
		}

		BroadcastRefresh(contact.ID, "notes")
		ctx.JSON(http.StatusCreated, gin.H{"message": "Note created successfully", "note_id": note.ID, "key": key})
	case commands.KindEdit:
		var note models.Note

		if err := db.DB.Where("id = ? AND contact_id = ?", cmd.NoteID, contact.ID).First(&note).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
			} else {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve note"})
			}
			return
		}

		note.Content = cmd.Content
		note.Date = cmd.Date

		if err := db.DB.Save(&note).Error; err != nil {
			log.Printf("Failed to update note %d: %v", note.ID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update note"})
			return
		}

		BroadcastRefresh(contact.ID, "notes")
		ctx.JSON(http.StatusOK, gin.H{"message": "Note updated successfully", "note_id": note.ID})
	case commands.KindDelete:
		var note models.Note

		if err := db.DB.Where("id = ? AND contact_id = ?", cmd.NoteID, contact.ID).First(&note).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Note not found"})
			} else {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve note"})
			}
			return
		}

		if err := db.DB.Delete(&note).Error; err != nil {
			log.Printf("Failed to delete note %d: %v", note.ID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete note"})
			return
		}

		BroadcastRefresh(contact.ID, "notes")
		ctx.Status(http.StatusNoContent)
	}
}
