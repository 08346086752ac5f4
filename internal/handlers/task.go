package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rolodex-dev/rolodex/db"
	"github.com/rolodex-dev/rolodex/internal/commands"
	"github.com/rolodex-dev/rolodex/internal/models"
	"github.com/rolodex-dev/rolodex/internal/reconcile"
	"github.com/rolodex-dev/rolodex/internal/submissions"
	"gorm.io/gorm"
)

func taskView(task models.Task) reconcile.Task {
	return reconcile.Task{
		ID:          task.ID,
		Description: task.Description,
		Completed:   task.Completed,
		CompletedAt: task.CompletedAt,
		CreatedAt:   task.CreatedAt,
	}
}

// ListTasks returns the reconciled task list for a contact, narrowed to the
// requested view (all, active or completed).
func ListTasks(ctx *gin.Context) {
	contact, ok := findOwnedContact(ctx)

	if !ok {
		return
	}

	var tasks []models.Task

	if err := db.DB.Where("contact_id = ?", contact.ID).
		Order("created_at DESC").
		Find(&tasks).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	confirmed := make([]reconcile.Task, 0, len(tasks))

	for _, task := range tasks {
		confirmed = append(confirmed, taskView(task))
	}

	merged := reconcile.Tasks(confirmed, submissions.Default.PendingTasks(contact.ID))

	view := reconcile.ParseView(ctx.Query("view"))

	ctx.JSON(http.StatusOK, gin.H{
		"tasks": reconcile.FilterTasks(merged, view),
		"view":  view,
	})
}

func findOwnedTask(ctx *gin.Context, contactID, taskID uint) (models.Task, bool) {
	var task models.Task

	if err := db.DB.Where("id = ? AND contact_id = ?", taskID, contactID).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve task"})
		}
		return models.Task{}, false
	}

	return task, true
}

// MutateTask dispatches a form submission against the contact's tasks.
func MutateTask(ctx *gin.Context) {
	contact, ok := findOwnedContact(ctx)

	if !ok {
		return
	}

	if err := ctx.Request.ParseForm(); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form submission"})
		return
	}

	cmd, fieldErrors, err := commands.ParseTaskCommand(ctx.Request.PostForm)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(fieldErrors) > 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
		return
	}

	key := submissions.Default.BeginTask(contact.ID, cmd)
	defer submissions.Default.Finish(key)

	switch cmd.Kind {
	case commands.KindCreate:
		task := models.Task{
			ContactID:   contact.ID,
			Description: cmd.Description,
		}

		if err := db.DB.Create(&task).Error; err != nil {
			log.Printf("Failed to create task: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
			return
		}

		BroadcastRefresh(contact.ID, "tasks")
		ctx.JSON(http.StatusCreated, gin.H{"message": "Task created successfully", "task_id": task.ID, "key": key})
	case commands.KindEdit:
		task, ok := findOwnedTask(ctx, contact.ID, cmd.TaskID)

		if !ok {
			return
		}

		task.Description = cmd.Description

		if err := db.DB.Save(&task).Error; err != nil {
			log.Printf("Failed to update task %d: %v", task.ID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
			return
		}

		BroadcastRefresh(contact.ID, "tasks")
		ctx.JSON(http.StatusOK, gin.H{"message": "Task updated successfully", "task_id": task.ID})
	case commands.KindToggleCompletion:
		task, ok := findOwnedTask(ctx, contact.ID, cmd.TaskID)

		if !ok {
			return
		}

		updates := map[string]interface{}{
			"completed":    cmd.Completed,
			"completed_at": nil,
		}

		if cmd.Completed {
			updates["completed_at"] = time.Now()
		}

		if err := db.DB.Model(&task).Updates(updates).Error; err != nil {
			log.Printf("Failed to toggle task %d: %v", task.ID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
			return
		}

		BroadcastRefresh(contact.ID, "tasks")
		ctx.JSON(http.StatusOK, gin.H{"message": "Task updated successfully", "task_id": task.ID})
	case commands.KindDelete:
		task, ok := findOwnedTask(ctx, contact.ID, cmd.TaskID)

		if !ok {
			return
		}

		if err := db.DB.Delete(&task).Error; err != nil {
			log.Printf("Failed to delete task %d: %v", task.ID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
			return
		}

		BroadcastRefresh(contact.ID, "tasks")
		ctx.Status(http.StatusNoContent)
	case commands.KindClearCompleted:
		if err := db.DB.Where("contact_id = ? AND completed = ?", contact.ID, true).
			Delete(&models.Task{}).Error; err != nil {
			log.Printf("Failed to clear completed tasks for contact %d: %v", contact.ID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear completed tasks"})
			return
		}

		BroadcastRefresh(contact.ID, "tasks")
		ctx.Status(http.StatusNoContent)
	case commands.KindDeleteAll:
		if err := db.DB.Where("contact_id = ?", contact.ID).
			Delete(&models.Task{}).Error; err != nil {
			log.Printf("Failed to delete all tasks for contact %d: %v", contact.ID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tasks"})
			return
		}

		BroadcastRefresh(contact.ID, "tasks")
		ctx.Status(http.StatusNoContent)
	}
}
