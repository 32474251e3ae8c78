package task

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AnishKajan/Taskmanager-Project/dto"
	"github.com/AnishKajan/Taskmanager-Project/repository"
	"github.com/AnishKajan/Taskmanager-Project/services"
)

// ListTasks returns the caller's visible tasks with their display status
// derived for the requested viewing date (today by default). The derived
// status is recomputed on every request and never cached.
func ListTasks(c *gin.Context, repo *repository.TaskRepository) {
	userID, userEmail := requester(c)

	now := time.Now().UTC()
	viewingDate := now
	if raw := c.Query("date"); raw != "" {
		parsed, err := services.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
			return
		}
		viewingDate = parsed
	}

	tasks, err := repo.ListVisible(c.Request.Context(), userID, userEmail)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	responses := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, dto.TaskResponse{
			Task:          tasks[i],
			DisplayStatus: services.DeriveStatus(&tasks[i], viewingDate, now),
		})
	}
	c.JSON(http.StatusOK, responses)
}

// ListArchive returns completed tasks and soft-deleted tasks still inside
// the retention window. The repository sweeps expired deletions first.
func ListArchive(c *gin.Context, repo *repository.TaskRepository) {
	userID, userEmail := requester(c)

	tasks, err := repo.ListArchived(c.Request.Context(), userID, userEmail)
	if err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}
