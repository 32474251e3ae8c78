package task

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AnishKajan/Taskmanager-Project/repository"
)

// DeleteTask soft-deletes: the task moves to the archive and stays
// recoverable for the retention window.
func DeleteTask(c *gin.Context, repo *repository.TaskRepository) {
	userID, userEmail := requester(c)

	if err := repo.SoftDelete(c.Request.Context(), c.Param("id"), userID, userEmail); err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task archived"})
}

func RestoreTask(c *gin.Context, repo *repository.TaskRepository) {
	userID, userEmail := requester(c)

	if err := repo.Restore(c.Request.Context(), c.Param("id"), userID, userEmail); err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task restored"})
}

// PurgeTask permanently removes the document. Irreversible.
func PurgeTask(c *gin.Context, repo *repository.TaskRepository) {
	userID, userEmail := requester(c)

	if err := repo.Purge(c.Request.Context(), c.Param("id"), userID, userEmail); err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task permanently deleted"})
}
