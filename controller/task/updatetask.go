package task

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AnishKajan/Taskmanager-Project/dto"
	"github.com/AnishKajan/Taskmanager-Project/repository"
)

func UpdateTask(c *gin.Context, repo *repository.TaskRepository) {
	userID, userEmail := requester(c)

	var req dto.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	updated, err := repo.Update(c.Request.Context(), c.Param("id"), userID, userEmail, req)
	if err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func PatchTask(c *gin.Context, repo *repository.TaskRepository) {
	userID, userEmail := requester(c)

	var req dto.PatchTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	updated, err := repo.Patch(c.Request.Context(), c.Param("id"), userID, userEmail, req)
	if err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}
