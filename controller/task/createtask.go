package task

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AnishKajan/Taskmanager-Project/dto"
	"github.com/AnishKajan/Taskmanager-Project/repository"
)

func CreateTask(c *gin.Context, repo *repository.TaskRepository) {
	userID, userEmail := requester(c)

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	created, err := repo.Create(c.Request.Context(), userID, userEmail, req)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}
