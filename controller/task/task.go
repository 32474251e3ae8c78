package task

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AnishKajan/Taskmanager-Project/apperr"
	"github.com/AnishKajan/Taskmanager-Project/middleware"
	"github.com/AnishKajan/Taskmanager-Project/repository"
)

// TaskController registers the task routes. Every route runs behind the
// access-token middleware, so handlers always see a resolved identity.
func TaskController(router *gin.Engine, repo *repository.TaskRepository) {
	routes := router.Group("/tasks", middleware.AccessTokenMiddleware())
	{
		routes.GET("", func(c *gin.Context) {
			ListTasks(c, repo)
		})
		routes.GET("/archive", func(c *gin.Context) {
			ListArchive(c, repo)
		})
		routes.POST("", func(c *gin.Context) {
			CreateTask(c, repo)
		})
		routes.PUT("/:id", func(c *gin.Context) {
			UpdateTask(c, repo)
		})
		routes.PATCH("/restore/:id", func(c *gin.Context) {
			RestoreTask(c, repo)
		})
		routes.PATCH("/:id", func(c *gin.Context) {
			PatchTask(c, repo)
		})
		routes.DELETE("/permanent/:id", func(c *gin.Context) {
			PurgeTask(c, repo)
		})
		routes.DELETE("/:id", func(c *gin.Context) {
			DeleteTask(c, repo)
		})
	}
}

func requester(c *gin.Context) (userID, userEmail string) {
	return c.MustGet("userId").(string), c.MustGet("userEmail").(string)
}

// respondTaskError maps the core's error kinds to HTTP statuses. Forbidden
// and NotFound stay distinguishable; storage failures surface as a generic
// retry message.
func respondTaskError(c *gin.Context, err error) {
	var vErr *apperr.ValidationError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input", "fields": vErr.Fields})
		return
	}
	var cErr *apperr.CollaboratorRejectedError
	if errors.As(err, &cErr) {
		c.JSON(http.StatusForbidden, gin.H{
			"error":        "Some users have private profiles and cannot be added as collaborators",
			"privateUsers": cErr.Rejected,
		})
		return
	}
	switch {
	case errors.Is(err, apperr.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized for this task"})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
	case errors.Is(err, apperr.ErrStorageUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Temporary problem, please try again"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
