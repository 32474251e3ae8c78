package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/AnishKajan/Taskmanager-Project/dto"
	"github.com/AnishKajan/Taskmanager-Project/middleware"
	"github.com/AnishKajan/Taskmanager-Project/services"
	"github.com/AnishKajan/Taskmanager-Project/storage"
)

func RefreshTokenController(router *gin.Engine, store storage.UserStore) {
	router.POST("/auth/refresh", middleware.RefreshTokenMiddleware(), func(c *gin.Context) {
		RefreshToken(c, store)
	})
}

// RefreshToken exchanges a valid refresh token for a fresh access token.
// The account is re-read so a stale email claim never outlives a profile
// change.
func RefreshToken(c *gin.Context, store storage.UserStore) {
	userID := c.MustGet("userId").(string)

	user, err := store.GetUserByID(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account no longer exists"})
		return
	}

	accessToken, err := services.CreateAccessToken(user.UserID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create access token"})
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken: accessToken,
		User:        services.Summarize(user),
	})
}
