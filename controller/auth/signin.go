package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/AnishKajan/Taskmanager-Project/apperr"
	"github.com/AnishKajan/Taskmanager-Project/dto"
	"github.com/AnishKajan/Taskmanager-Project/services"
	"github.com/AnishKajan/Taskmanager-Project/storage"
)

func SignInController(router *gin.Engine, store storage.UserStore) {
	router.POST("/auth/signin", func(c *gin.Context) {
		Signin(c, store)
	})
}

func Signin(c *gin.Context, store storage.UserStore) {
	var request dto.SigninRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := services.NormalizeEmail(request.Email)
	user, err := store.GetUserByEmail(c.Request.Context(), email)
	if errors.Is(err, apperr.ErrNotFound) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Account not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error during login"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Incorrect password"})
		return
	}

	accessToken, err := services.CreateAccessToken(user.UserID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create access token"})
		return
	}
	refreshToken, err := services.CreateRefreshToken(user.UserID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create refresh token"})
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         services.Summarize(user),
	})
}
