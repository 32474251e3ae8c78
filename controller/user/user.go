package user

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/AnishKajan/Taskmanager-Project/apperr"
	"github.com/AnishKajan/Taskmanager-Project/dto"
	"github.com/AnishKajan/Taskmanager-Project/middleware"
	"github.com/AnishKajan/Taskmanager-Project/model"
	"github.com/AnishKajan/Taskmanager-Project/services"
	"github.com/AnishKajan/Taskmanager-Project/storage"
)

func UserController(router *gin.Engine, users *services.UserService, store storage.UserStore) {
	routes := router.Group("/users", middleware.AccessTokenMiddleware())
	{
		routes.GET("", func(c *gin.Context) {
			ListPublicUsers(c, users)
		})
		routes.GET("/me", func(c *gin.Context) {
			CurrentUser(c, store)
		})
		routes.PUT("/profile", func(c *gin.Context) {
			UpdateProfile(c, store)
		})
	}
}

// ListPublicUsers feeds the collaborator picker: only public-visibility
// accounts are discoverable.
func ListPublicUsers(c *gin.Context, users *services.UserService) {
	summaries, err := users.ListPublicUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func CurrentUser(c *gin.Context, store storage.UserStore) {
	userID := c.MustGet("userId").(string)

	user, err := store.GetUserByID(c.Request.Context(), userID)
	if errors.Is(err, apperr.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}
	c.JSON(http.StatusOK, services.Summarize(user))
}

// UpdateProfile lets the caller change their own display name, password,
// visibility and avatar. Only the authenticated user can touch their
// account; there is no admin path.
func UpdateProfile(c *gin.Context, store storage.UserStore) {
	userID := c.MustGet("userId").(string)

	var request dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if request.Visibility != "" &&
		request.Visibility != model.VisibilityPublic && request.Visibility != model.VisibilityPrivate {
		c.JSON(http.StatusBadRequest, gin.H{"error": "visibility must be public or private"})
		return
	}

	var hashedPassword string
	if request.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		hashedPassword = string(hashed)
	}

	updated, err := store.UpdateUser(c.Request.Context(), userID, func(user *model.User) {
		if request.Username != "" {
			user.Username = request.Username
		}
		if hashedPassword != "" {
			user.Password = hashedPassword
		}
		if request.Visibility != "" {
			user.Visibility = request.Visibility
		}
		if request.AvatarColor != "" {
			user.AvatarColor = request.AvatarColor
		}
		if request.AvatarImage != "" {
			user.AvatarImage = request.AvatarImage
		}
		user.UpdatedAt = time.Now().UTC()
	})
	if errors.Is(err, apperr.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}
	c.JSON(http.StatusOK, services.Summarize(updated))
}
