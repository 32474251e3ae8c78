package auth

import (
	"errors"
	"hash/fnv"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/AnishKajan/Taskmanager-Project/apperr"
	"github.com/AnishKajan/Taskmanager-Project/dto"
	"github.com/AnishKajan/Taskmanager-Project/model"
	"github.com/AnishKajan/Taskmanager-Project/services"
	"github.com/AnishKajan/Taskmanager-Project/storage"
)

func SignUpController(router *gin.Engine, store storage.UserStore) {
	router.POST("/auth/signup", func(c *gin.Context) {
		Signup(c, store)
	})
}

// avatarPalette are the default avatar colors assigned at signup.
var avatarPalette = []string{
	"#F44336", "#9C27B0", "#3F51B5", "#03A9F4",
	"#009688", "#4CAF50", "#FF9800", "#795548",
}

func Signup(c *gin.Context, store storage.UserStore) {
	var request dto.SignupRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	email := services.NormalizeEmail(request.Email)
	ctx := c.Request.Context()

	_, err := store.GetUserByEmail(ctx, email)
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Account already exists"})
		return
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing email"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	username := request.Username
	if username == "" {
		username = services.DefaultUsername(email)
	}

	now := time.Now().UTC()
	newUser := model.User{
		UserID:      uuid.New().String(),
		Email:       email,
		Password:    string(hashedPassword),
		Username:    username,
		Visibility:  model.VisibilityPublic,
		AvatarColor: pickAvatarColor(email),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := store.PutUser(ctx, &newUser); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Signup successful",
		"user":    services.Summarize(&newUser),
	})
}

func pickAvatarColor(email string) string {
	h := fnv.New32a()
	h.Write([]byte(email))
	return avatarPalette[int(h.Sum32())%len(avatarPalette)]
}
