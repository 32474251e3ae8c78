package connection

import (
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	authcontroller "github.com/AnishKajan/Taskmanager-Project/controller/auth"
	taskcontroller "github.com/AnishKajan/Taskmanager-Project/controller/task"
	usercontroller "github.com/AnishKajan/Taskmanager-Project/controller/user"
	"github.com/AnishKajan/Taskmanager-Project/repository"
	"github.com/AnishKajan/Taskmanager-Project/services"
	"github.com/AnishKajan/Taskmanager-Project/storage"
)

// StartServer wires the whole backend: one storage handle opened here and
// injected into every controller, closed when the server stops.
func StartServer() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found or failed to load")
	}

	store, err := openStore()
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("close storage: %v", err)
		}
	}()

	userService := services.NewUserService(store)
	validator := services.NewCollaboratorValidator(store)
	taskRepo := repository.NewTaskRepository(store, validator)

	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Api is running!"})
	})

	authcontroller.SignUpController(router, store)
	authcontroller.SignInController(router, store)
	authcontroller.RefreshTokenController(router, store)
	usercontroller.UserController(router, userService, store)
	taskcontroller.TaskController(router, taskRepo)

	if err := router.Run(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

// openStore prefers Firestore; without credentials it falls back to the
// in-memory store so local development still works.
func openStore() (storage.Store, error) {
	if os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_1") == "" {
		log.Println("Warning: no Firestore credentials configured, using in-memory storage")
		return storage.NewMemoryStore(), nil
	}
	client, err := FBConnection(context.Background())
	if err != nil {
		return nil, err
	}
	log.Println("Firestore connection successful")
	return storage.NewFirestoreStore(client), nil
}
