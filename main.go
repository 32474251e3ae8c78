package main

import (
	"github.com/AnishKajan/Taskmanager-Project/connection"

	"github.com/gin-gonic/gin"
)

func main() {
	gin.SetMode(gin.ReleaseMode)
	connection.StartServer()
}
