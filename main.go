package main

import (
	"log"
	"os"

	"Wikirace/middleware"
	"Wikirace/routes"
	"Wikirace/services/race"
	"Wikirace/services/socket_io"
	socketio_types "Wikirace/services/socket_io/types"
	"Wikirace/services/wiki"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// @title Wikirace API
// @version 1.0
// @description Gin-Gonic server for the "Wikirace" game API
// @BasePath /
func main() {
	godotenv.Load()

	log.Println("Setting up server...")

	if os.Getenv("PROD") == "true" {
		gin.SetMode(gin.ReleaseMode)
	}

	// All room state lives here, in memory; it is lost on restart.
	registry := race.NewRegistry()

	wikiClient := wiki.NewClient(os.Getenv("WIKI_BASE_URL"))
	log.Printf("Using wiki at %s", wikiClient.BaseURL)

	r := gin.Default()

	middleware.SetUpMiddleware(r)

	routes.SetupRoutes(r, wikiClient)

	sio := (*socket_io.MySocketServer)(socketio_types.NewSocketServer())
	sio.Start(r, registry, wikiClient)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Error starting server: %v", err)
	}
}
