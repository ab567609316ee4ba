package main

import (
	"log"
	"net/http"

	"routemap_api/internal/config"
	"routemap_api/internal/logger"
	"routemap_api/internal/middleware"
	"routemap_api/internal/routes"
)

func main() {
	// Initialize structured logging to file
	logger.Setup()

	// Build upstream clients from environment
	config.Init()

	// Setup Gin router
	r := routes.SetupRouter()

	// Wrap with CORS
	handler := middleware.EnableCORS(r)

	log.Println("🚀 Server running at :" + config.Port)
	log.Fatal(http.ListenAndServe("0.0.0.0:"+config.Port, handler))
}
