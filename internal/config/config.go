package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"routemap_api/internal/geo"
	"routemap_api/internal/store"
)

var (
	// Store is the globally accessible backing-store client
	Store *store.Client

	// Overpass and Boundary are the external geographic service clients
	Overpass *geo.OverpassClient
	Boundary *geo.BoundaryClient

	// StaticBaseURL is where the share template is fetched from
	StaticBaseURL string

	// Port the HTTP server listens on
	Port string
)

// Init loads environment configuration and builds the upstream clients.
// STORE_URL and STORE_SERVICE_KEY are required; everything else has a
// workable default.
func Init() {
	// 1) Load .env (if present)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found – relying on env vars")
	}

	storeURL := os.Getenv("STORE_URL")
	if storeURL == "" {
		log.Fatal("STORE_URL is required")
	}
	serviceKey := os.Getenv("STORE_SERVICE_KEY")
	if serviceKey == "" {
		log.Fatal("STORE_SERVICE_KEY is required")
	}

	Store = store.New(storeURL, serviceKey)
	Overpass = geo.NewOverpass(getEnv("OVERPASS_URL", ""))
	Boundary = geo.NewBoundary(getEnv("BOUNDARY_API_URL", ""))
	StaticBaseURL = getEnv("STATIC_BASE_URL", "")
	Port = getEnv("PORT", "8080")
}

// getEnv reads an environment variable or returns the provided default
func getEnv(key, defaultValue string) string {
	if v, exists := os.LookupEnv(key); exists {
		return v
	}
	return defaultValue
}
