package routes

import (
	"github.com/gin-gonic/gin"

	"routemap_api/internal/controllers"
)

func GeoRoutes(r *gin.Engine) {
	r.GET("/osm", controllers.GetOSMFeatures)

	// The zipcode boundary lookup doubles as the root path for legacy
	// frontend builds.
	r.GET("/zip", controllers.GetZipBoundary)
	r.GET("/", controllers.GetZipBoundary)
}
