package routes

import (
	"github.com/gin-gonic/gin"

	"routemap_api/internal/controllers"
)

func VendorRoutes(r *gin.Engine) {
	r.GET("/vendors", controllers.SearchVendors)
	r.POST("/vendors", controllers.UpsertVendor)
}
