package routes

import (
	"github.com/gin-gonic/gin"

	"routemap_api/internal/controllers"
)

func AddressRoutes(r *gin.Engine) {
	r.GET("/addresses", controllers.ListAddresses)
}
