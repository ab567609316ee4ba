package routes

import (
	"github.com/gin-gonic/gin"

	"routemap_api/internal/controllers"
)

func RouteRoutes(r *gin.Engine) {
	r.GET("/route", controllers.ListRoutes)
	r.POST("/route", controllers.UpsertRoute)
	r.DELETE("/route", controllers.DeleteRoute)
}
