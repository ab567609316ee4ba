package routes

import (
	"github.com/gin-gonic/gin"

	"routemap_api/internal/controllers"
)

func CampRoutes(r *gin.Engine) {
	r.GET("/camps", controllers.ListCamps)
	r.POST("/camps", controllers.UpsertCamp)
}
