package routes

import (
	"github.com/gin-gonic/gin"

	"routemap_api/internal/controllers"
)

func ShareRoutes(r *gin.Engine) {
	r.GET("/share", controllers.ShareHTML)
	r.GET("/share.html", controllers.ShareHTML)
}
