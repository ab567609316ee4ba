package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"routemap_api/internal/config"
)

// GetZipBoundary proxies the postal-boundary service and reshapes the
// first matching feature into {zipcode, srid, center, polygon, metadata}.
func GetZipBoundary(c *gin.Context) {
	zipcode := strings.TrimSpace(c.Query("zipcode"))
	if zipcode == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "zipcode is required"})
		return
	}

	boundary, err := config.Boundary.Lookup(c.Request.Context(), zipcode)
	if err != nil {
		respondGeoError(c, err, "GetZipBoundary")
		return
	}

	c.JSON(http.StatusOK, boundary)
}
