package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"routemap_api/internal/config"
	"routemap_api/internal/geo"
)

// GetOSMFeatures proxies the Overpass service for the road and building
// ways inside bbox=minLng,minLat,maxLng,maxLat.
func GetOSMFeatures(c *gin.Context) {
	bbox := strings.TrimSpace(c.Query("bbox"))
	if bbox == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bbox is required"})
		return
	}
	parts := strings.Split(bbox, ",")
	if len(parts) != 4 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bbox must be minLng,minLat,maxLng,maxLat"})
		return
	}
	coords := make([]float64, 4)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bbox must be minLng,minLat,maxLng,maxLat"})
			return
		}
		coords[i] = f
	}

	roads, buildings, err := config.Overpass.FeaturesInBBox(c.Request.Context(), coords[0], coords[1], coords[2], coords[3])
	if err != nil {
		respondGeoError(c, err, "GetOSMFeatures")
		return
	}

	c.JSON(http.StatusOK, gin.H{"roads": roads, "buildings": buildings})
}

// respondGeoError maps a geographic-service failure onto its HTTP status.
func respondGeoError(c *gin.Context, err error, op string) {
	var ge *geo.Error
	if errors.As(err, &ge) {
		if ge.Status >= 500 {
			logrus.WithError(err).Error(op + ": upstream failure")
		}
		c.JSON(ge.Status, gin.H{"error": ge.Message})
		return
	}
	logrus.WithError(err).Error(op + ": unexpected failure")
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
