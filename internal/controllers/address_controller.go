package controllers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"routemap_api/internal/config"
	"routemap_api/internal/models"
	"routemap_api/internal/store"
)

// ListAddresses returns the read-only raw-address rows of one camp,
// optionally narrowed by a full_code prefix.
func ListAddresses(c *gin.Context) {
	camp := strings.TrimSpace(c.Query("camp"))
	if camp == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "camp is required"})
		return
	}
	code := strings.TrimSpace(c.Query("code"))

	params := url.Values{}
	params.Set("select", "*")
	params.Set("camp", "eq."+camp)
	if code != "" {
		params.Set("full_code", "like."+code+"*")
	}
	params.Set("order", "full_code.asc")

	raw, err := config.Store.Select(c.Request.Context(), store.TableAddresses, params)
	if err != nil {
		logrus.WithError(err).Error("ListAddresses: store query failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	rows, err := store.DecodeRows[models.Address](raw)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": rows})
}
