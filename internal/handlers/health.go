package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PersistenceModes reports which backend serves each collection in this
// session.
type PersistenceModes func() map[string]string

// RegisterHealthRoutes wires the health endpoint. Per-collection
// persistence modes let operators see which data is served from fixtures.
func RegisterHealthRoutes(router *gin.Engine, modes PersistenceModes) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "ok",
			"persistence": modes(),
		})
	})
}
