package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"teamlink-service/internal/directory"
)

// ProfileHandler exposes directory lookups.
type ProfileHandler struct {
	directory ProfileDirectory
}

// NewProfileHandler builds a ProfileHandler.
func NewProfileHandler(dir ProfileDirectory) *ProfileHandler {
	return &ProfileHandler{directory: dir}
}

// GetProfile resolves a user id to a displayable profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.directory.GetUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		if errors.Is(err, directory.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve user"})
		return
	}

	c.JSON(http.StatusOK, profile)
}
