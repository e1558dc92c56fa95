package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"teamlink-service/internal/chatwindow"
	"teamlink-service/internal/directory"
)

// WindowHandler manages the bounded set of open chat windows.
type WindowHandler struct {
	windows   *chatwindow.Manager
	directory ProfileDirectory
}

// NewWindowHandler builds a WindowHandler.
func NewWindowHandler(windows *chatwindow.Manager, dir ProfileDirectory) *WindowHandler {
	return &WindowHandler{windows: windows, directory: dir}
}

// OpenWindow opens a chat window for the peer, evicting the oldest open
// window when the session is full.
func (h *WindowHandler) OpenWindow(c *gin.Context) {
	var req struct {
		PeerID string `json:"peer_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if _, err := h.directory.GetUser(c.Request.Context(), req.PeerID); err != nil {
		if errors.Is(err, directory.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve user"})
		return
	}

	userID := c.GetString("userID")
	session := h.windows.Open(userID, req.PeerID)
	c.JSON(http.StatusOK, gin.H{"session": session, "open": h.windows.Sessions(userID)})
}

// CloseWindow closes the window for the peer; closing an absent window is
// a no-op.
func (h *WindowHandler) CloseWindow(c *gin.Context) {
	userID := c.GetString("userID")
	h.windows.Close(userID, c.Param("peer_id"))
	c.Status(http.StatusNoContent)
}

// ListWindows returns the currently open windows in opening order.
func (h *WindowHandler) ListWindows(c *gin.Context) {
	userID := c.GetString("userID")
	sessions := h.windows.Sessions(userID)
	c.JSON(http.StatusOK, gin.H{"open": sessions})
}
