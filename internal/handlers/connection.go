package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"teamlink-service/internal/ledger"
	"teamlink-service/internal/models"
	"teamlink-service/internal/store"
)

// ConnectionLedger is the ledger surface consumed by the HTTP layer.
type ConnectionLedger interface {
	Request(ctx context.Context, requesterID, recipientID, note string) (models.Connection, error)
	Accept(ctx context.Context, actorID, connectionID string) (models.Connection, error)
	Reject(ctx context.Context, actorID, connectionID string) (models.Connection, error)
	ListFor(ctx context.Context, userID, statusFilter string) ([]models.Connection, error)
	IsConnected(ctx context.Context, userID, otherID string) (bool, error)
	IsPending(ctx context.Context, userID, otherID string) (bool, error)
}

// ProfileDirectory resolves user ids to displayable profiles.
type ProfileDirectory interface {
	GetUser(ctx context.Context, userID string) (models.Profile, error)
	GetUsers(ctx context.Context, userIDs []string) (map[string]models.Profile, error)
}

// ConnectionHandler manages connection request endpoints.
type ConnectionHandler struct {
	ledger    ConnectionLedger
	directory ProfileDirectory
}

// NewConnectionHandler builds a ConnectionHandler.
func NewConnectionHandler(l ConnectionLedger, directory ProfileDirectory) *ConnectionHandler {
	return &ConnectionHandler{ledger: l, directory: directory}
}

// RequestConnection creates a pending connection to the recipient.
func (h *ConnectionHandler) RequestConnection(c *gin.Context) {
	var req struct {
		RecipientID string `json:"recipient_id" binding:"required"`
		Message     string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID := c.GetString("userID")
	conn, err := h.ledger.Request(c.Request.Context(), userID, req.RecipientID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrSelfConnection):
			c.JSON(http.StatusBadRequest, gin.H{"error": "cannot connect with yourself"})
		case errors.Is(err, ledger.ErrDuplicateConnection):
			c.JSON(http.StatusConflict, gin.H{"error": "connection already exists"})
		case errors.Is(err, store.ErrBackendWrite):
			c.JSON(http.StatusBadGateway, gin.H{"error": "connection request was not saved"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create connection"})
		}
		return
	}

	c.JSON(http.StatusCreated, conn)
}

// AcceptConnection transitions a pending connection to accepted.
func (h *ConnectionHandler) AcceptConnection(c *gin.Context) {
	h.resolveConnection(c, h.ledger.Accept)
}

// RejectConnection transitions a pending connection to rejected.
func (h *ConnectionHandler) RejectConnection(c *gin.Context) {
	h.resolveConnection(c, h.ledger.Reject)
}

func (h *ConnectionHandler) resolveConnection(c *gin.Context, op func(ctx context.Context, actorID, connectionID string) (models.Connection, error)) {
	userID := c.GetString("userID")
	conn, err := op(c.Request.Context(), userID, c.Param("connection_id"))
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "connection not found"})
		case errors.Is(err, ledger.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{"error": "connection is not pending"})
		case errors.Is(err, store.ErrBackendWrite):
			c.JSON(http.StatusBadGateway, gin.H{"error": "connection update was not saved"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update connection"})
		}
		return
	}

	c.JSON(http.StatusOK, conn)
}

// ListConnections returns the user's connections newest first, enriched
// with peer profiles, optionally filtered by ?status=.
func (h *ConnectionHandler) ListConnections(c *gin.Context) {
	statusFilter := c.Query("status")
	switch statusFilter {
	case "", models.StatusPending, models.StatusAccepted, models.StatusRejected:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter"})
		return
	}

	userID := c.GetString("userID")
	conns, err := h.ledger.ListFor(c.Request.Context(), userID, statusFilter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load connections"})
		return
	}

	peerIDs := make([]string, 0, len(conns))
	seen := map[string]struct{}{}
	for _, conn := range conns {
		peerID := peerOf(conn, userID)
		if _, ok := seen[peerID]; !ok {
			seen[peerID] = struct{}{}
			peerIDs = append(peerIDs, peerID)
		}
	}

	profiles, err := h.directory.GetUsers(c.Request.Context(), peerIDs)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profiles"})
		return
	}

	views := make([]models.ConnectionView, 0, len(conns))
	for _, conn := range conns {
		peerID := peerOf(conn, userID)
		view := models.ConnectionView{
			Connection: conn,
			PeerID:     peerID,
			Inbound:    conn.RecipientID == userID,
		}
		if profile, ok := profiles[peerID]; ok {
			p := profile
			view.Peer = &p
		}
		views = append(views, view)
	}

	c.JSON(http.StatusOK, gin.H{"connections": views})
}

// ConnectionStatus reports whether the caller is connected to or pending
// with another user, used to gate action buttons.
func (h *ConnectionHandler) ConnectionStatus(c *gin.Context) {
	userID := c.GetString("userID")
	otherID := c.Param("user_id")

	connected, err := h.ledger.IsConnected(c.Request.Context(), userID, otherID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check connection"})
		return
	}
	pending, err := h.ledger.IsPending(c.Request.Context(), userID, otherID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check connection"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"connected": connected, "pending": pending})
}

func peerOf(conn models.Connection, userID string) string {
	if conn.RequesterID == userID {
		return conn.RecipientID
	}
	return conn.RequesterID
}
