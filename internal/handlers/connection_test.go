package handlers_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"teamlink-service/internal/handlers"
	"teamlink-service/internal/ledger"
	"teamlink-service/internal/mocks"
	"teamlink-service/internal/models"
	"teamlink-service/internal/store"
)

func authStub(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func newConnectionRouter(userID string, ledgerMock *mocks.ConnectionLedgerMock, dirMock *mocks.ProfileDirectoryMock) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewConnectionHandler(ledgerMock, dirMock)
	router := gin.New()
	router.Use(authStub(userID))
	router.POST("/connections", h.RequestConnection)
	router.GET("/connections", h.ListConnections)
	router.POST("/connections/:connection_id/accept", h.AcceptConnection)
	router.POST("/connections/:connection_id/reject", h.RejectConnection)
	router.GET("/connections/with/:user_id", h.ConnectionStatus)
	return router
}

func TestRequestConnectionCreated(t *testing.T) {
	ledgerMock := new(mocks.ConnectionLedgerMock)
	created := models.Connection{
		ID: "c1", RequesterID: "user1", RecipientID: "user2",
		Status: models.StatusPending, Note: "let's team up", CreatedAt: time.Now().UTC(),
	}
	ledgerMock.On("Request", mock.Anything, "user1", "user2", "let's team up").Return(created, nil).Once()

	router := newConnectionRouter("user1", ledgerMock, new(mocks.ProfileDirectoryMock))

	body, _ := json.Marshal(gin.H{"recipient_id": "user2", "message": "let's team up"})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/connections", bytes.NewReader(body))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var got models.Connection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "c1", got.ID)
	assert.Equal(t, models.StatusPending, got.Status)
	ledgerMock.AssertExpectations(t)
}

func TestRequestConnectionValidation(t *testing.T) {
	ledgerMock := new(mocks.ConnectionLedgerMock)
	router := newConnectionRouter("user1", ledgerMock, new(mocks.ProfileDirectoryMock))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/connections", bytes.NewReader([]byte(`{}`)))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	ledgerMock.AssertNotCalled(t, "Request", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestRequestConnectionErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"self", ledger.ErrSelfConnection, http.StatusBadRequest},
		{"duplicate", ledger.ErrDuplicateConnection, http.StatusConflict},
		{"backend write", store.ErrBackendWrite, http.StatusBadGateway},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ledgerMock := new(mocks.ConnectionLedgerMock)
			ledgerMock.On("Request", mock.Anything, "user1", "user2", "").Return(models.Connection{}, tc.err).Once()
			router := newConnectionRouter("user1", ledgerMock, new(mocks.ProfileDirectoryMock))

			body, _ := json.Marshal(gin.H{"recipient_id": "user2"})
			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/connections", bytes.NewReader(body))
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestAcceptConnectionOK(t *testing.T) {
	ledgerMock := new(mocks.ConnectionLedgerMock)
	accepted := models.Connection{ID: "c1", RequesterID: "user2", RecipientID: "user1", Status: models.StatusAccepted}
	ledgerMock.On("Accept", mock.Anything, "user1", "c1").Return(accepted, nil).Once()

	router := newConnectionRouter("user1", ledgerMock, new(mocks.ProfileDirectoryMock))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/connections/c1/accept", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var got models.Connection
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, models.StatusAccepted, got.Status)
	ledgerMock.AssertExpectations(t)
}

func TestRejectConnectionErrorMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", ledger.ErrNotFound, http.StatusNotFound},
		{"already resolved", ledger.ErrInvalidTransition, http.StatusConflict},
		{"backend write", store.ErrBackendWrite, http.StatusBadGateway},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ledgerMock := new(mocks.ConnectionLedgerMock)
			ledgerMock.On("Reject", mock.Anything, "user1", "c1").Return(models.Connection{}, tc.err).Once()
			router := newConnectionRouter("user1", ledgerMock, new(mocks.ProfileDirectoryMock))

			w := httptest.NewRecorder()
			req, _ := http.NewRequest(http.MethodPost, "/connections/c1/reject", nil)
			router.ServeHTTP(w, req)

			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestListConnectionsEnrichesPeers(t *testing.T) {
	ledgerMock := new(mocks.ConnectionLedgerMock)
	dirMock := new(mocks.ProfileDirectoryMock)

	conns := []models.Connection{
		{ID: "c2", RequesterID: "user3", RecipientID: "user1", Status: models.StatusAccepted},
		{ID: "c1", RequesterID: "user1", RecipientID: "user2", Status: models.StatusPending},
	}
	ledgerMock.On("ListFor", mock.Anything, "user1", "").Return(conns, nil).Once()
	dirMock.On("GetUsers", mock.Anything, []string{"user3", "user2"}).Return(map[string]models.Profile{
		"user3": {UserID: "user3", Name: "Taylor Wong"},
	}, nil).Once()

	router := newConnectionRouter("user1", ledgerMock, dirMock)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/connections", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Connections []models.ConnectionView `json:"connections"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Connections, 2)

	first := resp.Connections[0]
	assert.Equal(t, "user3", first.PeerID)
	assert.True(t, first.Inbound)
	require.NotNil(t, first.Peer)
	assert.Equal(t, "Taylor Wong", first.Peer.Name)

	second := resp.Connections[1]
	assert.Equal(t, "user2", second.PeerID)
	assert.False(t, second.Inbound)
	assert.Nil(t, second.Peer, "unresolvable peers render without a profile")

	ledgerMock.AssertExpectations(t)
	dirMock.AssertExpectations(t)
}

func TestListConnectionsStatusFilter(t *testing.T) {
	ledgerMock := new(mocks.ConnectionLedgerMock)
	dirMock := new(mocks.ProfileDirectoryMock)
	ledgerMock.On("ListFor", mock.Anything, "user1", models.StatusPending).Return([]models.Connection{}, nil).Once()
	dirMock.On("GetUsers", mock.Anything, []string{}).Return(map[string]models.Profile{}, nil).Once()

	router := newConnectionRouter("user1", ledgerMock, dirMock)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/connections?status=pending", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/connections?status=bogus", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestConnectionStatus(t *testing.T) {
	ledgerMock := new(mocks.ConnectionLedgerMock)
	ledgerMock.On("IsConnected", mock.Anything, "user1", "user3").Return(true, nil).Once()
	ledgerMock.On("IsPending", mock.Anything, "user1", "user3").Return(false, nil).Once()

	router := newConnectionRouter("user1", ledgerMock, new(mocks.ProfileDirectoryMock))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/connections/with/user3", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Connected bool `json:"connected"`
		Pending   bool `json:"pending"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Connected)
	assert.False(t, resp.Pending)
}
