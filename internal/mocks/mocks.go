package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"teamlink-service/internal/handlers"
	"teamlink-service/internal/models"
	"teamlink-service/internal/store"
)

type ConnectionLedgerMock struct {
	mock.Mock
}

func (m *ConnectionLedgerMock) Request(ctx context.Context, requesterID, recipientID, note string) (models.Connection, error) {
	args := m.Called(ctx, requesterID, recipientID, note)
	var conn models.Connection
	if val := args.Get(0); val != nil {
		conn = val.(models.Connection)
	}
	return conn, args.Error(1)
}

func (m *ConnectionLedgerMock) Accept(ctx context.Context, actorID, connectionID string) (models.Connection, error) {
	args := m.Called(ctx, actorID, connectionID)
	var conn models.Connection
	if val := args.Get(0); val != nil {
		conn = val.(models.Connection)
	}
	return conn, args.Error(1)
}

func (m *ConnectionLedgerMock) Reject(ctx context.Context, actorID, connectionID string) (models.Connection, error) {
	args := m.Called(ctx, actorID, connectionID)
	var conn models.Connection
	if val := args.Get(0); val != nil {
		conn = val.(models.Connection)
	}
	return conn, args.Error(1)
}

func (m *ConnectionLedgerMock) ListFor(ctx context.Context, userID, statusFilter string) ([]models.Connection, error) {
	args := m.Called(ctx, userID, statusFilter)
	var list []models.Connection
	if val := args.Get(0); val != nil {
		list = val.([]models.Connection)
	}
	return list, args.Error(1)
}

func (m *ConnectionLedgerMock) IsConnected(ctx context.Context, userID, otherID string) (bool, error) {
	args := m.Called(ctx, userID, otherID)
	return args.Bool(0), args.Error(1)
}

func (m *ConnectionLedgerMock) IsPending(ctx context.Context, userID, otherID string) (bool, error) {
	args := m.Called(ctx, userID, otherID)
	return args.Bool(0), args.Error(1)
}

type ConversationStoreMock struct {
	mock.Mock
}

func (m *ConversationStoreMock) Send(ctx context.Context, fromID, toID, content string) (models.Message, error) {
	args := m.Called(ctx, fromID, toID, content)
	var msg models.Message
	if val := args.Get(0); val != nil {
		msg = val.(models.Message)
	}
	return msg, args.Error(1)
}

func (m *ConversationStoreMock) Conversation(ctx context.Context, userA, userB string) ([]models.Message, error) {
	args := m.Called(ctx, userA, userB)
	var msgs []models.Message
	if val := args.Get(0); val != nil {
		msgs = val.([]models.Message)
	}
	return msgs, args.Error(1)
}

func (m *ConversationStoreMock) MarkRead(ctx context.Context, ownerID, peerID string) (int64, error) {
	args := m.Called(ctx, ownerID, peerID)
	return args.Get(0).(int64), args.Error(1)
}

type ProfileDirectoryMock struct {
	mock.Mock
}

func (m *ProfileDirectoryMock) GetUser(ctx context.Context, userID string) (models.Profile, error) {
	args := m.Called(ctx, userID)
	var profile models.Profile
	if val := args.Get(0); val != nil {
		profile = val.(models.Profile)
	}
	return profile, args.Error(1)
}

func (m *ProfileDirectoryMock) GetUsers(ctx context.Context, userIDs []string) (map[string]models.Profile, error) {
	args := m.Called(ctx, userIDs)
	var profiles map[string]models.Profile
	if val := args.Get(0); val != nil {
		profiles = val.(map[string]models.Profile)
	}
	return profiles, args.Error(1)
}

type ConnectionStoreMock struct {
	mock.Mock
}

func (m *ConnectionStoreMock) InsertConnection(ctx context.Context, conn models.Connection) (models.Connection, error) {
	args := m.Called(ctx, conn)
	var out models.Connection
	if val := args.Get(0); val != nil {
		out = val.(models.Connection)
	}
	return out, args.Error(1)
}

func (m *ConnectionStoreMock) UpdateConnectionStatus(ctx context.Context, connectionID string, status string) (models.Connection, error) {
	args := m.Called(ctx, connectionID, status)
	var out models.Connection
	if val := args.Get(0); val != nil {
		out = val.(models.Connection)
	}
	return out, args.Error(1)
}

func (m *ConnectionStoreMock) GetConnection(ctx context.Context, connectionID string) (models.Connection, error) {
	args := m.Called(ctx, connectionID)
	var out models.Connection
	if val := args.Get(0); val != nil {
		out = val.(models.Connection)
	}
	return out, args.Error(1)
}

func (m *ConnectionStoreMock) QueryConnections(ctx context.Context, userID string) ([]models.Connection, error) {
	args := m.Called(ctx, userID)
	var out []models.Connection
	if val := args.Get(0); val != nil {
		out = val.([]models.Connection)
	}
	return out, args.Error(1)
}

func (m *ConnectionStoreMock) ActiveForPair(ctx context.Context, pairKey string) (models.Connection, error) {
	args := m.Called(ctx, pairKey)
	var out models.Connection
	if val := args.Get(0); val != nil {
		out = val.(models.Connection)
	}
	return out, args.Error(1)
}

func (m *ConnectionStoreMock) Probe(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type MessageStoreMock struct {
	mock.Mock
}

func (m *MessageStoreMock) InsertMessage(ctx context.Context, msg models.Message) (models.Message, error) {
	args := m.Called(ctx, msg)
	var out models.Message
	if val := args.Get(0); val != nil {
		out = val.(models.Message)
	}
	return out, args.Error(1)
}

func (m *MessageStoreMock) QueryMessages(ctx context.Context, userA string, userB string) ([]models.Message, error) {
	args := m.Called(ctx, userA, userB)
	var out []models.Message
	if val := args.Get(0); val != nil {
		out = val.([]models.Message)
	}
	return out, args.Error(1)
}

func (m *MessageStoreMock) MarkMessagesRead(ctx context.Context, ownerID string, peerID string) (int64, error) {
	args := m.Called(ctx, ownerID, peerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MessageStoreMock) Probe(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ handlers.ConnectionLedger = (*ConnectionLedgerMock)(nil)
var _ handlers.ConversationStore = (*ConversationStoreMock)(nil)
var _ handlers.ProfileDirectory = (*ProfileDirectoryMock)(nil)
var _ store.LiveConnectionStore = (*ConnectionStoreMock)(nil)
var _ store.LiveMessageStore = (*MessageStoreMock)(nil)
