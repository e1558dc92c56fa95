package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"teamlink-service/internal/models"
	"teamlink-service/internal/observability"
)

// Mode reports which backend serves a collection for this session.
type Mode string

const (
	ModeUnresolved Mode = "unresolved"
	ModeLive       Mode = "live"
	ModeFixtures   Mode = "fixtures"
)

// LiveConnectionStore is a ConnectionStore that can be probed for
// availability.
type LiveConnectionStore interface {
	ConnectionStore
	Probe(ctx context.Context) error
}

// LiveMessageStore is a MessageStore that can be probed for availability.
type LiveMessageStore interface {
	MessageStore
	Probe(ctx context.Context) error
}

// LiveProfileStore is a ProfileStore that can be probed for availability.
type LiveProfileStore interface {
	ProfileStore
	Probe(ctx context.Context) error
}

// switcher resolves a collection's backend mode once per session. The first
// access probes the live backend; a failed probe pins the collection to
// fixtures for the remainder of the session so reads and writes stay
// self-consistent.
type switcher struct {
	mu         sync.Mutex
	mode       Mode
	collection string
	probe      func(ctx context.Context) error
}

func newSwitcher(collection string, probe func(ctx context.Context) error) *switcher {
	return &switcher{mode: ModeUnresolved, collection: collection, probe: probe}
}

func (s *switcher) resolve(ctx context.Context) Mode {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != ModeUnresolved {
		return s.mode
	}
	if s.probe == nil {
		log.Printf("store: %s backend unconfigured, using fixtures", s.collection)
		s.mode = ModeFixtures
		observability.IncFixtureFallback(s.collection)
		return s.mode
	}
	if err := s.probe(ctx); err != nil {
		log.Printf("store: %s backend unavailable, falling back to fixtures: %v", s.collection, err)
		s.mode = ModeFixtures
		observability.IncFixtureFallback(s.collection)
		return s.mode
	}
	s.mode = ModeLive
	return s.mode
}

func (s *switcher) current() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// writeErr wraps live-mode write failures so callers know the mutation did
// not happen. Domain errors pass through untouched.
func writeErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrDuplicatePair) || errors.Is(err, ErrConnectionNotFound) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrBackendWrite, err)
}

// FallbackConnections serves connections from the live backend when it is
// reachable and from in-memory fixtures otherwise.
type FallbackConnections struct {
	live  ConnectionStore
	local *MemoryConnections
	sw    *switcher
}

// NewFallbackConnections builds the dual-mode connection store. live may be
// nil when no database is configured.
func NewFallbackConnections(live LiveConnectionStore, local *MemoryConnections) *FallbackConnections {
	var probe func(ctx context.Context) error
	var liveStore ConnectionStore
	if live != nil {
		probe = live.Probe
		liveStore = live
	}
	return &FallbackConnections{live: liveStore, local: local, sw: newSwitcher("connections", probe)}
}

// Mode reports the resolved backend mode for health reporting.
func (s *FallbackConnections) Mode() Mode { return s.sw.current() }

func (s *FallbackConnections) pick(ctx context.Context) ConnectionStore {
	if s.sw.resolve(ctx) == ModeLive {
		return s.live
	}
	return s.local
}

func (s *FallbackConnections) InsertConnection(ctx context.Context, conn models.Connection) (models.Connection, error) {
	backend := s.pick(ctx)
	out, err := backend.InsertConnection(ctx, conn)
	if backend == s.live {
		return out, writeErr(err)
	}
	return out, err
}

func (s *FallbackConnections) UpdateConnectionStatus(ctx context.Context, connectionID string, status string) (models.Connection, error) {
	backend := s.pick(ctx)
	out, err := backend.UpdateConnectionStatus(ctx, connectionID, status)
	if backend == s.live {
		return out, writeErr(err)
	}
	return out, err
}

func (s *FallbackConnections) GetConnection(ctx context.Context, connectionID string) (models.Connection, error) {
	return s.pick(ctx).GetConnection(ctx, connectionID)
}

func (s *FallbackConnections) QueryConnections(ctx context.Context, userID string) ([]models.Connection, error) {
	return s.pick(ctx).QueryConnections(ctx, userID)
}

func (s *FallbackConnections) ActiveForPair(ctx context.Context, pairKey string) (models.Connection, error) {
	return s.pick(ctx).ActiveForPair(ctx, pairKey)
}

// FallbackMessages serves messages from the live backend when it is
// reachable and from in-memory fixtures otherwise.
type FallbackMessages struct {
	live  MessageStore
	local *MemoryMessages
	sw    *switcher
}

// NewFallbackMessages builds the dual-mode message store.
func NewFallbackMessages(live LiveMessageStore, local *MemoryMessages) *FallbackMessages {
	var probe func(ctx context.Context) error
	var liveStore MessageStore
	if live != nil {
		probe = live.Probe
		liveStore = live
	}
	return &FallbackMessages{live: liveStore, local: local, sw: newSwitcher("messages", probe)}
}

// Mode reports the resolved backend mode for health reporting.
func (s *FallbackMessages) Mode() Mode { return s.sw.current() }

func (s *FallbackMessages) pick(ctx context.Context) MessageStore {
	if s.sw.resolve(ctx) == ModeLive {
		return s.live
	}
	return s.local
}

func (s *FallbackMessages) InsertMessage(ctx context.Context, msg models.Message) (models.Message, error) {
	backend := s.pick(ctx)
	out, err := backend.InsertMessage(ctx, msg)
	if backend == s.live {
		return out, writeErr(err)
	}
	return out, err
}

func (s *FallbackMessages) QueryMessages(ctx context.Context, userA string, userB string) ([]models.Message, error) {
	return s.pick(ctx).QueryMessages(ctx, userA, userB)
}

func (s *FallbackMessages) MarkMessagesRead(ctx context.Context, ownerID string, peerID string) (int64, error) {
	backend := s.pick(ctx)
	updated, err := backend.MarkMessagesRead(ctx, ownerID, peerID)
	if backend == s.live {
		return updated, writeErr(err)
	}
	return updated, err
}

// FallbackProfiles serves profiles from the live backend when it is
// reachable and from the fixture directory otherwise.
type FallbackProfiles struct {
	live  ProfileStore
	local *MemoryProfiles
	sw    *switcher
}

// NewFallbackProfiles builds the dual-mode profile store.
func NewFallbackProfiles(live LiveProfileStore, local *MemoryProfiles) *FallbackProfiles {
	var probe func(ctx context.Context) error
	var liveStore ProfileStore
	if live != nil {
		probe = live.Probe
		liveStore = live
	}
	return &FallbackProfiles{live: liveStore, local: local, sw: newSwitcher("profiles", probe)}
}

// Mode reports the resolved backend mode for health reporting.
func (s *FallbackProfiles) Mode() Mode { return s.sw.current() }

func (s *FallbackProfiles) pick(ctx context.Context) ProfileStore {
	if s.sw.resolve(ctx) == ModeLive {
		return s.live
	}
	return s.local
}

func (s *FallbackProfiles) GetProfile(ctx context.Context, userID string) (models.Profile, error) {
	return s.pick(ctx).GetProfile(ctx, userID)
}

func (s *FallbackProfiles) QueryProfiles(ctx context.Context, userIDs []string) ([]models.Profile, error) {
	return s.pick(ctx).QueryProfiles(ctx, userIDs)
}
