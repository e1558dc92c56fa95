package directory

import (
	"context"
	"errors"
	"sync"

	"teamlink-service/internal/models"
	"teamlink-service/internal/store"
)

// ErrProfileNotFound is returned when no resolution path yields a profile.
// Callers must treat it as "entity not found", never as a crash.
var ErrProfileNotFound = errors.New("profile not found")

// Facade resolves a user id to a displayable profile: primed/cached entries
// first, then the backing profile store, then the demo directory when the
// session has fallen back to fixtures — so links created against fixture
// data stay navigable.
type Facade struct {
	profiles store.ProfileStore
	demo     *store.MemoryProfiles

	// fixturesActive reports whether any collection in the session is
	// served from fixtures.
	fixturesActive func() bool

	mu    sync.RWMutex
	cache map[string]models.Profile
}

// New constructs a Facade. fixturesActive may be nil, meaning never.
func New(profiles store.ProfileStore, fixturesActive func() bool) *Facade {
	return &Facade{
		profiles:       profiles,
		demo:           store.NewFixtureProfiles(),
		fixturesActive: fixturesActive,
		cache:          make(map[string]models.Profile),
	}
}

// Prime registers a known profile, typically the current authenticated
// user, so it resolves without a store round-trip.
func (f *Facade) Prime(profile models.Profile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cache[profile.UserID] = profile
}

// GetUser resolves a user id to a profile or ErrProfileNotFound.
func (f *Facade) GetUser(ctx context.Context, userID string) (models.Profile, error) {
	f.mu.RLock()
	cached, ok := f.cache[userID]
	f.mu.RUnlock()
	if ok {
		return cached, nil
	}

	profile, err := f.profiles.GetProfile(ctx, userID)
	if err == nil {
		f.Prime(profile)
		return profile, nil
	}
	if !errors.Is(err, store.ErrProfileNotFound) {
		return models.Profile{}, err
	}

	if f.fixturesActive != nil && f.fixturesActive() {
		if demo, demoErr := f.demo.GetProfile(ctx, userID); demoErr == nil {
			return demo, nil
		}
	}
	return models.Profile{}, ErrProfileNotFound
}

// GetUsers resolves multiple ids in one pass. Unresolvable ids are absent
// from the result.
func (f *Facade) GetUsers(ctx context.Context, userIDs []string) (map[string]models.Profile, error) {
	out := make(map[string]models.Profile, len(userIDs))
	missing := make([]string, 0, len(userIDs))

	f.mu.RLock()
	for _, id := range userIDs {
		if cached, ok := f.cache[id]; ok {
			out[id] = cached
		} else {
			missing = append(missing, id)
		}
	}
	f.mu.RUnlock()

	if len(missing) == 0 {
		return out, nil
	}

	profiles, err := f.profiles.QueryProfiles(ctx, missing)
	if err != nil {
		return nil, err
	}
	for _, p := range profiles {
		out[p.UserID] = p
		f.Prime(p)
	}

	if f.fixturesActive != nil && f.fixturesActive() {
		for _, id := range missing {
			if _, ok := out[id]; ok {
				continue
			}
			if demo, demoErr := f.demo.GetProfile(ctx, id); demoErr == nil {
				out[id] = demo
			}
		}
	}
	return out, nil
}
