package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"placard/internal/assets"
	"placard/internal/config"
	"placard/internal/logging"
	"placard/internal/manifest"
	"placard/internal/screens"
	"placard/internal/services/campaign"
)

// Backend is the campaign backend surface the session needs.
type Backend interface {
	Screens(ctx context.Context) ([]screens.Screen, error)
	FileGroups(ctx context.Context) ([]manifest.FileGroup, error)
	Assets(ctx context.Context) (campaign.Snapshot, error)
}

// Session holds the live campaign state: the screen set, the derived
// manifest, and the reconciled asset store. The manifest is recomputed in
// full on every refresh, never patched.
type Session struct {
	cfg     *config.Config
	backend Backend
	logger  *slog.Logger

	mu          sync.RWMutex
	screens     []screens.Screen
	manifest    *manifest.Manifest
	lastRefresh time.Time

	Assets *assets.Store
}

// New creates an empty session for the configured campaign.
func New(cfg *config.Config, backend Backend, logger *slog.Logger) *Session {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Session{
		cfg:     cfg,
		backend: backend,
		logger:  logging.NewComponentLogger(logger, "session"),
		Assets:  assets.NewStore(),
	}
}

// Refresh fetches the screen set and file-group hints, rebuilds the manifest,
// and merges the latest asset snapshot. A screen fetch failure aborts the
// refresh; hint and snapshot failures degrade gracefully to the last known
// state.
func (s *Session) Refresh(ctx context.Context) error {
	scrs, err := s.backend.Screens(ctx)
	if err != nil {
		return fmt.Errorf("refresh screens: %w", err)
	}

	groups, err := s.backend.FileGroups(ctx)
	if err != nil {
		s.logger.Warn("file group fetch failed, using synthetic filenames",
			logging.Error(err))
		groups = nil
	}

	built := manifest.Build(scrs, groups, s.cfg.Campaign.BundleLabel)

	s.mu.Lock()
	s.screens = scrs
	s.manifest = built
	s.lastRefresh = time.Now().UTC()
	s.mu.Unlock()

	s.logger.Info("manifest rebuilt",
		logging.Int("screens", len(scrs)),
		logging.Int("slots", built.TotalSlots()))

	if err := s.RefreshAssets(ctx); err != nil {
		s.logger.Warn("asset snapshot fetch failed, keeping local state",
			logging.Error(err))
	}
	return nil
}

// RefreshAssets fetches and merges the current backend asset snapshot.
func (s *Session) RefreshAssets(ctx context.Context) error {
	snapshot, err := s.backend.Assets(ctx)
	if err != nil {
		return err
	}
	s.Assets.MergeSnapshot(snapshot.Assets, snapshot.FetchedAt)
	return nil
}

// Screens returns a copy of the current screen set.
func (s *Session) Screens() []screens.Screen {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]screens.Screen, len(s.screens))
	copy(out, s.screens)
	return out
}

// ScreenByID returns a screen by identifier.
func (s *Session) ScreenByID(id string) (screens.Screen, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, screen := range s.screens {
		if screen.ID == id {
			return screen, true
		}
	}
	return screens.Screen{}, false
}

// Manifest returns the current manifest, which may be nil before the first
// successful refresh.
func (s *Session) Manifest() *manifest.Manifest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.manifest
}

// LastRefresh reports when the manifest was last rebuilt.
func (s *Session) LastRefresh() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRefresh
}

// Metrics computes readiness metrics against the current manifest.
func (s *Session) Metrics() assets.Metrics {
	return s.Assets.Metrics(s.Manifest())
}
