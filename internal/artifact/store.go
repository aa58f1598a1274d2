package artifact

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/mikey/sms-spam-classifier/internal/core"
)

// State is the observable lifecycle state of the store
type State int32

const (
	// StateUninitialized means no artifact has been resolved yet
	StateUninitialized State = iota
	// StateLoaded means an artifact is resolved and servable
	StateLoaded
	// StateFailed means the last resolution failed with nothing servable
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "uninitialized"
	}
}

// Store resolves versioned model artifacts from local persisted storage,
// falling back to a remote fetch, and holds the currently servable artifact
// behind an atomic pointer. A reload keeps the previous artifact servable
// until the replacement is fully loaded.
type Store struct {
	dir     string
	fetcher Fetcher
	logger  *zap.Logger

	group   singleflight.Group
	current atomic.Pointer[core.ModelArtifact]
	state   atomic.Int32
}

// NewStore creates a store over the given model directory. fetcher may be
// nil when no remote source is configured.
func NewStore(dir string, fetcher Fetcher, logger *zap.Logger) *Store {
	return &Store{
		dir:     dir,
		fetcher: fetcher,
		logger:  logger,
	}
}

// Resolve loads the artifact for a version, fetching it from the remote
// source when it is absent or invalid locally. Concurrent resolves of the
// same version share a single in-flight load; none of them issues a
// redundant fetch.
func (s *Store) Resolve(ctx context.Context, version string) (*core.ModelArtifact, error) {
	if version == "" {
		return nil, fmt.Errorf("artifact version must not be empty")
	}
	if cur := s.current.Load(); cur != nil && cur.Metadata.Version == version {
		return cur, nil
	}

	v, err, _ := s.group.Do(version, func() (interface{}, error) {
		return s.load(ctx, version)
	})
	if err != nil {
		// A failed reload leaves a previously loaded artifact servable
		if s.current.Load() == nil {
			s.state.Store(int32(StateFailed))
		}
		return nil, err
	}

	art := v.(*core.ModelArtifact)
	s.current.Store(art)
	s.state.Store(int32(StateLoaded))
	s.logger.Info("Model artifact loaded",
		zap.String("version", art.Metadata.Version),
		zap.String("algorithm", art.Metadata.Algorithm),
		zap.Int("vocabulary_size", art.Metadata.VocabularySize))
	return art, nil
}

// Reload re-resolves toward a (possibly new) target version. In-flight
// requests keep using the old artifact; the swap happens only once the new
// version is Loaded.
func (s *Store) Reload(ctx context.Context, version string) (*core.ModelArtifact, error) {
	if cur := s.current.Load(); cur != nil && cur.Metadata.Version == version {
		s.logger.Debug("Reload requested for already loaded version", zap.String("version", version))
		return cur, nil
	}
	return s.Resolve(ctx, version)
}

// Current returns the servable artifact, or ModelUnavailableError when the
// store has never reached the Loaded state
func (s *Store) Current() (*core.ModelArtifact, error) {
	if art := s.current.Load(); art != nil {
		return art, nil
	}
	return nil, &core.ModelUnavailableError{State: s.State().String()}
}

// State reports the observable store state
func (s *Store) State() State {
	return State(s.state.Load())
}

// Healthy reports whether the store can serve classifications
func (s *Store) Healthy() bool {
	return s.current.Load() != nil
}

func (s *Store) load(ctx context.Context, version string) (*core.ModelArtifact, error) {
	art, err := Load(s.dir, version)
	if err == nil {
		s.logger.Debug("Loaded artifact from local storage", zap.String("version", version))
		return art, nil
	}

	var integrityErr *core.ArtifactIntegrityError
	switch {
	case errors.As(err, &integrityErr):
		s.logger.Warn("Local artifact failed validation, refetching",
			zap.String("version", version), zap.Error(err))
	case errors.Is(err, fs.ErrNotExist):
		s.logger.Info("Artifact not found locally, fetching from remote source",
			zap.String("version", version))
	default:
		s.logger.Warn("Failed to load local artifact, refetching",
			zap.String("version", version), zap.Error(err))
	}

	if s.fetcher == nil {
		return nil, &core.ArtifactFetchError{
			URL: "",
			Err: fmt.Errorf("artifact unavailable locally and no model source url configured: %w", err),
		}
	}

	destDir := s.versionDir(version)
	if err := s.fetcher.Fetch(ctx, version, destDir); err != nil {
		return nil, err
	}

	art, err = Load(s.dir, version)
	if err != nil {
		// The fetched bundle itself is bad; do not keep a partial state
		return nil, err
	}
	return art, nil
}

func (s *Store) versionDir(version string) string {
	return filepath.Join(s.dir, version)
}
