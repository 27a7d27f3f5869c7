package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/viper"

	"notesponge-hq/mdsync/pkg/notes"
)

// SyncPathKey is the settings key holding the export directory.
const SyncPathKey = "sync_path"

// EnvPrefix prefixes environment variables that override stored settings.
// MDSYNC_SYNC_PATH overrides sync_path.
const EnvPrefix = "MDSYNC"

// Store reads the application's JSON key-value settings file.
//
// The file is re-read on every lookup, so changes made by the UI since the
// last export are always seen. A missing file behaves like an empty store.
type Store struct {
	path   string
	mu     sync.Mutex
	logger *slog.Logger
}

// NewStore creates a store backed by the JSON file at path.
func NewStore(path string) *Store {
	return &Store{
		path:   path,
		logger: slog.Default().With("component", "settings"),
	}
}

// Path returns the settings file path.
func (s *Store) Path() string {
	return s.path
}

// SyncPath returns the configured export directory. It fails with a
// *notes.ConfigurationError when the key is absent, empty, or not a string.
func (s *Store) SyncPath() (string, error) {
	v, err := s.load()
	if err != nil {
		return "", err
	}

	raw := v.Get(SyncPathKey)
	if raw == nil {
		return "", notes.NewConfigurationError(SyncPathKey, notes.ErrMissingSyncPath)
	}

	path, ok := raw.(string)
	if !ok {
		return "", notes.NewConfigurationError(SyncPathKey,
			fmt.Errorf("%w: got %T", notes.ErrSyncPathNotString, raw))
	}
	if strings.TrimSpace(path) == "" {
		return "", notes.NewConfigurationError(SyncPathKey, notes.ErrMissingSyncPath)
	}

	return path, nil
}

// load reads the settings file into a fresh viper instance.
func (s *Store) load() (*viper.Viper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType("json")
	v.SetEnvPrefix(EnvPrefix)
	if err := v.BindEnv(SyncPathKey); err != nil {
		return nil, notes.NewConfigurationError(SyncPathKey, err)
	}

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, notes.NewConfigurationError("settings", fmt.Errorf("read %s: %w", s.path, err))
		}
		s.logger.Debug("settings file not found, using empty settings", "path", s.path)
	}

	return v, nil
}
