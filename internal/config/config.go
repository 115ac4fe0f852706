// Package config is the single source of truth for persisted client state:
// the API key, the bounded recent-search history and display preferences.
// Every mutation persists to disk before returning, so the on-disk state
// never lags the in-memory state.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/veepiac/quip/internal/errors"
)

// MaxRecentSearches caps the recent-search history.
const MaxRecentSearches = 10

// Version is the current on-disk config format version. It is written on
// every save so future shape changes can migrate instead of discarding.
const Version = 1

// DefaultServerURL is the backend endpoint used when no override is set.
const DefaultServerURL = "https://api.veepiac.com/v1"

// Config holds the persisted client state
type Config struct {
	FormatVersion   int      `json:"version"`
	APIKey          string   `json:"api_key,omitempty"`
	RecentSearches  []string `json:"recent_searches"`
	Theme           string   `json:"theme,omitempty"`             // UI theme name ("dark" or "light")
	ServerURL       string   `json:"server_url,omitempty"`        // Backend override, defaults to DefaultServerURL
	LastSeenVersion string   `json:"last_seen_version,omitempty"` // Last app version the user has seen the changelog for

	mu             sync.RWMutex
	filePath       string
	persist        Persister
	serverOverride string // run-only override from the --server flag, never saved
}

// Persister writes a serialized config to durable storage. It is a seam for
// tests; the default writes the JSON file under the user's home directory.
type Persister func(path string, data []byte) error

func defaultPersist(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".quip"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or creates a new one if it doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path, defaultPersist)
}

// LoadFrom reads the config from an explicit path with an explicit persister.
// An absent file yields the default empty state.
func LoadFrom(path string, persist Persister) (*Config, error) {
	if persist == nil {
		persist = defaultPersist
	}

	cfg := &Config{
		FormatVersion:  Version,
		RecentSearches: []string{},
		filePath:       path,
		persist:        persist,
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, errors.ConfigLoadFailed(path, err)
	}

	// Ensure slices are initialized (not nil) after unmarshaling. Safe to
	// call without the lock: Load runs before the config is shared.
	cfg.ensureInitialized()

	return cfg, nil
}

func (c *Config) ensureInitialized() {
	if c.RecentSearches == nil {
		c.RecentSearches = []string{}
	}
	if c.FormatVersion == 0 {
		c.FormatVersion = Version
	}
}

// save writes the config to disk. Callers must hold at least a read lock.
func (c *Config) save() error {
	c.FormatVersion = Version
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}
	if err := c.persist(c.filePath, data); err != nil {
		return errors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// GetAPIKey returns the stored API key, or "" when anonymous.
func (c *Config) GetAPIKey() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.APIKey
}

// SetAPIKey stores the API key and persists. An empty value clears the key,
// returning the store to the anonymous state.
func (c *Config) SetAPIKey(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.APIKey = strings.TrimSpace(key)
	return c.save()
}

// IsAuthenticated reports whether a credential is present.
func (c *Config) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.APIKey != ""
}

// GetRecentSearches returns a copy of the recent-search list, most recent
// first.
func (c *Config) GetRecentSearches() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	searches := make([]string, len(c.RecentSearches))
	copy(searches, c.RecentSearches)
	return searches
}

// AddRecentSearch records a query at the front of the history, dropping any
// existing occurrence of the same string and trimming to MaxRecentSearches.
// Empty and whitespace-only queries are rejected without touching disk.
func (c *Config) AddRecentSearch(query string) error {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	updated := make([]string, 0, len(c.RecentSearches)+1)
	updated = append(updated, query)
	for _, s := range c.RecentSearches {
		if s == query {
			continue
		}
		updated = append(updated, s)
	}
	if len(updated) > MaxRecentSearches {
		updated = updated[:MaxRecentSearches]
	}
	c.RecentSearches = updated
	return c.save()
}

// ClearRecentSearches empties the history and persists.
func (c *Config) ClearRecentSearches() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.RecentSearches = []string{}
	return c.save()
}

// GetTheme returns the current theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the current theme name and persists
func (c *Config) SetTheme(theme string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
	return c.save()
}

// GetServerURL returns the backend base URL. A run-only override wins over
// the persisted value, which falls back to the default.
func (c *Config) GetServerURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.serverOverride != "" {
		return c.serverOverride
	}
	if c.ServerURL != "" {
		return c.ServerURL
	}
	return DefaultServerURL
}

// OverrideServerURL sets the backend base URL for this process only. It is
// never persisted; the saved config is untouched.
func (c *Config) OverrideServerURL(url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.serverOverride = strings.TrimRight(strings.TrimSpace(url), "/")
}

// SetServerURL sets the backend base URL override and persists.
func (c *Config) SetServerURL(url string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ServerURL = strings.TrimRight(strings.TrimSpace(url), "/")
	return c.save()
}

// GetLastSeenVersion returns the last app version the user has seen
func (c *Config) GetLastSeenVersion() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.LastSeenVersion
}

// SetLastSeenVersion sets the last app version the user has seen and persists
func (c *Config) SetLastSeenVersion(version string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.LastSeenVersion = version
	return c.save()
}
