// Package memory provides a process-local configuration store. It backs the
// CLI when no config directory can be resolved, and stands in for the TOML
// store in tests.
package memory

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/bookfetch/internal/core/ports/driven"
)

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// Path is reported by stores that have no backing file.
const Path = ":memory:"

// ConfigStore keeps dot-keyed values in memory. Nothing survives the process.
type ConfigStore struct {
	mu     sync.RWMutex
	seed   map[string]any
	values map[string]any
}

// NewConfigStore creates a store holding a copy of seed. Load restores it.
func NewConfigStore(seed map[string]any) *ConfigStore {
	s := &ConfigStore{seed: make(map[string]any, len(seed))}
	for k, v := range seed {
		s.seed[k] = v
	}
	_ = s.Load()
	return s
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.values[key]
	return val, ok
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	str, _ := s.lookup(key).(string)
	return str
}

// GetInt retrieves an integer configuration value.
func (s *ConfigStore) GetInt(key string) int {
	switch v := s.lookup(key).(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return 0
	}
}

// GetFloat retrieves a numeric configuration value as float64.
func (s *ConfigStore) GetFloat(key string) float64 {
	switch v := s.lookup(key).(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) bool {
	b, _ := s.lookup(key).(bool)
	return b
}

// GetStringSlice retrieves a string slice configuration value.
func (s *ConfigStore) GetStringSlice(key string) []string {
	switch v := s.lookup(key).(type) {
	case []string:
		return v
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		return result
	default:
		return nil
	}
}

// Set stores a configuration value.
func (s *ConfigStore) Set(key string, value any) error {
	key = strings.TrimSpace(key)
	if key == "" || strings.HasPrefix(key, ".") || strings.HasSuffix(key, ".") {
		return fmt.Errorf("invalid config key %q", key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// Keys returns every configured key in sorted order.
func (s *ConfigStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Load discards every value set since creation and restores the seed.
func (s *ConfigStore) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.values = make(map[string]any, len(s.seed))
	for k, v := range s.seed {
		s.values[k] = v
	}
	return nil
}

// Path returns Path; the store has no file.
func (s *ConfigStore) Path() string {
	return Path
}

func (s *ConfigStore) lookup(key string) any {
	val, _ := s.Get(key)
	return val
}
