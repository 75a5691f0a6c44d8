package backendtest

import (
	"sync"
	"time"

	"github.com/Senaseser/assetTracker/providers"
)

// StaticConfig is a fixed ConfigProvider for tests.
type StaticConfig struct {
	BaseURL        string
	RequestTimeout time.Duration
	SessionTTL     time.Duration
	StoragePath    string
	User           string
	Pass           string
}

func (c *StaticConfig) LoadEnv() error                   { return nil }
func (c *StaticConfig) GetBaseURL() string               { return c.BaseURL }
func (c *StaticConfig) GetRequestTimeout() time.Duration { return c.RequestTimeout }
func (c *StaticConfig) GetSessionTTL() time.Duration     { return c.SessionTTL }
func (c *StaticConfig) GetStoragePath() string           { return c.StoragePath }
func (c *StaticConfig) GetUsername() string              { return c.User }
func (c *StaticConfig) GetPassword() string              { return c.Pass }

// ClientConfig returns a config pointed at this backend with the default
// test credentials.
func (b *Backend) ClientConfig() providers.ConfigProvider {
	return &StaticConfig{
		BaseURL:        b.Server.URL,
		RequestTimeout: 5 * time.Second,
		SessionTTL:     30 * time.Minute,
		User:           Username,
		Pass:           Password,
	}
}

// MemoryStorage is an in-memory SessionStorageProvider for tests.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: map[string]string{}}
}

func (m *MemoryStorage) Get(key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.values[key], nil
}

func (m *MemoryStorage) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryStorage) Delete(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

func (m *MemoryStorage) Close() error { return nil }
