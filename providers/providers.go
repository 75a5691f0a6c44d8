package providers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ConfigProvider interface {
	LoadEnv() error
	GetBaseURL() string
	GetRequestTimeout() time.Duration
	GetSessionTTL() time.Duration
	GetStoragePath() string
	GetUsername() string
	GetPassword() string
}

// APIClientProvider is the outbound HTTP surface. The stored credential is
// process-wide state owned by this provider; only the session store mutates
// it (set on login, cleared on logout or login failure).
type APIClientProvider interface {
	Request(ctx context.Context, method, path string, body, dst interface{}) error
	RequestWithAuth(ctx context.Context, method, path, credential string, body, dst interface{}) error
	SetCredential(credential string)
	ClearCredential()
	Credential() string
}

// SessionStorageProvider is the durable key/value store backing the
// persisted session fields. Get returns "" without error for absent keys.
type SessionStorageProvider interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(keys ...string) error
	Close() error
}

type NotificationLevel string

const (
	NotificationSuccess NotificationLevel = "success"
	NotificationError   NotificationLevel = "error"
	NotificationInfo    NotificationLevel = "info"
)

type Notification struct {
	ID      uuid.UUID
	Level   NotificationLevel
	Message string
	Time    time.Time
}

// NotifierProvider receives the transient user-facing outcome of store
// operations. Presentation is out of scope; implementations keep a bounded
// feed the front-end may drain.
type NotifierProvider interface {
	Success(message string)
	Error(message string)
	Info(message string)
	Recent() []Notification
}

type ZapLoggerProvider interface {
	InitLogger()
	SyncLogger()
	GetLogger() *zap.Logger
}
