package session

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/Senaseser/assetTracker/providers"
	"github.com/Senaseser/assetTracker/providers/apiprovider"
	"go.uber.org/zap"
)

type Status string

const (
	StatusIdle          Status = "idle"
	StatusLoading       Status = "loading"
	StatusAuthenticated Status = "authenticated"
	StatusError         Status = "error"
)

// Durable storage keys. All three are written together at login and cleared
// together at logout, expiry, or login failure.
const (
	keyCredential = "basicAuthToken"
	keyUsername   = "authUsername"
	keyExpiry     = "authExpiry"
)

type SessionService interface {
	Login(ctx context.Context, username, password string) error
	Logout()
	Restore()
	Status() Status
	Username() string
	ExpiresAt() time.Time
	Err() string
}

type sessionService struct {
	api      providers.APIClientProvider
	store    providers.SessionStorageProvider
	notifier providers.NotifierProvider
	logger   providers.ZapLoggerProvider
	ttl      time.Duration
	now      func() time.Time

	mu        sync.Mutex
	status    Status
	username  string
	expiresAt time.Time
	errMsg    string
	timer     *time.Timer
}

func NewSessionService(api providers.APIClientProvider, store providers.SessionStorageProvider, notifier providers.NotifierProvider, logger providers.ZapLoggerProvider, ttl time.Duration) SessionService {
	return &sessionService{
		api:      api,
		store:    store,
		notifier: notifier,
		logger:   logger,
		ttl:      ttl,
		now:      time.Now,
		status:   StatusIdle,
	}
}

// Login verifies the credentials with a read-only probe against the asset
// listing; the backend has no dedicated login endpoint. Success stores the
// encoded credential, persists the session fields, and arms the auto-logout
// timer. Failure leaves no credential behind.
func (s *sessionService) Login(ctx context.Context, username, password string) error {
	s.mu.Lock()
	s.status = StatusLoading
	s.errMsg = ""
	s.mu.Unlock()

	credential := apiprovider.BasicCredential(username, password)
	if err := s.api.RequestWithAuth(ctx, http.MethodGet, "/api/assets", credential, nil, nil); err != nil {
		s.api.ClearCredential()
		s.clearPersisted()
		s.mu.Lock()
		s.username = ""
		s.expiresAt = time.Time{}
		s.status = StatusError
		s.errMsg = err.Error()
		s.mu.Unlock()
		s.notifier.Error(err.Error())
		return err
	}

	expiresAt := s.now().Add(s.ttl)
	s.api.SetCredential(credential)
	s.persist(credential, username, expiresAt)

	s.mu.Lock()
	s.username = username
	s.expiresAt = expiresAt
	s.status = StatusAuthenticated
	s.errMsg = ""
	s.mu.Unlock()

	s.notifier.Success("login successful")
	s.armLogoutTimer(expiresAt)
	return nil
}

// Logout is reachable from any state. It cancels any pending auto-logout
// timer, clears the stored credential and persisted fields, and resets to
// idle.
func (s *sessionService) Logout() {
	s.mu.Lock()
	s.clearTimerLocked()
	s.username = ""
	s.expiresAt = time.Time{}
	s.status = StatusIdle
	s.errMsg = ""
	s.mu.Unlock()

	s.api.ClearCredential()
	s.clearPersisted()
	s.notifier.Info("logged out")
}

// Restore re-establishes an authenticated session from durable storage at
// process start. A stale or absent session clears the stored keys and
// leaves the service idle.
func (s *sessionService) Restore() {
	credential, err := s.store.Get(keyCredential)
	if err != nil {
		s.logger.GetLogger().Error("failed to read stored credential", zap.Error(err))
	}
	username, _ := s.store.Get(keyUsername)
	expiryRaw, _ := s.store.Get(keyExpiry)
	expiryMilli, _ := strconv.ParseInt(expiryRaw, 10, 64)
	expiresAt := time.UnixMilli(expiryMilli)

	if username == "" || expiryMilli == 0 || !s.now().Before(expiresAt) {
		s.api.ClearCredential()
		s.clearPersisted()
		return
	}

	s.api.SetCredential(credential)
	s.mu.Lock()
	s.username = username
	s.expiresAt = expiresAt
	s.status = StatusAuthenticated
	s.mu.Unlock()
	s.armLogoutTimer(expiresAt)
}

func (s *sessionService) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

func (s *sessionService) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

func (s *sessionService) ExpiresAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiresAt
}

func (s *sessionService) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// armLogoutTimer keeps the single-slot invariant: scheduling always cancels
// the previous timer. A non-positive delay logs out immediately instead of
// scheduling.
func (s *sessionService) armLogoutTimer(expiresAt time.Time) {
	s.mu.Lock()
	s.clearTimerLocked()
	delay := expiresAt.Sub(s.now())
	if delay > 0 {
		s.timer = time.AfterFunc(delay, s.Logout)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()
	s.Logout()
}

func (s *sessionService) clearTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *sessionService) persist(credential, username string, expiresAt time.Time) {
	logger := s.logger.GetLogger()
	if err := s.store.Set(keyCredential, credential); err != nil {
		logger.Error("failed to persist credential", zap.Error(err))
	}
	if err := s.store.Set(keyUsername, username); err != nil {
		logger.Error("failed to persist username", zap.Error(err))
	}
	if err := s.store.Set(keyExpiry, strconv.FormatInt(expiresAt.UnixMilli(), 10)); err != nil {
		logger.Error("failed to persist session expiry", zap.Error(err))
	}
}

func (s *sessionService) clearPersisted() {
	if err := s.store.Delete(keyCredential, keyUsername, keyExpiry); err != nil {
		s.logger.GetLogger().Error("failed to clear persisted session", zap.Error(err))
	}
}
