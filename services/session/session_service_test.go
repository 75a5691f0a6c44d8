package session

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/Senaseser/assetTracker/backendtest"
	"github.com/Senaseser/assetTracker/providers"
	"github.com/Senaseser/assetTracker/providers/apiprovider"
	"github.com/Senaseser/assetTracker/providers/loggerprovider"
	"github.com/Senaseser/assetTracker/providers/notifierprovider"
	"github.com/stretchr/testify/assert"
)

func newTestService(t *testing.T, ttl time.Duration) (SessionService, providers.APIClientProvider, *backendtest.MemoryStorage, *backendtest.Backend) {
	t.Helper()
	backend := backendtest.New(t)
	logger := loggerprovider.NewLogProvider()
	api := apiprovider.NewAPIClientProvider(backend.ClientConfig(), logger)
	storage := backendtest.NewMemoryStorage()
	notifier := notifierprovider.NewNotifierProvider(logger)
	svc := NewSessionService(api, storage, notifier, logger, ttl)
	return svc, api, storage, backend
}

func TestLoginSuccess(t *testing.T) {
	svc, api, storage, _ := newTestService(t, 30*time.Minute)
	ctx := context.Background()

	err := svc.Login(ctx, backendtest.Username, backendtest.Password)
	assert.NoError(t, err)
	assert.Equal(t, StatusAuthenticated, svc.Status())
	assert.Equal(t, backendtest.Username, svc.Username())
	assert.True(t, svc.ExpiresAt().After(time.Now()))

	// All three session fields are persisted together.
	for _, key := range []string{"basicAuthToken", "authUsername", "authExpiry"} {
		value, getErr := storage.Get(key)
		assert.NoError(t, getErr)
		assert.NotEmpty(t, value, key)
	}

	// Subsequent requests carry the stored credential.
	err = api.Request(ctx, http.MethodGet, "/api/departments", nil, nil)
	assert.NoError(t, err)
}

func TestLoginFailureLeavesNoCredential(t *testing.T) {
	svc, api, storage, _ := newTestService(t, 30*time.Minute)
	ctx := context.Background()

	err := svc.Login(ctx, backendtest.Username, "wrong")
	assert.Error(t, err)
	assert.Equal(t, StatusError, svc.Status())
	assert.Equal(t, "invalid credentials", svc.Err())
	assert.Empty(t, svc.Username())

	for _, key := range []string{"basicAuthToken", "authUsername", "authExpiry"} {
		value, _ := storage.Get(key)
		assert.Empty(t, value, key)
	}

	// An unrelated request after the failed login carries no credential and
	// is rejected by the backend.
	err = api.Request(ctx, http.MethodGet, "/api/departments", nil, nil)
	assert.Error(t, err)
	assert.Equal(t, "invalid credentials", err.Error())
}

func TestLogoutClearsEverything(t *testing.T) {
	svc, api, storage, _ := newTestService(t, 30*time.Minute)
	ctx := context.Background()

	assert.NoError(t, svc.Login(ctx, backendtest.Username, backendtest.Password))
	svc.Logout()

	assert.Equal(t, StatusIdle, svc.Status())
	assert.Empty(t, svc.Username())
	assert.Empty(t, api.Credential())
	for _, key := range []string{"basicAuthToken", "authUsername", "authExpiry"} {
		value, _ := storage.Get(key)
		assert.Empty(t, value, key)
	}
}

func TestRestoreValidSession(t *testing.T) {
	svc, api, storage, _ := newTestService(t, 30*time.Minute)

	expiry := time.Now().Add(10 * time.Minute)
	storage.Set("basicAuthToken", apiprovider.BasicCredential(backendtest.Username, backendtest.Password))
	storage.Set("authUsername", backendtest.Username)
	storage.Set("authExpiry", strconv.FormatInt(expiry.UnixMilli(), 10))

	svc.Restore()
	assert.Equal(t, StatusAuthenticated, svc.Status())
	assert.Equal(t, backendtest.Username, svc.Username())

	err := api.Request(context.Background(), http.MethodGet, "/api/departments", nil, nil)
	assert.NoError(t, err)
}

func TestRestoreExpiredSessionClearsStaleKeys(t *testing.T) {
	svc, api, storage, _ := newTestService(t, 30*time.Minute)

	storage.Set("basicAuthToken", "stale")
	storage.Set("authUsername", backendtest.Username)
	storage.Set("authExpiry", strconv.FormatInt(time.Now().Add(-time.Minute).UnixMilli(), 10))

	svc.Restore()
	assert.Equal(t, StatusIdle, svc.Status())
	assert.Empty(t, svc.Username())
	assert.Empty(t, api.Credential())
	for _, key := range []string{"basicAuthToken", "authUsername", "authExpiry"} {
		value, _ := storage.Get(key)
		assert.Empty(t, value, key)
	}
}

func TestRestoreWithNoStoredSessionStaysIdle(t *testing.T) {
	svc, _, _, _ := newTestService(t, 30*time.Minute)
	svc.Restore()
	assert.Equal(t, StatusIdle, svc.Status())
}

func TestZeroTTLLogsOutImmediately(t *testing.T) {
	svc, api, storage, _ := newTestService(t, 0)

	err := svc.Login(context.Background(), backendtest.Username, backendtest.Password)
	assert.NoError(t, err)

	// The computed delay is not positive, so logout fires inline instead of
	// being scheduled.
	assert.Equal(t, StatusIdle, svc.Status())
	assert.Empty(t, api.Credential())
	value, _ := storage.Get("authUsername")
	assert.Empty(t, value)
}

func TestSingleSlotLogoutTimer(t *testing.T) {
	svc, _, _, _ := newTestService(t, time.Hour)
	ctx := context.Background()

	assert.NoError(t, svc.Login(ctx, backendtest.Username, backendtest.Password))
	first := svc.(*sessionService).timer
	assert.NotNil(t, first)

	assert.NoError(t, svc.Login(ctx, backendtest.Username, backendtest.Password))
	second := svc.(*sessionService).timer
	assert.NotNil(t, second)
	assert.NotSame(t, first, second, "re-login re-arms a fresh timer")

	svc.Logout()
	assert.Nil(t, svc.(*sessionService).timer)
}
