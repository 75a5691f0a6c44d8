package apiprovider

import (
	"bytes"
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/Senaseser/assetTracker/providers"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// DefaultErrorMessage is surfaced when neither the server response nor the
// transport error yields a usable message.
const DefaultErrorMessage = "an unexpected error occurred"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// BasicCredential encodes username:password for the Authorization header.
func BasicCredential(username, password string) string {
	return base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
}

type HTTPClientProvider struct {
	baseURL string
	client  *http.Client
	logger  providers.ZapLoggerProvider

	mu         sync.RWMutex
	credential string
}

func NewAPIClientProvider(cfg providers.ConfigProvider, logger providers.ZapLoggerProvider) providers.APIClientProvider {
	return &HTTPClientProvider{
		baseURL: strings.TrimRight(cfg.GetBaseURL(), "/"),
		client:  &http.Client{Timeout: cfg.GetRequestTimeout()},
		logger:  logger,
	}
}

func (p *HTTPClientProvider) SetCredential(credential string) {
	p.mu.Lock()
	p.credential = credential
	p.mu.Unlock()
}

func (p *HTTPClientProvider) ClearCredential() {
	p.mu.Lock()
	p.credential = ""
	p.mu.Unlock()
}

func (p *HTTPClientProvider) Credential() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.credential
}

// Request performs a call carrying the stored credential, if any.
func (p *HTTPClientProvider) Request(ctx context.Context, method, path string, body, dst interface{}) error {
	return p.do(ctx, method, path, p.Credential(), body, dst)
}

// RequestWithAuth performs a call with one-off credentials, bypassing the
// stored one. Used by the login probe before any credential is stored.
func (p *HTTPClientProvider) RequestWithAuth(ctx context.Context, method, path, credential string, body, dst interface{}) error {
	return p.do(ctx, method, path, credential, body, dst)
}

func (p *HTTPClientProvider) do(ctx context.Context, method, path, credential string, body, dst interface{}) error {
	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.New(DefaultErrorMessage)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, p.baseURL+path, payload)
	if err != nil {
		return errors.New(DefaultErrorMessage)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if credential != "" {
		req.Header.Set("Authorization", "Basic "+credential)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.GetLogger().Error("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return errors.New(transportMessage(err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.New(DefaultErrorMessage)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		msg := serverMessage(data, resp.Status)
		p.logger.GetLogger().Error("request rejected", zap.String("method", method), zap.String("path", path), zap.Int("status", resp.StatusCode))
		return errors.New(msg)
	}

	if dst != nil && len(data) > 0 {
		if err := json.Unmarshal(data, dst); err != nil {
			return errors.New(DefaultErrorMessage)
		}
	}
	return nil
}

// serverMessage extracts a human-readable message from an error payload:
// "message" field first, then "Message", then the HTTP status line, then
// the fixed default.
func serverMessage(data []byte, status string) string {
	var fields map[string]interface{}
	if err := json.Unmarshal(data, &fields); err == nil {
		for _, key := range []string{"message", "Message"} {
			if v, ok := fields[key].(string); ok && strings.TrimSpace(v) != "" {
				return v
			}
		}
	}
	if strings.TrimSpace(status) != "" {
		return status
	}
	return DefaultErrorMessage
}

func transportMessage(err error) string {
	if err != nil && strings.TrimSpace(err.Error()) != "" {
		return err.Error()
	}
	return DefaultErrorMessage
}
