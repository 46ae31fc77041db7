package clipboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// pingTimeout bounds the availability probe; a server that cannot answer
// /ping within a second is treated as absent.
const pingTimeout = 1 * time.Second

// httpTransport talks to the portal's socket server on the forwarded
// local port.
type httpTransport struct {
	baseURL string
	client  *http.Client
	pinger  *http.Client
}

func newHTTPTransport(port int) *httpTransport {
	return &httpTransport{
		baseURL: fmt.Sprintf("http://localhost:%d", port),
		client:  &http.Client{},
		pinger:  &http.Client{Timeout: pingTimeout},
	}
}

func (t *httpTransport) Name() string { return "http" }

// Ping reports whether the socket server is reachable. Available means a
// status of exactly 200.
func (t *httpTransport) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/ping", nil)
	if err != nil {
		return err
	}
	resp, err := t.pinger.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("ping returned status %d", resp.StatusCode)
	}
	return nil
}

func (t *httpTransport) Get(ctx context.Context) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.baseURL+"/clipboard/get", nil)
	if err != nil {
		return "", false, fmt.Errorf("HTTP GET failed: %w", err)
	}
	resp, err := t.client.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("HTTP GET failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", false, fmt.Errorf("HTTP GET failed: unexpected status %d", resp.StatusCode)
	}

	var payload providerResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", false, fmt.Errorf("HTTP GET failed: decode response: %w", err)
	}
	if payload.Status != statusSuccess {
		return "", false, nil
	}
	return payload.Data, true, nil
}

func (t *httpTransport) Set(ctx context.Context, text string) error {
	body, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return fmt.Errorf("HTTP SET failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/clipboard/set", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("HTTP SET failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP SET failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("HTTP SET failed: unexpected status %d", resp.StatusCode)
	}

	// Loose on purpose: server response shapes vary, so success is a
	// case-insensitive substring check on the raw body.
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("HTTP SET failed: read response: %w", err)
	}
	if !strings.Contains(strings.ToLower(string(raw)), statusSuccess) {
		return fmt.Errorf("HTTP SET failed: server response did not report success")
	}
	return nil
}
