package device

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/FujiiNoritsugu/go-haptic/internal/httpc"
	"github.com/FujiiNoritsugu/go-haptic/internal/log"
	"github.com/FujiiNoritsugu/go-haptic/pkg/pattern"
)

// Defaults for the HTTP transport.
const (
	DefaultTimeout = 5 * time.Second
	DefaultRetries = 3
	defaultBackoff = time.Second
)

// Client drives one haptic actuator over its HTTP API. A Client owns at
// most one logical connection; do not share the connected state across
// concurrent flows that expect exclusive use of the motor.
type Client struct {
	baseURL string
	scale   pattern.Scale
	http    *http.Client
	retries int
	backoff time.Duration

	mu        sync.Mutex
	connected bool
}

// Option configures a Client.
type Option func(*Client)

// WithScale sets the intensity encoding the target firmware expects.
func WithScale(s pattern.Scale) Option {
	return func(c *Client) { c.scale = s }
}

// WithHTTPClient swaps the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithRetries sets how many times transient failures are retried.
func WithRetries(n int) Option {
	return func(c *Client) { c.retries = n }
}

// WithBackoff sets the base unit of the exponential retry backoff.
func WithBackoff(d time.Duration) Option {
	return func(c *Client) { c.backoff = d }
}

// NewClient creates a controller for the actuator at host:port.
func NewClient(host, port string, opts ...Option) *Client {
	c := &Client{
		baseURL: fmt.Sprintf("http://%s:%s", host, port),
		scale:   pattern.Scale100,
		http:    httpc.NewClient(DefaultTimeout),
		retries: DefaultRetries,
		backoff: defaultBackoff,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the device endpoint this client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Connect probes the device status endpoint. It succeeds only when the
// device responds and reports itself online; any other outcome leaves the
// client disconnected and returns false.
func (c *Client) Connect(ctx context.Context) bool {
	var st Status
	if err := c.do(ctx, http.MethodGet, "/status", nil, &st); err != nil {
		log.Warn("device connect failed", "url", c.baseURL, "error", err)
		return false
	}
	if !st.Online() {
		log.Warn("device reachable but not ready", "url", c.baseURL, "status", st.Status)
		return false
	}

	c.mu.Lock()
	c.connected = true
	c.mu.Unlock()
	log.Info("device connected", "url", c.baseURL)
	return true
}

// Disconnect sends a best-effort stop and marks the client disconnected.
func (c *Client) Disconnect(ctx context.Context) {
	c.mu.Lock()
	wasConnected := c.connected
	c.connected = false
	c.mu.Unlock()

	if wasConnected {
		c.Stop(ctx)
		log.Info("device disconnected", "url", c.baseURL)
	}
}

// Connected reports the connection state.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.connected
}

// ack is the device's application-level reply to a command.
type ack struct {
	Status string `json:"status"`
}

// SendPattern dispatches a pattern to the motor. Requires a prior
// successful Connect. The return acknowledges transmission only.
// A zero pattern is dispatched as a stop.
func (c *Client) SendPattern(ctx context.Context, p pattern.Pattern) bool {
	if !c.Connected() {
		log.Warn("send_pattern on disconnected device", "url", c.baseURL)
		return false
	}
	if p.IsZero() {
		return c.Stop(ctx)
	}

	var reply ack
	if err := c.do(ctx, http.MethodPost, "/pattern", p.Encode(c.scale), &reply); err != nil {
		log.Warn("pattern dispatch failed", "url", c.baseURL, "error", err)
		return false
	}
	if reply.Status != "ok" {
		log.Warn("device rejected pattern", "url", c.baseURL, "status", reply.Status)
		return false
	}

	log.Debug("pattern dispatched",
		"url", c.baseURL,
		"steps", len(p.Steps),
		"repeat", p.Repeat)
	return true
}

// Stop halts any running vibration. Idempotent; safe to call when nothing
// is playing or the client never connected.
func (c *Client) Stop(ctx context.Context) bool {
	if err := c.do(ctx, http.MethodPost, "/stop", nil, nil); err != nil {
		log.Warn("stop failed", "url", c.baseURL, "error", err)
		return false
	}
	return true
}

// Status queries device state. Returns nil on any failure.
func (c *Client) Status(ctx context.Context) *Status {
	var st Status
	if err := c.do(ctx, http.MethodGet, "/status", nil, &st); err != nil {
		log.Warn("status query failed", "url", c.baseURL, "error", err)
		return nil
	}
	return &st
}

// ReadSensor returns the current raw vibration-sensor value.
func (c *Client) ReadSensor(ctx context.Context) (int, bool) {
	var reply struct {
		Value int `json:"value"`
	}
	if err := c.do(ctx, http.MethodGet, "/sensor", nil, &reply); err != nil {
		log.Warn("sensor read failed", "url", c.baseURL, "error", err)
		return 0, false
	}
	return reply.Value, true
}

// Calibrate asks the device to re-baseline its sensor against ambient noise.
func (c *Client) Calibrate(ctx context.Context) bool {
	if err := c.do(ctx, http.MethodPost, "/calibrate", nil, nil); err != nil {
		log.Warn("calibrate failed", "url", c.baseURL, "error", err)
		return false
	}
	return true
}

// SetThreshold sets the sensor trigger threshold (raw ADC units).
func (c *Client) SetThreshold(ctx context.Context, value int) bool {
	if value < 0 {
		value = 0
	}
	body := struct {
		Value int `json:"value"`
	}{value}
	if err := c.do(ctx, http.MethodPost, "/threshold", body, nil); err != nil {
		log.Warn("threshold update failed", "url", c.baseURL, "error", err)
		return false
	}
	return true
}

// do issues one request with bounded retries. Network errors and 5xx
// responses retry with exponential backoff (backoff doubles per attempt);
// 4xx responses are client errors and fail immediately. The final error is
// returned for logging, never propagated past the public boolean surface.
func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s body: %w", path, err)
		}
	}

	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			delay := c.backoff << (attempt - 1)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("build %s request: %w", path, err)
		}
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		retryable, err := c.attempt(req, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retryable {
			return lastErr
		}
	}
	return lastErr
}

// attempt executes one request and reports whether a failure may be retried.
func (c *Client) attempt(req *http.Request, out any) (retryable bool, err error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return true, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return true, fmt.Errorf("device error: %s", resp.Status)
	case resp.StatusCode >= 400:
		return false, fmt.Errorf("rejected: %s", resp.Status)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return false, fmt.Errorf("decode response: %w", err)
		}
	}
	return false, nil
}

var _ Controller = (*Client)(nil)
