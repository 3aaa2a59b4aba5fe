package web

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/FujiiNoritsugu/go-haptic/internal/history"
	"github.com/FujiiNoritsugu/go-haptic/pkg/device"
	"github.com/FujiiNoritsugu/go-haptic/pkg/hub"
	"github.com/FujiiNoritsugu/go-haptic/pkg/pattern"
)

// stubDevice implements device.Controller in memory.
type stubDevice struct {
	mu        sync.Mutex
	connected bool
	sent      []pattern.Pattern
	stops     int
}

func (d *stubDevice) Connect(ctx context.Context) bool { d.connected = true; return true }
func (d *stubDevice) Disconnect(ctx context.Context)   { d.connected = false }
func (d *stubDevice) Connected() bool                  { return d.connected }

func (d *stubDevice) SendPattern(ctx context.Context, p pattern.Pattern) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sent = append(d.sent, p)
	return true
}

func (d *stubDevice) Stop(ctx context.Context) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stops++
	return true
}

func (d *stubDevice) Status(ctx context.Context) *device.Status {
	return &device.Status{Status: "online"}
}

func (d *stubDevice) ReadSensor(ctx context.Context) (int, bool)       { return 0, true }
func (d *stubDevice) Calibrate(ctx context.Context) bool               { return true }
func (d *stubDevice) SetThreshold(ctx context.Context, value int) bool { return true }

func (d *stubDevice) sentCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.sent)
}

func testServer(t *testing.T) (*Server, *stubDevice) {
	t.Helper()
	manager := device.NewManager()
	dev := &stubDevice{connected: true}
	manager.Add("default", dev)

	hist := history.Open(filepath.Join(t.TempDir(), "history.db"))
	t.Cleanup(func() { hist.Close() })

	events := hub.New("test-events")
	go events.Run()

	return NewServer("0", manager, hist, events), dev
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := s.App().Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode body: %v", err)
	}
}

func TestHandleStatus(t *testing.T) {
	s, _ := testServer(t)
	resp := doJSON(t, s, http.MethodGet, "/api/status", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var out struct {
		Devices        []string `json:"devices"`
		HistoryEnabled bool     `json:"history_enabled"`
	}
	decodeBody(t, resp, &out)
	if len(out.Devices) != 1 || out.Devices[0] != "default" {
		t.Errorf("devices = %v", out.Devices)
	}
	if !out.HistoryEnabled {
		t.Error("history should be enabled")
	}
}

func TestHandleDevices(t *testing.T) {
	s, _ := testServer(t)
	resp := doJSON(t, s, http.MethodGet, "/api/devices", nil)

	var reports []struct {
		Name      string `json:"name"`
		Connected bool   `json:"connected"`
	}
	decodeBody(t, resp, &reports)
	if len(reports) != 1 || !reports[0].Connected {
		t.Errorf("reports = %+v", reports)
	}
}

func TestHandleVibrate(t *testing.T) {
	s, dev := testServer(t)
	resp := doJSON(t, s, http.MethodPost, "/api/vibrate", map[string]any{
		"joy": 5, "fun": 3, "device": "default",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var out struct {
		Settings   pattern.Settings `json:"settings"`
		Dispatched map[string]bool  `json:"dispatched"`
	}
	decodeBody(t, resp, &out)
	if out.Settings.Pattern != "pulse_mixed" {
		t.Errorf("Pattern = %q, want pulse_mixed", out.Settings.Pattern)
	}
	if !out.Dispatched["default"] || dev.sentCount() != 1 {
		t.Error("pattern should reach the device")
	}
}

func TestHandleTouch(t *testing.T) {
	s, dev := testServer(t)
	resp := doJSON(t, s, http.MethodPost, "/api/touch", map[string]any{
		"data": 0.5, "touched_area": "head",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var out struct {
		Emotion struct {
			Joy int `json:"joy"`
		} `json:"emotion"`
		Settings pattern.Settings `json:"settings"`
	}
	decodeBody(t, resp, &out)
	// The most pleasant touch peaks joy.
	if out.Emotion.Joy != 5 {
		t.Errorf("Joy = %d, want 5", out.Emotion.Joy)
	}
	if out.Settings.DominantEmotion != "joy" {
		t.Errorf("dominant = %s, want joy", out.Settings.DominantEmotion)
	}
	if dev.sentCount() != 1 {
		t.Error("touch should dispatch a pattern")
	}
}

func TestHandleEvents_RecordsFlow(t *testing.T) {
	s, _ := testServer(t)
	doJSON(t, s, http.MethodPost, "/api/vibrate", map[string]any{"anger": 4})

	resp := doJSON(t, s, http.MethodGet, "/api/events?kind=dispatch", nil)
	var entries []history.Entry
	decodeBody(t, resp, &entries)
	if len(entries) != 1 || entries[0].Pattern != "burst" {
		t.Errorf("entries = %+v", entries)
	}
}

func TestHandleAlert(t *testing.T) {
	s, dev := testServer(t)
	resp := doJSON(t, s, http.MethodPost, "/api/alert", map[string]any{
		"kind": "earthquake", "device": "default",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if dev.sentCount() != 1 {
		t.Fatal("alert should dispatch")
	}
	sent := dev.sent[0]
	want := pattern.Alert("earthquake")
	if sent.Repeat != want.Repeat || len(sent.Steps) != len(want.Steps) {
		t.Errorf("dispatched pattern = %+v, want earthquake alert", sent)
	}
}

func TestHandleStop(t *testing.T) {
	s, dev := testServer(t)
	resp := doJSON(t, s, http.MethodPost, "/api/stop", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if dev.stops != 1 {
		t.Errorf("stops = %d, want 1", dev.stops)
	}
}

func TestHandleVibrate_UnknownDevice(t *testing.T) {
	s, dev := testServer(t)
	resp := doJSON(t, s, http.MethodPost, "/api/vibrate", map[string]any{
		"joy": 3, "device": "ghost",
	})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var out struct {
		Dispatched map[string]bool `json:"dispatched"`
	}
	decodeBody(t, resp, &out)
	if len(out.Dispatched) != 0 {
		t.Errorf("dispatched = %v, want empty", out.Dispatched)
	}
	if dev.sentCount() != 0 {
		t.Error("nothing should reach the registered device")
	}
}
