package device

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/FujiiNoritsugu/go-haptic/pkg/emotion"
	"github.com/FujiiNoritsugu/go-haptic/pkg/pattern"
)

// mockController records commands for testing.
type mockController struct {
	mu        sync.Mutex
	connected bool
	failSend  bool
	sent      []pattern.Pattern
	stops     int
}

func (m *mockController) Connect(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = true
	return true
}

func (m *mockController) Disconnect(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.connected = false
}

func (m *mockController) Connected() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connected
}

func (m *mockController) SendPattern(ctx context.Context, p pattern.Pattern) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failSend {
		return false
	}
	m.sent = append(m.sent, p)
	return true
}

func (m *mockController) Stop(ctx context.Context) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stops++
	return true
}

func (m *mockController) Status(ctx context.Context) *Status {
	return &Status{Status: "online"}
}

func (m *mockController) ReadSensor(ctx context.Context) (int, bool) { return 0, true }
func (m *mockController) Calibrate(ctx context.Context) bool         { return true }
func (m *mockController) SetThreshold(ctx context.Context, value int) bool {
	return true
}

func (m *mockController) sentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

func TestManager_AddGetNames(t *testing.T) {
	m := NewManager()
	left := &mockController{}
	right := &mockController{}
	m.Add("wrist-left", left)
	m.Add("wrist-right", right)

	if m.Get("wrist-left") != Controller(left) {
		t.Error("Get should return the registered controller")
	}
	if m.Get("ankle") != nil {
		t.Error("unknown name should return nil")
	}

	names := m.Names()
	if len(names) != 2 || names[0] != "wrist-left" || names[1] != "wrist-right" {
		t.Errorf("Names() = %v, want sorted pair", names)
	}
}

func TestManager_BroadcastFanOut(t *testing.T) {
	m := NewManager()
	good := &mockController{connected: true}
	bad := &mockController{connected: true, failSend: true}
	m.Add("good", good)
	m.Add("bad", bad)

	results := m.Broadcast(context.Background(), pattern.FromVector(emotion.Vector{Joy: 3}))
	if !results["good"] || results["bad"] {
		t.Errorf("results = %v, want good=true bad=false", results)
	}
	if good.sentCount() != 1 {
		t.Errorf("good device received %d patterns, want 1", good.sentCount())
	}
}

func TestManager_RemoveDisconnects(t *testing.T) {
	m := NewManager()
	c := &mockController{connected: true}
	m.Add("dev", c)

	m.Remove(context.Background(), "dev")
	if c.Connected() {
		t.Error("Remove should disconnect the controller")
	}
	if m.Get("dev") != nil {
		t.Error("Remove should forget the controller")
	}
}

func TestManager_StopAll(t *testing.T) {
	m := NewManager()
	a := &mockController{}
	b := &mockController{}
	m.Add("a", a)
	m.Add("b", b)

	results := m.StopAll(context.Background())
	if len(results) != 2 || !results["a"] || !results["b"] {
		t.Errorf("StopAll results = %v", results)
	}
	if a.stops != 1 || b.stops != 1 {
		t.Errorf("stops = (%d, %d), want (1, 1)", a.stops, b.stops)
	}
}

// scriptedPoller feeds a fixed event sequence to the monitor.
type scriptedPoller struct {
	mu     sync.Mutex
	events []*SensorEvent
}

func (p *scriptedPoller) PollEvent(ctx context.Context) (*SensorEvent, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.events) == 0 {
		// Simulate an empty long-poll window.
		select {
		case <-ctx.Done():
		case <-time.After(5 * time.Millisecond):
		}
		return nil, true
	}
	ev := p.events[0]
	p.events = p.events[1:]
	if ev != nil {
		ev.Level = emotion.LevelFromSensor(ev.Value)
	}
	return ev, true
}

func TestMonitor_DeliversTriggers(t *testing.T) {
	poller := &scriptedPoller{events: []*SensorEvent{
		{Value: 30},  // below the low threshold, dropped
		{Value: 250}, // medium
		{Value: 900}, // extreme
	}}

	got := make(chan SensorEvent, 4)
	mon := NewMonitor(poller, func(ev SensorEvent) { got <- ev })
	mon.Run()
	defer mon.Stop()

	first := <-got
	if first.Level != emotion.LevelMedium {
		t.Errorf("first delivered level = %s, want medium (sub-threshold dropped)", first.Level)
	}
	second := <-got
	if second.Level != emotion.LevelExtreme {
		t.Errorf("second delivered level = %s, want extreme", second.Level)
	}
}

func TestMonitor_StopEndsLoop(t *testing.T) {
	mon := NewMonitor(&scriptedPoller{}, func(SensorEvent) {})
	mon.Run()

	done := make(chan struct{})
	go func() {
		mon.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop did not end the monitor loop")
	}
}

func TestMonitor_StopLifecycle(t *testing.T) {
	// Stop before Run must not hang waiting for a loop that never started.
	mon := NewMonitor(&scriptedPoller{}, func(SensorEvent) {})
	done := make(chan struct{})
	go func() {
		mon.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop before Run blocked")
	}

	// Run after Stop exits immediately; a second Stop must not panic.
	mon.Run()
	mon.Stop()
	mon.Stop()
}
