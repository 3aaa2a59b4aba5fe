package device

import (
	"context"
	"sort"
	"sync"

	"github.com/FujiiNoritsugu/go-haptic/internal/log"
	"github.com/FujiiNoritsugu/go-haptic/pkg/pattern"
)

// Manager holds the named controllers the process knows about and fans
// commands out to them. It replaces any notion of a process-wide "current
// device": callers hold a Manager and address devices by name.
type Manager struct {
	mu      sync.RWMutex
	devices map[string]Controller
}

// NewManager returns an empty manager.
func NewManager() *Manager {
	return &Manager{devices: make(map[string]Controller)}
}

// Add registers a controller under a name, replacing any previous one.
func (m *Manager) Add(name string, c Controller) {
	m.mu.Lock()
	m.devices[name] = c
	m.mu.Unlock()
}

// Remove disconnects and forgets a named controller.
func (m *Manager) Remove(ctx context.Context, name string) {
	m.mu.Lock()
	c, ok := m.devices[name]
	delete(m.devices, name)
	m.mu.Unlock()

	if ok {
		c.Disconnect(ctx)
	}
}

// Get returns the named controller, or nil.
func (m *Manager) Get(name string) Controller {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.devices[name]
}

// Names returns the registered device names, sorted.
func (m *Manager) Names() []string {
	m.mu.RLock()
	names := make([]string, 0, len(m.devices))
	for name := range m.devices {
		names = append(names, name)
	}
	m.mu.RUnlock()

	sort.Strings(names)
	return names
}

// snapshot copies the device map so fan-out never holds the lock across I/O.
func (m *Manager) snapshot() map[string]Controller {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]Controller, len(m.devices))
	for name, c := range m.devices {
		out[name] = c
	}
	return out
}

// ConnectAll connects every registered device concurrently and reports
// per-device outcome.
func (m *Manager) ConnectAll(ctx context.Context) map[string]bool {
	return m.fanOut(func(c Controller) bool { return c.Connect(ctx) })
}

// Broadcast sends a pattern to every connected device concurrently and
// reports per-device dispatch outcome.
func (m *Manager) Broadcast(ctx context.Context, p pattern.Pattern) map[string]bool {
	results := m.fanOut(func(c Controller) bool { return c.SendPattern(ctx, p) })
	for name, ok := range results {
		if !ok {
			log.Warn("broadcast dispatch failed", "device", name)
		}
	}
	return results
}

// StopAll halts vibration on every registered device.
func (m *Manager) StopAll(ctx context.Context) map[string]bool {
	return m.fanOut(func(c Controller) bool { return c.Stop(ctx) })
}

func (m *Manager) fanOut(op func(Controller) bool) map[string]bool {
	devices := m.snapshot()

	var (
		mu      sync.Mutex
		wg      sync.WaitGroup
		results = make(map[string]bool, len(devices))
	)
	for name, c := range devices {
		wg.Add(1)
		go func(name string, c Controller) {
			defer wg.Done()
			ok := op(c)
			mu.Lock()
			results[name] = ok
			mu.Unlock()
		}(name, c)
	}
	wg.Wait()
	return results
}
