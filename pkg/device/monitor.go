package device

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/FujiiNoritsugu/go-haptic/internal/httpc"
	"github.com/FujiiNoritsugu/go-haptic/internal/log"
	"github.com/FujiiNoritsugu/go-haptic/pkg/emotion"
)

// Long-poll tuning. The device holds /monitor open until the sensor fires
// or its own ~30s window lapses, so the poll client needs a longer timeout
// than command traffic.
const (
	monitorTimeout  = 35 * time.Second
	monitorErrPause = 2 * time.Second
)

// SensorEvent is one vibration-sensor trigger reported by the device.
type SensorEvent struct {
	Value     int           `json:"value"`
	Level     emotion.Level `json:"-"`
	Timestamp time.Time     `json:"-"`
}

// PollEvent blocks on the device's long-poll endpoint until the sensor
// fires, the poll window lapses (nil, true), or the transport fails
// (nil, false). No retries here; the monitor loop owns pacing.
func (c *Client) PollEvent(ctx context.Context) (*SensorEvent, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/monitor", nil)
	if err != nil {
		return nil, false
	}

	resp, err := longPollClient.Do(req)
	if err != nil {
		return nil, false
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNoContent:
		// Window lapsed without a trigger.
		return nil, true
	case resp.StatusCode != http.StatusOK:
		return nil, false
	}

	var ev SensorEvent
	if err := json.NewDecoder(resp.Body).Decode(&ev); err != nil {
		return nil, false
	}
	ev.Level = emotion.LevelFromSensor(ev.Value)
	ev.Timestamp = time.Now()
	return &ev, true
}

var longPollClient = httpc.NewClient(monitorTimeout)

// EventPoller is the capability Monitor needs from a controller.
type EventPoller interface {
	PollEvent(ctx context.Context) (*SensorEvent, bool)
}

// Monitor runs a long-poll loop against one device and hands every sensor
// trigger to a handler. Events below LevelLow are dropped at the source.
type Monitor struct {
	poller  EventPoller
	handler func(SensorEvent)

	stop     chan struct{}
	done     chan struct{}
	runOnce  sync.Once
	stopOnce sync.Once
	started  atomic.Bool
}

// NewMonitor creates a monitor. The handler runs on the monitor goroutine;
// keep it fast or hand off to a channel.
func NewMonitor(poller EventPoller, handler func(SensorEvent)) *Monitor {
	return &Monitor{
		poller:  poller,
		handler: handler,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Run starts the poll loop in a goroutine. Call Stop to end it. Repeated
// calls are no-ops.
func (m *Monitor) Run() {
	m.runOnce.Do(func() {
		m.started.Store(true)
		go m.loop()
	})
}

// Stop ends the poll loop and waits for it to exit. Safe to call more
// than once, and before Run.
func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stop) })
	if m.started.Load() {
		<-m.done
	}
}

func (m *Monitor) loop() {
	defer close(m.done)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-m.stop
		cancel()
	}()

	for {
		select {
		case <-m.stop:
			return
		default:
		}

		ev, ok := m.poller.PollEvent(ctx)
		if !ok {
			log.Debug("monitor poll failed, backing off")
			select {
			case <-m.stop:
				return
			case <-time.After(monitorErrPause):
			}
			continue
		}
		if ev == nil || ev.Level == emotion.LevelNone {
			continue
		}

		log.Info("sensor triggered", "value", ev.Value, "level", fmt.Sprint(ev.Level))
		m.handler(*ev)
	}
}
