package web

import (
	"github.com/gofiber/fiber/v2"

	"github.com/FujiiNoritsugu/go-haptic/internal/history"
	"github.com/FujiiNoritsugu/go-haptic/pkg/device"
	"github.com/FujiiNoritsugu/go-haptic/pkg/emotion"
	"github.com/FujiiNoritsugu/go-haptic/pkg/hub"
	"github.com/FujiiNoritsugu/go-haptic/pkg/pattern"
)

// handleStatus reports overall pipeline state.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"devices":         s.manager.Names(),
		"history_enabled": s.history.Enabled(),
		"event_clients":   s.events.ClientCount(),
	})
}

// deviceReport pairs a device name with its live state.
type deviceReport struct {
	Name      string         `json:"name"`
	Connected bool           `json:"connected"`
	Status    *device.Status `json:"status"`
}

// handleDevices reports per-device state. Unreachable devices show a null
// status rather than failing the call.
func (s *Server) handleDevices(c *fiber.Ctx) error {
	reports := make([]deviceReport, 0)
	for _, name := range s.manager.Names() {
		ctrl := s.manager.Get(name)
		if ctrl == nil {
			continue
		}
		reports = append(reports, deviceReport{
			Name:      name,
			Connected: ctrl.Connected(),
			Status:    ctrl.Status(c.Context()),
		})
	}
	return c.JSON(reports)
}

// handleEvents returns recent history entries, newest first.
func (s *Server) handleEvents(c *fiber.Ctx) error {
	entries, err := s.history.Recent(c.Query("kind"), c.QueryInt("limit", 50))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	return c.JSON(entries)
}

// vibrateRequest drives the emotion pipeline by hand.
type vibrateRequest struct {
	emotion.Vector
	Device string `json:"device"`
}

// handleVibrate runs the full emotion-to-motor path from a manual request.
func (s *Server) handleVibrate(c *fiber.Ctx) error {
	var req vibrateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	v := emotion.New(req.Joy, req.Fun, req.Anger, req.Sad)
	settings := pattern.Generate(v)
	dispatched := s.dispatch(c, req.Device, settings.Build())

	s.record(history.Entry{
		Kind:      history.KindDispatch,
		Device:    req.Device,
		Emotion:   v,
		Pattern:   settings.Pattern,
		Intensity: settings.Intensity,
		Success:   anyOK(dispatched),
	})
	s.events.Publish(hub.NewEvent(hub.KindDispatch, req.Device, settings))

	return c.JSON(fiber.Map{
		"settings":   settings,
		"dispatched": dispatched,
	})
}

// handleTouch runs the touch pipeline: intensity to emotion to pattern.
func (s *Server) handleTouch(c *fiber.Ctx) error {
	var req struct {
		emotion.TouchInput
		Device string `json:"device"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	v := emotion.FromTouch(req.Intensity)
	settings := pattern.Generate(v)
	dispatched := s.dispatch(c, req.Device, settings.Build())

	s.record(history.Entry{
		Kind:      history.KindTouch,
		Device:    req.Device,
		Emotion:   v,
		Pattern:   settings.Pattern,
		Intensity: settings.Intensity,
		Success:   anyOK(dispatched),
	})
	s.events.Publish(hub.NewEvent(hub.KindTouch, req.Device, fiber.Map{
		"input":    req.TouchInput,
		"emotion":  v,
		"settings": settings,
	}))

	return c.JSON(fiber.Map{
		"emotion":    v,
		"settings":   settings,
		"dispatched": dispatched,
	})
}

// handleAlert pushes an operator alert pattern.
func (s *Server) handleAlert(c *fiber.Ctx) error {
	var req struct {
		Kind   string `json:"kind"`
		Device string `json:"device"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}

	p := pattern.Alert(req.Kind)
	dispatched := s.dispatch(c, req.Device, p)

	s.record(history.Entry{
		Kind:    history.KindAlert,
		Device:  req.Device,
		Pattern: req.Kind,
		Success: anyOK(dispatched),
	})
	s.events.Publish(hub.NewEvent(hub.KindAlert, req.Device, fiber.Map{
		"kind": req.Kind,
	}))

	return c.JSON(fiber.Map{"dispatched": dispatched})
}

// handleStop halts vibration everywhere.
func (s *Server) handleStop(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"stopped": s.manager.StopAll(c.Context())})
}

// dispatch sends a pattern to a named device, or broadcasts when no name
// is given. Unknown names produce an empty result, not an error; the
// caller sees the device missing from the map.
func (s *Server) dispatch(c *fiber.Ctx, name string, p pattern.Pattern) map[string]bool {
	if name == "" {
		return s.manager.Broadcast(c.Context(), p)
	}
	ctrl := s.manager.Get(name)
	if ctrl == nil {
		return map[string]bool{}
	}
	return map[string]bool{name: ctrl.SendPattern(c.Context(), p)}
}

func (s *Server) record(e history.Entry) {
	if s.history != nil {
		s.history.Record(e)
	}
}

func anyOK(results map[string]bool) bool {
	for _, ok := range results {
		if ok {
			return true
		}
	}
	return false
}
