package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/FujiiNoritsugu/go-haptic/internal/history"
	"github.com/FujiiNoritsugu/go-haptic/pkg/device"
	"github.com/FujiiNoritsugu/go-haptic/pkg/hub"
	"github.com/FujiiNoritsugu/go-haptic/pkg/pattern"
)

// GenerateTool handles generate_vibration_pattern. Pure: converts an
// emotion vector into vibration settings without touching hardware, so the
// agent can reason about the reaction before committing to it.
type GenerateTool struct{}

// NewGenerateTool creates a GenerateTool.
func NewGenerateTool() *GenerateTool {
	return &GenerateTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *GenerateTool) Definition() mcp.Tool {
	return mcp.NewTool("generate_vibration_pattern",
		withEmotionParams(
			mcp.WithDescription(
				"Convert an emotion state (joy/fun/anger/sad, each 0-5) into vibration "+
					"settings: pattern type, intensity, frequency and duration. "+
					"Does not touch the device.",
			),
		)...,
	)
}

// Handle processes the generate_vibration_pattern tool call.
func (t *GenerateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(pattern.Generate(emotionArgs(req))), nil
}

// ControlTool handles control_vibration: the full emotion-to-motor path.
// It generates settings, builds the timed pattern and dispatches it to the
// addressed device (or broadcasts when none is named).
type ControlTool struct {
	manager *device.Manager
	history *history.Store
	events  *hub.Hub
}

// NewControlTool creates a ControlTool.
func NewControlTool(manager *device.Manager, hist *history.Store, events *hub.Hub) *ControlTool {
	return &ControlTool{manager: manager, history: hist, events: events}
}

// Definition returns the MCP tool definition for registration.
func (t *ControlTool) Definition() mcp.Tool {
	return mcp.NewTool("control_vibration",
		withEmotionParams(
			mcp.WithDescription(
				"Drive the haptic device from an emotion state. Generates the pattern "+
					"and dispatches it. The result acknowledges transmission only; "+
					"there is no signal for playback completion.",
			),
			mcp.WithString("device",
				mcp.Description("Target device name. Omit to broadcast to all devices."),
			),
		)...,
	)
}

// controlResult is what the agent sees after a dispatch.
type controlResult struct {
	Settings   pattern.Settings `json:"settings"`
	Dispatched map[string]bool  `json:"dispatched"`
	HistoryID  string           `json:"history_id,omitempty"`
}

// Handle processes the control_vibration tool call.
func (t *ControlTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v := emotionArgs(req)
	settings := pattern.Generate(v)
	p := settings.Build()

	dctx, cancel := deviceCtx(ctx)
	defer cancel()

	name := req.GetString("device", "")
	var dispatched map[string]bool
	if name == "" {
		dispatched = t.manager.Broadcast(dctx, p)
	} else {
		c := t.manager.Get(name)
		if c == nil {
			return mcp.NewToolResultError("unknown device: " + name), nil
		}
		dispatched = map[string]bool{name: c.SendPattern(dctx, p)}
	}

	ok := false
	for _, sent := range dispatched {
		ok = ok || sent
	}

	var historyID string
	if t.history != nil {
		historyID = t.history.Record(history.Entry{
			Kind:      history.KindDispatch,
			Device:    name,
			Emotion:   v,
			Pattern:   settings.Pattern,
			Intensity: settings.Intensity,
			Success:   ok,
		})
	}
	if t.events != nil {
		t.events.Publish(hub.NewEvent(hub.KindDispatch, name, settings))
	}

	return jsonResult(controlResult{
		Settings:   settings,
		Dispatched: dispatched,
		HistoryID:  historyID,
	}), nil
}

// SendTool handles send_vibration: a direct pattern dispatch from explicit
// parameters, bypassing emotion reasoning. Meant for hardware testing.
type SendTool struct {
	manager *device.Manager
	history *history.Store
}

// NewSendTool creates a SendTool.
func NewSendTool(manager *device.Manager, hist *history.Store) *SendTool {
	return &SendTool{manager: manager, history: hist}
}

// Definition returns the MCP tool definition for registration.
func (t *SendTool) Definition() mcp.Tool {
	return mcp.NewTool("send_vibration",
		mcp.WithDescription(
			"Send a vibration pattern built from explicit parameters, without "+
				"emotion reasoning. Intended for direct hardware testing.",
		),
		mcp.WithString("pattern",
			mcp.Description("Waveform type: pulse, wave, burst or fade"),
			mcp.DefaultString("pulse"),
			mcp.Enum("pulse", "wave", "burst", "fade"),
		),
		mcp.WithNumber("intensity",
			mcp.Description("Drive level 0.0-1.0"),
			mcp.DefaultNumber(0.5),
		),
		mcp.WithNumber("duration_ms",
			mcp.Description("Cycle duration in milliseconds"),
			mcp.DefaultNumber(500),
		),
		mcp.WithNumber("repeat",
			mcp.Description("How many times the cycle plays"),
			mcp.DefaultNumber(1),
		),
		mcp.WithString("device",
			mcp.Description("Target device name"),
			mcp.DefaultString(DefaultDeviceName),
		),
	)
}

// Handle processes the send_vibration tool call.
func (t *SendTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p := pattern.Custom(
		pattern.Type(req.GetString("pattern", "pulse")),
		req.GetFloat("intensity", 0.5),
		int(req.GetFloat("duration_ms", 500)),
		int(req.GetFloat("repeat", 1)),
	)

	name := req.GetString("device", DefaultDeviceName)
	c := t.manager.Get(name)
	if c == nil {
		return mcp.NewToolResultError("unknown device: " + name), nil
	}

	dctx, cancel := deviceCtx(ctx)
	defer cancel()
	sent := c.SendPattern(dctx, p)

	if t.history != nil {
		t.history.Record(history.Entry{
			Kind:      history.KindDispatch,
			Device:    name,
			Pattern:   req.GetString("pattern", "pulse"),
			Intensity: req.GetFloat("intensity", 0.5),
			Success:   sent,
		})
	}

	return jsonResult(map[string]any{
		"device":     name,
		"dispatched": sent,
		"steps":      len(p.Steps),
		"repeat":     p.Repeat,
	}), nil
}
