package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/FujiiNoritsugu/go-haptic/internal/config"
	"github.com/FujiiNoritsugu/go-haptic/internal/history"
	"github.com/FujiiNoritsugu/go-haptic/pkg/device"
	"github.com/FujiiNoritsugu/go-haptic/pkg/emotion"
	"github.com/FujiiNoritsugu/go-haptic/pkg/pattern"
)

// InitializeTool handles initialize_device: creates a controller for a
// device address, connects it and registers it with the manager.
type InitializeTool struct {
	manager *device.Manager
}

// NewInitializeTool creates an InitializeTool.
func NewInitializeTool(manager *device.Manager) *InitializeTool {
	return &InitializeTool{manager: manager}
}

// Definition returns the MCP tool definition for registration.
func (t *InitializeTool) Definition() mcp.Tool {
	return mcp.NewTool("initialize_device",
		mcp.WithDescription(
			"Connect to a haptic device by address and register it under a name. "+
				"Connection succeeds only when the device reports itself online.",
		),
		mcp.WithString("host",
			mcp.Description("Device IP or hostname. Defaults to the DEVICE_IP environment setting."),
		),
		mcp.WithString("port",
			mcp.Description("Device HTTP port"),
			mcp.DefaultString(config.DefaultDevicePort),
		),
		mcp.WithString("name",
			mcp.Description("Name to register the device under"),
			mcp.DefaultString(DefaultDeviceName),
		),
		mcp.WithString("scale",
			mcp.Description("Intensity encoding the firmware expects: '100' for percent, '255' for raw PWM"),
			mcp.DefaultString("100"),
			mcp.Enum("100", "255"),
		),
	)
}

// Handle processes the initialize_device tool call.
func (t *InitializeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	host := req.GetString("host", "")
	if host == "" {
		host = config.DeviceIP("")
	}
	if host == "" {
		return mcp.NewToolResultError("no host given and DEVICE_IP is not set"), nil
	}
	port := req.GetString("port", config.DefaultDevicePort)
	name := req.GetString("name", DefaultDeviceName)

	scale := pattern.Scale100
	if req.GetString("scale", "100") == "255" {
		scale = pattern.Scale255
	}

	c := device.NewClient(host, port, device.WithScale(scale))

	dctx, cancel := deviceCtx(ctx)
	defer cancel()
	connected := c.Connect(dctx)
	if connected {
		t.manager.Add(name, c)
	}

	return jsonResult(map[string]any{
		"name":      name,
		"url":       c.BaseURL(),
		"connected": connected,
	}), nil
}

// StatusTool handles device_status: reports each registered device's
// self-reported state.
type StatusTool struct {
	manager *device.Manager
}

// NewStatusTool creates a StatusTool.
func NewStatusTool(manager *device.Manager) *StatusTool {
	return &StatusTool{manager: manager}
}

// Definition returns the MCP tool definition for registration.
func (t *StatusTool) Definition() mcp.Tool {
	return mcp.NewTool("device_status",
		mcp.WithDescription(
			"Query the status of registered haptic devices. Unreachable devices "+
				"report null instead of failing the call.",
		),
		mcp.WithString("device",
			mcp.Description("Device name. Omit to query all."),
		),
	)
}

// deviceReport pairs a device name with its (possibly absent) status.
type deviceReport struct {
	Name      string         `json:"name"`
	Connected bool           `json:"connected"`
	Status    *device.Status `json:"status"`
}

// Handle processes the device_status tool call.
func (t *StatusTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	dctx, cancel := deviceCtx(ctx)
	defer cancel()

	names := t.manager.Names()
	if name := req.GetString("device", ""); name != "" {
		names = []string{name}
	}

	reports := make([]deviceReport, 0, len(names))
	for _, name := range names {
		c := t.manager.Get(name)
		if c == nil {
			return mcp.NewToolResultError("unknown device: " + name), nil
		}
		reports = append(reports, deviceReport{
			Name:      name,
			Connected: c.Connected(),
			Status:    c.Status(dctx),
		})
	}
	return jsonResult(reports), nil
}

// SensorTool handles read_touch_sensor: reads the raw vibration sensor,
// grades it and optionally recalibrates or retunes the trigger threshold.
type SensorTool struct {
	manager *device.Manager
	history *history.Store
}

// NewSensorTool creates a SensorTool.
func NewSensorTool(manager *device.Manager, hist *history.Store) *SensorTool {
	return &SensorTool{manager: manager, history: hist}
}

// Definition returns the MCP tool definition for registration.
func (t *SensorTool) Definition() mcp.Tool {
	return mcp.NewTool("read_touch_sensor",
		mcp.WithDescription(
			"Read the device's vibration sensor. Returns the raw value and its "+
				"graded level. Optionally recalibrates the baseline or sets a new "+
				"trigger threshold first.",
		),
		mcp.WithString("device",
			mcp.Description("Device name"),
			mcp.DefaultString(DefaultDeviceName),
		),
		mcp.WithBoolean("calibrate",
			mcp.Description("Re-baseline the sensor against ambient noise before reading"),
		),
		mcp.WithNumber("threshold",
			mcp.Description("New trigger threshold in raw ADC units. Omit to leave unchanged."),
		),
	)
}

// Handle processes the read_touch_sensor tool call.
func (t *SensorTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("device", DefaultDeviceName)
	c := t.manager.Get(name)
	if c == nil {
		return mcp.NewToolResultError("unknown device: " + name), nil
	}

	dctx, cancel := deviceCtx(ctx)
	defer cancel()

	calibrated := false
	if req.GetBool("calibrate", false) {
		calibrated = c.Calibrate(dctx)
	}
	thresholdSet := false
	if v := req.GetFloat("threshold", -1); v >= 0 {
		thresholdSet = c.SetThreshold(dctx, int(v))
	}

	value, ok := c.ReadSensor(dctx)
	if !ok {
		return mcp.NewToolResultError("sensor read failed on " + name), nil
	}
	level := emotion.LevelFromSensor(value)

	if t.history != nil {
		t.history.Record(history.Entry{
			Kind:    history.KindSensor,
			Device:  name,
			Success: true,
		})
	}

	return jsonResult(map[string]any{
		"device":        name,
		"value":         value,
		"level":         level.String(),
		"calibrated":    calibrated,
		"threshold_set": thresholdSet,
	}), nil
}
