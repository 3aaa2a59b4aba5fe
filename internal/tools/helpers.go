// Package tools implements the MCP tool handlers the conversational agent
// calls to drive haptic feedback.
//
// Each tool is a struct receiving its dependencies at construction and
// exposing Definition/Handle for registration. Tools never raise for
// hardware trouble: device failures come back as structured results so the
// agent can keep talking.
package tools

import (
	"context"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/FujiiNoritsugu/go-haptic/pkg/emotion"
)

// dispatchTimeout bounds every device round-trip made from a tool call.
const dispatchTimeout = 10 * time.Second

// DefaultDeviceName is used when a tool call does not address a device.
const DefaultDeviceName = "default"

// emotionArgs extracts the four channel values from a tool request,
// clamping each to the valid range.
func emotionArgs(req mcp.CallToolRequest) emotion.Vector {
	return emotion.New(
		int(req.GetFloat("joy", 0)),
		int(req.GetFloat("fun", 0)),
		int(req.GetFloat("anger", 0)),
		int(req.GetFloat("sad", 0)),
	)
}

// withEmotionParams declares the four channel parameters on a tool.
func withEmotionParams(opts ...mcp.ToolOption) []mcp.ToolOption {
	params := []mcp.ToolOption{
		mcp.WithNumber("joy", mcp.Description("Joy level 0-5")),
		mcp.WithNumber("fun", mcp.Description("Fun level 0-5")),
		mcp.WithNumber("anger", mcp.Description("Anger level 0-5")),
		mcp.WithNumber("sad", mcp.Description("Sadness level 0-5")),
	}
	return append(opts, params...)
}

// jsonResult marshals v as the tool's text result.
func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("encoding result: " + err.Error())
	}
	return mcp.NewToolResultText(string(data))
}

// deviceCtx derives the bounded context used for device round-trips.
func deviceCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, dispatchTimeout)
}
