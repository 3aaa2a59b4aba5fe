package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/FujiiNoritsugu/go-haptic/internal/history"
)

// HistoryTool handles haptic_history: lets the agent recall what the
// device felt recently.
type HistoryTool struct {
	history *history.Store
}

// NewHistoryTool creates a HistoryTool.
func NewHistoryTool(hist *history.Store) *HistoryTool {
	return &HistoryTool{history: hist}
}

// Definition returns the MCP tool definition for registration.
func (t *HistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("haptic_history",
		mcp.WithDescription(
			"List recent haptic events: touches, dispatched patterns, sensor "+
				"triggers and alerts. Newest first.",
		),
		mcp.WithString("kind",
			mcp.Description("Filter by event kind"),
			mcp.Enum("touch", "dispatch", "sensor", "alert"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum entries to return"),
			mcp.DefaultNumber(20),
		),
		mcp.WithBoolean("stats",
			mcp.Description("Include aggregate counters"),
		),
	)
}

// Handle processes the haptic_history tool call.
func (t *HistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if !t.history.Enabled() {
		return mcp.NewToolResultError("history store is disabled"), nil
	}

	entries, err := t.history.Recent(
		req.GetString("kind", ""),
		int(req.GetFloat("limit", 20)),
	)
	if err != nil {
		return mcp.NewToolResultError("history query failed: " + err.Error()), nil
	}

	out := map[string]any{
		"count":   len(entries),
		"entries": entries,
	}
	if req.GetBool("stats", false) {
		stats, err := t.history.Stats()
		if err == nil {
			out["stats"] = stats
		}
	}
	return jsonResult(out), nil
}
