package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// sessionIDProperty is the session_id schema shared by every stateful tool.
func sessionIDProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Session id returned by session_open",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Session Lifecycle
		{
			Name:        "session_open",
			Description: "Open a new planning session with the default brightness threshold (200) and the default 8ft x 4ft bed footprint. Returns the session id used by every other tool.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Optional initial brightness threshold, clamped to 0-255. Default 200",
					},
					"bed_width_feet": map[string]interface{}{
						"type":        "number",
						"description": "Optional bed width in feet. Default 8",
					},
					"bed_height_feet": map[string]interface{}{
						"type":        "number",
						"description": "Optional bed height in feet. Default 4",
					},
				},
			},
		},
		{
			Name:        "session_status",
			Description: "Report a session's threshold, footprint, stack size, grid state and saved placement count.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionIDProperty(),
				},
				"required": []string{"session_id"},
			},
		},

		// Exposure Operations
		{
			Name:        "exposure_build",
			Description: "Load every photograph in a directory as the session's stack and aggregate it into a sun exposure grid at the current threshold. All photographs must share the same dimensions.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionIDProperty(),
					"dir": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the directory of aligned photographs",
					},
				},
				"required": []string{"session_id", "dir"},
			},
		},
		{
			Name:        "exposure_threshold_adjust",
			Description: "Move the brightness threshold by whole steps of 10 (negative steps lower it), clamped to 0-255, and re-aggregate the grid if a stack is loaded.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionIDProperty(),
					"steps": map[string]interface{}{
						"type":        "integer",
						"description": "Number of 10-unit steps to move the threshold; negative lowers it",
					},
				},
				"required": []string{"session_id", "steps"},
			},
		},
		{
			Name:        "exposure_export",
			Description: "Export the exposure grid. With raw: true, returns the cell values directly (base64, row-major); otherwise renders a PNG heat map or grayscale map to the given path, optionally smoothed, scaled, with a legend and saved placement outlines.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionIDProperty(),
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path for the output PNG (omit with raw: true)",
					},
					"style": map[string]interface{}{
						"type":        "string",
						"description": "Render style: \"heat\" or \"gray\". Default from server config",
						"enum":        []string{"heat", "gray"},
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional output scale factor (e.g., 2.0 to double size)",
					},
					"legend": map[string]interface{}{
						"type":        "boolean",
						"description": "Append a gradient legend. Default from server config",
					},
					"smooth": map[string]interface{}{
						"type":        "number",
						"description": "Optional Gaussian blur radius applied before coloring. 0 disables",
					},
					"placements": map[string]interface{}{
						"type":        "boolean",
						"description": "Outline the session's saved placements. Default false",
					},
					"raw": map[string]interface{}{
						"type":        "boolean",
						"description": "Return the raw grid cells instead of rendering. Default false",
					},
				},
				"required": []string{"session_id"},
			},
		},

		// Footprint Operations
		{
			Name:        "footprint_flip",
			Description: "Swap the footprint's width and height, switching the bed between landscape and portrait orientation.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionIDProperty(),
				},
				"required": []string{"session_id"},
			},
		},
		{
			Name:        "footprint_resize",
			Description: "Grow or shrink the footprint by pixel deltas. Each dimension is clamped to a minimum of 1 pixel. Saved placements are never affected.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionIDProperty(),
					"width_delta": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels to add to the width (negative shrinks)",
					},
					"height_delta": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels to add to the height (negative shrinks)",
					},
				},
				"required": []string{"session_id"},
			},
		},

		// Placement Operations
		{
			Name:        "placement_score",
			Description: "Score the current footprint centered at (x, y) against the exposure grid: the sum of covered cell values plus the percentage of the footprint's maximum possible exposure. The footprint must overlap the grid.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionIDProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Footprint center X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Footprint center Y coordinate (0-based)",
					},
				},
				"required": []string{"session_id", "x", "y"},
			},
		},
		{
			Name:        "placement_search",
			Description: "Run a steepest-ascent hill climb for the current footprint starting at (x, y), moving one pixel at a time toward higher exposure until no neighbor improves. The frozen placement is saved to the session and returned.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionIDProperty(),
					"x": map[string]interface{}{
						"type":        "integer",
						"description": "Search start center X coordinate (0-based)",
					},
					"y": map[string]interface{}{
						"type":        "integer",
						"description": "Search start center Y coordinate (0-based)",
					},
				},
				"required": []string{"session_id", "x", "y"},
			},
		},
		{
			Name:        "placement_list",
			Description: "List the session's saved placements in the order they were found.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"session_id": sessionIDProperty(),
				},
				"required": []string{"session_id"},
			},
		},
	}
}
