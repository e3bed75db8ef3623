package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/greenshed/sunmap/internal/config"
	"github.com/greenshed/sunmap/internal/exposure"
	"github.com/greenshed/sunmap/internal/placement"
	"github.com/greenshed/sunmap/internal/render"
	"github.com/greenshed/sunmap/internal/session"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "session_open", "placement_search").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies default values for optional parameters
//  3. Looks up the target session
//  4. Calls the appropriate session/render operation
//  5. Returns the result or error
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Session Lifecycle
	case "session_open":
		return s.handleSessionOpen(args)
	case "session_status":
		return s.handleSessionStatus(args)

	// Exposure Operations
	case "exposure_build":
		return s.handleExposureBuild(ctx, args)
	case "exposure_threshold_adjust":
		return s.handleExposureThresholdAdjust(ctx, args)
	case "exposure_export":
		return s.handleExposureExport(args)

	// Footprint Operations
	case "footprint_flip":
		return s.handleFootprintFlip(args)
	case "footprint_resize":
		return s.handleFootprintResize(args)

	// Placement Operations
	case "placement_score":
		return s.handlePlacementScore(args)
	case "placement_search":
		return s.handlePlacementSearch(args)
	case "placement_list":
		return s.handlePlacementList(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// buildOptions maps server configuration onto aggregation options.
func buildOptions(cfg config.Config) exposure.Options {
	return exposure.Options{
		ChunkRows: cfg.ChunkRows,
		Workers:   cfg.Workers,
	}
}

// === Session Lifecycle Handlers ===

type sessionOpenArgs struct {
	Threshold     *int    `json:"threshold,omitempty"`
	BedWidthFeet  float64 `json:"bed_width_feet"`
	BedHeightFeet float64 `json:"bed_height_feet"`
}

// SessionInfo is the result shape shared by session_open and session_status.
type SessionInfo struct {
	SessionID       string `json:"session_id"`
	Threshold       int    `json:"threshold"`
	FootprintWidth  int    `json:"footprint_width"`
	FootprintHeight int    `json:"footprint_height"`
	StackSize       int    `json:"stack_size"`
	GridReady       bool   `json:"grid_ready"`
	GridWidth       int    `json:"grid_width,omitempty"`
	GridHeight      int    `json:"grid_height,omitempty"`
	Placements      int    `json:"placements"`
}

func (s *Server) handleSessionOpen(args json.RawMessage) (interface{}, error) {
	var a sessionOpenArgs
	if len(args) > 0 {
		if err := json.Unmarshal(args, &a); err != nil {
			return nil, err
		}
	}

	sess := s.openSession()
	if a.Threshold != nil {
		sess.SetThreshold(*a.Threshold)
	}
	if a.BedWidthFeet > 0 && a.BedHeightFeet > 0 {
		w := session.FeetToPixels(a.BedWidthFeet)
		h := session.FeetToPixels(a.BedHeightFeet)
		cw, ch := sess.Footprint()
		sess.ResizeFootprint(w-cw, h-ch)
	}

	return sessionInfo(sess), nil
}

type sessionArgs struct {
	SessionID string `json:"session_id"`
}

func (s *Server) handleSessionStatus(args json.RawMessage) (interface{}, error) {
	var a sessionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session(a.SessionID)
	if err != nil {
		return nil, err
	}
	return sessionInfo(sess), nil
}

// sessionInfo snapshots a session into the shared result shape.
func sessionInfo(sess *session.Session) SessionInfo {
	w, h := sess.Footprint()
	info := SessionInfo{
		SessionID:       sess.ID(),
		Threshold:       sess.Threshold(),
		FootprintWidth:  w,
		FootprintHeight: h,
		StackSize:       sess.StackSize(),
		Placements:      len(sess.Placements()),
	}
	if grid, err := sess.Grid(); err == nil {
		info.GridReady = true
		info.GridWidth = grid.Width()
		info.GridHeight = grid.Height()
	}
	return info
}

// === Exposure Handlers ===

type exposureBuildArgs struct {
	SessionID string `json:"session_id"`
	Dir       string `json:"dir"`
}

// BuildResult reports a completed stack load and aggregation.
type BuildResult struct {
	Images     int      `json:"images"`
	Skipped    []string `json:"skipped,omitempty"`
	Threshold  int      `json:"threshold"`
	GridWidth  int      `json:"grid_width"`
	GridHeight int      `json:"grid_height"`
}

func (s *Server) handleExposureBuild(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a exposureBuildArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session(a.SessionID)
	if err != nil {
		return nil, err
	}

	dir, err := s.cache.LoadDir(a.Dir)
	if err != nil {
		return nil, err
	}

	sess.SetStack(dir.Buffers)
	if err := sess.Rebuild(ctx); err != nil {
		return nil, err
	}

	grid, err := sess.Grid()
	if err != nil {
		return nil, err
	}
	return BuildResult{
		Images:     len(dir.Buffers),
		Skipped:    dir.Skipped,
		Threshold:  sess.Threshold(),
		GridWidth:  grid.Width(),
		GridHeight: grid.Height(),
	}, nil
}

type thresholdAdjustArgs struct {
	SessionID string `json:"session_id"`
	Steps     int    `json:"steps"`
}

// ThresholdResult reports the threshold after an adjustment and whether the
// grid was rebuilt at the new value.
type ThresholdResult struct {
	Threshold int  `json:"threshold"`
	Rebuilt   bool `json:"rebuilt"`
}

func (s *Server) handleExposureThresholdAdjust(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a thresholdAdjustArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session(a.SessionID)
	if err != nil {
		return nil, err
	}

	threshold := sess.AdjustThreshold(a.Steps)

	// With a stack loaded, re-aggregate immediately so the next score or
	// search sees the new threshold.
	rebuilt := false
	if sess.StackSize() > 0 {
		if err := sess.Rebuild(ctx); err != nil {
			return nil, err
		}
		rebuilt = true
	}

	return ThresholdResult{Threshold: threshold, Rebuilt: rebuilt}, nil
}

type exposureExportArgs struct {
	SessionID  string  `json:"session_id"`
	Path       string  `json:"path"`
	Style      string  `json:"style"`
	Scale      float64 `json:"scale"`
	Legend     *bool   `json:"legend,omitempty"`
	Smooth     float64 `json:"smooth"`
	Placements bool    `json:"placements"`
	Raw        bool    `json:"raw"`
}

// ExportResult reports an export. For raw exports Pixels holds the grid
// cells row-major (JSON encodes them base64); for file exports Path names
// the written PNG.
type ExportResult struct {
	Path       string `json:"path,omitempty"`
	GridWidth  int    `json:"grid_width"`
	GridHeight int    `json:"grid_height"`
	Pixels     []byte `json:"pixels,omitempty"`
}

func (s *Server) handleExposureExport(args json.RawMessage) (interface{}, error) {
	var a exposureExportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session(a.SessionID)
	if err != nil {
		return nil, err
	}

	if a.Raw {
		pixels, w, h, err := sess.GridPixels()
		if err != nil {
			return nil, err
		}
		return ExportResult{GridWidth: w, GridHeight: h, Pixels: pixels}, nil
	}

	if a.Path == "" {
		return nil, fmt.Errorf("export requires a path (or raw: true)")
	}

	grid, err := sess.Grid()
	if err != nil {
		return nil, err
	}

	opts := render.Options{
		Style:       render.Style(a.Style),
		Scale:       a.Scale,
		SmoothSigma: a.Smooth,
	}
	if opts.Style == "" {
		opts.Style = render.Style(s.cfg.ExportStyle)
	}
	if opts.Scale == 0 {
		opts.Scale = s.cfg.ExportScale
	}
	if a.Legend != nil {
		opts.Legend = *a.Legend
	} else {
		opts.Legend = s.cfg.Legend
	}
	if a.Placements {
		opts.Placements = sess.Placements()
	}

	img, err := render.Image(grid, opts)
	if err != nil {
		return nil, err
	}
	if err := render.Save(img, a.Path); err != nil {
		return nil, err
	}
	return ExportResult{Path: a.Path, GridWidth: grid.Width(), GridHeight: grid.Height()}, nil
}

// === Footprint Handlers ===

// FootprintResult reports the footprint after a flip or resize.
type FootprintResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (s *Server) handleFootprintFlip(args json.RawMessage) (interface{}, error) {
	var a sessionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session(a.SessionID)
	if err != nil {
		return nil, err
	}
	w, h := sess.FlipFootprint()
	return FootprintResult{Width: w, Height: h}, nil
}

type footprintResizeArgs struct {
	SessionID   string `json:"session_id"`
	WidthDelta  int    `json:"width_delta"`
	HeightDelta int    `json:"height_delta"`
}

func (s *Server) handleFootprintResize(args json.RawMessage) (interface{}, error) {
	var a footprintResizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session(a.SessionID)
	if err != nil {
		return nil, err
	}
	w, h := sess.ResizeFootprint(a.WidthDelta, a.HeightDelta)
	return FootprintResult{Width: w, Height: h}, nil
}

// === Placement Handlers ===

type placementPointArgs struct {
	SessionID string `json:"session_id"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
}

// ScoreResult reports a footprint scored at a fixed anchor.
type ScoreResult struct {
	X          int     `json:"x"`
	Y          int     `json:"y"`
	Score      int     `json:"score"`
	Percentage float64 `json:"percentage"`
}

func (s *Server) handlePlacementScore(args json.RawMessage) (interface{}, error) {
	var a placementPointArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session(a.SessionID)
	if err != nil {
		return nil, err
	}
	score, pct, err := sess.ScoreAt(a.X, a.Y)
	if err != nil {
		return nil, err
	}
	return ScoreResult{X: a.X, Y: a.Y, Score: score, Percentage: pct}, nil
}

func (s *Server) handlePlacementSearch(args json.RawMessage) (interface{}, error) {
	var a placementPointArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session(a.SessionID)
	if err != nil {
		return nil, err
	}
	return sess.StartSearch(a.X, a.Y)
}

// PlacementList wraps the saved placements for placement_list.
type PlacementList struct {
	Placements []PlacementEntry `json:"placements"`
}

// PlacementEntry is one saved placement with its derived percentage.
type PlacementEntry struct {
	CenterX    int     `json:"center_x"`
	CenterY    int     `json:"center_y"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Score      int     `json:"score"`
	Percentage float64 `json:"percentage"`
}

func (s *Server) handlePlacementList(args json.RawMessage) (interface{}, error) {
	var a sessionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	sess, err := s.session(a.SessionID)
	if err != nil {
		return nil, err
	}

	saved := sess.Placements()
	list := PlacementList{Placements: make([]PlacementEntry, len(saved))}
	for i, p := range saved {
		list.Placements[i] = PlacementEntry{
			CenterX:    p.Rect.CenterX,
			CenterY:    p.Rect.CenterY,
			Width:      p.Rect.Width,
			Height:     p.Rect.Height,
			Score:      p.Score,
			Percentage: placement.Percentage(p.Score, p.Rect.Width, p.Rect.Height),
		}
	}
	return list, nil
}
