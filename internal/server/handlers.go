package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ironsheep/cover-palette-mcp/internal/palette"
	"github.com/ironsheep/cover-palette-mcp/internal/source"
	"github.com/ironsheep/cover-palette-mcp/internal/theme"
)

const defaultCandidateLimit = 10

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "palette_extract", "theme_select").
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
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Cover Information
	case "cover_load":
		return s.handleCoverLoad(args)

	// Palette Extraction
	case "palette_extract":
		return s.handlePaletteExtract(ctx, args)
	case "palette_candidates":
		return s.handlePaletteCandidates(ctx, args)

	// Theme State
	case "theme_select":
		return s.handleThemeSelect(ctx, args)
	case "theme_current":
		return s.handleThemeCurrent()
	case "theme_cancel":
		return s.handleThemeCancel()

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

// decodeArgs unmarshals tool arguments. Missing arguments leave v unchanged.
func decodeArgs(args json.RawMessage, v interface{}) error {
	if len(args) == 0 || string(args) == "null" {
		return nil
	}
	return json.Unmarshal(args, v)
}

// === Result Types ===

// PaletteResult is the palette_extract result.
type PaletteResult struct {
	Reference source.Reference `json:"reference"`
	palette.Report
}

// CandidatesResult is the palette_candidates result.
type CandidatesResult struct {
	Reference source.Reference `json:"reference"`
	palette.AnalysisReport
}

// SnapshotResult is the theme_current result and the payload of theme
// notifications.
type SnapshotResult struct {
	Generation uint64           `json:"generation"`
	Reference  source.Reference `json:"reference"`
	Palette    palette.Report   `json:"palette"`
	Pending    bool             `json:"pending"`
}

// SelectResult is the theme_select result.
type SelectResult struct {
	Generation uint64          `json:"generation"`
	Current    *SnapshotResult `json:"current,omitempty"`
}

// CancelResult is the theme_cancel result.
type CancelResult struct {
	Cancelled bool            `json:"cancelled"`
	Current   *SnapshotResult `json:"current"`
}

func newSnapshotResult(snap theme.Snapshot) *SnapshotResult {
	return &SnapshotResult{
		Generation: snap.Generation,
		Reference:  snap.Reference,
		Palette:    snap.Palette.Report(),
	}
}

// === Cover Information Handlers ===

type coverLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleCoverLoad(args json.RawMessage) (interface{}, error) {
	var a coverLoadArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	return source.LoadCoverInfo(s.resolver.Cache(), a.Path)
}

// === Palette Extraction Handlers ===

type coverArgs struct {
	Path   string `json:"path"`
	URL    string `json:"url"`
	Region string `json:"region"`
}

func (a coverArgs) reference() (source.Reference, error) {
	if !source.ValidRegion(a.Region) {
		return source.Reference{}, fmt.Errorf("%w: %s", source.ErrUnknownRegion, a.Region)
	}
	return source.Reference{URL: a.URL, Path: a.Path, Region: a.Region}, nil
}

func (s *Server) handlePaletteExtract(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a coverArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	ref, err := a.reference()
	if err != nil {
		return nil, err
	}
	p := s.service.Palette(ctx, ref)
	return &PaletteResult{Reference: ref, Report: p.Report()}, nil
}

type paletteCandidatesArgs struct {
	coverArgs
	Limit *int `json:"limit"`
}

func (s *Server) handlePaletteCandidates(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a paletteCandidatesArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	ref, err := a.reference()
	if err != nil {
		return nil, err
	}
	limit := defaultCandidateLimit
	if a.Limit != nil {
		limit = *a.Limit
	}
	if limit < 0 {
		return nil, fmt.Errorf("limit must not be negative")
	}

	analysis, err := s.service.Analyze(ctx, ref)
	if err != nil {
		return nil, err
	}

	return &CandidatesResult{Reference: ref, AnalysisReport: analysis.Report(limit)}, nil
}

// === Theme State Handlers ===

type themeSelectArgs struct {
	coverArgs
	Wait bool `json:"wait"`
}

func (s *Server) handleThemeSelect(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a themeSelectArgs
	if err := decodeArgs(args, &a); err != nil {
		return nil, err
	}
	ref, err := a.reference()
	if err != nil {
		return nil, err
	}

	gen := s.holder.Request(ctx, ref)
	result := &SelectResult{Generation: gen}
	if a.Wait {
		s.holder.Wait()
		result.Current = s.currentSnapshot()
	}
	return result, nil
}

func (s *Server) handleThemeCurrent() (interface{}, error) {
	return s.currentSnapshot(), nil
}

func (s *Server) handleThemeCancel() (interface{}, error) {
	cancelled := s.holder.Cancel()
	return &CancelResult{Cancelled: cancelled, Current: s.currentSnapshot()}, nil
}

func (s *Server) currentSnapshot() *SnapshotResult {
	result := newSnapshotResult(s.holder.Current())
	result.Pending = s.holder.Pending()
	return result
}
