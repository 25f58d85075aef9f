package server

import (
	"strings"

	"github.com/ironsheep/cover-palette-mcp/internal/source"
)

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// coverProperties returns the schema properties shared by every tool that
// takes a cover reference.
func coverProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": map[string]interface{}{
			"type":        "string",
			"description": "Absolute path to a local cover image",
		},
		"url": map[string]interface{}{
			"type":        "string",
			"description": "HTTP(S) URL of a cover image. Takes precedence over path",
		},
		"region": map[string]interface{}{
			"type":        "string",
			"enum":        source.RegionNames,
			"description": "Part of the cover to derive colors from: " + strings.Join(source.RegionNames, ", ") + ". Default full",
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	candidates := coverProperties()
	candidates["limit"] = map[string]interface{}{
		"type":        "integer",
		"description": "Maximum number of candidates to return. Default 10, 0 for all",
		"default":     10,
	}

	selectProps := coverProperties()
	selectProps["wait"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Block until the palette is published and return it. Default false",
		"default":     false,
	}

	return []Tool{
		// Cover Information
		{
			Name:        "cover_load",
			Description: "Load a local cover image and return its dimensions, format and file size. The decoded image is cached for later palette calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the cover image",
					},
				},
				"required": []string{"path"},
			},
		},

		// Palette Extraction
		{
			Name:        "palette_extract",
			Description: "Extract the dominant, secondary and light colors of a cover plus a three-stop background gradient. Never fails: a missing or unusable cover yields the fallback palette (blue/gray, transparent gradient) with fallback=true.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": coverProperties(),
			},
		},
		{
			Name:        "palette_candidates",
			Description: "Run the extraction pipeline and report its intermediate results: pixels sampled, histogram size and the ranked vibrant candidates. Unlike palette_extract this reports fetch and decode errors.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": candidates,
			},
		},

		// Theme State
		{
			Name:        "theme_select",
			Description: "Select the cover whose palette themes the UI. Extraction runs in the background; a newer selection supersedes and cancels an older one, and only the latest selection is ever published. Returns the generation number of this selection.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": selectProps,
			},
		},
		{
			Name:        "theme_current",
			Description: "Return the currently published theme palette with its generation and cover reference, and whether a newer selection is still pending.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "theme_cancel",
			Description: "Abort the theme selection still in progress, if any. The current palette is kept and the aborted selection is never published.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
