package server

import (
	"context"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	want := []string{"cover_load", "palette_extract", "palette_candidates", "theme_select", "theme_current", "theme_cancel"}
	if len(tools) != len(want) {
		t.Fatalf("Tool count: got %d, want %d", len(tools), len(want))
	}

	seen := make(map[string]bool)
	for i, tool := range tools {
		if tool.Name != want[i] {
			t.Errorf("tools[%d]: got %s, want %s", i, tool.Name, want[i])
		}
		if seen[tool.Name] {
			t.Errorf("duplicate tool %s", tool.Name)
		}
		seen[tool.Name] = true

		if tool.Description == "" {
			t.Errorf("%s: empty description", tool.Name)
		}
		if tool.InputSchema["type"] != "object" {
			t.Errorf("%s: schema type got %v, want object", tool.Name, tool.InputSchema["type"])
		}
		if _, ok := tool.InputSchema["properties"].(map[string]interface{}); !ok {
			t.Errorf("%s: schema properties should be a map", tool.Name)
		}
	}
}

func TestToolDefinitions_CoverProperties(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		switch tool.Name {
		case "palette_extract", "palette_candidates", "theme_select":
		default:
			continue
		}
		props := tool.InputSchema["properties"].(map[string]interface{})
		for _, name := range []string{"path", "url", "region"} {
			if _, ok := props[name]; !ok {
				t.Errorf("%s: missing %s property", tool.Name, name)
			}
		}
	}
}

func TestToolDefinitions_Defaults(t *testing.T) {
	defaults := map[string]map[string]interface{}{
		"palette_candidates": {"limit": 10},
		"theme_select":       {"wait": false},
	}

	for _, tool := range GetToolDefinitions() {
		want, ok := defaults[tool.Name]
		if !ok {
			continue
		}
		props := tool.InputSchema["properties"].(map[string]interface{})
		for param, expected := range want {
			prop, ok := props[param].(map[string]interface{})
			if !ok {
				t.Errorf("%s.%s: missing", tool.Name, param)
				continue
			}
			if prop["default"] != expected {
				t.Errorf("%s.%s: default got %v, want %v", tool.Name, param, prop["default"], expected)
			}
		}
	}
}

func TestToolDefinitions_CoverLoadRequiresPath(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		if tool.Name != "cover_load" {
			continue
		}
		required, ok := tool.InputSchema["required"].([]string)
		if !ok || len(required) != 1 || required[0] != "path" {
			t.Errorf("cover_load required: got %v", tool.InputSchema["required"])
		}
		return
	}
	t.Fatal("cover_load not defined")
}

func TestHandleToolsList(t *testing.T) {
	s := newTestServer(t)
	resp := s.handleRequest(context.Background(), &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/list",
	})

	if resp == nil {
		t.Fatal("handleToolsList returned nil")
	}
	if resp.Error != nil {
		t.Fatalf("Unexpected error: %v", resp.Error)
	}

	result, ok := resp.Result.(map[string]interface{})
	if !ok {
		t.Fatal("Result should be a map")
	}
	toolsList, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatal("tools should be a slice of Tool")
	}
	if len(toolsList) != len(GetToolDefinitions()) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(GetToolDefinitions()))
	}
}
