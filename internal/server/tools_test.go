package server

import (
	"context"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expected := []string{
		"annotate_image",
		"annotate_directory",
		"list_strategies",
		"detect_contours",
	}
	if len(tools) != len(expected) {
		t.Fatalf("got %d tools, want %d", len(tools), len(expected))
	}
	for i, name := range expected {
		if tools[i].Name != name {
			t.Errorf("tool %d: got %s, want %s", i, tools[i].Name, name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want object", tool.InputSchema["type"])
			}
			if _, ok := tool.InputSchema["properties"].(map[string]interface{}); !ok {
				t.Error("InputSchema properties should be a map")
			}
		})
	}
}

func TestToolDefinitions_RequiredPath(t *testing.T) {
	needsPath := map[string]bool{
		"annotate_image":     true,
		"annotate_directory": false,
		"list_strategies":    false,
		"detect_contours":    true,
	}

	for _, tool := range GetToolDefinitions() {
		required, _ := tool.InputSchema["required"].([]string)
		hasPath := false
		for _, r := range required {
			if r == "path" {
				hasPath = true
			}
		}
		if hasPath != needsPath[tool.Name] {
			t.Errorf("%s: path required = %v, want %v", tool.Name, hasPath, needsPath[tool.Name])
		}
	}
}

func TestHandleToolsList(t *testing.T) {
	s, _ := newTestServer(t, testConfig(t), &stubRecognizer{})

	resp := s.handleRequest(context.Background(), &MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"})
	if resp == nil || resp.Error != nil {
		t.Fatalf("unexpected response: %+v", resp)
	}

	result := resp.Result.(map[string]interface{})
	tools, ok := result["tools"].([]Tool)
	if !ok {
		t.Fatalf("tools should be []Tool, got %T", result["tools"])
	}
	if len(tools) != len(GetToolDefinitions()) {
		t.Errorf("got %d tools", len(tools))
	}
}
