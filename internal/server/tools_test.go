package server

import (
	"context"
	"testing"

	"github.com/ironsheep/wordsearch-extract/internal/config"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"image_load",
		"wordsearch_detect_layout",
		"wordsearch_export_glyphs",
		"wordsearch_layout_overlay",
		"wordsearch_recognize",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("Duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	tools := GetToolDefinitions()

	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Name == "" {
				t.Error("Tool name is empty")
			}
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema == nil {
				t.Fatal("Tool InputSchema is nil")
			}

			if schemaType := tool.InputSchema["type"]; schemaType != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", schemaType)
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties should be a map")
			}

			// Every required parameter must be described.
			required, _ := tool.InputSchema["required"].([]string)
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required parameter %s has no property", r)
				}
			}
		})
	}
}

func TestToolDefinitions_Required(t *testing.T) {
	want := map[string][]string{
		"image_load":                {"path"},
		"wordsearch_detect_layout":  {"path"},
		"wordsearch_export_glyphs":  {"path", "output_dir"},
		"wordsearch_layout_overlay": {"path"},
		"wordsearch_recognize":      {"output_dir"},
	}

	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}

			expected := want[tool.Name]
			if len(required) != len(expected) {
				t.Fatalf("required: got %v, want %v", required, expected)
			}
			for i := range expected {
				if required[i] != expected[i] {
					t.Errorf("required[%d]: got %s, want %s", i, required[i], expected[i])
				}
			}
		})
	}
}

func TestToolDefinitions_OptionalDefaults(t *testing.T) {
	toolDefaults := map[string]map[string]interface{}{
		"wordsearch_layout_overlay": {"labels": true},
		"wordsearch_recognize":      {"write_files": false},
	}

	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		toolMap[tool.Name] = tool
	}

	for toolName, expectedDefaults := range toolDefaults {
		tool, ok := toolMap[toolName]
		if !ok {
			t.Errorf("Tool %s not found", toolName)
			continue
		}

		props, ok := tool.InputSchema["properties"].(map[string]interface{})
		if !ok {
			t.Errorf("%s: properties should be a map", toolName)
			continue
		}

		for paramName, expectedDefault := range expectedDefaults {
			param, ok := props[paramName].(map[string]interface{})
			if !ok {
				t.Errorf("%s.%s: parameter not found or not a map", toolName, paramName)
				continue
			}
			if actual := param["default"]; actual != expectedDefault {
				t.Errorf("%s.%s: default got %v, want %v", toolName, paramName, actual, expectedDefault)
			}
		}
	}
}

func TestToolDefinitions_FormatEnum(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		if tool.Name != "wordsearch_export_glyphs" {
			continue
		}
		props := tool.InputSchema["properties"].(map[string]interface{})
		format := props["format"].(map[string]interface{})
		enum, ok := format["enum"].([]string)
		if !ok || len(enum) != 2 || enum[0] != "bmp" || enum[1] != "png" {
			t.Errorf("format enum: got %v, want [bmp png]", format["enum"])
		}
		return
	}
	t.Fatal("wordsearch_export_glyphs not found")
}

func TestHandleToolsList(t *testing.T) {
	s := New(config.Default(), nil)
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
		Method:  "tools/list",
	}

	resp := s.handleRequest(context.Background(), req)

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

	expected := GetToolDefinitions()
	if len(toolsList) != len(expected) {
		t.Errorf("Tool count: got %d, want %d", len(toolsList), len(expected))
	}
}
