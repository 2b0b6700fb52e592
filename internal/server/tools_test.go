package server

import (
	"encoding/json"
	"testing"
)

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	expectedTools := []string{
		"image_load",
		"image_dimensions",
		"image_evict",
		"template_match",
		"template_find_peaks",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range tools {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	if len(tools) != len(expectedTools) {
		t.Errorf("got %d tools, want %d", len(tools), len(expectedTools))
	}
	for _, name := range expectedTools {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
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
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties is not a map")
			}

			required, _ := tool.InputSchema["required"].([]string)
			for _, name := range required {
				if _, ok := props[name]; !ok {
					t.Errorf("required field %s has no property", name)
				}
			}
		})
	}
}

func TestToolDefinitions_TemplateArguments(t *testing.T) {
	shared := []string{"image_path", "template_path", "template_region", "method", "grayscale"}
	peakOnly := []string{"max_count", "min_separation", "max_iterations", "reference_or_semantics", "min_score"}

	for _, tool := range GetToolDefinitions() {
		if tool.Name != "template_match" && tool.Name != "template_find_peaks" {
			continue
		}
		t.Run(tool.Name, func(t *testing.T) {
			props := tool.InputSchema["properties"].(map[string]interface{})
			for _, name := range shared {
				if _, ok := props[name]; !ok {
					t.Errorf("missing property %s", name)
				}
			}
			for _, name := range peakOnly {
				_, ok := props[name]
				if want := tool.Name == "template_find_peaks"; ok != want {
					t.Errorf("property %s present=%v, want %v", name, ok, want)
				}
			}
		})
	}
}

func TestToolDefinitions_Marshal(t *testing.T) {
	data, err := json.Marshal(GetToolDefinitions())
	if err != nil {
		t.Fatalf("Failed to marshal tools: %v", err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Failed to unmarshal tools: %v", err)
	}
	for _, tool := range decoded {
		if _, ok := tool["inputSchema"]; !ok {
			t.Errorf("tool %v missing inputSchema key", tool["name"])
		}
	}
}
