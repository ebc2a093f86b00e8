package server

import (
	"testing"
)

// toolByName returns the named tool definition or fails the test.
func toolByName(t *testing.T, name string) Tool {
	t.Helper()
	for _, tool := range GetToolDefinitions() {
		if tool.Name == name {
			return tool
		}
	}
	t.Fatalf("%s tool not found", name)
	return Tool{}
}

func TestGetToolDefinitions(t *testing.T) {
	tools := GetToolDefinitions()

	if len(tools) == 0 {
		t.Fatal("GetToolDefinitions returned empty slice")
	}

	expectedTools := []string{
		"image_load",
		"image_dimensions",
		"image_analyze_shapes",
		"image_annotate_shapes",
		"image_crop_shape",
		"image_binarize",
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
	if len(tools) != len(expectedTools) {
		t.Errorf("Tool count: got %d, want %d", len(tools), len(expectedTools))
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

			schemaType, ok := tool.InputSchema["type"]
			if !ok {
				t.Error("InputSchema missing 'type' field")
			}
			if schemaType != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", schemaType)
			}

			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema 'properties' should be a map")
			}

			// Every required parameter must be described
			required, _ := tool.InputSchema["required"].([]string)
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required parameter %q has no property", r)
				}
			}
		})
	}
}

func TestToolDefinitions_RequiredPath(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			requiredList, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}

			hasPath := false
			for _, r := range requiredList {
				if r == "path" {
					hasPath = true
					break
				}
			}

			if !hasPath {
				t.Error("Tool should require 'path' parameter")
			}
		})
	}
}

func TestToolDefinitions_AnalysisOverrides(t *testing.T) {
	overrides := []string{"threshold", "blur_kernel", "min_area", "epsilon", "circularity_cutoff", "square_tolerance"}

	for _, name := range []string{"image_analyze_shapes", "image_annotate_shapes", "image_crop_shape"} {
		t.Run(name, func(t *testing.T) {
			props := toolByName(t, name).InputSchema["properties"].(map[string]interface{})
			for _, o := range overrides {
				if _, ok := props[o]; !ok {
					t.Errorf("missing override %q", o)
				}
			}
		})
	}

	// Binarize only exposes the segmentation settings
	props := toolByName(t, "image_binarize").InputSchema["properties"].(map[string]interface{})
	if _, ok := props["min_area"]; ok {
		t.Error("image_binarize should not expose min_area")
	}
	if _, ok := props["threshold"]; !ok {
		t.Error("image_binarize should expose threshold")
	}
}

func TestToolDefinitions_AnnotateFormat(t *testing.T) {
	props := toolByName(t, "image_annotate_shapes").InputSchema["properties"].(map[string]interface{})

	format, ok := props["format"].(map[string]interface{})
	if !ok {
		t.Fatal("format property should exist and be a map")
	}

	enum, ok := format["enum"].([]string)
	if !ok {
		t.Fatal("format should have enum")
	}
	if len(enum) != 2 || enum[0] != "png" || enum[1] != "svg" {
		t.Errorf("format enum: got %v, want [png svg]", enum)
	}
	if format["default"] != "png" {
		t.Errorf("format default: got %v, want png", format["default"])
	}

	for _, style := range []string{"outline_color", "label_color", "outline_width"} {
		if _, ok := props[style]; !ok {
			t.Errorf("missing style property %q", style)
		}
	}
}

func TestToolDefinitions_CropShapeRequiresIndex(t *testing.T) {
	tool := toolByName(t, "image_crop_shape")

	required, ok := tool.InputSchema["required"].([]string)
	if !ok {
		t.Fatal("required should be a string slice")
	}

	expectedRequired := map[string]bool{"path": true, "index": true}
	for _, r := range required {
		delete(expectedRequired, r)
	}
	for missing := range expectedRequired {
		t.Errorf("image_crop_shape should require '%s' parameter", missing)
	}

	props := tool.InputSchema["properties"].(map[string]interface{})
	scale, ok := props["scale"].(map[string]interface{})
	if !ok {
		t.Fatal("scale property should exist")
	}
	if scale["default"] != 1.0 {
		t.Errorf("scale default: got %v, want 1.0", scale["default"])
	}
}

func TestToolDefinitions_Independent(t *testing.T) {
	// Mutating one definition must not leak into the next call
	first := GetToolDefinitions()
	props := first[2].InputSchema["properties"].(map[string]interface{})
	props["threshold"] = "changed"

	second := GetToolDefinitions()
	props = second[2].InputSchema["properties"].(map[string]interface{})
	if _, ok := props["threshold"].(map[string]interface{}); !ok {
		t.Error("tool definitions share mutable state")
	}
}

func TestHandleToolsList(t *testing.T) {
	s := New()
	req := &MCPRequest{
		JSONRPC: "2.0",
		ID:      1,
	}

	resp := s.handleToolsList(req)

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
