package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// pathProperty is the schema of the image path argument every tool takes.
var pathProperty = map[string]interface{}{
	"type":        "string",
	"description": "Absolute path to the image file",
}

// segmentationProperties returns the schema of the binarization overrides.
func segmentationProperties() map[string]interface{} {
	return map[string]interface{}{
		"path": pathProperty,
		"threshold": map[string]interface{}{
			"type":        "integer",
			"description": "Inverted binary threshold; pixels with luminance at or below it are shape pixels. Default 200",
			"minimum":     0,
			"maximum":     255,
		},
		"blur_kernel": map[string]interface{}{
			"type":        "integer",
			"description": "Odd Gaussian blur kernel size applied before thresholding; 1 disables blurring. Default 5",
			"minimum":     1,
		},
	}
}

// analysisProperties returns the schema shared by the shape tools, with any
// extra properties merged in.
func analysisProperties(extra map[string]interface{}) map[string]interface{} {
	props := segmentationProperties()
	props["min_area"] = map[string]interface{}{
		"type":        "number",
		"description": "Regions with a smaller area in square pixels are ignored as noise. Default 500",
		"minimum":     0,
	}
	props["epsilon"] = map[string]interface{}{
		"type":        "number",
		"description": "Polygon simplification tolerance as a fraction of each region's perimeter. Default 0.04",
	}
	props["circularity_cutoff"] = map[string]interface{}{
		"type":        "number",
		"description": "Regions with circularity above this are circles. Default 0.85",
	}
	props["square_tolerance"] = map[string]interface{}{
		"type":        "number",
		"description": "Four-sided regions whose aspect ratio is within this distance of 1 are squares. Default 0.05",
	}
	for k, v := range extra {
		props[k] = v
	}
	return props
}

// styleProperties are the annotation style overrides.
func styleProperties() map[string]interface{} {
	return map[string]interface{}{
		"outline_color": map[string]interface{}{
			"type":        "string",
			"description": "Outline colour as #RRGGBB. Default #00FF00",
		},
		"label_color": map[string]interface{}{
			"type":        "string",
			"description": "Label text colour as #RRGGBB. Default #FF0000",
		},
		"outline_width": map[string]interface{}{
			"type":        "integer",
			"description": "Outline stroke width in pixels. Default 2",
			"minimum":     1,
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	annotateExtra := styleProperties()
	annotateExtra["format"] = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"png", "svg"},
		"description": "Output format: png returns a base64-encoded annotated copy of the image, svg returns a vector overlay. Default png",
		"default":     "png",
	}

	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The decoded image is cached for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},

		// Shape Analysis
		{
			Name:        "image_analyze_shapes",
			Description: "Find the dark shapes on a light background and classify each as Circle, Triangle, Square, Rectangle, Pentagon, Hexagon, Heptagon, Octagon or Polygon. Returns per-shape area, perimeter, vertex count, circularity, aspect ratio, outline and mean colour, plus the summary lines.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": analysisProperties(nil),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_annotate_shapes",
			Description: "Analyze the shapes in an image and draw each outline with its label. Returns the analysis together with the annotated image.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": analysisProperties(annotateExtra),
				"required":   []string{"path"},
			},
		},
		{
			Name:        "image_crop_shape",
			Description: "Analyze the shapes in an image and crop one of them, by its index in the analysis result, as base64-encoded PNG. Use this to examine a single detected shape.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": analysisProperties(map[string]interface{}{
					"index": map[string]interface{}{
						"type":        "integer",
						"description": "Zero-based index of the shape in discovery order",
						"minimum":     0,
					},
					"padding": map[string]interface{}{
						"type":        "integer",
						"description": "Pixels of context to include around the shape's bounding box. Default 0",
						"minimum":     0,
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Optional scale factor (e.g., 2.0 to double size). Default 1.0",
						"default":     1.0,
					},
				}),
				"required": []string{"path", "index"},
			},
		},

		// Debugging
		{
			Name:        "image_binarize",
			Description: "Return the binary mask the shape analysis works on as base64-encoded PNG (white = shape pixels). Use this to tune threshold and blur_kernel.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": segmentationProperties(),
				"required":   []string{"path"},
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
