package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": description,
	}
}

// matchProperties describes the arguments shared by template_match and
// template_find_peaks.
func matchProperties() map[string]interface{} {
	return map[string]interface{}{
		"image_path": pathProperty("Absolute path to the image to search"),
		"template_path": pathProperty(
			"Absolute path to the template image. Mutually exclusive with template_region"),
		"template_region": map[string]interface{}{
			"type":        "object",
			"description": "Cut the template out of the searched image instead of loading a file. (x1,y1) inclusive, (x2,y2) exclusive",
			"properties": map[string]interface{}{
				"x1": map[string]interface{}{"type": "integer", "description": "Left edge X coordinate (0-based)"},
				"y1": map[string]interface{}{"type": "integer", "description": "Top edge Y coordinate (0-based)"},
				"x2": map[string]interface{}{"type": "integer", "description": "Right edge X coordinate (exclusive)"},
				"y2": map[string]interface{}{"type": "integer", "description": "Bottom edge Y coordinate (exclusive)"},
			},
			"required": []string{"x1", "y1", "x2", "y2"},
		},
		"method": map[string]interface{}{
			"type":        "string",
			"description": "Scoring method. Only normalized correlation is available",
			"enum":        []string{"norm-corr"},
			"default":     "norm-corr",
		},
		"grayscale": map[string]interface{}{
			"type":        "string",
			"description": "Channel reduction: BT.601 luma or CIE L* lightness",
			"enum":        []string{"luma", "lightness"},
			"default":     "luma",
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	peakProps := matchProperties()
	peakProps["max_count"] = map[string]interface{}{
		"type":        "integer",
		"description": "Maximum number of peaks to return (at least 1). Defaults to the server setting",
		"minimum":     1,
	}
	peakProps["min_separation"] = map[string]interface{}{
		"type":        "number",
		"description": "Minimum Euclidean distance in pixels between accepted peaks. Defaults to the server setting",
		"minimum":     0,
	}
	peakProps["max_iterations"] = map[string]interface{}{
		"type":        "integer",
		"description": "Maximum candidates examined. 0 selects the default of 50",
		"minimum":     0,
	}
	peakProps["reference_or_semantics"] = map[string]interface{}{
		"type":        "boolean",
		"description": "Accept a candidate when it is far from ANY accepted peak instead of from ALL of them. Reproduces the historical picker",
		"default":     false,
	}
	peakProps["min_score"] = map[string]interface{}{
		"type":        "number",
		"description": "Stop once the best remaining candidate scores below this value",
	}

	return []Tool{
		// Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The decoded image stays cached for later matching calls.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Absolute path to the image file"),
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
					"path": pathProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_evict",
			Description: "Drop a cached image, or every cached image, so the next call reads it from disk again.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty("Path the image was loaded with"),
					"all": map[string]interface{}{
						"type":        "boolean",
						"description": "Clear the whole cache",
					},
				},
			},
		},

		// Template Matching
		{
			Name:        "template_match",
			Description: "Slide a template over an image and score every placement with normalized cross-correlation (1 = perfect match, -1 = inverted). Returns the surface size, the best placement and the score range.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": matchProperties(),
				"required":   []string{"image_path"},
			},
		},
		{
			Name:        "template_find_peaks",
			Description: "Find up to max_count well-separated template matches, strongest first. Coordinates are the top-left corner of each match in the image.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": peakProps,
				"required":   []string{"image_path"},
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
