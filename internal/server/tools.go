package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Path to the image file",
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "annotate_image",
			Description: "Label one image: OCR each preprocessing strategy in priority order, add contour detections, and write the YOLO label file (and debug image when enabled). Returns the emitted boxes.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "annotate_directory",
			Description: "Label every image in a directory and return the run summary: labeled, undetected and failed counts plus per-image outcomes.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"images_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory to scan (default: configured images_dir)",
					},
					"labels_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory for label files (default: configured labels_dir)",
					},
					"debug_dir": map[string]interface{}{
						"type":        "string",
						"description": "Directory for debug images (default: configured debug_dir)",
					},
					"workers": map[string]interface{}{
						"type":        "integer",
						"description": "Images processed concurrently (default: configured workers)",
						"minimum":     1,
					},
				},
			},
		},
		{
			Name:        "list_strategies",
			Description: "List the preprocessing strategies in priority order with their recognition configuration, and the symbol to class ID map.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": map[string]interface{}{},
			},
		},
		{
			Name:        "detect_contours",
			Description: "Run the small-contour heuristic on the grayscale image without OCR. Optionally also report thin horizontal strokes (minus candidates).",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"min_area": map[string]interface{}{
						"type":        "number",
						"description": "Exclusive lower area bound (default: configured min_area)",
					},
					"max_area": map[string]interface{}{
						"type":        "number",
						"description": "Exclusive upper area bound (default: configured max_area)",
					},
					"include_lines": map[string]interface{}{
						"type":        "boolean",
						"description": "Also detect horizontal strokes (default: false)",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
	}
}

func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
