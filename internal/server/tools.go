package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_read",
			Description: "Read an image file as a 2-D signal and return its shape, dtype, axes and metadata. Gray-looking colour images are collapsed to one channel; other colour images are returned as packed rgb/rgba.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the image file",
					},
					"lazy": map[string]interface{}{
						"type":        "boolean",
						"description": "Defer decoding the pixels until they are needed. Default false",
						"default":     false,
					},
					"params": map[string]interface{}{
						"type":        "object",
						"description": "Codec options, e.g. {\"auto_orientation\": true}",
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_export",
			Description: "Read an image and write it to another file. With scalebar or output_size the image is rendered onto a figure (png, jpg, jpeg, tif, tiff only); otherwise the pixels are written directly.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to the source image file",
					},
					"output": map[string]interface{}{
						"type":        "string",
						"description": "Absolute path to write; the extension selects the format",
					},
					"scalebar": map[string]interface{}{
						"type":        "boolean",
						"description": "Overlay a calibrated scale bar. Default false",
						"default":     false,
					},
					"scale": map[string]interface{}{
						"type":        "number",
						"description": "Physical size of one pixel, applied to both axes",
					},
					"units": map[string]interface{}{
						"type":        "string",
						"description": "Units of scale, e.g. \"nm\" or \"1/nm\". Omit for pixel units",
					},
					"output_size": map[string]interface{}{
						"description": "Rendered size in pixels: one number for a square image or [width, height]",
						"oneOf": []interface{}{
							map[string]interface{}{"type": "number"},
							map[string]interface{}{
								"type":     "array",
								"items":    map[string]interface{}{"type": "number"},
								"minItems": 1,
								"maxItems": 2,
							},
						},
					},
					"scalebar_options": map[string]interface{}{
						"type":        "object",
						"description": "Scale bar overrides",
						"properties": map[string]interface{}{
							"location": map[string]interface{}{
								"type":        "string",
								"description": "upper/lower/center + left/right/center, \"best\" or a code 1-10. Default \"lower left\"",
							},
							"box_alpha": map[string]interface{}{
								"type":        "number",
								"description": "Background box opacity, 0 to 1. Default 0.75",
							},
							"color":           map[string]interface{}{"type": "string"},
							"box_color":       map[string]interface{}{"type": "string"},
							"frameon":         map[string]interface{}{"type": "boolean"},
							"length_fraction": map[string]interface{}{"type": "number"},
							"height_fraction": map[string]interface{}{"type": "number"},
							"scale_loc": map[string]interface{}{
								"type": "string",
								"enum": []string{"top", "bottom", "none"},
							},
							"label": map[string]interface{}{"type": "string"},
							"label_loc": map[string]interface{}{
								"type": "string",
								"enum": []string{"top", "bottom", "none"},
							},
							"fixed_value": map[string]interface{}{"type": "number"},
							"fixed_units": map[string]interface{}{"type": "string"},
						},
					},
					"params": map[string]interface{}{
						"type":        "object",
						"description": "Format options: quality, compress_level, optimize, palettesize",
					},
				},
				"required": []string{"path", "output"},
			},
		},
		{
			Name:        "image_formats",
			Description: "List the file extensions that can be read and written, and the file types supported for rendered (scale bar or resized) export.",
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
