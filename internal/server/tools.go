package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

var (
	pathProperty = map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the puzzle page (PNG, JPEG, GIF, BMP, TIFF or PDF)",
	}
	binarizeProperty = map[string]interface{}{
		"type":        "boolean",
		"description": "Threshold the page to black and white before detection. Defaults to the server configuration.",
	}
	outputDirProperty = map[string]interface{}{
		"type":        "string",
		"description": "Folder receiving grid/ and words/ subfolders",
	}
)

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		{
			Name:        "image_load",
			Description: "Load a page image and return its dimensions, format and file size.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "wordsearch_detect_layout",
			Description: "Locate the letter grid, its cells, the word list and every word on a word-search page. Returns pixel rectangles.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":     pathProperty,
					"binarize": binarizeProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "wordsearch_export_glyphs",
			Description: "Detect the layout and write one normalized glyph per grid cell and per word letter. Files are grid/<col>_<row>.<ext> and words/word_<i>/letter_<n>.<ext>.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":       pathProperty,
					"output_dir": outputDirProperty,
					"format": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"bmp", "png"},
						"description": "Glyph file format. Defaults to the server configuration.",
					},
					"binarize": binarizeProperty,
				},
				"required": []string{"path", "output_dir"},
			},
		},
		{
			Name:        "wordsearch_layout_overlay",
			Description: "Draw the detected grid, cells, word list and words over the page and return it as base64 PNG.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty,
					"labels": map[string]interface{}{
						"type":        "boolean",
						"description": "Print each word's index next to its box",
						"default":     true,
					},
					"binarize": binarizeProperty,
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "wordsearch_recognize",
			Description: "Read exported glyphs with Tesseract and return the letter grid and word list. When path is given the page is exported to output_dir first.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"output_dir": outputDirProperty,
					"path":       pathProperty,
					"write_files": map[string]interface{}{
						"type":        "boolean",
						"description": "Also write grid.txt and words.txt into output_dir",
						"default":     false,
					},
				},
				"required": []string{"output_dir"},
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
