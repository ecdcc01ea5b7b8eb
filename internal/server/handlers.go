package server

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ironsheep/wordsearch-extract/internal/glyph"
	"github.com/ironsheep/wordsearch-extract/internal/imaging"
	"github.com/ironsheep/wordsearch-extract/internal/layout"
	"github.com/ironsheep/wordsearch-extract/internal/ocr"
	"github.com/ironsheep/wordsearch-extract/internal/pipeline"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "wordsearch_detect_layout").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(ctx, params.Name, params.Arguments)
	if err != nil {
		s.logger.Warn("tool failed", "tool", params.Name, "error", err)
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(ctx context.Context, name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "wordsearch_detect_layout":
		return s.handleDetectLayout(args)
	case "wordsearch_export_glyphs":
		return s.handleExportGlyphs(ctx, args)
	case "wordsearch_layout_overlay":
		return s.handleLayoutOverlay(args)
	case "wordsearch_recognize":
		return s.handleRecognize(ctx, args)
	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure it returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// pipeline builds a pipeline from the server configuration with per-call
// overrides. A nil binarize or empty format keeps the configured value.
func (s *Server) pipeline(binarize *bool, format string) (*pipeline.Pipeline, error) {
	cfg := s.cfg
	if binarize != nil {
		cfg.Input.Binarize = *binarize
	}
	if format != "" {
		cfg.Export.Format = strings.ToLower(format)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return pipeline.New(cfg, s.cache, s.logger), nil
}

// ocrEngine returns the shared recognizer, starting it on first use.
func (s *Server) ocrEngine() (*ocr.Recognizer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.recognizer == nil {
		r, err := ocr.NewRecognizer(s.cfg.OCR)
		if err != nil {
			return nil, err
		}
		s.recognizer = r
	}
	return s.recognizer, nil
}

func requirePath(name, value string) error {
	if value == "" {
		return fmt.Errorf("%s is required", name)
	}
	return nil
}

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("path", a.Path); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

type detectLayoutArgs struct {
	Path     string `json:"path"`
	Binarize *bool  `json:"binarize,omitempty"`
}

// DetectLayoutResult is the layout of a page together with its size.
type DetectLayoutResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
	*layout.PageLayout
}

func (s *Server) handleDetectLayout(args json.RawMessage) (interface{}, error) {
	var a detectLayoutArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("path", a.Path); err != nil {
		return nil, err
	}

	p, err := s.pipeline(a.Binarize, "")
	if err != nil {
		return nil, err
	}
	l, page, err := p.Detect(a.Path)
	if err != nil {
		return nil, err
	}
	return &DetectLayoutResult{Width: page.Width, Height: page.Height, PageLayout: l}, nil
}

type exportGlyphsArgs struct {
	Path      string `json:"path"`
	OutputDir string `json:"output_dir"`
	Format    string `json:"format,omitempty"`
	Binarize  *bool  `json:"binarize,omitempty"`
}

// ExportResult summarizes an export without the full cell table.
type ExportResult struct {
	Rows        int  `json:"rows"`
	Cols        int  `json:"cols"`
	Words       int  `json:"words"`
	HasWordList bool `json:"has_word_list"`
	*glyph.Report
}

func summarize(res *pipeline.Result) *ExportResult {
	return &ExportResult{
		Rows:        res.Layout.Rows,
		Cols:        res.Layout.Cols,
		Words:       len(res.Layout.Words),
		HasWordList: res.Layout.HasWordList,
		Report:      res.Report,
	}
}

func (s *Server) handleExportGlyphs(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a exportGlyphsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("path", a.Path); err != nil {
		return nil, err
	}
	if err := requirePath("output_dir", a.OutputDir); err != nil {
		return nil, err
	}

	p, err := s.pipeline(a.Binarize, a.Format)
	if err != nil {
		return nil, err
	}
	res, err := p.Extract(ctx, a.Path, a.OutputDir)
	if err != nil {
		return nil, err
	}
	return summarize(res), nil
}

type layoutOverlayArgs struct {
	Path     string `json:"path"`
	Labels   *bool  `json:"labels,omitempty"`
	Binarize *bool  `json:"binarize,omitempty"`
}

func (s *Server) handleLayoutOverlay(args json.RawMessage) (interface{}, error) {
	var a layoutOverlayArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("path", a.Path); err != nil {
		return nil, err
	}

	labels := true
	if a.Labels != nil {
		labels = *a.Labels
	}

	p, err := s.pipeline(a.Binarize, "")
	if err != nil {
		return nil, err
	}
	l, _, err := p.Detect(a.Path)
	if err != nil {
		return nil, err
	}
	return p.EncodeOverlay(a.Path, l, labels)
}

type recognizeArgs struct {
	OutputDir  string `json:"output_dir"`
	Path       string `json:"path,omitempty"`
	WriteFiles bool   `json:"write_files,omitempty"`
}

func (s *Server) handleRecognize(ctx context.Context, args json.RawMessage) (interface{}, error) {
	var a recognizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath("output_dir", a.OutputDir); err != nil {
		return nil, err
	}

	if a.Path != "" {
		p, err := s.pipeline(nil, "")
		if err != nil {
			return nil, err
		}
		if _, err := p.Extract(ctx, a.Path, a.OutputDir); err != nil {
			return nil, err
		}
	}

	r, err := s.ocrEngine()
	if err != nil {
		return nil, err
	}
	puzzle, err := r.Recognize(ctx, a.OutputDir)
	if err != nil {
		return nil, err
	}
	if a.WriteFiles {
		if err := puzzle.WriteFiles(a.OutputDir); err != nil {
			return nil, err
		}
	}
	return puzzle, nil
}
