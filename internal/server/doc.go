// Package server implements the MCP (Model Context Protocol) server for
// word-search page extraction.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - image_load: Load a page and get its metadata
//   - wordsearch_detect_layout: Grid, cells, word list and word boxes
//   - wordsearch_export_glyphs: Write normalized glyphs to a folder
//   - wordsearch_layout_overlay: Detected boxes drawn over the page
//   - wordsearch_recognize: OCR of an exported folder into text
//
// Every tool runs with the configuration the server was created with.
// Detection and export tools accept a binarize override, and the export
// tool a format override.
//
// # Image Caching
//
// Pages are cached by path and reused across tool calls for the lifetime of
// the process. The Tesseract engine is started on the first recognize call
// and released by Close.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(cfg, logger)
//	defer srv.Close()
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
