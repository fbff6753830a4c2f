// Package server implements an MCP (Model Context Protocol) server that
// exposes the labeler to tool-using clients.
//
// # Protocol
//
// The server speaks JSON-RPC 2.0 over a line-oriented stream, normally
// stdin and stdout:
//   - Input: one JSON-RPC request per line
//   - Output: one JSON-RPC response per line
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
//   - annotate_image: Label one image and write its YOLO file
//   - annotate_directory: Label every image in a directory
//   - list_strategies: Preprocessing strategies and class map
//   - detect_contours: Run the contour (and optional line) heuristic alone
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// An image that yields no detections is not an error; annotate_image reports
// it with status "undetected".
//
// # Usage
//
//	srv, err := server.New(cfg, rec, logger)
//	if err != nil {
//	    return err
//	}
//	return srv.Run(ctx)
package server
