// Package server implements the MCP (Model Context Protocol) server for
// image signal import and export.
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
//   - image_read: Read an image as a signal and describe it
//   - image_export: Re-write an image, optionally with a scale bar or at a
//     given pixel size
//   - image_formats: List readable/writable extensions
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// Logging goes to the zap logger passed to New, never to stdout.
//
// # Usage
//
//	srv := server.New(logger)
//	if err := srv.Run(); err != nil {
//	    logger.Fatal("server failed", zap.Error(err))
//	}
package server
