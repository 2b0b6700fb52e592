// Package server implements the MCP (Model Context Protocol) server for
// template matching.
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
// Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//   - image_evict: Drop cached images
//
// Template Matching:
//   - template_match: Compute the correlation surface and report its best placement
//   - template_find_peaks: Extract well-separated matches from the surface
//
// The template is either a second image file or a region of the searched
// image. Peak arguments a call leaves out come from config.Config.Peaks.
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the process, or until
// image_evict drops them.
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
//	srv := server.New(cfg, logger, version)
//	if err := srv.Serve(os.Stdin, os.Stdout); err != nil {
//	    return err
//	}
package server
