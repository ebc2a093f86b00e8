// Package server implements the MCP (Model Context Protocol) server for the
// shape analyzer.
//
// The server speaks JSON-RPC 2.0 over stdio, one request per line:
//   - Input: JSON-RPC requests on stdin
//   - Output: JSON-RPC responses on stdout
//
// Logging goes to the slog.Logger passed with WithLogger and must never be
// written to stdout.
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Shape Analysis:
//   - image_analyze_shapes: Classify every shape and return the summary lines
//   - image_annotate_shapes: Analyze and return the labelled overlay (png or svg)
//   - image_crop_shape: Analyze and crop a single shape by index
//
// Debugging:
//   - image_binarize: Return the binary mask the analysis works on
//
// The shape tools accept per-call overrides of the analysis settings
// (threshold, blur_kernel, min_area, epsilon, circularity_cutoff,
// square_tolerance and, for annotation, the outline and label style). The
// overrides are validated like a configuration file and never change the
// server's own configuration.
//
// # Image Caching
//
// Decoded images are cached by path for the lifetime of the server process,
// so analyzing and then annotating the same file decodes it once.
//
// # Error Handling
//
// Tool errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure), -32602 (malformed params) or
//     -32601 (unknown method)
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New(server.WithConfig(cfg), server.WithLogger(logger))
//	if err := srv.Run(); err != nil {
//	    return err
//	}
package server
