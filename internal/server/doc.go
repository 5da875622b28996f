// Package server implements the MCP (Model Context Protocol) server for the
// RGB transform, billing and classification tools.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//   - Logs: structured JSON on stderr
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image Access:
//   - image_load: Load image and get metadata
//   - image_get_pixel, image_set_pixel: Read or write one pixel
//   - image_from_pixels: Build an image from a pixel grid
//
// Processor Sessions:
//   - processor_create: Start a standard or premium session
//   - processor_cost: Running cost, credits and call counts
//   - processor_redeem_coupon: Add free operations (standard tier)
//
// Transforms (billed to a session):
//   - image_negate, image_grayscale, image_rotate_180, image_blur
//   - image_adjust_brightness, image_average_brightness
//   - image_chroma_key, image_sticker, image_edge_highlight (premium tier)
//
// Classification:
//   - knn_fit: Fit k-NN from a labeled directory tree
//   - knn_predict: Predict a label with its voting neighbors
//   - knn_distance: Distance between two images
//
// Tools that produce an image write it to output_path when given, and
// otherwise return it inline as base64 PNG.
//
// # Image Caching
//
// Loaded images are cached by path for the lifetime of the server. Every
// tool works on a private copy, and writing to an output_path evicts that
// path so later loads see the new file.
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
//	cfg, _ := config.Load()
//	logger, _ := logging.NewLogger(cfg.LogLevel)
//	srv := server.New(cfg, logger)
//	if err := srv.Run(); err != nil {
//	    logger.Fatal("server stopped", zap.Error(err))
//	}
package server
