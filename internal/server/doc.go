// Package server implements the MCP (Model Context Protocol) server for cover
// palette extraction.
//
// This package provides a JSON-RPC 2.0 server that exposes palette extraction
// and theme state through the MCP protocol, so an MCP client can derive UI
// colors from album or book cover art.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses and notifications on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Cover Information:
//   - cover_load: Load a local cover and get metadata
//
// Palette Extraction:
//   - palette_extract: Dominant, secondary and light colors plus gradient
//   - palette_candidates: Ranked vibrant candidates and sampling statistics
//
// Theme State:
//   - theme_select: Select the cover that themes the UI (asynchronous)
//   - theme_current: Latest published theme palette
//   - theme_cancel: Abort the selection in progress
//
// Every tool that takes a cover accepts either a path or a url, plus an
// optional named region (top-half, center, ...).
//
// # Theme Notifications
//
// When a theme_select result is published the server emits a
// notifications/message notification with logger "theme" whose data is the
// new snapshot. Results of superseded selections are never published.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// palette_extract and theme_select never fail because a cover is missing or
// unusable; they report the fallback palette instead.
//
// # Usage
//
//	srv := server.New(resolver, service, version)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
