// Package server exposes sunmap sessions over the MCP protocol.
//
// The server speaks JSON-RPC 2.0 over stdin/stdout, line-delimited, the
// way MCP clients expect: an initialize handshake, tools/list to discover
// the tool surface, and tools/call to drive it. Logging must go to stderr;
// stdout carries only protocol frames.
//
// # Sessions
//
// All state lives in named sessions. A client opens one with session_open,
// receives its id, and passes the id to every other tool. Sessions hold the
// loaded photo stack, the brightness threshold, the bed footprint, the
// exposure grid and the saved placements; decoded photographs are cached
// server-wide so threshold experiments do not re-read the disk.
//
// # Tool surface
//
//   - session_open, session_status
//   - exposure_build, exposure_threshold_adjust, exposure_export
//   - footprint_flip, footprint_resize
//   - placement_score, placement_search, placement_list
//
// Tool execution errors are returned as JSON-RPC errors with code -32000;
// unknown methods get -32601 per the JSON-RPC spec.
package server
