// Package timeouts defines shared timeout constants used across commands.
// Centralizing these values prevents drift between the tool boundary and
// the collaborator clients and makes the durations discoverable.
package timeouts

import "time"

// UpstreamRequest caps a single HTTP call to an external collaborator
// (email delivery, web search). In-memory registry operations never
// time out.
const UpstreamRequest = 10 * time.Second

// ReadHeader limits how long the MCP HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second
