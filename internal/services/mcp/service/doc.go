// Package service assembles and runs the assistant's MCP server: tool
// registration grouped by module, and the stdio and streamable-HTTP
// transports.
package service
