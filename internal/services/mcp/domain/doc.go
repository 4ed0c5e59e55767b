// Package domain defines the MCP tool surface for the assistant: input and
// result schemas, tool constructors, and handlers binding the in-process
// registries and collaborator clients.
//
// Handlers split failures into two channels. Domain errors (bad input,
// conflicts, unknown ids) are rendered into CallToolResult{IsError: true}
// so the calling model can read the code and recover. Only infrastructure
// faults (id generation, programming errors) propagate as Go errors.
package domain
