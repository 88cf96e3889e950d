// Package api implements the REST endpoints for tasks. Handlers decode
// and validate requests, delegate to the task service, and translate
// service errors into HTTP status codes with sanitized messages.
package api
