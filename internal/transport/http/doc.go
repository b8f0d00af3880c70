// Package http contains the HTTP transport for the dividend dashboard API.
// Handlers translate requests into service calls and render JSON; no
// business logic lives here.
package http
