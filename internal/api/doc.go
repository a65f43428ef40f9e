// Package api holds the HTTP handlers for authentication, users, tasks and
// comments. Handlers decode and validate requests, call the services and
// translate results and errors into JSON responses. Route wiring and
// middleware ordering live in cmd/server.
package api
