// Package middleware contains the HTTP middleware of the API: the trace
// middleware, the pass-through bearer token authenticator and the guards
// that turn a missing or insufficient identity into 401/403 responses.
package middleware
