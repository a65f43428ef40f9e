// Package shared holds the request-scoped context values (trace ID and
// authenticated identity) and the JSON request/response helpers used by the
// handlers and middleware.
package shared
