// Package service contains the taskhub use cases. Services coordinate the
// stores defined in internal/store, apply transactional boundaries when a
// use case reads and writes several entities, and translate store errors into
// the sentinel errors the API layer maps to HTTP statuses.
//
// Services receive their dependencies through constructor injection and never
// depend on a specific storage implementation.
package service
