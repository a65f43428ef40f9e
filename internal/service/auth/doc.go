// Package auth holds the authentication core: the HMAC token codec, the
// bcrypt credential verifier, the login Authenticator and the tagged error
// kinds the HTTP layer maps to status codes.
//
// The package never touches persistence directly. Subjects are resolved
// through a Directory supplied by the caller.
package auth
