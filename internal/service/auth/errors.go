package auth

import (
	"errors"
	"fmt"
)

// Kind classifies an authentication failure.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindMalformed
	KindExpired
	KindSignatureInvalid
	KindSubjectUnresolved
	KindDisabled
	KindCredentialMismatch
	KindServiceUnavailable
)

var kindNames = map[Kind]string{
	KindUnknown:            "unknown",
	KindMalformed:          "malformed",
	KindExpired:            "expired",
	KindSignatureInvalid:   "signature_invalid",
	KindSubjectUnresolved:  "subject_unresolved",
	KindDisabled:           "disabled",
	KindCredentialMismatch: "credential_mismatch",
	KindServiceUnavailable: "service_unavailable",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Error is a tagged authentication failure. Two Errors match under errors.Is
// when their kinds are equal, so callers compare against the sentinels below.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("auth %s: %v", e.Kind, e.Err)
	}
	return "auth " + e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinel errors, one per kind.
var (
	ErrMalformed          = &Error{Kind: KindMalformed}
	ErrExpired            = &Error{Kind: KindExpired}
	ErrSignatureInvalid   = &Error{Kind: KindSignatureInvalid}
	ErrSubjectUnresolved  = &Error{Kind: KindSubjectUnresolved}
	ErrDisabled           = &Error{Kind: KindDisabled}
	ErrCredentialMismatch = &Error{Kind: KindCredentialMismatch}
	ErrServiceUnavailable = &Error{Kind: KindServiceUnavailable}
)

func newError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or KindUnknown.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsUnauthorized reports whether err should surface as a uniform
// "invalid credentials" outcome on the login path.
func IsUnauthorized(err error) bool {
	switch KindOf(err) {
	case KindSubjectUnresolved, KindDisabled, KindCredentialMismatch:
		return true
	default:
		return false
	}
}
